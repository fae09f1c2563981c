package elasticsearch

import (
	"fmt"

	"rentmarket-backend/internal/search"
)

// buildSearchQuery constructs the Elasticsearch query DSL for a product
// search: a phrase-prefix match over title or tags, an optional
// geo_distance filter and an optional availability filter.
func buildSearchQuery(query *search.Query, page, perPage int) map[string]interface{} {
	boolQuery := map[string]interface{}{}

	if query.Term != "" {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{
				"bool": map[string]interface{}{
					"should": []interface{}{
						map[string]interface{}{
							"match_phrase_prefix": map[string]interface{}{
								"title": query.Term,
							},
						},
						map[string]interface{}{
							"match_phrase_prefix": map[string]interface{}{
								"tags": query.Term,
							},
						},
					},
					"minimum_should_match": 1,
				},
			},
		}
	} else {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}

	var filters []interface{}

	if query.HasGeoFilter() {
		filters = append(filters, map[string]interface{}{
			"geo_distance": map[string]interface{}{
				"distance": fmt.Sprintf("%gkm", query.RadiusKm),
				"location": map[string]interface{}{
					"lat": query.Lat,
					"lon": query.Lon,
				},
			},
		})
	}

	if query.HasAvailabilityFilter() {
		start := query.Start.Format("2006-01-02")
		end := query.End.Format("2006-01-02")

		// Advertised range must cover the requested window. An absent
		// upper bound counts as covering any end date.
		filters = append(filters,
			map[string]interface{}{
				"range": map[string]interface{}{
					"availabilityFrom": map[string]interface{}{"lte": start},
				},
			},
			map[string]interface{}{
				"bool": map[string]interface{}{
					"should": []interface{}{
						map[string]interface{}{
							"bool": map[string]interface{}{
								"must_not": []interface{}{
									map[string]interface{}{
										"exists": map[string]interface{}{"field": "availabilityTo"},
									},
								},
							},
						},
						map[string]interface{}{
							"range": map[string]interface{}{
								"availabilityTo": map[string]interface{}{"gte": end},
							},
						},
					},
					"minimum_should_match": 1,
				},
			},
		)

		// And no existing booking may intersect the window.
		boolQuery["must_not"] = []interface{}{
			map[string]interface{}{
				"nested": map[string]interface{}{
					"path":  "rents",
					"query": buildRentIntersection(start, end),
				},
			},
		}
	}

	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"from":             (page - 1) * perPage,
		"size":             perPage,
		"track_total_hits": true,
	}
}

// buildRentIntersection matches a nested rent whose period overlaps
// [start, end]: rent.from <= end AND (rent.to missing OR rent.to >= start).
func buildRentIntersection(start, end string) map[string]interface{} {
	return map[string]interface{}{
		"bool": map[string]interface{}{
			"filter": []interface{}{
				map[string]interface{}{
					"range": map[string]interface{}{
						"rents.from": map[string]interface{}{"lte": end},
					},
				},
				map[string]interface{}{
					"bool": map[string]interface{}{
						"should": []interface{}{
							map[string]interface{}{
								"bool": map[string]interface{}{
									"must_not": []interface{}{
										map[string]interface{}{
											"exists": map[string]interface{}{"field": "rents.to"},
										},
									},
								},
							},
							map[string]interface{}{
								"range": map[string]interface{}{
									"rents.to": map[string]interface{}{"gte": start},
								},
							},
						},
						"minimum_should_match": 1,
					},
				},
			},
		},
	}
}
