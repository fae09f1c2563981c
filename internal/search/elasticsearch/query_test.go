package elasticsearch

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentmarket-backend/internal/search"
)

func datePtr(value string) *time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestBuildSearchQuery(t *testing.T) {
	t.Run("TermSearchesTitleAndTags", func(t *testing.T) {
		body := buildSearchQuery(&search.Query{Term: "Rennrad"}, 1, 20)

		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload := string(raw)

		assert.Contains(t, payload, `"match_phrase_prefix":{"title":"Rennrad"}`)
		assert.Contains(t, payload, `"match_phrase_prefix":{"tags":"Rennrad"}`)
		assert.Contains(t, payload, `"minimum_should_match":1`)
		assert.NotContains(t, payload, "match_all")
		assert.NotContains(t, payload, "geo_distance")
	})

	t.Run("EmptyTermMatchesAll", func(t *testing.T) {
		body := buildSearchQuery(&search.Query{}, 1, 20)

		raw, err := json.Marshal(body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"match_all":{}`)
	})

	t.Run("GeoFilter", func(t *testing.T) {
		query := &search.Query{Term: "Rennrad", RadiusKm: 10, Lat: 52.52, Lon: 13.405}
		body := buildSearchQuery(query, 1, 20)

		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload := string(raw)

		assert.Contains(t, payload, `"distance":"10km"`)
		assert.Contains(t, payload, `"lat":52.52`)
		assert.Contains(t, payload, `"lon":13.405`)
	})

	t.Run("AvailabilityFilter", func(t *testing.T) {
		query := &search.Query{
			Term:  "Rennrad",
			Start: datePtr("2021-12-12"),
			End:   datePtr("2021-12-20"),
		}
		body := buildSearchQuery(query, 1, 20)

		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload := string(raw)

		// Advertised range must cover the window.
		assert.Contains(t, payload, `"availabilityFrom":{"lte":"2021-12-12"}`)
		assert.Contains(t, payload, `"availabilityTo":{"gte":"2021-12-20"}`)
		assert.Contains(t, payload, `"exists":{"field":"availabilityTo"}`)

		// Booked periods intersecting the window are excluded via a
		// nested must_not clause.
		assert.Contains(t, payload, `"path":"rents"`)
		assert.Contains(t, payload, `"rents.from":{"lte":"2021-12-20"}`)
		assert.Contains(t, payload, `"rents.to":{"gte":"2021-12-12"}`)
		assert.Contains(t, payload, `"exists":{"field":"rents.to"}`)
	})

	t.Run("Pagination", func(t *testing.T) {
		body := buildSearchQuery(&search.Query{Term: "Rennrad"}, 3, 10)

		assert.Equal(t, 20, body["from"])
		assert.Equal(t, 10, body["size"])
		assert.Equal(t, true, body["track_total_hits"])
	})
}
