// Package memory implements the product index in process memory. It is
// used by tests and local runs without an Elasticsearch cluster and
// applies the same match semantics: prefix match on title or tags,
// haversine distance for the geo filter and the availability window
// rules for booked periods.
package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"rentmarket-backend/internal/search"
)

const earthRadiusKm = 6371.0

// Engine is an in-memory implementation of search.ProductIndex.
// Thread-safe via sync.RWMutex.
type Engine struct {
	mu   sync.RWMutex
	docs map[string]search.ProductDocument
}

func New() *Engine {
	return &Engine{docs: make(map[string]search.ProductDocument)}
}

func (e *Engine) Save(_ context.Context, doc *search.ProductDocument) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.docs[doc.ID] = *doc
	return nil
}

func (e *Engine) DeleteByID(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.docs, id)
	return nil
}

func (e *Engine) BulkIndex(_ context.Context, docs []search.ProductDocument) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range docs {
		e.docs[docs[i].ID] = docs[i]
	}
	return nil
}

func (e *Engine) Search(_ context.Context, query *search.Query) (*search.Result, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	matched := make([]search.ProductDocument, 0)
	for _, doc := range e.docs {
		if e.matches(doc, query) {
			matched = append(matched, doc)
		}
	}

	// Map iteration order is random; keep results stable for callers.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	if offset > total {
		offset = total
	}
	end := offset + perPage
	if end > total {
		end = total
	}

	return &search.Result{
		Products: matched[offset:end],
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

func (e *Engine) matches(doc search.ProductDocument, query *search.Query) bool {
	if query.Term != "" && !matchesTerm(doc, query.Term) {
		return false
	}

	if query.HasGeoFilter() {
		if len(doc.Location) != 2 {
			return false
		}
		dist := haversineKm(query.Lat, query.Lon, doc.Location[1], doc.Location[0])
		if dist > query.RadiusKm {
			return false
		}
	}

	if query.HasAvailabilityFilter() {
		if !covers(doc.AvailabilityFrom, doc.AvailabilityTo, *query.Start, *query.End) {
			return false
		}
		for _, rent := range doc.Rents {
			if intersects(rent.From, rent.To, *query.Start, *query.End) {
				return false
			}
		}
	}

	return true
}

// matchesTerm applies a case-insensitive prefix match against the words
// of the title and each tag.
func matchesTerm(doc search.ProductDocument, term string) bool {
	term = strings.ToLower(term)
	for _, word := range strings.Fields(strings.ToLower(doc.Title)) {
		if strings.HasPrefix(word, term) {
			return true
		}
	}
	for _, tag := range doc.Tags {
		for _, word := range strings.Fields(strings.ToLower(tag)) {
			if strings.HasPrefix(word, term) {
				return true
			}
		}
	}
	return false
}

func covers(from time.Time, to *time.Time, start, end time.Time) bool {
	if from.After(start) {
		return false
	}
	return to == nil || !to.Before(end)
}

func intersects(from time.Time, to *time.Time, start, end time.Time) bool {
	if from.After(end) {
		return false
	}
	return to == nil || !to.Before(start)
}

// haversineKm returns the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
