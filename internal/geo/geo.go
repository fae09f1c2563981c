// Package geo resolves free-text addresses and place names to
// coordinates through an external geocoding provider. The upstream
// service is rate limited (about one request per second); failures are
// surfaced to the caller, never retried here.
package geo

import (
	"context"

	"rentmarket-backend/internal/domain"
)

// Resolver turns a free-text address or place name into a coordinate
// pair. It returns a NotFound(location) error when the lookup yields no
// candidate.
type Resolver interface {
	Resolve(ctx context.Context, query string) (*domain.GeoPoint, error)
}
