package geo

import (
	"context"

	geogolang "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/logger"
)

type osmResolver struct {
	geocoder geogolang.Geocoder
}

// NewOSMResolver returns a Resolver backed by the OpenStreetMap
// Nominatim service.
func NewOSMResolver() Resolver {
	return &osmResolver{geocoder: openstreetmap.Geocoder()}
}

// NewResolver wraps any geo-golang geocoder. Used by tests to inject a
// stub provider.
func NewResolver(geocoder geogolang.Geocoder) Resolver {
	return &osmResolver{geocoder: geocoder}
}

func (r *osmResolver) Resolve(ctx context.Context, query string) (*domain.GeoPoint, error) {
	location, err := r.geocoder.Geocode(query)
	if err != nil {
		logger.WarnContext(ctx, "geocoding failed", "query", query, "error", err)
		return nil, domain.LocationNotFound(query)
	}
	if location == nil {
		return nil, domain.LocationNotFound(query)
	}
	return &domain.GeoPoint{Lon: location.Lng, Lat: location.Lat}, nil
}
