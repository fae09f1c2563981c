package domain

import "time"

// GeoPoint is a WGS84 coordinate pair. Longitude first to match the
// GeoJSON array order used by both stores.
type GeoPoint struct {
	Lon float64 `bson:"lon" json:"lon"`
	Lat float64 `bson:"lat" json:"lat"`
}

// DateRange is an inclusive date interval. To may be nil, which means
// the range is open-ended.
type DateRange struct {
	From time.Time  `bson:"from" json:"from"`
	To   *time.Time `bson:"to,omitempty" json:"to,omitempty"`
}

// Contains reports whether the range fully covers [start, end].
// An open-ended range covers every end date.
func (r DateRange) Contains(start, end time.Time) bool {
	if r.From.After(start) {
		return false
	}
	if r.To == nil {
		return true
	}
	return !r.To.Before(end)
}

// Intersects reports whether the range overlaps [start, end] on at
// least one day.
func (r DateRange) Intersects(start, end time.Time) bool {
	if r.From.After(end) {
		return false
	}
	if r.To == nil {
		return true
	}
	return !r.To.Before(start)
}

type Address struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
}

// Rent is a confirmed booking on a product. It is created exclusively
// when the owner accepts a rent request and is never modified afterwards.
type Rent struct {
	RenterID      string    `bson:"renterUserId" json:"renterUserId"`
	RentRequestID string    `bson:"rentRequestId" json:"rentRequestId"`
	Period        DateRange `bson:"period" json:"period"`
}

type Product struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	OwnerID      string    `bson:"ownerUserId" json:"ownerUserId"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	Tags         []string  `bson:"tags" json:"tags"`
	Price        float64   `bson:"price" json:"price"`
	Address      Address   `bson:"address" json:"address"`
	Location     *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
	Availability DateRange `bson:"availability" json:"availability"`
	Rents        []Rent    `bson:"rents" json:"rents"`
}

// HasRentFor reports whether a rent originating from the given rent
// request is already recorded on the product.
func (p *Product) HasRentFor(rentRequestID string) bool {
	for _, r := range p.Rents {
		if r.RentRequestID == rentRequestID {
			return true
		}
	}
	return false
}
