// Package search defines the secondary product index: a denormalized,
// queryable projection of the primary product records. The index is
// derived data; the primary store stays authoritative and the engines
// re-project after every product-affecting write.
package search

import (
	"context"
	"time"

	"rentmarket-backend/internal/domain"
)

// RentDocument is the nested booking entry inside a product document.
type RentDocument struct {
	RenterID      string     `json:"renterUserId"`
	RentRequestID string     `json:"rentRequestId"`
	From          time.Time  `json:"from"`
	To            *time.Time `json:"to,omitempty"`
}

// ProductDocument mirrors a product for index storage. Location is a
// [lon, lat] array so the engine can map it as a geo point.
type ProductDocument struct {
	ID               string         `json:"id"`
	OwnerID          string         `json:"ownerUserId"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Tags             []string       `json:"tags"`
	Price            float64        `json:"price"`
	Street           string         `json:"street"`
	City             string         `json:"city"`
	PostalCode       string         `json:"postalCode"`
	Location         []float64      `json:"location,omitempty"`
	AvailabilityFrom time.Time      `json:"availabilityFrom"`
	AvailabilityTo   *time.Time     `json:"availabilityTo,omitempty"`
	Rents            []RentDocument `json:"rents"`
}

// Project builds the index document for a product.
func Project(p *domain.Product) *ProductDocument {
	doc := &ProductDocument{
		ID:               p.ID,
		OwnerID:          p.OwnerID,
		Title:            p.Title,
		Description:      p.Description,
		Tags:             p.Tags,
		Price:            p.Price,
		Street:           p.Address.Street,
		City:             p.Address.City,
		PostalCode:       p.Address.PostalCode,
		AvailabilityFrom: p.Availability.From,
		AvailabilityTo:   p.Availability.To,
		Rents:            make([]RentDocument, 0, len(p.Rents)),
	}
	if p.Location != nil {
		doc.Location = []float64{p.Location.Lon, p.Location.Lat}
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	for _, r := range p.Rents {
		doc.Rents = append(doc.Rents, RentDocument{
			RenterID:      r.RenterID,
			RentRequestID: r.RentRequestID,
			From:          r.Period.From,
			To:            r.Period.To,
		})
	}
	return doc
}

// Query composes a product search. Term is matched phrase-prefix style
// against title or tags. The geo filter applies when RadiusKm > 0, the
// availability filter when both Start and End are set.
type Query struct {
	Term     string
	RadiusKm float64
	Lat      float64
	Lon      float64
	Start    *time.Time
	End      *time.Time
	Page     int
	PerPage  int
}

// HasGeoFilter reports whether the query restricts results by distance.
func (q *Query) HasGeoFilter() bool { return q.RadiusKm > 0 }

// HasAvailabilityFilter reports whether the query restricts results to
// an open booking window.
func (q *Query) HasAvailabilityFilter() bool { return q.Start != nil && q.End != nil }

// Result is a page of matching product documents.
type Result struct {
	Products []ProductDocument
	Total    int
	Page     int
	PerPage  int
}

// ProductIndex is implemented by the Elasticsearch engine and by the
// in-memory engine used in tests and local runs.
type ProductIndex interface {
	Save(ctx context.Context, doc *ProductDocument) error
	DeleteByID(ctx context.Context, id string) error
	Search(ctx context.Context, query *Query) (*Result, error)
	BulkIndex(ctx context.Context, docs []ProductDocument) error
}
