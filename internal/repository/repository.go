package repository

import (
	"context"

	"rentmarket-backend/internal/domain"
)

// Page selects a slice of a multi-record result. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// DefaultPage is used when the caller does not specify paging.
var DefaultPage = Page{Number: 1, Size: 20}

// Offset returns the number of records to skip for this page.
func (p Page) Offset() int {
	n := p.Number
	if n < 1 {
		n = 1
	}
	return (n - 1) * p.Limit()
}

// Limit returns the page size, falling back to the default size.
func (p Page) Limit() int {
	if p.Size < 1 {
		return DefaultPage.Size
	}
	return p.Size
}

type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) error
	Save(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDIn(ctx context.Context, ids []string, page Page) ([]domain.Product, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	DeleteByID(ctx context.Context, id string) error
}

type RentRequestRepository interface {
	Insert(ctx context.Context, request *domain.RentRequest) error
	FindByID(ctx context.Context, id string) (*domain.RentRequest, error)
	FindByRequester(ctx context.Context, requesterID string) ([]domain.RentRequest, error)
	FindByReceiver(ctx context.Context, receiverID string) ([]domain.RentRequest, error)
	FindAll(ctx context.Context) ([]domain.RentRequest, error)
	// UpdateStatus transitions the request from status `from` to status
	// `to` in a single conditional write. It returns a Conflict error
	// when the stored status no longer equals `from`.
	UpdateStatus(ctx context.Context, id string, from, to domain.RentRequestStatus) (*domain.RentRequest, error)
	DeleteByID(ctx context.Context, id string) error
}

type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
}
