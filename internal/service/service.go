package service

import (
	"context"
	"time"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/merge"
	"rentmarket-backend/internal/repository"
	"rentmarket-backend/internal/search"
)

// NearFilter restricts a search to a radius around a point. The point
// is either given directly or resolved from a free-text place name.
type NearFilter struct {
	Place    string
	Point    *domain.GeoPoint
	RadiusKm float64
}

// ProductWithRequests pairs a product with the rent requests addressed
// to its owner for that product.
type ProductWithRequests struct {
	Product  domain.Product       `json:"product"`
	Requests []domain.RentRequest `json:"rentRequests"`
}

// RequestWithProduct pairs a rent request with the product it targets.
// Product is nil when the product has been deleted since.
type RequestWithProduct struct {
	Request domain.RentRequest `json:"rentRequest"`
	Product *domain.Product    `json:"product,omitempty"`
}

type ProductService interface {
	Create(ctx context.Context, product *domain.Product, requesterID string) (*domain.Product, error)
	UpdateOrInsert(ctx context.Context, id string, product *domain.Product, requesterID string) (*domain.Product, error)
	PartialUpdate(ctx context.Context, id string, patch merge.ProductPatch, requesterID string) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindManyByID(ctx context.Context, ids []string, page repository.Page) ([]domain.Product, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Product, error)
	DeleteByID(ctx context.Context, id string) error
	FindByTitle(ctx context.Context, term string, page repository.Page) (*search.Result, error)
	FindByTitleNear(ctx context.Context, term string, near NearFilter, page repository.Page) (*search.Result, error)
	FindByTitleNearAvailable(ctx context.Context, term string, near NearFilter, start, end *time.Time, page repository.Page) (*search.Result, error)
	AddRentToProduct(ctx context.Context, product *domain.Product, request *domain.RentRequest) (*domain.Product, error)
	AcceptOrRejectRentRequest(ctx context.Context, productID, rentRequestID string, accept bool, requesterID string) (*domain.RentRequest, error)
	GetProductsWithRentRequestsForUser(ctx context.Context, ownerID string) ([]ProductWithRequests, error)
}

type RentRequestService interface {
	Create(ctx context.Context, request *domain.RentRequest, requesterID string) (*domain.RentRequest, error)
	UpdateStatus(ctx context.Context, newStatus domain.RentRequestStatus, request *domain.RentRequest) (*domain.RentRequest, error)
	FindByID(ctx context.Context, id string) (*domain.RentRequest, error)
	FindAll(ctx context.Context) ([]domain.RentRequest, error)
	DeleteByID(ctx context.Context, id string) error
	GetRentRequestsWithProducts(ctx context.Context, requesterID string) ([]RequestWithProduct, error)
}

type UserService interface {
	Create(ctx context.Context, user *domain.User, requesterID string) (*domain.User, error)
	UpdateOrInsert(ctx context.Context, id string, user *domain.User, requesterID string) (*domain.User, error)
	PartialUpdate(ctx context.Context, id string, patch merge.UserPatch, requesterID string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	DeleteByID(ctx context.Context, id string, requesterID string) error
}

type EmailService interface {
	SendRentRequestAccepted(ctx context.Context, email, productTitle string, period domain.DateRange) error
	SendRentRequestRejected(ctx context.Context, email, productTitle string) error
}
