package service

import (
	"context"

	"github.com/google/uuid"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/repository"
)

type rentRequestService struct {
	requests repository.RentRequestRepository
	products repository.ProductRepository
}

func NewRentRequestService(
	requests repository.RentRequestRepository,
	products repository.ProductRepository,
) RentRequestService {
	return &rentRequestService{
		requests: requests,
		products: products,
	}
}

func (s *rentRequestService) Create(ctx context.Context, request *domain.RentRequest, requesterID string) (*domain.RentRequest, error) {
	product, err := s.products.FindByID(ctx, request.ProductID)
	if err != nil {
		return nil, err
	}

	r := *request
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.RequesterID = requesterID
	r.ReceiverID = product.OwnerID
	r.Status = domain.RentRequestStatusOpen

	if err := s.requests.Insert(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateStatus moves the request out of OPEN. Authorization is the
// caller's responsibility; the accept/reject flow in the product
// service checks ownership before calling this.
func (s *rentRequestService) UpdateStatus(ctx context.Context, newStatus domain.RentRequestStatus, request *domain.RentRequest) (*domain.RentRequest, error) {
	return s.requests.UpdateStatus(ctx, request.ID, domain.RentRequestStatusOpen, newStatus)
}

func (s *rentRequestService) FindByID(ctx context.Context, id string) (*domain.RentRequest, error) {
	return s.requests.FindByID(ctx, id)
}

func (s *rentRequestService) FindAll(ctx context.Context) ([]domain.RentRequest, error) {
	return s.requests.FindAll(ctx)
}

func (s *rentRequestService) DeleteByID(ctx context.Context, id string) error {
	return s.requests.DeleteByID(ctx, id)
}

// GetRentRequestsWithProducts returns the user's own requests, each
// paired with the product it targets, preserving request order.
func (s *rentRequestService) GetRentRequestsWithProducts(ctx context.Context, requesterID string) ([]RequestWithProduct, error) {
	requests, err := s.requests.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(requests))
	seen := make(map[string]bool, len(requests))
	for _, r := range requests {
		if !seen[r.ProductID] {
			seen[r.ProductID] = true
			ids = append(ids, r.ProductID)
		}
	}

	page := repository.Page{Number: 1, Size: len(ids)}
	products, err := s.products.FindByIDIn(ctx, ids, page)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	result := make([]RequestWithProduct, 0, len(requests))
	for _, r := range requests {
		entry := RequestWithProduct{Request: r}
		if p, ok := byID[r.ProductID]; ok {
			product := p
			entry.Product = &product
		}
		result = append(result, entry)
	}
	return result, nil
}
