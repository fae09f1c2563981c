package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/geo"
	"rentmarket-backend/internal/logger"
	"rentmarket-backend/internal/merge"
	"rentmarket-backend/internal/repository"
	"rentmarket-backend/internal/search"
)

type productService struct {
	products repository.ProductRepository
	requests repository.RentRequestRepository
	users    repository.UserRepository
	index    search.ProductIndex
	resolver geo.Resolver
	emailSvc EmailService
}

func NewProductService(
	products repository.ProductRepository,
	requests repository.RentRequestRepository,
	users repository.UserRepository,
	index search.ProductIndex,
	resolver geo.Resolver,
	emailSvc EmailService,
) ProductService {
	return &productService{
		products: products,
		requests: requests,
		users:    users,
		index:    index,
		resolver: resolver,
		emailSvc: emailSvc,
	}
}

func (s *productService) Create(ctx context.Context, product *domain.Product, requesterID string) (*domain.Product, error) {
	p := *product
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.OwnerID = requesterID
	if p.Rents == nil {
		p.Rents = []domain.Rent{}
	}

	location, err := s.resolver.Resolve(ctx, addressQuery(p.Address))
	if err != nil {
		return nil, err
	}
	p.Location = location

	if err := s.products.Insert(ctx, &p); err != nil {
		return nil, err
	}
	s.project(ctx, &p)

	return &p, nil
}

func (s *productService) UpdateOrInsert(ctx context.Context, id string, product *domain.Product, requesterID string) (*domain.Product, error) {
	if product.ID != "" && product.ID != id {
		return nil, domain.BadRequest(fmt.Sprintf("product id %q does not match path id %q", product.ID, id))
	}

	existing, err := s.products.FindByID(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}

	p := *product
	p.ID = id
	if existing != nil {
		if existing.OwnerID != requesterID {
			return nil, domain.Forbidden(fmt.Sprintf("user %s does not own product %s", requesterID, id))
		}
		p.OwnerID = existing.OwnerID
	} else {
		p.OwnerID = requesterID
	}
	if p.Rents == nil {
		p.Rents = []domain.Rent{}
	}

	location, err := s.resolver.Resolve(ctx, addressQuery(p.Address))
	if err != nil {
		return nil, err
	}
	p.Location = location

	if err := s.products.Save(ctx, &p); err != nil {
		return nil, err
	}
	s.project(ctx, &p)

	return &p, nil
}

func (s *productService) PartialUpdate(ctx context.Context, id string, patch merge.ProductPatch, requesterID string) (*domain.Product, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != requesterID {
		return nil, domain.Forbidden(fmt.Sprintf("user %s does not own product %s", requesterID, id))
	}

	merged := merge.ApplyProduct(*existing, patch)

	// A changed address invalidates the stored coordinates.
	if merged.Address != existing.Address {
		location, err := s.resolver.Resolve(ctx, addressQuery(merged.Address))
		if err != nil {
			return nil, err
		}
		merged.Location = location
	}

	if err := s.products.Save(ctx, &merged); err != nil {
		return nil, err
	}
	s.project(ctx, &merged)

	return &merged, nil
}

func (s *productService) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *productService) FindManyByID(ctx context.Context, ids []string, page repository.Page) ([]domain.Product, error) {
	return s.products.FindByIDIn(ctx, ids, page)
}

func (s *productService) FindByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	return s.products.FindByOwner(ctx, ownerID)
}

func (s *productService) DeleteByID(ctx context.Context, id string) error {
	// Existence is checked before anything is mutated in either store.
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.products.DeleteByID(ctx, id); err != nil {
		return err
	}
	// The primary deletion is authoritative; a failed projection delete
	// leaves a stale index entry until the next rebuild.
	if err := s.index.DeleteByID(ctx, id); err != nil {
		logger.ErrorContext(ctx, "failed to delete product from search index", "product_id", id, "error", err)
	}
	return nil
}

func (s *productService) FindByTitle(ctx context.Context, term string, page repository.Page) (*search.Result, error) {
	query := &search.Query{
		Term:    term,
		Page:    page.Number,
		PerPage: page.Limit(),
	}
	return s.index.Search(ctx, query)
}

func (s *productService) FindByTitleNear(ctx context.Context, term string, near NearFilter, page repository.Page) (*search.Result, error) {
	query := &search.Query{
		Term:    term,
		Page:    page.Number,
		PerPage: page.Limit(),
	}
	if err := s.applyNearFilter(ctx, query, near); err != nil {
		return nil, err
	}
	return s.index.Search(ctx, query)
}

func (s *productService) FindByTitleNearAvailable(ctx context.Context, term string, near NearFilter, start, end *time.Time, page repository.Page) (*search.Result, error) {
	if (start == nil) != (end == nil) {
		return nil, domain.BadRequest("availability search requires both start and end date")
	}

	query := &search.Query{
		Term:    term,
		Start:   start,
		End:     end,
		Page:    page.Number,
		PerPage: page.Limit(),
	}
	if err := s.applyNearFilter(ctx, query, near); err != nil {
		return nil, err
	}
	return s.index.Search(ctx, query)
}

// applyNearFilter fills the geo part of a query, geocoding the place
// name when no coordinate pair was given directly.
func (s *productService) applyNearFilter(ctx context.Context, query *search.Query, near NearFilter) error {
	if near.RadiusKm <= 0 {
		return nil
	}
	point := near.Point
	if point == nil {
		if near.Place == "" {
			return domain.BadRequest("geo search requires coordinates or a place name")
		}
		resolved, err := s.resolver.Resolve(ctx, near.Place)
		if err != nil {
			return err
		}
		point = resolved
	}
	query.RadiusKm = near.RadiusKm
	query.Lat = point.Lat
	query.Lon = point.Lon
	return nil
}

// AddRentToProduct appends a confirmed booking built from the rent
// request. Re-invocation with the same request is a no-op, so a retried
// accept cannot duplicate a booking.
func (s *productService) AddRentToProduct(ctx context.Context, product *domain.Product, request *domain.RentRequest) (*domain.Product, error) {
	if product.HasRentFor(request.ID) {
		return product, nil
	}

	updated := *product
	updated.Rents = append(append([]domain.Rent(nil), product.Rents...), domain.Rent{
		RenterID:      request.RequesterID,
		RentRequestID: request.ID,
		Period:        request.Period,
	})

	if err := s.products.Save(ctx, &updated); err != nil {
		return nil, err
	}
	s.project(ctx, &updated)

	return &updated, nil
}

func (s *productService) AcceptOrRejectRentRequest(ctx context.Context, productID, rentRequestID string, accept bool, requesterID string) (*domain.RentRequest, error) {
	request, err := s.requests.FindByID(ctx, rentRequestID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if request.ProductID != productID {
		return nil, domain.BadRequest(fmt.Sprintf("rent request %s does not target product %s", rentRequestID, productID))
	}
	if product.OwnerID != requesterID {
		return nil, domain.Forbidden(fmt.Sprintf("user %s does not own product %s", requesterID, productID))
	}

	if accept {
		if _, err := s.AddRentToProduct(ctx, product, request); err != nil {
			return nil, err
		}
	}

	newStatus := domain.RentRequestStatusRejected
	if accept {
		newStatus = domain.RentRequestStatusAccepted
	}
	updated, err := s.requests.UpdateStatus(ctx, rentRequestID, domain.RentRequestStatusOpen, newStatus)
	if err != nil {
		return nil, err
	}

	s.notifyRequester(ctx, updated, product, accept)

	return updated, nil
}

// notifyRequester emails the renter about the decision. Notification
// failures never fail the transition.
func (s *productService) notifyRequester(ctx context.Context, request *domain.RentRequest, product *domain.Product, accepted bool) {
	requester, err := s.users.FindByID(ctx, request.RequesterID)
	if err != nil {
		logger.WarnContext(ctx, "could not load requester for notification", "user_id", request.RequesterID, "error", err)
		return
	}
	if accepted {
		_ = s.emailSvc.SendRentRequestAccepted(ctx, requester.Email, product.Title, request.Period)
	} else {
		_ = s.emailSvc.SendRentRequestRejected(ctx, requester.Email, product.Title)
	}
}

func (s *productService) GetProductsWithRentRequestsForUser(ctx context.Context, ownerID string) ([]ProductWithRequests, error) {
	products, err := s.products.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.FindByReceiver(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string][]domain.RentRequest, len(requests))
	for _, r := range requests {
		byProduct[r.ProductID] = append(byProduct[r.ProductID], r)
	}

	result := make([]ProductWithRequests, 0, len(products))
	for _, p := range products {
		reqs := byProduct[p.ID]
		if reqs == nil {
			reqs = []domain.RentRequest{}
		}
		result = append(result, ProductWithRequests{Product: p, Requests: reqs})
	}
	return result, nil
}

// project writes the denormalized copy of the product into the search
// index. The primary write has already succeeded at this point, so an
// index failure is logged and the operation still reports success; the
// rebuild job reconciles stale entries.
func (s *productService) project(ctx context.Context, product *domain.Product) {
	if err := s.index.Save(ctx, search.Project(product)); err != nil {
		logger.ErrorContext(ctx, "failed to project product into search index", "product_id", product.ID, "error", err)
	}
}

func addressQuery(a domain.Address) string {
	return fmt.Sprintf("%s, %s %s", a.Street, a.PostalCode, a.City)
}
