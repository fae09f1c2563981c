package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/repository"
	"rentmarket-backend/internal/search"
)

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Insert(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) Save(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) FindByIDIn(ctx context.Context, ids []string, page repository.Page) ([]domain.Product, error) {
	args := m.Called(ctx, ids, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) FindByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRentRequestRepo
type MockRentRequestRepo struct {
	mock.Mock
}

func (m *MockRentRequestRepo) Insert(ctx context.Context, r *domain.RentRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentRequestRepo) FindByID(ctx context.Context, id string) (*domain.RentRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentRequest), args.Error(1)
}
func (m *MockRentRequestRepo) FindByRequester(ctx context.Context, requesterID string) ([]domain.RentRequest, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentRequest), args.Error(1)
}
func (m *MockRentRequestRepo) FindByReceiver(ctx context.Context, receiverID string) ([]domain.RentRequest, error) {
	args := m.Called(ctx, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentRequest), args.Error(1)
}
func (m *MockRentRequestRepo) FindAll(ctx context.Context) ([]domain.RentRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentRequest), args.Error(1)
}
func (m *MockRentRequestRepo) UpdateStatus(ctx context.Context, id string, from, to domain.RentRequestStatus) (*domain.RentRequest, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentRequest), args.Error(1)
}
func (m *MockRentRequestRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Insert(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) Save(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductIndex
type MockProductIndex struct {
	mock.Mock
}

func (m *MockProductIndex) Save(ctx context.Context, doc *search.ProductDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
func (m *MockProductIndex) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductIndex) Search(ctx context.Context, query *search.Query) (*search.Result, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*search.Result), args.Error(1)
}
func (m *MockProductIndex) BulkIndex(ctx context.Context, docs []search.ProductDocument) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

// MockGeoResolver
type MockGeoResolver struct {
	mock.Mock
}

func (m *MockGeoResolver) Resolve(ctx context.Context, query string) (*domain.GeoPoint, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeoPoint), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentRequestAccepted(ctx context.Context, email, productTitle string, period domain.DateRange) error {
	args := m.Called(ctx, email, productTitle, period)
	return args.Error(0)
}
func (m *MockEmailService) SendRentRequestRejected(ctx context.Context, email, productTitle string) error {
	args := m.Called(ctx, email, productTitle)
	return args.Error(0)
}
