package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/merge"
	"rentmarket-backend/internal/repository"
	"rentmarket-backend/internal/search"
)

type productFixture struct {
	products *MockProductRepo
	requests *MockRentRequestRepo
	users    *MockUserRepo
	index    *MockProductIndex
	resolver *MockGeoResolver
	email    *MockEmailService
	svc      ProductService
}

func newProductFixture() *productFixture {
	f := &productFixture{
		products: new(MockProductRepo),
		requests: new(MockRentRequestRepo),
		users:    new(MockUserRepo),
		index:    new(MockProductIndex),
		resolver: new(MockGeoResolver),
		email:    new(MockEmailService),
	}
	f.svc = NewProductService(f.products, f.requests, f.users, f.index, f.resolver, f.email)
	return f
}

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(value string) *time.Time {
	d := date(value)
	return &d
}

func sampleProduct() domain.Product {
	return domain.Product{
		ID:      "p1",
		OwnerID: "owner-1",
		Title:   "Rennrad Carbon",
		Tags:    []string{"Fahrrad", "Rennrad"},
		Price:   25,
		Address: domain.Address{Street: "Hauptstr. 1", City: "Berlin", PostalCode: "10115"},
		Availability: domain.DateRange{
			From: date("2021-01-01"),
			To:   datePtr("2022-12-31"),
		},
		Rents: []domain.Rent{},
	}
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("GeocodesAndWritesBothStores", func(t *testing.T) {
		f := newProductFixture()
		point := &domain.GeoPoint{Lon: 13.405, Lat: 52.52}

		f.resolver.On("Resolve", ctx, mock.AnythingOfType("string")).Return(point, nil)
		f.products.On("Insert", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
		f.index.On("Save", ctx, mock.AnythingOfType("*search.ProductDocument")).Return(nil)

		input := sampleProduct()
		input.ID = ""
		input.OwnerID = ""

		created, err := f.svc.Create(ctx, &input, "user-7")
		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "user-7", created.OwnerID)
		assert.Equal(t, point, created.Location)

		f.products.AssertNumberOfCalls(t, "Insert", 1)
		f.index.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("LocationNotFound", func(t *testing.T) {
		f := newProductFixture()
		f.resolver.On("Resolve", ctx, mock.AnythingOfType("string")).Return(nil, domain.LocationNotFound("Nowhere 1"))

		input := sampleProduct()
		_, err := f.svc.Create(ctx, &input, "user-7")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrLocationNotFound))
		f.products.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestProductService_UpdateOrInsert(t *testing.T) {
	ctx := context.Background()

	t.Run("ForbiddenForNonOwnerLeavesStoreUntouched", func(t *testing.T) {
		f := newProductFixture()
		existing := sampleProduct()
		f.products.On("FindByID", ctx, "p1").Return(&existing, nil)

		update := sampleProduct()
		_, err := f.svc.UpdateOrInsert(ctx, "p1", &update, "intruder")
		assert.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
		f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.index.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("IdMismatchRejected", func(t *testing.T) {
		f := newProductFixture()
		update := sampleProduct()
		update.ID = "other"

		_, err := f.svc.UpdateOrInsert(ctx, "p1", &update, "owner-1")
		assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
	})

	t.Run("OwnerReplacesAndReprojects", func(t *testing.T) {
		f := newProductFixture()
		existing := sampleProduct()
		point := &domain.GeoPoint{Lon: 9.99, Lat: 53.55}

		f.products.On("FindByID", ctx, "p1").Return(&existing, nil)
		f.resolver.On("Resolve", ctx, mock.AnythingOfType("string")).Return(point, nil)
		f.products.On("Save", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
		f.index.On("Save", ctx, mock.AnythingOfType("*search.ProductDocument")).Return(nil)

		update := sampleProduct()
		update.ID = ""
		update.Title = "Rennrad Alu"
		updated, err := f.svc.UpdateOrInsert(ctx, "p1", &update, "owner-1")
		assert.NoError(t, err)
		assert.Equal(t, "Rennrad Alu", updated.Title)
		assert.Equal(t, "owner-1", updated.OwnerID)
		assert.Equal(t, point, updated.Location)
		f.index.AssertNumberOfCalls(t, "Save", 1)
	})
}

func TestProductService_PartialUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("AbsentFieldsPreserved", func(t *testing.T) {
		f := newProductFixture()
		existing := sampleProduct()
		existingLocation := &domain.GeoPoint{Lon: 13.405, Lat: 52.52}
		existing.Location = existingLocation

		f.products.On("FindByID", ctx, "p1").Return(&existing, nil)
		f.products.On("Save", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
		f.index.On("Save", ctx, mock.AnythingOfType("*search.ProductDocument")).Return(nil)

		newPrice := 40.0
		updated, err := f.svc.PartialUpdate(ctx, "p1", merge.ProductPatch{Price: &newPrice}, "owner-1")
		assert.NoError(t, err)
		assert.Equal(t, 40.0, updated.Price)
		assert.Equal(t, existing.Title, updated.Title)
		assert.Equal(t, existing.Tags, updated.Tags)
		// Address untouched, so no geocoding happened.
		assert.Equal(t, existingLocation, updated.Location)
		f.resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("ChangedAddressIsRegeocoded", func(t *testing.T) {
		f := newProductFixture()
		existing := sampleProduct()
		newPoint := &domain.GeoPoint{Lon: 11.58, Lat: 48.14}

		f.products.On("FindByID", ctx, "p1").Return(&existing, nil)
		f.resolver.On("Resolve", ctx, mock.AnythingOfType("string")).Return(newPoint, nil)
		f.products.On("Save", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
		f.index.On("Save", ctx, mock.AnythingOfType("*search.ProductDocument")).Return(nil)

		newAddress := domain.Address{Street: "Marienplatz 1", City: "München", PostalCode: "80331"}
		updated, err := f.svc.PartialUpdate(ctx, "p1", merge.ProductPatch{Address: &newAddress}, "owner-1")
		assert.NoError(t, err)
		assert.Equal(t, newPoint, updated.Location)
		f.resolver.AssertNumberOfCalls(t, "Resolve", 1)
	})

	t.Run("ForbiddenForNonOwner", func(t *testing.T) {
		f := newProductFixture()
		existing := sampleProduct()
		f.products.On("FindByID", ctx, "p1").Return(&existing, nil)

		_, err := f.svc.PartialUpdate(ctx, "p1", merge.ProductPatch{}, "intruder")
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
		f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingProductFailsBeforeAnyMutation", func(t *testing.T) {
		f := newProductFixture()
		f.products.On("FindByID", ctx, "ghost").Return(nil, domain.NotFound("product", "ghost"))

		err := f.svc.DeleteByID(ctx, "ghost")
		assert.True(t, errors.Is(err, domain.ErrProductNotFound))
		f.products.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
		f.index.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("DeletesFromBothStores", func(t *testing.T) {
		f := newProductFixture()
		existing := sampleProduct()
		f.products.On("FindByID", ctx, "p1").Return(&existing, nil)
		f.products.On("DeleteByID", ctx, "p1").Return(nil)
		f.index.On("DeleteByID", ctx, "p1").Return(nil)

		assert.NoError(t, f.svc.DeleteByID(ctx, "p1"))
		f.products.AssertNumberOfCalls(t, "DeleteByID", 1)
		f.index.AssertNumberOfCalls(t, "DeleteByID", 1)
	})

	t.Run("IndexFailureDoesNotFailDeletion", func(t *testing.T) {
		f := newProductFixture()
		existing := sampleProduct()
		f.products.On("FindByID", ctx, "p1").Return(&existing, nil)
		f.products.On("DeleteByID", ctx, "p1").Return(nil)
		f.index.On("DeleteByID", ctx, "p1").Return(errors.New("cluster down"))

		assert.NoError(t, f.svc.DeleteByID(ctx, "p1"))
	})
}

func TestProductService_AddRentToProduct(t *testing.T) {
	ctx := context.Background()

	request := &domain.RentRequest{
		ID:          "rr1",
		ProductID:   "p1",
		RequesterID: "renter-1",
		Period:      domain.DateRange{From: date("2021-12-12"), To: datePtr("2021-12-20")},
		Status:      domain.RentRequestStatusOpen,
	}

	t.Run("AppendsRentAndReprojects", func(t *testing.T) {
		f := newProductFixture()
		product := sampleProduct()

		f.products.On("Save", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
		f.index.On("Save", ctx, mock.AnythingOfType("*search.ProductDocument")).Return(nil)

		updated, err := f.svc.AddRentToProduct(ctx, &product, request)
		assert.NoError(t, err)
		assert.Len(t, updated.Rents, 1)
		assert.Equal(t, "rr1", updated.Rents[0].RentRequestID)
		assert.Equal(t, "renter-1", updated.Rents[0].RenterID)
		// The input product value is untouched.
		assert.Empty(t, product.Rents)
	})

	t.Run("IdempotentPerRentRequest", func(t *testing.T) {
		f := newProductFixture()
		product := sampleProduct()
		product.Rents = []domain.Rent{{RenterID: "renter-1", RentRequestID: "rr1", Period: request.Period}}

		updated, err := f.svc.AddRentToProduct(ctx, &product, request)
		assert.NoError(t, err)
		assert.Len(t, updated.Rents, 1)
		f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_AcceptOrRejectRentRequest(t *testing.T) {
	ctx := context.Background()

	openRequest := func() *domain.RentRequest {
		return &domain.RentRequest{
			ID:          "rr1",
			ProductID:   "p1",
			RequesterID: "renter-1",
			ReceiverID:  "owner-1",
			Period:      domain.DateRange{From: date("2021-12-12"), To: datePtr("2021-12-20")},
			Status:      domain.RentRequestStatusOpen,
		}
	}

	t.Run("AcceptAppendsRentAndTransitions", func(t *testing.T) {
		f := newProductFixture()
		product := sampleProduct()
		request := openRequest()
		accepted := *request
		accepted.Status = domain.RentRequestStatusAccepted

		f.requests.On("FindByID", ctx, "rr1").Return(request, nil)
		f.products.On("FindByID", ctx, "p1").Return(&product, nil)
		f.products.On("Save", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
		f.index.On("Save", ctx, mock.AnythingOfType("*search.ProductDocument")).Return(nil)
		f.requests.On("UpdateStatus", ctx, "rr1", domain.RentRequestStatusOpen, domain.RentRequestStatusAccepted).Return(&accepted, nil)
		f.users.On("FindByID", ctx, "renter-1").Return(&domain.User{ID: "renter-1", Email: "renter@test.de"}, nil)
		f.email.On("SendRentRequestAccepted", ctx, "renter@test.de", product.Title, request.Period).Return(nil)

		result, err := f.svc.AcceptOrRejectRentRequest(ctx, "p1", "rr1", true, "owner-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.RentRequestStatusAccepted, result.Status)

		f.products.AssertCalled(t, "Save", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return len(p.Rents) == 1 && p.Rents[0].RentRequestID == "rr1"
		}))
	})

	t.Run("SecondAcceptAddsNoSecondRent", func(t *testing.T) {
		f := newProductFixture()
		request := openRequest()
		product := sampleProduct()
		// First accept already ran: the rent is on the product and the
		// stored request left OPEN, so the conditional write loses.
		product.Rents = []domain.Rent{{RenterID: "renter-1", RentRequestID: "rr1", Period: request.Period}}

		f.requests.On("FindByID", ctx, "rr1").Return(request, nil)
		f.products.On("FindByID", ctx, "p1").Return(&product, nil)
		f.requests.On("UpdateStatus", ctx, "rr1", domain.RentRequestStatusOpen, domain.RentRequestStatusAccepted).
			Return(nil, domain.Conflict("rent_request", "rent request rr1 is no longer OPEN"))

		_, err := f.svc.AcceptOrRejectRentRequest(ctx, "p1", "rr1", true, "owner-1")
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		// Idempotent rent append: nothing was saved again.
		f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("RejectLeavesProductUntouched", func(t *testing.T) {
		f := newProductFixture()
		product := sampleProduct()
		request := openRequest()
		rejected := *request
		rejected.Status = domain.RentRequestStatusRejected

		f.requests.On("FindByID", ctx, "rr1").Return(request, nil)
		f.products.On("FindByID", ctx, "p1").Return(&product, nil)
		f.requests.On("UpdateStatus", ctx, "rr1", domain.RentRequestStatusOpen, domain.RentRequestStatusRejected).Return(&rejected, nil)
		f.users.On("FindByID", ctx, "renter-1").Return(&domain.User{ID: "renter-1", Email: "renter@test.de"}, nil)
		f.email.On("SendRentRequestRejected", ctx, "renter@test.de", product.Title).Return(nil)

		result, err := f.svc.AcceptOrRejectRentRequest(ctx, "p1", "rr1", false, "owner-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.RentRequestStatusRejected, result.Status)
		f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.index.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		f := newProductFixture()
		product := sampleProduct()
		request := openRequest()

		f.requests.On("FindByID", ctx, "rr1").Return(request, nil)
		f.products.On("FindByID", ctx, "p1").Return(&product, nil)

		_, err := f.svc.AcceptOrRejectRentRequest(ctx, "p1", "rr1", true, "renter-1")
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
		f.requests.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RequestTargetingOtherProductRejected", func(t *testing.T) {
		f := newProductFixture()
		product := sampleProduct()
		request := openRequest()
		request.ProductID = "p2"

		f.requests.On("FindByID", ctx, "rr1").Return(request, nil)
		f.products.On("FindByID", ctx, "p1").Return(&product, nil)

		_, err := f.svc.AcceptOrRejectRentRequest(ctx, "p1", "rr1", true, "owner-1")
		assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
	})

	t.Run("MissingRentRequest", func(t *testing.T) {
		f := newProductFixture()
		f.requests.On("FindByID", ctx, "ghost").Return(nil, domain.NotFound("rent_request", "ghost"))

		_, err := f.svc.AcceptOrRejectRentRequest(ctx, "p1", "ghost", true, "owner-1")
		assert.True(t, errors.Is(err, domain.ErrRentRequestNotFound))
	})
}

func TestProductService_Search(t *testing.T) {
	ctx := context.Background()
	page := repository.Page{Number: 1, Size: 20}

	t.Run("AvailabilityNeedsBothDates", func(t *testing.T) {
		f := newProductFixture()

		_, err := f.svc.FindByTitleNearAvailable(ctx, "Rennrad", NearFilter{}, datePtr("2021-12-12"), nil, page)
		assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
		f.index.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("PlaceNameIsGeocoded", func(t *testing.T) {
		f := newProductFixture()
		point := &domain.GeoPoint{Lon: 13.405, Lat: 52.52}

		f.resolver.On("Resolve", ctx, "Berlin").Return(point, nil)
		f.index.On("Search", ctx, mock.MatchedBy(func(q *search.Query) bool {
			return q.Term == "Rennrad" && q.RadiusKm == 10 && q.Lat == 52.52 && q.Lon == 13.405
		})).Return(&search.Result{}, nil)

		_, err := f.svc.FindByTitleNear(ctx, "Rennrad", NearFilter{Place: "Berlin", RadiusKm: 10}, page)
		assert.NoError(t, err)
	})

	t.Run("DirectCoordinatesSkipGeocoding", func(t *testing.T) {
		f := newProductFixture()

		f.index.On("Search", ctx, mock.AnythingOfType("*search.Query")).Return(&search.Result{}, nil)

		near := NearFilter{Point: &domain.GeoPoint{Lon: 13.405, Lat: 52.52}, RadiusKm: 10}
		_, err := f.svc.FindByTitleNear(ctx, "Rennrad", near, page)
		assert.NoError(t, err)
		f.resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("AvailabilityWindowPassedThrough", func(t *testing.T) {
		f := newProductFixture()
		start := datePtr("2021-12-12")
		end := datePtr("2021-12-20")

		f.index.On("Search", ctx, mock.MatchedBy(func(q *search.Query) bool {
			return q.HasAvailabilityFilter() && q.Start.Equal(*start) && q.End.Equal(*end)
		})).Return(&search.Result{}, nil)

		_, err := f.svc.FindByTitleNearAvailable(ctx, "Rennrad", NearFilter{}, start, end, page)
		assert.NoError(t, err)
	})
}

func TestProductService_GetProductsWithRentRequestsForUser(t *testing.T) {
	ctx := context.Background()

	f := newProductFixture()
	p1 := sampleProduct()
	p2 := sampleProduct()
	p2.ID = "p2"
	p2.Title = "Bohrmaschine"

	r1 := domain.RentRequest{ID: "rr1", ProductID: "p1", ReceiverID: "owner-1", Status: domain.RentRequestStatusOpen}
	r2 := domain.RentRequest{ID: "rr2", ProductID: "p1", ReceiverID: "owner-1", Status: domain.RentRequestStatusRejected}

	f.products.On("FindByOwner", ctx, "owner-1").Return([]domain.Product{p1, p2}, nil)
	f.requests.On("FindByReceiver", ctx, "owner-1").Return([]domain.RentRequest{r1, r2}, nil)

	result, err := f.svc.GetProductsWithRentRequestsForUser(ctx, "owner-1")
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	// Product order from the owner lookup is preserved.
	assert.Equal(t, "p1", result[0].Product.ID)
	assert.Len(t, result[0].Requests, 2)
	assert.Equal(t, "p2", result[1].Product.ID)
	assert.Empty(t, result[1].Requests)
}
