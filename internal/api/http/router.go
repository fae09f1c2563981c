// Package http exposes the engines over a JSON REST API. Routing and
// serialization live here; all business rules stay in the services.
package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rentmarket-backend/internal/security"
	"rentmarket-backend/internal/service"
)

// NewRouter builds the full route table. Health and metrics endpoints
// are open; everything under /api requires a valid bearer token.
func NewRouter(
	products service.ProductService,
	rentRequests service.RentRequestService,
	users service.UserService,
	validator security.TokenValidator,
) *mux.Router {
	productHandler := NewProductHandler(products)
	rentRequestHandler := NewRentRequestHandler(rentRequests)
	userHandler := NewUserHandler(users)

	router := mux.NewRouter()
	router.Use(LoggingMiddleware, MetricsMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(validator))

	api.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products/search", productHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productHandler.FindByID).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productHandler.UpdateOrInsert).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", productHandler.PartialUpdate).Methods(http.MethodPatch)
	api.HandleFunc("/products/{id}", productHandler.DeleteByID).Methods(http.MethodDelete)
	api.HandleFunc("/products/{id}/rent-requests/{requestId}/decision", productHandler.DecideRentRequest).Methods(http.MethodPost)
	api.HandleFunc("/my/products/rent-requests", productHandler.ListWithRentRequests).Methods(http.MethodGet)

	api.HandleFunc("/rent-requests", rentRequestHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rent-requests", rentRequestHandler.FindAll).Methods(http.MethodGet)
	api.HandleFunc("/rent-requests/{id}", rentRequestHandler.FindByID).Methods(http.MethodGet)
	api.HandleFunc("/rent-requests/{id}", rentRequestHandler.DeleteByID).Methods(http.MethodDelete)
	api.HandleFunc("/my/rent-requests", rentRequestHandler.ListWithProducts).Methods(http.MethodGet)

	api.HandleFunc("/users", userHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", userHandler.FindByID).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", userHandler.UpdateOrInsert).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}", userHandler.PartialUpdate).Methods(http.MethodPatch)
	api.HandleFunc("/users/{id}", userHandler.DeleteByID).Methods(http.MethodDelete)

	return router
}
