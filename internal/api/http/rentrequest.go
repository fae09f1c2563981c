package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/service"
)

type RentRequestHandler struct {
	svc service.RentRequestService
}

func NewRentRequestHandler(svc service.RentRequestService) *RentRequestHandler {
	return &RentRequestHandler{svc: svc}
}

func (h *RentRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	var request domain.RentRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.svc.Create(r.Context(), &request, subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RentRequestHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	request, err := h.svc.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (h *RentRequestHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *RentRequestHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteByID(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *RentRequestHandler) ListWithProducts(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	result, err := h.svc.GetRentRequestsWithProducts(r.Context(), subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
