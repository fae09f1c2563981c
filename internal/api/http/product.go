package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/merge"
	"rentmarket-backend/internal/repository"
	"rentmarket-backend/internal/service"
)

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	var product domain.Product
	if err := decodeBody(r, &product); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.svc.Create(r.Context(), &product, subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) UpdateOrInsert(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	var product domain.Product
	if err := decodeBody(r, &product); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.svc.UpdateOrInsert(r.Context(), mux.Vars(r)["id"], &product, subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	var patch merge.ProductPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.svc.PartialUpdate(r.Context(), mux.Vars(r)["id"], patch, subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteByID(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// List serves both the id-set lookup (?ids=a,b,c) and the owner's own
// products when no ids are given.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	if idsParam := r.URL.Query().Get("ids"); idsParam != "" {
		products, err := h.svc.FindManyByID(r.Context(), strings.Split(idsParam, ","), pageFromQuery(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, products)
		return
	}

	products, err := h.svc.FindByOwner(r.Context(), subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Search composes the text, geo and availability filters from query
// parameters and delegates to the search index.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := q.Get("term")
	page := pageFromQuery(r)

	near := service.NearFilter{Place: q.Get("place")}
	if radius := q.Get("radiusKm"); radius != "" {
		parsed, err := strconv.ParseFloat(radius, 64)
		if err != nil {
			writeError(w, domain.BadRequest("invalid radiusKm"))
			return
		}
		near.RadiusKm = parsed
	}
	if latParam, lonParam := q.Get("lat"), q.Get("lon"); latParam != "" && lonParam != "" {
		lat, latErr := strconv.ParseFloat(latParam, 64)
		lon, lonErr := strconv.ParseFloat(lonParam, 64)
		if latErr != nil || lonErr != nil {
			writeError(w, domain.BadRequest("invalid lat/lon"))
			return
		}
		near.Point = &domain.GeoPoint{Lat: lat, Lon: lon}
	}

	start, err := dateFromQuery(q.Get("startDate"))
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := dateFromQuery(q.Get("endDate"))
	if err != nil {
		writeError(w, err)
		return
	}

	var result interface{}
	switch {
	case start != nil || end != nil:
		result, err = h.svc.FindByTitleNearAvailable(r.Context(), term, near, start, end, page)
	case near.RadiusKm > 0:
		result, err = h.svc.FindByTitleNear(r.Context(), term, near, page)
	default:
		result, err = h.svc.FindByTitle(r.Context(), term, page)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) ListWithRentRequests(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	result, err := h.svc.GetProductsWithRentRequestsForUser(r.Context(), subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type decisionRequest struct {
	Accept bool `json:"accept"`
}

func (h *ProductHandler) DecideRentRequest(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	var decision decisionRequest
	if err := decodeBody(r, &decision); err != nil {
		writeError(w, err)
		return
	}

	vars := mux.Vars(r)
	updated, err := h.svc.AcceptOrRejectRentRequest(r.Context(), vars["id"], vars["requestId"], decision.Accept, subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func pageFromQuery(r *http.Request) repository.Page {
	q := r.URL.Query()
	page := repository.DefaultPage
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		page.Number = n
	}
	if s, err := strconv.Atoi(q.Get("size")); err == nil && s > 0 {
		page.Size = s
	}
	return page
}

func dateFromQuery(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, domain.BadRequest("invalid date, expected YYYY-MM-DD")
	}
	return &parsed, nil
}
