package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/merge"
	"rentmarket-backend/internal/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	var user domain.User
	if err := decodeBody(r, &user); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.svc.Create(r.Context(), &user, subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *UserHandler) UpdateOrInsert(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	var user domain.User
	if err := decodeBody(r, &user); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.svc.UpdateOrInsert(r.Context(), mux.Vars(r)["id"], &user, subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	var patch merge.UserPatch
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

func (h *UserHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, errMissingSubject)
		return
	}

	if err := h.svc.DeleteByID(r.Context(), mux.Vars(r)["id"], subject); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
