package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps the domain error kinds onto HTTP statuses. Internal
// failures are reported generically so collaborator details never leak
// to clients.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	var status int
	switch kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindForbidden:
		status = http.StatusForbidden
	case domain.KindBadRequest:
		status = http.StatusBadRequest
	case domain.KindConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	msg := err.Error()
	if kind == domain.KindInternal {
		logger.Error("internal error", "error", err)
		msg = "internal server error"
	}

	writeJSON(w, status, errorResponse{Error: msg, Kind: string(kind)})
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.BadRequest("invalid request body")
	}
	return nil
}

var errMissingSubject = errors.New("no authenticated subject in request context")
