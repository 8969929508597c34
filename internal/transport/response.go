package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/rpggio/portfolio/internal/domain/project"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	writeJSON(w, status, ErrorResponse{Error: message, Fields: fields})
}

// writeDomainError maps service errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *project.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "validation failed", verr.Fields)
	case errors.Is(err, project.ErrInvalidInput), errors.Is(err, dashboard.ErrInvalidState):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, project.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, "project not found", nil)
	case errors.Is(err, dashboard.ErrSourceUnavailable), errors.Is(err, dashboard.ErrMutationFailed):
		writeError(w, http.StatusBadGateway, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}
