package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"wallet/internal/core"
	applog "wallet/internal/log"
)

type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", applog.FieldError, err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// respondServiceError maps domain errors to HTTP statuses. Internal failures
// are logged but never leaked to the client.
func respondServiceError(r *http.Request, w http.ResponseWriter, err error) {
	switch {
	case core.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, "transaction not found")
	default:
		slog.ErrorContext(r.Context(), "request failed",
			applog.FieldPath, r.URL.Path,
			applog.FieldError, err,
		)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
