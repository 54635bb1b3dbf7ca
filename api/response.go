package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/warp/severance-engine/severance"
	"github.com/warp/severance-engine/store"
)

// =============================================================================
// RESPONSE ENVELOPE
// =============================================================================

// Envelope wraps every JSON response.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func success(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string, errs ...string) {
	writeJSON(w, status, Envelope{Success: false, Message: message, Errors: errs})
}

func writeIssues(w http.ResponseWriter, issues severance.Issues, data any) {
	writeJSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed",
		Data:    data,
		Errors:  issues.Strings(),
	})
}

// handleError maps domain and store errors to a status code:
//
//	ErrInvalidInput -> 400 with every issue
//	ErrNotFound     -> 404 (expired records included)
//	anything else   -> 500, logged, details withheld
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *severance.ValidationError
	switch {
	case errors.As(err, &verr):
		writeIssues(w, verr.Issues, nil)
	case severance.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, store.ErrExpired):
		writeError(w, http.StatusNotFound, "Calculation has expired")
	case store.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Calculation not found")
	default:
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
