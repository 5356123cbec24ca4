package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/coupdetete/backend/internal/billing"
	"github.com/coupdetete/backend/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error":{...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// badRequest rejects input before it reaches the service layer
// (e.g. a missing body or a malformed query parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "validation_error", message)
}

// fail maps a service error to its HTTP status. Unknown errors are logged
// with the request id and answered with a generic 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", unwrapMessage(err, domain.ErrValidation, "invalid input"))
	case errors.Is(err, domain.ErrInvalidArchetype):
		writeError(w, http.StatusBadRequest, "invalid_archetype", "unknown archetype")
	case errors.Is(err, domain.ErrAlreadyPremium):
		writeError(w, http.StatusBadRequest, "already_premium", "already subscribed to premium")
	case errors.Is(err, billing.ErrSignature):
		writeError(w, http.StatusBadRequest, "invalid_signature", "webhook signature verification failed")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrNoCandidates):
		writeError(w, http.StatusConflict, "no_candidates", "no destination matches these filters")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", unwrapMessage(err, domain.ErrConflict, "already exists"))
	case errors.Is(err, billing.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "billing_unavailable", "billing is not configured")
	case billing.IsProviderError(err):
		s.Log.Error("payment provider error", "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
		writeError(w, http.StatusBadGateway, "payment_provider_error", "payment provider request failed")
	default:
		s.Log.Error("request failed", "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage extracts the human-readable part that follows sentinel in a
// wrapped error, or returns fallback when there is none.
// e.g. "service.GuestService.Create: validation error: username too short" → "username too short"
func unwrapMessage(err, sentinel error, fallback string) string {
	if _, rest, ok := strings.Cut(err.Error(), sentinel.Error()+": "); ok {
		return rest
	}
	return fallback
}

// decodeJSON reads the request body into v. It writes the error response
// itself and returns false when the body is missing, too large or malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
	case errors.Is(err, io.EOF):
		badRequest(w, "request body is required")
	default:
		badRequest(w, "invalid JSON body")
	}
	return false
}
