package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/botforge/botforge/internal/domain"
	"github.com/botforge/botforge/internal/domain/block"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Envelope error codes returned to clients.
const (
	codeUnauthorized  = "UNAUTHORIZED"
	codeNotFound      = "NOT_FOUND"
	codeConflict      = "CONFLICT"
	codeContactExists = "CONTACT_ALREADY_EXISTS"
	codeValidation    = "VALIDATION_ERROR"
	codeUnavailable   = "UNAVAILABLE"
	codeInternal      = "INTERNAL"
)

// envelope is the uniform response body: success with data, or an error
// object with a stable machine-readable code.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data"`
	Error   *errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// readJSON decodes a JSON request body with a size limit.
func readJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, codeValidation, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		}
		return v, false
	}
	return v, true
}

// uuidParam extracts a path parameter and validates it as a UUID. A malformed
// id is a validation error, not a lookup miss.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	if _, err := uuid.Parse(raw); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, name+" is not a valid id")
		return "", false
	}
	return raw, true
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := envelope{Success: false, Error: &errorBody{Code: code, Message: message}}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write JSON error", "error", err)
	}
}

// writeDomainError maps service errors onto the envelope taxonomy. Driver
// errors are translated to sentinels at the store boundary, so only sentinels
// are matched here. Sentinel order matters: the contact singleton violation
// is a conflict subtype and must be checked before the generic conflict class.
func writeDomainError(w http.ResponseWriter, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, block.ErrContactExists):
		writeError(w, http.StatusConflict, codeContactExists, "contact block already exists for this chatbot")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, fallbackMsg)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, "resource already exists")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, validationMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid credentials")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "request aborted")
	default:
		slog.Error("unhandled domain error", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// validationMessage strips the wrapped sentinel suffix so clients see only
// the field-level description.
func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "+domain.ErrValidation.Error()); idx > 0 {
		return msg[:idx]
	}
	return msg
}
