package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"notary-ally/internal/contextutil"
	"notary-ally/internal/export"
	"notary-ally/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// maxBodyBytes caps request bodies. Journal entries carry a signature image.
const maxBodyBytes = 4 << 20

// writeJSON writes v as the JSON response body.
func writeJSON(w http.ResponseWriter, ctx context.Context, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// decodeJSON reads the request body into v. It writes a 400 response and
// returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ctx := r.Context()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// writeDocument sends an export as a file download.
func writeDocument(w http.ResponseWriter, r *http.Request, doc export.Document, err error) {
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to export records")
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "validation failed", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	var emptyErr *export.EmptyError
	if errors.As(err, &emptyErr) {
		writeError(w, http.StatusNotFound, emptyErr.Error())
		return
	}

	var lookupErr *service.LookupError
	if errors.As(err, &lookupErr) {
		logger.ErrorContext(ctx, "lookup failed", "error", lookupErr.Err)
		writeError(w, http.StatusBadGateway, lookupErr.Message)
		return
	}

	logger.ErrorContext(ctx, "service error", "error", err)

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrCalculationInProgress):
		writeError(w, http.StatusConflict, "A calculation is already in progress")
	case errors.Is(err, service.ErrMissingCredential):
		writeError(w, http.StatusServiceUnavailable, "Lookup service is not configured")
	case errors.Is(err, service.ErrExternalService):
		writeError(w, http.StatusBadGateway, "External service error")
	default:
		writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}
