package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/htol/bookshop/logger"
	"github.com/htol/bookshop/repo"
	"github.com/htol/bookshop/service"
	"github.com/htol/bookshop/validator"
)

const maxBodyBytes = 1 << 20

// respondJSON encodes v with the given status code
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// respondWithError logs an error and sends an HTTP error response as JSON
func respondWithError(w http.ResponseWriter, message string, err error, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logger.Error(message, "error", err, "status", statusCode)
	} else {
		logger.Debug(message, "error", err, "status", statusCode)
	}
	respondJSON(w, statusCode, map[string]any{"error": message})
}

// respondWithValidationError sends a validation error response as JSON
func respondWithValidationError(w http.ResponseWriter, message string) {
	logger.Warn("Validation error", "message", message)
	respondJSON(w, http.StatusBadRequest, map[string]any{"error": message})
}

// respondWithFieldErrors sends field-scoped validation errors as JSON
func respondWithFieldErrors(w http.ResponseWriter, fe *validator.FieldErrors) {
	logger.Debug("Validation error", "fields", fe.Fields)
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": fe.Fields,
	})
}

// respondWithServiceError maps service and store errors to HTTP statuses
func respondWithServiceError(w http.ResponseWriter, message string, err error) {
	if fe, ok := validator.AsFieldErrors(err); ok {
		respondWithFieldErrors(w, fe)
		return
	}
	switch {
	case errors.Is(err, repo.ErrNotFound):
		respondWithError(w, "not found", err, http.StatusNotFound)
	case errors.Is(err, validator.ErrInvalidID), errors.Is(err, validator.ErrEmptyString):
		respondWithValidationError(w, "invalid id")
	case errors.Is(err, service.ErrConfirmationRequired):
		respondWithError(w, "confirmation required", err, http.StatusPreconditionRequired)
	case errors.Is(err, service.ErrNotPurchasable):
		respondWithError(w, "book is not available for purchase", err, http.StatusConflict)
	case errors.Is(err, service.ErrUnauthorized):
		respondWithError(w, "unauthorized", err, http.StatusUnauthorized)
	default:
		respondWithError(w, message, err, http.StatusInternalServerError)
	}
}

// decodeJSON reads a JSON request body into v. Unknown fields are ignored
// so clients cannot smuggle system-assigned values into typed forms
func decodeJSON(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
