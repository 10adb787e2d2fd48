package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"hangouts-backend/internal/errs"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondDomainError maps sentinel errors to HTTP statuses, falling back to a
// generic 500 so internals never leak
func respondDomainError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		respondError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, errs.ErrAlreadyAccepted):
		respondError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, errs.ErrNotFound):
		respondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, errs.ErrAlreadyExists):
		respondError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, errs.ErrUnauthorized):
		respondError(w, err.Error(), http.StatusUnauthorized)
	default:
		respondError(w, fallback, http.StatusInternalServerError)
	}
}
