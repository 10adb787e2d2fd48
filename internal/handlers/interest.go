package handlers

import (
	"encoding/json"
	"net/http"

	"hangouts-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// InterestHandler handles interest tag HTTP requests
type InterestHandler struct {
	interestService *services.InterestService
}

// NewInterestHandler creates a new interest handler
func NewInterestHandler(interestService *services.InterestService) *InterestHandler {
	return &InterestHandler{interestService: interestService}
}

// InterestBody is the request body for creating or updating an interest tag
type InterestBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddUserInterestBody is the request body for selecting an interest
type AddUserInterestBody struct {
	InterestID string `json:"interestId"`
}

// List handles GET /api/interests
func (h *InterestHandler) List(w http.ResponseWriter, r *http.Request) {
	interests, err := h.interestService.ListInterests(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list interests")
		respondDomainError(w, err, "Failed to list interests")
		return
	}
	respondJSON(w, http.StatusOK, interests)
}

// Create handles POST /api/interests
func (h *InterestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body InterestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name := ""
	if body.Name != nil {
		name = *body.Name
	}
	interest, err := h.interestService.CreateInterest(r.Context(), name, body.Description)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create interest")
		respondDomainError(w, err, "Failed to create interest")
		return
	}

	log.Info().Str("interest_id", interest.ID).Str("name", interest.Name).Msg("Interest created")
	respondJSON(w, http.StatusCreated, interest)
}

// Update handles PUT /api/interests/{id}
func (h *InterestHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body InterestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	interest, err := h.interestService.UpdateInterest(r.Context(), id, body.Name, body.Description)
	if err != nil {
		log.Error().Err(err).Str("interest_id", id).Msg("Failed to update interest")
		respondDomainError(w, err, "Failed to update interest")
		return
	}
	respondJSON(w, http.StatusOK, interest)
}

// Delete handles DELETE /api/interests/{id}
func (h *InterestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.interestService.DeleteInterest(r.Context(), id); err != nil {
		log.Error().Err(err).Str("interest_id", id).Msg("Failed to delete interest")
		respondDomainError(w, err, "Failed to delete interest")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUserInterests handles GET /api/interests/user/{userId}
func (h *InterestHandler) ListUserInterests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	items, err := h.interestService.ListUserInterests(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list user interests")
		respondDomainError(w, err, "Failed to list user interests")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// AddUserInterest handles POST /api/interests/user/{userId}
func (h *InterestHandler) AddUserInterest(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var body AddUserInterestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.interestService.AddUserInterest(r.Context(), userID, body.InterestID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("interest_id", body.InterestID).
			Msg("Failed to add user interest")
		respondDomainError(w, err, "Failed to add user interest")
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// RemoveUserInterest handles DELETE /api/interests/user/{userId}/{interestId}
func (h *InterestHandler) RemoveUserInterest(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	interestID := chi.URLParam(r, "interestId")

	if err := h.interestService.RemoveUserInterest(r.Context(), userID, interestID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("interest_id", interestID).
			Msg("Failed to remove user interest")
		respondDomainError(w, err, "Failed to remove user interest")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
