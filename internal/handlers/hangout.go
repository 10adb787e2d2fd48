package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hangouts-backend/internal/models"
	"hangouts-backend/internal/repository"
	"hangouts-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// HangoutHandler handles hangout HTTP requests
type HangoutHandler struct {
	hangoutService *services.HangoutService
}

// NewHangoutHandler creates a new hangout handler
func NewHangoutHandler(hangoutService *services.HangoutService) *HangoutHandler {
	return &HangoutHandler{hangoutService: hangoutService}
}

// CreateHangoutBody is the request body for creating a hangout
type CreateHangoutBody struct {
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	IsPublic    bool       `json:"isPublic"`
}

// VisibilityBody is the request body for adding a visibility entry
type VisibilityBody struct {
	CategoryID *string `json:"categoryId"`
	UserID     *string `json:"userId"`
}

// List handles GET /api/hangouts
func (h *HangoutHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseHangoutFilter(r.URL.Query())
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	hangouts, err := h.hangoutService.ListHangouts(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list hangouts")
		respondDomainError(w, err, "Failed to list hangouts")
		return
	}
	respondJSON(w, http.StatusOK, hangouts)
}

// Get handles GET /api/hangouts/{id}
func (h *HangoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	hangout, err := h.hangoutService.GetHangout(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("hangout_id", id).Msg("Failed to get hangout")
		respondDomainError(w, err, "Failed to get hangout")
		return
	}
	respondJSON(w, http.StatusOK, hangout)
}

// Create handles POST /api/hangouts
func (h *HangoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body CreateHangoutBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	hangout := &models.Hangout{
		UserID:      body.UserID,
		Title:       body.Title,
		Description: body.Description,
		Location:    body.Location,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		EndsAt:      body.EndsAt,
		IsPublic:    body.IsPublic,
	}
	if body.StartsAt != nil {
		hangout.StartsAt = *body.StartsAt
	}

	created, err := h.hangoutService.CreateHangout(r.Context(), hangout)
	if err != nil {
		log.Error().Err(err).Str("user_id", body.UserID).Msg("Failed to create hangout")
		respondDomainError(w, err, "Failed to create hangout")
		return
	}

	log.Info().Str("hangout_id", created.ID).Str("user_id", created.UserID).Msg("Hangout created")
	respondJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/hangouts/{id}
func (h *HangoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.HangoutPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	hangout, err := h.hangoutService.UpdateHangout(r.Context(), id, &patch)
	if err != nil {
		log.Error().Err(err).Str("hangout_id", id).Msg("Failed to update hangout")
		respondDomainError(w, err, "Failed to update hangout")
		return
	}
	respondJSON(w, http.StatusOK, hangout)
}

// Delete handles DELETE /api/hangouts/{id}
func (h *HangoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.hangoutService.DeleteHangout(r.Context(), id); err != nil {
		log.Error().Err(err).Str("hangout_id", id).Msg("Failed to delete hangout")
		respondDomainError(w, err, "Failed to delete hangout")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListVisibility handles GET /api/hangouts/{id}/visibility
func (h *HangoutHandler) ListVisibility(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entries, err := h.hangoutService.ListVisibility(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("hangout_id", id).Msg("Failed to list visibility")
		respondDomainError(w, err, "Failed to list visibility")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// AddVisibility handles POST /api/hangouts/{id}/visibility
func (h *HangoutHandler) AddVisibility(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body VisibilityBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	vis, err := h.hangoutService.AddVisibility(r.Context(), id, body.CategoryID, body.UserID)
	if err != nil {
		log.Error().Err(err).Str("hangout_id", id).Msg("Failed to add visibility")
		respondDomainError(w, err, "Failed to add visibility")
		return
	}
	respondJSON(w, http.StatusCreated, vis)
}

// RemoveVisibility handles DELETE /api/hangouts/{id}/visibility/{visibilityId}
func (h *HangoutHandler) RemoveVisibility(w http.ResponseWriter, r *http.Request) {
	visibilityID := chi.URLParam(r, "visibilityId")

	if err := h.hangoutService.RemoveVisibility(r.Context(), visibilityID); err != nil {
		log.Error().Err(err).Str("visibility_id", visibilityID).Msg("Failed to remove visibility")
		respondDomainError(w, err, "Failed to remove visibility")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseHangoutFilter translates list query parameters into filter predicates
func parseHangoutFilter(query url.Values) (repository.HangoutFilter, error) {
	filter := repository.HangoutFilter{
		OrderBy: query.Get("orderBy"),
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "startsAt"
	}
	filter.OrderDesc = query.Get("orderDir") == "desc"

	if v := query.Get("userId"); v != "" {
		filter.UserID = &v
	}
	if v := query.Get("title"); v != "" {
		filter.Title = &v
	}
	if v := query.Get("interestId"); v != "" {
		filter.InterestID = &v
	}
	if v := query.Get("isPublic"); v != "" {
		isPublic := v == "true"
		filter.IsPublic = &isPublic
	}

	times := map[string]**time.Time{
		"startsAtFrom": &filter.StartsAtFrom,
		"startsAtTo":   &filter.StartsAtTo,
		"endsAtFrom":   &filter.EndsAtFrom,
		"endsAtTo":     &filter.EndsAtTo,
	}
	for name, dst := range times {
		if v := query.Get(name); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return filter, fmt.Errorf("invalid %s", name)
			}
			*dst = &t
		}
	}

	coords := map[string]**float64{
		"latMin": &filter.LatMin,
		"latMax": &filter.LatMax,
		"lngMin": &filter.LngMin,
		"lngMax": &filter.LngMax,
	}
	for name, dst := range coords {
		if v := query.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return filter, fmt.Errorf("invalid %s", name)
			}
			*dst = &f
		}
	}

	page := 1
	if v := query.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return filter, fmt.Errorf("invalid page")
		}
		page = p
	}
	filter.Limit = 25
	if v := query.Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return filter, fmt.Errorf("invalid limit")
		}
		filter.Limit = l
	}
	filter.Offset = (page - 1) * filter.Limit

	return filter, nil
}
