package handlers

import (
	"encoding/json"
	"net/http"

	"hangouts-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles contact category HTTP requests
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryBody is the request body for creating or updating a category
type CategoryBody struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// List handles GET /api/contacts/{userId}/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	categories, err := h.categoryService.ListCategories(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list categories")
		respondDomainError(w, err, "Failed to list categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// Create handles POST /api/contacts/{userId}/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var body CategoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name := ""
	if body.Name != nil {
		name = *body.Name
	}
	category, err := h.categoryService.CreateCategory(r.Context(), userID, name, body.Color)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create category")
		respondDomainError(w, err, "Failed to create category")
		return
	}

	log.Info().Str("user_id", userID).Str("category_id", category.ID).Msg("Category created")
	respondJSON(w, http.StatusCreated, category)
}

// Update handles PUT /api/contacts/{userId}/categories/{categoryId}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	var body CategoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), categoryID, body.Name, body.Color)
	if err != nil {
		log.Error().Err(err).Str("category_id", categoryID).Msg("Failed to update category")
		respondDomainError(w, err, "Failed to update category")
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /api/contacts/{userId}/categories/{categoryId}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	if err := h.categoryService.DeleteCategory(r.Context(), categoryID); err != nil {
		log.Error().Err(err).Str("category_id", categoryID).Msg("Failed to delete category")
		respondDomainError(w, err, "Failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
