package handlers

import (
	"encoding/json"
	"net/http"

	"hangouts-backend/internal/middleware"
	"hangouts-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService   *services.UserService
	avatarService *services.AvatarService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, avatarService *services.AvatarService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		avatarService: avatarService,
	}
}

// CreateUserBody is the request body for creating a user
type CreateUserBody struct {
	ProviderUID string  `json:"providerUid"`
	Email       *string `json:"email"`
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoUrl"`
}

// UpdateUserBody is the request body for updating a user's profile
type UpdateUserBody struct {
	Email       *string `json:"email"`
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoUrl"`
}

// AvatarUploadBody is the request body for requesting an avatar upload URL
type AvatarUploadBody struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respondDomainError(w, err, "Failed to list users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to get user")
		respondDomainError(w, err, "Failed to get user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Create handles POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body CreateUserBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), body.ProviderUID, body.Email, body.DisplayName, body.PhotoURL)
	if err != nil {
		log.Error().Err(err).Str("provider_uid", body.ProviderUID).Msg("Failed to create user")
		respondDomainError(w, err, "Failed to create user")
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User created")
	respondJSON(w, http.StatusCreated, user)
}

// Update handles PUT /api/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body UpdateUserBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), id, body.Email, body.DisplayName, body.PhotoURL)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to update user")
		respondDomainError(w, err, "Failed to update user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
		respondDomainError(w, err, "Failed to delete user")
		return
	}

	log.Info().Str("user_id", id).Msg("User deleted")
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		respondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.Me(r.Context(), identity)
	if err != nil {
		log.Error().Err(err).Str("provider_uid", identity.UID).Msg("Failed to get current user")
		respondDomainError(w, err, "Failed to get current user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Sync handles POST /api/users/sync
func (h *UserHandler) Sync(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		respondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.Sync(r.Context(), identity)
	if err != nil {
		log.Error().Err(err).Str("provider_uid", identity.UID).Msg("Failed to sync user")
		respondDomainError(w, err, "Failed to sync user")
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User synced")
	respondJSON(w, http.StatusOK, user)
}

// AvatarUpload handles POST /api/users/{id}/avatar/upload
func (h *UserHandler) AvatarUpload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body AvatarUploadBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.avatarService.GetUploadURL(r.Context(), id, body.Filename, body.ContentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to create avatar upload URL")
		respondDomainError(w, err, "Failed to create upload URL")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
