package handlers

import (
	"encoding/json"
	"net/http"

	"hangouts-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ContactHandler handles contact relationship HTTP requests
type ContactHandler struct {
	contactService *services.ContactService
	wsHub          *services.WSHub
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *services.ContactService, wsHub *services.WSHub) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		wsHub:          wsHub,
	}
}

// SendRequestBody is the request body for sending a contact request
type SendRequestBody struct {
	ContactID  string  `json:"contactId"`
	CategoryID *string `json:"categoryId"`
}

// UpdateCategoryBody is the request body for reassigning a contact's category
type UpdateCategoryBody struct {
	CategoryID *string `json:"categoryId"`
}

// MessageResponse is a plain acknowledgment body
type MessageResponse struct {
	Message string `json:"message"`
}

// SendRequest handles POST /api/contacts/{userId}
func (h *ContactHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userId")

	var body SendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	detail, err := h.contactService.SendRequest(ctx, userID, body.ContactID, body.CategoryID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("contact_id", body.ContactID).
			Msg("Failed to create contact request")
		respondDomainError(w, err, "Failed to create contact")
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("contact_id", body.ContactID).
		Msg("Contact request created")

	h.wsHub.NotifyContactRequested(body.ContactID, userID)

	respondJSON(w, http.StatusCreated, detail)
}

// ListAccepted handles GET /api/contacts/{userId}
func (h *ContactHandler) ListAccepted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userId")

	contacts, err := h.contactService.ListAccepted(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list contacts")
		respondDomainError(w, err, "Failed to list contacts")
		return
	}

	respondJSON(w, http.StatusOK, contacts)
}

// ListPending handles GET /api/contacts/{userId}/requests/pending
func (h *ContactHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userId")

	requests, err := h.contactService.ListPendingIncoming(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list pending requests")
		respondDomainError(w, err, "Failed to list pending requests")
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

// Accept handles POST /api/contacts/{userId}/requests/{contactId}/accept
func (h *ContactHandler) Accept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userId")
	contactID := chi.URLParam(r, "contactId")

	if err := h.contactService.AcceptRequest(ctx, userID, contactID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("contact_id", contactID).
			Msg("Failed to accept contact request")
		respondDomainError(w, err, "Failed to accept contact request")
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("contact_id", contactID).
		Msg("Contact request accepted")

	h.wsHub.NotifyContactAccepted(contactID, userID)

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Contact request accepted"})
}

// Reject handles POST /api/contacts/{userId}/requests/{contactId}/reject
func (h *ContactHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userId")
	contactID := chi.URLParam(r, "contactId")

	if err := h.contactService.RejectRequest(ctx, userID, contactID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("contact_id", contactID).
			Msg("Failed to reject contact request")
		respondDomainError(w, err, "Failed to reject contact request")
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("contact_id", contactID).
		Msg("Contact request rejected")

	w.WriteHeader(http.StatusNoContent)
}

// Remove handles DELETE /api/contacts/{userId}/{contactId}
func (h *ContactHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userId")
	contactID := chi.URLParam(r, "contactId")

	if err := h.contactService.RemoveContact(ctx, userID, contactID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("contact_id", contactID).
			Msg("Failed to remove contact")
		respondDomainError(w, err, "Failed to remove contact")
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("contact_id", contactID).
		Msg("Contact removed")

	h.wsHub.NotifyContactRemoved(contactID, userID)

	w.WriteHeader(http.StatusNoContent)
}

// UpdateCategory handles PUT /api/contacts/{userId}/{contactId}
func (h *ContactHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userId")
	contactID := chi.URLParam(r, "contactId")

	var body UpdateCategoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	detail, err := h.contactService.UpdateCategory(ctx, userID, contactID, body.CategoryID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("contact_id", contactID).
			Msg("Failed to update contact category")
		respondDomainError(w, err, "Failed to update contact")
		return
	}

	respondJSON(w, http.StatusOK, detail)
}
