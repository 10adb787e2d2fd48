package services

import (
	"context"
	"fmt"
	"time"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"
)

// Validation errors surfaced by the contact engine. Both unwrap to
// errs.ErrInvalidInput for status mapping.
var (
	ErrMissingContactID = fmt.Errorf("%w: contactId required", errs.ErrInvalidInput)
	ErrSelfContact      = fmt.Errorf("%w: cannot add yourself as a contact", errs.ErrInvalidInput)
)

// ContactStore is the persistence gateway the contact engine consumes
type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	Find(ctx context.Context, userID, contactID string) (*models.Contact, error)
	GetDetail(ctx context.Context, userID, contactID string) (*models.ContactDetail, error)
	ListAccepted(ctx context.Context, userID string) ([]*models.ContactDetail, error)
	ListPendingIncoming(ctx context.Context, userID string) ([]*models.ContactDetail, error)
	Accept(ctx context.Context, requesterID, accepterID string) error
	DeletePending(ctx context.Context, requesterID, targetID string) error
	DeletePair(ctx context.Context, userID, otherID string) error
	UpdateCategory(ctx context.Context, userID, contactID string, categoryID *string) error
}

// ContactService mediates all state transitions of directed contact edges.
// A relationship between two users is a pair of directed edges; both exist
// and are ACCEPTED once a request has been accepted.
type ContactService struct {
	contacts ContactStore
}

// NewContactService creates a new contact service
func NewContactService(contacts ContactStore) *ContactService {
	return &ContactService{contacts: contacts}
}

// SendRequest creates a single pending edge from requester to target and
// returns it denormalized with the target's profile
func (s *ContactService) SendRequest(ctx context.Context, requesterID, targetID string, categoryID *string) (*models.ContactDetail, error) {
	if targetID == "" {
		return nil, ErrMissingContactID
	}
	if requesterID == targetID {
		return nil, ErrSelfContact
	}

	contact := &models.Contact{
		UserID:     requesterID,
		ContactID:  targetID,
		Status:     models.ContactStatusPending,
		CategoryID: categoryID,
		CreatedAt:  time.Now(),
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	return s.contacts.GetDetail(ctx, requesterID, targetID)
}

// ListAccepted returns the user's accepted contacts, newest first
func (s *ContactService) ListAccepted(ctx context.Context, userID string) ([]*models.ContactDetail, error) {
	return s.contacts.ListAccepted(ctx, userID)
}

// ListPendingIncoming returns requests awaiting the user's decision, newest first
func (s *ContactService) ListPendingIncoming(ctx context.Context, userID string) ([]*models.ContactDetail, error) {
	return s.contacts.ListPendingIncoming(ctx, userID)
}

// AcceptRequest accepts a pending request from requester to accepter. The edge
// update and the reciprocal edge creation commit together or not at all.
func (s *ContactService) AcceptRequest(ctx context.Context, accepterID, requesterID string) error {
	return s.contacts.Accept(ctx, requesterID, accepterID)
}

// RejectRequest deletes the pending edge from requester to rejecter. No
// reciprocal edge exists before acceptance, so nothing else is touched.
// Rejecting an edge that is absent or already accepted reports not found.
func (s *ContactService) RejectRequest(ctx context.Context, rejecterID, requesterID string) error {
	return s.contacts.DeletePending(ctx, requesterID, rejecterID)
}

// RemoveContact deletes both directions of the relationship, whatever their
// statuses. Removal is idempotent.
func (s *ContactService) RemoveContact(ctx context.Context, userID, otherID string) error {
	return s.contacts.DeletePair(ctx, userID, otherID)
}

// UpdateCategory reassigns the category on the edge from userID to otherID.
// Categories are per-direction; the reciprocal edge keeps its own.
func (s *ContactService) UpdateCategory(ctx context.Context, userID, otherID string, categoryID *string) (*models.ContactDetail, error) {
	if err := s.contacts.UpdateCategory(ctx, userID, otherID, categoryID); err != nil {
		return nil, err
	}
	return s.contacts.GetDetail(ctx, userID, otherID)
}
