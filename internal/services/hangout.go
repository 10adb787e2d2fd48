package services

import (
	"context"
	"fmt"
	"time"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"
	"hangouts-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultHangoutLimit = 25
	maxHangoutLimit     = 100
)

// HangoutStore is the persistence gateway for hangouts and visibility entries
type HangoutStore interface {
	Create(ctx context.Context, hangout *models.Hangout) error
	List(ctx context.Context, filter repository.HangoutFilter) ([]*models.Hangout, error)
	GetByID(ctx context.Context, id string) (*models.Hangout, error)
	Update(ctx context.Context, id string, patch *models.HangoutPatch) (*models.Hangout, error)
	Delete(ctx context.Context, id string) error
	ListVisibility(ctx context.Context, hangoutID string) ([]*models.HangoutVisibility, error)
	AddVisibility(ctx context.Context, vis *models.HangoutVisibility) error
	RemoveVisibility(ctx context.Context, visibilityID string) error
}

// HangoutWithVisibility is a hangout joined with its visibility entries
type HangoutWithVisibility struct {
	models.Hangout
	Visibility []*models.HangoutVisibility `json:"visibility"`
}

// HangoutService handles hangout business logic
type HangoutService struct {
	hangouts HangoutStore
}

// NewHangoutService creates a new hangout service
func NewHangoutService(hangouts HangoutStore) *HangoutService {
	return &HangoutService{hangouts: hangouts}
}

// CreateHangout creates a new hangout
func (s *HangoutService) CreateHangout(ctx context.Context, hangout *models.Hangout) (*models.Hangout, error) {
	if hangout.UserID == "" || hangout.Title == "" || hangout.StartsAt.IsZero() {
		return nil, fmt.Errorf("%w: userId, title, startsAt required", errs.ErrInvalidInput)
	}

	hangout.ID = uuid.New().String()
	hangout.CreatedAt = time.Now()
	if err := s.hangouts.Create(ctx, hangout); err != nil {
		return nil, err
	}
	return hangout, nil
}

// ListHangouts returns hangouts matching the filter, clamping pagination bounds
func (s *HangoutService) ListHangouts(ctx context.Context, filter repository.HangoutFilter) ([]*models.Hangout, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultHangoutLimit
	}
	if filter.Limit > maxHangoutLimit {
		filter.Limit = maxHangoutLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.hangouts.List(ctx, filter)
}

// GetHangout returns a hangout with its visibility entries
func (s *HangoutService) GetHangout(ctx context.Context, id string) (*HangoutWithVisibility, error) {
	hangout, err := s.hangouts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	visibility, err := s.hangouts.ListVisibility(ctx, id)
	if err != nil {
		return nil, err
	}
	return &HangoutWithVisibility{Hangout: *hangout, Visibility: visibility}, nil
}

// UpdateHangout patches a hangout
func (s *HangoutService) UpdateHangout(ctx context.Context, id string, patch *models.HangoutPatch) (*models.Hangout, error) {
	return s.hangouts.Update(ctx, id, patch)
}

// DeleteHangout deletes a hangout
func (s *HangoutService) DeleteHangout(ctx context.Context, id string) error {
	return s.hangouts.Delete(ctx, id)
}

// ListVisibility returns visibility entries for a hangout, newest first
func (s *HangoutService) ListVisibility(ctx context.Context, hangoutID string) ([]*models.HangoutVisibility, error) {
	return s.hangouts.ListVisibility(ctx, hangoutID)
}

// AddVisibility scopes a hangout to a category or a single user
func (s *HangoutService) AddVisibility(ctx context.Context, hangoutID string, categoryID, userID *string) (*models.HangoutVisibility, error) {
	if categoryID == nil && userID == nil {
		return nil, fmt.Errorf("%w: provide categoryId or userId", errs.ErrInvalidInput)
	}

	vis := &models.HangoutVisibility{
		ID:         uuid.New().String(),
		HangoutID:  hangoutID,
		CategoryID: categoryID,
		UserID:     userID,
		CreatedAt:  time.Now(),
	}
	if err := s.hangouts.AddVisibility(ctx, vis); err != nil {
		return nil, err
	}
	return vis, nil
}

// RemoveVisibility deletes a visibility entry
func (s *HangoutService) RemoveVisibility(ctx context.Context, visibilityID string) error {
	return s.hangouts.RemoveVisibility(ctx, visibilityID)
}
