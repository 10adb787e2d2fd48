package services

import (
	"context"
	"fmt"
	"time"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"

	"github.com/google/uuid"
)

// InterestStore is the persistence gateway for interest tags and user selections
type InterestStore interface {
	Create(ctx context.Context, interest *models.Interest) error
	List(ctx context.Context) ([]*models.Interest, error)
	Update(ctx context.Context, id string, name, description *string) (*models.Interest, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*models.UserInterestDetail, error)
	AddToUser(ctx context.Context, sel *models.UserInterest) error
	RemoveFromUser(ctx context.Context, userID, interestID string) error
}

// InterestService handles interest tag business logic
type InterestService struct {
	interests InterestStore
}

// NewInterestService creates a new interest service
func NewInterestService(interests InterestStore) *InterestService {
	return &InterestService{interests: interests}
}

// CreateInterest creates a new interest tag
func (s *InterestService) CreateInterest(ctx context.Context, name string, description *string) (*models.Interest, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", errs.ErrInvalidInput)
	}

	interest := &models.Interest{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := s.interests.Create(ctx, interest); err != nil {
		return nil, err
	}
	return interest, nil
}

// ListInterests returns all interest tags ordered by name
func (s *InterestService) ListInterests(ctx context.Context) ([]*models.Interest, error) {
	return s.interests.List(ctx)
}

// UpdateInterest patches an interest tag
func (s *InterestService) UpdateInterest(ctx context.Context, id string, name, description *string) (*models.Interest, error) {
	return s.interests.Update(ctx, id, name, description)
}

// DeleteInterest deletes an interest tag
func (s *InterestService) DeleteInterest(ctx context.Context, id string) error {
	return s.interests.Delete(ctx, id)
}

// ListUserInterests returns a user's selections, newest first
func (s *InterestService) ListUserInterests(ctx context.Context, userID string) ([]*models.UserInterestDetail, error) {
	return s.interests.ListByUser(ctx, userID)
}

// AddUserInterest records an interest selection for a user
func (s *InterestService) AddUserInterest(ctx context.Context, userID, interestID string) (*models.UserInterest, error) {
	if interestID == "" {
		return nil, fmt.Errorf("%w: interestId required", errs.ErrInvalidInput)
	}

	sel := &models.UserInterest{
		UserID:     userID,
		InterestID: interestID,
		CreatedAt:  time.Now(),
	}
	if err := s.interests.AddToUser(ctx, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// RemoveUserInterest deletes an interest selection for a user
func (s *InterestService) RemoveUserInterest(ctx context.Context, userID, interestID string) error {
	return s.interests.RemoveFromUser(ctx, userID, interestID)
}
