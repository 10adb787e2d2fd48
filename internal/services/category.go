package services

import (
	"context"
	"fmt"
	"time"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"

	"github.com/google/uuid"
)

// CategoryStore is the persistence gateway for contact categories
type CategoryStore interface {
	Create(ctx context.Context, category *models.ContactCategory) error
	ListByUser(ctx context.Context, userID string) ([]*models.ContactCategory, error)
	Update(ctx context.Context, id string, name, color *string) (*models.ContactCategory, error)
	Delete(ctx context.Context, id string) error
}

// CategoryService handles contact category business logic
type CategoryService struct {
	categories CategoryStore
}

// NewCategoryService creates a new category service
func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// CreateCategory creates a category owned by a user
func (s *CategoryService) CreateCategory(ctx context.Context, userID, name string, color *string) (*models.ContactCategory, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", errs.ErrInvalidInput)
	}

	category := &models.ContactCategory{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns a user's categories ordered by name
func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]*models.ContactCategory, error) {
	return s.categories.ListByUser(ctx, userID)
}

// UpdateCategory patches a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, name, color *string) (*models.ContactCategory, error) {
	return s.categories.Update(ctx, id, name, color)
}

// DeleteCategory deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}
