package repository

import (
	"context"
	"errors"
	"fmt"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// CategoryRepository handles database operations for contact categories
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new contact category
func (r *CategoryRepository) Create(ctx context.Context, category *models.ContactCategory) error {
	query := `
		INSERT INTO contact_categories (id, user_id, name, color, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		category.ID, category.UserID, category.Name, category.Color, category.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's categories ordered by name
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.ContactCategory, error) {
	query := `
		SELECT id, user_id, name, color, created_at
		FROM contact_categories
		WHERE user_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.ContactCategory{}
	for rows.Next() {
		var category models.ContactCategory
		err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Color, &category.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// Update patches name and color on a category; nil fields are left unchanged
func (r *CategoryRepository) Update(ctx context.Context, id string, name, color *string) (*models.ContactCategory, error) {
	query := `
		UPDATE contact_categories
		SET name = COALESCE($2, name), color = COALESCE($3, color)
		WHERE id = $1
		RETURNING id, user_id, name, color, created_at
	`
	var category models.ContactCategory
	err := r.db.Pool.QueryRow(ctx, query, id, name, color).Scan(
		&category.ID, &category.UserID, &category.Name, &category.Color, &category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &category, nil
}

// Delete deletes a category by ID. Contacts referencing it keep existing with
// their category reference nulled by the schema.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM contact_categories WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
