package repository

import (
	"context"
	"errors"
	"fmt"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// InterestRepository handles database operations for interest tags and user selections
type InterestRepository struct {
	db *DB
}

// NewInterestRepository creates a new interest repository
func NewInterestRepository(db *DB) *InterestRepository {
	return &InterestRepository{db: db}
}

// Create creates a new interest tag
func (r *InterestRepository) Create(ctx context.Context, interest *models.Interest) error {
	query := `
		INSERT INTO interests (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Pool.Exec(ctx, query, interest.ID, interest.Name, interest.Description, interest.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create interest: %w", err)
	}
	return nil
}

// List retrieves all interest tags ordered by name
func (r *InterestRepository) List(ctx context.Context) ([]*models.Interest, error) {
	query := `
		SELECT id, name, description, created_at
		FROM interests
		ORDER BY name ASC
	`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	defer rows.Close()

	interests := []*models.Interest{}
	for rows.Next() {
		var interest models.Interest
		err := rows.Scan(&interest.ID, &interest.Name, &interest.Description, &interest.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interest: %w", err)
		}
		interests = append(interests, &interest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interests: %w", err)
	}
	return interests, nil
}

// Update patches name and description on an interest tag; nil fields are left unchanged
func (r *InterestRepository) Update(ctx context.Context, id string, name, description *string) (*models.Interest, error) {
	query := `
		UPDATE interests
		SET name = COALESCE($2, name), description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, description, created_at
	`
	var interest models.Interest
	err := r.db.Pool.QueryRow(ctx, query, id, name, description).Scan(
		&interest.ID, &interest.Name, &interest.Description, &interest.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, errs.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to update interest: %w", err)
	}
	return &interest, nil
}

// Delete deletes an interest tag by ID
func (r *InterestRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM interests WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete interest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListByUser retrieves a user's interest selections, newest first, joined with
// their tags
func (r *InterestRepository) ListByUser(ctx context.Context, userID string) ([]*models.UserInterestDetail, error) {
	query := `
		SELECT ui.user_id, ui.interest_id, ui.created_at, i.id, i.name, i.description, i.created_at
		FROM user_interests ui
		JOIN interests i ON i.id = ui.interest_id
		WHERE ui.user_id = $1
		ORDER BY ui.created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user interests: %w", err)
	}
	defer rows.Close()

	items := []*models.UserInterestDetail{}
	for rows.Next() {
		var item models.UserInterestDetail
		err := rows.Scan(
			&item.UserID, &item.InterestID, &item.CreatedAt,
			&item.Interest.ID, &item.Interest.Name, &item.Interest.Description, &item.Interest.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user interest: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user interests: %w", err)
	}
	return items, nil
}

// AddToUser records an interest selection for a user
func (r *InterestRepository) AddToUser(ctx context.Context, sel *models.UserInterest) error {
	query := `
		INSERT INTO user_interests (user_id, interest_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Pool.Exec(ctx, query, sel.UserID, sel.InterestID, sel.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("failed to add user interest: %w", err)
	}
	return nil
}

// RemoveFromUser deletes an interest selection for a user
func (r *InterestRepository) RemoveFromUser(ctx context.Context, userID, interestID string) error {
	query := `DELETE FROM user_interests WHERE user_id = $1 AND interest_id = $2`
	tag, err := r.db.Pool.Exec(ctx, query, userID, interestID)
	if err != nil {
		return fmt.Errorf("failed to remove user interest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
