package repository

import (
	"context"
	"errors"
	"fmt"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, provider_uid, email, display_name, photo_url, created_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, provider_uid, email, display_name, photo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		user.ID, user.ProviderUID, user.Email, user.DisplayName, user.PhotoURL, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// List retrieves all users, newest first
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID, &user.ProviderUID, &user.Email, &user.DisplayName, &user.PhotoURL, &user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByProviderUID retrieves a user by identity provider UID
func (r *UserRepository) GetByProviderUID(ctx context.Context, providerUID string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE provider_uid = $1
	`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, providerUID))
}

// Upsert creates or refreshes a user keyed by identity provider UID
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, provider_uid, email, display_name, photo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (provider_uid) DO UPDATE
		SET email = EXCLUDED.email, display_name = EXCLUDED.display_name, photo_url = EXCLUDED.photo_url
		RETURNING ` + userColumns + `
	`
	row := r.db.Pool.QueryRow(ctx, query,
		user.ID, user.ProviderUID, user.Email, user.DisplayName, user.PhotoURL, user.CreatedAt,
	)
	var out models.User
	err := row.Scan(&out.ID, &out.ProviderUID, &out.Email, &out.DisplayName, &out.PhotoURL, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &out, nil
}

// Update patches profile fields on a user; nil fields are left unchanged
func (r *UserRepository) Update(ctx context.Context, id string, email, displayName, photoURL *string) (*models.User, error) {
	query := `
		UPDATE users
		SET email = COALESCE($2, email),
		    display_name = COALESCE($3, display_name),
		    photo_url = COALESCE($4, photo_url)
		WHERE id = $1
		RETURNING ` + userColumns + `
	`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, id, email, displayName, photoURL))
}

// UpdatePhotoURL sets the photo URL for a user
func (r *UserRepository) UpdatePhotoURL(ctx context.Context, id, photoURL string) error {
	query := `UPDATE users SET photo_url = $2 WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, query, id, photoURL)
	if err != nil {
		return fmt.Errorf("failed to update photo url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.ProviderUID, &user.Email, &user.DisplayName, &user.PhotoURL, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
