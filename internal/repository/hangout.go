package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// HangoutFilter holds the optional predicates for listing hangouts
type HangoutFilter struct {
	UserID       *string
	Title        *string
	IsPublic     *bool
	StartsAtFrom *time.Time
	StartsAtTo   *time.Time
	EndsAtFrom   *time.Time
	EndsAtTo     *time.Time
	LatMin       *float64
	LatMax       *float64
	LngMin       *float64
	LngMax       *float64
	InterestID   *string
	OrderBy      string
	OrderDesc    bool
	Limit        int
	Offset       int
}

// orderColumns whitelists sortable columns by their API name
var orderColumns = map[string]string{
	"startsAt":  "starts_at",
	"endsAt":    "ends_at",
	"createdAt": "created_at",
	"title":     "title",
}

// HangoutRepository handles database operations for hangouts and their visibility
type HangoutRepository struct {
	db *DB
}

// NewHangoutRepository creates a new hangout repository
func NewHangoutRepository(db *DB) *HangoutRepository {
	return &HangoutRepository{db: db}
}

const hangoutColumns = `id, user_id, title, description, location, latitude, longitude, starts_at, ends_at, is_public, created_at`

// Create creates a new hangout
func (r *HangoutRepository) Create(ctx context.Context, hangout *models.Hangout) error {
	query := `
		INSERT INTO hangouts (id, user_id, title, description, location, latitude, longitude, starts_at, ends_at, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		hangout.ID, hangout.UserID, hangout.Title, hangout.Description, hangout.Location,
		hangout.Latitude, hangout.Longitude, hangout.StartsAt, hangout.EndsAt, hangout.IsPublic,
		hangout.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("failed to create hangout: %w", err)
	}
	return nil
}

// List retrieves hangouts matching the filter predicates with pagination
func (r *HangoutRepository) List(ctx context.Context, filter HangoutFilter) ([]*models.Hangout, error) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.UserID != nil {
		add("user_id = $%d", *filter.UserID)
	}
	if filter.Title != nil {
		add("title ILIKE $%d", "%"+*filter.Title+"%")
	}
	if filter.IsPublic != nil {
		add("is_public = $%d", *filter.IsPublic)
	}
	if filter.StartsAtFrom != nil {
		add("starts_at >= $%d", *filter.StartsAtFrom)
	}
	if filter.StartsAtTo != nil {
		add("starts_at <= $%d", *filter.StartsAtTo)
	}
	if filter.EndsAtFrom != nil {
		add("ends_at >= $%d", *filter.EndsAtFrom)
	}
	if filter.EndsAtTo != nil {
		add("ends_at <= $%d", *filter.EndsAtTo)
	}
	if filter.LatMin != nil {
		add("latitude >= $%d", *filter.LatMin)
	}
	if filter.LatMax != nil {
		add("latitude <= $%d", *filter.LatMax)
	}
	if filter.LngMin != nil {
		add("longitude >= $%d", *filter.LngMin)
	}
	if filter.LngMax != nil {
		add("longitude <= $%d", *filter.LngMax)
	}
	if filter.InterestID != nil {
		add("user_id IN (SELECT user_id FROM user_interests WHERE interest_id = $%d)", *filter.InterestID)
	}

	query := `SELECT ` + hangoutColumns + ` FROM hangouts`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	orderCol, ok := orderColumns[filter.OrderBy]
	if !ok {
		orderCol = "starts_at"
	}
	dir := "ASC"
	if filter.OrderDesc {
		dir = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", orderCol, dir)

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list hangouts: %w", err)
	}
	defer rows.Close()

	hangouts := []*models.Hangout{}
	for rows.Next() {
		hangout, err := scanHangout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hangout: %w", err)
		}
		hangouts = append(hangouts, hangout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hangouts: %w", err)
	}
	return hangouts, nil
}

// GetByID retrieves a hangout by ID
func (r *HangoutRepository) GetByID(ctx context.Context, id string) (*models.Hangout, error) {
	query := `
		SELECT ` + hangoutColumns + `
		FROM hangouts
		WHERE id = $1
	`
	hangout, err := scanHangout(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hangout: %w", err)
	}
	return hangout, nil
}

// Update patches a hangout; nil fields are left unchanged
func (r *HangoutRepository) Update(ctx context.Context, id string, patch *models.HangoutPatch) (*models.Hangout, error) {
	query := `
		UPDATE hangouts
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    location = COALESCE($4, location),
		    latitude = COALESCE($5, latitude),
		    longitude = COALESCE($6, longitude),
		    starts_at = COALESCE($7, starts_at),
		    ends_at = COALESCE($8, ends_at),
		    is_public = COALESCE($9, is_public)
		WHERE id = $1
		RETURNING ` + hangoutColumns + `
	`
	hangout, err := scanHangout(r.db.Pool.QueryRow(ctx, query, id,
		patch.Title, patch.Description, patch.Location, patch.Latitude, patch.Longitude,
		patch.StartsAt, patch.EndsAt, patch.IsPublic,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update hangout: %w", err)
	}
	return hangout, nil
}

// Delete deletes a hangout by ID
func (r *HangoutRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM hangouts WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete hangout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListVisibility retrieves visibility entries for a hangout, newest first
func (r *HangoutRepository) ListVisibility(ctx context.Context, hangoutID string) ([]*models.HangoutVisibility, error) {
	query := `
		SELECT id, hangout_id, category_id, user_id, created_at
		FROM hangout_visibility
		WHERE hangout_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query, hangoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visibility: %w", err)
	}
	defer rows.Close()

	entries := []*models.HangoutVisibility{}
	for rows.Next() {
		var vis models.HangoutVisibility
		err := rows.Scan(&vis.ID, &vis.HangoutID, &vis.CategoryID, &vis.UserID, &vis.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visibility: %w", err)
		}
		entries = append(entries, &vis)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating visibility: %w", err)
	}
	return entries, nil
}

// AddVisibility creates a visibility entry for a hangout
func (r *HangoutRepository) AddVisibility(ctx context.Context, vis *models.HangoutVisibility) error {
	query := `
		INSERT INTO hangout_visibility (id, hangout_id, category_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Pool.Exec(ctx, query, vis.ID, vis.HangoutID, vis.CategoryID, vis.UserID, vis.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("failed to add visibility: %w", err)
	}
	return nil
}

// RemoveVisibility deletes a visibility entry by ID
func (r *HangoutRepository) RemoveVisibility(ctx context.Context, visibilityID string) error {
	query := `DELETE FROM hangout_visibility WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, query, visibilityID)
	if err != nil {
		return fmt.Errorf("failed to remove visibility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanHangout(row pgx.Row) (*models.Hangout, error) {
	var hangout models.Hangout
	err := row.Scan(
		&hangout.ID, &hangout.UserID, &hangout.Title, &hangout.Description, &hangout.Location,
		&hangout.Latitude, &hangout.Longitude, &hangout.StartsAt, &hangout.EndsAt,
		&hangout.IsPublic, &hangout.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &hangout, nil
}
