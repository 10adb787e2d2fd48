package repository

import (
	"context"
	"errors"
	"fmt"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// ContactRepository handles database operations for contact edges
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactDetailColumns = `
		SELECT c.contact_id, u.display_name, u.email, u.photo_url, c.status, c.created_at,
		       cat.id, cat.name, cat.color
		FROM contacts c
		JOIN users u ON u.id = c.contact_id
		LEFT JOIN contact_categories cat ON cat.id = c.category_id`

// Create inserts a new directed contact edge
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (user_id, contact_id, status, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		contact.UserID, contact.ContactID, contact.Status, contact.CategoryID, contact.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// Find retrieves a single edge by its composite key
func (r *ContactRepository) Find(ctx context.Context, userID, contactID string) (*models.Contact, error) {
	query := `
		SELECT user_id, contact_id, status, category_id, created_at
		FROM contacts
		WHERE user_id = $1 AND contact_id = $2
	`
	var contact models.Contact
	err := r.db.Pool.QueryRow(ctx, query, userID, contactID).Scan(
		&contact.UserID, &contact.ContactID, &contact.Status, &contact.CategoryID, &contact.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &contact, nil
}

// GetDetail retrieves a single edge denormalized with the counterpart's profile
// and category
func (r *ContactRepository) GetDetail(ctx context.Context, userID, contactID string) (*models.ContactDetail, error) {
	query := contactDetailColumns + `
		WHERE c.user_id = $1 AND c.contact_id = $2
	`
	detail, err := scanContactDetail(r.db.Pool.QueryRow(ctx, query, userID, contactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact detail: %w", err)
	}
	return detail, nil
}

// ListAccepted retrieves all accepted edges for a user, newest first, joined
// with the counterpart's profile and category
func (r *ContactRepository) ListAccepted(ctx context.Context, userID string) ([]*models.ContactDetail, error) {
	query := contactDetailColumns + `
		WHERE c.user_id = $1 AND c.status = $2
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query, userID, models.ContactStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	details := []*models.ContactDetail{}
	for rows.Next() {
		detail, err := scanContactDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}
	return details, nil
}

// ListPendingIncoming retrieves pending edges targeting a user, newest first,
// joined with the requester's profile
func (r *ContactRepository) ListPendingIncoming(ctx context.Context, userID string) ([]*models.ContactDetail, error) {
	query := `
		SELECT c.user_id, u.display_name, u.email, u.photo_url, c.status, c.created_at
		FROM contacts c
		JOIN users u ON u.id = c.user_id
		WHERE c.contact_id = $1 AND c.status = $2
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query, userID, models.ContactStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	details := []*models.ContactDetail{}
	for rows.Next() {
		var detail models.ContactDetail
		err := rows.Scan(
			&detail.ID, &detail.DisplayName, &detail.Email, &detail.PhotoURL,
			&detail.Status, &detail.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending request: %w", err)
		}
		details = append(details, &detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending requests: %w", err)
	}
	return details, nil
}

// Accept transitions the edge (requesterID -> accepterID) to ACCEPTED and
// creates the reciprocal ACCEPTED edge, all-or-nothing.
func (r *ContactRepository) Accept(ctx context.Context, requesterID, accepterID string) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = fmt.Errorf("failed to commit transaction: %w", e)
		}
	}()

	const sel = `SELECT status FROM contacts WHERE user_id=$1 AND contact_id=$2 FOR UPDATE`
	const upd = `UPDATE contacts SET status=$3 WHERE user_id=$1 AND contact_id=$2`
	const ins = `INSERT INTO contacts (user_id, contact_id, status, created_at) VALUES ($1, $2, $3, now())`

	var status string
	if err = tx.QueryRow(ctx, sel, requesterID, accepterID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("failed to lock contact: %w", err)
	}
	if status == models.ContactStatusAccepted {
		return errs.ErrAlreadyAccepted
	}

	if _, err = tx.Exec(ctx, upd, requesterID, accepterID, models.ContactStatusAccepted); err != nil {
		return fmt.Errorf("failed to accept contact: %w", err)
	}
	if _, err = tx.Exec(ctx, ins, accepterID, requesterID, models.ContactStatusAccepted); err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create reciprocal contact: %w", err)
	}
	return nil
}

// DeletePending deletes the edge (requesterID -> targetID) only if it is still
// pending
func (r *ContactRepository) DeletePending(ctx context.Context, requesterID, targetID string) error {
	query := `DELETE FROM contacts WHERE user_id = $1 AND contact_id = $2 AND status = $3`
	tag, err := r.db.Pool.Exec(ctx, query, requesterID, targetID, models.ContactStatusPending)
	if err != nil {
		return fmt.Errorf("failed to delete pending request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeletePair deletes both directions of the relationship between two users in
// a single statement. Deleting zero, one, or two edges are all success.
func (r *ContactRepository) DeletePair(ctx context.Context, userID, otherID string) error {
	query := `
		DELETE FROM contacts
		WHERE (user_id = $1 AND contact_id = $2) OR (user_id = $2 AND contact_id = $1)
	`
	if _, err := r.db.Pool.Exec(ctx, query, userID, otherID); err != nil {
		return fmt.Errorf("failed to delete contact pair: %w", err)
	}
	return nil
}

// UpdateCategory updates only the category on the edge (userID -> contactID)
func (r *ContactRepository) UpdateCategory(ctx context.Context, userID, contactID string, categoryID *string) error {
	query := `UPDATE contacts SET category_id = $3 WHERE user_id = $1 AND contact_id = $2`
	tag, err := r.db.Pool.Exec(ctx, query, userID, contactID, categoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("failed to update contact category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanContactDetail(row pgx.Row) (*models.ContactDetail, error) {
	var detail models.ContactDetail
	var catID, catName, catColor *string
	err := row.Scan(
		&detail.ID, &detail.DisplayName, &detail.Email, &detail.PhotoURL,
		&detail.Status, &detail.CreatedAt,
		&catID, &catName, &catColor,
	)
	if err != nil {
		return nil, err
	}
	if catID != nil && catName != nil {
		detail.Category = &models.CategorySummary{ID: *catID, Name: *catName, Color: catColor}
	}
	return &detail, nil
}
