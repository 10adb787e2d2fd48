package repository

import (
	"context"
	"testing"
	"time"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestContactRepository_Create_OK_and_Duplicate(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewContactRepository(db)
	ctx := context.Background()

	contact := &models.Contact{
		UserID:    "u1",
		ContactID: "u2",
		Status:    models.ContactStatusPending,
		CreatedAt: time.Now(),
	}

	// OK
	mock.ExpectExec(`INSERT INTO contacts`).
		WithArgs(contact.UserID, contact.ContactID, contact.Status, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, contact))

	// Composite key violation
	mock.ExpectExec(`INSERT INTO contacts`).
		WithArgs(contact.UserID, contact.ContactID, contact.Status, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, contact), errs.ErrAlreadyExists)

	// Target user does not exist
	mock.ExpectExec(`INSERT INTO contacts`).
		WithArgs(contact.UserID, contact.ContactID, contact.Status, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	require.ErrorIs(t, r.Create(ctx, contact), errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Find(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewContactRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT user_id, contact_id, status, category_id, created_at`).
		WithArgs("u1", "u2").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "contact_id", "status", "category_id", "created_at"}).
			AddRow("u1", "u2", models.ContactStatusPending, nil, time.Now()))
	contact, err := r.Find(ctx, "u1", "u2")
	require.NoError(t, err)
	require.Equal(t, "u2", contact.ContactID)
	require.Equal(t, models.ContactStatusPending, contact.Status)
	require.Nil(t, contact.CategoryID)

	mock.ExpectQuery(`SELECT user_id, contact_id, status, category_id, created_at`).
		WithArgs("u1", "u3").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Find(ctx, "u1", "u3")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Accept_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewContactRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM contacts WHERE user_id=\$1 AND contact_id=\$2 FOR UPDATE`).
		WithArgs("u1", "u2").
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(models.ContactStatusPending))
	mock.ExpectExec(`UPDATE contacts SET status=\$3`).
		WithArgs("u1", "u2", models.ContactStatusAccepted).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO contacts \(user_id, contact_id, status, created_at\)`).
		WithArgs("u2", "u1", models.ContactStatusAccepted).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, r.Accept(ctx, "u1", "u2"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Accept_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewContactRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM contacts WHERE user_id=\$1 AND contact_id=\$2 FOR UPDATE`).
		WithArgs("u1", "u2").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	require.ErrorIs(t, r.Accept(ctx, "u1", "u2"), errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Accept_AlreadyAccepted(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewContactRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM contacts WHERE user_id=\$1 AND contact_id=\$2 FOR UPDATE`).
		WithArgs("u1", "u2").
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(models.ContactStatusAccepted))
	mock.ExpectRollback()

	require.ErrorIs(t, r.Accept(ctx, "u1", "u2"), errs.ErrAlreadyAccepted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Accept_ReciprocalConflict(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewContactRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM contacts WHERE user_id=\$1 AND contact_id=\$2 FOR UPDATE`).
		WithArgs("u1", "u2").
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(models.ContactStatusPending))
	mock.ExpectExec(`UPDATE contacts SET status=\$3`).
		WithArgs("u1", "u2", models.ContactStatusAccepted).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO contacts \(user_id, contact_id, status, created_at\)`).
		WithArgs("u2", "u1", models.ContactStatusAccepted).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	require.ErrorIs(t, r.Accept(ctx, "u1", "u2"), errs.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_DeletePending(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewContactRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM contacts WHERE user_id = \$1 AND contact_id = \$2 AND status = \$3`).
		WithArgs("u1", "u2", models.ContactStatusPending).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.DeletePending(ctx, "u1", "u2"))

	// Absent or already accepted
	mock.ExpectExec(`DELETE FROM contacts WHERE user_id = \$1 AND contact_id = \$2 AND status = \$3`).
		WithArgs("u1", "u2", models.ContactStatusPending).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.DeletePending(ctx, "u1", "u2"), errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_DeletePair_Idempotent(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewContactRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM contacts`).
		WithArgs("u1", "u2").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	require.NoError(t, r.DeletePair(ctx, "u1", "u2"))

	// Nothing left to delete is still success
	mock.ExpectExec(`DELETE FROM contacts`).
		WithArgs("u1", "u2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.NoError(t, r.DeletePair(ctx, "u1", "u2"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_UpdateCategory(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewContactRepository(db)
	ctx := context.Background()
	categoryID := "cat1"

	mock.ExpectExec(`UPDATE contacts SET category_id = \$3`).
		WithArgs("u1", "u2", &categoryID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.UpdateCategory(ctx, "u1", "u2", &categoryID))

	mock.ExpectExec(`UPDATE contacts SET category_id = \$3`).
		WithArgs("u1", "u3", &categoryID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.UpdateCategory(ctx, "u1", "u3", &categoryID), errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_ListAccepted(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewContactRepository(db)
	ctx := context.Background()

	alice := "Alice"
	email := "alice@example.com"
	catID := "cat1"
	catName := "Friends"
	now := time.Now()

	mock.ExpectQuery(`SELECT c.contact_id, u.display_name, u.email, u.photo_url, c.status, c.created_at`).
		WithArgs("u1", models.ContactStatusAccepted).
		WillReturnRows(pgxmock.NewRows([]string{
			"contact_id", "display_name", "email", "photo_url", "status", "created_at",
			"id", "name", "color",
		}).
			AddRow("u2", &alice, &email, nil, models.ContactStatusAccepted, now, &catID, &catName, nil).
			AddRow("u3", nil, nil, nil, models.ContactStatusAccepted, now, nil, nil, nil))

	contacts, err := r.ListAccepted(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	require.Equal(t, "u2", contacts[0].ID)
	require.NotNil(t, contacts[0].Category)
	require.Equal(t, "Friends", contacts[0].Category.Name)
	require.Equal(t, "u3", contacts[1].ID)
	require.Nil(t, contacts[1].Category)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_ListPendingIncoming(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewContactRepository(db)
	ctx := context.Background()

	bob := "Bob"
	now := time.Now()

	mock.ExpectQuery(`SELECT c.user_id, u.display_name, u.email, u.photo_url, c.status, c.created_at`).
		WithArgs("u1", models.ContactStatusPending).
		WillReturnRows(pgxmock.NewRows([]string{
			"user_id", "display_name", "email", "photo_url", "status", "created_at",
		}).AddRow("u2", &bob, nil, nil, models.ContactStatusPending, now))

	requests, err := r.ListPendingIncoming(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Equal(t, "u2", requests[0].ID)
	require.Equal(t, "Bob", *requests[0].DisplayName)

	require.NoError(t, mock.ExpectationsWereMet())
}
