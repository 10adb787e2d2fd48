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

func TestUserRepository_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepository(db)
	ctx := context.Background()

	email := "alice@example.com"
	user := &models.User{
		ID:          "u1",
		ProviderUID: "prov-1",
		Email:       &email,
		CreatedAt:   time.Now(),
	}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.ProviderUID, user.Email, user.DisplayName, user.PhotoURL, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, user))

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.ProviderUID, user.Email, user.DisplayName, user.PhotoURL, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, user), errs.ErrAlreadyExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByProviderUID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepository(db)
	ctx := context.Background()

	name := "Alice"
	now := time.Now()

	mock.ExpectQuery(`SELECT id, provider_uid, email, display_name, photo_url, created_at`).
		WithArgs("prov-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "provider_uid", "email", "display_name", "photo_url", "created_at",
		}).AddRow("u1", "prov-1", nil, &name, nil, now))
	user, err := r.GetByProviderUID(ctx, "prov-1")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "Alice", *user.DisplayName)

	mock.ExpectQuery(`SELECT id, provider_uid, email, display_name, photo_url, created_at`).
		WithArgs("prov-2").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByProviderUID(ctx, "prov-2")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Upsert(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepository(db)
	ctx := context.Background()

	email := "alice@example.com"
	now := time.Now()
	user := &models.User{ID: "u1", ProviderUID: "prov-1", Email: &email, CreatedAt: now}

	// Conflict path returns the existing row, not the candidate one
	mock.ExpectQuery(`ON CONFLICT \(provider_uid\) DO UPDATE`).
		WithArgs(user.ID, user.ProviderUID, user.Email, user.DisplayName, user.PhotoURL, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "provider_uid", "email", "display_name", "photo_url", "created_at",
		}).AddRow("existing", "prov-1", &email, nil, nil, now))

	out, err := r.Upsert(ctx, user)
	require.NoError(t, err)
	require.Equal(t, "existing", out.ID)
	require.Equal(t, "prov-1", out.ProviderUID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, "u1"))

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, "missing"), errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
