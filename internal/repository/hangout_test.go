package repository

import (
	"context"
	"testing"
	"time"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestHangoutRepository_List_NoFilters(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewHangoutRepository(db)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, title, .* FROM hangouts ORDER BY starts_at ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(25, 0).
		WillReturnRows(hangoutRows().
			AddRow("h1", "u1", "Board games", nil, nil, nil, nil, now, nil, true, now))

	hangouts, err := r.List(ctx, HangoutFilter{Limit: 25})
	require.NoError(t, err)
	require.Len(t, hangouts, 1)
	require.Equal(t, "h1", hangouts[0].ID)
	require.True(t, hangouts[0].IsPublic)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHangoutRepository_List_Filtered(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewHangoutRepository(db)
	ctx := context.Background()

	userID := "u1"
	title := "games"
	isPublic := true
	from := time.Now()

	mock.ExpectQuery(`WHERE user_id = \$1 AND title ILIKE \$2 AND is_public = \$3 AND starts_at >= \$4 ORDER BY created_at DESC LIMIT \$5 OFFSET \$6`).
		WithArgs(userID, "%games%", isPublic, from, 10, 20).
		WillReturnRows(hangoutRows())

	hangouts, err := r.List(ctx, HangoutFilter{
		UserID:       &userID,
		Title:        &title,
		IsPublic:     &isPublic,
		StartsAtFrom: &from,
		OrderBy:      "createdAt",
		OrderDesc:    true,
		Limit:        10,
		Offset:       20,
	})
	require.NoError(t, err)
	require.Empty(t, hangouts)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHangoutRepository_List_InterestSubquery(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewHangoutRepository(db)
	ctx := context.Background()

	interestID := "i1"
	mock.ExpectQuery(`WHERE user_id IN \(SELECT user_id FROM user_interests WHERE interest_id = \$1\)`).
		WithArgs(interestID, 25, 0).
		WillReturnRows(hangoutRows())

	_, err := r.List(ctx, HangoutFilter{InterestID: &interestID, Limit: 25})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHangoutRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewHangoutRepository(db)

	mock.ExpectQuery(`FROM hangouts`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := r.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHangoutRepository_Update(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewHangoutRepository(db)
	ctx := context.Background()

	title := "Renamed"
	now := time.Now()
	patch := &models.HangoutPatch{Title: &title}

	mock.ExpectQuery(`UPDATE hangouts`).
		WithArgs("h1", patch.Title, patch.Description, patch.Location, patch.Latitude,
			patch.Longitude, patch.StartsAt, patch.EndsAt, patch.IsPublic).
		WillReturnRows(hangoutRows().
			AddRow("h1", "u1", "Renamed", nil, nil, nil, nil, now, nil, false, now))

	hangout, err := r.Update(ctx, "h1", patch)
	require.NoError(t, err)
	require.Equal(t, "Renamed", hangout.Title)

	mock.ExpectQuery(`UPDATE hangouts`).
		WithArgs("missing", patch.Title, patch.Description, patch.Location, patch.Latitude,
			patch.Longitude, patch.StartsAt, patch.EndsAt, patch.IsPublic).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Update(ctx, "missing", patch)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func hangoutRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "user_id", "title", "description", "location", "latitude", "longitude",
		"starts_at", "ends_at", "is_public", "created_at",
	})
}
