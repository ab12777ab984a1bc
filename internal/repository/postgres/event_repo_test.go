package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

var eventColumnNames = []string{
	"id", "code", "name", "description", "type", "venue", "capacity",
	"starts_at", "registration_deadline", "registration_fee", "registration_open",
	"status", "college_id", "created_by", "total_registrations", "total_attendance",
	"created_at", "updated_at",
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	starts := now.Add(48 * time.Hour)
	deadline := starts.Add(-24 * time.Hour)

	newEvent := func() *domain.Event {
		return &domain.Event{
			Name:                 "Tech Fest",
			Type:                 domain.EventTypeFest,
			Capacity:             100,
			StartsAt:             starts,
			RegistrationDeadline: deadline,
			RegistrationOpen:     true,
			Status:               domain.EventStatusActive,
			CollegeID:            "col-1",
			CreatedBy:            "admin-1",
			CreatedAt:            now,
			UpdatedAt:            now,
		}
	}

	t.Run("success derives code from college sequence", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT code FROM colleges WHERE id = \$1 FOR UPDATE`).
			WithArgs("col-1").
			WillReturnRows(sqlmock.NewRows([]string{"code"}).AddRow("COL001"))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE college_id = \$1`).
			WithArgs("col-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
		mock.ExpectQuery(`INSERT INTO events`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
		mock.ExpectCommit()

		event := newEvent()
		require.NoError(t, NewEventRepository(db).Create(ctx, event))
		require.Equal(t, "ev-uuid-1", event.ID)
		require.Equal(t, "EVT042_COL001", event.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown college", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT code FROM colleges WHERE id = \$1 FOR UPDATE`).
			WithArgs("col-missing").
			WillReturnRows(sqlmock.NewRows([]string{"code"}))
		mock.ExpectRollback()

		event := newEvent()
		event.CollegeID = "col-missing"
		err = NewEventRepository(db).Create(ctx, event)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, code, name, description, type, venue, capacity`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(eventColumnNames).AddRow(
				"ev-1", "EVT001_COL001", "Tech Fest", "annual fest", "fest", "Main Hall", 100,
				now.Add(48*time.Hour), now.Add(24*time.Hour), 0.0, true,
				"active", "col-1", "admin-1", 5, 2, now, now))

		event, err := NewEventRepository(db).GetByID(ctx, "ev-1")
		require.NoError(t, err)
		require.Equal(t, "EVT001_COL001", event.Code)
		require.Equal(t, 5, event.TotalRegistrations)
		require.Equal(t, 2, event.TotalAttendance)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, code, name, description, type, venue, capacity`).
			WithArgs("ev-missing").
			WillReturnRows(sqlmock.NewRows(eventColumnNames))

		_, err = NewEventRepository(db).GetByID(ctx, "ev-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_GetByCode(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE code = \$1`).
			WithArgs("EVT001_COL001").
			WillReturnRows(sqlmock.NewRows(eventColumnNames).AddRow(
				"ev-1", "EVT001_COL001", "Tech Fest", "annual fest", "fest", "Main Hall", 100,
				now.Add(48*time.Hour), now.Add(24*time.Hour), 0.0, true,
				"active", "col-1", "admin-1", 5, 2, now, now))

		event, err := NewEventRepository(db).GetByCode(ctx, "EVT001_COL001")
		require.NoError(t, err)
		require.Equal(t, "ev-1", event.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE code = \$1`).
			WithArgs("EVT999_COL001").
			WillReturnRows(sqlmock.NewRows(eventColumnNames))

		_, err = NewEventRepository(db).GetByCode(ctx, "EVT999_COL001")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_SetStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE events`).
		WithArgs("ev-1", "completed", false).
		WillReturnRows(sqlmock.NewRows(eventColumnNames).AddRow(
			"ev-1", "EVT001_COL001", "Tech Fest", nil, "fest", nil, 100,
			now, now, 0.0, false,
			"completed", "col-1", "admin-1", 5, 2, now, now))

	event, err := NewEventRepository(db).SetStatus(ctx, "ev-1", domain.EventStatusCompleted, false)
	require.NoError(t, err)
	require.Equal(t, domain.EventStatusCompleted, event.Status)
	require.False(t, event.RegistrationOpen)
	require.NoError(t, mock.ExpectationsWereMet())
}
