package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"eventGate/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Storage{DB: db}, mock
}

func TestStorage_SaveGate(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("WHERE gates.version < EXCLUDED.version")).
		WithArgs("gate-1", "ev-1", 1, "North", "open", 3, int64(12), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.SaveGate(context.Background(), models.Gate{
		ID:            "gate-1",
		EventID:       "ev-1",
		Number:        1,
		Location:      "North",
		Status:        models.GateOpen,
		StaffCount:    3,
		TotalCheckins: 12,
		Version:       4,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_SaveTicketError(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectExec("INSERT INTO tickets").WillReturnError(errors.New("connection reset"))

	err := s.SaveTicket(context.Background(), models.Ticket{ID: "t-1", Status: models.TicketActive, Version: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save ticket")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_SaveReservation(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("WHERE reservations.version < EXCLUDED.version")).
		WithArgs("hold-1", "ev-1", "general", []byte(`["A1"]`), 1, int64(5000),
			"user-1", "pending", at, []byte(`[]`), int64(1), at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.SaveReservation(context.Background(), models.Reservation{
		ID:         "hold-1",
		EventID:    "ev-1",
		TicketType: "general",
		SeatIDs:    []string{"A1"},
		Quantity:   1,
		UnitPrice:  5000,
		OwnerID:    "user-1",
		Status:     models.ReservationPending,
		ExpiresAt:  at,
		Version:    1,
		CreatedAt:  at,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_LoadSnapshot(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)
	since := at.Add(-24 * time.Hour)

	mock.ExpectQuery("FROM events").WillReturnRows(sqlmock.NewRows([]string{
		"id", "title", "description", "category", "location", "starts_at", "ends_at",
		"capacity", "ticket_types", "seats", "version", "created_at",
	}).AddRow(
		"ev-1", "Tech Conference", "", "Technology", "Hall A", at, nil,
		10, []byte(`[{"name":"general","total":10,"sold":3,"reserved":0,"base_price":5000}]`), []byte(`[]`), int64(7), at,
	))

	mock.ExpectQuery("FROM reservations").WithArgs(since).WillReturnRows(sqlmock.NewRows([]string{
		"id", "event_id", "ticket_type", "seat_ids", "quantity", "unit_price", "owner_id",
		"status", "expires_at", "ticket_ids", "version", "created_at",
	}).AddRow(
		"hold-1", "ev-1", "general", []byte(`[]`), 2, int64(5000), "user-1",
		"pending", at.Add(10*time.Minute), []byte(`[]`), int64(1), at,
	))

	mock.ExpectQuery("FROM tickets").WillReturnRows(sqlmock.NewRows([]string{
		"id", "event_id", "reservation_id", "owner_id", "seat_id", "ticket_type", "price", "status",
		"code_hash", "checked_in_at", "gate_id", "staff_id", "version", "issued_at",
	}).AddRow(
		"t-1", "ev-1", "hold-0", "user-2", "", "general", int64(5000), "checked_in",
		"abc", at, "gate-1", "staff-1", int64(2), at,
	))

	mock.ExpectQuery("FROM gates").WillReturnRows(sqlmock.NewRows([]string{
		"id", "event_id", "number", "location", "status", "staff_count", "total_checkins", "version",
	}).AddRow("gate-1", "ev-1", 1, "North", "limited", 2, int64(1), int64(3)))

	snap, err := s.LoadSnapshot(context.Background(), since)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, snap.Events, 1)
	ev := snap.Events[0]
	assert.True(t, ev.EndsAt.IsZero())
	require.Len(t, ev.TicketTypes, 1)
	assert.Equal(t, models.Money(5000), ev.TicketTypes[0].BasePrice)

	require.Len(t, snap.Tickets, 1)
	assert.Equal(t, models.TicketCheckedIn, snap.Tickets[0].Status)
	require.NotNil(t, snap.Tickets[0].CheckedInAt)

	require.Len(t, snap.Gates, 1)
	assert.Equal(t, models.GateLimited, snap.Gates[0].Status)

	pending, tickets := snap.ReservationsFor("ev-1")
	assert.Len(t, pending, 1)
	assert.Len(t, tickets, 1)

	pending, tickets = snap.ReservationsFor("ev-2")
	assert.Empty(t, pending)
	assert.Empty(t, tickets)
}

func TestStorage_LoadSnapshotError(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectQuery("FROM events").WillReturnError(errors.New("relation does not exist"))

	_, err := s.LoadSnapshot(context.Background(), at)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get events")
}
