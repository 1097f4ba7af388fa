package checkin

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"eventGate/internal/checkin/window"
	"eventGate/internal/ledger"
	"eventGate/internal/lib/clock"
	"eventGate/internal/lib/codes"
	"eventGate/internal/lib/logger/handlers/slogdiscard"
	"eventGate/internal/models"
	"eventGate/internal/storage/journal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var doorsOpen = time.Date(2026, 11, 1, 17, 0, 0, 0, time.UTC)

type fixture struct {
	v      *Validator
	ledger *ledger.Ledger
	clock  *clock.Manual
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	clk := clock.NewManual(doorsOpen)
	l := ledger.New()

	for _, id := range []string{"ev-1", "ev-2"} {
		_, err := l.AddEvent(models.Event{
			ID:          id,
			Title:       "Jazz Night " + id,
			StartsAt:    doorsOpen.Add(time.Hour),
			TicketTypes: []models.TicketType{{Name: "general", Total: 100, BasePrice: 2500}},
		})
		require.NoError(t, err)
	}

	var seq atomic.Int64
	opts = append([]Option{WithIDGenerator(func() string {
		return fmt.Sprintf("gate-%d", seq.Add(1))
	})}, opts...)

	v := New(Deps{
		Inventory: l,
		Window:    window.NewMemory(time.Hour),
		Recorder:  journal.Discard{},
		Clock:     clk,
		Log:       slogdiscard.NewDiscardLogger(),
	}, opts...)

	return &fixture{v: v, ledger: l, clock: clk}
}

// issue registers a ticket for the event and returns its redemption code.
func (f *fixture) issue(t *testing.T, ticketID, eventID, ownerID string) string {
	t.Helper()

	code, err := codes.Generate()
	require.NoError(t, err)

	f.v.Issue([]models.Ticket{{
		ID:             ticketID,
		EventID:        eventID,
		OwnerID:        ownerID,
		TicketType:     "general",
		Status:         models.TicketActive,
		RedemptionCode: code,
		CodeHash:       codes.Hash(code),
		IssuedAt:       f.clock.Now(),
	}})

	return code
}

func (f *fixture) gate(t *testing.T, eventID string) models.Gate {
	t.Helper()

	g, err := f.v.CreateGate(context.Background(), CreateGateInput{EventID: eventID, Location: "North Entrance", StaffCount: 2})
	require.NoError(t, err)

	return g
}

func TestValidator_RedeemOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	code := f.issue(t, "t-1", "ev-1", "user-1")
	g := f.gate(t, "ev-1")

	rec, err := f.v.Redeem(ctx, code, g.ID, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCheckedIn, rec.Outcome)
	assert.Equal(t, "t-1", rec.TicketID)
	assert.Equal(t, doorsOpen, rec.At)

	tk, err := f.v.Ticket("t-1")
	require.NoError(t, err)
	assert.Equal(t, models.TicketCheckedIn, tk.Status)
	assert.Equal(t, g.ID, tk.GateID)
	assert.Equal(t, "staff-1", tk.StaffID)
	require.NotNil(t, tk.CheckedInAt)
	assert.Empty(t, tk.RedemptionCode)

	again, err := f.v.Redeem(ctx, code, g.ID, "staff-1")
	assert.ErrorIs(t, err, models.ErrAlreadyCheckedIn)
	assert.Equal(t, models.OutcomeDenied, again.Outcome)
	assert.Equal(t, "already_checked_in", again.Reason)
	assert.Equal(t, "t-1", again.TicketID)

	got, err := f.v.Gate(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalCheckins)
	assert.Equal(t, int64(1), got.CurrentRate)
}

func TestValidator_RedeemRejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	closed := models.GateClosed

	cases := []struct {
		name    string
		setup      func(t *testing.T, f *fixture) (code, gateID string)
		wantErr    error
		wantReason string
	}{
		{
			name: "unknown code",
			setup: func(t *testing.T, f *fixture) (string, string) {
				return "NOTAREALCODE", f.gate(t, "ev-1").ID
			},
			wantErr:    models.ErrUnknownTicket,
			wantReason: "unknown_ticket",
		},
		{
			name: "unknown gate",
			setup: func(t *testing.T, f *fixture) (string, string) {
				return f.issue(t, "t-1", "ev-1", "user-1"), "gate-missing"
			},
			wantErr:    models.ErrGateNotFound,
			wantReason: "unknown_gate",
		},
		{
			name: "gate of another event",
			setup: func(t *testing.T, f *fixture) (string, string) {
				return f.issue(t, "t-1", "ev-1", "user-1"), f.gate(t, "ev-2").ID
			},
			wantErr:    models.ErrWrongEvent,
			wantReason: "wrong_event",
		},
		{
			name: "closed gate",
			setup: func(t *testing.T, f *fixture) (string, string) {
				code := f.issue(t, "t-1", "ev-1", "user-1")
				g := f.gate(t, "ev-1")
				_, err := f.v.UpdateGate(ctx, g.ID, UpdateGateInput{Status: &closed})
				require.NoError(t, err)
				return code, g.ID
			},
			wantErr:    models.ErrGateClosed,
			wantReason: "gate_closed",
		},
		{
			name: "voided ticket",
			setup: func(t *testing.T, f *fixture) (string, string) {
				code := f.issue(t, "t-1", "ev-1", "user-1")
				_, err := f.v.Void(ctx, "t-1")
				require.NoError(t, err)
				return code, f.gate(t, "ev-1").ID
			},
			wantErr:    models.ErrTicketVoided,
			wantReason: "voided",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			code, gateID := tc.setup(t, f)

			rec, err := f.v.Redeem(ctx, code, gateID, "staff-1")
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, models.OutcomeDenied, rec.Outcome)
			assert.Equal(t, tc.wantReason, rec.Reason)
			assert.Equal(t, gateID, rec.GateID)

			if tk, err := f.v.Ticket("t-1"); err == nil {
				assert.NotEqual(t, models.TicketCheckedIn, tk.Status)
			}
		})
	}
}

func TestValidator_ConcurrentRedeemAdmitsOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	code := f.issue(t, "t-1", "ev-1", "user-1")
	gates := []models.Gate{f.gate(t, "ev-1"), f.gate(t, "ev-1")}

	const scanners = 16

	var (
		wg        sync.WaitGroup
		admitted  atomic.Int64
		duplicate atomic.Int64
	)

	for i := 0; i < scanners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			_, err := f.v.Redeem(ctx, code, gates[i%len(gates)].ID, "staff")
			switch {
			case err == nil:
				admitted.Add(1)
			case assert.ErrorIs(t, err, models.ErrAlreadyCheckedIn):
				duplicate.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), admitted.Load())
	assert.Equal(t, int64(scanners-1), duplicate.Load())

	var total int64
	for _, g := range f.v.Gates(ctx, "ev-1") {
		total += g.TotalCheckins
	}
	assert.Equal(t, int64(1), total)
}

func TestValidator_ClosedGateAdmitsNoMore(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	g := f.gate(t, "ev-1")

	const holders = 64

	issued := make([]string, holders)
	for i := range issued {
		issued[i] = f.issue(t, fmt.Sprintf("t-%d", i), "ev-1", "user-1")
	}

	var (
		wg       sync.WaitGroup
		admitted atomic.Int64
	)

	start := make(chan struct{})
	for _, code := range issued {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			<-start

			if _, err := f.v.Redeem(ctx, code, g.ID, "staff"); err == nil {
				admitted.Add(1)
			} else {
				assert.ErrorIs(t, err, models.ErrGateClosed)
			}
		}(code)
	}

	closed := models.GateClosed
	close(start)
	atClose, err := f.v.UpdateGate(ctx, g.ID, UpdateGateInput{Status: &closed})
	require.NoError(t, err)
	wg.Wait()

	final, err := f.v.Gate(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, atClose.TotalCheckins, final.TotalCheckins)
	assert.Equal(t, admitted.Load(), final.TotalCheckins)
}

func TestValidator_Void(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	code := f.issue(t, "t-1", "ev-1", "user-1")
	f.issue(t, "t-2", "ev-1", "user-1")
	g := f.gate(t, "ev-1")

	_, err := f.v.Redeem(ctx, code, g.ID, "staff-1")
	require.NoError(t, err)

	_, err = f.v.Void(ctx, "t-1")
	assert.ErrorIs(t, err, models.ErrInvalidState)

	tk, err := f.v.Void(ctx, "t-2")
	require.NoError(t, err)
	assert.Equal(t, models.TicketVoided, tk.Status)

	tk, err = f.v.Void(ctx, "t-2")
	require.NoError(t, err)
	assert.Equal(t, models.TicketVoided, tk.Status)

	_, err = f.v.Void(ctx, "t-404")
	assert.ErrorIs(t, err, models.ErrTicketNotFound)
}

func TestValidator_RateWindowSlides(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	g := f.gate(t, "ev-1")

	for i := 0; i < 3; i++ {
		code := f.issue(t, fmt.Sprintf("t-%d", i), "ev-1", "user-1")
		_, err := f.v.Redeem(ctx, code, g.ID, "staff-1")
		require.NoError(t, err)
		f.clock.Advance(20 * time.Minute)
	}

	rate, err := f.v.CurrentRate(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rate)

	f.clock.Advance(15 * time.Minute)

	rate, err = f.v.CurrentRate(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rate)

	got, err := f.v.Gate(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TotalCheckins, "totals never decrease")

	_, err = f.v.CurrentRate(ctx, "gate-missing")
	assert.ErrorIs(t, err, models.ErrGateNotFound)
}

func TestValidator_RecentCheckinsIncludeDenials(t *testing.T) {
	t.Parallel()

	f := newFixture(t, WithRecentHistory(3))
	ctx := context.Background()
	g := f.gate(t, "ev-1")

	code := f.issue(t, "t-1", "ev-1", "user-1")

	_, err := f.v.Redeem(ctx, code, g.ID, "staff-1")
	require.NoError(t, err)
	f.clock.Advance(time.Minute)

	_, err = f.v.Redeem(ctx, code, g.ID, "staff-1")
	require.Error(t, err)
	f.clock.Advance(time.Minute)

	_, err = f.v.Redeem(ctx, "BOGUS", g.ID, "staff-2")
	require.Error(t, err)

	recent := f.v.RecentCheckins("ev-1", 10)
	require.Len(t, recent, 3)
	assert.Equal(t, "unknown_ticket", recent[0].Reason)
	assert.Equal(t, models.OutcomeDenied, recent[0].Outcome)
	assert.Equal(t, "already_checked_in", recent[1].Reason)
	assert.Equal(t, models.OutcomeCheckedIn, recent[2].Outcome)

	f.clock.Advance(time.Minute)
	_, err = f.v.Redeem(ctx, "BOGUS2", g.ID, "staff-2")
	require.Error(t, err)

	recent = f.v.RecentCheckins("ev-1", 0)
	require.Len(t, recent, 3, "history is bounded")
	assert.Equal(t, models.OutcomeDenied, recent[2].Outcome)

	assert.Len(t, f.v.RecentCheckins("ev-1", 1), 1)
	assert.Empty(t, f.v.RecentCheckins("ev-2", 10))
}

func TestValidator_Gates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	first := f.gate(t, "ev-1")
	second := f.gate(t, "ev-1")
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, models.GateOpen, first.Status)

	_, err := f.v.CreateGate(ctx, CreateGateInput{EventID: "ev-404"})
	assert.ErrorIs(t, err, models.ErrEventNotFound)

	bogus := models.GateStatus("half-open")
	_, err = f.v.UpdateGate(ctx, first.ID, UpdateGateInput{Status: &bogus})
	assert.ErrorIs(t, err, models.ErrInvalidState)

	limited := models.GateLimited
	staff := 5
	updated, err := f.v.UpdateGate(ctx, first.ID, UpdateGateInput{Status: &limited, StaffCount: &staff})
	require.NoError(t, err)
	assert.Equal(t, models.GateLimited, updated.Status)
	assert.Equal(t, 5, updated.StaffCount)
	assert.Greater(t, updated.Version, first.Version)

	_, err = f.v.UpdateGate(ctx, "gate-404", UpdateGateInput{Status: &limited})
	assert.ErrorIs(t, err, models.ErrGateNotFound)

	gates := f.v.Gates(ctx, "ev-1")
	require.Len(t, gates, 2)
	assert.Equal(t, first.ID, gates[0].ID)
	assert.Empty(t, f.v.Gates(ctx, "ev-2"))
}

func TestValidator_Metrics(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	res, err := f.ledger.Reserve("ev-1", "general", 2, nil)
	require.NoError(t, err)
	_, err = f.ledger.Commit(res)
	require.NoError(t, err)

	g := f.gate(t, "ev-1")
	code := f.issue(t, "t-1", "ev-1", "user-1")
	_, err = f.v.Redeem(ctx, code, g.ID, "staff-1")
	require.NoError(t, err)

	m, err := f.v.Metrics(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.Checkins)
	assert.Equal(t, int64(1), m.Rate)
	assert.Equal(t, 98, m.AvailableTickets)
	assert.Equal(t, 2, m.SoldTickets)
	assert.Len(t, m.Gates, 1)

	_, err = f.v.Metrics(ctx, "ev-404")
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestValidator_TicketsByOwnerAndRestore(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	f.issue(t, "t-1", "ev-1", "user-1")
	f.clock.Advance(time.Minute)
	f.issue(t, "t-2", "ev-2", "user-1")
	f.issue(t, "t-3", "ev-1", "user-2")

	mine := f.v.TicketsByOwner("user-1")
	require.Len(t, mine, 2)
	assert.Equal(t, "t-1", mine[0].ID)
	assert.Equal(t, "t-2", mine[1].ID)
	assert.Empty(t, mine[0].RedemptionCode)

	assert.Empty(t, f.v.TicketsByOwner("user-3"))

	code, err := codes.Generate()
	require.NoError(t, err)

	f.v.Restore(
		[]models.Gate{{ID: "gate-r", EventID: "ev-1", Number: 9, Status: models.GateOpen, TotalCheckins: 7, Version: 3}},
		[]models.Ticket{{ID: "t-r", EventID: "ev-1", OwnerID: "user-3", Status: models.TicketActive, CodeHash: codes.Hash(code)}},
	)

	g, err := f.v.Gate(context.Background(), "gate-r")
	require.NoError(t, err)
	assert.Equal(t, int64(7), g.TotalCheckins)

	_, err = f.v.Redeem(context.Background(), code, "gate-r", "staff-1")
	require.NoError(t, err)

	g, err = f.v.Gate(context.Background(), "gate-r")
	require.NoError(t, err)
	assert.Equal(t, int64(8), g.TotalCheckins)
	assert.Len(t, f.v.TicketsByOwner("user-3"), 1)
}
