// Package checkin validates tickets at venue gates.
//
// Each ticket has its own lock and moves from active to checked_in through a
// compare-and-set under it, so concurrent scans of the same code admit
// exactly once. Gate counters only grow. The current rate of a gate is not
// stored; it is counted from a RateWindow on every read.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"eventGate/internal/lib/clock"
	"eventGate/internal/lib/codes"
	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/metrics"
	"eventGate/internal/models"
	"eventGate/internal/notify"

	"github.com/google/uuid"
)

const (
	DefaultRateWindow    = time.Hour
	DefaultRecentHistory = 100
)

type RateWindow interface {
	Add(ctx context.Context, gateID, ticketID string, at time.Time) error
	Count(ctx context.Context, gateID string, since time.Time) (int64, error)
}

type Inventory interface {
	Event(eventID string) (models.Event, error)
}

type Recorder interface {
	RecordTicket(t models.Ticket)
	RecordGate(g models.Gate)
	RecordCheckin(rec models.CheckinRecord)
}

type ticketEntry struct {
	mu     sync.Mutex
	ticket models.Ticket
}

type gateEntry struct {
	mu   sync.Mutex
	gate models.Gate
}

// history is a bounded, newest-last log of check-in attempts for one event.
type history struct {
	mu      sync.Mutex
	records []models.CheckinRecord
}

type Validator struct {
	inventory Inventory
	window    RateWindow
	recorder  Recorder
	publisher notify.Publisher
	clock     clock.Clock
	log       *slog.Logger
	metrics   *metrics.Metrics

	rateWindow  time.Duration
	historySize int
	newID       func() string

	mu      sync.RWMutex
	tickets map[string]*ticketEntry
	byCode  map[string]*ticketEntry
	byOwner map[string][]*ticketEntry
	gates   map[string]*gateEntry
	byEvent map[string][]*gateEntry
	recent  map[string]*history
}

type Deps struct {
	Inventory Inventory
	Window    RateWindow
	Recorder  Recorder
	Publisher notify.Publisher
	Clock     clock.Clock
	Log       *slog.Logger
	Metrics   *metrics.Metrics
}

type Option func(*Validator)

func WithRateWindow(d time.Duration) Option {
	return func(v *Validator) {
		if d > 0 {
			v.rateWindow = d
		}
	}
}

func WithRecentHistory(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.historySize = n
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(v *Validator) {
		v.newID = fn
	}
}

func New(deps Deps, opts ...Option) *Validator {
	v := &Validator{
		inventory:   deps.Inventory,
		window:      deps.Window,
		recorder:    deps.Recorder,
		publisher:   deps.Publisher,
		clock:       deps.Clock,
		log:         deps.Log.With(slog.String("component", "checkin")),
		metrics:     deps.Metrics,
		rateWindow:  DefaultRateWindow,
		historySize: DefaultRecentHistory,
		newID:       uuid.NewString,
		tickets:     make(map[string]*ticketEntry),
		byCode:      make(map[string]*ticketEntry),
		byOwner:     make(map[string][]*ticketEntry),
		gates:       make(map[string]*gateEntry),
		byEvent:     make(map[string][]*gateEntry),
		recent:      make(map[string]*history),
	}

	if v.clock == nil {
		v.clock = clock.NewSystem()
	}
	if v.publisher == nil {
		v.publisher = notify.Discard{}
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Issue registers committed tickets. It is the only way tickets enter the
// validator. Redemption codes are dropped; only their digests are kept.
func (v *Validator) Issue(tickets []models.Ticket) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, t := range tickets {
		v.addLocked(t)
	}
}

func (v *Validator) addLocked(t models.Ticket) {
	if _, ok := v.tickets[t.ID]; ok {
		return
	}

	t.RedemptionCode = ""
	e := &ticketEntry{ticket: t}

	v.tickets[t.ID] = e
	if t.CodeHash != "" {
		v.byCode[t.CodeHash] = e
	}
	v.byOwner[t.OwnerID] = append(v.byOwner[t.OwnerID], e)
}

// Redeem admits the ticket behind code at the gate. Checks run in a fixed
// order: code, gate, event, gate status, then the ticket's own state.
func (v *Validator) Redeem(ctx context.Context, code, gateID, staffID string) (models.CheckinRecord, error) {
	const op = "checkin.Redeem"

	v.mu.RLock()
	te := v.byCode[codes.Hash(code)]
	ge := v.gates[gateID]
	v.mu.RUnlock()

	now := v.clock.Now()
	rec := models.CheckinRecord{
		GateID:  gateID,
		StaffID: staffID,
		At:      now,
	}
	if ge != nil {
		ge.mu.Lock()
		rec.EventID = ge.gate.EventID
		ge.mu.Unlock()
	}

	var (
		gate models.Gate
		err  error
	)
	switch {
	case te == nil:
		err = models.ErrUnknownTicket
	case ge == nil:
		err = models.ErrGateNotFound
	default:
		rec.TicketID = te.ticket.ID
		gate, err = v.admit(ge, te, staffID, now)
	}

	if err != nil {
		rec = v.deny(ctx, rec, err)
		return rec, fmt.Errorf("%s: %w", op, err)
	}

	if werr := v.window.Add(ctx, gateID, rec.TicketID, now); werr != nil {
		v.log.Error("failed to record check-in in rate window", slog.String("gate_id", gateID), sl.Err(werr))
	}

	rec.Outcome = models.OutcomeCheckedIn
	v.remember(rec)

	v.recorder.RecordTicket(te.snapshot())
	v.recorder.RecordGate(gate)
	v.recorder.RecordCheckin(rec)
	v.metrics.Checkin(string(models.OutcomeCheckedIn))
	v.publish(ctx, rec)

	v.log.Info("ticket checked in",
		slog.String("ticket_id", rec.TicketID),
		slog.String("gate_id", gateID),
		slog.String("staff_id", staffID),
	)

	return rec, nil
}

// admit performs the compare-and-set from active to checked_in and counts
// the admission. The gate stays locked throughout, so an admission cannot
// slip past a concurrent close.
func (v *Validator) admit(ge *gateEntry, te *ticketEntry, staffID string, now time.Time) (models.Gate, error) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	te.mu.Lock()
	defer te.mu.Unlock()

	if te.ticket.EventID != ge.gate.EventID {
		return models.Gate{}, models.ErrWrongEvent
	}
	if ge.gate.Status == models.GateClosed {
		return models.Gate{}, models.ErrGateClosed
	}

	switch te.ticket.Status {
	case models.TicketVoided:
		return models.Gate{}, models.ErrTicketVoided
	case models.TicketCheckedIn:
		return models.Gate{}, models.ErrAlreadyCheckedIn
	}

	at := now
	te.ticket.Status = models.TicketCheckedIn
	te.ticket.CheckedInAt = &at
	te.ticket.GateID = ge.gate.ID
	te.ticket.StaffID = staffID
	te.ticket.Version++

	ge.gate.TotalCheckins++
	ge.gate.Version++

	return ge.gate, nil
}

// deny fills in the denial outcome and records the attempt.
func (v *Validator) deny(ctx context.Context, rec models.CheckinRecord, err error) models.CheckinRecord {
	reason := denialReason(err)
	rec.Outcome = models.OutcomeDenied
	rec.Reason = reason

	v.metrics.Checkin(reason)

	// Without a known gate there is no event to attach the attempt to.
	if rec.EventID == "" {
		return rec
	}

	v.remember(rec)
	v.recorder.RecordCheckin(rec)
	v.publish(ctx, rec)

	v.log.Info("check-in denied",
		slog.String("gate_id", rec.GateID),
		slog.String("ticket_id", rec.TicketID),
		slog.String("reason", reason),
	)

	return rec
}

func denialReason(err error) string {
	switch {
	case errors.Is(err, models.ErrUnknownTicket):
		return "unknown_ticket"
	case errors.Is(err, models.ErrAlreadyCheckedIn):
		return "already_checked_in"
	case errors.Is(err, models.ErrTicketVoided):
		return "voided"
	case errors.Is(err, models.ErrGateClosed):
		return "gate_closed"
	case errors.Is(err, models.ErrWrongEvent):
		return "wrong_event"
	case errors.Is(err, models.ErrGateNotFound):
		return "unknown_gate"
	default:
		return "error"
	}
}

// Void cancels an active ticket. Voiding twice is a no-op; a ticket that
// has already been used cannot be voided.
func (v *Validator) Void(ctx context.Context, ticketID string) (models.Ticket, error) {
	const op = "checkin.Void"

	v.mu.RLock()
	te := v.tickets[ticketID]
	v.mu.RUnlock()

	if te == nil {
		return models.Ticket{}, fmt.Errorf("%s: %w", op, models.ErrTicketNotFound)
	}

	te.mu.Lock()
	switch te.ticket.Status {
	case models.TicketCheckedIn:
		te.mu.Unlock()
		return models.Ticket{}, fmt.Errorf("%s: %w", op, models.ErrInvalidState)
	case models.TicketVoided:
		t := te.ticket
		te.mu.Unlock()
		return t, nil
	}
	te.ticket.Status = models.TicketVoided
	te.ticket.Version++
	t := te.ticket
	te.mu.Unlock()

	v.recorder.RecordTicket(t)
	v.log.Info("ticket voided", slog.String("ticket_id", ticketID))

	return t, nil
}

func (v *Validator) Ticket(ticketID string) (models.Ticket, error) {
	v.mu.RLock()
	te := v.tickets[ticketID]
	v.mu.RUnlock()

	if te == nil {
		return models.Ticket{}, fmt.Errorf("checkin.Ticket: %w", models.ErrTicketNotFound)
	}

	return te.snapshot(), nil
}

// TicketsByOwner lists a user's tickets, oldest first.
func (v *Validator) TicketsByOwner(ownerID string) []models.Ticket {
	v.mu.RLock()
	entries := append([]*ticketEntry(nil), v.byOwner[ownerID]...)
	v.mu.RUnlock()

	tickets := make([]models.Ticket, 0, len(entries))
	for _, e := range entries {
		tickets = append(tickets, e.snapshot())
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].IssuedAt.Before(tickets[j].IssuedAt)
	})

	return tickets
}

func (e *ticketEntry) snapshot() models.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.ticket
	if t.CheckedInAt != nil {
		at := *t.CheckedInAt
		t.CheckedInAt = &at
	}

	return t
}

func (v *Validator) remember(rec models.CheckinRecord) {
	v.mu.Lock()
	h, ok := v.recent[rec.EventID]
	if !ok {
		h = &history{}
		v.recent[rec.EventID] = h
	}
	v.mu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, rec)
	if over := len(h.records) - v.historySize; over > 0 {
		h.records = append(h.records[:0], h.records[over:]...)
	}
}

// RecentCheckins returns up to n latest attempts for the event, newest
// first, including denied ones.
func (v *Validator) RecentCheckins(eventID string, n int) []models.CheckinRecord {
	v.mu.RLock()
	h, ok := v.recent[eventID]
	v.mu.RUnlock()
	if !ok {
		return []models.CheckinRecord{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 || n > len(h.records) {
		n = len(h.records)
	}

	out := make([]models.CheckinRecord, 0, n)
	for i := len(h.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h.records[i])
	}

	return out
}

func (v *Validator) publish(ctx context.Context, rec models.CheckinRecord) {
	if err := v.publisher.Publish(context.WithoutCancel(ctx), notify.KeyCheckinRecorded, rec); err != nil {
		v.log.Warn("failed to publish check-in", sl.Err(err))
	}
}
