// Package booking coordinates short-lived holds on inventory during the
// booking flow and turns paid holds into tickets.
//
// Holds are grouped per event. Every state change of a hold takes the event's
// lock before calling into the ledger, so holds of one event are totally
// ordered while different events proceed in parallel. Payment capture runs
// outside the lock; the pending hold keeps the inventory reserved meanwhile.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"eventGate/internal/ledger"
	"eventGate/internal/lib/clock"
	"eventGate/internal/lib/codes"
	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/metrics"
	"eventGate/internal/models"
	"eventGate/internal/notify"
	"eventGate/internal/payment"
)

const (
	DefaultHoldTTL = 10 * time.Minute
	// DefaultRetention is how long finished holds stay readable.
	DefaultRetention = 24 * time.Hour
)

type Ledger interface {
	Reserve(eventID, ticketType string, quantity int, seatIDs []string) (string, error)
	Commit(reservationID string) ([]ledger.Allocation, error)
	Release(reservationID string) error
	Forget(reservationID string)
	Event(eventID string) (models.Event, error)
}

type Pricer interface {
	CurrentPrice(eventID, ticketType string) (models.Money, error)
}

// TicketIssuer receives tickets created from committed holds.
type TicketIssuer interface {
	Issue(tickets []models.Ticket)
}

type Recorder interface {
	RecordEvent(ev models.Event)
	RecordReservation(r models.Reservation)
	RecordTicket(t models.Ticket)
}

type eventHolds struct {
	mu    sync.Mutex
	holds map[string]*models.Reservation
}

type Coordinator struct {
	ledger    Ledger
	pricer    Pricer
	payments  payment.Capturer
	issuer    TicketIssuer
	recorder  Recorder
	publisher notify.Publisher
	clock     clock.Clock
	log       *slog.Logger
	metrics   *metrics.Metrics

	holdTTL   time.Duration
	retention time.Duration

	mu     sync.RWMutex
	events map[string]*eventHolds
	index  map[string]string
}

type Deps struct {
	Ledger    Ledger
	Pricer    Pricer
	Payments  payment.Capturer
	Issuer    TicketIssuer
	Recorder  Recorder
	Publisher notify.Publisher
	Clock     clock.Clock
	Log       *slog.Logger
	Metrics   *metrics.Metrics
}

type Option func(*Coordinator)

func WithHoldTTL(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.holdTTL = d
		}
	}
}

func WithRetention(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.retention = d
		}
	}
}

func New(deps Deps, opts ...Option) *Coordinator {
	c := &Coordinator{
		ledger:    deps.Ledger,
		pricer:    deps.Pricer,
		payments:  deps.Payments,
		issuer:    deps.Issuer,
		recorder:  deps.Recorder,
		publisher: deps.Publisher,
		clock:     deps.Clock,
		log:       deps.Log.With(slog.String("component", "booking")),
		metrics:   deps.Metrics,
		holdTTL:   DefaultHoldTTL,
		retention: DefaultRetention,
		events:    make(map[string]*eventHolds),
		index:     make(map[string]string),
	}

	if c.clock == nil {
		c.clock = clock.NewSystem()
	}
	if c.publisher == nil {
		c.publisher = notify.Discard{}
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type StartHoldInput struct {
	EventID    string
	TicketType string
	Quantity   int
	SeatIDs    []string
	OwnerID    string
}

// StartHold reserves inventory for a fixed time budget. Holds cannot be
// extended: an unfinished booking has to start over.
func (c *Coordinator) StartHold(ctx context.Context, in StartHoldInput) (models.Reservation, error) {
	const op = "booking.StartHold"

	if err := ctx.Err(); err != nil {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	price, err := c.pricer.CurrentPrice(in.EventID, in.TicketType)
	if err != nil {
		c.metrics.HoldRequest(outcome(err))
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	eh := c.eventHolds(in.EventID)
	now := c.clock.Now()

	eh.mu.Lock()
	id, err := c.ledger.Reserve(in.EventID, in.TicketType, in.Quantity, in.SeatIDs)
	if err != nil {
		eh.mu.Unlock()
		c.metrics.HoldRequest(outcome(err))
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	quantity := in.Quantity
	if quantity == 0 {
		quantity = len(in.SeatIDs)
	}

	hold := &models.Reservation{
		ID:         id,
		EventID:    in.EventID,
		TicketType: in.TicketType,
		SeatIDs:    append([]string(nil), in.SeatIDs...),
		Quantity:   quantity,
		UnitPrice:  price,
		OwnerID:    in.OwnerID,
		Status:     models.ReservationPending,
		ExpiresAt:  now.Add(c.holdTTL),
		Version:    1,
		CreatedAt:  now,
	}
	eh.holds[id] = hold
	snapshot := copyReservation(hold)
	eh.mu.Unlock()

	c.mu.Lock()
	c.index[id] = in.EventID
	c.mu.Unlock()

	c.metrics.HoldRequest("ok")
	c.recorder.RecordReservation(snapshot)
	c.recordEvent(in.EventID)

	c.log.Info("hold started",
		slog.String("hold_id", id),
		slog.String("event_id", in.EventID),
		slog.String("ticket_type", in.TicketType),
		slog.Int("quantity", quantity),
	)

	return snapshot, nil
}

type CommitInput struct {
	PaymentToken string
	OwnerID      string
}

// Commit captures payment for a pending hold and converts it into tickets.
// Tickets carry their redemption code only in this response.
func (c *Coordinator) Commit(ctx context.Context, holdID string, in CommitInput) ([]models.Ticket, error) {
	const op = "booking.Commit"

	eh, err := c.lookup(holdID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	eh.mu.Lock()
	hold, err := c.pendingHold(eh, holdID)
	var amount models.Money
	if err == nil {
		amount = hold.Total()
		_, err = commitOwner(hold, in.OwnerID)
	}
	eh.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	capture, err := c.payments.Capture(ctx, in.PaymentToken, amount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	eh.mu.Lock()
	tickets, snapshot, err := c.commitLocked(eh, holdID, in.OwnerID)
	eh.mu.Unlock()

	if err != nil {
		if cerr := c.payments.Cancel(context.WithoutCancel(ctx), capture.ID); cerr != nil {
			c.log.Error("failed to cancel payment capture",
				slog.String("hold_id", holdID),
				slog.String("capture_id", capture.ID),
				sl.Err(cerr),
			)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.metrics.HoldClosed(string(models.ReservationCommitted), 1)
	c.metrics.TicketsIssued(len(tickets))
	c.recorder.RecordReservation(snapshot)
	for _, t := range tickets {
		c.recorder.RecordTicket(t)
		c.publish(ctx, notify.KeyTicketIssued, issuedMessage(t))
	}
	c.recordEvent(snapshot.EventID)

	c.log.Info("hold committed",
		slog.String("hold_id", holdID),
		slog.String("event_id", snapshot.EventID),
		slog.Int("tickets", len(tickets)),
		slog.String("capture_id", capture.ID),
	)

	return tickets, nil
}

// commitOwner resolves who receives the tickets. A hold started by one owner
// cannot be committed for another.
func commitOwner(hold *models.Reservation, ownerID string) (string, error) {
	switch {
	case hold.OwnerID == "" && ownerID == "":
		return "", fmt.Errorf("hold has no owner: %w", models.ErrInvalidState)
	case ownerID == "":
		return hold.OwnerID, nil
	case hold.OwnerID != "" && hold.OwnerID != ownerID:
		return "", fmt.Errorf("hold belongs to another owner: %w", models.ErrInvalidState)
	}

	return ownerID, nil
}

// pendingHold returns the hold if it can still be committed, expiring it on
// the spot when its budget ran out. eh.mu must be held.
func (c *Coordinator) pendingHold(eh *eventHolds, holdID string) (*models.Reservation, error) {
	hold, ok := eh.holds[holdID]
	if !ok {
		return nil, models.ErrHoldNotFound
	}

	switch hold.Status {
	case models.ReservationPending:
	case models.ReservationExpired:
		return nil, models.ErrHoldExpired
	default:
		return nil, models.ErrInvalidState
	}

	if !c.clock.Now().Before(hold.ExpiresAt) {
		if err := c.expireLocked(hold); err != nil {
			return nil, err
		}
		return nil, models.ErrHoldExpired
	}

	return hold, nil
}

func (c *Coordinator) commitLocked(eh *eventHolds, holdID, ownerID string) ([]models.Ticket, models.Reservation, error) {
	hold, err := c.pendingHold(eh, holdID)
	if err != nil {
		return nil, models.Reservation{}, err
	}

	ownerID, err = commitOwner(hold, ownerID)
	if err != nil {
		return nil, models.Reservation{}, err
	}

	// Codes are generated before touching the ledger so a failure here
	// leaves the hold pending and the inventory untouched.
	redemption := make([]string, hold.Quantity)
	for i := range redemption {
		code, err := codes.Generate()
		if err != nil {
			return nil, models.Reservation{}, err
		}
		redemption[i] = code
	}

	allocs, err := c.ledger.Commit(holdID)
	if err != nil {
		return nil, models.Reservation{}, err
	}

	now := c.clock.Now()
	tickets := make([]models.Ticket, len(allocs))
	ticketIDs := make([]string, len(allocs))
	for i, a := range allocs {
		tickets[i] = models.Ticket{
			ID:             a.TicketID,
			EventID:        hold.EventID,
			ReservationID:  hold.ID,
			OwnerID:        ownerID,
			SeatID:         a.SeatID,
			TicketType:     hold.TicketType,
			Price:          hold.UnitPrice,
			Status:         models.TicketActive,
			RedemptionCode: redemption[i],
			CodeHash:       codes.Hash(redemption[i]),
			Version:        1,
			IssuedAt:       now,
		}
		ticketIDs[i] = a.TicketID
	}

	hold.Status = models.ReservationCommitted
	hold.OwnerID = ownerID
	hold.TicketIDs = ticketIDs
	hold.Version++

	c.issuer.Issue(tickets)

	return tickets, copyReservation(hold), nil
}

// Cancel releases a pending hold. Cancelling a hold that already ended
// without a sale is a no-op.
func (c *Coordinator) Cancel(ctx context.Context, holdID string) error {
	const op = "booking.Cancel"

	eh, err := c.lookup(holdID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	eh.mu.Lock()
	hold := eh.holds[holdID]
	if hold == nil {
		eh.mu.Unlock()
		return fmt.Errorf("%s: %w", op, models.ErrHoldNotFound)
	}

	switch hold.Status {
	case models.ReservationReleased, models.ReservationExpired:
		eh.mu.Unlock()
		return nil
	case models.ReservationCommitted:
		eh.mu.Unlock()
		return fmt.Errorf("%s: %w", op, models.ErrInvalidState)
	}

	if err := c.ledger.Release(holdID); err != nil {
		eh.mu.Unlock()
		return fmt.Errorf("%s: %w", op, err)
	}
	hold.Status = models.ReservationReleased
	hold.Version++
	snapshot := copyReservation(hold)
	eh.mu.Unlock()

	c.metrics.HoldClosed(string(models.ReservationReleased), 1)
	c.recorder.RecordReservation(snapshot)
	c.recordEvent(snapshot.EventID)

	c.log.Info("hold released", slog.String("hold_id", holdID), slog.String("event_id", snapshot.EventID))

	return nil
}

// ExpireSweep releases every pending hold whose budget ran out and forgets
// finished holds older than the retention period. It returns the number of
// holds expired.
func (c *Coordinator) ExpireSweep(ctx context.Context) (int, error) {
	const op = "booking.ExpireSweep"

	start := time.Now()
	defer func() { c.metrics.ObserveSweep(time.Since(start)) }()

	c.mu.RLock()
	events := make(map[string]*eventHolds, len(c.events))
	for id, eh := range c.events {
		events[id] = eh
	}
	c.mu.RUnlock()

	var (
		expired []models.Reservation
		pruned  []string
		errs    []error
	)

	for eventID, eh := range events {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		now := c.clock.Now()
		touched := false

		eh.mu.Lock()
		for id, hold := range eh.holds {
			if hold.Status == models.ReservationPending {
				if now.Before(hold.ExpiresAt) {
					continue
				}
				if err := c.expireLocked(hold); err != nil {
					errs = append(errs, fmt.Errorf("hold %s: %w", id, err))
					continue
				}
				expired = append(expired, copyReservation(hold))
				touched = true
				continue
			}

			if now.Sub(hold.ExpiresAt) > c.retention {
				if hold.Status == models.ReservationCommitted {
					c.ledger.Forget(id)
				}
				delete(eh.holds, id)
				pruned = append(pruned, id)
			}
		}
		eh.mu.Unlock()

		if touched {
			c.recordEvent(eventID)
		}
	}

	if len(pruned) > 0 {
		c.mu.Lock()
		for _, id := range pruned {
			delete(c.index, id)
		}
		c.mu.Unlock()
	}

	for _, r := range expired {
		c.recorder.RecordReservation(r)
		c.publish(ctx, notify.KeyHoldExpired, r)
	}
	c.metrics.HoldClosed(string(models.ReservationExpired), len(expired))

	if len(expired) > 0 {
		c.log.Info("expired holds released", slog.Int("count", len(expired)))
	}

	if err := errors.Join(errs...); err != nil {
		return len(expired), fmt.Errorf("%s: %w", op, err)
	}

	return len(expired), nil
}

// expireLocked releases the hold's inventory. The owning eventHolds lock
// must be held.
func (c *Coordinator) expireLocked(hold *models.Reservation) error {
	if err := c.ledger.Release(hold.ID); err != nil {
		return err
	}
	hold.Status = models.ReservationExpired
	hold.Version++

	return nil
}

func (c *Coordinator) Hold(holdID string) (models.Reservation, error) {
	const op = "booking.Hold"

	eh, err := c.lookup(holdID)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	eh.mu.Lock()
	defer eh.mu.Unlock()

	hold, ok := eh.holds[holdID]
	if !ok {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, models.ErrHoldNotFound)
	}

	return copyReservation(hold), nil
}

// Restore loads persisted holds after the ledger has been restored.
func (c *Coordinator) Restore(holds []models.Reservation) {
	for i := range holds {
		h := copyReservation(&holds[i])
		eh := c.eventHolds(h.EventID)

		eh.mu.Lock()
		eh.holds[h.ID] = &h
		eh.mu.Unlock()

		c.mu.Lock()
		c.index[h.ID] = h.EventID
		c.mu.Unlock()
	}
}

func (c *Coordinator) eventHolds(eventID string) *eventHolds {
	c.mu.RLock()
	eh, ok := c.events[eventID]
	c.mu.RUnlock()
	if ok {
		return eh
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if eh, ok = c.events[eventID]; !ok {
		eh = &eventHolds{holds: make(map[string]*models.Reservation)}
		c.events[eventID] = eh
	}

	return eh
}

func (c *Coordinator) lookup(holdID string) (*eventHolds, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	eventID, ok := c.index[holdID]
	if !ok {
		return nil, models.ErrHoldNotFound
	}

	return c.events[eventID], nil
}

func (c *Coordinator) recordEvent(eventID string) {
	ev, err := c.ledger.Event(eventID)
	if err != nil {
		c.log.Warn("failed to snapshot event", slog.String("event_id", eventID), sl.Err(err))
		return
	}
	c.recorder.RecordEvent(ev)
}

func (c *Coordinator) publish(ctx context.Context, key string, payload any) {
	if err := c.publisher.Publish(context.WithoutCancel(ctx), key, payload); err != nil {
		c.log.Warn("failed to publish", slog.String("routing_key", key), sl.Err(err))
	}
}

type ticketIssued struct {
	TicketID   string       `json:"ticket_id"`
	EventID    string       `json:"event_id"`
	OwnerID    string       `json:"owner_id"`
	TicketType string       `json:"ticket_type"`
	SeatID     string       `json:"seat_id,omitempty"`
	Price      models.Money `json:"price"`
}

func issuedMessage(t models.Ticket) ticketIssued {
	return ticketIssued{
		TicketID:   t.ID,
		EventID:    t.EventID,
		OwnerID:    t.OwnerID,
		TicketType: t.TicketType,
		SeatID:     t.SeatID,
		Price:      t.Price,
	}
}

func copyReservation(r *models.Reservation) models.Reservation {
	out := *r
	out.SeatIDs = append([]string(nil), r.SeatIDs...)
	out.TicketIDs = append([]string(nil), r.TicketIDs...)

	return out
}

func outcome(err error) string {
	switch {
	case errors.Is(err, models.ErrOutOfStock):
		return "out_of_stock"
	case errors.Is(err, models.ErrSeatAlreadyHeld):
		return "seat_held"
	case errors.Is(err, models.ErrInvalidSeat), errors.Is(err, models.ErrInvalidQuantity):
		return "invalid"
	case errors.Is(err, models.ErrEventNotFound), errors.Is(err, models.ErrTicketTypeNotFound):
		return "not_found"
	default:
		return "error"
	}
}
