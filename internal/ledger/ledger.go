// Package ledger is the authoritative record of ticket inventory.
//
// Every event owns one book guarded by its own mutex. All reservations,
// commits and releases for an event pass through that mutex, so quota
// counters and seat claims change together and are totally ordered.
// Different events never share a lock.
package ledger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"eventGate/internal/models"

	"github.com/google/uuid"
)

type Allocation struct {
	TicketID string
	SeatID   string
}

type claimState int

const (
	claimHeld claimState = iota
	claimCommitted
)

type claim struct {
	ticketType string
	quantity   int
	seats      []string
	state      claimState
}

type seatHolder struct {
	id   string
	sold bool
}

type book struct {
	mu      sync.Mutex
	event   models.Event
	seats   map[string]models.Seat
	holders map[string]seatHolder
	claims  map[string]*claim
}

type Ledger struct {
	mu    sync.RWMutex
	books map[string]*book

	// indexMu is never held while acquiring another lock.
	indexMu sync.Mutex
	index   map[string]string

	newID func() string
	now   func() time.Time
}

type Option func(*Ledger)

// WithIDGenerator replaces uuid-based identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) {
		l.newID = fn
	}
}

func WithNow(fn func() time.Time) Option {
	return func(l *Ledger) {
		l.now = fn
	}
}

func New(opts ...Option) *Ledger {
	l := &Ledger{
		books: make(map[string]*book),
		index: make(map[string]string),
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// AddEvent registers an event with its quotas and seat map. An empty ID is
// replaced with a generated one.
func (l *Ledger) AddEvent(ev models.Event) (models.Event, error) {
	const op = "ledger.AddEvent"

	if ev.ID == "" {
		ev.ID = l.newID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = l.now()
	}

	b, err := newBook(ev)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.books[ev.ID]; ok {
		return models.Event{}, fmt.Errorf("%s: %w", op, models.ErrEventExists)
	}
	l.books[ev.ID] = b

	return b.snapshot(), nil
}

func newBook(ev models.Event) (*book, error) {
	if len(ev.TicketTypes) == 0 {
		return nil, fmt.Errorf("event has no ticket types: %w", models.ErrInvalidQuantity)
	}

	ev.TicketTypes = append([]models.TicketType(nil), ev.TicketTypes...)
	ev.Seats = append([]models.Seat(nil), ev.Seats...)

	seen := make(map[string]struct{}, len(ev.TicketTypes))
	capacity := 0
	for _, tt := range ev.TicketTypes {
		if tt.Name == "" {
			return nil, fmt.Errorf("ticket type name is empty: %w", models.ErrTicketTypeNotFound)
		}
		if _, dup := seen[tt.Name]; dup {
			return nil, fmt.Errorf("duplicate ticket type %q: %w", tt.Name, models.ErrInvalidState)
		}
		seen[tt.Name] = struct{}{}

		if tt.Total < 0 || tt.Sold < 0 || tt.Reserved < 0 || tt.Sold+tt.Reserved > tt.Total || tt.BasePrice < 0 {
			return nil, fmt.Errorf("ticket type %q: %w", tt.Name, models.ErrInvalidQuantity)
		}
		capacity += tt.Total
	}
	if ev.Capacity < capacity {
		ev.Capacity = capacity
	}

	b := &book{
		event:   ev,
		seats:   make(map[string]models.Seat, len(ev.Seats)),
		holders: make(map[string]seatHolder),
		claims:  make(map[string]*claim),
	}

	for _, s := range ev.Seats {
		if s.ID == "" {
			return nil, fmt.Errorf("seat id is empty: %w", models.ErrInvalidSeat)
		}
		if _, dup := b.seats[s.ID]; dup {
			return nil, fmt.Errorf("duplicate seat %q: %w", s.ID, models.ErrInvalidSeat)
		}
		if s.TicketType != "" {
			if _, ok := seen[s.TicketType]; !ok {
				return nil, fmt.Errorf("seat %q: %w", s.ID, models.ErrTicketTypeNotFound)
			}
		}
		b.seats[s.ID] = s
	}

	return b, nil
}

func (l *Ledger) book(eventID string) (*book, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.books[eventID]
	if !ok {
		return nil, models.ErrEventNotFound
	}

	return b, nil
}

func (l *Ledger) bookFor(reservationID string) (*book, bool) {
	l.indexMu.Lock()
	eventID, ok := l.index[reservationID]
	l.indexMu.Unlock()
	if !ok {
		return nil, false
	}

	b, err := l.book(eventID)
	if err != nil {
		return nil, false
	}

	return b, true
}

// Reserve claims quantity units of a ticket type, optionally pinned to
// specific seats. When seats are given the quantity must match their count
// (zero means "as many as seats").
func (l *Ledger) Reserve(eventID, ticketType string, quantity int, seatIDs []string) (string, error) {
	const op = "ledger.Reserve"

	if len(seatIDs) > 0 && quantity == 0 {
		quantity = len(seatIDs)
	}
	if quantity <= 0 || (len(seatIDs) > 0 && quantity != len(seatIDs)) {
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidQuantity)
	}

	b, err := l.book(eventID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id := l.newID()

	b.mu.Lock()
	err = b.reserve(id, ticketType, quantity, seatIDs)
	b.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	l.indexMu.Lock()
	l.index[id] = eventID
	l.indexMu.Unlock()

	return id, nil
}

func (b *book) reserve(id, ticketType string, quantity int, seatIDs []string) error {
	tt, ok := b.event.TicketType(ticketType)
	if !ok {
		return models.ErrTicketTypeNotFound
	}

	requested := make(map[string]struct{}, len(seatIDs))
	for _, seatID := range seatIDs {
		seat, ok := b.seats[seatID]
		if !ok {
			return fmt.Errorf("seat %q: %w", seatID, models.ErrInvalidSeat)
		}
		if seat.TicketType != "" && seat.TicketType != ticketType {
			return fmt.Errorf("seat %q is %s only: %w", seatID, seat.TicketType, models.ErrInvalidSeat)
		}
		if _, dup := requested[seatID]; dup {
			return fmt.Errorf("seat %q requested twice: %w", seatID, models.ErrInvalidSeat)
		}
		requested[seatID] = struct{}{}
	}

	if quantity > tt.Available() {
		return models.ErrOutOfStock
	}

	for _, seatID := range seatIDs {
		if _, taken := b.holders[seatID]; taken {
			return fmt.Errorf("seat %q: %w", seatID, models.ErrSeatAlreadyHeld)
		}
	}

	for _, seatID := range seatIDs {
		b.holders[seatID] = seatHolder{id: id}
	}
	tt.Reserved += quantity
	b.event.Version++

	b.claims[id] = &claim{
		ticketType: ticketType,
		quantity:   quantity,
		seats:      append([]string(nil), seatIDs...),
		state:      claimHeld,
	}

	return nil
}

// Commit converts a held reservation into sold inventory and returns one
// allocation per admitted unit.
func (l *Ledger) Commit(reservationID string) ([]Allocation, error) {
	const op = "ledger.Commit"

	b, ok := l.bookFor(reservationID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrHoldNotFound)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.claims[reservationID]
	if !ok {
		// Released claims are dropped, so there is nothing left to sell.
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidState)
	}
	if c.state != claimHeld {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidState)
	}

	tt, ok := b.event.TicketType(c.ticketType)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrTicketTypeNotFound)
	}

	allocs := make([]Allocation, c.quantity)
	for i := range allocs {
		allocs[i].TicketID = l.newID()
		if i < len(c.seats) {
			allocs[i].SeatID = c.seats[i]
			b.holders[c.seats[i]] = seatHolder{id: allocs[i].TicketID, sold: true}
		}
	}

	tt.Reserved -= c.quantity
	tt.Sold += c.quantity
	b.event.Version++
	c.state = claimCommitted

	return allocs, nil
}

// Release returns a held reservation's inventory. Releasing an unknown or
// already released reservation is a no-op; a committed one is rejected.
func (l *Ledger) Release(reservationID string) error {
	const op = "ledger.Release"

	b, ok := l.bookFor(reservationID)
	if !ok {
		return nil
	}

	b.mu.Lock()
	released, err := b.release(reservationID)
	b.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if released {
		l.indexMu.Lock()
		delete(l.index, reservationID)
		l.indexMu.Unlock()
	}

	return nil
}

// Forget drops a committed reservation's claim once nothing refers to it
// any more. Sold counters and sold seats are unaffected; held claims are
// left alone.
func (l *Ledger) Forget(reservationID string) {
	b, ok := l.bookFor(reservationID)
	if !ok {
		return
	}

	b.mu.Lock()
	c, ok := b.claims[reservationID]
	forget := ok && c.state == claimCommitted
	if forget {
		delete(b.claims, reservationID)
	}
	b.mu.Unlock()

	if forget {
		l.indexMu.Lock()
		delete(l.index, reservationID)
		l.indexMu.Unlock()
	}
}

func (b *book) release(id string) (bool, error) {
	c, ok := b.claims[id]
	if !ok {
		return false, nil
	}
	if c.state == claimCommitted {
		return false, models.ErrInvalidState
	}

	if tt, ok := b.event.TicketType(c.ticketType); ok {
		tt.Reserved -= c.quantity
	}
	for _, seatID := range c.seats {
		if h, held := b.holders[seatID]; held && h.id == id {
			delete(b.holders, seatID)
		}
	}
	delete(b.claims, id)
	b.event.Version++

	return true, nil
}

// ReleaseMore raises a ticket type's quota. Quotas never shrink, so the
// total can never fall below what was sold.
func (l *Ledger) ReleaseMore(eventID, ticketType string, additional int) (models.TicketType, error) {
	const op = "ledger.ReleaseMore"

	if additional <= 0 {
		return models.TicketType{}, fmt.Errorf("%s: %w", op, models.ErrInvalidQuantity)
	}

	b, err := l.book(eventID)
	if err != nil {
		return models.TicketType{}, fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	tt, ok := b.event.TicketType(ticketType)
	if !ok {
		return models.TicketType{}, fmt.Errorf("%s: %w", op, models.ErrTicketTypeNotFound)
	}

	tt.Total += additional
	b.event.Capacity += additional
	b.event.Version++

	return *tt, nil
}

func (l *Ledger) Event(eventID string) (models.Event, error) {
	const op = "ledger.Event"

	b, err := l.book(eventID)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.snapshot(), nil
}

// Events returns one page of events ordered by start time together with the
// number of events matching the filter.
func (l *Ledger) Events(filter models.EventFilter) ([]models.Event, int) {
	l.mu.RLock()
	books := make([]*book, 0, len(l.books))
	for _, b := range l.books {
		books = append(books, b)
	}
	l.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	category := strings.ToLower(strings.TrimSpace(filter.Category))

	events := make([]models.Event, 0, len(books))
	for _, b := range books {
		b.mu.Lock()
		ev := b.snapshot()
		b.mu.Unlock()

		if category != "" && category != "all" && strings.ToLower(ev.Category) != category {
			continue
		}
		if search != "" && !matches(ev, search) {
			continue
		}
		events = append(events, ev)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].StartsAt.Equal(events[j].StartsAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].StartsAt.Before(events[j].StartsAt)
	})

	total := len(events)
	if filter.PageSize <= 0 {
		return events, total
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * filter.PageSize
	if start >= total {
		return []models.Event{}, total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}

	return events[start:end], total
}

func matches(ev models.Event, search string) bool {
	for _, field := range []string{ev.Title, ev.Description, ev.Location, ev.Category} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}

	return false
}

func (l *Ledger) Availability(eventID, ticketType string) (models.TicketType, error) {
	const op = "ledger.Availability"

	b, err := l.book(eventID)
	if err != nil {
		return models.TicketType{}, fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	tt, ok := b.event.TicketType(ticketType)
	if !ok {
		return models.TicketType{}, fmt.Errorf("%s: %w", op, models.ErrTicketTypeNotFound)
	}

	return *tt, nil
}

// SeatMap derives every seat's status from the current claims.
func (l *Ledger) SeatMap(eventID string) ([]models.SeatState, error) {
	const op = "ledger.SeatMap"

	b, err := l.book(eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.SeatState, 0, len(b.event.Seats))
	for _, seat := range b.event.Seats {
		state := models.SeatState{Seat: seat, Status: models.SeatAvailable}
		if h, ok := b.holders[seat.ID]; ok {
			state.Status = models.SeatHeld
			if h.sold {
				state.Status = models.SeatSold
			}
		}
		out = append(out, state)
	}

	return out, nil
}

func (b *book) snapshot() models.Event {
	ev := b.event
	ev.TicketTypes = append([]models.TicketType(nil), b.event.TicketTypes...)
	ev.Seats = append([]models.Seat(nil), b.event.Seats...)

	return ev
}
