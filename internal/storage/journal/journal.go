// Package journal persists ledger, reservation, ticket and gate records
// behind the in-memory core. Records are queued after the caller has left
// its critical section and written by a single worker; failed writes are
// retried with backoff and logged, never reported to the caller.
package journal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/metrics"
	"eventGate/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	SaveEvent(ctx context.Context, ev models.Event) error
	SaveReservation(ctx context.Context, r models.Reservation) error
	SaveTicket(ctx context.Context, t models.Ticket) error
	SaveGate(ctx context.Context, g models.Gate) error
	SaveCheckin(ctx context.Context, rec models.CheckinRecord) error
}

type entry struct {
	kind  string
	id    string
	write func(ctx context.Context, s Store) error
}

type Journal struct {
	store   Store
	log     *slog.Logger
	metrics *metrics.Metrics

	queue        chan entry
	attempts     int
	backoff      time.Duration
	writeTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

type Option func(*Journal)

func WithRetry(attempts int, backoff time.Duration) Option {
	return func(j *Journal) {
		if attempts > 0 {
			j.attempts = attempts
		}
		j.backoff = backoff
	}
}

func WithBuffer(n int) Option {
	return func(j *Journal) {
		j.queue = make(chan entry, n)
	}
}

func New(store Store, log *slog.Logger, m *metrics.Metrics, opts ...Option) *Journal {
	j := &Journal{
		store:        store,
		log:          log.With(slog.String("component", "journal")),
		metrics:      m,
		queue:        make(chan entry, 1024),
		attempts:     5,
		backoff:      200 * time.Millisecond,
		writeTimeout: 5 * time.Second,
		done:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(j)
	}

	go j.run()

	return j
}

func (j *Journal) RecordEvent(ev models.Event) {
	j.enqueue(entry{kind: "event", id: ev.ID, write: func(ctx context.Context, s Store) error {
		return s.SaveEvent(ctx, ev)
	}})
}

func (j *Journal) RecordReservation(r models.Reservation) {
	j.enqueue(entry{kind: "reservation", id: r.ID, write: func(ctx context.Context, s Store) error {
		return s.SaveReservation(ctx, r)
	}})
}

func (j *Journal) RecordTicket(t models.Ticket) {
	t.RedemptionCode = ""
	j.enqueue(entry{kind: "ticket", id: t.ID, write: func(ctx context.Context, s Store) error {
		return s.SaveTicket(ctx, t)
	}})
}

func (j *Journal) RecordGate(g models.Gate) {
	j.enqueue(entry{kind: "gate", id: g.ID, write: func(ctx context.Context, s Store) error {
		return s.SaveGate(ctx, g)
	}})
}

func (j *Journal) RecordCheckin(rec models.CheckinRecord) {
	j.enqueue(entry{kind: "checkin", id: rec.TicketID, write: func(ctx context.Context, s Store) error {
		return s.SaveCheckin(ctx, rec)
	}})
}

func (j *Journal) enqueue(e entry) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		j.log.Warn("journal closed, record dropped", slog.String("kind", e.kind), slog.String("id", e.id))
		return
	}

	j.queue <- e
	j.metrics.JournalBacklog(len(j.queue))
}

func (j *Journal) run() {
	defer close(j.done)

	for e := range j.queue {
		j.write(e)
		j.metrics.JournalBacklog(len(j.queue))
	}
}

func (j *Journal) write(e entry) {
	log := j.log.With(slog.String("kind", e.kind), slog.String("id", e.id))

	delay := j.backoff
	for attempt := 1; attempt <= j.attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), j.writeTimeout)
		err := e.write(ctx, j.store)
		cancel()

		if err == nil {
			return
		}

		j.metrics.JournalFailure(e.kind)
		log.Warn("failed to persist record", slog.Int("attempt", attempt), sl.Err(err))

		if attempt < j.attempts && delay > 0 {
			time.Sleep(delay)
			delay *= 2
		}
	}

	log.Error("giving up on record", slog.Int("attempts", j.attempts))
}

// Close stops accepting records and waits for the queue to drain or ctx to
// expire.
func (j *Journal) Close(ctx context.Context) error {
	j.mu.Lock()
	if !j.closed {
		j.closed = true
		close(j.queue)
	}
	j.mu.Unlock()

	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Discard is used when no database is configured.
type Discard struct{}

func (Discard) RecordEvent(models.Event)             {}
func (Discard) RecordReservation(models.Reservation) {}
func (Discard) RecordTicket(models.Ticket)           {}
func (Discard) RecordGate(models.Gate)               {}
func (Discard) RecordCheckin(models.CheckinRecord)   {}
