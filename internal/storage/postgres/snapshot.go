package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"eventGate/internal/models"
	"fmt"
	"time"
)

// Snapshot is the persisted state needed to rebuild the in-memory core.
type Snapshot struct {
	Events       []models.Event
	Reservations []models.Reservation
	Tickets      []models.Ticket
	Gates        []models.Gate
}

// ReservationsFor splits the snapshot's reservations and tickets by event.
func (s Snapshot) ReservationsFor(eventID string) (pending []models.Reservation, tickets []models.Ticket) {
	for _, r := range s.Reservations {
		if r.EventID == eventID && r.Status == models.ReservationPending {
			pending = append(pending, r)
		}
	}
	for _, t := range s.Tickets {
		if t.EventID == eventID {
			tickets = append(tickets, t)
		}
	}

	return pending, tickets
}

// LoadSnapshot reads every event, gate and ticket, all pending reservations
// and finished reservations that ended after since.
func (s *Storage) LoadSnapshot(ctx context.Context, since time.Time) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)

	if snap.Events, err = s.loadEvents(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Reservations, err = s.loadReservations(ctx, since); err != nil {
		return Snapshot{}, err
	}
	if snap.Tickets, err = s.loadTickets(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Gates, err = s.loadGates(ctx); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

func (s *Storage) loadEvents(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, title, description, category, location, starts_at, ends_at,
			capacity, ticket_types, seats, version, created_at
		FROM events
		ORDER BY starts_at ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			ev          models.Event
			endsAt      sql.NullTime
			ticketTypes []byte
			seats       []byte
		)
		err = rows.Scan(
			&ev.ID,
			&ev.Title,
			&ev.Description,
			&ev.Category,
			&ev.Location,
			&ev.StartsAt,
			&endsAt,
			&ev.Capacity,
			&ticketTypes,
			&seats,
			&ev.Version,
			&ev.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		if endsAt.Valid {
			ev.EndsAt = endsAt.Time
		}
		if err = json.Unmarshal(ticketTypes, &ev.TicketTypes); err != nil {
			return nil, fmt.Errorf("failed to decode ticket types of event %s: %w", ev.ID, err)
		}
		if err = json.Unmarshal(seats, &ev.Seats); err != nil {
			return nil, fmt.Errorf("failed to decode seats of event %s: %w", ev.ID, err)
		}

		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func (s *Storage) loadReservations(ctx context.Context, since time.Time) ([]models.Reservation, error) {
	query := `
		SELECT id, event_id, ticket_type, seat_ids, quantity, unit_price, owner_id,
			status, expires_at, ticket_ids, version, created_at
		FROM reservations
		WHERE status = 'pending' OR expires_at > $1
		ORDER BY created_at ASC`

	rows, err := s.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var (
			r         models.Reservation
			seatIDs   []byte
			ticketIDs []byte
			unitPrice int64
			status    string
		)
		err = rows.Scan(
			&r.ID,
			&r.EventID,
			&r.TicketType,
			&seatIDs,
			&r.Quantity,
			&unitPrice,
			&r.OwnerID,
			&status,
			&r.ExpiresAt,
			&ticketIDs,
			&r.Version,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}

		r.UnitPrice = models.Money(unitPrice)
		r.Status = models.ReservationStatus(status)
		if err = json.Unmarshal(seatIDs, &r.SeatIDs); err != nil {
			return nil, fmt.Errorf("failed to decode seats of reservation %s: %w", r.ID, err)
		}
		if err = json.Unmarshal(ticketIDs, &r.TicketIDs); err != nil {
			return nil, fmt.Errorf("failed to decode tickets of reservation %s: %w", r.ID, err)
		}

		reservations = append(reservations, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservations: %w", err)
	}

	return reservations, nil
}

func (s *Storage) loadTickets(ctx context.Context) ([]models.Ticket, error) {
	query := `
		SELECT id, event_id, reservation_id, owner_id, seat_id, ticket_type, price, status,
			code_hash, checked_in_at, gate_id, staff_id, version, issued_at
		FROM tickets
		ORDER BY issued_at ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var (
			t           models.Ticket
			price       int64
			status      string
			checkedInAt sql.NullTime
		)
		err = rows.Scan(
			&t.ID,
			&t.EventID,
			&t.ReservationID,
			&t.OwnerID,
			&t.SeatID,
			&t.TicketType,
			&price,
			&status,
			&t.CodeHash,
			&checkedInAt,
			&t.GateID,
			&t.StaffID,
			&t.Version,
			&t.IssuedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}

		t.Price = models.Money(price)
		t.Status = models.TicketStatus(status)
		if checkedInAt.Valid {
			at := checkedInAt.Time
			t.CheckedInAt = &at
		}

		tickets = append(tickets, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}

func (s *Storage) loadGates(ctx context.Context) ([]models.Gate, error) {
	query := `
		SELECT id, event_id, number, location, status, staff_count, total_checkins, version
		FROM gates
		ORDER BY event_id, number`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get gates: %w", err)
	}
	defer rows.Close()

	var gates []models.Gate
	for rows.Next() {
		var (
			g      models.Gate
			status string
		)
		err = rows.Scan(
			&g.ID,
			&g.EventID,
			&g.Number,
			&g.Location,
			&status,
			&g.StaffCount,
			&g.TotalCheckins,
			&g.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gate: %w", err)
		}

		g.Status = models.GateStatus(status)
		gates = append(gates, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gates: %w", err)
	}

	return gates, nil
}
