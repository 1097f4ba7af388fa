package ledger

import (
	"fmt"

	"eventGate/internal/models"
)

// Restore rebuilds an event's book from persisted records. Sold and reserved
// counters are recomputed from the tickets and pending reservations instead
// of trusting the stored quota columns, which may lag behind.
func (l *Ledger) Restore(ev models.Event, pending []models.Reservation, tickets []models.Ticket) error {
	const op = "ledger.Restore"

	ev.TicketTypes = append([]models.TicketType(nil), ev.TicketTypes...)
	for i := range ev.TicketTypes {
		ev.TicketTypes[i].Sold = 0
		ev.TicketTypes[i].Reserved = 0
	}

	b, err := newBook(ev)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, t := range tickets {
		tt, ok := b.event.TicketType(t.TicketType)
		if !ok {
			return fmt.Errorf("%s: ticket %s: %w", op, t.ID, models.ErrTicketTypeNotFound)
		}
		tt.Sold++

		if t.SeatID != "" {
			b.holders[t.SeatID] = seatHolder{id: t.ID, sold: true}
		}

		c, ok := b.claims[t.ReservationID]
		if !ok {
			c = &claim{ticketType: t.TicketType, state: claimCommitted}
			b.claims[t.ReservationID] = c
		}
		c.quantity++
	}

	for _, r := range pending {
		if r.Status != models.ReservationPending {
			continue
		}
		tt, ok := b.event.TicketType(r.TicketType)
		if !ok {
			return fmt.Errorf("%s: reservation %s: %w", op, r.ID, models.ErrTicketTypeNotFound)
		}
		tt.Reserved += r.Quantity

		for _, seatID := range r.SeatIDs {
			if _, taken := b.holders[seatID]; taken {
				return fmt.Errorf("%s: reservation %s seat %q: %w", op, r.ID, seatID, models.ErrSeatAlreadyHeld)
			}
			b.holders[seatID] = seatHolder{id: r.ID}
		}

		b.claims[r.ID] = &claim{
			ticketType: r.TicketType,
			quantity:   r.Quantity,
			seats:      append([]string(nil), r.SeatIDs...),
			state:      claimHeld,
		}
	}

	for _, tt := range b.event.TicketTypes {
		if tt.Sold+tt.Reserved > tt.Total {
			return fmt.Errorf("%s: ticket type %q oversold: %w", op, tt.Name, models.ErrOutOfStock)
		}
	}

	l.mu.Lock()
	l.books[ev.ID] = b
	l.mu.Unlock()

	l.indexMu.Lock()
	for id := range b.claims {
		l.index[id] = ev.ID
	}
	l.indexMu.Unlock()

	return nil
}
