package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationCommitted ReservationStatus = "committed"
	ReservationExpired   ReservationStatus = "expired"
	ReservationReleased  ReservationStatus = "released"
)

func (s ReservationStatus) Terminal() bool {
	return s != ReservationPending
}

// Reservation is a time-boxed claim on inventory. It is owned by the booking
// coordinator until committed.
type Reservation struct {
	ID         string            `json:"id"`
	EventID    string            `json:"event_id"`
	TicketType string            `json:"ticket_type"`
	SeatIDs    []string          `json:"seat_ids,omitempty"`
	Quantity   int               `json:"quantity"`
	UnitPrice  Money             `json:"unit_price"`
	OwnerID    string            `json:"owner_id,omitempty"`
	Status     ReservationStatus `json:"status"`
	ExpiresAt  time.Time         `json:"expires_at"`
	TicketIDs  []string          `json:"ticket_ids,omitempty"`
	Version    int64             `json:"version"`
	CreatedAt  time.Time         `json:"created_at"`
}

func (r Reservation) Total() Money {
	return r.UnitPrice.Mul(r.Quantity)
}
