package models

import (
	"time"
)

type Event struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category"`
	Location    string       `json:"location"`
	StartsAt    time.Time    `json:"starts_at"`
	EndsAt      time.Time    `json:"ends_at"`
	Capacity    int          `json:"capacity"`
	TicketTypes []TicketType `json:"ticket_types"`
	Seats       []Seat       `json:"seats,omitempty"`
	Version     int64        `json:"version"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (e *Event) TicketType(name string) (*TicketType, bool) {
	for i := range e.TicketTypes {
		if e.TicketTypes[i].Name == name {
			return &e.TicketTypes[i], true
		}
	}

	return nil, false
}

func (e *Event) Available() int {
	total := 0
	for _, tt := range e.TicketTypes {
		total += tt.Available()
	}

	return total
}

type SaleStatus string

const (
	SaleStatusOnSale  SaleStatus = "on_sale"
	SaleStatusLimited SaleStatus = "limited"
	SaleStatusSoldOut SaleStatus = "sold_out"
)

// limitedFraction is the share of remaining stock under which a ticket type
// is advertised as limited.
const limitedFraction = 0.1

// TicketType is a priced admission category with its own quota.
// Sold+Reserved never exceeds Total.
type TicketType struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Sold      int    `json:"sold"`
	Reserved  int    `json:"reserved"`
	BasePrice Money  `json:"base_price"`
}

func (t TicketType) Available() int {
	return t.Total - t.Sold - t.Reserved
}

func (t TicketType) SaleStatus() SaleStatus {
	available := t.Available()

	switch {
	case available <= 0:
		return SaleStatusSoldOut
	case float64(available) < float64(t.Total)*limitedFraction:
		return SaleStatusLimited
	default:
		return SaleStatusOnSale
	}
}

type Seat struct {
	ID         string `json:"id"`
	TicketType string `json:"ticket_type,omitempty"`
}

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatHeld      SeatStatus = "held"
	SeatSold      SeatStatus = "sold"
)

// SeatState is a read-only view derived from ledger claims.
type SeatState struct {
	Seat
	Status SeatStatus `json:"status"`
}

type EventFilter struct {
	Search   string
	Category string
	Page     int
	PageSize int
}
