package models

import "time"

type TicketStatus string

const (
	TicketActive    TicketStatus = "active"
	TicketCheckedIn TicketStatus = "checked_in"
	TicketVoided    TicketStatus = "voided"
)

type Ticket struct {
	ID            string       `json:"id"`
	EventID       string       `json:"event_id"`
	ReservationID string       `json:"reservation_id"`
	OwnerID       string       `json:"owner_id"`
	SeatID        string       `json:"seat_id,omitempty"`
	TicketType    string       `json:"ticket_type"`
	Price         Money        `json:"price"`
	Status        TicketStatus `json:"status"`
	// RedemptionCode is only populated in the response that issues the ticket.
	RedemptionCode string     `json:"redemption_code,omitempty"`
	CodeHash       string     `json:"-"`
	CheckedInAt    *time.Time `json:"checked_in_at,omitempty"`
	GateID         string     `json:"gate_id,omitempty"`
	StaffID        string     `json:"staff_id,omitempty"`
	Version        int64      `json:"version"`
	IssuedAt       time.Time  `json:"issued_at"`
}

type CheckinOutcome string

const (
	OutcomeCheckedIn CheckinOutcome = "checked_in"
	OutcomeDenied    CheckinOutcome = "denied"
)

type CheckinRecord struct {
	TicketID string         `json:"ticket_id,omitempty"`
	EventID  string         `json:"event_id"`
	GateID   string         `json:"gate_id"`
	StaffID  string         `json:"staff_id,omitempty"`
	Outcome  CheckinOutcome `json:"outcome"`
	Reason   string         `json:"reason,omitempty"`
	At       time.Time      `json:"at"`
}
