package models

import "errors"

var (
	ErrOutOfStock      = errors.New("out of stock")
	ErrInvalidSeat     = errors.New("invalid seat")
	ErrSeatAlreadyHeld = errors.New("seat already held")
	ErrHoldExpired     = errors.New("hold expired")
	ErrInvalidState    = errors.New("invalid state")

	ErrAlreadyCheckedIn = errors.New("ticket already checked in")
	ErrTicketVoided     = errors.New("ticket voided")
	ErrUnknownTicket    = errors.New("unknown ticket")
	ErrGateClosed       = errors.New("gate closed")
	ErrWrongEvent       = errors.New("ticket is not valid for this event")

	ErrEventNotFound      = errors.New("event not found")
	ErrEventExists        = errors.New("event already exists")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrHoldNotFound       = errors.New("hold not found")
	ErrGateNotFound       = errors.New("gate not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrPaymentDeclined    = errors.New("payment declined")
)
