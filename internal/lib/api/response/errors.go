package response

import (
	"errors"
	"net/http"

	"eventGate/internal/models"
)

var domainErrors = []struct {
	err    error
	status int
}{
	{models.ErrEventNotFound, http.StatusNotFound},
	{models.ErrTicketTypeNotFound, http.StatusNotFound},
	{models.ErrHoldNotFound, http.StatusNotFound},
	{models.ErrGateNotFound, http.StatusNotFound},
	{models.ErrTicketNotFound, http.StatusNotFound},

	{models.ErrHoldExpired, http.StatusGone},
	{models.ErrPaymentDeclined, http.StatusPaymentRequired},
	{models.ErrInvalidQuantity, http.StatusBadRequest},
	{models.ErrInvalidSeat, http.StatusBadRequest},

	{models.ErrOutOfStock, http.StatusConflict},
	{models.ErrSeatAlreadyHeld, http.StatusConflict},
	{models.ErrInvalidState, http.StatusConflict},
	{models.ErrEventExists, http.StatusConflict},
	{models.ErrAlreadyCheckedIn, http.StatusConflict},
	{models.ErrTicketVoided, http.StatusConflict},
	{models.ErrUnknownTicket, http.StatusConflict},
	{models.ErrGateClosed, http.StatusConflict},
	{models.ErrWrongEvent, http.StatusConflict},
}

// Domain maps err to an HTTP status and a message safe to show clients.
// ok is false for errors outside the domain taxonomy.
func Domain(err error) (status int, msg string, ok bool) {
	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			return d.status, d.err.Error(), true
		}
	}

	return http.StatusInternalServerError, "", false
}
