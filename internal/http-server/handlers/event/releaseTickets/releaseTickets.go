package releaseTickets

import (
	"errors"
	"eventGate/internal/lib/api/response"
	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type ReleaseRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type ReleaseResponse struct {
	response.Response
	TicketType models.TicketType `json:"ticket_type"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketReleaser
type TicketReleaser interface {
	ReleaseTickets(eventID, ticketType string, additional int) (models.TicketType, error)
}

func New(log *slog.Logger, releaser TicketReleaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.releaseTickets.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		ticketType := chi.URLParam(r, "type")
		if eventID == "" || ticketType == "" {
			log.Error("event id and ticket type are required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id and ticket type are required"))
			return
		}

		log = log.With(slog.String("event_id", eventID), slog.String("ticket_type", ticketType))

		var req ReleaseRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		tt, err := releaser.ReleaseTickets(eventID, ticketType, req.Quantity)
		if err != nil {
			log.Error("failed to release tickets", sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to release tickets"))
			return
		}

		log.Info("tickets released", slog.Int("quantity", req.Quantity), slog.Int("total", tt.Total))

		responseOK(w, r, tt)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, tt models.TicketType) {
	render.JSON(w, r, ReleaseResponse{
		Response:   response.OK(),
		TicketType: tt,
	})
}
