package voidTicket

import (
	"context"
	"eventGate/internal/lib/api/response"
	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type TicketResponse struct {
	response.Response
	Ticket models.Ticket `json:"ticket"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketVoider
type TicketVoider interface {
	Void(ctx context.Context, ticketID string) (models.Ticket, error)
}

func New(log *slog.Logger, voider TicketVoider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.voidTicket.New"

		log := log.With(slog.String("op", op))

		ticketID := chi.URLParam(r, "id")
		if ticketID == "" {
			log.Error("ticket id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("ticket id is required"))
			return
		}

		ticket, err := voider.Void(r.Context(), ticketID)
		if err != nil {
			log.Error("failed to void ticket", slog.String("ticket_id", ticketID), sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to void ticket"))
			return
		}

		log.Info("ticket voided", slog.String("ticket_id", ticketID))

		render.JSON(w, r, TicketResponse{
			Response: response.OK(),
			Ticket:   ticket,
		})
	}
}
