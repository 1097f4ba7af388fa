package getUserTickets

import (
	"eventGate/internal/lib/api/response"
	"eventGate/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type TicketsResponse struct {
	response.Response
	Tickets []models.Ticket `json:"tickets"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketsGetter
type TicketsGetter interface {
	TicketsByOwner(ownerID string) []models.Ticket
}

func New(log *slog.Logger, tickets TicketsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.getUserTickets.New"

		log := log.With(slog.String("op", op))

		userID := chi.URLParam(r, "id")
		if userID == "" {
			log.Error("user id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user id is required"))
			return
		}

		owned := tickets.TicketsByOwner(userID)
		if owned == nil {
			owned = []models.Ticket{}
		}

		log.Info("tickets listed", slog.String("user_id", userID), slog.Int("count", len(owned)))

		render.JSON(w, r, TicketsResponse{
			Response: response.OK(),
			Tickets:  owned,
		})
	}
}
