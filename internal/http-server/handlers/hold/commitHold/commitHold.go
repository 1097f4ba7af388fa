package commitHold

import (
	"context"
	"errors"
	"eventGate/internal/booking"
	"eventGate/internal/lib/api/response"
	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type CommitRequest struct {
	PaymentToken string `json:"payment_token" validate:"required"`
	OwnerID      string `json:"owner_id"`
}

// CommitResponse carries the redemption codes. They are not retrievable
// afterwards.
type CommitResponse struct {
	response.Response
	Tickets []models.Ticket `json:"tickets"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=HoldCommitter
type HoldCommitter interface {
	Commit(ctx context.Context, holdID string, in booking.CommitInput) ([]models.Ticket, error)
}

func New(log *slog.Logger, holds HoldCommitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.hold.commitHold.New"

		log := log.With(slog.String("op", op))

		holdID := chi.URLParam(r, "id")
		if holdID == "" {
			log.Error("hold id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("hold id is required"))
			return
		}

		log = log.With(slog.String("hold_id", holdID))

		var req CommitRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		tickets, err := holds.Commit(r.Context(), holdID, booking.CommitInput{
			PaymentToken: req.PaymentToken,
			OwnerID:      req.OwnerID,
		})
		if err != nil {
			log.Error("failed to commit hold", sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to commit hold"))
			return
		}

		log.Info("hold committed", slog.Int("tickets", len(tickets)))

		responseOK(w, r, tickets)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, tickets []models.Ticket) {
	render.JSON(w, r, CommitResponse{
		Response: response.OK(),
		Tickets:  tickets,
	})
}
