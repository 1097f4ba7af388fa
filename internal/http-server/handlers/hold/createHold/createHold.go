package createHold

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

type HoldRequest struct {
	TicketType string   `json:"ticket_type" validate:"required"`
	Quantity   int      `json:"quantity" validate:"gte=0,lte=50"`
	SeatIDs    []string `json:"seat_ids" validate:"max=50,dive,required"`
	OwnerID    string   `json:"owner_id" validate:"required"`
}

type HoldResponse struct {
	response.Response
	Hold models.Reservation `json:"hold"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=HoldStarter
type HoldStarter interface {
	StartHold(ctx context.Context, in booking.StartHoldInput) (models.Reservation, error)
}

func New(log *slog.Logger, holds HoldStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.hold.createHold.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		var req HoldRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		if req.Quantity == 0 && len(req.SeatIDs) == 0 {
			log.Error("nothing to hold")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("quantity or seat_ids is required"))
			return
		}

		hold, err := holds.StartHold(r.Context(), booking.StartHoldInput{
			EventID:    eventID,
			TicketType: req.TicketType,
			Quantity:   req.Quantity,
			SeatIDs:    req.SeatIDs,
			OwnerID:    req.OwnerID,
		})
		if err != nil {
			log.Error("failed to start hold", sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to start hold"))
			return
		}

		log.Info("hold started", slog.String("hold_id", hold.ID), slog.Time("expires_at", hold.ExpiresAt))

		responseOK(w, r, hold)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, hold models.Reservation) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, HoldResponse{
		Response: response.OK(),
		Hold:     hold,
	})
}
