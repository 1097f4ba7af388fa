package createGate

import (
	"context"
	"errors"
	"eventGate/internal/checkin"
	"eventGate/internal/lib/api/response"
	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type GateRequest struct {
	Number     int    `json:"number" validate:"gte=0"`
	Location   string `json:"location" validate:"required"`
	Status     string `json:"status" validate:"omitempty,oneof=open limited closed"`
	StaffCount int    `json:"staff_count" validate:"gte=0"`
}

type GateResponse struct {
	response.Response
	Gate models.Gate `json:"gate"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=GateCreator
type GateCreator interface {
	CreateGate(ctx context.Context, in checkin.CreateGateInput) (models.Gate, error)
}

func New(log *slog.Logger, gates GateCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gate.createGate.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		var req GateRequest

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

		gate, err := gates.CreateGate(r.Context(), checkin.CreateGateInput{
			EventID:    eventID,
			Number:     req.Number,
			Location:   req.Location,
			Status:     models.GateStatus(req.Status),
			StaffCount: req.StaffCount,
		})
		if err != nil {
			log.Error("failed to create gate", slog.String("event_id", eventID), sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create gate"))
			return
		}

		log.Info("gate created", slog.String("gate_id", gate.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, GateResponse{
			Response: response.OK(),
			Gate:     gate,
		})
	}
}
