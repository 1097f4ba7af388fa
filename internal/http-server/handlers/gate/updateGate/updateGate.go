package updateGate

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

// UpdateRequest changes only the fields that are present.
type UpdateRequest struct {
	Status     *string `json:"status" validate:"omitempty,oneof=open limited closed"`
	StaffCount *int    `json:"staff_count" validate:"omitempty,gte=0"`
}

type GateResponse struct {
	response.Response
	Gate models.Gate `json:"gate"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=GateUpdater
type GateUpdater interface {
	UpdateGate(ctx context.Context, gateID string, in checkin.UpdateGateInput) (models.Gate, error)
}

func New(log *slog.Logger, gates GateUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gate.updateGate.New"

		log := log.With(slog.String("op", op))

		gateID := chi.URLParam(r, "id")
		if gateID == "" {
			log.Error("gate id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("gate id is required"))
			return
		}

		log = log.With(slog.String("gate_id", gateID))

		var req UpdateRequest

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

		if req.Status == nil && req.StaffCount == nil {
			log.Error("nothing to update")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("status or staff_count is required"))
			return
		}

		in := checkin.UpdateGateInput{StaffCount: req.StaffCount}
		if req.Status != nil {
			status := models.GateStatus(*req.Status)
			in.Status = &status
		}

		gate, err := gates.UpdateGate(r.Context(), gateID, in)
		if err != nil {
			log.Error("failed to update gate", sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update gate"))
			return
		}

		log.Info("gate updated", slog.String("status", string(gate.Status)), slog.Int("staff_count", gate.StaffCount))

		render.JSON(w, r, GateResponse{
			Response: response.OK(),
			Gate:     gate,
		})
	}
}
