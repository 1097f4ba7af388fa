package checkin

import (
	"context"
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

type CheckinRequest struct {
	Code    string `json:"code" validate:"required"`
	StaffID string `json:"staff_id"`
}

type CheckinResponse struct {
	response.Response
	Checkin models.CheckinRecord `json:"checkin"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CodeRedeemer
type CodeRedeemer interface {
	Redeem(ctx context.Context, code, gateID, staffID string) (models.CheckinRecord, error)
}

// New admits the holder of a redemption code through a gate. A denied
// attempt still reports the recorded outcome alongside the error.
func New(log *slog.Logger, redeemer CodeRedeemer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gate.checkin.New"

		log := log.With(slog.String("op", op))

		gateID := chi.URLParam(r, "id")
		if gateID == "" {
			log.Error("gate id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("gate id is required"))
			return
		}

		log = log.With(slog.String("gate_id", gateID))

		var req CheckinRequest

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

		rec, err := redeemer.Redeem(r.Context(), req.Code, gateID, req.StaffID)
		if err != nil {
			log.Warn("check-in denied", slog.String("reason", rec.Reason), sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, CheckinResponse{
					Response: response.Error(msg),
					Checkin:  rec,
				})
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to check in"))
			return
		}

		log.Info("ticket checked in", slog.String("ticket_id", rec.TicketID))

		render.JSON(w, r, CheckinResponse{
			Response: response.OK(),
			Checkin:  rec,
		})
	}
}
