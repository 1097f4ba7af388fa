package getHold

import (
	"eventGate/internal/lib/api/response"
	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type HoldResponse struct {
	response.Response
	Hold models.Reservation `json:"hold"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=HoldGetter
type HoldGetter interface {
	Hold(holdID string) (models.Reservation, error)
}

func New(log *slog.Logger, holds HoldGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.hold.getHold.New"

		log := log.With(slog.String("op", op))

		holdID := chi.URLParam(r, "id")
		if holdID == "" {
			log.Error("hold id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("hold id is required"))
			return
		}

		hold, err := holds.Hold(holdID)
		if err != nil {
			log.Error("failed to get hold", slog.String("hold_id", holdID), sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get hold"))
			return
		}

		responseOK(w, r, hold)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, hold models.Reservation) {
	render.JSON(w, r, HoldResponse{
		Response: response.OK(),
		Hold:     hold,
	})
}
