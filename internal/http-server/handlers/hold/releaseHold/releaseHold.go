package releaseHold

import (
	"context"
	"eventGate/internal/lib/api/response"
	"eventGate/internal/lib/logger/sl"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=HoldCanceller
type HoldCanceller interface {
	Cancel(ctx context.Context, holdID string) error
}

func New(log *slog.Logger, holds HoldCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.hold.releaseHold.New"

		log := log.With(slog.String("op", op))

		holdID := chi.URLParam(r, "id")
		if holdID == "" {
			log.Error("hold id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("hold id is required"))
			return
		}

		if err := holds.Cancel(r.Context(), holdID); err != nil {
			log.Error("failed to release hold", slog.String("hold_id", holdID), sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to release hold"))
			return
		}

		log.Info("hold released", slog.String("hold_id", holdID))

		render.JSON(w, r, response.OK())
	}
}
