package recentCheckins

import (
	"eventGate/internal/lib/api/response"
	"eventGate/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type CheckinsResponse struct {
	response.Response
	Checkins []models.CheckinRecord `json:"checkins"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CheckinLister
type CheckinLister interface {
	RecentCheckins(eventID string, n int) []models.CheckinRecord
}

func New(log *slog.Logger, lister CheckinLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gate.recentCheckins.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		limit := defaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > maxLimit {
				log.Error("invalid limit", slog.String("limit", raw))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid limit"))
				return
			}
			limit = n
		}

		checkins := lister.RecentCheckins(eventID, limit)
		if checkins == nil {
			checkins = []models.CheckinRecord{}
		}

		log.Debug("recent check-ins listed", slog.String("event_id", eventID), slog.Int("count", len(checkins)))

		render.JSON(w, r, CheckinsResponse{
			Response: response.OK(),
			Checkins: checkins,
		})
	}
}
