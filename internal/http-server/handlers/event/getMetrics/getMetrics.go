package getMetrics

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

type MetricsResponse struct {
	response.Response
	Metrics models.EventMetrics `json:"metrics"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=MetricsGetter
type MetricsGetter interface {
	Metrics(ctx context.Context, eventID string) (models.EventMetrics, error)
}

// New serves the live admin dashboard numbers for one event.
func New(log *slog.Logger, metrics MetricsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getMetrics.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		m, err := metrics.Metrics(r.Context(), eventID)
		if err != nil {
			log.Error("failed to get event metrics", slog.String("event_id", eventID), sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event metrics"))
			return
		}

		responseOK(w, r, m)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, m models.EventMetrics) {
	render.JSON(w, r, MetricsResponse{
		Response: response.OK(),
		Metrics:  m,
	})
}
