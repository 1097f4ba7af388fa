package getEventInfo

import (
	"eventGate/internal/catalog"
	"eventGate/internal/lib/api/response"
	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/models"
	"eventGate/internal/pricing"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type EventInfoResponse struct {
	response.Response
	Event      models.Event      `json:"event"`
	Quotes     []pricing.Quote   `json:"quotes"`
	SaleStatus models.SaleStatus `json:"sale_status"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	EventInfo(eventID string) (catalog.EventInfo, error)
}

func New(log *slog.Logger, info EventGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEventInfo.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		event, err := info.EventInfo(eventID)
		if err != nil {
			log.Error("failed to get event information", sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event information"))
			return
		}

		log.Info("event info successfully received")

		responseOK(w, r, event)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, info catalog.EventInfo) {
	render.JSON(w, r, EventInfoResponse{
		Response:   response.OK(),
		Event:      info.Event,
		Quotes:     info.Quotes,
		SaleStatus: info.Status,
	})
}
