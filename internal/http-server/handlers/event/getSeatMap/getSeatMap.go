package getSeatMap

import (
	"eventGate/internal/lib/api/response"
	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type SeatMapResponse struct {
	response.Response
	Seats []models.SeatState `json:"seats"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SeatMapGetter
type SeatMapGetter interface {
	SeatMap(eventID string) ([]models.SeatState, error)
}

func New(log *slog.Logger, seats SeatMapGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getSeatMap.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		seatMap, err := seats.SeatMap(eventID)
		if err != nil {
			log.Error("failed to get seat map", slog.String("event_id", eventID), sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get seat map"))
			return
		}

		responseOK(w, r, seatMap)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, seats []models.SeatState) {
	render.JSON(w, r, SeatMapResponse{
		Response: response.OK(),
		Seats:    seats,
	})
}
