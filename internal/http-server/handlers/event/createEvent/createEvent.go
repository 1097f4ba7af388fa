package createEvent

import (
	"errors"
	"eventGate/internal/lib/api/response"
	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/models"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
	"time"
)

type TicketTypeRequest struct {
	Name      string       `json:"name" validate:"required"`
	Total     int          `json:"total" validate:"required,gt=0"`
	BasePrice models.Money `json:"base_price" validate:"gte=0"`
}

type SeatRequest struct {
	ID         string `json:"id" validate:"required"`
	TicketType string `json:"ticket_type"`
}

type EventRequest struct {
	ID          string              `json:"id"`
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Location    string              `json:"location"`
	StartsAt    time.Time           `json:"starts_at" validate:"required"`
	EndsAt      time.Time           `json:"ends_at"`
	Capacity    int                 `json:"capacity" validate:"gte=0"`
	TicketTypes []TicketTypeRequest `json:"ticket_types" validate:"required,min=1,dive"`
	Seats       []SeatRequest       `json:"seats" validate:"dive"`
}

type EventResponse struct {
	response.Response
	Event models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ev models.Event) (models.Event, error)
}

func New(log *slog.Logger, event EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
		)

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.String("title", req.Title), slog.Int("ticket_types", len(req.TicketTypes)))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		if !req.EndsAt.IsZero() && req.EndsAt.Before(req.StartsAt) {
			log.Error("event ends before it starts")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("ends_at must not be before starts_at"))

			return
		}

		created, err := event.CreateEvent(req.toModel())
		if err != nil {
			log.Error("failed to add event", sl.Err(err))

			if status, msg, ok := response.Domain(err); ok {
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))

				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))

			return
		}

		log.Info("event added", slog.String("id", created.ID))

		responseOK(w, r, created)
	}
}

func (req EventRequest) toModel() models.Event {
	ev := models.Event{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		TicketTypes: make([]models.TicketType, 0, len(req.TicketTypes)),
	}

	for _, tt := range req.TicketTypes {
		ev.TicketTypes = append(ev.TicketTypes, models.TicketType{
			Name:      tt.Name,
			Total:     tt.Total,
			BasePrice: tt.BasePrice,
		})
	}
	for _, s := range req.Seats {
		ev.Seats = append(ev.Seats, models.Seat{ID: s.ID, TicketType: s.TicketType})
	}

	return ev
}

func responseOK(w http.ResponseWriter, r *http.Request, event models.Event) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Event:    event,
	})
}
