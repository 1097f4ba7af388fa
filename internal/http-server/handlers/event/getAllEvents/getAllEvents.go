package getAllEvents

import (
	"eventGate/internal/catalog"
	"eventGate/internal/lib/api/response"
	"eventGate/internal/models"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type EventsResponse struct {
	response.Response
	Events   []catalog.EventInfo `json:"events"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsGetter
type EventsGetter interface {
	Events(filter models.EventFilter) ([]catalog.EventInfo, int)
}

func New(log *slog.Logger, eventsGetter EventsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log := log.With(slog.String("op", op))

		query := r.URL.Query()

		page, err := intParam(query.Get("page"), 1)
		if err != nil || page < 1 {
			log.Error("invalid page", slog.String("page", query.Get("page")))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid page"))
			return
		}

		pageSize, err := intParam(query.Get("page_size"), defaultPageSize)
		if err != nil || pageSize < 1 || pageSize > maxPageSize {
			log.Error("invalid page size", slog.String("page_size", query.Get("page_size")))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid page_size"))
			return
		}

		filter := models.EventFilter{
			Search:   query.Get("search"),
			Category: query.Get("category"),
			Page:     page,
			PageSize: pageSize,
		}

		events, total := eventsGetter.Events(filter)

		log.Info("events retrieved successfully", slog.Int("count", len(events)), slog.Int("total", total))

		responseOK(w, r, events, total, filter)
	}
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}

	return strconv.Atoi(raw)
}

func responseOK(w http.ResponseWriter, r *http.Request, events []catalog.EventInfo, total int, filter models.EventFilter) {
	render.JSON(w, r, EventsResponse{
		Response: response.OK(),
		Events:   events,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
}
