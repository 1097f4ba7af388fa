// Package catalog serves the organizer and browsing side of events: creating
// them, releasing more tickets and reading them back with live prices.
package catalog

import (
	"fmt"
	"log/slog"

	"eventGate/internal/models"
	"eventGate/internal/pricing"
)

type Ledger interface {
	AddEvent(ev models.Event) (models.Event, error)
	ReleaseMore(eventID, ticketType string, additional int) (models.TicketType, error)
	Event(eventID string) (models.Event, error)
	Events(filter models.EventFilter) ([]models.Event, int)
	SeatMap(eventID string) ([]models.SeatState, error)
}

type Pricer interface {
	Quotes(ev models.Event) []pricing.Quote
}

type Recorder interface {
	RecordEvent(ev models.Event)
}

type Catalog struct {
	ledger   Ledger
	pricer   Pricer
	recorder Recorder
	log      *slog.Logger
}

func New(ledger Ledger, pricer Pricer, recorder Recorder, log *slog.Logger) *Catalog {
	return &Catalog{
		ledger:   ledger,
		pricer:   pricer,
		recorder: recorder,
		log:      log.With(slog.String("component", "catalog")),
	}
}

func (c *Catalog) CreateEvent(ev models.Event) (models.Event, error) {
	const op = "catalog.CreateEvent"

	ev.Version = 1
	created, err := c.ledger.AddEvent(ev)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	c.recorder.RecordEvent(created)
	c.log.Info("event created", slog.String("event_id", created.ID), slog.Int("capacity", created.Capacity))

	return created, nil
}

// ReleaseTickets adds inventory to a ticket type.
func (c *Catalog) ReleaseTickets(eventID, ticketType string, additional int) (models.TicketType, error) {
	const op = "catalog.ReleaseTickets"

	tt, err := c.ledger.ReleaseMore(eventID, ticketType, additional)
	if err != nil {
		return models.TicketType{}, fmt.Errorf("%s: %w", op, err)
	}

	if ev, err := c.ledger.Event(eventID); err == nil {
		c.recorder.RecordEvent(ev)
	}

	c.log.Info("tickets released",
		slog.String("event_id", eventID),
		slog.String("ticket_type", ticketType),
		slog.Int("additional", additional),
		slog.Int("total", tt.Total),
	)

	return tt, nil
}

// EventInfo is an event with its current per-type prices.
type EventInfo struct {
	Event  models.Event      `json:"event"`
	Quotes []pricing.Quote   `json:"quotes"`
	Status models.SaleStatus `json:"sale_status"`
}

func (c *Catalog) EventInfo(eventID string) (EventInfo, error) {
	ev, err := c.ledger.Event(eventID)
	if err != nil {
		return EventInfo{}, fmt.Errorf("catalog.EventInfo: %w", err)
	}

	return c.info(ev), nil
}

// Events lists a page of events and the total number of matches.
func (c *Catalog) Events(filter models.EventFilter) ([]EventInfo, int) {
	events, total := c.ledger.Events(filter)

	infos := make([]EventInfo, 0, len(events))
	for _, ev := range events {
		infos = append(infos, c.info(ev))
	}

	return infos, total
}

func (c *Catalog) SeatMap(eventID string) ([]models.SeatState, error) {
	seats, err := c.ledger.SeatMap(eventID)
	if err != nil {
		return nil, fmt.Errorf("catalog.SeatMap: %w", err)
	}

	return seats, nil
}

func (c *Catalog) info(ev models.Event) EventInfo {
	return EventInfo{
		Event:  ev,
		Quotes: c.pricer.Quotes(ev),
		Status: eventStatus(ev),
	}
}

// eventStatus is the best status over all ticket types: an event is sold
// out only when every type is.
func eventStatus(ev models.Event) models.SaleStatus {
	status := models.SaleStatusSoldOut
	for _, tt := range ev.TicketTypes {
		switch tt.SaleStatus() {
		case models.SaleStatusOnSale:
			return models.SaleStatusOnSale
		case models.SaleStatusLimited:
			status = models.SaleStatusLimited
		}
	}

	return status
}
