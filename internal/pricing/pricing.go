// Package pricing computes ticket prices from inventory pressure and time to
// the event. Prices are recomputed on every request and never cached.
package pricing

import (
	"fmt"
	"time"

	"eventGate/internal/config"
	"eventGate/internal/models"

	"github.com/shopspring/decimal"
)

type Policy struct {
	AutoAdjust         bool
	ScarcityThreshold  float64
	MaxMultiplier      float64
	LastMinuteDiscount bool
	DiscountWindow     time.Duration
	DiscountRate       float64
	MinFactor          float64
	MaxFactor          float64
}

func PolicyFromConfig(cfg config.Pricing) Policy {
	return Policy{
		AutoAdjust:         cfg.AutoAdjust,
		ScarcityThreshold:  cfg.ScarcityThreshold,
		MaxMultiplier:      cfg.MaxMultiplier,
		LastMinuteDiscount: cfg.LastMinuteDiscount,
		DiscountWindow:     cfg.DiscountWindow,
		DiscountRate:       cfg.DiscountRate,
		MinFactor:          cfg.MinFactor,
		MaxFactor:          cfg.MaxFactor,
	}
}

type Input struct {
	Base      models.Money
	Remaining int
	Total     int
	StartsAt  time.Time
	Now       time.Time
}

type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Factor returns the multiplier applied to the base price.
func (e *Engine) Factor(in Input) decimal.Decimal {
	p := e.policy
	factor := decimal.NewFromInt(1)

	if p.AutoAdjust && in.Total > 0 && p.ScarcityThreshold > 0 {
		remaining := decimal.NewFromInt(int64(max(in.Remaining, 0))).Div(decimal.NewFromInt(int64(in.Total)))
		threshold := decimal.NewFromFloat(p.ScarcityThreshold)

		if remaining.LessThan(threshold) {
			pressure := threshold.Sub(remaining).Div(threshold)
			surge := decimal.NewFromFloat(p.MaxMultiplier).Sub(decimal.NewFromInt(1)).Mul(pressure)
			factor = factor.Mul(decimal.NewFromInt(1).Add(surge))
		}
	}

	if p.LastMinuteDiscount && p.DiscountWindow > 0 {
		untilStart := in.StartsAt.Sub(in.Now)
		if untilStart > 0 && untilStart <= p.DiscountWindow {
			factor = factor.Mul(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(p.DiscountRate)))
		}
	}

	if p.MinFactor > 0 {
		factor = decimal.Max(factor, decimal.NewFromFloat(p.MinFactor))
	}
	if p.MaxFactor > 0 {
		factor = decimal.Min(factor, decimal.NewFromFloat(p.MaxFactor))
	}

	return factor
}

// Price is a pure function of its input and the engine's policy.
func (e *Engine) Price(in Input) models.Money {
	return models.MoneyFromDecimal(in.Base.Decimal().Mul(e.Factor(in)))
}

type InventoryReader interface {
	Event(eventID string) (models.Event, error)
}

type Quote struct {
	TicketType string            `json:"ticket_type"`
	BasePrice  models.Money      `json:"base_price"`
	Price      models.Money      `json:"price"`
	Available  int               `json:"available"`
	Status     models.SaleStatus `json:"status"`
}

// Service prices ticket types against the live ledger.
type Service struct {
	engine    *Engine
	inventory InventoryReader
	now       func() time.Time
}

func NewService(engine *Engine, inventory InventoryReader, now func() time.Time) *Service {
	return &Service{engine: engine, inventory: inventory, now: now}
}

func (s *Service) CurrentPrice(eventID, ticketType string) (models.Money, error) {
	const op = "pricing.CurrentPrice"

	ev, err := s.inventory.Event(eventID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	tt, ok := ev.TicketType(ticketType)
	if !ok {
		return 0, fmt.Errorf("%s: %w", op, models.ErrTicketTypeNotFound)
	}

	return s.engine.Price(s.input(ev, *tt)), nil
}

// Quotes prices every ticket type of an already loaded event.
func (s *Service) Quotes(ev models.Event) []Quote {
	quotes := make([]Quote, 0, len(ev.TicketTypes))
	for _, tt := range ev.TicketTypes {
		quotes = append(quotes, Quote{
			TicketType: tt.Name,
			BasePrice:  tt.BasePrice,
			Price:      s.engine.Price(s.input(ev, tt)),
			Available:  tt.Available(),
			Status:     tt.SaleStatus(),
		})
	}

	return quotes
}

func (s *Service) input(ev models.Event, tt models.TicketType) Input {
	return Input{
		Base:      tt.BasePrice,
		Remaining: tt.Available(),
		Total:     tt.Total,
		StartsAt:  ev.StartsAt,
		Now:       s.now(),
	}
}
