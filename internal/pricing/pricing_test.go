package pricing

import (
	"errors"
	"testing"
	"time"

	"eventGate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultPolicy = Policy{
	AutoAdjust:         true,
	ScarcityThreshold:  0.2,
	MaxMultiplier:      1.5,
	LastMinuteDiscount: true,
	DiscountWindow:     48 * time.Hour,
	DiscountRate:       0.2,
	MinFactor:          0.5,
	MaxFactor:          2.0,
}

func TestEngine_Price(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	farAway := now.Add(30 * 24 * time.Hour)

	testCases := []struct {
		name     string
		policy   Policy
		input    Input
		expected models.Money
	}{
		{
			name:     "plenty of stock keeps base price",
			policy:   defaultPolicy,
			input:    Input{Base: 10000, Remaining: 80, Total: 100, StartsAt: farAway, Now: now},
			expected: 10000,
		},
		{
			name:     "scarce stock raises price toward the cap",
			policy:   defaultPolicy,
			input:    Input{Base: 10000, Remaining: 5, Total: 100, StartsAt: farAway, Now: now},
			expected: 13750,
		},
		{
			name:     "sold out reaches the full multiplier",
			policy:   defaultPolicy,
			input:    Input{Base: 10000, Remaining: 0, Total: 100, StartsAt: farAway, Now: now},
			expected: 15000,
		},
		{
			name: "max factor caps the surge",
			policy: func() Policy {
				p := defaultPolicy
				p.MaxMultiplier = 3
				p.MaxFactor = 1.25
				return p
			}(),
			input:    Input{Base: 10000, Remaining: 0, Total: 100, StartsAt: farAway, Now: now},
			expected: 12500,
		},
		{
			name:     "last minute discount inside window",
			policy:   defaultPolicy,
			input:    Input{Base: 10000, Remaining: 80, Total: 100, StartsAt: now.Add(24 * time.Hour), Now: now},
			expected: 8000,
		},
		{
			name:     "no discount once the event started",
			policy:   defaultPolicy,
			input:    Input{Base: 10000, Remaining: 80, Total: 100, StartsAt: now.Add(-time.Hour), Now: now},
			expected: 10000,
		},
		{
			name:     "surge and discount combine multiplicatively",
			policy:   defaultPolicy,
			input:    Input{Base: 10000, Remaining: 5, Total: 100, StartsAt: now.Add(time.Hour), Now: now},
			expected: 11000,
		},
		{
			name: "min factor floors the discount",
			policy: func() Policy {
				p := defaultPolicy
				p.DiscountRate = 0.9
				return p
			}(),
			input:    Input{Base: 10000, Remaining: 80, Total: 100, StartsAt: now.Add(time.Hour), Now: now},
			expected: 5000,
		},
		{
			name: "adjustments disabled",
			policy: Policy{
				MinFactor: 0.5,
				MaxFactor: 2,
			},
			input:    Input{Base: 29900, Remaining: 1, Total: 400, StartsAt: now.Add(time.Hour), Now: now},
			expected: 29900,
		},
		{
			name:     "rounds to minor units",
			policy:   defaultPolicy,
			input:    Input{Base: 333, Remaining: 15, Total: 100, StartsAt: farAway, Now: now},
			expected: 375,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			engine := NewEngine(tc.policy)
			assert.Equal(t, tc.expected, engine.Price(tc.input))
		})
	}
}

func TestEngine_PriceIsPure(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	engine := NewEngine(defaultPolicy)
	in := Input{Base: 49900, Remaining: 20, Total: 400, StartsAt: now.Add(72 * time.Hour), Now: now}

	first := engine.Price(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.Price(in))
	}
}

type stubInventory struct {
	event models.Event
	err   error
}

func (s *stubInventory) Event(string) (models.Event, error) {
	return s.event, s.err
}

func TestService_CurrentPrice(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	inv := &stubInventory{event: models.Event{
		ID:       "ev-1",
		StartsAt: now.Add(30 * 24 * time.Hour),
		TicketTypes: []models.TicketType{
			{Name: "standard", Total: 100, Sold: 95, BasePrice: 10000},
			{Name: "vip", Total: 10, BasePrice: 50000},
		},
	}}

	svc := NewService(NewEngine(defaultPolicy), inv, func() time.Time { return now })

	price, err := svc.CurrentPrice("ev-1", "standard")
	require.NoError(t, err)
	assert.Equal(t, models.Money(13750), price)

	// reads the ledger again on every call
	inv.event.TicketTypes[0].Sold = 50
	price, err = svc.CurrentPrice("ev-1", "standard")
	require.NoError(t, err)
	assert.Equal(t, models.Money(10000), price)

	_, err = svc.CurrentPrice("ev-1", "backstage")
	assert.ErrorIs(t, err, models.ErrTicketTypeNotFound)

	inv.err = errors.New("event not found")
	_, err = svc.CurrentPrice("ev-2", "standard")
	assert.Error(t, err)
}

func TestService_Quotes(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	ev := models.Event{
		ID:       "ev-1",
		StartsAt: now.Add(30 * 24 * time.Hour),
		TicketTypes: []models.TicketType{
			{Name: "standard", Total: 1500, Sold: 1200, BasePrice: 29900},
			{Name: "vip", Total: 400, Sold: 380, BasePrice: 49900},
			{Name: "early-bird", Total: 600, Sold: 600, BasePrice: 19900},
		},
	}

	svc := NewService(NewEngine(defaultPolicy), &stubInventory{event: ev}, func() time.Time { return now })
	quotes := svc.Quotes(ev)
	require.Len(t, quotes, 3)

	assert.Equal(t, models.SaleStatusOnSale, quotes[0].Status)
	assert.Equal(t, models.Money(29900), quotes[0].Price)
	assert.Equal(t, models.SaleStatusLimited, quotes[1].Status)
	assert.Greater(t, int64(quotes[1].Price), int64(quotes[1].BasePrice))
	assert.Equal(t, models.SaleStatusSoldOut, quotes[2].Status)
	assert.Equal(t, 0, quotes[2].Available)
}
