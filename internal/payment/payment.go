// Package payment defines the boundary to the external payment processor.
package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"eventGate/internal/models"

	"github.com/google/uuid"
)

type Capture struct {
	ID     string
	Amount models.Money
}

type Capturer interface {
	Capture(ctx context.Context, token string, amount models.Money) (Capture, error)
	Cancel(ctx context.Context, captureID string) error
}

// declinedPrefix lets clients simulate a declined card.
const declinedPrefix = "decline"

// Simulated accepts every non-empty token that does not start with
// "decline". It is used when no processor is configured.
type Simulated struct {
	mu        sync.Mutex
	captures  map[string]Capture
	cancelled map[string]bool
}

func NewSimulated() *Simulated {
	return &Simulated{
		captures:  make(map[string]Capture),
		cancelled: make(map[string]bool),
	}
}

func (s *Simulated) Capture(ctx context.Context, token string, amount models.Money) (Capture, error) {
	const op = "payment.Simulated.Capture"

	if err := ctx.Err(); err != nil {
		return Capture{}, fmt.Errorf("%s: %w", op, err)
	}
	if token == "" || strings.HasPrefix(token, declinedPrefix) {
		return Capture{}, fmt.Errorf("%s: %w", op, models.ErrPaymentDeclined)
	}

	c := Capture{ID: uuid.NewString(), Amount: amount}

	s.mu.Lock()
	s.captures[c.ID] = c
	s.mu.Unlock()

	return c, nil
}

func (s *Simulated) Cancel(_ context.Context, captureID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.captures[captureID]; !ok {
		return fmt.Errorf("payment.Simulated.Cancel: unknown capture %s", captureID)
	}
	s.cancelled[captureID] = true

	return nil
}

func (s *Simulated) Cancelled(captureID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancelled[captureID]
}
