// Package notify publishes domain events (issued tickets, gate check-ins) to
// downstream consumers.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const (
	KeyTicketIssued    = "ticket.issued"
	KeyCheckinRecorded = "checkin.recorded"
	KeyHoldExpired     = "hold.expired"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Discard struct{}

func (Discard) Publish(context.Context, string, any) error {
	return nil
}

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQP publishes JSON messages to a topic exchange.
type AMQP struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       channel
	exchange string
}

func DialAMQP(url, exchange string) (*AMQP, error) {
	const op = "notify.DialAMQP"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: open channel: %w", op, err)
	}

	p, err := newAMQP(ch, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.conn = conn

	return p, nil
}

func newAMQP(ch channel, exchange string) (*AMQP, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &AMQP{ch: ch, exchange: exchange}, nil
}

func (p *AMQP) Publish(ctx context.Context, routingKey string, payload any) error {
	const op = "notify.AMQP.Publish"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.Publish(p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (p *AMQP) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}

	return nil
}
