// Package publish announces submitted reports on a message broker.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/abhisek/lifecompass/internal/assessment"
)

// RoutingKeySubmitted is the topic used for submitted reports.
const RoutingKeySubmitted = "assessment.submitted"

// Publisher delivers report events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishReport(ctx context.Context, r *assessment.Report) error
	Close() error
}

// Event is the envelope written to the exchange.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Nop discards every event.
type Nop struct{}

func (Nop) PublishReport(context.Context, *assessment.Report) error { return nil }
func (Nop) Close() error                                           { return nil }

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes JSON events to a topic exchange.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  amqpChannel
	exchange string
	logger   *zap.Logger
}

// NewAMQPPublisher dials the broker and declares a durable topic exchange.
func NewAMQPPublisher(amqpURL, exchange string, logger *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	p := newAMQPPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

func newAMQPPublisher(ch amqpChannel, exchange string, logger *zap.Logger) *AMQPPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AMQPPublisher{channel: ch, exchange: exchange, logger: logger.Named("publish")}
}

// PublishReport sends the report on RoutingKeySubmitted.
func (p *AMQPPublisher) PublishReport(ctx context.Context, r *assessment.Report) error {
	return p.publish(ctx, RoutingKeySubmitted, r)
}

func (p *AMQPPublisher) publish(ctx context.Context, eventType string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ev := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// The event type doubles as the routing key on the topic exchange.
	err = p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.ID,
			Timestamp:    ev.OccurredAt,
			Type:         eventType,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	p.logger.Debug("event published", zap.String("type", eventType), zap.String("id", ev.ID))
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.channel != nil {
		firstErr = p.channel.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FromEnv connects when LIFECOMPASS_AMQP_URL and LIFECOMPASS_AMQP_EXCHANGE
// are both set, and returns Nop otherwise.
func FromEnv(logger *zap.Logger) (Publisher, error) {
	url := os.Getenv("LIFECOMPASS_AMQP_URL")
	exchange := os.Getenv("LIFECOMPASS_AMQP_EXCHANGE")
	if url == "" || exchange == "" {
		if logger != nil {
			logger.Debug("broker not configured, report events will not be published")
		}
		return Nop{}, nil
	}
	return NewAMQPPublisher(url, exchange, logger)
}
