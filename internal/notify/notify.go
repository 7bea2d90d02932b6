package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Change describes one committed entity mutation for downstream indexers.
type Change struct {
	Kind  string    `json:"kind"` // "event" | "event_list"
	Op    string    `json:"op"`   // "created" | "updated" | "removed"
	ID    string    `json:"id"`
	Actor string    `json:"actor"`
	At    time.Time `json:"at"`
}

// Notifier publishes entity-change notifications. Publishing is best-effort:
// services log failures and never fail the mutation over them.
type Notifier interface {
	Publish(ctx context.Context, c Change) error
	Close() error
}

// Nop discards all notifications. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Change) error { return nil }
func (Nop) Close() error                          { return nil }

// ExchangeName is the topic exchange entity changes are published to.
const ExchangeName = "events-platform.changes"

// AMQP publishes changes to a RabbitMQ topic exchange with routing keys of
// the form "{kind}.{op}" (e.g. "event.created").
type AMQP struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// DialAMQP connects to the broker and declares the topic exchange.
func DialAMQP(url string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notify: open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notify: declare exchange: %w", err)
	}
	return &AMQP{conn: conn, channel: ch}, nil
}

// Publish sends the change with routing key "{kind}.{op}".
func (a *AMQP) Publish(ctx context.Context, c Change) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("notify: encode change: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return a.channel.PublishWithContext(
		ctx,
		ExchangeName,
		c.Kind+"."+c.Op,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    c.At,
		},
	)
}

// Close closes the channel and connection.
func (a *AMQP) Close() error {
	if a.channel != nil {
		_ = a.channel.Close()
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}
