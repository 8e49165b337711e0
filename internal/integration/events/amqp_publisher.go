// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

const routingKeyEntryStatusChanged = "planned_entry.status_changed"

// amqpPublisher implements the adapter.EventPublisher interface on a
// RabbitMQ topic exchange.
type amqpPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewAMQPPublisher connects to RabbitMQ and declares the exchange.
func NewAMQPPublisher(url, exchange string) (adapter.EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	slog.Info("AMQP publisher connected", "exchange", exchange)

	return &amqpPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// PublishEntryStatusChanged publishes a status transition event.
func (p *amqpPublisher) PublishEntryStatusChanged(ctx context.Context, event adapter.EntryStatusEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKeyEntryStatusChanged,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Close releases the channel and connection.
func (p *amqpPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

// noopPublisher is used when AMQP is disabled.
type noopPublisher struct{}

// NewNoopPublisher creates a publisher that drops every event.
func NewNoopPublisher() adapter.EventPublisher {
	return &noopPublisher{}
}

func (noopPublisher) PublishEntryStatusChanged(ctx context.Context, event adapter.EntryStatusEvent) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
