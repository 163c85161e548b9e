package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the topic exchange automation notifications are
// published to. Routing keys are "notification.<priority>".
const ExchangeName = "adspro.automation.notifications"

// RabbitMQDispatcher publishes notifications to RabbitMQ.
type RabbitMQDispatcher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewRabbitMQDispatcher connects to RabbitMQ and declares the
// notifications exchange.
func NewRabbitMQDispatcher(url string, logger *slog.Logger) (*RabbitMQDispatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Info("notification dispatcher connected", "exchange", ExchangeName)

	return &RabbitMQDispatcher{
		conn:    conn,
		channel: ch,
		logger:  logger,
	}, nil
}

// Dispatch publishes the notification to the exchange.
func (d *RabbitMQDispatcher) Dispatch(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	priority := n.Priority
	if priority == "" {
		priority = "medium"
	}
	routingKey := "notification." + priority

	d.mu.Lock()
	defer d.mu.Unlock()

	err = d.channel.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         payload,
		},
	)
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	d.logger.Debug("notification dispatched",
		"organization_id", n.OrganizationID,
		"routing_key", routingKey,
		"title", n.Title,
	)
	return nil
}

// Close shuts down the channel and connection.
func (d *RabbitMQDispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.channel.Close(); err != nil {
		return err
	}
	return d.conn.Close()
}
