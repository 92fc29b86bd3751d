// Package service provides the outbound side of booking status events.
// Publish errors are logged and returned so that callers can ignore them
// without interrupting the request flow.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/config"
	"github.com/iliyamo/room-booking/internal/queue"
)

// StatusPublisher publishes BookingStatusChanged events.
type StatusPublisher interface {
	PublishStatusChanged(ctx context.Context, ev queue.BookingStatusChanged) error
}

// QueuePublisher sends events to a durable RabbitMQ queue through the default
// exchange.  A connection is opened per event; status changes are rare admin
// actions.
type QueuePublisher struct {
	url   string
	queue string
	log   *zap.Logger
}

// NewStatusPublisher returns a QueuePublisher, or a NoopPublisher when the
// queue is disabled.
func NewStatusPublisher(cfg config.QueueConfig, log *zap.Logger) StatusPublisher {
	if !cfg.Enabled {
		return NoopPublisher{}
	}
	return &QueuePublisher{url: cfg.URL, queue: cfg.Name, log: log}
}

func (p *QueuePublisher) PublishStatusChanged(ctx context.Context, ev queue.BookingStatusChanged) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("rabbitmq: dial failed", zap.Error(err))
		return errors.Wrap(err, "dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return errors.Wrap(err, "channel")
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		p.log.Warn("rabbitmq: queue declare failed", zap.String("queue", p.queue), zap.Error(err))
		return errors.Wrap(err, "queue declare")
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.log.Warn("rabbitmq: publish failed", zap.String("queue", p.queue), zap.Error(err))
		return errors.Wrap(err, "publish")
	}
	p.log.Debug("rabbitmq: status event published", zap.Uint64("booking_id", ev.BookingID), zap.String("status", ev.Status))
	return nil
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChanged(context.Context, queue.BookingStatusChanged) error {
	return nil
}
