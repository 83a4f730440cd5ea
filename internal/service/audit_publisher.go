// Package service holds outbound integrations used by the views.  The audit
// publisher sends admin actions to RabbitMQ; failures are logged and
// returned but never interrupt the request that produced the event.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/tourfront/internal/config"
	"github.com/iliyamo/tourfront/internal/logger"
	"github.com/iliyamo/tourfront/internal/queue"
)

// AuditPublisher publishes InquiryEvents to a durable queue.  A disabled
// publisher accepts events and drops them.
type AuditPublisher struct {
	enabled     bool
	url         string
	queue       string
	dialTimeout time.Duration
}

// auditDialTimeout bounds the broker dial, which runs inside the request
// that produced the event.
const auditDialTimeout = 2 * time.Second

// NewAuditPublisher returns a publisher for cfg.Queue on cfg.URL.
func NewAuditPublisher(cfg config.AuditConfig) *AuditPublisher {
	return &AuditPublisher{enabled: cfg.Enabled, url: cfg.URL, queue: cfg.Queue, dialTimeout: auditDialTimeout}
}

// Publish sends ev as a persistent JSON message.  A connection is opened per
// event; admin actions are rare enough that pooling buys nothing.
func (p *AuditPublisher) Publish(ctx context.Context, ev queue.InquiryEvent) error {
	if p == nil || !p.enabled {
		return nil
	}
	log := logger.GetLogger()

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		log.Warnw("rabbitmq: dial failed", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warnw("rabbitmq: channel open failed", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		log.Warnw("rabbitmq: queue declare failed", "queue", p.queue, "error", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Errorw("rabbitmq: marshal event failed", "error", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		log.Warnw("rabbitmq: publish failed", "queue", p.queue, "error", err)
		return err
	}
	log.Debugw("Audit event published", "action", ev.Action, "inquiryID", ev.InquiryID)
	return nil
}
