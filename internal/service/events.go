package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/queue"
)

// EventSink receives entity change notifications.  Implementations must
// not fail the caller: a write has already been committed when Publish
// runs.
type EventSink interface {
	Publish(ctx context.Context, ev queue.EntityChangedEvent)
}

// NopEvents discards every event.
type NopEvents struct{}

func (NopEvents) Publish(context.Context, queue.EntityChangedEvent) {}

// EventPublisher sends events to the durable entity-changed queue on
// RabbitMQ.  Each publish runs in the background with its own timeout;
// errors are logged and dropped.
type EventPublisher struct {
	url     string
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewEventPublisher returns a publisher for the broker at url.
func NewEventPublisher(url string, log *zap.Logger) *EventPublisher {
	return &EventPublisher{url: url, log: log, timeout: 5 * time.Second}
}

// Publish schedules ev for delivery.  The request context is only used for
// the actor; delivery outlives the request.
func (p *EventPublisher) Publish(ctx context.Context, ev queue.EntityChangedEvent) {
	if ev.Actor == "" {
		ev.Actor = ActorFrom(ctx)
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		pctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		if err := p.publish(pctx, ev); err != nil {
			p.log.Warn("rabbitmq: publish failed",
				zap.String("entity", ev.Entity), zap.String("action", ev.Action),
				zap.Uint64("id", ev.EntityID), zap.Error(err))
		}
	}()
}

// Close waits for in-flight publishes.
func (p *EventPublisher) Close() { p.wg.Wait() }

func (p *EventPublisher) publish(ctx context.Context, ev queue.EntityChangedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.EntityChangedQueue, true, false, false, false, nil); err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, "", queue.EntityChangedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// changed builds an event stamped with the current UTC time.
func changed(entity, action string, id uint64, label string) queue.EntityChangedEvent {
	return queue.EntityChangedEvent{
		Entity:     entity,
		Action:     action,
		EntityID:   id,
		Label:      label,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
