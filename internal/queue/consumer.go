package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// StartAuditConsumer connects to the broker at url, declares the
// entity-changed queue (durable) and appends one line per event to
// logPath.  It reconnects with exponential backoff (capped at 30s) until
// ctx is cancelled, which is the only way it returns.
func StartAuditConsumer(ctx context.Context, url, logPath string, log *zap.Logger) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("audit-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, logPath, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("audit-consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logPath string, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("audit-consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(EntityChangedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(EntityChangedQueue, "backoffice-audit", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := AppendAuditLine(logPath, d.Body); err != nil {
				log.Error("audit-consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false) // no requeue, avoids tight redelivery loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// AppendAuditLine decodes one event body and appends its formatted line to
// path, creating the parent directory when needed.
func AppendAuditLine(path string, body []byte) error {
	var ev EntityChangedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(FormatAuditLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatAuditLine renders ev as a single human-readable line ending in '\n'.
func FormatAuditLine(ev EntityChangedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s | id=%d", ev.OccurredAt, ev.Entity, ev.Action, ev.EntityID)
	if ev.Label != "" {
		fmt.Fprintf(&b, " | label=%q", ev.Label)
	}
	if ev.Actor != "" {
		fmt.Fprintf(&b, " | actor=%q", ev.Actor)
	}
	if ev.Detail != "" {
		fmt.Fprintf(&b, " | %s", ev.Detail)
	}
	b.WriteByte('\n')
	return b.String()
}
