package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/tourfront/internal/logger"
)

// StartAuditConsumer connects to the broker at url, declares queueName
// (durable) and appends every event to logPath.  It reconnects with an
// exponential backoff and only returns when stop is closed.
func StartAuditConsumer(url, queueName, logPath string, stop <-chan struct{}) error {
	log := logger.GetLogger()
	backoff := time.Second
	for {
		select {
		case <-stop:
			return nil
		default:
		}

		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warnw("audit-consumer: failed to dial broker", "error", err, "retryIn", backoff)
			if !sleep(backoff, stop) {
				return nil
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(conn, queueName, logPath, stop)
		_ = conn.Close()
		if err == nil {
			return nil
		}
		log.Warnw("audit-consumer: consume loop ended, reconnecting", "error", err)
		if !sleep(2*time.Second, stop) {
			return nil
		}
	}
}

func sleep(d time.Duration, stop <-chan struct{}) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-stop:
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(conn *amqp.Connection, queueName, logPath string, stop <-chan struct{}) error {
	log := logger.GetLogger()
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warnw("audit-consumer: set QoS failed", "error", err)
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-stop:
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := handleMessage(d.Body, logPath); err != nil {
				log.Errorw("audit-consumer: handle message failed", "error", err)
				_ = d.Nack(false, false) // do not requeue a message that cannot be parsed
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleMessage(body []byte, logPath string) error {
	var ev InquiryEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Action == "" || ev.InquiryID == "" {
		return errors.New("event without action or inquiry id")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatLine(ev InquiryEvent) string {
	line := fmt.Sprintf("[%s] Inquiry %s | inquiry_id=%s | email=%s",
		ev.At.UTC().Format(time.RFC3339), ev.Action, ev.InquiryID, logger.MaskEmail(ev.Email))
	if ev.Subject != "" {
		line += fmt.Sprintf(" | subject=%q", ev.Subject)
	}
	return line + "\n"
}
