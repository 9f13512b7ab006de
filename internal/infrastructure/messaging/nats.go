package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const drainTimeout = 10 * time.Second

// Publisher sends JSON events to NATS. A nil *Publisher drops every message,
// which is how publishing is disabled when NATS_URL is empty.
type Publisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// NewPublisher connects to the NATS server at url
func NewPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	conn, err := nats.Connect(
		url,
		nats.Name("advice-outputs"),
		nats.DrainTimeout(drainTimeout),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if logger == nil {
				return
			}
			if s != nil {
				logger.Error("async NATS error", zap.Error(err), zap.String("subject", s.Subject))
			} else {
				logger.Error("async NATS error outside subscription", zap.Error(err))
			}
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if logger != nil {
				logger.Info("NATS connection closed")
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &Publisher{conn: conn, logger: logger}, nil
}

// Publish marshals v as JSON and publishes it on subject
func (p *Publisher) Publish(ctx context.Context, subject string, v any) error {
	if p == nil || p.conn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *Publisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
