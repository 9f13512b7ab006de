package webhook

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
	"github.com/snakanz/adviceApp-sub002/internal/domain/repositories"
)

// SeenCache is a fast, expiring marker of recently received webhook ids
type SeenCache interface {
	MarkSeen(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}

// Ledger records every received webhook id exactly once. The database row
// is authoritative; the cache only short-circuits hot redeliveries.
type Ledger struct {
	events repositories.WebhookEventRepository
	seen   SeenCache
	logger *zap.Logger
}

// NewLedger creates a Ledger. seen may be nil.
func NewLedger(events repositories.WebhookEventRepository, seen SeenCache, logger *zap.Logger) *Ledger {
	return &Ledger{events: events, seen: seen, logger: logger}
}

// Record inserts event and reports whether it was new. It must run before
// any side effect so a crash loses the effect instead of repeating it.
func (l *Ledger) Record(ctx context.Context, event *entities.WebhookEvent) (bool, error) {
	if l.seen != nil {
		fresh, err := l.seen.MarkSeen(ctx, event.WebhookID)
		switch {
		case err != nil:
			if l.logger != nil {
				l.logger.Warn("⚠️ Seen cache unavailable, using database only", zap.Error(err))
			}
		case !fresh:
			return false, nil
		}
	}

	created, err := l.events.CreateIfAbsent(ctx, event)
	if err != nil {
		if l.seen != nil {
			if ferr := l.seen.Forget(ctx, event.WebhookID); ferr != nil && l.logger != nil {
				l.logger.Warn("⚠️ Failed to clear seen marker", zap.String("webhook_id", event.WebhookID), zap.Error(ferr))
			}
		}
		return false, fmt.Errorf("failed to record webhook event: %w", err)
	}
	return created, nil
}
