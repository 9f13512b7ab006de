package repositories

import (
	"context"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
)

// WebhookEventRepository is the durable idempotency ledger
type WebhookEventRepository interface {
	// CreateIfAbsent inserts the event unless its webhook id is already
	// recorded. created is false for a duplicate.
	CreateIfAbsent(ctx context.Context, event *entities.WebhookEvent) (created bool, err error)
}
