package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
	"github.com/snakanz/adviceApp-sub002/internal/domain/repositories"
)

type webhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates the GORM-backed idempotency ledger
func NewWebhookEventRepository(db *gorm.DB) repositories.WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

// CreateIfAbsent relies on the unique index on webhook_id: a concurrent
// duplicate loses the insert race and sees zero rows affected.
func (r *webhookEventRepository) CreateIfAbsent(ctx context.Context, event *entities.WebhookEvent) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "webhook_id"}},
			DoNothing: true,
		}).
		Create(event)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
