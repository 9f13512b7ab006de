package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
	"github.com/snakanz/adviceApp-sub002/internal/domain/repositories"
)

type pendingActionItemRepository struct {
	db *gorm.DB
}

// NewPendingActionItemRepository creates a new pending action item repository
func NewPendingActionItemRepository(db *gorm.DB) repositories.PendingActionItemRepository {
	return &pendingActionItemRepository{db: db}
}

// DeleteByMeeting removes every pending item of a meeting
func (r *pendingActionItemRepository) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Delete(&entities.PendingActionItem{}).Error
}

// CreateBatch inserts items in one statement
func (r *pendingActionItemRepository) CreateBatch(ctx context.Context, items []*entities.PendingActionItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// ListByMeeting returns the pending items of a meeting in display order
func (r *pendingActionItemRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.PendingActionItem, error) {
	var items []*entities.PendingActionItem
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("display_order ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
