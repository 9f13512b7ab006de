package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
	"github.com/snakanz/adviceApp-sub002/internal/domain/repositories"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) repositories.ClientRepository {
	return &clientRepository{db: db}
}

// GetByID retrieves a client by its ID
func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	var client entities.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// ListBusinessOpportunities returns the client's business records
func (r *clientRepository) ListBusinessOpportunities(ctx context.Context, clientID uuid.UUID) ([]*entities.BusinessOpportunity, error) {
	var records []*entities.BusinessOpportunity
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListOutstandingActionItems returns incomplete approved items for the given meetings
func (r *clientRepository) ListOutstandingActionItems(ctx context.Context, meetingIDs []uuid.UUID) ([]*entities.ActionItem, error) {
	if len(meetingIDs) == 0 {
		return nil, nil
	}
	var items []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("meeting_id IN ? AND completed = ?", meetingIDs, false).
		Order("priority ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListOutstandingTodos returns the client's open to-dos
func (r *clientRepository) ListOutstandingTodos(ctx context.Context, clientID uuid.UUID) ([]*entities.ClientTodo, error) {
	var todos []*entities.ClientTodo
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND completed = ?", clientID, false).
		Order("created_at ASC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// SaveRollupSummary overwrites the client's relationship summary
func (r *clientRepository) SaveRollupSummary(ctx context.Context, clientID uuid.UUID, summary string, generatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Client{}).
		Where("id = ?", clientID).
		Updates(map[string]interface{}{
			"rollup_summary":      summary,
			"rollup_generated_at": generatedAt,
			"updated_at":          time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", entities.ErrClientNotFound, clientID)
	}
	return nil
}

// SavePipelineNextSteps overwrites the pipeline note; the user filter keeps
// one advisor from writing onto another advisor's client
func (r *clientRepository) SavePipelineNextSteps(ctx context.Context, clientID, userID uuid.UUID, steps string, generatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Client{}).
		Where("id = ? AND user_id = ?", clientID, userID).
		Updates(map[string]interface{}{
			"pipeline_next_steps":              steps,
			"pipeline_next_steps_generated_at": generatedAt,
			"updated_at":                       time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s for user %s", entities.ErrClientNotFound, clientID, userID)
	}
	return nil
}
