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

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) first(ctx context.Context, preloadClient bool, query string, args ...interface{}) (*entities.Meeting, error) {
	var meeting entities.Meeting
	q := r.db.WithContext(ctx)
	if preloadClient {
		q = q.Preload("Client")
	}
	err := q.Where(query, args...).First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// GetByID retrieves a meeting by its ID
func (r *meetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return r.first(ctx, false, "id = ?", id)
}

// GetWithClient retrieves a meeting with its client preloaded
func (r *meetingRepository) GetWithClient(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return r.first(ctx, true, "id = ?", id)
}

// GetByRecordingBotID retrieves the meeting linked to a recording bot
func (r *meetingRepository) GetByRecordingBotID(ctx context.Context, botID string) (*entities.Meeting, error) {
	return r.first(ctx, true, "recording_bot_id = ?", botID)
}

func (r *meetingRepository) update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", entities.ErrMeetingNotFound, id)
	}
	return nil
}

// UpdateStatus stores the status verbatim
func (r *meetingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MeetingStatus) error {
	return r.update(ctx, id, map[string]interface{}{
		"status": string(status),
	})
}

// SaveTranscript overwrites the meeting transcript
func (r *meetingRepository) SaveTranscript(ctx context.Context, id uuid.UUID, transcript string, source entities.TranscriptSource) error {
	return r.update(ctx, id, map[string]interface{}{
		"transcript":        transcript,
		"transcript_source": string(source),
	})
}

// SaveQuickSummary stores the quick summary, rendered action points and summary time
func (r *meetingRepository) SaveQuickSummary(ctx context.Context, id uuid.UUID, summary, actionPoints string, summarizedAt time.Time) error {
	return r.update(ctx, id, map[string]interface{}{
		"quick_summary":      summary,
		"action_points":      actionPoints,
		"last_summarized_at": summarizedAt,
	})
}

// SaveDetailedSummary stores the long-form summary
func (r *meetingRepository) SaveDetailedSummary(ctx context.Context, id uuid.UUID, summary string) error {
	return r.update(ctx, id, map[string]interface{}{
		"detailed_summary": summary,
	})
}

// ListRecentByClient returns up to limit meetings for a client, newest first
func (r *meetingRepository) ListRecentByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("starts_at DESC").
		Limit(limit).
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// HasUpcomingForClient reports whether the client has a meeting after now
func (r *meetingRepository) HasUpcomingForClient(ctx context.Context, clientID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("client_id = ? AND starts_at > ?", clientID, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
