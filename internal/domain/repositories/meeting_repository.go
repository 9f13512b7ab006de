package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
)

// MeetingRepository defines persistence operations for meetings.
// Getters return (nil, nil) when no row matches.
type MeetingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	GetWithClient(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	GetByRecordingBotID(ctx context.Context, botID string) (*entities.Meeting, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MeetingStatus) error
	SaveTranscript(ctx context.Context, id uuid.UUID, transcript string, source entities.TranscriptSource) error
	SaveQuickSummary(ctx context.Context, id uuid.UUID, summary, actionPoints string, summarizedAt time.Time) error
	SaveDetailedSummary(ctx context.Context, id uuid.UUID, summary string) error

	// ListRecentByClient returns the client's meetings, newest first
	ListRecentByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*entities.Meeting, error)
	HasUpcomingForClient(ctx context.Context, clientID uuid.UUID, now time.Time) (bool, error)
}

// PendingActionItemRepository defines persistence for pending action items
type PendingActionItemRepository interface {
	DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) error
	CreateBatch(ctx context.Context, items []*entities.PendingActionItem) error
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.PendingActionItem, error)
}
