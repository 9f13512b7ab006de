package webhook

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
	"github.com/snakanz/adviceApp-sub002/internal/domain/repositories"
	"github.com/snakanz/adviceApp-sub002/internal/usecase/transcript"
)

// OutputsGenerator runs the outputs pipeline for a meeting
type OutputsGenerator interface {
	GenerateMeetingOutputs(ctx context.Context, userID, meetingID uuid.UUID, transcript string, meeting *entities.Meeting) *entities.OutputsResult
}

// Processor applies a verified, deduplicated event to the meeting it
// targets. It runs detached from the HTTP request.
type Processor struct {
	meetings repositories.MeetingRepository
	acquirer *transcript.Acquirer
	outputs  OutputsGenerator
	logger   *zap.Logger
}

// NewProcessor creates a Processor
func NewProcessor(meetings repositories.MeetingRepository, acquirer *transcript.Acquirer, outputs OutputsGenerator, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		meetings: meetings,
		acquirer: acquirer,
		outputs:  outputs,
		logger:   logger,
	}
}

// Process routes env by event type
func (p *Processor) Process(ctx context.Context, env *Envelope) error {
	log := p.logger.With(
		zap.String("webhook_id", env.ID),
		zap.String("bot_id", env.BotID),
		zap.String("event_type", env.RawType()),
	)

	switch env.Type() {
	case entities.WebhookEventBotStatusChange:
		return p.handleStatusChange(ctx, env, log)
	case entities.WebhookEventTranscriptDone:
		return p.handleTranscriptDone(ctx, env, log)
	case entities.WebhookEventRecordingDone:
		log.Info("📼 Recording finished")
		return nil
	default:
		log.Info("ℹ️ Unhandled webhook event type")
		return nil
	}
}

// findMeeting returns nil when no meeting is linked to the bot
func (p *Processor) findMeeting(ctx context.Context, botID string, log *zap.Logger) (*entities.Meeting, error) {
	if botID == "" {
		log.Warn("⚠️ Event has no bot id, dropping")
		return nil, nil
	}
	meeting, err := p.meetings.GetByRecordingBotID(ctx, botID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up meeting for bot %s: %w", botID, err)
	}
	if meeting == nil {
		log.Warn("⚠️ No meeting found for bot, dropping event")
	}
	return meeting, nil
}
