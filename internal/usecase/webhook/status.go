package webhook

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
	"github.com/snakanz/adviceApp-sub002/internal/usecase/transcript"
)

// handleStatusChange stores the reported status. Unrecognised values are
// stored verbatim; known ones only move forward.
func (p *Processor) handleStatusChange(ctx context.Context, env *Envelope, log *zap.Logger) error {
	meeting, err := p.findMeeting(ctx, env.BotID, log)
	if err != nil || meeting == nil {
		return err
	}

	next := statusFromData(env.Data)
	log = log.With(
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("from", meeting.Status.String()),
		zap.String("to", next.String()),
	)

	if !next.IsKnown() {
		log.Warn("⚠️ Unrecognised bot status, storing verbatim")
	} else if !meeting.Status.CanTransitionTo(next) {
		log.Warn("⚠️ Ignoring backwards status transition")
		return nil
	}

	if err := p.meetings.UpdateStatus(ctx, meeting.ID, next); err != nil {
		return fmt.Errorf("failed to update meeting status: %w", err)
	}
	log.Info("🔄 Meeting status updated")
	return nil
}

// handleTranscriptDone acquires the transcript and runs the outputs
// pipeline. An acquisition failure keeps the previous transcript and status.
func (p *Processor) handleTranscriptDone(ctx context.Context, env *Envelope, log *zap.Logger) error {
	meeting, err := p.findMeeting(ctx, env.BotID, log)
	if err != nil || meeting == nil {
		return err
	}
	log = log.With(zap.String("meeting_id", meeting.ID.String()))

	text, ok := p.acquirer.Acquire(ctx, transcript.PointerFromData(env.Data), meeting.TranscriptText())
	if !ok {
		log.Warn("⚠️ Transcript not acquired, keeping previous transcript and status")
		return nil
	}

	if meeting.Status != entities.MeetingStatusProcessing && meeting.Status.CanTransitionTo(entities.MeetingStatusProcessing) {
		if err := p.meetings.UpdateStatus(ctx, meeting.ID, entities.MeetingStatusProcessing); err != nil {
			log.Warn("⚠️ Failed to mark meeting processing", zap.Error(err))
		}
	}

	if err := p.meetings.SaveTranscript(ctx, meeting.ID, text, entities.TranscriptSourceProvider); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	meeting.Transcript = &text
	meeting.TranscriptSource = entities.TranscriptSourceProvider
	log.Info("📝 Transcript saved", zap.Int("chars", len(text)))

	p.acquirer.Archive(ctx, meeting.ID, env.ID, text)

	result := p.outputs.GenerateMeetingOutputs(ctx, meeting.UserID, meeting.ID, text, meeting)

	final := entities.MeetingStatusCompleted
	if result.Failed() {
		final = entities.MeetingStatusFailed
	}
	if final == entities.MeetingStatusFailed && !meeting.Status.CanTransitionTo(final) {
		log.Warn("⚠️ Rerun failed on a finished meeting, keeping status",
			zap.String("status", meeting.Status.String()), zap.Strings("errors", result.Errors))
		return nil
	}
	if err := p.meetings.UpdateStatus(ctx, meeting.ID, final); err != nil {
		return fmt.Errorf("failed to update meeting status: %w", err)
	}

	if result.HasErrors() {
		log.Warn("⚠️ Transcript processed with errors", zap.String("status", final.String()), zap.Strings("errors", result.Errors))
		return nil
	}
	log.Info("✅ Transcript processed", zap.String("status", final.String()))
	return nil
}
