package outputs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
	"github.com/snakanz/adviceApp-sub002/internal/domain/repositories"
	"github.com/snakanz/adviceApp-sub002/internal/infrastructure/metrics"
	"github.com/snakanz/adviceApp-sub002/pkg/ai"
	"github.com/snakanz/adviceApp-sub002/pkg/config"
	"github.com/snakanz/adviceApp-sub002/pkg/deadline"
	"github.com/snakanz/adviceApp-sub002/pkg/fanout"
)

// Stage names used in logs, metrics and recorded errors
const (
	StageQuickSummary    = "quick_summary"
	StageDetailedSummary = "detailed_summary"
	StageClientRollup    = "client_rollup"
	StagePipeline        = "pipeline_next_steps"
)

// Generator is the text-generation engine
type Generator interface {
	Available() bool
	Generate(ctx context.Context, prompt string, opts ai.GenerateOptions) (string, error)
}

// Publisher announces finished runs to other services
type Publisher interface {
	Publish(ctx context.Context, subject string, v any) error
}

// GeneratedEvent is published after every run that produced a quick summary
type GeneratedEvent struct {
	MeetingID            uuid.UUID  `json:"meeting_id"`
	UserID               uuid.UUID  `json:"user_id"`
	ClientID             *uuid.UUID `json:"client_id,omitempty"`
	ActionItemCount      int        `json:"action_item_count"`
	DetailedSummary      bool       `json:"detailed_summary"`
	ClientSummaryUpdated bool       `json:"client_summary_updated"`
	PipelineUpdated      bool       `json:"pipeline_updated"`
	Errors               []string   `json:"errors,omitempty"`
	GeneratedAt          time.Time  `json:"generated_at"`
}

// Service runs the multi-stage outputs pipeline for a meeting
type Service struct {
	meetings  repositories.MeetingRepository
	pending   repositories.PendingActionItemRepository
	clients   repositories.ClientRepository
	generator Generator
	publisher Publisher
	subject   string
	metrics   *metrics.PipelineMetrics
	cfg       config.PipelineConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates an outputs Service. publisher and m may be nil.
func NewService(
	meetings repositories.MeetingRepository,
	pending repositories.PendingActionItemRepository,
	clients repositories.ClientRepository,
	generator Generator,
	publisher Publisher,
	subject string,
	m *metrics.PipelineMetrics,
	cfg config.PipelineConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetings:  meetings,
		pending:   pending,
		clients:   clients,
		generator: generator,
		publisher: publisher,
		subject:   subject,
		metrics:   m,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateMeetingOutputs runs every stage once for meetingID. meeting may be
// nil, in which case it is loaded with its client. Failures never escape:
// they are recorded in the result's Errors and the run carries on where the
// stage contract allows.
func (s *Service) GenerateMeetingOutputs(ctx context.Context, userID, meetingID uuid.UUID, transcript string, meeting *entities.Meeting) *entities.OutputsResult {
	result := &entities.OutputsResult{}

	if strings.TrimSpace(transcript) == "" {
		s.metrics.ObserveRun("skipped")
		return result
	}
	if s.generator == nil || !s.generator.Available() {
		result.AddError(fmt.Sprintf("generation engine unavailable: %v", ai.ErrUnavailable))
		s.logWarn("⚠️ Generation engine unavailable, skipping outputs", zap.String("meeting_id", meetingID.String()))
		s.metrics.ObserveRun("failed")
		return result
	}

	if meeting == nil {
		m, err := s.meetings.GetWithClient(ctx, meetingID)
		if err != nil {
			result.AddError(fmt.Sprintf("failed to load meeting: %v", err))
			s.metrics.ObserveRun("failed")
			return result
		}
		if m == nil {
			result.AddError(fmt.Sprintf("%v: %s", entities.ErrMeetingNotFound, meetingID))
			s.metrics.ObserveRun("failed")
			return result
		}
		meeting = m
	}

	log := s.runLogger(meeting)
	log.Info("🤖 Generating meeting outputs")

	if !s.quickSummaryStage(ctx, userID, meeting, transcript, result, log) {
		s.metrics.ObserveRun("failed")
		return result
	}

	s.detailedSummaryStage(ctx, meeting, transcript, result, log)

	if meeting.HasClient() {
		s.clientStages(ctx, userID, meeting, result, log)
	}

	s.publish(ctx, userID, meeting, result, log)

	if result.HasErrors() {
		log.Warn("⚠️ Meeting outputs generated with errors", zap.Strings("errors", result.Errors))
		s.metrics.ObserveRun("partial")
	} else {
		log.Info("✅ Meeting outputs generated")
		s.metrics.ObserveRun("completed")
	}
	return result
}

// Regenerate is the manual entry point. It checks ownership, stores a
// supplied transcript as manual, and otherwise reuses the stored one.
func (s *Service) Regenerate(ctx context.Context, userID, meetingID uuid.UUID, transcript string) (*entities.OutputsResult, error) {
	meeting, err := s.meetings.GetWithClient(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}
	if meeting == nil {
		return nil, entities.ErrMeetingNotFound
	}
	if meeting.UserID != userID {
		return nil, entities.ErrForbidden
	}

	if strings.TrimSpace(transcript) != "" {
		if err := s.meetings.SaveTranscript(ctx, meeting.ID, transcript, entities.TranscriptSourceManual); err != nil {
			return nil, fmt.Errorf("failed to save transcript: %w", err)
		}
		meeting.Transcript = &transcript
		meeting.TranscriptSource = entities.TranscriptSourceManual
	} else {
		transcript = meeting.TranscriptText()
	}

	if strings.TrimSpace(transcript) == "" {
		return nil, entities.ErrTranscriptMissing
	}

	return s.GenerateMeetingOutputs(ctx, userID, meeting.ID, transcript, meeting), nil
}

// quickSummaryStage is required: it reports false when nothing was generated
// and the remaining stages must not run.
func (s *Service) quickSummaryStage(ctx context.Context, userID uuid.UUID, meeting *entities.Meeting, transcript string, result *entities.OutputsResult, log *zap.Logger) bool {
	start := time.Now()
	opts := ai.GenerateOptions{
		System:         advisorSystemPrompt,
		ClientName:     meeting.ClientName(),
		MaxActionItems: s.cfg.MaxActionItems,
	}

	quick, err := deadline.Run(ctx, s.cfg.QuickTimeout, StageQuickSummary, func(ctx context.Context) (*QuickOutput, error) {
		raw, err := s.generator.Generate(ctx, quickSummaryPrompt(transcript, opts.ClientName, s.cfg.MaxActionItems), opts)
		if err != nil {
			return nil, err
		}
		return ParseQuickOutput(raw, s.cfg.MaxActionItems)
	})
	s.metrics.ObserveStage(StageQuickSummary, outcomeOf(err), time.Since(start))
	if err != nil {
		result.AddError(fmt.Sprintf("quick summary failed: %v", err))
		log.Error("❌ Quick summary failed", zap.Error(err))
		return false
	}

	result.QuickSummary = quick.Summary
	result.ActionItems = make([]string, 0, len(quick.ActionItems))
	for _, item := range quick.ActionItems {
		result.ActionItems = append(result.ActionItems, item.Text)
	}

	if err := s.meetings.SaveQuickSummary(ctx, meeting.ID, quick.Summary, RenderActionPoints(quick.ActionItems), s.now()); err != nil {
		result.AddError(fmt.Sprintf("failed to save quick summary: %v", err))
		log.Error("❌ Failed to save quick summary", zap.Error(err))
	}

	s.replacePendingItems(ctx, userID, meeting, quick.ActionItems, result, log)
	return true
}

// replacePendingItems swaps the meeting's pending action items for items.
// Cleanup is best-effort; a failed insert is recorded.
func (s *Service) replacePendingItems(ctx context.Context, userID uuid.UUID, meeting *entities.Meeting, items []ActionItem, result *entities.OutputsResult, log *zap.Logger) {
	if err := s.pending.DeleteByMeeting(ctx, meeting.ID); err != nil {
		log.Warn("⚠️ Failed to clear pending action items", zap.Error(err))
	}

	if len(items) == 0 {
		return
	}

	rows := make([]*entities.PendingActionItem, 0, len(items))
	for i, item := range items {
		rows = append(rows, &entities.PendingActionItem{
			MeetingID:    meeting.ID,
			ClientID:     meeting.ClientID,
			UserID:       userID,
			ActionText:   item.Text,
			Priority:     item.Priority,
			DisplayOrder: i,
		})
	}

	if err := s.pending.CreateBatch(ctx, rows); err != nil {
		result.AddError(fmt.Sprintf("failed to save pending action items: %v", err))
		log.Error("❌ Failed to save pending action items", zap.Error(err))
	}
}

func (s *Service) detailedSummaryStage(ctx context.Context, meeting *entities.Meeting, transcript string, result *entities.OutputsResult, log *zap.Logger) {
	start := time.Now()
	opts := ai.GenerateOptions{
		System:     advisorSystemPrompt,
		ClientName: meeting.ClientName(),
		MaxTokens:  detailedMaxTokens,
	}

	detailed, err := deadline.Run(ctx, s.cfg.DetailedTimeout, StageDetailedSummary, func(ctx context.Context) (string, error) {
		return s.generator.Generate(ctx, detailedSummaryPrompt(transcript, opts.ClientName), opts)
	})
	s.metrics.ObserveStage(StageDetailedSummary, outcomeOf(err), time.Since(start))
	if err != nil {
		result.AddError(fmt.Sprintf("detailed summary failed: %v", err))
		log.Warn("⚠️ Detailed summary failed", zap.Error(err))
		return
	}

	result.DetailedSummary = detailed
	if err := s.meetings.SaveDetailedSummary(ctx, meeting.ID, detailed); err != nil {
		result.AddError(fmt.Sprintf("failed to save detailed summary: %v", err))
		log.Error("❌ Failed to save detailed summary", zap.Error(err))
	}
}

// clientStages runs the client rollup and pipeline next steps side by side.
// Each is bounded by its own timeout and neither can affect the other.
func (s *Service) clientStages(ctx context.Context, userID uuid.UUID, meeting *entities.Meeting, result *entities.OutputsResult, log *zap.Logger) {
	clientID := *meeting.ClientID

	var rollupUpdated, pipelineUpdated, pipelineSkipped bool

	errs := fanout.Settle(ctx,
		func(ctx context.Context) error {
			start := time.Now()
			_, err := deadline.Run(ctx, s.cfg.RollupTimeout, StageClientRollup, func(ctx context.Context) (struct{}, error) {
				return struct{}{}, s.updateClientRollup(ctx, clientID, meeting.ClientName())
			})
			s.metrics.ObserveStage(StageClientRollup, outcomeOf(err), time.Since(start))
			rollupUpdated = err == nil
			return err
		},
		func(ctx context.Context) error {
			start := time.Now()
			skipped, err := deadline.Run(ctx, s.cfg.PipelineTimeout, StagePipeline, func(ctx context.Context) (bool, error) {
				return s.updatePipelineNextSteps(ctx, clientID, userID)
			})
			outcome := outcomeOf(err)
			if skipped {
				outcome = metrics.OutcomeSkipped
			}
			s.metrics.ObserveStage(StagePipeline, outcome, time.Since(start))
			pipelineSkipped = err == nil && skipped
			pipelineUpdated = err == nil && !skipped
			return err
		},
	)

	if errs[0] != nil {
		result.AddError(fmt.Sprintf("client summary update failed: %v", errs[0]))
		log.Warn("⚠️ Client rollup summary failed", zap.Error(errs[0]))
	}
	if errs[1] != nil {
		result.AddError(fmt.Sprintf("pipeline next steps update failed: %v", errs[1]))
		log.Warn("⚠️ Pipeline next steps failed", zap.Error(errs[1]))
	}

	result.ClientSummaryUpdated = rollupUpdated
	result.PipelineUpdated = pipelineUpdated
	result.PipelineSkipped = pipelineSkipped
}

// updateClientRollup regenerates the relationship summary from the client's
// recent history
func (s *Service) updateClientRollup(ctx context.Context, clientID uuid.UUID, fallbackName string) error {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return fmt.Errorf("%w: %s", entities.ErrClientNotFound, clientID)
	}
	if client.Name == "" {
		client.Name = fallbackName
	}

	meetings, err := s.meetings.ListRecentByClient(ctx, clientID, rollupMeetingLimit)
	if err != nil {
		return fmt.Errorf("failed to list client meetings: %w", err)
	}
	opportunities, err := s.clients.ListBusinessOpportunities(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to list business opportunities: %w", err)
	}

	var actionItems []*entities.ActionItem
	if len(meetings) > 0 {
		actionItems, err = s.clients.ListOutstandingActionItems(ctx, meetingIDs(meetings))
		if err != nil {
			return fmt.Errorf("failed to list action items: %w", err)
		}
	}
	todos, err := s.clients.ListOutstandingTodos(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to list todos: %w", err)
	}
	hasUpcoming, err := s.meetings.HasUpcomingForClient(ctx, clientID, s.now())
	if err != nil {
		return fmt.Errorf("failed to check upcoming meetings: %w", err)
	}

	history := buildRollupContext(rollupInput{
		client:        client,
		meetings:      meetings,
		opportunities: opportunities,
		actionItems:   actionItems,
		todos:         todos,
		hasUpcoming:   hasUpcoming,
	})

	summary, err := s.generator.Generate(ctx, rollupPrompt(client.Name, history, hasUpcoming), ai.GenerateOptions{
		System:     advisorSystemPrompt,
		ClientName: client.Name,
		MaxTokens:  rollupMaxTokens,
	})
	if err != nil {
		return err
	}

	if err := s.clients.SaveRollupSummary(ctx, clientID, summary, s.now()); err != nil {
		return fmt.Errorf("failed to save client summary: %w", err)
	}
	return nil
}

// updatePipelineNextSteps reports skipped=true when the client has no
// business opportunities; nothing is written in that case.
func (s *Service) updatePipelineNextSteps(ctx context.Context, clientID, userID uuid.UUID) (bool, error) {
	opportunities, err := s.clients.ListBusinessOpportunities(ctx, clientID)
	if err != nil {
		return false, fmt.Errorf("failed to list business opportunities: %w", err)
	}
	if len(opportunities) == 0 {
		return true, nil
	}

	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return false, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return false, fmt.Errorf("%w: %s", entities.ErrClientNotFound, clientID)
	}

	meetings, err := s.meetings.ListRecentByClient(ctx, clientID, pipelineMeetingLimit)
	if err != nil {
		return false, fmt.Errorf("failed to list client meetings: %w", err)
	}

	steps, err := s.generator.Generate(ctx, pipelinePrompt(client.Name, buildPipelineContext(client, opportunities, meetings)), ai.GenerateOptions{
		System:     advisorSystemPrompt,
		ClientName: client.Name,
		MaxTokens:  pipelineMaxTokens,
	})
	if err != nil {
		return false, err
	}

	if err := s.clients.SavePipelineNextSteps(ctx, clientID, userID, steps, s.now()); err != nil {
		return false, fmt.Errorf("failed to save pipeline next steps: %w", err)
	}
	return false, nil
}

func (s *Service) publish(ctx context.Context, userID uuid.UUID, meeting *entities.Meeting, result *entities.OutputsResult, log *zap.Logger) {
	if s.publisher == nil || s.subject == "" {
		return
	}

	event := GeneratedEvent{
		MeetingID:            meeting.ID,
		UserID:               userID,
		ClientID:             meeting.ClientID,
		ActionItemCount:      len(result.ActionItems),
		DetailedSummary:      result.DetailedSummary != "",
		ClientSummaryUpdated: result.ClientSummaryUpdated,
		PipelineUpdated:      result.PipelineUpdated,
		Errors:               result.Errors,
		GeneratedAt:          s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, s.subject, event); err != nil {
		log.Warn("⚠️ Failed to publish outputs event", zap.Error(err))
	}
}

func (s *Service) runLogger(meeting *entities.Meeting) *zap.Logger {
	logger := s.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fields := []zap.Field{zap.String("meeting_id", meeting.ID.String())}
	if meeting.ClientID != nil {
		fields = append(fields, zap.String("client_id", meeting.ClientID.String()))
	}
	return logger.With(fields...)
}

func (s *Service) logWarn(msg string, fields ...zap.Field) {
	if s.logger != nil {
		s.logger.Warn(msg, fields...)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, deadline.ErrTimeout):
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeError
	}
}
