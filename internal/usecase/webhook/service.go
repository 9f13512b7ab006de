package webhook

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
	"github.com/snakanz/adviceApp-sub002/internal/infrastructure/metrics"
	"github.com/snakanz/adviceApp-sub002/pkg/ai"
	"github.com/snakanz/adviceApp-sub002/pkg/jobcontext"
	"github.com/snakanz/adviceApp-sub002/pkg/validator"
)

// Receipt is what the endpoint acknowledges to the provider
type Receipt struct {
	WebhookID string                    `json:"webhook_id"`
	EventType entities.WebhookEventType `json:"event_type"`
	Duplicate bool                      `json:"duplicate"`
}

// Service verifies, deduplicates and dispatches provider webhook events
type Service struct {
	secret    string
	ledger    *Ledger
	processor *Processor
	runner    *jobcontext.Runner
	validate  *validator.CustomValidator
	metrics   *metrics.PipelineMetrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a webhook Service. m may be nil.
func NewService(secret string, ledger *Ledger, processor *Processor, runner *jobcontext.Runner, m *metrics.PipelineMetrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		secret:    secret,
		ledger:    ledger,
		processor: processor,
		runner:    runner,
		validate:  validator.New(),
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleEvent verifies payload against signature, records it in the ledger
// and starts processing in the background. It returns as soon as the event
// is recorded; processing errors are only logged.
func (s *Service) HandleEvent(ctx context.Context, payload []byte, signature string) (*Receipt, error) {
	if s.secret == "" {
		s.logger.Error("❌ Webhook secret not configured, rejecting event")
		s.metrics.ObserveWebhook(string(entities.WebhookEventUnknown), metrics.OutcomeRejected)
		return nil, entities.ErrSecretMissing
	}
	if !ai.VerifyHMAC(s.secret, payload, signature) {
		s.logger.Warn("⚠️ Webhook signature verification failed")
		s.metrics.ObserveWebhook(string(entities.WebhookEventUnknown), metrics.OutcomeRejected)
		return nil, entities.ErrInvalidSignature
	}

	env, err := ParseEnvelope(payload, s.validate)
	if err != nil {
		s.logger.Warn("⚠️ Invalid webhook envelope", zap.Error(err))
		s.metrics.ObserveWebhook(string(entities.WebhookEventUnknown), metrics.OutcomeRejected)
		return nil, err
	}

	record, err := env.Record()
	if err != nil {
		return nil, err
	}
	record.ReceivedAt = s.now().UTC()

	receipt := &Receipt{WebhookID: env.ID, EventType: env.Type()}
	log := s.logger.With(zap.String("webhook_id", env.ID), zap.String("event_type", env.RawType()))

	fresh, err := s.ledger.Record(ctx, record)
	if err != nil {
		log.Error("❌ Failed to record webhook event", zap.Error(err))
		return nil, err
	}
	if !fresh {
		log.Info("🔁 Duplicate webhook event, skipping")
		s.metrics.ObserveWebhook(string(receipt.EventType), metrics.OutcomeDuplicate)
		receipt.Duplicate = true
		return receipt, nil
	}

	s.metrics.ObserveWebhook(string(receipt.EventType), metrics.OutcomeAccepted)
	jobID := s.runner.Go(ctx, "webhook."+string(receipt.EventType), func(ctx context.Context) error {
		return s.processor.Process(ctx, env)
	})
	log.Info("📥 Webhook event accepted", zap.String("job_id", jobID.String()))

	return receipt, nil
}
