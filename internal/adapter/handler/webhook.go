package handler

import (
	"context"
	stdErrors "errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/snakanz/adviceApp-sub002/errors"
	webhookdto "github.com/snakanz/adviceApp-sub002/internal/adapter/dto/webhook"
	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
	"github.com/snakanz/adviceApp-sub002/internal/usecase/webhook"
)

// FallbackSignatureHeader is accepted when the configured header is absent
const FallbackSignatureHeader = "X-Recall-Signature"

// EventHandler verifies and records one provider webhook delivery
type EventHandler interface {
	HandleEvent(ctx context.Context, payload []byte, signature string) (*webhook.Receipt, error)
}

// WebhookHandler receives recording provider webhooks
type WebhookHandler struct {
	events          EventHandler
	signatureHeader string
	logger          *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(events EventHandler, signatureHeader string, logger *zap.Logger) *WebhookHandler {
	if signatureHeader == "" {
		signatureHeader = "X-Webhook-Signature"
	}
	return &WebhookHandler{
		events:          events,
		signatureHeader: signatureHeader,
		logger:          logger,
	}
}

// HandleRecallWebhook verifies the signature, records the event and acknowledges it.
// Processing continues in the background after the response is written.
// @Summary      Recording provider webhook
// @Description  Receives bot status, transcript and recording events signed with HMAC-SHA256
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Signature  header    string                  true  "Hex HMAC-SHA256 of the raw body"
// @Success      200                  {object}  map[string]interface{}  "Event accepted (duplicates included)"
// @Failure      400                  {object}  map[string]interface{}  "Invalid envelope"
// @Failure      401                  {object}  map[string]interface{}  "Invalid signature or verification not configured"
// @Failure      500                  {object}  map[string]interface{}  "Failed to record event"
// @Router       /webhooks/recall [post]
func (h *WebhookHandler) HandleRecallWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	signature := c.Request().Header.Get(h.signatureHeader)
	if signature == "" {
		signature = c.Request().Header.Get(FallbackSignatureHeader)
	}

	receipt, err := h.events.HandleEvent(c.Request().Context(), payload, signature)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}

	return c.JSON(http.StatusOK, webhookdto.AckResponse{
		Status:    "ok",
		WebhookID: receipt.WebhookID,
		EventType: receipt.EventType,
		Duplicate: receipt.Duplicate,
	})
}

func toAppError(err error) error {
	switch {
	case stdErrors.Is(err, entities.ErrSecretMissing):
		return errors.ErrWebhookSecretMissing()
	case stdErrors.Is(err, entities.ErrInvalidSignature):
		return errors.ErrInvalidSignature()
	case stdErrors.Is(err, entities.ErrInvalidEnvelope):
		appErr := errors.ErrInvalidPayload()
		appErr.Raw = err
		return appErr
	default:
		return errors.ErrLedgerFailed(err)
	}
}
