package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WebhookEventType is the provider event kind
type WebhookEventType string

const (
	WebhookEventTranscriptDone  WebhookEventType = "transcript.done"
	WebhookEventBotStatusChange WebhookEventType = "bot.status_change"
	WebhookEventRecordingDone   WebhookEventType = "recording.done"
	WebhookEventUnknown         WebhookEventType = "unknown"
)

// ParseWebhookEventType maps a provider event name onto a known type,
// falling back to WebhookEventUnknown
func ParseWebhookEventType(s string) WebhookEventType {
	switch t := WebhookEventType(strings.TrimSpace(s)); t {
	case WebhookEventTranscriptDone, WebhookEventBotStatusChange, WebhookEventRecordingDone:
		return t
	default:
		return WebhookEventUnknown
	}
}

// WebhookEvent is the immutable ledger row for a received provider event.
// It is inserted once and never updated or deleted.
type WebhookEvent struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	WebhookID     string           `gorm:"type:varchar(255);not null;uniqueIndex" json:"webhook_id"`
	BotID         string           `gorm:"type:varchar(255);index" json:"bot_id"`
	EventType     WebhookEventType `gorm:"type:varchar(64);not null" json:"event_type"`
	RawEventType  string           `gorm:"type:varchar(128)" json:"raw_event_type"`
	StatusPayload datatypes.JSON   `gorm:"type:jsonb;default:'{}'" json:"status_payload"`
	ReceivedAt    time.Time        `gorm:"not null" json:"received_at"`
}

// TableName specifies the table name for WebhookEvent
func (WebhookEvent) TableName() string {
	return "webhook_events"
}
