package webhook

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
	"github.com/snakanz/adviceApp-sub002/pkg/validator"
)

// Envelope is the provider event body. The event name arrives as either
// event_type or event, and the bot id either top-level or under data.bot.
type Envelope struct {
	ID        string         `json:"id" validate:"required,max=255"`
	BotID     string         `json:"bot_id" validate:"max=255"`
	EventType string         `json:"event_type" validate:"max=128"`
	Event     string         `json:"event" validate:"max=128"`
	Data      map[string]any `json:"data"`
}

// ParseEnvelope decodes and validates a raw webhook body
func ParseEnvelope(body []byte, v *validator.CustomValidator) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidEnvelope, err)
	}
	env.ID = strings.TrimSpace(env.ID)
	if err := v.Validate(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidEnvelope, err)
	}
	if env.BotID == "" {
		env.BotID = botIDFromData(env.Data)
	}
	return &env, nil
}

// RawType returns the provider's event name as sent
func (e *Envelope) RawType() string {
	if e.EventType != "" {
		return e.EventType
	}
	return e.Event
}

// Type returns the event kind, WebhookEventUnknown for anything unhandled
func (e *Envelope) Type() entities.WebhookEventType {
	return entities.ParseWebhookEventType(e.RawType())
}

// Record builds the ledger row for this event
func (e *Envelope) Record() (*entities.WebhookEvent, error) {
	payload := []byte("{}")
	if e.Data != nil {
		b, err := json.Marshal(e.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode event data: %w", err)
		}
		payload = b
	}

	return &entities.WebhookEvent{
		WebhookID:     e.ID,
		BotID:         e.BotID,
		EventType:     e.Type(),
		RawEventType:  e.RawType(),
		StatusPayload: payload,
	}, nil
}

func botIDFromData(data map[string]any) string {
	if data == nil {
		return ""
	}
	if id, ok := data["bot_id"].(string); ok {
		return id
	}
	if bot, ok := data["bot"].(map[string]any); ok {
		if id, ok := bot["id"].(string); ok {
			return id
		}
	}
	return ""
}

// statusFromData reads data.status as a string or as {"code": "..."}
func statusFromData(data map[string]any) entities.MeetingStatus {
	if data == nil {
		return entities.MeetingStatusUnknown
	}
	switch s := data["status"].(type) {
	case string:
		return entities.ParseMeetingStatus(s)
	case map[string]any:
		if code, ok := s["code"].(string); ok {
			return entities.ParseMeetingStatus(code)
		}
	}
	return entities.MeetingStatusUnknown
}
