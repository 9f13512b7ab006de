package webhook

import "github.com/snakanz/adviceApp-sub002/internal/domain/entities"

// AckResponse is returned to the provider for every accepted delivery,
// duplicates included
type AckResponse struct {
	Status    string                    `json:"status"`
	WebhookID string                    `json:"webhook_id"`
	EventType entities.WebhookEventType `json:"event_type"`
	Duplicate bool                      `json:"duplicate"`
}
