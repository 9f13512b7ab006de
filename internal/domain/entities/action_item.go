package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	PriorityUrgent = 1
	PriorityHigh   = 2
	PriorityMedium = 3
	PriorityLow    = 4

	DefaultPriority = PriorityMedium
)

// NormalizePriority clamps p into 1..4, mapping out-of-range values to the default
func NormalizePriority(p int) int {
	if p < PriorityUrgent || p > PriorityLow {
		return DefaultPriority
	}
	return p
}

// PendingActionItem is a generated action item awaiting advisor approval.
// The set for a meeting is replaced wholesale on every regeneration.
type PendingActionItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"meeting_id"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	ActionText   string     `gorm:"type:text;not null" json:"action_text"`
	Priority     int        `gorm:"not null;default:3" json:"priority"`
	DisplayOrder int        `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for PendingActionItem
func (PendingActionItem) TableName() string {
	return "pending_action_items"
}

// ActionItem is an approved, durable action item
type ActionItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"meeting_id"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	ActionText  string     `gorm:"type:text;not null" json:"action_text"`
	Priority    int        `gorm:"not null;default:3" json:"priority"`
	Completed   bool       `gorm:"not null;default:false;index" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}
