package entities

import (
	"time"

	"github.com/google/uuid"
)

// TranscriptSource records where a meeting's transcript came from
type TranscriptSource string

const (
	TranscriptSourceNone     TranscriptSource = "none"
	TranscriptSourceProvider TranscriptSource = "provider"
	TranscriptSourceManual   TranscriptSource = "manual"
)

// Meeting is the unit of work the outputs pipeline enriches
type Meeting struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID         *uuid.UUID       `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Client           *Client          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Title            string           `gorm:"type:varchar(255);not null;default:''" json:"title"`
	StartsAt         time.Time        `gorm:"not null;index" json:"starts_at"`
	RecordingBotID   *string          `gorm:"type:varchar(255);index" json:"recording_bot_id,omitempty"`
	Transcript       *string          `gorm:"type:text" json:"transcript,omitempty"`
	TranscriptSource TranscriptSource `gorm:"type:varchar(20);not null;default:'none'" json:"transcript_source"`
	Status           MeetingStatus    `gorm:"type:varchar(64);not null;default:'scheduled';index" json:"status"`
	QuickSummary     *string          `gorm:"type:text" json:"quick_summary,omitempty"`
	ActionPoints     *string          `gorm:"type:text" json:"action_points,omitempty"`
	DetailedSummary  *string          `gorm:"type:text" json:"detailed_summary,omitempty"`
	LastSummarizedAt *time.Time       `json:"last_summarized_at,omitempty"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// TranscriptText returns the stored transcript or ""
func (m *Meeting) TranscriptText() string {
	if m == nil || m.Transcript == nil {
		return ""
	}
	return *m.Transcript
}

// ClientName returns the display name of the linked client, if loaded
func (m *Meeting) ClientName() string {
	if m == nil || m.Client == nil {
		return ""
	}
	return m.Client.Name
}

// HasClient reports whether the meeting is linked to a client
func (m *Meeting) HasClient() bool {
	return m != nil && m.ClientID != nil && *m.ClientID != uuid.Nil
}

// StringValue dereferences an optional text column
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
