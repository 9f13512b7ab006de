package entities

import (
	"time"

	"github.com/google/uuid"
)

// Client is an advisor's client. The pipeline maintains two generated
// fields on it: the relationship rollup and the pipeline next steps.
type Client struct {
	ID                           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID                       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                         string     `gorm:"type:varchar(255);not null" json:"name"`
	Email                        *string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	PipelineNotes                *string    `gorm:"type:text" json:"pipeline_notes,omitempty"`
	RollupSummary                *string    `gorm:"type:text" json:"rollup_summary,omitempty"`
	RollupGeneratedAt            *time.Time `json:"rollup_generated_at,omitempty"`
	PipelineNextSteps            *string    `gorm:"type:text" json:"pipeline_next_steps,omitempty"`
	PipelineNextStepsGeneratedAt *time.Time `json:"pipeline_next_steps_generated_at,omitempty"`
	CreatedAt                    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}

// BusinessOpportunity is an in-progress piece of business for a client
type BusinessOpportunity struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	BusinessType       string     `gorm:"type:varchar(100);not null" json:"business_type"`
	BusinessAmount     *float64   `gorm:"type:numeric(14,2)" json:"business_amount,omitempty"`
	ContributionMethod *string    `gorm:"type:varchar(100)" json:"contribution_method,omitempty"`
	ExpectedCloseDate  *time.Time `gorm:"type:date" json:"expected_close_date,omitempty"`
	Notes              *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for BusinessOpportunity
func (BusinessOpportunity) TableName() string {
	return "client_business_types"
}

// ClientTodo is a free-standing to-do attached to a client
type ClientTodo struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	Title     string     `gorm:"type:text;not null" json:"title"`
	Completed bool       `gorm:"not null;default:false" json:"completed"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for ClientTodo
func (ClientTodo) TableName() string {
	return "client_todos"
}
