package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
)

// ClientRepository defines the client reads and the two generated-field
// writes used by the outputs pipeline
type ClientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Client, error)
	ListBusinessOpportunities(ctx context.Context, clientID uuid.UUID) ([]*entities.BusinessOpportunity, error)
	ListOutstandingActionItems(ctx context.Context, meetingIDs []uuid.UUID) ([]*entities.ActionItem, error)
	ListOutstandingTodos(ctx context.Context, clientID uuid.UUID) ([]*entities.ClientTodo, error)

	SaveRollupSummary(ctx context.Context, clientID uuid.UUID, summary string, generatedAt time.Time) error
	// SavePipelineNextSteps is scoped by both client and owning user
	SavePipelineNextSteps(ctx context.Context, clientID, userID uuid.UUID, steps string, generatedAt time.Time) error
}
