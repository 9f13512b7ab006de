package handler

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/snakanz/adviceApp-sub002/errors"
	outputsdto "github.com/snakanz/adviceApp-sub002/internal/adapter/dto/outputs"
	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
)

// Regenerator reruns the outputs pipeline for a meeting on request
type Regenerator interface {
	Regenerate(ctx context.Context, userID, meetingID uuid.UUID, transcript string) (*entities.OutputsResult, error)
}

// OutputsController handles API endpoints that trigger output generation
type OutputsController struct {
	svc    Regenerator
	logger *zap.Logger
}

// NewOutputsController creates a new outputs controller
func NewOutputsController(svc Regenerator, logger *zap.Logger) *OutputsController {
	return &OutputsController{svc: svc, logger: logger}
}

// RegenerateOutputs reruns summaries, action items and client stages for a meeting
// @Summary      Regenerate meeting outputs
// @Description  Runs the outputs pipeline synchronously using the stored transcript, or the supplied one which is saved as manual
// @Tags         Outputs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true   "Meeting ID (UUID)"
// @Param        request  body      object{transcript=string}  false  "Replacement transcript"
// @Success      200      {object}  map[string]interface{}     "Outputs result"
// @Failure      400      {object}  map[string]interface{}     "Invalid meeting ID or no transcript"
// @Failure      401      {object}  map[string]interface{}     "User not authenticated"
// @Failure      403      {object}  map[string]interface{}     "Meeting belongs to another user"
// @Failure      404      {object}  map[string]interface{}     "Meeting not found"
// @Router       /meetings/{id}/outputs [post]
func (oc *OutputsController) RegenerateOutputs(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return HandleError(oc.logger, c, errors.ErrUnauthenticated())
	}

	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(oc.logger, c, errors.ErrInvalidArgument("meeting id must be a UUID"))
	}

	var req outputsdto.RegenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(oc.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(oc.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := oc.svc.Regenerate(c.Request().Context(), userID, meetingID, req.Transcript)
	switch {
	case err == nil:
		return HandleSuccess(oc.logger, c, result)
	case stdErrors.Is(err, entities.ErrMeetingNotFound):
		return HandleError(oc.logger, c, errors.ErrMeetingNotFound(meetingID.String()))
	case stdErrors.Is(err, entities.ErrForbidden):
		return HandleError(oc.logger, c, errors.ErrPermissionDenied("regenerate outputs"))
	case stdErrors.Is(err, entities.ErrTranscriptMissing):
		return HandleError(oc.logger, c, errors.ErrMeetingNoTranscript(meetingID.String()))
	default:
		return HandleError(oc.logger, c, errors.ErrProcessingFailed(err))
	}
}
