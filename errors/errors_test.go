package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_AsThroughWrapping(t *testing.T) {
	cause := stdErrors.New("db down")
	wrapped := fmt.Errorf("handler: %w", ErrLedgerFailed(cause))

	var appErr AppError
	require.True(t, stdErrors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
	assert.Equal(t, ErrorCode_WEBHOOK_LEDGER_FAILED, appErr.Code)
	assert.ErrorIs(t, wrapped, cause)
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[WEBHOOK_INVALID_SIGNATURE] Invalid webhook signature", ErrInvalidSignature().Error())
	assert.Equal(t, "[PROCESSING_FAILED] Processing failed: boom", ErrProcessingFailed(stdErrors.New("boom")).Error())
}

func TestAppError_WithDetail(t *testing.T) {
	assert.Equal(t, map[string]string{"meeting_id": "m1"}, ErrMeetingNotFound("m1").Details)
	assert.Equal(t, "x", ErrInvalidPayload().WithDetail("field", "x").Details["field"])
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "MEETING_NO_TRANSCRIPT", ErrorCode_MEETING_NO_TRANSCRIPT.String())
	assert.Equal(t, "UNSPECIFIED", ErrorCode(9999).String())
}
