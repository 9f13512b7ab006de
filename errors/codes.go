package errors

// ErrorCode is the machine-readable code returned in error bodies
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = 0
	ErrorCode_HTTP_OK     ErrorCode = 200

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_PERMISSION_DENIED ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1004
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1005
	ErrorCode_PROCESSING_FAILED ErrorCode = 1006

	// Webhooks
	ErrorCode_WEBHOOK_INVALID_SIGNATURE ErrorCode = 3000
	ErrorCode_WEBHOOK_SECRET_MISSING    ErrorCode = 3001
	ErrorCode_WEBHOOK_LEDGER_FAILED     ErrorCode = 3002

	// Meetings / outputs
	ErrorCode_MEETING_NOT_FOUND     ErrorCode = 4000
	ErrorCode_MEETING_NO_TRANSCRIPT ErrorCode = 4001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:               "UNSPECIFIED",
	ErrorCode_HTTP_OK:                   "HTTP_OK",
	ErrorCode_INTERNAL:                  "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:          "INVALID_ARGUMENT",
	ErrorCode_PERMISSION_DENIED:         "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:           "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:           "INVALID_PAYLOAD",
	ErrorCode_PROCESSING_FAILED:         "PROCESSING_FAILED",
	ErrorCode_WEBHOOK_INVALID_SIGNATURE: "WEBHOOK_INVALID_SIGNATURE",
	ErrorCode_WEBHOOK_SECRET_MISSING:    "WEBHOOK_SECRET_MISSING",
	ErrorCode_WEBHOOK_LEDGER_FAILED:     "WEBHOOK_LEDGER_FAILED",
	ErrorCode_MEETING_NOT_FOUND:         "MEETING_NOT_FOUND",
	ErrorCode_MEETING_NO_TRANSCRIPT:     "MEETING_NO_TRANSCRIPT",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNSPECIFIED"
}
