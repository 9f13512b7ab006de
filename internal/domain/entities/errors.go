package entities

import "errors"

// Domain errors
var (
	// Meeting errors
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrTranscriptMissing = errors.New("meeting has no transcript")

	// Client errors
	ErrClientNotFound = errors.New("client not found")

	// Webhook errors
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrSecretMissing    = errors.New("webhook secret not configured")
	ErrInvalidEnvelope  = errors.New("invalid webhook envelope")

	// Generic errors
	ErrForbidden = errors.New("forbidden")
)
