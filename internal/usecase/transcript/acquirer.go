package transcript

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fetcher downloads a transcript document
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Archiver stores a copy of an acquired transcript
type Archiver interface {
	UploadText(ctx context.Context, objectName string, content string) error
}

// Acquirer turns a transcript pointer into transcript text
type Acquirer struct {
	fetcher  Fetcher
	archiver Archiver
	logger   *zap.Logger
}

// NewAcquirer creates an Acquirer. archiver may be nil.
func NewAcquirer(fetcher Fetcher, archiver Archiver, logger *zap.Logger) *Acquirer {
	return &Acquirer{
		fetcher:  fetcher,
		archiver: archiver,
		logger:   logger,
	}
}

// Acquire resolves ptr to text. A failed fetch or an empty document never
// erases data: previous is returned with ok=false.
func (a *Acquirer) Acquire(ctx context.Context, ptr Pointer, previous string) (string, bool) {
	if inline := strings.TrimSpace(ptr.Inline); inline != "" {
		return inline, true
	}

	if strings.TrimSpace(ptr.URL) == "" {
		a.warn("⚠️ No transcript pointer in event")
		return previous, false
	}

	body, err := a.fetcher.Fetch(ctx, ptr.URL)
	if err != nil {
		a.warn("⚠️ Transcript fetch failed, keeping previous transcript", zap.Error(err))
		return previous, false
	}

	text := ExtractText(body)
	if text == "" {
		a.warn("⚠️ Transcript document has no text, keeping previous transcript")
		return previous, false
	}

	return text, true
}

// Archive copies text to object storage under
// transcripts/<meeting_id>/<webhook_id>.txt. Failures are only logged.
func (a *Acquirer) Archive(ctx context.Context, meetingID uuid.UUID, webhookID, text string) {
	if a.archiver == nil || text == "" {
		return
	}

	object := ArchiveObjectName(meetingID, webhookID)
	if err := a.archiver.UploadText(ctx, object, text); err != nil {
		a.warn("⚠️ Failed to archive transcript", zap.String("object", object), zap.Error(err))
		return
	}
	if a.logger != nil {
		a.logger.Debug("📦 Transcript archived", zap.String("object", object))
	}
}

// ArchiveObjectName returns the storage key for a transcript copy
func ArchiveObjectName(meetingID uuid.UUID, webhookID string) string {
	return fmt.Sprintf("transcripts/%s/%s.txt", meetingID, webhookID)
}

func (a *Acquirer) warn(msg string, fields ...zap.Field) {
	if a.logger != nil {
		a.logger.Warn(msg, fields...)
	}
}
