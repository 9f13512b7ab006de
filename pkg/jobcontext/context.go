package jobcontext

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var (
	keyJobID        KeyContext = "job_id"
	keyJobType      KeyContext = "job_type"
	keyJobStartTime KeyContext = "job_start_time"
)

// DefaultTimeout bounds a detached job when the runner has no explicit budget
const DefaultTimeout = 5 * time.Minute

// JobMetadata holds metadata for a job execution
type JobMetadata struct {
	JobID     uuid.UUID
	JobType   string
	StartTime time.Time
}

// JobBegin derives a job context that survives cancellation of parentCtx
// (e.g. an HTTP request that has already been answered) but is still bounded
// by timeout. Values from parentCtx stay visible.
func JobBegin(parentCtx context.Context, jobID uuid.UUID, jobType string, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parentCtx), timeout)

	ctx = context.WithValue(ctx, keyJobID, jobID)
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())

	return ctx, cancel
}

// JobEnd executes the job function once, converting a panic into an error.
// Jobs are never retried here; the upstream provider owns redelivery.
func JobEnd(ctx context.Context, jobFunc func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before job execution: %w", ctx.Err())
	}

	return jobFunc(ctx)
}

// GetJobID extracts job ID from context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetJobType extracts job type from context
func GetJobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// GetJobStartTime extracts job start time from context
func GetJobStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyJobStartTime).(time.Time)
	return startTime, ok
}

// GetJobMetadata extracts all job metadata from context
func GetJobMetadata(ctx context.Context) *JobMetadata {
	jobID, _ := GetJobID(ctx)
	jobType, _ := GetJobType(ctx)
	startTime, _ := GetJobStartTime(ctx)

	return &JobMetadata{
		JobID:     jobID,
		JobType:   jobType,
		StartTime: startTime,
	}
}

// Runner supervises detached background jobs. Failures and panics are logged
// and never escape; Wait lets shutdown drain in-flight work.
type Runner struct {
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewRunner creates a runner whose jobs are bounded by timeout
func NewRunner(timeout time.Duration, logger *zap.Logger) *Runner {
	return &Runner{timeout: timeout, logger: logger}
}

// Go starts jobFunc in the background and returns immediately
func (r *Runner) Go(parentCtx context.Context, jobType string, jobFunc func(context.Context) error) uuid.UUID {
	jobID := uuid.New()
	ctx, cancel := JobBegin(parentCtx, jobID, jobType, r.timeout)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		err := JobEnd(ctx, jobFunc)
		if r.logger == nil {
			return
		}
		meta := GetJobMetadata(ctx)
		fields := []zap.Field{
			zap.String("job_id", meta.JobID.String()),
			zap.String("job_type", meta.JobType),
			zap.Duration("elapsed", time.Since(meta.StartTime)),
		}
		if err != nil {
			r.logger.Error("❌ background job failed", append(fields, zap.Error(err))...)
			return
		}
		r.logger.Debug("✅ background job finished", fields...)
	}()

	return jobID
}

// Wait blocks until every started job has finished or ctx is done
func (r *Runner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("background jobs still running: %w", ctx.Err())
	}
}
