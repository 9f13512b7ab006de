package jobcontext

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJobBegin_SurvivesParentCancellation(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	jobID := uuid.New()

	ctx, cancel := JobBegin(parent, jobID, "webhook.transcript.done", time.Minute)
	defer cancel()
	cancelParent()

	assert.NoError(t, ctx.Err())
	meta := GetJobMetadata(ctx)
	assert.Equal(t, jobID, meta.JobID)
	assert.Equal(t, "webhook.transcript.done", meta.JobType)
	assert.False(t, meta.StartTime.IsZero())
}

func TestJobEnd_ConvertsPanic(t *testing.T) {
	err := JobEnd(context.Background(), func(ctx context.Context) error {
		panic("nil meeting")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil meeting")
}

func TestJobEnd_RunsOnce(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("engine down")

	err := JobEnd(context.Background(), func(ctx context.Context) error {
		calls.Add(1)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 1, calls.Load())
}

func TestRunner_GoAndWait(t *testing.T) {
	r := NewRunner(time.Second, zap.NewNop())
	var done atomic.Int32

	reqCtx, cancelReq := context.WithCancel(context.Background())
	for i := 0; i < 3; i++ {
		r.Go(reqCtx, "test", func(ctx context.Context) error {
			time.Sleep(10 * time.Millisecond)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			done.Add(1)
			return nil
		})
	}
	// The acknowledged request going away must not abort the jobs.
	cancelReq()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Wait(ctx))
	assert.EqualValues(t, 3, done.Load())
}

func TestRunner_PanicDoesNotCrash(t *testing.T) {
	r := NewRunner(time.Second, zap.NewNop())
	r.Go(context.Background(), "panicky", func(ctx context.Context) error {
		panic("boom")
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, r.Wait(ctx))
}

func TestRunner_WaitHonoursDeadline(t *testing.T) {
	r := NewRunner(time.Minute, nil)
	release := make(chan struct{})
	defer close(release)

	r.Go(context.Background(), "slow", func(ctx context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, r.Wait(ctx))
}
