package deadline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsResultBeforeDeadline(t *testing.T) {
	got, err := Run(context.Background(), time.Second, "fast", func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestRun_PropagatesOperationError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run(context.Background(), time.Second, "failing", func(ctx context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestRun_TimesOut(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	_, err := Run(context.Background(), 20*time.Millisecond, "quick summary", func(ctx context.Context) (string, error) {
		<-release
		return "late", nil
	})
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)

	var te *TimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "quick summary", te.Label)
	assert.Equal(t, 20*time.Millisecond, te.Duration)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestRun_CancelsOperationContextOnTimeout(t *testing.T) {
	cancelled := make(chan struct{})
	_, err := Run(context.Background(), 10*time.Millisecond, "engine", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		close(cancelled)
		return "", ctx.Err()
	})
	assert.ErrorIs(t, err, ErrTimeout)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("operation context was not cancelled")
	}
}

func TestRun_LateSideEffectStillLands(t *testing.T) {
	var wrote atomic.Bool
	finished := make(chan struct{})

	_, err := Run(context.Background(), 10*time.Millisecond, "stubborn", func(ctx context.Context) (struct{}, error) {
		time.Sleep(50 * time.Millisecond)
		wrote.Store(true)
		close(finished)
		return struct{}{}, nil
	})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, wrote.Load())

	<-finished
	assert.True(t, wrote.Load())
}

func TestRun_RecoversPanic(t *testing.T) {
	_, err := Run(context.Background(), time.Second, "panicky", func(ctx context.Context) (int, error) {
		panic("kaboom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestRun_NonPositiveDurationDisablesTimer(t *testing.T) {
	got, err := Run(context.Background(), 0, "unbounded", func(ctx context.Context) (int, error) {
		time.Sleep(5 * time.Millisecond)
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}
