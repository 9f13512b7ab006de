package fanout

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettle_AllSucceed(t *testing.T) {
	var calls atomic.Int32
	task := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}

	errs := Settle(context.Background(), task, task, task)
	require.Len(t, errs, 3)
	assert.Empty(t, Failed(errs))
	assert.EqualValues(t, 3, calls.Load())
}

func TestSettle_FailureDoesNotAffectSibling(t *testing.T) {
	boom := errors.New("rollup failed")
	var siblingDone atomic.Bool

	errs := Settle(context.Background(),
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) error {
			time.Sleep(20 * time.Millisecond)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			siblingDone.Store(true)
			return nil
		},
	)

	assert.ErrorIs(t, errs[0], boom)
	assert.NoError(t, errs[1])
	assert.True(t, siblingDone.Load())
}

func TestSettle_RecoversPanics(t *testing.T) {
	errs := Settle(context.Background(),
		func(ctx context.Context) error { panic("bad task") },
		func(ctx context.Context) error { return nil },
	)

	require.Error(t, errs[0])
	assert.Contains(t, errs[0].Error(), "bad task")
	assert.NoError(t, errs[1])
}

func TestSettle_RunsConcurrently(t *testing.T) {
	gate := make(chan struct{})
	// Each task waits for the other; a sequential runner would deadlock.
	errs := Settle(context.Background(),
		func(ctx context.Context) error { gate <- struct{}{}; return nil },
		func(ctx context.Context) error { <-gate; return nil },
	)
	assert.Empty(t, Failed(errs))
}

func TestSettle_NoTasks(t *testing.T) {
	assert.Empty(t, Settle(context.Background()))
}
