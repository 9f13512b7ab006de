// Package deadline bounds slow calls with a timer.
//
// Run races an operation against a timer. When the timer wins, Run returns a
// *TimeoutError and stops waiting. The operation's context is cancelled at the
// same moment, so clients that honour ctx abort their in-flight request; an
// operation that ignores ctx keeps running in its goroutine and may still land
// a late side effect after the caller has moved on.
package deadline

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout matches any *TimeoutError via errors.Is
var ErrTimeout = errors.New("deadline exceeded")

// TimeoutError reports which guarded call ran out of time
type TimeoutError struct {
	Label    string
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Label, e.Duration)
}

// Is lets errors.Is(err, ErrTimeout) match
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

type outcome[T any] struct {
	val T
	err error
}

// Run executes op and returns its result, or a *TimeoutError if d elapses
// first. A non-positive d disables the timer. Cancellation of the parent ctx
// is reported as ctx.Err().
func Run[T any](ctx context.Context, d time.Duration, label string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if d <= 0 {
		return op(ctx)
	}

	opCtx, cancel := context.WithCancel(ctx)
	done := make(chan outcome[T], 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome[T]{err: fmt.Errorf("%s panicked: %v", label, p)}
			}
		}()
		v, err := op(opCtx)
		done <- outcome[T]{val: v, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case res := <-done:
		cancel()
		return res.val, res.err
	case <-timer.C:
		cancel()
		return zero, &TimeoutError{Label: label, Duration: d}
	case <-ctx.Done():
		cancel()
		return zero, ctx.Err()
	}
}
