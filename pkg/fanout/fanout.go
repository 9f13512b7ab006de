// Package fanout runs independent tasks side by side and waits for all of them.
package fanout

import (
	"context"
	"fmt"
	"sync"
)

// Task is one unit of best-effort work
type Task func(ctx context.Context) error

// Settle starts every task in its own goroutine and returns once all of them
// have finished. errs[i] holds the outcome of tasks[i] (nil on success). A
// failing or panicking task never cancels or affects its siblings.
func Settle(ctx context.Context, tasks ...Task) []error {
	errs := make([]error, len(tasks))

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(i int, task Task) {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					errs[i] = fmt.Errorf("task %d panicked: %v", i, p)
				}
			}()
			errs[i] = task(ctx)
		}(i, task)
	}
	wg.Wait()

	return errs
}

// Failed returns only the non-nil errors from a Settle result
func Failed(errs []error) []error {
	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
