package concurrency

import (
	"context"
	"fmt"
	"sync"
)

// Options controls a parallel run.
type Options struct {
	// MaxWorkers caps the number of concurrent calls. Values <= 0 use the default.
	MaxWorkers int
}

const defaultWorkers = 4

func DefaultOptions() Options {
	return Options{MaxWorkers: defaultWorkers}
}

// ItemError ties an error to the input position it came from.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

type outcome[R any] struct {
	index  int
	result R
	err    error
}

// ProcessParallel calls fn for every item on a bounded worker pool. Results
// come back in input order. Every failed or skipped item yields one
// *ItemError, sorted by index; items skipped because ctx ended carry ctx.Err().
func ProcessParallel[T any, R any](
	ctx context.Context,
	items []T,
	opts Options,
	fn func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = defaultWorkers
	}
	workers = min(workers, len(items))

	jobs := make(chan int, len(items))
	for i := range items {
		jobs <- i
	}
	close(jobs)

	results := make(chan outcome[R], len(items))
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results <- outcome[R]{index: i, err: err}
					continue
				}
				r, err := fn(ctx, i, items[i])
				results <- outcome[R]{index: i, result: r, err: err}
			}
		}()
	}
	wg.Wait()
	close(results)

	out := make([]R, len(items))
	byIndex := make([]error, len(items))
	for res := range results {
		out[res.index] = res.result
		byIndex[res.index] = res.err
	}

	var errs []error
	for i, err := range byIndex {
		if err != nil {
			errs = append(errs, &ItemError{Index: i, Err: err})
		}
	}
	return out, errs
}
