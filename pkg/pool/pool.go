package pool

import (
	"context"
	"sync"
)

// WorkerFunc processes one item. A non-nil error is collected by Run; it does
// not stop the other workers.
type WorkerFunc[T any] func(ctx context.Context, item T) error

// Run fans the items out over numWorkers goroutines and blocks until every
// accepted item has been processed. Cancelling ctx stops the feed; items not
// yet handed to a worker are dropped. The returned slice holds the errors the
// workers reported, in completion order.
func Run[T any](ctx context.Context, items []T, numWorkers int, workerFunc WorkerFunc[T]) []error {
	jobs := make(chan T, numWorkers)
	results := make(chan error, len(items))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
					if err := workerFunc(ctx, item); err != nil {
						results <- err
					}
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case jobs <- item:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)

	wg.Wait()
	close(results)

	var errs []error
	for err := range results {
		errs = append(errs, err)
	}
	return errs
}
