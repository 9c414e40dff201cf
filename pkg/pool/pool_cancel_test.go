package pool_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lexibel/lexctl/pkg/pool"
)

// A cancelled context must also stop the feeder goroutine, not just the
// workers, so a long queue never gets fully enqueued.
func TestPool_CancelStopsEnqueue(t *testing.T) {
	items := make([]int, 1000)
	for i := range items {
		items[i] = i
	}
	ctx, cancel := context.WithCancel(context.Background())
	var processed atomic.Int64

	_ = pool.Run(ctx, items, 8, func(ctx context.Context, item int) error {
		processed.Add(1)
		if item == 0 {
			cancel()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(1 * time.Millisecond):
			return nil
		}
	})

	if processed.Load() >= int64(len(items)) {
		t.Fatalf("expected fewer items processed after cancel, got %d", processed.Load())
	}
}
