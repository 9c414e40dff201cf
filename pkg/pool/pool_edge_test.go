package pool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lexibel/lexctl/pkg/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_NoItems(t *testing.T) {
	var called atomic.Int64
	errs := pool.Run(context.Background(), []int{}, 5, func(ctx context.Context, item int) error {
		called.Add(1)
		return nil
	})

	assert.Empty(t, errs)
	assert.Equal(t, int64(0), called.Load(), "worker must not run without items")
}

func TestPool_SingleItemSingleWorker(t *testing.T) {
	var called atomic.Int64
	errs := pool.Run(context.Background(), []int{1}, 1, func(ctx context.Context, item int) error {
		called.Add(1)
		return nil
	})

	assert.Empty(t, errs)
	assert.Equal(t, int64(1), called.Load())
}

func TestPool_MoreWorkersThanItems(t *testing.T) {
	var called atomic.Int64
	errs := pool.Run(context.Background(), []int{1, 2, 3}, 10, func(ctx context.Context, item int) error {
		called.Add(1)
		return nil
	})

	assert.Empty(t, errs)
	assert.Equal(t, int64(3), called.Load(), "extra workers must not duplicate items")
}

func TestPool_AllItemsFail(t *testing.T) {
	wantErr := errors.New("checksum mismatch")
	items := []int{1, 2, 3, 4, 5}

	errs := pool.Run(context.Background(), items, 2, func(ctx context.Context, item int) error {
		return wantErr
	})

	require.Len(t, errs, len(items))
	for _, err := range errs {
		assert.ErrorIs(t, err, wantErr)
	}
}

func TestPool_RunsWorkersInParallel(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	start := time.Now()

	errs := pool.Run(context.Background(), items, len(items), func(ctx context.Context, item int) error {
		time.Sleep(100 * time.Millisecond)
		return nil
	})

	require.Empty(t, errs)
	// Five 100ms items on five workers should finish in one sleep, not five.
	assert.Less(t, time.Since(start), 300*time.Millisecond)
}

func TestPool_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		pool.Run(ctx, []int{1, 2, 3}, 2, func(ctx context.Context, item int) error {
			return nil
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run must return promptly when the context is already cancelled")
	}
}

func TestPool_DistinctErrorsAreAllCollected(t *testing.T) {
	errA := errors.New("file locked")
	errB := errors.New("disk full")

	errs := pool.Run(context.Background(), []int{1, 2, 3}, 2, func(ctx context.Context, item int) error {
		switch item {
		case 1:
			return errA
		case 2:
			return errB
		}
		return nil
	})

	require.Len(t, errs, 2)
	seen := map[error]bool{}
	for _, err := range errs {
		seen[err] = true
	}
	assert.True(t, seen[errA])
	assert.True(t, seen[errB])
}

func TestPool_StructPayload(t *testing.T) {
	type downloadJob struct {
		DocID string
		Dest  string
	}

	var done atomic.Int64
	jobs := []downloadJob{
		{DocID: "d1", Dest: "conclusions.pdf"},
		{DocID: "d2", Dest: "exhibit-a.pdf"},
		{DocID: "d3", Dest: "transcript.txt"},
	}

	errs := pool.Run(context.Background(), jobs, 2, func(ctx context.Context, job downloadJob) error {
		if job.DocID == "" {
			return errors.New("missing document ID")
		}
		done.Add(1)
		return nil
	})

	assert.Empty(t, errs)
	assert.Equal(t, int64(len(jobs)), done.Load())
}
