package concurrent

import (
	"context"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolProcessesAllJobs(t *testing.T) {
	const n = 100
	wp := NewWorkerPool[int, int](4, n)
	wp.Start(context.Background(), func(ctx context.Context, workerID int, job int) int {
		return job * job
	})

	for i := 0; i < n; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	got := make([]int, 0, n)
	for res := range wp.CollectResults() {
		got = append(got, res)
	}
	sort.Ints(got)

	require.Len(t, got, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, i*i, got[i])
	}
}

func TestWorkerPoolWorkerIDs(t *testing.T) {
	wp := NewWorkerPool[int, int](3, 30)
	assert.Equal(t, 3, wp.NumWorkers())

	wp.Start(context.Background(), func(ctx context.Context, workerID int, job int) int {
		return workerID
	})
	for i := 0; i < 30; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	for id := range wp.CollectResults() {
		assert.GreaterOrEqual(t, id, 0)
		assert.Less(t, id, 3)
	}
}

func TestWorkerPoolSkipsJobsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	wp := NewWorkerPool[int, int](2, 10)
	wp.Start(ctx, func(ctx context.Context, workerID int, job int) int {
		ran.Add(1)
		return job
	})
	for i := 0; i < 10; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	assert.Equal(t, int32(0), ran.Load())
	_, open := <-wp.CollectResults()
	assert.False(t, open)
}

func TestNewWorkerPoolAtLeastOneWorker(t *testing.T) {
	assert.Equal(t, 1, NewWorkerPool[int, int](0, 1).NumWorkers())
}
