package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(context.Context, Job) error { return nil }, Config{})

	err := q.Enqueue(Job{ID: "j1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not started")
}

func TestQueueDeliversJobs(t *testing.T) {
	got := make(chan Job, 1)
	q := NewQueue("test", func(_ context.Context, job Job) error {
		got <- job
		return nil
	}, Config{Workers: 1})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "j1", Type: "test.job", Payload: "hello"}))

	select {
	case job := <-got:
		assert.Equal(t, "j1", job.ID)
		assert.Equal(t, "hello", job.Payload)
		assert.Equal(t, 1, job.Attempt)
		assert.False(t, job.Enqueued.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("job was never handled")
	}
}

func TestQueueRetriesFailingJob(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{})
	q := NewQueue("test", func(context.Context, Job) error {
		if calls.Add(1) == 3 {
			close(done)
		}
		return errors.New("smtp down")
	}, Config{Workers: 1, MaxRetries: 2, RetryDelay: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "j1", Type: "test.job"}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried to exhaustion")
	}

	// The third attempt is the last one MaxRetries=2 allows.
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 3, calls.Load())
}

func TestQueueShedsLoadWhenFull(t *testing.T) {
	taken := make(chan struct{}, 3)
	gate := make(chan struct{})
	q := NewQueue("test", func(context.Context, Job) error {
		taken <- struct{}{}
		<-gate
		return nil
	}, Config{Workers: 1, BufferSize: 1})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)
	defer q.Stop()
	defer close(gate)

	require.NoError(t, q.Enqueue(Job{ID: "j1"}))
	<-taken
	require.NoError(t, q.Enqueue(Job{ID: "j2"}))

	err := q.Enqueue(Job{ID: "j3"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueueFull)
}
