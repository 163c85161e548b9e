package queue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_FIFO(t *testing.T) {
	q := NewMemoryQueue(4)
	defer q.Close()
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	depth, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, depth)

	got, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestMemoryQueue_Full(t *testing.T) {
	q := NewMemoryQueue(1)
	defer q.Close()
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, uuid.New()))
	err := q.Enqueue(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrQueueFull)

	// Draining frees a slot.
	_, err = q.Dequeue(ctx)
	require.NoError(t, err)
	assert.NoError(t, q.Enqueue(ctx, uuid.New()))
}

func TestMemoryQueue_DequeueBlocksUntilCancel(t *testing.T) {
	q := NewMemoryQueue(4)
	defer q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryQueue_DequeueUnblocksOnEnqueue(t *testing.T) {
	q := NewMemoryQueue(4)
	defer q.Close()
	ctx := context.Background()

	id := uuid.New()
	result := make(chan uuid.UUID, 1)
	go func() {
		got, err := q.Dequeue(ctx)
		if err == nil {
			result <- got
		}
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, q.Enqueue(ctx, id))

	select {
	case got := <-result:
		assert.Equal(t, id, got)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not observe the enqueued id")
	}
}

func TestMemoryQueue_Close(t *testing.T) {
	q := NewMemoryQueue(4)
	ctx := context.Background()

	pending := uuid.New()
	require.NoError(t, q.Enqueue(ctx, pending))
	require.NoError(t, q.Close())

	// Enqueue refuses after close, pending ids stay drainable.
	assert.ErrorIs(t, q.Enqueue(ctx, uuid.New()), ErrQueueClosed)

	got, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, pending, got)

	_, err = q.Dequeue(ctx)
	assert.ErrorIs(t, err, ErrQueueClosed)

	// Close is idempotent.
	assert.NoError(t, q.Close())
}

func TestMemoryQueue_DefaultCapacity(t *testing.T) {
	q := NewMemoryQueue(0)
	defer q.Close()

	assert.Equal(t, DefaultCapacity, cap(q.ch))
}
