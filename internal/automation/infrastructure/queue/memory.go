// Package queue provides execution queue backends.
package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrQueueFull is returned when the in-memory queue buffer is full.
var ErrQueueFull = errors.New("execution queue is full")

// ErrQueueClosed is returned after Close.
var ErrQueueClosed = errors.New("execution queue is closed")

// DefaultCapacity bounds the in-memory queue when no capacity is given.
const DefaultCapacity = 1024

// MemoryQueue is an in-process FIFO backed by a buffered channel.
type MemoryQueue struct {
	ch     chan uuid.UUID
	mu     sync.Mutex
	closed bool
}

// NewMemoryQueue creates an in-process queue.
func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryQueue{ch: make(chan uuid.UUID, capacity)}
}

// Enqueue appends a rule id without blocking.
func (q *MemoryQueue) Enqueue(ctx context.Context, ruleID uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- ruleID:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue blocks until an id is available or the context ends.
func (q *MemoryQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	select {
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	case id, ok := <-q.ch:
		if !ok {
			return uuid.Nil, ErrQueueClosed
		}
		return id, nil
	}
}

// Len reports the number of queued ids.
func (q *MemoryQueue) Len(ctx context.Context) (int, error) {
	return len(q.ch), nil
}

// Close shuts the queue. Pending ids remain drainable.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
	return nil
}
