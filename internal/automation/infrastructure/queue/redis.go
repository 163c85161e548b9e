package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the list key the queue lives under.
const DefaultRedisKey = "autopilot:execution_queue"

// RedisQueue is a FIFO backed by a Redis list, for deployments where
// enqueueing processes and the worker are separate. LPUSH + BRPOP
// preserves FIFO order across processes.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue creates a Redis-backed queue. An empty key uses
// DefaultRedisKey.
func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisQueue{client: client, key: key}
}

// Enqueue appends a rule id.
func (q *RedisQueue) Enqueue(ctx context.Context, ruleID uuid.UUID) error {
	if err := q.client.LPush(ctx, q.key, ruleID.String()).Err(); err != nil {
		return fmt.Errorf("enqueue rule %s: %w", ruleID, err)
	}
	return nil
}

// Dequeue blocks until an id is available or the context ends. The
// blocking pop uses a short timeout so context cancellation is
// observed promptly.
func (q *RedisQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	for {
		vals, err := q.client.BRPop(ctx, time.Second, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				if ctx.Err() != nil {
					return uuid.Nil, ctx.Err()
				}
				continue
			}
			return uuid.Nil, err
		}
		// BRPop returns [key, value].
		id, err := uuid.Parse(vals[1])
		if err != nil {
			return uuid.Nil, fmt.Errorf("malformed queue entry %q: %w", vals[1], err)
		}
		return id, nil
	}
}

// Len reports the queue length.
func (q *RedisQueue) Len(ctx context.Context) (int, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	return int(n), err
}

// Close releases the client connection.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}
