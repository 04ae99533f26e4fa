package orchestratorinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/autocareer/autocareer/pipeline/orchestrator"
)

// RedisQueue implements orchestrator.JobQueue using Redis. Ready runs
// live in a list; delayed runs wait in a sorted set keyed by due time.
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a new Redis-based run queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds a run to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, task orchestrator.RunTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", task.RunID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue run %s: %w", task.RunID, err)
	}

	return nil
}

// Dequeue gets a run from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*orchestrator.RunTask, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when the timeout elapses
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue run: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var task orchestrator.RunTask
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		return nil, fmt.Errorf("unmarshal run payload: %w", err)
	}
	return &task, nil
}

// EnqueueDelayed schedules a run for later processing (for retries)
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, task orchestrator.RunTask, delay time.Duration) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal delayed run %s: %w", task.RunID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	delayedQueue := q.queueName + ":delayed"

	if err := q.client.ZAdd(ctx, delayedQueue, &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed run %s: %w", task.RunID, err)
	}

	return nil
}

// MoveDelayedToReady moves delayed runs that are due to the main queue
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	delayedQueue := q.queueName + ":delayed"
	now := float64(time.Now().Unix())

	tasks, err := q.client.ZRangeByScore(ctx, delayedQueue, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()

	if err != nil {
		return 0, fmt.Errorf("get delayed runs: %w", err)
	}

	if len(tasks) == 0 {
		return 0, nil
	}

	// Use pipeline for atomic operations
	pipe := q.client.Pipeline()
	for _, task := range tasks {
		pipe.LPush(ctx, q.queueName, task)
		pipe.ZRem(ctx, delayedQueue, task)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed runs to ready: %w", err)
	}

	return len(tasks), nil
}

// GetQueueSize returns the number of runs in the queue
func (q *RedisQueue) GetQueueSize(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}

// Ping checks if the Redis connection is alive
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
