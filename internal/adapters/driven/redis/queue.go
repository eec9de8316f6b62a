package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TaskQueue = (*TaskQueue)(nil)

const taskListKey = "semantiq:sync:tasks"

// TaskQueue implements driven.TaskQueue on a Redis list. Single-item sync
// tasks are small and need no consumer groups: LPUSH on the producer side,
// blocking BRPOP on the worker side.
type TaskQueue struct {
	client *redis.Client
}

// NewTaskQueue creates a new Redis-backed TaskQueue
func NewTaskQueue(client *redis.Client) *TaskQueue {
	return &TaskQueue{client: client}
}

// Enqueue adds a task to the queue.
func (q *TaskQueue) Enqueue(ctx context.Context, task *driven.SyncTask) error {
	if task == nil {
		return errors.New("task is required")
	}

	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := q.client.LPush(ctx, taskListKey, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next task. Returns nil with no error
// when the timeout elapses.
func (q *TaskQueue) Dequeue(ctx context.Context, timeout time.Duration) (*driven.SyncTask, error) {
	values, err := q.client.BRPop(ctx, timeout, taskListKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue task: %w", err)
	}
	if len(values) < 2 {
		return nil, nil
	}

	var task driven.SyncTask
	if err := json.Unmarshal([]byte(values[1]), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return &task, nil
}

// Len reports the number of pending tasks.
func (q *TaskQueue) Len(ctx context.Context) (int, error) {
	n, err := q.client.LLen(ctx, taskListKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read queue length: %w", err)
	}
	return int(n), nil
}
