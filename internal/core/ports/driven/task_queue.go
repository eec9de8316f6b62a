package driven

import (
	"context"
	"time"
)

// SyncTask asks the worker to sync one content item.
type SyncTask struct {
	ID        string    `json:"id"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskQueue carries single-item sync tasks from content-change hooks to the
// background worker.
type TaskQueue interface {
	// Enqueue adds a task to the queue.
	Enqueue(ctx context.Context, task *SyncTask) error

	// Dequeue blocks up to timeout for the next task. Returns nil when the
	// timeout elapses with no task available.
	Dequeue(ctx context.Context, timeout time.Duration) (*SyncTask, error)

	// Len reports the number of pending tasks.
	Len(ctx context.Context) (int, error)
}
