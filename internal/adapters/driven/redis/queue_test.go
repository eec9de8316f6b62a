package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
)

func TestTaskQueue_EnqueueDequeue(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	queue := NewTaskQueue(client)
	ctx := context.Background()

	task := &driven.SyncTask{
		ID:        uuid.NewString(),
		PostID:    42,
		CreatedAt: time.Now(),
	}
	if err := queue.Enqueue(ctx, task); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	n, err := queue.Len(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 pending task, got %d (err=%v)", n, err)
	}

	got, err := queue.Dequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("dequeue failed: %v", err)
	}
	if got == nil || got.PostID != 42 || got.ID != task.ID {
		t.Errorf("task did not round-trip: %+v", got)
	}
}

func TestTaskQueue_FIFO(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	queue := NewTaskQueue(client)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		if err := queue.Enqueue(ctx, &driven.SyncTask{ID: uuid.NewString(), PostID: id}); err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
	}

	for _, want := range []int64{1, 2, 3} {
		got, err := queue.Dequeue(ctx, time.Second)
		if err != nil || got == nil {
			t.Fatalf("dequeue failed: task=%v err=%v", got, err)
		}
		if got.PostID != want {
			t.Errorf("expected post %d, got %d", want, got.PostID)
		}
	}
}

func TestTaskQueue_Enqueue_NilTask(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	queue := NewTaskQueue(client)
	if err := queue.Enqueue(context.Background(), nil); err == nil {
		t.Error("expected error for nil task")
	}
}
