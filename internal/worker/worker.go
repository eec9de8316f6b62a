// Package worker drains the task queue and syncs the referenced items.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
	"github.com/DevWael/semantiq-search/internal/core/ports/driving"
)

// Worker processes single-item sync tasks from the task queue.
type Worker struct {
	taskQueue    driven.TaskQueue
	orchestrator driving.SyncOrchestrator
	logger       *slog.Logger

	concurrency    int
	dequeueTimeout time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config holds configuration for the worker.
type Config struct {
	TaskQueue    driven.TaskQueue
	Orchestrator driving.SyncOrchestrator
	Logger       *slog.Logger

	// Concurrency is the number of concurrent task processors
	Concurrency int

	// DequeueTimeout is how long one dequeue call blocks before rechecking
	// for shutdown
	DequeueTimeout time.Duration
}

// New creates a new task worker.
func New(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	dequeueTimeout := cfg.DequeueTimeout
	if dequeueTimeout <= 0 {
		dequeueTimeout = 5 * time.Second
	}

	return &Worker{
		taskQueue:      cfg.TaskQueue,
		orchestrator:   cfg.Orchestrator,
		logger:         logger,
		concurrency:    concurrency,
		dequeueTimeout: dequeueTimeout,
	}
}

// Start begins the worker loop.
// It runs until Stop is called or the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("worker starting",
		"concurrency", w.concurrency,
		"dequeue_timeout", w.dequeueTimeout,
	)

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			w.processLoop(ctx, workerID)
		}(i)
	}

	go func() {
		wg.Wait()
		close(w.doneCh)
	}()
}

// Stop gracefully stops the worker and waits for in-flight tasks.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("worker stopped")
}

// processLoop is the main processing loop for one worker goroutine.
func (w *Worker) processLoop(ctx context.Context, workerID int) {
	logger := w.logger.With("worker_id", workerID)
	logger.Debug("worker goroutine started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		default:
		}

		task, err := w.taskQueue.Dequeue(ctx, w.dequeueTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			logger.Error("failed to dequeue task", "error", err)
			time.Sleep(time.Second) // Back off on error
			continue
		}

		if task == nil {
			// No task available
			continue
		}

		w.processTask(ctx, task, logger)
	}
}

// processTask syncs the item one task refers to. Failures are already
// recorded against the item by the syncer, so the task is not retried.
func (w *Worker) processTask(ctx context.Context, task *driven.SyncTask, logger *slog.Logger) {
	logger = logger.With("task_id", task.ID, "post_id", task.PostID)

	startTime := time.Now()
	err := w.orchestrator.SyncPost(ctx, task.PostID)
	duration := time.Since(startTime)

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Item deleted between enqueue and processing
			logger.Warn("task skipped, item no longer exists", "duration", duration)
			return
		}
		logger.Error("task failed", "duration", duration, "error", err)
		return
	}

	logger.Info("task completed", "duration", duration)
}
