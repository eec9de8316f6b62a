package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
	"github.com/DevWael/semantiq-search/internal/core/ports/driving"
)

const (
	// batchLockName is the distributed lock serializing ProcessBatch calls.
	batchLockName = "sync:batch"

	// batchLockTTL bounds how long a crashed tick can hold the lock.
	batchLockTTL = 5 * time.Minute
)

// Ensure SyncOrchestrator implements driving.SyncOrchestrator
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator owns the bulk sync state machine. Session state lives in
// the SyncSessionStore so the externally driven request/response loop can
// resume across calls and process restarts; a distributed lock enforces a
// single writer per tick, since two concurrent ticks against the same
// session would duplicate a page and corrupt the offset.
type SyncOrchestrator struct {
	repo     driven.ContentRepository
	sessions driven.SyncSessionStore
	batch    *BatchProcessor
	syncer   ItemSyncer
	lock     driven.DistributedLock
	settings driven.SettingsStore
	logger   *slog.Logger
}

// SyncOrchestratorConfig holds dependencies for SyncOrchestrator.
type SyncOrchestratorConfig struct {
	Repo     driven.ContentRepository
	Sessions driven.SyncSessionStore
	Batch    *BatchProcessor
	Syncer   ItemSyncer
	Lock     driven.DistributedLock
	Settings driven.SettingsStore
	Logger   *slog.Logger
}

// NewSyncOrchestrator creates a new SyncOrchestrator.
func NewSyncOrchestrator(cfg SyncOrchestratorConfig) *SyncOrchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SyncOrchestrator{
		repo:     cfg.Repo,
		sessions: cfg.Sessions,
		batch:    cfg.Batch,
		syncer:   cfg.Syncer,
		lock:     cfg.Lock,
		settings: cfg.Settings,
		logger:   logger,
	}
}

// StartBulkSync counts the eligible corpus, unconditionally resets any prior
// session, and persists a fresh one at offset zero.
func (o *SyncOrchestrator) StartBulkSync(ctx context.Context) (*domain.SyncSession, error) {
	settings, err := o.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	total, err := o.repo.Count(ctx, settings.EnabledTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to count content: %w", err)
	}

	if err := o.sessions.Delete(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset sync session: %w", err)
	}

	session := domain.NewSyncSession(total)
	if err := o.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist sync session: %w", err)
	}

	o.logger.Info("bulk sync started", "total", total, "types", settings.EnabledTypes)
	return session, nil
}

// ProcessBatch performs one page of work against the running session.
// Each call is bounded: one page fetch, one syncer pass, one session write.
// Returns domain.ErrNoActiveSession when no session is running and
// domain.ErrSyncInProgress when another caller holds the batch lock.
func (o *SyncOrchestrator) ProcessBatch(ctx context.Context) (*domain.BatchResult, error) {
	acquired, err := o.lock.Acquire(ctx, batchLockName, batchLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire batch lock: %w", err)
	}
	if !acquired {
		return nil, domain.ErrSyncInProgress
	}
	defer func() {
		if err := o.lock.Release(context.WithoutCancel(ctx), batchLockName); err != nil {
			o.logger.Warn("failed to release batch lock", "error", err)
		}
	}()

	session, err := o.sessions.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoActiveSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sync session: %w", err)
	}
	if !session.IsRunning {
		return nil, domain.ErrNoActiveSession
	}

	settings, err := o.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	result, err := o.batch.Process(ctx, session.Offset, settings.BatchSize, settings.EnabledTypes)
	if err != nil {
		return nil, err
	}

	session.ApplyBatch(result)
	if err := o.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist sync session: %w", err)
	}

	o.logger.Info("batch processed",
		"processed", result.Processed,
		"errors", len(result.Errors),
		"next_offset", result.NextOffset,
		"is_complete", result.IsComplete,
	)

	return result, nil
}

// SyncPost syncs one item immediately, bypassing the session entirely.
// Usable whether or not a bulk sync is running; not session-tracked.
func (o *SyncOrchestrator) SyncPost(ctx context.Context, postID int64) error {
	return o.syncer.Sync(ctx, postID)
}

// CancelSync deletes the session record. It cannot preempt a batch call
// already executing; that call finishes its page.
func (o *SyncOrchestrator) CancelSync(ctx context.Context) error {
	if err := o.sessions.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete sync session: %w", err)
	}
	o.logger.Info("bulk sync cancelled")
	return nil
}

// Progress returns the current session snapshot.
func (o *SyncOrchestrator) Progress(ctx context.Context) (*domain.SyncSession, error) {
	session, err := o.sessions.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoActiveSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sync session: %w", err)
	}
	return session, nil
}
