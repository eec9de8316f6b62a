package driving

import (
	"context"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

// SyncOrchestrator owns the bulk sync session lifecycle. It is driven by an
// external, stateless polling loop: call StartBulkSync once, then
// ProcessBatch repeatedly until the returned result reports completion.
type SyncOrchestrator interface {
	// StartBulkSync counts the eligible corpus, unconditionally resets any
	// prior session, and persists a fresh one.
	StartBulkSync(ctx context.Context) (*domain.SyncSession, error)

	// ProcessBatch performs one bounded page of work against the current
	// session. Returns domain.ErrNoActiveSession when no session is running
	// and domain.ErrSyncInProgress when another caller holds the batch lock.
	ProcessBatch(ctx context.Context) (*domain.BatchResult, error)

	// SyncPost syncs a single item immediately, bypassing the session.
	SyncPost(ctx context.Context, postID int64) error

	// CancelSync deletes the session record. Advisory: it cannot preempt a
	// batch call already in flight.
	CancelSync(ctx context.Context) error

	// Progress returns the current session snapshot, or
	// domain.ErrNoActiveSession if none exists.
	Progress(ctx context.Context) (*domain.SyncSession, error)
}
