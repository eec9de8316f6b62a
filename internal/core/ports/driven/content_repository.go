package driven

import (
	"context"
	"time"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

// ContentRepository provides access to the content corpus and owns the
// per-item sync metadata written by the syncer.
type ContentRepository interface {
	// ListIDs returns one page of published item ids of the given types,
	// in stable insertion (id) order.
	ListIDs(ctx context.Context, types []string, offset, limit int) ([]int64, error)

	// Count returns the number of published items across the given types.
	Count(ctx context.Context, types []string) (int, error)

	// Get fetches one content item. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id int64) (*domain.ContentItem, error)

	// GetSyncTimestamp returns when the item was last synced, or nil if never.
	GetSyncTimestamp(ctx context.Context, id int64) (*time.Time, error)

	// SetSyncTimestamp records a successful sync.
	SetSyncTimestamp(ctx context.Context, id int64, ts time.Time) error

	// GetSyncError returns the item's last sync error, or "" if none.
	GetSyncError(ctx context.Context, id int64) (string, error)

	// SetSyncError records a sync failure message.
	SetSyncError(ctx context.Context, id int64, msg string) error

	// ClearSyncError removes any recorded sync error.
	ClearSyncError(ctx context.Context, id int64) error

	// FlushCache releases any internal item caches. Called periodically
	// during a bulk sync to bound memory growth.
	FlushCache(ctx context.Context)
}
