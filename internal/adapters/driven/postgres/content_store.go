package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ContentRepository = (*ContentStore)(nil)

// ContentStore implements driven.ContentRepository using PostgreSQL.
// Fetched items are cached in-process; FlushCache releases the cache so a
// long bulk sync does not hold the whole corpus in memory.
type ContentStore struct {
	db *DB

	mu    sync.RWMutex
	cache map[int64]*domain.ContentItem
}

// NewContentStore creates a new ContentStore
func NewContentStore(db *DB) *ContentStore {
	return &ContentStore{
		db:    db,
		cache: make(map[int64]*domain.ContentItem),
	}
}

// ListIDs returns one page of published item ids of the given types in id order
func (s *ContentStore) ListIDs(ctx context.Context, types []string, offset, limit int) ([]int64, error) {
	query := `
		SELECT id
		FROM content_items
		WHERE status = $1 AND content_type = ANY($2)
		ORDER BY id
		OFFSET $3 LIMIT $4
	`

	rows, err := s.db.QueryContext(ctx, query, domain.ContentStatusPublished, pq.Array(types), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list content ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan content id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the number of published items across the given types
func (s *ContentStore) Count(ctx context.Context, types []string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM content_items
		WHERE status = $1 AND content_type = ANY($2)
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, domain.ContentStatusPublished, pq.Array(types)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count content: %w", err)
	}
	return count, nil
}

// Get fetches one content item, serving repeated reads from the cache
func (s *ContentStore) Get(ctx context.Context, id int64) (*domain.ContentItem, error) {
	s.mu.RLock()
	cached, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	query := `
		SELECT id, content_type, status, title, body, url, thumbnail_url, published_at, modified_at
		FROM content_items
		WHERE id = $1
	`

	var item domain.ContentItem
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Type,
		&item.Status,
		&item.Title,
		&item.Body,
		&item.URL,
		&item.ThumbnailURL,
		&item.PublishedAt,
		&item.ModifiedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: content item %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}

	s.mu.Lock()
	s.cache[id] = &item
	s.mu.Unlock()

	return &item, nil
}

// GetSyncTimestamp returns when the item was last synced, or nil if never
func (s *ContentStore) GetSyncTimestamp(ctx context.Context, id int64) (*time.Time, error) {
	query := `SELECT last_synced_at FROM content_sync_meta WHERE content_id = $1`

	var ts sql.NullTime
	err := s.db.QueryRowContext(ctx, query, id).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync timestamp: %w", err)
	}
	return TimePtr(ts), nil
}

// SetSyncTimestamp records a successful sync
func (s *ContentStore) SetSyncTimestamp(ctx context.Context, id int64, ts time.Time) error {
	query := `
		INSERT INTO content_sync_meta (content_id, last_synced_at)
		VALUES ($1, $2)
		ON CONFLICT (content_id) DO UPDATE SET last_synced_at = EXCLUDED.last_synced_at
	`

	if _, err := s.db.ExecContext(ctx, query, id, ts); err != nil {
		return fmt.Errorf("failed to set sync timestamp: %w", err)
	}
	return nil
}

// GetSyncError returns the item's last sync error, or "" if none
func (s *ContentStore) GetSyncError(ctx context.Context, id int64) (string, error) {
	query := `SELECT sync_error FROM content_sync_meta WHERE content_id = $1`

	var msg sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(&msg)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get sync error: %w", err)
	}
	return msg.String, nil
}

// SetSyncError records a sync failure message
func (s *ContentStore) SetSyncError(ctx context.Context, id int64, msg string) error {
	query := `
		INSERT INTO content_sync_meta (content_id, sync_error)
		VALUES ($1, $2)
		ON CONFLICT (content_id) DO UPDATE SET sync_error = EXCLUDED.sync_error
	`

	if _, err := s.db.ExecContext(ctx, query, id, msg); err != nil {
		return fmt.Errorf("failed to set sync error: %w", err)
	}
	return nil
}

// ClearSyncError removes any recorded sync error
func (s *ContentStore) ClearSyncError(ctx context.Context, id int64) error {
	query := `UPDATE content_sync_meta SET sync_error = NULL WHERE content_id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to clear sync error: %w", err)
	}
	return nil
}

// FlushCache releases the in-process item cache
func (s *ContentStore) FlushCache(ctx context.Context) {
	s.mu.Lock()
	s.cache = make(map[int64]*domain.ContentItem)
	s.mu.Unlock()
}
