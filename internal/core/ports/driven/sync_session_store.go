package driven

import (
	"context"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

// SyncSessionStore persists the single process-wide bulk sync session under
// a well-known key with a fixed expiry, so an abandoned session self-clears.
type SyncSessionStore interface {
	// Save writes the session record with the configured TTL.
	Save(ctx context.Context, session *domain.SyncSession) error

	// Get retrieves the current session. Returns domain.ErrNotFound when no
	// session exists or the record expired.
	Get(ctx context.Context) (*domain.SyncSession, error)

	// Delete removes the session record. Deleting a missing session is not
	// an error.
	Delete(ctx context.Context) error
}
