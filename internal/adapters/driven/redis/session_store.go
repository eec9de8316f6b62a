package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SyncSessionStore = (*SyncSessionStore)(nil)

// sessionKey is the well-known key holding the single bulk sync session.
const sessionKey = "semantiq:sync:progress"

// SyncSessionStore implements driven.SyncSessionStore using Redis.
// The record carries a fixed TTL so an abandoned session self-clears.
type SyncSessionStore struct {
	client *redis.Client
}

// NewSyncSessionStore creates a new Redis-backed SyncSessionStore
func NewSyncSessionStore(client *redis.Client) *SyncSessionStore {
	return &SyncSessionStore{client: client}
}

// Save writes the session record, refreshing its TTL.
func (s *SyncSessionStore) Save(ctx context.Context, session *domain.SyncSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal sync session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey, data, domain.SyncSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save sync session: %w", err)
	}
	return nil
}

// Get retrieves the current session.
func (s *SyncSessionStore) Get(ctx context.Context) (*domain.SyncSession, error) {
	data, err := s.client.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync session: %w", err)
	}

	var session domain.SyncSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sync session: %w", err)
	}
	return &session, nil
}

// Delete removes the session record. Deleting a missing session is fine.
func (s *SyncSessionStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete sync session: %w", err)
	}
	return nil
}
