package mocks

import (
	"context"
	"sync"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

// MockSyncSessionStore is an in-memory SyncSessionStore for testing
type MockSyncSessionStore struct {
	mu      sync.Mutex
	session *domain.SyncSession
	saveErr error
}

// NewMockSyncSessionStore creates a new MockSyncSessionStore
func NewMockSyncSessionStore() *MockSyncSessionStore {
	return &MockSyncSessionStore{}
}

func (m *MockSyncSessionStore) Save(ctx context.Context, session *domain.SyncSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *session
	copied.Errors = append([]domain.SyncItemError(nil), session.Errors...)
	m.session = &copied
	return nil
}

func (m *MockSyncSessionStore) Get(ctx context.Context) (*domain.SyncSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, domain.ErrNotFound
	}
	copied := *m.session
	copied.Errors = append([]domain.SyncItemError(nil), m.session.Errors...)
	return &copied, nil
}

func (m *MockSyncSessionStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// SetSaveError makes Save fail with the given error.
func (m *MockSyncSessionStore) SetSaveError(err error) { m.saveErr = err }
