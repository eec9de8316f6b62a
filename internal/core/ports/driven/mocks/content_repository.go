package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

// MockContentRepository is an in-memory ContentRepository for testing
type MockContentRepository struct {
	mu          sync.Mutex
	items       map[int64]*domain.ContentItem
	syncedAt    map[int64]time.Time
	syncErrors  map[int64]string
	flushCalls  int
	listErr     error
	countErr    error
	metaFailure error
}

// NewMockContentRepository creates a new MockContentRepository
func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{
		items:      make(map[int64]*domain.ContentItem),
		syncedAt:   make(map[int64]time.Time),
		syncErrors: make(map[int64]string),
	}
}

// Add seeds an item into the repository.
func (m *MockContentRepository) Add(item *domain.ContentItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.Status == "" {
		item.Status = domain.ContentStatusPublished
	}
	m.items[item.ID] = item
}

func (m *MockContentRepository) ListIDs(ctx context.Context, types []string, offset, limit int) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}

	ids := m.eligibleIDs(types)
	if offset >= len(ids) {
		return []int64{}, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end], nil
}

func (m *MockContentRepository) Count(ctx context.Context, types []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.eligibleIDs(types)), nil
}

func (m *MockContentRepository) Get(ctx context.Context, id int64) (*domain.ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (m *MockContentRepository) GetSyncTimestamp(ctx context.Context, id int64) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts, ok := m.syncedAt[id]
	if !ok {
		return nil, nil
	}
	return &ts, nil
}

func (m *MockContentRepository) SetSyncTimestamp(ctx context.Context, id int64, ts time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.metaFailure != nil {
		return m.metaFailure
	}
	m.syncedAt[id] = ts
	return nil
}

func (m *MockContentRepository) GetSyncError(ctx context.Context, id int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncErrors[id], nil
}

func (m *MockContentRepository) SetSyncError(ctx context.Context, id int64, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.metaFailure != nil {
		return m.metaFailure
	}
	m.syncErrors[id] = msg
	return nil
}

func (m *MockContentRepository) ClearSyncError(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.syncErrors, id)
	return nil
}

func (m *MockContentRepository) FlushCache(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushCalls++
}

// eligibleIDs returns published item ids of the given types in id order.
// Caller must hold the mutex.
func (m *MockContentRepository) eligibleIDs(types []string) []int64 {
	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	var ids []int64
	for id, item := range m.items {
		if item.Status != domain.ContentStatusPublished {
			continue
		}
		if len(types) > 0 && !typeSet[item.Type] {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Helper methods for testing

func (m *MockContentRepository) FlushCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushCalls
}

func (m *MockContentRepository) SetListError(err error)  { m.listErr = err }
func (m *MockContentRepository) SetCountError(err error) { m.countErr = err }

func (m *MockContentRepository) SyncErrorFor(id int64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncErrors[id]
}

func (m *MockContentRepository) SyncedAt(id int64) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts, ok := m.syncedAt[id]
	return ts, ok
}
