package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

// MockVectorStore is an in-memory VectorStore for testing
type MockVectorStore struct {
	mu          sync.Mutex
	collections map[string]map[int64]domain.VectorPoint
	searchHits  []domain.ScoredPoint
	lastFilter  *domain.SearchFilter
	lastLimit   int
	upsertErr   error
	searchErr   error
}

// NewMockVectorStore creates a new MockVectorStore
func NewMockVectorStore() *MockVectorStore {
	return &MockVectorStore{
		collections: make(map[string]map[int64]domain.VectorPoint),
	}
}

func (m *MockVectorStore) Upsert(ctx context.Context, collection string, points []domain.VectorPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	col, ok := m.collections[collection]
	if !ok {
		col = make(map[int64]domain.VectorPoint)
		m.collections[collection] = col
	}
	for _, p := range points {
		col[p.ID] = p
	}
	return nil
}

func (m *MockVectorStore) Search(ctx context.Context, collection string, vector []float32, limit int, filter *domain.SearchFilter) ([]domain.ScoredPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	m.lastFilter = filter
	m.lastLimit = limit
	if len(m.searchHits) > limit {
		return m.searchHits[:limit], nil
	}
	return m.searchHits, nil
}

func (m *MockVectorStore) Delete(ctx context.Context, collection string, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.collections[collection]
	if !ok {
		return false, nil
	}
	if _, ok := col[id]; !ok {
		return false, nil
	}
	delete(col, id)
	return true, nil
}

func (m *MockVectorStore) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[collection]; !ok {
		m.collections[collection] = make(map[int64]domain.VectorPoint)
	}
	return nil
}

func (m *MockVectorStore) ListCollections(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	return names, nil
}

func (m *MockVectorStore) TestConnection(ctx context.Context) error { return nil }

// Helper methods for testing

// Point returns the stored point for an id, if any.
func (m *MockVectorStore) Point(collection string, id int64) (domain.VectorPoint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.collections[collection]
	if !ok {
		return domain.VectorPoint{}, false
	}
	p, ok := col[id]
	return p, ok
}

// PointCount returns the number of stored points in a collection.
func (m *MockVectorStore) PointCount(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.collections[collection])
}

// SetSearchHits fixes the result set returned by Search.
func (m *MockVectorStore) SetSearchHits(hits []domain.ScoredPoint) { m.searchHits = hits }

func (m *MockVectorStore) SetUpsertError(fail bool) {
	if fail {
		m.upsertErr = fmt.Errorf("%w: upsert refused", domain.ErrVectorStore)
	} else {
		m.upsertErr = nil
	}
}

func (m *MockVectorStore) SetSearchError(err error) { m.searchErr = err }

func (m *MockVectorStore) LastFilter() *domain.SearchFilter { return m.lastFilter }
func (m *MockVectorStore) LastLimit() int                   { return m.lastLimit }
