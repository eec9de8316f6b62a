package mocks

import (
	"context"
	"sync"
	"time"
)

// MockDistributedLock is an in-process DistributedLock for testing
type MockDistributedLock struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewMockDistributedLock creates a new MockDistributedLock
func NewMockDistributedLock() *MockDistributedLock {
	return &MockDistributedLock{held: make(map[string]bool)}
}

func (m *MockDistributedLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[name] {
		return false, nil
	}
	m.held[name] = true
	return true, nil
}

func (m *MockDistributedLock) Release(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, name)
	return nil
}

func (m *MockDistributedLock) Extend(ctx context.Context, name string, ttl time.Duration) error {
	return nil
}

// Held reports whether a named lock is currently taken.
func (m *MockDistributedLock) Held(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held[name]
}

// ForceHold marks a lock as held by someone else.
func (m *MockDistributedLock) ForceHold(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[name] = true
}
