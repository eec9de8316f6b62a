package mocks

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

// MockEmbeddingProvider is a mock implementation of EmbeddingProvider for testing
type MockEmbeddingProvider struct {
	dimensions int
	model      string
	failIDs    map[string]bool
	failAll    bool
	calls      int
}

// NewMockEmbeddingProvider creates a new MockEmbeddingProvider
func NewMockEmbeddingProvider() *MockEmbeddingProvider {
	return &MockEmbeddingProvider{
		dimensions: 384,
		model:      "mock-embedding-model",
		failIDs:    make(map[string]bool),
	}
}

func (m *MockEmbeddingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.failAll || m.failIDs[text] {
		return nil, fmt.Errorf("%w: backend unavailable", domain.ErrEmbedding)
	}
	return m.generateEmbedding(text), nil
}

func (m *MockEmbeddingProvider) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return m.Embed(ctx, query)
}

func (m *MockEmbeddingProvider) Dimensions() int { return m.dimensions }

func (m *MockEmbeddingProvider) Model() string { return m.model }

func (m *MockEmbeddingProvider) TestConnection(ctx context.Context) error {
	if m.failAll {
		return fmt.Errorf("%w: backend unavailable", domain.ErrEmbedding)
	}
	return nil
}

func (m *MockEmbeddingProvider) Close() error { return nil }

// generateEmbedding generates a deterministic embedding based on text hash
func (m *MockEmbeddingProvider) generateEmbedding(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	embedding := make([]float32, m.dimensions)
	for i := range embedding {
		seed = seed*1103515245 + 12345
		embedding[i] = float32(seed%1000) / 1000.0
	}
	return embedding
}

// Helper methods for testing

func (m *MockEmbeddingProvider) FailAll(fail bool) { m.failAll = fail }

// FailForText makes embedding fail for one exact input text.
func (m *MockEmbeddingProvider) FailForText(text string) { m.failIDs[text] = true }

func (m *MockEmbeddingProvider) Calls() int { return m.calls }
