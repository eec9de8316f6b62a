package driven

import (
	"context"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

// VectorStore persists and searches vector points inside named collections.
// All failures wrap domain.ErrVectorStore.
type VectorStore interface {
	// Upsert writes points keyed by their ids. Re-upserting an id replaces
	// the existing point.
	Upsert(ctx context.Context, collection string, points []domain.VectorPoint) error

	// Search runs a top-limit similarity search with an optional filter.
	// Results arrive in descending relevance order.
	Search(ctx context.Context, collection string, vector []float32, limit int, filter *domain.SearchFilter) ([]domain.ScoredPoint, error)

	// Delete removes one point. Returns false if it did not exist.
	Delete(ctx context.Context, collection string, id int64) (bool, error)

	// EnsureCollection creates the collection if it does not exist.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// ListCollections returns the names of all collections.
	ListCollections(ctx context.Context) ([]string, error)

	// TestConnection verifies the store is reachable.
	TestConnection(ctx context.Context) error
}
