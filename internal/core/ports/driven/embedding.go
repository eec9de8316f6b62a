package driven

import "context"

// EmbeddingProvider turns text into a fixed-length vector.
type EmbeddingProvider interface {
	// Embed generates an embedding for a document text.
	// Fails with a domain.ErrEmbedding-wrapped error.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedQuery generates an embedding for a search query.
	// May use different parameters optimized for queries.
	EmbedQuery(ctx context.Context, query string) ([]float32, error)

	// Dimensions returns the embedding dimension size
	Dimensions() int

	// Model returns the model name being used
	Model() string

	// TestConnection verifies the embedding backend is reachable
	TestConnection(ctx context.Context) error

	// Close releases resources held by the provider
	Close() error
}
