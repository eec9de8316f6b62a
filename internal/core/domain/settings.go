package domain

import "time"

// Embedding provider types
const (
	ProviderLocal  = "local"
	ProviderOpenAI = "openai"
)

// Settings holds the tunable options for sync and search.
type Settings struct {
	QdrantURL         string    `json:"qdrant_url"`
	QdrantAPIKey      string    `json:"qdrant_api_key,omitempty"`
	QdrantCollection  string    `json:"qdrant_collection"`
	EmbeddingProvider string    `json:"embedding_provider"`
	EmbeddingURL      string    `json:"embedding_url"`
	EmbeddingAPIKey   string    `json:"embedding_api_key,omitempty"`
	EmbeddingModel    string    `json:"embedding_model"`
	VectorDimensions  int       `json:"vector_dimensions"`
	EnabledTypes      []string  `json:"enabled_types"`
	BatchSize         int       `json:"batch_size"`
	MinScore          float64   `json:"min_score"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultSettings returns the defaults used when nothing is stored yet.
func DefaultSettings() *Settings {
	return &Settings{
		QdrantURL:         "http://localhost:6333",
		QdrantCollection:  "wordpress_posts",
		EmbeddingProvider: ProviderLocal,
		EmbeddingURL:      "http://localhost:8000/v1/embeddings",
		EmbeddingModel:    "local-model",
		VectorDimensions:  384,
		EnabledTypes:      []string{"post", "page"},
		BatchSize:         5,
		MinScore:          0.5,
	}
}

// Validate checks that the settings are usable for sync and search.
func (s *Settings) Validate() error {
	if s.QdrantCollection == "" {
		return ErrConfig
	}
	if s.BatchSize <= 0 {
		return ErrConfig
	}
	if len(s.EnabledTypes) == 0 {
		return ErrConfig
	}
	switch s.EmbeddingProvider {
	case ProviderLocal, ProviderOpenAI:
	default:
		return ErrInvalidProvider
	}
	return nil
}
