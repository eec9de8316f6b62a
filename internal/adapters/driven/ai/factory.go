package ai

import (
	"fmt"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
)

// NewEmbeddingProvider builds the embedding provider selected by settings.
func NewEmbeddingProvider(settings *domain.Settings) (driven.EmbeddingProvider, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: settings are required", domain.ErrConfig)
	}

	switch settings.EmbeddingProvider {
	case domain.ProviderLocal:
		return NewLocalEmbedding(settings.EmbeddingURL, settings.EmbeddingAPIKey, settings.EmbeddingModel, settings.VectorDimensions)
	case domain.ProviderOpenAI:
		return NewOpenAIEmbedding(settings.EmbeddingAPIKey, settings.EmbeddingModel, "")
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.EmbeddingProvider)
	}
}
