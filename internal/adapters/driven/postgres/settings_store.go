package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore implements driven.SettingsStore using PostgreSQL.
// Settings live in a single row; Get falls back to defaults when the row
// has never been written.
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get retrieves the stored settings, or defaults if nothing is stored
func (s *SettingsStore) Get(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT qdrant_url, qdrant_api_key, collection,
			   embedding_provider, embedding_url, embedding_api_key, embedding_model,
			   vector_dimensions, enabled_types, batch_size, min_score, updated_at
		FROM search_settings
		WHERE id = 1
	`

	var settings domain.Settings
	err := s.db.QueryRowContext(ctx, query).Scan(
		&settings.QdrantURL,
		&settings.QdrantAPIKey,
		&settings.QdrantCollection,
		&settings.EmbeddingProvider,
		&settings.EmbeddingURL,
		&settings.EmbeddingAPIKey,
		&settings.EmbeddingModel,
		&settings.VectorDimensions,
		pq.Array(&settings.EnabledTypes),
		&settings.BatchSize,
		&settings.MinScore,
		&settings.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &settings, nil
}

// Save stores the settings
func (s *SettingsStore) Save(ctx context.Context, settings *domain.Settings) error {
	query := `
		INSERT INTO search_settings (id, qdrant_url, qdrant_api_key, collection,
									 embedding_provider, embedding_url, embedding_api_key, embedding_model,
									 vector_dimensions, enabled_types, batch_size, min_score, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			qdrant_url = EXCLUDED.qdrant_url,
			qdrant_api_key = EXCLUDED.qdrant_api_key,
			collection = EXCLUDED.collection,
			embedding_provider = EXCLUDED.embedding_provider,
			embedding_url = EXCLUDED.embedding_url,
			embedding_api_key = EXCLUDED.embedding_api_key,
			embedding_model = EXCLUDED.embedding_model,
			vector_dimensions = EXCLUDED.vector_dimensions,
			enabled_types = EXCLUDED.enabled_types,
			batch_size = EXCLUDED.batch_size,
			min_score = EXCLUDED.min_score,
			updated_at = EXCLUDED.updated_at
	`

	settings.UpdatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, query,
		settings.QdrantURL,
		settings.QdrantAPIKey,
		settings.QdrantCollection,
		settings.EmbeddingProvider,
		settings.EmbeddingURL,
		settings.EmbeddingAPIKey,
		settings.EmbeddingModel,
		settings.VectorDimensions,
		pq.Array(settings.EnabledTypes),
		settings.BatchSize,
		settings.MinScore,
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
