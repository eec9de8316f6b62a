package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
	"github.com/DevWael/semantiq-search/internal/core/ports/driving"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// searchService turns free text into a vector, runs a filtered similarity
// search, and groups results by content type.
type searchService struct {
	embedder driven.EmbeddingProvider
	store    driven.VectorStore
	settings driven.SettingsStore
	logger   *slog.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(
	embedder driven.EmbeddingProvider,
	store driven.VectorStore,
	settings driven.SettingsStore,
	logger *slog.Logger,
) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		embedder: embedder,
		store:    store,
		settings: settings,
		logger:   logger,
	}
}

// Search answers one semantic query. Zero hits is a normal outcome and
// yields an empty mapping.
func (s *searchService) Search(ctx context.Context, query string, limit int, types []string) (domain.GroupedResults, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.QdrantCollection == "" {
		return nil, fmt.Errorf("%w: no collection configured", domain.ErrConfig)
	}

	if len(types) == 0 {
		types = settings.EnabledTypes
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	filter := &domain.SearchFilter{
		Types:    types,
		MinScore: settings.MinScore,
	}

	points, err := s.store.Search(ctx, settings.QdrantCollection, vector, limit, filter)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("search executed", "query", query, "hits", len(points), "types", types)
	return groupByType(points), nil
}

// groupByType folds scored points into per-type result lists, preserving the
// backend's relevance order within each group.
func groupByType(points []domain.ScoredPoint) domain.GroupedResults {
	grouped := domain.GroupedResults{}

	for _, point := range points {
		postType := point.Payload.PostType
		if postType == "" {
			postType = "unknown"
		}

		grouped[postType] = append(grouped[postType], domain.SearchResult{
			ID:           point.Payload.PostID,
			Title:        point.Payload.Title,
			URL:          point.Payload.URL,
			Excerpt:      point.Payload.Excerpt,
			ThumbnailURL: point.Payload.Thumbnail,
			Score:        point.Score,
		})
	}

	return grouped
}
