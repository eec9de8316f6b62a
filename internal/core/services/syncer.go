package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
	"github.com/DevWael/semantiq-search/internal/normalisers"
)

// excerptWords is the word budget of the excerpt stored in point payloads.
const excerptWords = 30

// ItemSyncer syncs one content item into the vector store.
type ItemSyncer interface {
	Sync(ctx context.Context, postID int64) error
}

// Ensure PostSyncer implements ItemSyncer
var _ ItemSyncer = (*PostSyncer)(nil)

// PostSyncer turns one content item into a vector point and writes it.
// It is the retry and consistency unit of the pipeline: re-running it with
// unchanged content reproduces the same point (upsert semantics), so
// at-least-once delivery is safe.
type PostSyncer struct {
	repo     driven.ContentRepository
	embedder driven.EmbeddingProvider
	store    driven.VectorStore
	settings driven.SettingsStore
	logger   *slog.Logger
}

// PostSyncerConfig holds dependencies for PostSyncer.
type PostSyncerConfig struct {
	Repo     driven.ContentRepository
	Embedder driven.EmbeddingProvider
	Store    driven.VectorStore
	Settings driven.SettingsStore
	Logger   *slog.Logger
}

// NewPostSyncer creates a new PostSyncer.
func NewPostSyncer(cfg PostSyncerConfig) *PostSyncer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &PostSyncer{
		repo:     cfg.Repo,
		embedder: cfg.Embedder,
		store:    cfg.Store,
		settings: cfg.Settings,
		logger:   logger,
	}
}

// Sync embeds and upserts one item. Any failure after the initial error
// reset is written to the item's sync_error metadata before being returned;
// on success synced_at is updated and sync_error stays clear.
func (s *PostSyncer) Sync(ctx context.Context, postID int64) error {
	if err := s.repo.ClearSyncError(ctx, postID); err != nil {
		return fmt.Errorf("failed to clear sync error for %d: %w", postID, err)
	}

	if err := s.sync(ctx, postID); err != nil {
		if metaErr := s.repo.SetSyncError(ctx, postID, err.Error()); metaErr != nil {
			s.logger.Warn("failed to record sync error", "post_id", postID, "error", metaErr)
		}
		s.logger.Error("post sync failed", "post_id", postID, "error", err)
		return err
	}

	s.logger.Info("post synced", "post_id", postID)
	return nil
}

func (s *PostSyncer) sync(ctx context.Context, postID int64) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.QdrantCollection == "" {
		return fmt.Errorf("%w: no collection configured", domain.ErrConfig)
	}

	item, err := s.repo.Get(ctx, postID)
	if err != nil {
		return fmt.Errorf("post %d: %w", postID, err)
	}

	text := prepareContent(item)
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return err
	}
	if len(vector) == 0 {
		return fmt.Errorf("%w: empty vector returned", domain.ErrEmbedding)
	}

	point := domain.VectorPoint{
		ID:      item.ID,
		Vector:  vector,
		Payload: preparePayload(item),
	}

	if err := s.store.Upsert(ctx, settings.QdrantCollection, []domain.VectorPoint{point}); err != nil {
		return err
	}

	if err := s.repo.SetSyncTimestamp(ctx, postID, time.Now()); err != nil {
		return fmt.Errorf("failed to record sync timestamp for %d: %w", postID, err)
	}

	return nil
}

// prepareContent derives the embeddable text: title and body concatenated,
// markup and entities stripped, whitespace collapsed.
func prepareContent(item *domain.ContentItem) string {
	return normalisers.PlainText(item.Title + "\n\n" + item.Body)
}

// preparePayload builds the point metadata used to render search results.
func preparePayload(item *domain.ContentItem) domain.PointPayload {
	return domain.PointPayload{
		PostID:    item.ID,
		PostType:  item.Type,
		Title:     item.Title,
		URL:       item.URL,
		Date:      item.PublishedAt.Format("2006-01-02 15:04:05"),
		Thumbnail: item.ThumbnailURL,
		Excerpt:   normalisers.Excerpt(item.Body, excerptWords),
	}
}
