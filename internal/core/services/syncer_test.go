package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven/mocks"
)

func newTestSyncer() (*PostSyncer, *mocks.MockContentRepository, *mocks.MockEmbeddingProvider, *mocks.MockVectorStore) {
	repo := mocks.NewMockContentRepository()
	embedder := mocks.NewMockEmbeddingProvider()
	store := mocks.NewMockVectorStore()

	syncer := NewPostSyncer(PostSyncerConfig{
		Repo:     repo,
		Embedder: embedder,
		Store:    store,
		Settings: mocks.NewMockSettingsStore(),
	})
	return syncer, repo, embedder, store
}

func testItem(id int64) *domain.ContentItem {
	return &domain.ContentItem{
		ID:           id,
		Type:         "post",
		Status:       domain.ContentStatusPublished,
		Title:        "Hello World",
		Body:         "<p>Some <strong>content</strong> worth indexing.</p>",
		URL:          "https://example.com/hello-world",
		PublishedAt:  time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		ThumbnailURL: "https://example.com/thumb.jpg",
	}
}

func TestPostSyncer_Sync(t *testing.T) {
	syncer, repo, _, store := newTestSyncer()
	repo.Add(testItem(7))

	if err := syncer.Sync(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	point, ok := store.Point("wordpress_posts", 7)
	if !ok {
		t.Fatal("expected point to be upserted")
	}
	if point.Payload.PostID != 7 || point.Payload.PostType != "post" {
		t.Errorf("unexpected payload identity: %+v", point.Payload)
	}
	if point.Payload.Title != "Hello World" {
		t.Errorf("unexpected payload title: %s", point.Payload.Title)
	}
	if point.Payload.URL != "https://example.com/hello-world" {
		t.Errorf("unexpected payload url: %s", point.Payload.URL)
	}
	if point.Payload.Date != "2024-03-01 10:30:00" {
		t.Errorf("unexpected payload date: %s", point.Payload.Date)
	}
	if point.Payload.Excerpt != "Some content worth indexing." {
		t.Errorf("expected stripped excerpt, got %q", point.Payload.Excerpt)
	}
	if len(point.Vector) == 0 {
		t.Error("expected non-empty vector")
	}

	if _, ok := repo.SyncedAt(7); !ok {
		t.Error("expected sync timestamp to be recorded")
	}
	if repo.SyncErrorFor(7) != "" {
		t.Errorf("expected no sync error, got %q", repo.SyncErrorFor(7))
	}
}

func TestPostSyncer_Sync_Idempotent(t *testing.T) {
	syncer, repo, _, store := newTestSyncer()
	repo.Add(testItem(7))

	if err := syncer.Sync(context.Background(), 7); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if err := syncer.Sync(context.Background(), 7); err != nil {
		t.Fatalf("second sync failed: %v", err)
	}

	// Upsert-by-id: two syncs of unchanged content yield one point, not two.
	if count := store.PointCount("wordpress_posts"); count != 1 {
		t.Errorf("expected exactly 1 point after re-sync, got %d", count)
	}
}

func TestPostSyncer_Sync_NotFound(t *testing.T) {
	syncer, repo, _, _ := newTestSyncer()

	err := syncer.Sync(context.Background(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.SyncErrorFor(99) == "" {
		t.Error("expected failure to be recorded in sync error metadata")
	}
}

func TestPostSyncer_Sync_EmbeddingFailure(t *testing.T) {
	syncer, repo, embedder, store := newTestSyncer()
	repo.Add(testItem(7))
	embedder.FailAll(true)

	err := syncer.Sync(context.Background(), 7)
	if !errors.Is(err, domain.ErrEmbedding) {
		t.Fatalf("expected ErrEmbedding, got %v", err)
	}
	if repo.SyncErrorFor(7) == "" {
		t.Error("expected sync error metadata to be populated")
	}
	if _, ok := repo.SyncedAt(7); ok {
		t.Error("sync timestamp must not be set on failure")
	}
	if store.PointCount("wordpress_posts") != 0 {
		t.Error("no point should be written on embedding failure")
	}
}

func TestPostSyncer_Sync_UpsertFailure(t *testing.T) {
	syncer, repo, _, store := newTestSyncer()
	repo.Add(testItem(7))
	store.SetUpsertError(true)

	err := syncer.Sync(context.Background(), 7)
	if !errors.Is(err, domain.ErrVectorStore) {
		t.Fatalf("expected ErrVectorStore, got %v", err)
	}
	if repo.SyncErrorFor(7) == "" {
		t.Error("expected sync error metadata to be populated")
	}
	if _, ok := repo.SyncedAt(7); ok {
		t.Error("sync timestamp must not be set on failure")
	}
}

func TestPostSyncer_Sync_ClearsPriorError(t *testing.T) {
	syncer, repo, embedder, _ := newTestSyncer()
	repo.Add(testItem(7))

	embedder.FailAll(true)
	_ = syncer.Sync(context.Background(), 7)
	if repo.SyncErrorFor(7) == "" {
		t.Fatal("expected first attempt to record an error")
	}

	embedder.FailAll(false)
	if err := syncer.Sync(context.Background(), 7); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if repo.SyncErrorFor(7) != "" {
		t.Errorf("expected prior error cleared after successful retry, got %q", repo.SyncErrorFor(7))
	}
}
