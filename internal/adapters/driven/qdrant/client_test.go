package qdrant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := DefaultConfig(server.URL)
	cfg.APIKey = "test-key"
	return NewClient(cfg)
}

func writeResult(w http.ResponseWriter, result any) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"result": result,
		"status": "ok",
		"time":   0.001,
	})
}

func TestUpsertSendsPointsWithWait(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if key := r.Header.Get("api-key"); key != "test-key" {
			t.Errorf("api-key header = %q, want %q", key, "test-key")
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeResult(w, map[string]any{"status": "completed"})
	})

	points := []domain.VectorPoint{{
		ID:     42,
		Vector: []float32{0.1, 0.2},
		Payload: domain.PointPayload{
			PostID:   42,
			PostType: "post",
			Title:    "Hello",
		},
	}}
	if err := client.Upsert(context.Background(), "wordpress_posts", points); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if gotPath != "/collections/wordpress_posts/points?wait=true" {
		t.Errorf("path = %q", gotPath)
	}
	rawPoints, ok := gotBody["points"].([]any)
	if !ok || len(rawPoints) != 1 {
		t.Fatalf("body points = %v", gotBody["points"])
	}
	point := rawPoints[0].(map[string]any)
	if point["id"].(float64) != 42 {
		t.Errorf("point id = %v, want 42", point["id"])
	}
	payload := point["payload"].(map[string]any)
	if payload["post_type"] != "post" {
		t.Errorf("payload post_type = %v, want post", payload["post_type"])
	}
}

func TestUpsertEmptyBatchIsNoOp(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		writeResult(w, nil)
	})

	if err := client.Upsert(context.Background(), "wordpress_posts", nil); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if called {
		t.Error("expected no HTTP call for empty batch")
	}
}

func TestSearchBuildsFilterAndThreshold(t *testing.T) {
	var gotBody searchRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/wordpress_posts/points/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeResult(w, []map[string]any{
			{"id": 7, "score": 0.91, "payload": map[string]any{"post_id": 7, "post_type": "page", "post_title": "About"}},
			{"id": 3, "score": 0.85, "payload": map[string]any{"post_id": 3, "post_type": "post", "post_title": "News"}},
		})
	})

	filter := &domain.SearchFilter{Types: []string{"post", "page"}, MinScore: 0.5}
	hits, err := client.Search(context.Background(), "wordpress_posts", []float32{0.5, 0.5}, 10, filter)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}
	if hits[0].ID != 7 || hits[0].Score != 0.91 || hits[0].Payload.Title != "About" {
		t.Errorf("unexpected first hit: %+v", hits[0])
	}

	if !gotBody.WithPayload {
		t.Error("with_payload not set")
	}
	if gotBody.Limit != 10 {
		t.Errorf("limit = %d, want 10", gotBody.Limit)
	}
	if gotBody.ScoreThreshold != 0.5 {
		t.Errorf("score_threshold = %v, want 0.5", gotBody.ScoreThreshold)
	}
	if gotBody.Filter == nil || len(gotBody.Filter.Must) != 1 {
		t.Fatalf("filter = %+v", gotBody.Filter)
	}
	cond := gotBody.Filter.Must[0]
	if cond.Key != "post_type" || len(cond.Match.Any) != 2 {
		t.Errorf("condition = %+v", cond)
	}
}

func TestSearchWithoutFilterOmitsIt(t *testing.T) {
	var rawBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&rawBody)
		writeResult(w, []map[string]any{})
	})

	if _, err := client.Search(context.Background(), "wordpress_posts", []float32{1}, 5, nil); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if _, present := rawBody["filter"]; present {
		t.Error("filter should be omitted when no restriction was given")
	}
	if _, present := rawBody["score_threshold"]; present {
		t.Error("score_threshold should be omitted when zero")
	}
}

func TestSearchServerErrorWrapsSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": map[string]any{"error": "Collection `wordpress_posts` doesn't exist"},
			"time":   0.001,
		})
	})

	_, err := client.Search(context.Background(), "wordpress_posts", []float32{1}, 5, nil)
	if !errors.Is(err, domain.ErrVectorStore) {
		t.Fatalf("error = %v, want ErrVectorStore", err)
	}
}

func TestDeleteRemovesPoint(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/wordpress_posts/points/delete" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeResult(w, map[string]any{"status": "completed"})
	})

	ok, err := client.Delete(context.Background(), "wordpress_posts", 42)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !ok {
		t.Error("Delete() = false, want true")
	}
	ids := gotBody["points"].([]any)
	if len(ids) != 1 || ids[0].(float64) != 42 {
		t.Errorf("points = %v, want [42]", ids)
	}
}

func TestEnsureCollectionCreatesWhenMissing(t *testing.T) {
	var createBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/collections":
			writeResult(w, map[string]any{"collections": []map[string]any{{"name": "other"}}})
		case r.Method == http.MethodPut && r.URL.Path == "/collections/wordpress_posts":
			_ = json.NewDecoder(r.Body).Decode(&createBody)
			writeResult(w, true)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	})

	if err := client.EnsureCollection(context.Background(), "wordpress_posts", 384); err != nil {
		t.Fatalf("EnsureCollection() error = %v", err)
	}
	vectors := createBody["vectors"].(map[string]any)
	if vectors["size"].(float64) != 384 {
		t.Errorf("vector size = %v, want 384", vectors["size"])
	}
	if vectors["distance"] != "Cosine" {
		t.Errorf("distance = %v, want Cosine", vectors["distance"])
	}
}

func TestEnsureCollectionSkipsExisting(t *testing.T) {
	createCalled := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/collections":
			writeResult(w, map[string]any{"collections": []map[string]any{{"name": "wordpress_posts"}}})
		case r.Method == http.MethodPut:
			createCalled = true
			writeResult(w, true)
		}
	})

	if err := client.EnsureCollection(context.Background(), "wordpress_posts", 384); err != nil {
		t.Fatalf("EnsureCollection() error = %v", err)
	}
	if createCalled {
		t.Error("collection should not be recreated when it already exists")
	}
}

func TestListCollections(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, map[string]any{"collections": []map[string]any{
			{"name": "wordpress_posts"},
			{"name": "scratch"},
		}})
	})

	names, err := client.ListCollections(context.Background())
	if err != nil {
		t.Fatalf("ListCollections() error = %v", err)
	}
	if len(names) != 2 || names[0] != "wordpress_posts" || names[1] != "scratch" {
		t.Errorf("names = %v", names)
	}
}

func TestTestConnectionUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(DefaultConfig(server.URL))

	err := client.TestConnection(context.Background())
	if !errors.Is(err, domain.ErrVectorStore) {
		t.Fatalf("error = %v, want ErrVectorStore", err)
	}
}
