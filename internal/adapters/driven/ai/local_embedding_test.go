package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

func TestLocalEmbeddingEmbed(t *testing.T) {
	var gotAuth string
	var gotBody localEmbedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(localEmbedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	provider, err := NewLocalEmbedding(server.URL, "secret", "local-model", 3)
	if err != nil {
		t.Fatalf("NewLocalEmbedding() error = %v", err)
	}
	defer provider.Close()

	vector, err := provider.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	if len(vector) != 3 {
		t.Errorf("len(vector) = %d, want 3", len(vector))
	}
	if gotBody.Text != "hello world" {
		t.Errorf("request text = %q, want %q", gotBody.Text, "hello world")
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer token", gotAuth)
	}
}

func TestLocalEmbeddingNoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(localEmbedResponse{Embedding: []float32{1}})
	}))
	defer server.Close()

	provider, _ := NewLocalEmbedding(server.URL, "", "local-model", 1)
	if _, err := provider.Embed(context.Background(), "x"); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestLocalEmbeddingServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(localEmbedResponse{Error: "model loading"})
	}))
	defer server.Close()

	provider, _ := NewLocalEmbedding(server.URL, "", "local-model", 3)
	_, err := provider.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbedding) {
		t.Fatalf("error = %v, want ErrEmbedding", err)
	}
}

func TestLocalEmbeddingEmptyVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(localEmbedResponse{Embedding: []float32{}})
	}))
	defer server.Close()

	provider, _ := NewLocalEmbedding(server.URL, "", "local-model", 3)
	_, err := provider.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbedding) {
		t.Fatalf("error = %v, want ErrEmbedding", err)
	}
}

func TestLocalEmbeddingRequiresEndpoint(t *testing.T) {
	_, err := NewLocalEmbedding("", "", "local-model", 3)
	if !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
}

func TestLocalEmbeddingMetadata(t *testing.T) {
	provider, err := NewLocalEmbedding("http://localhost:8000/v1/embeddings", "", "", 384)
	if err != nil {
		t.Fatalf("NewLocalEmbedding() error = %v", err)
	}
	if provider.Dimensions() != 384 {
		t.Errorf("Dimensions() = %d, want 384", provider.Dimensions())
	}
	if provider.Model() != "local" {
		t.Errorf("Model() = %q, want default name", provider.Model())
	}
}
