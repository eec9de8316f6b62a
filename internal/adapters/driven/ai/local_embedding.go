// Package ai implements embedding providers and their settings-driven factory.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
)

// Ensure LocalEmbedding implements EmbeddingProvider
var _ driven.EmbeddingProvider = (*LocalEmbedding)(nil)

// LocalEmbedding implements EmbeddingProvider against a self-hosted
// embedding HTTP service that accepts {"text": ...} and returns
// {"embedding": [...]}.
type LocalEmbedding struct {
	endpoint   string
	apiKey     string
	model      string
	dimensions int
	client     *http.Client
}

// NewLocalEmbedding creates a local embedding provider. The endpoint is the
// full URL of the embed route; apiKey is optional and sent as a Bearer token
// when present.
func NewLocalEmbedding(endpoint, apiKey, model string, dimensions int) (driven.EmbeddingProvider, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("%w: local embedding endpoint is required", domain.ErrConfig)
	}
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: vector dimensions must be positive", domain.ErrConfig)
	}
	if model == "" {
		model = "local"
	}

	return &LocalEmbedding{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		apiKey:     apiKey,
		model:      model,
		dimensions: dimensions,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type localEmbedRequest struct {
	Text string `json:"text"`
}

type localEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}

// Embed generates an embedding for a document text
func (e *LocalEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(localEmbedRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", domain.ErrEmbedding, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrEmbedding, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", domain.ErrEmbedding, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrEmbedding, err)
	}

	var embResp localEmbedResponse
	if err := json.Unmarshal(respBody, &embResp); err != nil {
		return nil, fmt.Errorf("%w: malformed response (status %d)", domain.ErrEmbedding, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		msg := embResp.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: embedding service returned status %d: %s", domain.ErrEmbedding, resp.StatusCode, msg)
	}
	if len(embResp.Embedding) == 0 {
		return nil, fmt.Errorf("%w: embedding service returned an empty vector", domain.ErrEmbedding)
	}

	return embResp.Embedding, nil
}

// EmbedQuery generates an embedding for a search query. The local service
// makes no distinction between documents and queries.
func (e *LocalEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return e.Embed(ctx, query)
}

// Dimensions returns the embedding dimension size
func (e *LocalEmbedding) Dimensions() int {
	return e.dimensions
}

// Model returns the model name being used
func (e *LocalEmbedding) Model() string {
	return e.model
}

// TestConnection verifies the embedding service is available
func (e *LocalEmbedding) TestConnection(ctx context.Context) error {
	_, err := e.Embed(ctx, "connection test")
	return err
}

// Close releases resources held by the provider
func (e *LocalEmbedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}
