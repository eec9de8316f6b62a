// Package qdrant implements the vector store port against the Qdrant REST API.
package qdrant

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

// Verify interface compliance
var _ driven.VectorStore = (*Client)(nil)

// Client implements driven.VectorStore using Qdrant's REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds Qdrant connection configuration
type Config struct {
	// BaseURL is the Qdrant endpoint (e.g., http://localhost:6333)
	BaseURL string

	// APIKey is sent as the api-key header when set
	APIKey string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// NewClient creates a new Qdrant-backed VectorStore
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// qdrantResponse is the envelope every Qdrant endpoint returns
type qdrantResponse struct {
	Result json.RawMessage `json:"result"`
	Status json.RawMessage `json:"status"`
	Time   float64         `json:"time"`
}

// statusError extracts the error message from a non-ok status field
func (r *qdrantResponse) statusError() string {
	var status struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(r.Status, &status); err == nil && status.Error != "" {
		return status.Error
	}
	return "unknown error"
}

// Upsert writes points into a collection. Re-upserting an id replaces the
// existing point, which is what makes at-least-once sync delivery safe.
func (c *Client) Upsert(ctx context.Context, collection string, points []domain.VectorPoint) error {
	if len(points) == 0 {
		return nil
	}

	body := map[string]any{"points": points}
	_, err := c.request(ctx, http.MethodPut, "/collections/"+collection+"/points?wait=true", body)
	if err != nil {
		return err
	}
	return nil
}

type searchRequest struct {
	Vector         []float32      `json:"vector"`
	Limit          int            `json:"limit"`
	WithPayload    bool           `json:"with_payload"`
	Filter         *qdrantFilter  `json:"filter,omitempty"`
	ScoreThreshold float64        `json:"score_threshold,omitempty"`
}

type qdrantFilter struct {
	Must []qdrantCondition `json:"must"`
}

type qdrantCondition struct {
	Key   string      `json:"key"`
	Match qdrantMatch `json:"match"`
}

type qdrantMatch struct {
	Any []string `json:"any"`
}

// Search runs a top-limit similarity search. The type restriction maps to a
// payload match-any condition; the minimum score maps to Qdrant's native
// score_threshold.
func (c *Client) Search(ctx context.Context, collection string, vector []float32, limit int, filter *domain.SearchFilter) ([]domain.ScoredPoint, error) {
	req := searchRequest{
		Vector:      vector,
		Limit:       limit,
		WithPayload: true,
	}
	if filter != nil {
		if len(filter.Types) > 0 {
			req.Filter = &qdrantFilter{
				Must: []qdrantCondition{{
					Key:   "post_type",
					Match: qdrantMatch{Any: filter.Types},
				}},
			}
		}
		req.ScoreThreshold = filter.MinScore
	}

	resp, err := c.request(ctx, http.MethodPost, "/collections/"+collection+"/points/search", req)
	if err != nil {
		return nil, err
	}

	var hits []domain.ScoredPoint
	if err := json.Unmarshal(resp.Result, &hits); err != nil {
		return nil, fmt.Errorf("%w: malformed search result: %v", domain.ErrVectorStore, err)
	}
	return hits, nil
}

// Delete removes one point. Returns false when the request fails, mirroring
// a best-effort removal.
func (c *Client) Delete(ctx context.Context, collection string, id int64) (bool, error) {
	body := map[string]any{"points": []int64{id}}
	if _, err := c.request(ctx, http.MethodPost, "/collections/"+collection+"/points/delete", body); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureCollection creates the collection if it does not exist.
// Qdrant's PUT collection is idempotent for an existing collection with the
// same parameters.
func (c *Client) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	collections, err := c.ListCollections(ctx)
	if err != nil {
		return err
	}
	for _, name := range collections {
		if name == collection {
			return nil
		}
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}
	if _, err := c.request(ctx, http.MethodPut, "/collections/"+collection, body); err != nil {
		return err
	}
	return nil
}

// ListCollections returns the names of all collections.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	resp, err := c.request(ctx, http.MethodGet, "/collections", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Collections []struct {
			Name string `json:"name"`
		} `json:"collections"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("%w: malformed collections result: %v", domain.ErrVectorStore, err)
	}

	names := make([]string, 0, len(result.Collections))
	for _, col := range result.Collections {
		names = append(names, col.Name)
	}
	return names, nil
}

// TestConnection verifies the store is reachable.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodGet, "/collections", nil)
	return err
}

// request performs one Qdrant API call and unwraps the response envelope.
func (c *Client) request(ctx context.Context, method, path string, body any) (*qdrantResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", domain.ErrVectorStore, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrVectorStore, err)
	}

	var envelope qdrantResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed response (status %d)", domain.ErrVectorStore, resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: qdrant returned status %d: %s", domain.ErrVectorStore, resp.StatusCode, envelope.statusError())
	}

	return &envelope, nil
}
