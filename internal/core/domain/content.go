package domain

import "time"

// ContentItem is a single piece of corpus content eligible for indexing.
// The content repository owns these records; this core only reads them.
type ContentItem struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	URL          string    `json:"url"`
	PublishedAt  time.Time `json:"published_at"`
	ModifiedAt   time.Time `json:"modified_at"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
}

// ContentStatusPublished is the only status the sync pipeline considers.
const ContentStatusPublished = "published"

// PointPayload is the metadata stored alongside a vector, sufficient to
// render a search result without a secondary lookup.
type PointPayload struct {
	PostID    int64  `json:"post_id"`
	PostType  string `json:"post_type"`
	Title     string `json:"post_title"`
	URL       string `json:"post_url"`
	Date      string `json:"post_date"`
	Thumbnail string `json:"featured_image,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
}

// VectorPoint is one vector-plus-payload record in the vector store.
// The point ID equals the content item ID - that is the idempotency key
// for upserts.
type VectorPoint struct {
	ID      int64        `json:"id"`
	Vector  []float32    `json:"vector"`
	Payload PointPayload `json:"payload"`
}

// ScoredPoint is a vector store search hit.
type ScoredPoint struct {
	ID      int64        `json:"id"`
	Score   float64      `json:"score"`
	Payload PointPayload `json:"payload"`
}

// SearchFilter restricts a similarity search.
type SearchFilter struct {
	// Types limits results to these content types. Empty means no restriction.
	Types []string `json:"types,omitempty"`

	// MinScore drops hits scoring below this threshold. Zero disables it.
	MinScore float64 `json:"min_score,omitempty"`
}

// SearchResult is the display record returned to search clients.
type SearchResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Excerpt      string  `json:"excerpt"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	Score        float64 `json:"score"`
}

// GroupedResults maps a content type to its ordered result list.
// Order within each group preserves the backend's relevance ranking.
type GroupedResults map[string][]SearchResult
