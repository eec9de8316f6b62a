package driving

import (
	"context"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

// SearchService answers semantic queries against the vector index.
type SearchService interface {
	// Search embeds the query, runs a filtered similarity search, and
	// groups results by content type. An empty result set yields an empty
	// mapping, not an error.
	Search(ctx context.Context, query string, limit int, types []string) (domain.GroupedResults, error)
}
