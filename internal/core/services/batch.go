package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
)

// cacheFlushInterval is how many successfully synced items pass between
// content cache releases during a batch.
const cacheFlushInterval = 10

// BatchProcessor runs the item syncer over one page of content ids.
// One failing item never aborts the batch: its error is recorded and
// processing continues with the next id.
type BatchProcessor struct {
	syncer ItemSyncer
	repo   driven.ContentRepository
	logger *slog.Logger
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(syncer ItemSyncer, repo driven.ContentRepository, logger *slog.Logger) *BatchProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchProcessor{
		syncer: syncer,
		repo:   repo,
		logger: logger,
	}
}

// Process fetches one page of up to batchSize ids starting at offset and
// syncs each in fetch order. Completion is signalled by a short page: a page
// of fewer than batchSize ids is the end of the corpus. A full final page is
// not - detecting that costs one extra empty-page call.
func (p *BatchProcessor) Process(ctx context.Context, offset, batchSize int, types []string) (*domain.BatchResult, error) {
	ids, err := p.repo.ListIDs(ctx, types, offset, batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list content ids: %w", err)
	}

	processed := 0
	errs := []domain.SyncItemError{}

	for _, id := range ids {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := p.syncer.Sync(ctx, id); err != nil {
			errs = append(errs, domain.SyncItemError{PostID: id, Message: err.Error()})
			p.logger.Warn("item sync failed, continuing batch", "post_id", id, "error", err)
			continue
		}
		processed++

		// Release content caches periodically to bound memory growth over
		// a long-running bulk sync.
		if processed%cacheFlushInterval == 0 {
			p.repo.FlushCache(ctx)
		}
	}

	return &domain.BatchResult{
		Processed:  processed,
		Errors:     errs,
		NextOffset: offset + len(ids),
		IsComplete: len(ids) < batchSize,
	}, nil
}
