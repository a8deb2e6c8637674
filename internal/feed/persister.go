package feed

import (
	"context"

	"go.uber.org/zap"

	"feedsync/internal/core/domain"
	"feedsync/internal/core/ports"
	"feedsync/internal/store"
)

// StorePersister writes deduplicated batches to the remote store. The upsert
// keys on the natural-key column, so items that slip past a fail-open
// duplicate check still merge instead of duplicating rows.
type StorePersister struct {
	store *store.Client
	dedup *Deduper
	log   *zap.Logger
}

var _ ports.Persister = (*StorePersister)(nil)

// NewStorePersister builds a persister on the given store client and deduper.
func NewStorePersister(st *store.Client, dedup *Deduper, log *zap.Logger) *StorePersister {
	if log == nil {
		log = zap.NewNop()
	}
	return &StorePersister{store: st, dedup: dedup, log: log}
}

// PersistBatch filters out already-stored items and bulk-upserts the rest,
// returning the number of rows written.
func (p *StorePersister) PersistBatch(ctx context.Context, items []domain.ContentItem) (int, error) {
	unique := p.dedup.FilterDuplicates(ctx, items)
	if len(unique) == 0 {
		p.log.Debug("nothing new to persist", zap.Int("candidates", len(items)))
		return 0, nil
	}
	rows, err := store.Upsert[domain.ContentItem](ctx, p.store, collectionItems, "source_url", unique)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
