package feed

import (
	"context"

	"go.uber.org/zap"

	"feedsync/internal/core/domain"
	"feedsync/internal/store"
)

// Deduper suppresses content the store already holds, keyed by source URL.
// When the existence check itself fails it fails open: the full batch is
// admitted rather than blocking ingestion, at the cost of an occasional
// duplicate while the store is degraded.
type Deduper struct {
	store *store.Client
	log   *zap.Logger
}

// NewDeduper builds a Deduper on the given store client.
func NewDeduper(st *store.Client, log *zap.Logger) *Deduper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Deduper{store: st, log: log}
}

// Exists reports whether an item with the given natural key is already
// stored. The title only informs logging.
func (d *Deduper) Exists(ctx context.Context, sourceURL, title string) (bool, error) {
	rows, err := store.Fetch[domain.ContentItem](ctx, d.store, collectionItems, store.Filters{
		store.Eq("source_url", sourceURL),
		store.Limit(1),
	})
	if err != nil {
		return false, err
	}
	if len(rows) > 0 {
		d.log.Debug("duplicate item", zap.String("source_url", sourceURL), zap.String("title", title))
		return true, nil
	}
	return false, nil
}

// FilterDuplicates returns the items whose natural keys are not yet stored.
// Items without a natural key are always admitted: content with no stable
// external identity cannot be deduplicated. On any store or decoding error
// the original batch is returned unchanged.
func (d *Deduper) FilterDuplicates(ctx context.Context, items []domain.ContentItem) []domain.ContentItem {
	keys := make([]string, 0, len(items))
	for _, it := range items {
		if it.SourceURL != "" {
			keys = append(keys, it.SourceURL)
		}
	}
	if len(keys) == 0 {
		return items
	}

	type keyRow struct {
		SourceURL string `json:"source_url"`
	}
	rows, err := store.Fetch[keyRow](ctx, d.store, collectionItems, store.Filters{
		store.Select("source_url"),
		store.In("source_url", keys...),
	})
	if err != nil {
		d.log.Warn("duplicate check failed, admitting full batch",
			zap.Int("candidates", len(items)), zap.Error(err))
		return items
	}

	existing := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		existing[r.SourceURL] = struct{}{}
	}

	out := make([]domain.ContentItem, 0, len(items))
	for _, it := range items {
		if it.SourceURL != "" {
			if _, dup := existing[it.SourceURL]; dup {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}
