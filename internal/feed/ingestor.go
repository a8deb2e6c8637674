package feed

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"feedsync/internal/cache"
	"feedsync/internal/core/domain"
	"feedsync/internal/core/ports"
)

// ErrNoRelevantContent marks a successfully fetched but empty result set.
// It is a business outcome, not a transport or decoding failure; callers
// keep whatever they were already showing.
var ErrNoRelevantContent = errors.New("feed: no relevant content")

// persistTimeout bounds the detached background persist.
const persistTimeout = 30 * time.Second

// Ingestor produces a deduplicated, persisted view of content for one
// category: cache first, then the external source, with persistence handed
// off to a detached task whose outcome is only logged.
type Ingestor struct {
	source    ports.Source
	cache     ports.Cache
	persister ports.Persister
	log       *zap.Logger
}

// NewIngestor wires the ingestion pipeline.
func NewIngestor(src ports.Source, c ports.Cache, p ports.Persister, log *zap.Logger) *Ingestor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ingestor{source: src, cache: c, persister: p, log: log}
}

// Refresh returns the current items for a category. A fresh cache entry
// skips the network entirely. On a miss the raw response is written through
// to the cache before validation, image-less items are dropped, digest
// categories are truncated, and the final list is returned immediately while
// persistence proceeds in the background.
func (s *Ingestor) Refresh(ctx context.Context, cat domain.Category) ([]domain.ContentItem, error) {
	key := cache.CategoryKey(cat.Slug)

	if raw, ok := s.cache.Get(key); ok {
		articles, err := s.source.Decode(raw)
		if err == nil {
			items := assemble(cat, articles)
			if len(items) == 0 {
				return nil, ErrNoRelevantContent
			}
			return items, nil
		}
		s.log.Warn("cached payload unreadable, refetching",
			zap.String("category", cat.Slug), zap.Error(err))
	}

	raw, err := s.source.Search(ctx, cat.Query)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(key, raw); err != nil {
		s.log.Warn("cache write failed", zap.String("category", cat.Slug), zap.Error(err))
	}

	articles, err := s.source.Decode(raw)
	if err != nil {
		return nil, err
	}
	items := assemble(cat, articles)
	if len(items) == 0 {
		return nil, ErrNoRelevantContent
	}

	go s.persistDetached(items, cat.Slug)
	return items, nil
}

// persistDetached runs on its own context: the read path never waits on
// persistence, and a failed persist is visible only in the log.
func (s *Ingestor) persistDetached(items []domain.ContentItem, slug string) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	stored, err := s.persister.PersistBatch(ctx, items)
	if err != nil {
		s.log.Error("background persist failed",
			zap.String("category", slug), zap.Int("candidates", len(items)), zap.Error(err))
		return
	}
	s.log.Info("batch persisted",
		zap.String("category", slug), zap.Int("stored", stored), zap.Int("candidates", len(items)))
}

// assemble maps candidates into content items, discarding anything without a
// displayable image and truncating digest categories.
func assemble(cat domain.Category, articles []domain.SourceArticle) []domain.ContentItem {
	out := make([]domain.ContentItem, 0, len(articles))
	for _, a := range articles {
		if a.ImageURL == "" {
			continue
		}
		out = append(out, domain.ContentItem{
			Title:       a.Title,
			Body:        a.Description,
			ImageURL:    a.ImageURL,
			SourceURL:   a.Link,
			Origin:      a.SourceID,
			Tags:        a.Categories,
			PublishedAt: a.PublishedAt,
		})
	}
	if cat.Digest && len(out) > domain.DigestSize {
		out = out[:domain.DigestSize]
	}
	return out
}
