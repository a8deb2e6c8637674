package ports

import (
	"context"

	"feedsync/internal/core/domain"
)

// Source talks to the external content search endpoint. Search returns the
// raw response payload so callers can cache it exactly as received; Decode
// turns a payload (fresh or cached) into candidate articles.
type Source interface {
	Search(ctx context.Context, query string) ([]byte, error)
	Decode(raw []byte) ([]domain.SourceArticle, error)
}

// Cache is a TTL'd key-value store. Get reports absence for entries older
// than the configured TTL; Put overwrites unconditionally and stamps the
// current time.
type Cache interface {
	Get(key string) ([]byte, bool)
	Put(key string, payload []byte) error
}

// Identity yields the persisted per-device identifier, generating it on
// first use.
type Identity interface {
	ID() (string, error)
}

// Persister deduplicates and writes a batch of items to the remote store,
// returning how many rows were actually persisted.
type Persister interface {
	PersistBatch(ctx context.Context, items []domain.ContentItem) (int, error)
}
