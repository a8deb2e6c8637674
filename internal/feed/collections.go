// Package feed holds the synchronization core: deduplicated ingestion of
// external content, idempotent per-device interaction toggling, and comment /
// discussion writes, all against the remote store.
package feed

// Remote store collection names.
const (
	collectionItems        = "articles"
	collectionInteractions = "interactions"
	collectionDiscussions  = "discussions"
	collectionComments     = "comments"
)
