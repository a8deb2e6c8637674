package feed

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"feedsync/internal/core/domain"
	"feedsync/internal/core/ports"
	"feedsync/internal/store"
)

var (
	// ErrParentNotFound means the referenced parent comment does not exist.
	ErrParentNotFound = errors.New("feed: parent comment not found")
	// ErrParentMismatch means the parent comment belongs to another item.
	ErrParentMismatch = errors.New("feed: parent comment belongs to a different item")
)

// Threads writes discussions and comments for the current device identity.
// Comment nesting is computed here: a reply sits one level below its parent,
// roots sit at level 0.
type Threads struct {
	store    *store.Client
	identity ports.Identity
	log      *zap.Logger
}

// NewThreads builds a Threads writer.
func NewThreads(st *store.Client, identity ports.Identity, log *zap.Logger) *Threads {
	if log == nil {
		log = zap.NewNop()
	}
	return &Threads{store: st, identity: identity, log: log}
}

// CreateDiscussion opens a discussion thread on a content item.
func (t *Threads) CreateDiscussion(ctx context.Context, itemID int64, title, text string) (*domain.DiscussionRecord, error) {
	author, err := t.identity.ID()
	if err != nil {
		return nil, err
	}
	rows, err := store.Insert[domain.DiscussionRecord](ctx, t.store, collectionDiscussions, domain.DiscussionRecord{
		ItemID:   itemID,
		AuthorID: author,
		Title:    title,
		Text:     text,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNoData
	}
	rec := rows[0]
	return &rec, nil
}

// CreateComment writes a comment on a content item. A nil parentID makes a
// root comment at level 0; otherwise the parent must exist on the same item
// and the new comment lands at parent.Level+1.
func (t *Threads) CreateComment(ctx context.Context, itemID int64, parentID *int64, text string) (*domain.CommentRecord, error) {
	author, err := t.identity.ID()
	if err != nil {
		return nil, err
	}

	level := 0
	if parentID != nil {
		rows, err := store.Fetch[domain.CommentRecord](ctx, t.store, collectionComments, store.Filters{
			store.Eq("id", strconv.FormatInt(*parentID, 10)),
			store.Limit(1),
		})
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, ErrParentNotFound
		}
		if rows[0].ItemID != itemID {
			return nil, ErrParentMismatch
		}
		level = rows[0].Level + 1
	}

	rows, err := store.Insert[domain.CommentRecord](ctx, t.store, collectionComments, domain.CommentRecord{
		ItemID:   itemID,
		AuthorID: author,
		Text:     text,
		ParentID: parentID,
		Level:    level,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNoData
	}
	rec := rows[0]
	return &rec, nil
}

// EditComment replaces a comment's text and marks it edited.
func (t *Threads) EditComment(ctx context.Context, commentID int64, text string) (*domain.CommentRecord, error) {
	rows, err := store.Patch[domain.CommentRecord](ctx, t.store, collectionComments,
		map[string]any{"text": text, "edited": true},
		store.Filters{store.Eq("id", strconv.FormatInt(commentID, 10))},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	rec := rows[0]
	return &rec, nil
}

// ListComments returns all comments on an item, oldest first.
func (t *Threads) ListComments(ctx context.Context, itemID int64) ([]domain.CommentRecord, error) {
	return store.Fetch[domain.CommentRecord](ctx, t.store, collectionComments, store.Filters{
		store.Eq("item_id", strconv.FormatInt(itemID, 10)),
		store.Order("created_at", false),
	})
}
