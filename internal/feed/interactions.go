package feed

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"feedsync/internal/core/domain"
	"feedsync/internal/core/ports"
	"feedsync/internal/store"
)

// Reconciler toggles named interaction kinds for the current device against
// one content item, keeping at most one record per (device, item, kind). It
// performs no recovery: store errors propagate unchanged so a later read
// reflects true server state.
type Reconciler struct {
	store    *store.Client
	identity ports.Identity
	log      *zap.Logger
}

// NewReconciler builds a Reconciler bound to the device identity provider.
func NewReconciler(st *store.Client, identity ports.Identity, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{store: st, identity: identity, log: log}
}

// Get returns the current record for (device, item, kind), or nil when no
// interaction exists yet.
func (r *Reconciler) Get(ctx context.Context, itemID int64, kind domain.InteractionKind) (*domain.InteractionRecord, error) {
	device, err := r.identity.ID()
	if err != nil {
		return nil, err
	}
	rows, err := store.Fetch[domain.InteractionRecord](ctx, r.store, collectionInteractions, store.Filters{
		store.Eq("user_id", device),
		store.Eq("item_id", strconv.FormatInt(itemID, 10)),
		store.Eq("kind", string(kind)),
		store.Limit(1),
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	rec := rows[0]
	return &rec, nil
}

// Toggle reads the current state and either creates the record active, or
// flips the active flag on the existing one. The read-then-write split keeps
// the create/update boundary explicit.
func (r *Reconciler) Toggle(ctx context.Context, itemID int64, kind domain.InteractionKind) (*domain.InteractionRecord, error) {
	current, err := r.Get(ctx, itemID, kind)
	if err != nil {
		return nil, err
	}

	if current == nil {
		device, err := r.identity.ID()
		if err != nil {
			return nil, err
		}
		rows, err := store.Insert[domain.InteractionRecord](ctx, r.store, collectionInteractions, domain.InteractionRecord{
			UserID: device,
			ItemID: itemID,
			Kind:   kind,
			Active: true,
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

	rows, err := store.Patch[domain.InteractionRecord](ctx, r.store, collectionInteractions,
		map[string]bool{"active": !current.Active},
		store.Filters{store.Eq("id", strconv.FormatInt(current.ID, 10))},
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

// AdjustEngagement moves one of an item's counters by delta, clamped at zero.
// Counters are otherwise server-owned; this is the only client-side path that
// touches them, and callers invoke it explicitly after a successful toggle.
func (r *Reconciler) AdjustEngagement(ctx context.Context, itemID int64, kind domain.InteractionKind, delta int) (*domain.ContentItem, error) {
	id := strconv.FormatInt(itemID, 10)
	rows, err := store.Fetch[domain.ContentItem](ctx, r.store, collectionItems, store.Filters{
		store.Eq("id", id),
		store.Limit(1),
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}

	column, current := counterFor(kind, rows[0])
	next := current + delta
	if next < 0 {
		next = 0
	}

	updated, err := store.Patch[domain.ContentItem](ctx, r.store, collectionItems,
		map[string]int{column: next},
		store.Filters{store.Eq("id", id)},
	)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, store.ErrNotFound
	}
	item := updated[0]
	return &item, nil
}

func counterFor(kind domain.InteractionKind, it domain.ContentItem) (string, int) {
	switch kind {
	case domain.KindLike:
		return "likes", it.Likes
	case domain.KindDislike:
		return "dislikes", it.Dislikes
	case domain.KindComment:
		return "comments", it.Comments
	case domain.KindDiscussion:
		return "discussions", it.Discussions
	default:
		return "bookmarks", it.Bookmarks
	}
}
