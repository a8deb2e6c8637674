package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedsync/internal/core/domain"
	"feedsync/internal/store"
)

type staticIdentity string

func (s staticIdentity) ID() (string, error) { return string(s), nil }

// interactionStore fakes the interactions and articles collections with just
// enough filter handling for the reconciler's queries.
type interactionStore struct {
	mu      sync.Mutex
	nextID  int64
	records []domain.InteractionRecord
	items   map[int64]domain.ContentItem
}

func eqValue(r *http.Request, column string) string {
	return strings.TrimPrefix(r.URL.Query().Get(column), "eq.")
}

func (f *interactionStore) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch {
		case r.URL.Path == "/interactions" && r.Method == http.MethodGet:
			user, item, kind := eqValue(r, "user_id"), eqValue(r, "item_id"), eqValue(r, "kind")
			out := []domain.InteractionRecord{}
			for _, rec := range f.records {
				if rec.UserID == user && strconv.FormatInt(rec.ItemID, 10) == item && string(rec.Kind) == kind {
					out = append(out, rec)
				}
			}
			json.NewEncoder(w).Encode(out)
		case r.URL.Path == "/interactions" && r.Method == http.MethodPost:
			var rec domain.InteractionRecord
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
			f.nextID++
			rec.ID = f.nextID
			now := time.Now().UTC()
			rec.CreatedAt, rec.UpdatedAt = &now, &now
			f.records = append(f.records, rec)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode([]domain.InteractionRecord{rec})
		case r.URL.Path == "/interactions" && r.Method == http.MethodPatch:
			id, err := strconv.ParseInt(eqValue(r, "id"), 10, 64)
			require.NoError(t, err)
			var body map[string]bool
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			out := []domain.InteractionRecord{}
			for i := range f.records {
				if f.records[i].ID == id {
					f.records[i].Active = body["active"]
					now := time.Now().UTC()
					f.records[i].UpdatedAt = &now
					out = append(out, f.records[i])
				}
			}
			json.NewEncoder(w).Encode(out)
		case r.URL.Path == "/articles" && r.Method == http.MethodGet:
			id, _ := strconv.ParseInt(eqValue(r, "id"), 10, 64)
			out := []domain.ContentItem{}
			if it, ok := f.items[id]; ok {
				out = append(out, it)
			}
			json.NewEncoder(w).Encode(out)
		case r.URL.Path == "/articles" && r.Method == http.MethodPatch:
			id, _ := strconv.ParseInt(eqValue(r, "id"), 10, 64)
			var body map[string]int
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			it, ok := f.items[id]
			if !ok {
				json.NewEncoder(w).Encode([]domain.ContentItem{})
				return
			}
			for column, v := range body {
				switch column {
				case "likes":
					it.Likes = v
				case "dislikes":
					it.Dislikes = v
				case "comments":
					it.Comments = v
				case "discussions":
					it.Discussions = v
				case "bookmarks":
					it.Bookmarks = v
				}
			}
			f.items[id] = it
			json.NewEncoder(w).Encode([]domain.ContentItem{it})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}
}

func newReconciler(t *testing.T, f *interactionStore) *Reconciler {
	t.Helper()
	s := httptest.NewServer(f.handler(t))
	t.Cleanup(s.Close)
	return NewReconciler(store.New(s.URL, "k", 2*time.Second, nil), staticIdentity("device-x"), nil)
}

func TestToggle_Lifecycle(t *testing.T) {
	f := &interactionStore{}
	r := newReconciler(t, f)
	ctx := context.Background()

	// No record yet.
	rec, err := r.Get(ctx, 42, domain.KindBookmark)
	require.NoError(t, err)
	assert.Nil(t, rec)

	// First toggle creates active.
	rec, err = r.Toggle(ctx, 42, domain.KindBookmark)
	require.NoError(t, err)
	assert.True(t, rec.Active)
	assert.Equal(t, "device-x", rec.UserID)

	rec, err = r.Get(ctx, 42, domain.KindBookmark)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Active)

	// Second toggle patches the same row inactive.
	rec, err = r.Toggle(ctx, 42, domain.KindBookmark)
	require.NoError(t, err)
	assert.False(t, rec.Active)
	assert.Len(t, f.records, 1)

	rec, err = r.Get(ctx, 42, domain.KindBookmark)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.Active)

	// Third toggle reactivates, still one row.
	rec, err = r.Toggle(ctx, 42, domain.KindBookmark)
	require.NoError(t, err)
	assert.True(t, rec.Active)
	assert.Len(t, f.records, 1)
}

func TestToggle_KindsIndependent(t *testing.T) {
	f := &interactionStore{}
	r := newReconciler(t, f)
	ctx := context.Background()

	_, err := r.Toggle(ctx, 42, domain.KindLike)
	require.NoError(t, err)
	_, err = r.Toggle(ctx, 42, domain.KindBookmark)
	require.NoError(t, err)

	assert.Len(t, f.records, 2)
	like, err := r.Get(ctx, 42, domain.KindLike)
	require.NoError(t, err)
	assert.True(t, like.Active)
}

func TestToggle_PropagatesStoreErrors(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"down"}`, http.StatusServiceUnavailable)
	}))
	defer s.Close()

	r := NewReconciler(store.New(s.URL, "k", 2*time.Second, nil), staticIdentity("device-x"), nil)
	_, err := r.Toggle(context.Background(), 42, domain.KindLike)
	var se *store.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)
}

func TestAdjustEngagement(t *testing.T) {
	f := &interactionStore{items: map[int64]domain.ContentItem{
		42: {ID: 42, Title: "story", Likes: 2},
	}}
	r := newReconciler(t, f)
	ctx := context.Background()

	it, err := r.AdjustEngagement(ctx, 42, domain.KindLike, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, it.Likes)

	it, err = r.AdjustEngagement(ctx, 42, domain.KindLike, -1)
	require.NoError(t, err)
	assert.Equal(t, 2, it.Likes)
}

func TestAdjustEngagement_ClampsAtZero(t *testing.T) {
	f := &interactionStore{items: map[int64]domain.ContentItem{
		42: {ID: 42, Title: "story"},
	}}
	r := newReconciler(t, f)

	it, err := r.AdjustEngagement(context.Background(), 42, domain.KindDislike, -1)
	require.NoError(t, err)
	assert.Zero(t, it.Dislikes)
}

func TestAdjustEngagement_MissingItem(t *testing.T) {
	f := &interactionStore{items: map[int64]domain.ContentItem{}}
	r := newReconciler(t, f)

	_, err := r.AdjustEngagement(context.Background(), 999, domain.KindLike, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
