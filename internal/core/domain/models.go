package domain

import "time"

// ContentItem is a persisted article row. The natural key is SourceURL; items
// scraped from sources without a stable link leave it empty and are never
// deduplicated. Counters are maintained server-side and only moved through
// explicit counter patches.
type ContentItem struct {
	ID          int64      `json:"id,omitempty"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	ImageURL    string     `json:"image_url,omitempty"`
	SourceURL   string     `json:"source_url,omitempty"`
	Origin      string     `json:"origin"`
	Tags        []string   `json:"tags"`
	Likes       int        `json:"likes"`
	Dislikes    int        `json:"dislikes"`
	Comments    int        `json:"comments"`
	Discussions int        `json:"discussions"`
	Bookmarks   int        `json:"bookmarks"`
	PublishedAt time.Time  `json:"published_at"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// InteractionKind names a toggleable per-device interaction.
type InteractionKind string

const (
	KindLike       InteractionKind = "like"
	KindDislike    InteractionKind = "dislike"
	KindBookmark   InteractionKind = "bookmark"
	KindComment    InteractionKind = "comment"
	KindDiscussion InteractionKind = "discussion"
)

// InteractionRecord holds the active flag for one (device, item, kind) triple.
// At most one row exists per triple; toggling flips Active in place.
type InteractionRecord struct {
	ID        int64           `json:"id,omitempty"`
	UserID    string          `json:"user_id"`
	ItemID    int64           `json:"item_id"`
	Kind      InteractionKind `json:"kind"`
	Active    bool            `json:"active"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// DiscussionRecord is a user-opened thread attached to a content item.
type DiscussionRecord struct {
	ID        int64      `json:"id,omitempty"`
	ItemID    int64      `json:"item_id"`
	AuthorID  string     `json:"author_id"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CommentRecord is a possibly-nested comment. Level is 0 for roots and
// parent.Level+1 otherwise; ParentID must reference a comment on the same
// content item.
type CommentRecord struct {
	ID        int64      `json:"id,omitempty"`
	ItemID    int64      `json:"item_id"`
	AuthorID  string     `json:"author_id"`
	Text      string     `json:"text"`
	ParentID  *int64     `json:"parent_id,omitempty"`
	Level     int        `json:"level"`
	Edited    bool       `json:"edited"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// SourceArticle is one candidate record from the external search endpoint,
// before image filtering and mapping into a ContentItem.
type SourceArticle struct {
	Title       string
	Description string
	Link        string
	ImageURL    string
	SourceID    string
	PublishedAt time.Time
	Categories  []string
}

// Category drives one ingestion pass: its search terms go to the external
// source and its slug namespaces the cache key. Digest categories keep only
// the first DigestSize items after filtering.
type Category struct {
	Slug   string
	Query  string
	Digest bool
}

// DigestSize caps digest-style categories after image filtering.
const DigestSize = 10

// DefaultCategories is the stock category set the refresh loop walks.
var DefaultCategories = []Category{
	{Slug: "top", Query: "breaking news", Digest: true},
	{Slug: "technology", Query: "technology"},
	{Slug: "business", Query: "business economy"},
	{Slug: "science", Query: "science research"},
	{Slug: "sports", Query: "sports"},
}
