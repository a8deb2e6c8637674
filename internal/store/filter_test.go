package store

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters_Encode(t *testing.T) {
	f := Filters{
		Eq("origin", "bbc"),
		In("source_url", "a", "b", "c"),
		Contains("tags", "tech", "ai"),
		ILike("title", "rocket"),
		Order("published_at", true),
		Limit(5),
		Offset(10),
		Select("id", "title"),
	}

	q, err := url.ParseQuery(f.Encode())
	require.NoError(t, err)

	assert.Equal(t, "eq.bbc", q.Get("origin"))
	assert.Equal(t, "in.(a,b,c)", q.Get("source_url"))
	assert.Equal(t, "cs.{tech,ai}", q.Get("tags"))
	assert.Equal(t, "ilike.*rocket*", q.Get("title"))
	assert.Equal(t, "published_at.desc", q.Get("order"))
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "10", q.Get("offset"))
	assert.Equal(t, "id,title", q.Get("select"))
}

func TestFilters_Or(t *testing.T) {
	f := Filters{Or(Eq("likes", "0"), Eq("dislikes", "0"))}
	q, err := url.ParseQuery(f.Encode())
	require.NoError(t, err)
	assert.Equal(t, "(likes.eq.0,dislikes.eq.0)", q.Get("or"))
}

func TestFilters_OrderAscending(t *testing.T) {
	q, err := url.ParseQuery(Filters{Order("created_at", false)}.Encode())
	require.NoError(t, err)
	assert.Equal(t, "created_at.asc", q.Get("order"))
}
