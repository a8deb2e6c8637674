package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_FreshnessBoundary(t *testing.T) {
	storedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := storedAt
	clock := func() time.Time { return now }

	c, err := New(filepath.Join(t.TempDir(), "cache.json"), 30*time.Minute, clock)
	require.NoError(t, err)
	require.NoError(t, c.Put(CategoryKey("technology"), []byte(`{"status":"success"}`)))

	now = storedAt.Add(29*time.Minute + 59*time.Second)
	got, ok := c.Get(CategoryKey("technology"))
	require.True(t, ok)
	assert.Equal(t, []byte(`{"status":"success"}`), got)

	now = storedAt.Add(30*time.Minute + 1*time.Second)
	_, ok = c.Get(CategoryKey("technology"))
	assert.False(t, ok)
}

func TestGet_MissingKey(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache.json"), 0, nil)
	require.NoError(t, err)
	_, ok := c.Get(CategoryKey("sports"))
	assert.False(t, ok)
}

func TestPut_Overwrites(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache.json"), time.Hour, nil)
	require.NoError(t, err)
	require.NoError(t, c.Put("category:top", []byte("old")))
	require.NoError(t, c.Put("category:top", []byte("new")))

	got, ok := c.Get("category:top")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestCategoriesAgeIndependently(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	clock := func() time.Time { return now }

	c, err := New(filepath.Join(t.TempDir(), "cache.json"), 30*time.Minute, clock)
	require.NoError(t, err)
	require.NoError(t, c.Put(CategoryKey("top"), []byte("a")))

	now = base.Add(20 * time.Minute)
	require.NoError(t, c.Put(CategoryKey("science"), []byte("b")))

	now = base.Add(40 * time.Minute)
	_, ok := c.Get(CategoryKey("top"))
	assert.False(t, ok)
	_, ok = c.Get(CategoryKey("science"))
	assert.True(t, ok)
}

func TestSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c, err := New(path, time.Hour, nil)
	require.NoError(t, err)
	require.NoError(t, c.Put(CategoryKey("business"), []byte("payload")))

	reloaded, err := New(path, time.Hour, nil)
	require.NoError(t, err)
	got, ok := reloaded.Get(CategoryKey("business"))
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)
}
