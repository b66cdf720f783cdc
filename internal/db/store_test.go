package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "arctui.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestStore_SearchHistoryRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSearch(ctx, "from:alice"))
	require.NoError(t, store.SaveSearch(ctx, "has:attachment"))

	history, err := store.SearchHistory(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Contains(t, history, "from:alice")
	assert.Contains(t, history, "has:attachment")
}

func TestStore_SaveSearch_DeduplicatesQueries(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSearch(ctx, "from:alice"))
	require.NoError(t, store.SaveSearch(ctx, "from:alice"))

	history, err := store.SearchHistory(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"from:alice"}, history)
}

func TestStore_SaveSearch_RejectsEmpty(t *testing.T) {
	store := openTestStore(t)
	assert.Error(t, store.SaveSearch(context.Background(), "   "))
}

func TestStore_SearchHistory_Limit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSearch(ctx, "one"))
	require.NoError(t, store.SaveSearch(ctx, "two"))
	require.NoError(t, store.SaveSearch(ctx, "three"))

	history, err := store.SearchHistory(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestStore_RecentTagsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.TouchTag(ctx, "finance/invoices"))
	require.NoError(t, store.TouchTag(ctx, "work"))
	require.NoError(t, store.TouchTag(ctx, "finance/invoices"))

	tags, err := store.RecentTags(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Contains(t, tags, "work")
	assert.Contains(t, tags, "finance/invoices")
}

func TestStore_TouchTag_RejectsEmpty(t *testing.T) {
	store := openTestStore(t)
	assert.Error(t, store.TouchTag(context.Background(), ""))
}
