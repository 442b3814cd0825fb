package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.yaml"))
	require.NoError(t, err)
	return store
}

func TestRecordOrdersMostRecentFirst(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Record(Entry{MangaID: 1, MangaTitle: "Berserk", ChapterNumber: "1"}))
	require.NoError(t, store.Record(Entry{MangaID: 2, MangaTitle: "Vagabond", ChapterNumber: "5"}))

	entries := store.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Vagabond", entries[0].MangaTitle)
	assert.Equal(t, "Berserk", entries[1].MangaTitle)
}

func TestRecordDeduplicatesByManga(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Record(Entry{MangaID: 1, MangaTitle: "Berserk", ChapterNumber: "1"}))
	require.NoError(t, store.Record(Entry{MangaID: 2, MangaTitle: "Vagabond", ChapterNumber: "5"}))
	require.NoError(t, store.Record(Entry{MangaID: 1, MangaTitle: "Berserk", ChapterNumber: "2"}))

	entries := store.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Berserk", entries[0].MangaTitle)
	assert.Equal(t, "2", entries[0].ChapterNumber)
	assert.Equal(t, "Vagabond", entries[1].MangaTitle)
}

func TestRecordEnforcesBound(t *testing.T) {
	store := newTestStore(t)

	for i := 1; i <= maxEntries+3; i++ {
		require.NoError(t, store.Record(Entry{MangaID: i, MangaTitle: fmt.Sprintf("Manga %d", i)}))
	}

	entries := store.Entries()
	require.Len(t, entries, maxEntries)
	assert.Equal(t, maxEntries+3, entries[0].MangaID)
	assert.Equal(t, 4, entries[len(entries)-1].MangaID)
}

func TestHistorySurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")

	store, err := Open(path)
	require.NoError(t, err)

	readAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(Entry{MangaID: 1, MangaTitle: "Berserk", ChapterID: 7, ChapterNumber: "363", ReadAt: readAt}))

	reopened, err := Open(path)
	require.NoError(t, err)

	entries := reopened.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Berserk", entries[0].MangaTitle)
	assert.Equal(t, 7, entries[0].ChapterID)
	assert.True(t, entries[0].ReadAt.Equal(readAt))
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Record(Entry{MangaID: 1, MangaTitle: "Berserk"}))
	require.NoError(t, store.Clear())
	assert.Empty(t, store.Entries())
}

func TestEntriesReturnsCopy(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Record(Entry{MangaID: 1, MangaTitle: "Berserk"}))

	entries := store.Entries()
	entries[0].MangaTitle = "mutated"

	assert.Equal(t, "Berserk", store.Entries()[0].MangaTitle)
}
