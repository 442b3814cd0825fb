package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/history"
)

func testManga() *domain.Manga {
	return &domain.Manga{
		ID:    7,
		Title: "Berserk",
		Chapters: []domain.ChapterRef{
			{ID: 30, ChapterNumber: "3"},
			{ID: 10, ChapterNumber: "1"},
			{ID: 20, ChapterNumber: "2"},
		},
	}
}

func newTestReader(t *testing.T, mangas *fakeMangaRepo, chapters *fakeChapterRepo, account *fakeAccountRepo, identity *fakeIdentity) *Reader {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.yaml"))
	require.NoError(t, err)
	return NewReader(mangas, chapters, account, store, identity)
}

func TestResolve(t *testing.T) {
	mangas := &fakeMangaRepo{manga: testManga()}
	chapters := &fakeChapterRepo{chapter: &domain.Chapter{
		ID:            20,
		Manga:         7,
		ChapterNumber: "2",
		Pages:         []string{"/media/p1.jpg", "/media/p2.jpg"},
	}}
	reader := newTestReader(t, mangas, chapters, &fakeAccountRepo{}, &fakeIdentity{})

	view, err := reader.Resolve(context.Background(), 7, "2")
	require.NoError(t, err)

	assert.Equal(t, "Berserk", view.Manga.Title)
	assert.Equal(t, 20, view.Chapter.ID)
	assert.Len(t, view.Chapter.Pages, 2)

	// Neighbours follow numeric chapter order, not response order
	require.NotNil(t, view.Prev)
	assert.Equal(t, "1", view.Prev.ChapterNumber)
	require.NotNil(t, view.Next)
	assert.Equal(t, "3", view.Next.ChapterNumber)
}

func TestResolveBoundaryChapters(t *testing.T) {
	mangas := &fakeMangaRepo{manga: testManga()}

	t.Run("FirstHasNoPrev", func(t *testing.T) {
		chapters := &fakeChapterRepo{chapter: &domain.Chapter{ID: 10, ChapterNumber: "1"}}
		reader := newTestReader(t, mangas, chapters, &fakeAccountRepo{}, &fakeIdentity{})

		view, err := reader.Resolve(context.Background(), 7, "1")
		require.NoError(t, err)
		assert.Nil(t, view.Prev)
		require.NotNil(t, view.Next)
		assert.Equal(t, "2", view.Next.ChapterNumber)
	})

	t.Run("LastHasNoNext", func(t *testing.T) {
		chapters := &fakeChapterRepo{chapter: &domain.Chapter{ID: 30, ChapterNumber: "3"}}
		reader := newTestReader(t, mangas, chapters, &fakeAccountRepo{}, &fakeIdentity{})

		view, err := reader.Resolve(context.Background(), 7, "3")
		require.NoError(t, err)
		require.NotNil(t, view.Prev)
		assert.Equal(t, "2", view.Prev.ChapterNumber)
		assert.Nil(t, view.Next)
	})
}

func TestResolveUnknownChapter(t *testing.T) {
	reader := newTestReader(t, &fakeMangaRepo{manga: testManga()}, &fakeChapterRepo{}, &fakeAccountRepo{}, &fakeIdentity{})

	_, err := reader.Resolve(context.Background(), 7, "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no chapter")
}

func TestRecordProgressLoggedOut(t *testing.T) {
	account := &fakeAccountRepo{}
	mangas := &fakeMangaRepo{manga: testManga()}
	chapters := &fakeChapterRepo{chapter: &domain.Chapter{ID: 20, ChapterNumber: "2"}}
	reader := newTestReader(t, mangas, chapters, account, &fakeIdentity{loggedIn: false})

	view, err := reader.Resolve(context.Background(), 7, "2")
	require.NoError(t, err)
	reader.RecordProgress(context.Background(), view)

	entries := reader.history.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Berserk", entries[0].MangaTitle)
	assert.Equal(t, "2", entries[0].ChapterNumber)

	assert.Empty(t, account.synced)
}

func TestRecordProgressLoggedIn(t *testing.T) {
	account := &fakeAccountRepo{}
	mangas := &fakeMangaRepo{manga: testManga()}
	chapters := &fakeChapterRepo{chapter: &domain.Chapter{ID: 20, ChapterNumber: "2"}}
	reader := newTestReader(t, mangas, chapters, account, &fakeIdentity{loggedIn: true})

	view, err := reader.Resolve(context.Background(), 7, "2")
	require.NoError(t, err)
	reader.RecordProgress(context.Background(), view)

	require.Len(t, account.synced, 1)
	assert.Equal(t, [2]int{7, 20}, account.synced[0])
}

func TestLastRead(t *testing.T) {
	mangas := &fakeMangaRepo{manga: testManga()}
	chapters := &fakeChapterRepo{chapter: &domain.Chapter{ID: 20, ChapterNumber: "2"}}
	reader := newTestReader(t, mangas, chapters, &fakeAccountRepo{}, &fakeIdentity{})

	assert.Nil(t, reader.LastRead(7))

	view, err := reader.Resolve(context.Background(), 7, "2")
	require.NoError(t, err)
	reader.RecordProgress(context.Background(), view)

	last := reader.LastRead(7)
	require.NotNil(t, last)
	assert.Equal(t, "2", last.ChapterNumber)
	assert.Nil(t, reader.LastRead(99))
}

func TestMergeHistory(t *testing.T) {
	now := time.Now()
	backend := []domain.HistoryEntry{
		{ID: 1, Manga: 7, MangaTitle: "Berserk", Chapter: 20, ChapterNumber: "2", LastReadAt: now},
	}
	local := []history.Entry{
		{MangaID: 7, MangaTitle: "Berserk", ChapterID: 30, ChapterNumber: "3", ReadAt: now},
		{MangaID: 9, MangaTitle: "Monster", ChapterID: 41, ChapterNumber: "1", ReadAt: now},
	}

	merged := MergeHistory(backend, local)

	// Backend wins for manga 7, the local-only manga 9 is appended
	require.Len(t, merged, 2)
	assert.Equal(t, "2", merged[0].ChapterNumber)
	assert.Equal(t, 9, merged[1].Manga)
	assert.Equal(t, "Monster", merged[1].MangaTitle)
	assert.Equal(t, 41, merged[1].Chapter)
}

func TestMergeHistoryGuest(t *testing.T) {
	local := []history.Entry{
		{MangaID: 9, MangaTitle: "Monster", ChapterID: 41, ChapterNumber: "1", ReadAt: time.Now()},
	}

	merged := MergeHistory(nil, local)

	require.Len(t, merged, 1)
	assert.Equal(t, "Monster", merged[0].MangaTitle)
}

func TestRecordProgressSwallowsSyncFailure(t *testing.T) {
	account := &fakeAccountRepo{syncErr: errors.New("backend down")}
	mangas := &fakeMangaRepo{manga: testManga()}
	chapters := &fakeChapterRepo{chapter: &domain.Chapter{ID: 20, ChapterNumber: "2"}}
	reader := newTestReader(t, mangas, chapters, account, &fakeIdentity{loggedIn: true})

	view, err := reader.Resolve(context.Background(), 7, "2")
	require.NoError(t, err)
	reader.RecordProgress(context.Background(), view)

	// Local history still recorded despite the failed sync
	assert.Len(t, reader.history.Entries(), 1)
}
