package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomu-dev/yomu/internal/domain"
)

func TestOrderingField(t *testing.T) {
	assert.Equal(t, "-created_at", OrderingField("latest"))
	assert.Equal(t, "-updated_at", OrderingField("update"))
	assert.Equal(t, "-views", OrderingField("popular"))
	assert.Equal(t, "title", OrderingField("title"))
	assert.Equal(t, "-title", OrderingField("titlereverse"))
	assert.Equal(t, "-updated_at", OrderingField(""))
	assert.Equal(t, "-updated_at", OrderingField("bogus"))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, totalPages(0))
	assert.Equal(t, 1, totalPages(1))
	assert.Equal(t, 1, totalPages(PageSize))
	assert.Equal(t, 2, totalPages(PageSize+1))
	assert.Equal(t, 3, totalPages(42))
}

func TestFetchPage(t *testing.T) {
	repo := &fakeMangaRepo{
		page: &domain.MangaPage{
			Mangas:    []domain.Manga{{ID: 1, Title: "Berserk"}},
			Count:     42,
			Paginated: true,
		},
	}
	catalog := NewCatalog(repo, &fakeGenreRepo{})

	page, err := catalog.FetchPage(context.Background(), Filters{
		Search:   "ber",
		Genre:    "Action",
		Ordering: "popular",
	}, 2)
	require.NoError(t, err)

	assert.Equal(t, "ber", repo.lastQuery.Search)
	assert.Equal(t, "Action", repo.lastQuery.Genre)
	assert.Equal(t, "-views", repo.lastQuery.Ordering)
	assert.Equal(t, 2, repo.lastQuery.Page)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 42, page.Total)
	assert.Equal(t, 3, page.TotalPages)
}

func TestFetchPageClampsPage(t *testing.T) {
	repo := &fakeMangaRepo{page: &domain.MangaPage{Paginated: true}}
	catalog := NewCatalog(repo, &fakeGenreRepo{})

	_, err := catalog.FetchPage(context.Background(), Filters{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastQuery.Page)
}

func TestFetchPageLocalGenreFallback(t *testing.T) {
	// An unpaginated response means the backend ignored the filters
	repo := &fakeMangaRepo{
		page: &domain.MangaPage{
			Mangas: []domain.Manga{
				{ID: 1, Title: "Berserk", Genres: []string{"Action", "Drama"}},
				{ID: 2, Title: "Yotsuba", Genres: []string{"Comedy"}},
			},
			Count:     2,
			Paginated: false,
		},
	}
	catalog := NewCatalog(repo, &fakeGenreRepo{})

	page, err := catalog.FetchPage(context.Background(), Filters{Genre: "action"}, 1)
	require.NoError(t, err)
	require.Len(t, page.Mangas, 1)
	assert.Equal(t, "Berserk", page.Mangas[0].Title)
	assert.Equal(t, 1, page.Total)
}

func TestFilterByGenre(t *testing.T) {
	mangas := []domain.Manga{
		{ID: 1, Genres: []string{"Action"}},
		{ID: 2, Genres: []string{"Romance"}, Type: domain.TypeManhwa},
		{ID: 3, Genres: []string{"action", "Horror"}},
	}

	t.Run("CaseInsensitiveTagMatch", func(t *testing.T) {
		filtered := FilterByGenre(mangas, "ACTION")
		require.Len(t, filtered, 2)
		assert.Equal(t, 1, filtered[0].ID)
		assert.Equal(t, 3, filtered[1].ID)
	})

	t.Run("TypeCountsAsTag", func(t *testing.T) {
		filtered := FilterByGenre(mangas, "Manhwa")
		require.Len(t, filtered, 1)
		assert.Equal(t, 2, filtered[0].ID)
	})

	t.Run("NoMatches", func(t *testing.T) {
		assert.Empty(t, FilterByGenre(mangas, "Isekai"))
	})
}

func TestHomeStrips(t *testing.T) {
	repo := &fakeMangaRepo{page: &domain.MangaPage{Mangas: []domain.Manga{{ID: 1}}}}
	catalog := NewCatalog(repo, &fakeGenreRepo{})

	t.Run("Latest", func(t *testing.T) {
		_, err := catalog.FetchLatest(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "-created_at", repo.lastQuery.Ordering)
		assert.Equal(t, latestStripLimit, repo.lastQuery.Limit)
		assert.Equal(t, 0, repo.lastQuery.Offset)
	})

	t.Run("Popular", func(t *testing.T) {
		_, err := catalog.FetchPopular(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "-views", repo.lastQuery.Ordering)
		assert.Equal(t, popularStripLimit, repo.lastQuery.Limit)
	})

	t.Run("Featured", func(t *testing.T) {
		_, err := catalog.FetchFeatured(context.Background())
		require.NoError(t, err)
		assert.True(t, repo.lastQuery.Featured)
	})
}

func TestStripPagination(t *testing.T) {
	t.Run("PopularPageCount", func(t *testing.T) {
		repo := &fakeMangaRepo{page: &domain.MangaPage{
			Mangas:    make([]domain.Manga, popularStripLimit),
			Count:     42,
			Paginated: true,
		}}
		catalog := NewCatalog(repo, &fakeGenreRepo{})

		strip, err := catalog.FetchPopular(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 1, strip.Page)
		assert.Equal(t, 7, strip.TotalPages)
	})

	t.Run("LaterPageUsesOffset", func(t *testing.T) {
		repo := &fakeMangaRepo{page: &domain.MangaPage{Paginated: true, Count: 30}}
		catalog := NewCatalog(repo, &fakeGenreRepo{})

		strip, err := catalog.FetchLatest(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, latestStripLimit, repo.lastQuery.Offset)
		assert.Equal(t, 2, strip.Page)
	})

	t.Run("BareArrayIsOnePage", func(t *testing.T) {
		repo := &fakeMangaRepo{page: &domain.MangaPage{
			Mangas:    []domain.Manga{{ID: 1}, {ID: 2}},
			Paginated: false,
		}}
		catalog := NewCatalog(repo, &fakeGenreRepo{})

		strip, err := catalog.FetchPopular(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 1, strip.TotalPages)
	})

	t.Run("PageClampsToOne", func(t *testing.T) {
		repo := &fakeMangaRepo{page: &domain.MangaPage{Paginated: true}}
		catalog := NewCatalog(repo, &fakeGenreRepo{})

		strip, err := catalog.FetchLatest(context.Background(), 0)
		require.NoError(t, err)
		assert.Equal(t, 0, repo.lastQuery.Offset)
		assert.Equal(t, 1, strip.Page)
	})
}

func TestSequenceStamps(t *testing.T) {
	catalog := NewCatalog(&fakeMangaRepo{}, &fakeGenreRepo{})

	first := catalog.NextSeq()
	assert.False(t, catalog.Stale(first))

	second := catalog.NextSeq()
	assert.True(t, catalog.Stale(first))
	assert.False(t, catalog.Stale(second))
}
