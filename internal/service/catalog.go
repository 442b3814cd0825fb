package service

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
)

// PageSize matches the backend's pagination size for the manga list
const PageSize = 20

const (
	latestStripLimit  = 12
	popularStripLimit = 6
)

// Filters is the user-selected catalog filter state
type Filters struct {
	Search   string
	Genre    string
	Status   string
	Type     string
	Ordering string
}

// CatalogPage is one page of catalog results together with the pagination
// facts needed to render the pager.
type CatalogPage struct {
	Mangas     []domain.Manga
	Page       int
	TotalPages int
	Total      int
}

// Catalog wraps catalog browsing: filtered page fetches, the home strips and
// the genre list.  It also issues sequence numbers so that a slow response
// from an abandoned filter state can be recognised and discarded instead of
// clobbering newer results.
type Catalog struct {
	mangas domain.MangaRepository
	genres domain.GenreRepository

	seq atomic.Uint64
}

func NewCatalog(mangas domain.MangaRepository, genres domain.GenreRepository) *Catalog {
	return &Catalog{
		mangas: mangas,
		genres: genres,
	}
}

// NextSeq stamps a new fetch.  Only the response carrying the latest stamp
// may be applied.
func (c *Catalog) NextSeq() uint64 {
	return c.seq.Add(1)
}

// Stale reports whether a response stamped with seq has been superseded
func (c *Catalog) Stale(seq uint64) bool {
	return seq != c.seq.Load()
}

// OrderingField translates a user-facing ordering token into the backend's
// ordering parameter.  Unknown tokens fall back to recently updated.
func OrderingField(token string) string {
	switch token {
	case "latest":
		return "-created_at"
	case "popular":
		return "-views"
	case "title":
		return "title"
	case "titlereverse":
		return "-title"
	case "update", "":
		return "-updated_at"
	}
	return "-updated_at"
}

// FetchPage fetches one filtered catalog page.  The genre filter is applied
// server-side; when the backend answers with an unfiltered bare collection
// the filter is reapplied locally so the result is correct either way.
func (c *Catalog) FetchPage(ctx context.Context, filters Filters, page int) (*CatalogPage, error) {
	if page < 1 {
		page = 1
	}

	result, err := c.mangas.List(ctx, domain.ListQuery{
		Search:   filters.Search,
		Genre:    filters.Genre,
		Status:   filters.Status,
		Type:     filters.Type,
		Ordering: OrderingField(filters.Ordering),
		Page:     page,
	})
	if err != nil {
		return nil, err
	}

	mangas := result.Mangas
	total := result.Count
	if !result.Paginated && filters.Genre != "" {
		mangas = FilterByGenre(mangas, filters.Genre)
		total = len(mangas)
	}

	log.Debug("Fetched catalog page", "page", page, "results", len(mangas), "total", total)
	return &CatalogPage{
		Mangas:     mangas,
		Page:       page,
		TotalPages: totalPages(total),
		Total:      total,
	}, nil
}

// StripPage is one page of a home screen strip.  Each strip paginates
// independently with its own limit.
type StripPage struct {
	Mangas     []domain.Manga
	Page       int
	TotalPages int
}

// FetchLatest returns one page of the home screen's recently added strip
func (c *Catalog) FetchLatest(ctx context.Context, page int) (*StripPage, error) {
	return c.fetchStrip(ctx, "-created_at", latestStripLimit, page)
}

// FetchPopular returns one page of the home screen's most viewed strip
func (c *Catalog) FetchPopular(ctx context.Context, page int) (*StripPage, error) {
	return c.fetchStrip(ctx, "-views", popularStripLimit, page)
}

func (c *Catalog) fetchStrip(ctx context.Context, ordering string, limit, page int) (*StripPage, error) {
	if page < 1 {
		page = 1
	}

	result, err := c.mangas.List(ctx, domain.ListQuery{
		Ordering: ordering,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	total := result.Count
	if !result.Paginated {
		total = len(result.Mangas)
	}

	return &StripPage{
		Mangas:     result.Mangas,
		Page:       page,
		TotalPages: pagesFor(total, limit),
	}, nil
}

// FetchFeatured returns the curated spotlight titles
func (c *Catalog) FetchFeatured(ctx context.Context) ([]domain.Manga, error) {
	result, err := c.mangas.List(ctx, domain.ListQuery{Featured: true})
	if err != nil {
		return nil, err
	}
	return result.Mangas, nil
}

// Get returns one manga with its chapter list
func (c *Catalog) Get(ctx context.Context, id int) (*domain.Manga, error) {
	return c.mangas.Get(ctx, id)
}

// Genres returns the full genre list for the filter menu
func (c *Catalog) Genres(ctx context.Context) ([]domain.Genre, error) {
	return c.genres.List(ctx)
}

// FilterByGenre keeps the mangas tagged with the named genre.  Matching is
// case-insensitive, and a manga's type counts as a tag so that "Manhwa"
// behaves as a genre the way the catalog presents it.
func FilterByGenre(mangas []domain.Manga, genre string) []domain.Manga {
	var out []domain.Manga
	for _, manga := range mangas {
		if mangaHasGenre(manga, genre) {
			out = append(out, manga)
		}
	}
	return out
}

func mangaHasGenre(manga domain.Manga, genre string) bool {
	if strings.EqualFold(string(manga.Type), genre) {
		return true
	}
	for _, tag := range manga.Genres {
		if strings.EqualFold(tag, genre) {
			return true
		}
	}
	return false
}

// totalPages is a ceiling division by PageSize with a floor of one page
func totalPages(total int) int {
	return pagesFor(total, PageSize)
}

// pagesFor is a ceiling division with a floor of one page
func pagesFor(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
