package domain

import (
	"context"
	"io"
)

// ListQuery carries the query parameters accepted by the manga collection
// endpoint.  Zero values are omitted from the request.
type ListQuery struct {
	Search   string
	Genre    string
	Status   string
	Type     string
	Ordering string
	Featured bool

	// Page-number pagination; used by the catalog view
	Page int
	// Limit/offset pagination; used by the home view strips
	Limit  int
	Offset int
}

// MangaPage is one slice of the manga collection.  Paginated reports whether
// the backend returned a count envelope; when false, Count is just the number
// of items received.
type MangaPage struct {
	Mangas    []Manga
	Count     int
	Paginated bool
}

// MangaDraft carries the fields submitted when creating or editing a manga.
// Image uploads are optional; nil readers are skipped.
type MangaDraft struct {
	Title        string
	Description  string
	Status       string
	Type         string
	ReleasedYear string
	Author       string
	Artist       string
	IsFeatured   bool
	Genres       []string
	CoverImage   *FileUpload
	BannerImage  *FileUpload
}

// FileUpload is a named file body for a multipart request
type FileUpload struct {
	Name string
	Body io.Reader
}

// ChapterDraft carries the fields submitted when creating a chapter
type ChapterDraft struct {
	Manga         int
	ChapterNumber string
	Pages         []FileUpload
}

// Analytics is the aggregate dashboard payload
type Analytics struct {
	TotalMangas   int             `json:"total_mangas"`
	TotalViews    int             `json:"total_views"`
	TotalChapters int             `json:"total_chapters"`
	ChartData     []DailyViewStat `json:"chart_data"`
	TopMangas     []TopMangaStat  `json:"top_mangas"`
}

// DailyViewStat is one day of aggregated view counts
type DailyViewStat struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// TopMangaStat is one row of the most-viewed ranking
type TopMangaStat struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Views      int    `json:"views"`
	CoverImage string `json:"cover_image"`
}

// AuthRepository exchanges credentials for tokens and resolves the current identity
type AuthRepository interface {
	// Token performs the credential exchange
	Token(ctx context.Context, username, password string) (*TokenPair, error)

	// Register creates a new account
	Register(ctx context.Context, username, email, password string) error

	// Profile fetches the identity attached to the current access token
	Profile(ctx context.Context) (*User, error)
}

// MangaRepository is the data access contract for the manga catalog
type MangaRepository interface {
	List(ctx context.Context, query ListQuery) (*MangaPage, error)
	Get(ctx context.Context, id int) (*Manga, error)
	Create(ctx context.Context, draft MangaDraft) (*Manga, error)
	Update(ctx context.Context, id int, draft MangaDraft) (*Manga, error)
	Delete(ctx context.Context, id int) error
}

// ChapterRepository is the data access contract for chapter detail and admin management
type ChapterRepository interface {
	Get(ctx context.Context, id int) (*Chapter, error)
	Create(ctx context.Context, draft ChapterDraft) (*Chapter, error)
	Delete(ctx context.Context, id int) error
}

// GenreRepository is the data access contract for genre tags
type GenreRepository interface {
	List(ctx context.Context) ([]Genre, error)
	Create(ctx context.Context, name string) (*Genre, error)
	Delete(ctx context.Context, id int) error
}

// CommentRepository is the data access contract for comment threads
type CommentRepository interface {
	// List fetches comments for a manga; chapterID of zero means manga-level comments
	List(ctx context.Context, mangaID, chapterID int) ([]Comment, error)
	Create(ctx context.Context, mangaID, chapterID int, name, content string) (*Comment, error)
	Delete(ctx context.Context, id int) error
}

// AccountRepository covers the per-user resources: bookmarks, ratings and
// backend-persisted reading history
type AccountRepository interface {
	Bookmarks(ctx context.Context) ([]Bookmark, error)
	AddBookmark(ctx context.Context, mangaID int) (*Bookmark, error)
	RemoveBookmark(ctx context.Context, bookmarkID int) error

	Ratings(ctx context.Context) ([]Rating, error)
	Rate(ctx context.Context, mangaID, score int) (*Rating, error)

	History(ctx context.Context) ([]HistoryEntry, error)
	UpsertHistory(ctx context.Context, mangaID, chapterID int) error
}

// AdminRepository covers the staff-only back-office endpoints
type AdminRepository interface {
	Users(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int) error
	ResetPassword(ctx context.Context, id int, newPassword string) error
	Analytics(ctx context.Context) (*Analytics, error)
}
