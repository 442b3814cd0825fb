package domain

import "time"

// MangaType is the publication origin of a series
type MangaType string

const (
	TypeManga  MangaType = "Manga"
	TypeManhwa MangaType = "Manhwa"
	TypeManhua MangaType = "Manhua"
)

// MangaStatus is the publication status of a series
type MangaStatus string

const (
	StatusOngoing   MangaStatus = "Ongoing"
	StatusCompleted MangaStatus = "Completed"
	StatusHiatus    MangaStatus = "Hiatus"
)

// Manga represents a series as served by the catalog endpoints.  The chapter
// list only carries summaries; page data requires a chapter detail fetch.
type Manga struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	CoverImage   string       `json:"cover_image"`
	BannerImage  string       `json:"banner_image"`
	Genres       []string     `json:"genres"`
	Status       MangaStatus  `json:"status"`
	Type         MangaType    `json:"type"`
	ReleasedYear string       `json:"released_year"`
	Author       string       `json:"author"`
	Artist       string       `json:"artist"`
	Views        int          `json:"views"`
	IsFeatured   bool         `json:"is_featured"`
	Rating       float64      `json:"rating"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Chapters     []ChapterRef `json:"chapters"`
}

// ChapterRef is the chapter summary embedded in a manga detail response
type ChapterRef struct {
	ID            int       `json:"id"`
	ChapterNumber string    `json:"chapter_number"`
	ReleasedAt    time.Time `json:"released_at"`
}

// Chapter is the full chapter detail including its ordered page image references
type Chapter struct {
	ID            int       `json:"id"`
	Manga         int       `json:"manga"`
	ChapterNumber string    `json:"chapter_number"`
	ReleasedAt    time.Time `json:"released_at"`
	Pages         []string  `json:"pages"`
}

// Genre is a tag attached to mangas.  Names are unique site-wide.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
