package domain

import "time"

// User is the identity of the logged in account
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

// TokenPair is the result of a credential exchange
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Comment is a message left on a manga or a specific chapter.  Name is the
// display name; for registered users the backend fills it from the account.
type Comment struct {
	ID        int       `json:"id"`
	Manga     int       `json:"manga"`
	Chapter   *int      `json:"chapter"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark marks a manga as followed by the current user.  At most one exists
// per (user, manga) pair.
type Bookmark struct {
	ID         int       `json:"id"`
	Manga      int       `json:"manga"`
	MangaTitle string    `json:"manga_title"`
	MangaCover string    `json:"manga_cover"`
	CreatedAt  time.Time `json:"created_at"`
}

// Rating is the current user's score for a manga, 1 to 5.  Re-submitting
// updates the existing record server-side.
type Rating struct {
	ID    int `json:"id"`
	Manga int `json:"manga"`
	Score int `json:"score"`
}

// HistoryEntry is a backend-persisted reading history record
type HistoryEntry struct {
	ID            int       `json:"id"`
	Manga         int       `json:"manga"`
	MangaTitle    string    `json:"manga_title"`
	Chapter       int       `json:"chapter"`
	ChapterNumber string    `json:"chapter_number"`
	LastReadAt    time.Time `json:"last_read_at"`
}
