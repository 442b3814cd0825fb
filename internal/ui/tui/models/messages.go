package models

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/service"
)

// AuthSuccessMsg is sent when login or registration completes successfully
type AuthSuccessMsg struct {
	User *domain.User
}

// AuthErrorMsg is sent when login or registration fails
type AuthErrorMsg struct {
	Error string
}

// HomeLoadedMsg carries the three home screen strips.  Latest and popular
// paginate; featured is a single curated set.
type HomeLoadedMsg struct {
	Featured []domain.Manga
	Latest   *service.StripPage
	Popular  *service.StripPage
}

// StripPageMsg carries a newly fetched page for one home strip
type StripPageMsg struct {
	Strip homeStrip
	Page  *service.StripPage
}

// HomeErrorMsg is sent when loading the home screen fails
type HomeErrorMsg struct {
	Error error
}

// CatalogPageMsg carries one page of filtered catalog results.  Seq identifies
// the fetch; stale responses are dropped.
type CatalogPageMsg struct {
	Seq  uint64
	Page *service.CatalogPage
}

// CatalogErrorMsg is sent when a catalog fetch fails
type CatalogErrorMsg struct {
	Seq   uint64
	Error error
}

// GenresLoadedMsg carries the genre list used by the catalog filter cycle
// and by the manga form's tag suggestions
type GenresLoadedMsg struct {
	Genres []domain.Genre
}

// GenreTagAddedMsg carries the manga form's tag selection after an add
type GenreTagAddedMsg struct {
	Selection []string
}

// GenreTagDeletedMsg reports a site-wide genre deletion along with the tag
// selection pruned of the deleted name
type GenreTagDeletedMsg struct {
	GenreID   int
	Selection []string
}

// OpenMangaMsg asks the app to show the details view for a manga
type OpenMangaMsg struct {
	MangaID int
}

// MangaLoadedMsg carries a freshly loaded manga detail
type MangaLoadedMsg struct {
	Manga *domain.Manga
}

// MangaErrorMsg is sent when loading a manga detail fails
type MangaErrorMsg struct {
	Error error
}

// BookmarkStateMsg carries the resolved bookmark state for the current manga
type BookmarkStateMsg struct {
	State service.BookmarkState
}

// BookmarkToggleErrorMsg reverts an optimistic bookmark toggle
type BookmarkToggleErrorMsg struct {
	Previous service.BookmarkState
	Error    error
}

// RatingLoadedMsg carries the user's own rating for the current manga
type RatingLoadedMsg struct {
	Rating *domain.Rating
}

// RatedMsg carries the canonical rating after submission
type RatedMsg struct {
	Rating *domain.Rating
}

// CommentsLoadedMsg carries a comment thread
type CommentsLoadedMsg struct {
	Comments []domain.Comment
}

// CommentsErrorMsg is sent when loading or posting comments fails
type CommentsErrorMsg struct {
	Error error
}

// OpenReaderMsg asks the app to open the reader on a chapter
type OpenReaderMsg struct {
	MangaID       int
	ChapterNumber string
}

// ChapterLoadedMsg carries a resolved chapter ready for reading
type ChapterLoadedMsg struct {
	View *service.ReadView
}

// ChapterErrorMsg is sent when chapter resolution fails
type ChapterErrorMsg struct {
	Error error
}

// ChapterDeletedMsg reports a staff chapter deletion
type ChapterDeletedMsg struct {
	ChapterNumber string
}

// ProfileLoadedMsg carries the profile view data
type ProfileLoadedMsg struct {
	Bookmarks []domain.Bookmark
	History   []domain.HistoryEntry
}

// ProfileErrorMsg is sent when loading profile data fails
type ProfileErrorMsg struct {
	Error error
}

// BookmarkRemovedMsg is sent when a bookmark was removed from the profile view
type BookmarkRemovedMsg struct {
	BookmarkID int
}

// LocalHistoryClearedMsg is sent after the local history file was wiped
type LocalHistoryClearedMsg struct{}

// AnalyticsLoadedMsg carries the admin dashboard analytics
type AnalyticsLoadedMsg struct {
	Analytics *domain.Analytics
}

// AdminMangasLoadedMsg carries a catalog page for the admin manga tab
type AdminMangasLoadedMsg struct {
	Page *service.CatalogPage
}

// UsersLoadedMsg carries the user list for the admin users tab
type UsersLoadedMsg struct {
	Users []domain.User
}

// AdminCommentsLoadedMsg carries all comments for the moderation tab
type AdminCommentsLoadedMsg struct {
	Comments []domain.Comment
}

// AdminErrorMsg is sent when an admin operation fails
type AdminErrorMsg struct {
	Error error
}

// AdminActionDoneMsg reports a completed admin mutation; the active tab reloads
type AdminActionDoneMsg struct {
	Info string
}

// OpenMangaFormMsg asks the app to open the manga form.  A nil manga means
// creating a new one.
type OpenMangaFormMsg struct {
	Manga *domain.Manga
}

// MangaSavedMsg is sent when the manga form was submitted successfully
type MangaSavedMsg struct {
	Manga *domain.Manga
}

// ConfirmRequestMsg asks the app to show the confirmation modal.  OnConfirm
// runs when the user confirms.
type ConfirmRequestMsg struct {
	Prompt    string
	OnConfirm tea.Cmd
}

// Err exposes the carried error so the app can watch every failure message
// for an expired session.
func (m HomeErrorMsg) Err() error           { return m.Error }
func (m CatalogErrorMsg) Err() error        { return m.Error }
func (m MangaErrorMsg) Err() error          { return m.Error }
func (m BookmarkToggleErrorMsg) Err() error { return m.Error }
func (m CommentsErrorMsg) Err() error       { return m.Error }
func (m ChapterErrorMsg) Err() error        { return m.Error }
func (m ProfileErrorMsg) Err() error        { return m.Error }
func (m AdminErrorMsg) Err() error          { return m.Error }
