package service

import (
	"context"
	"strings"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
)

// defaultCommenterName is used when a guest posts without entering a name
const defaultCommenterName = "Guest"

// BookmarkState is what the details screen knows about a manga's bookmark.
// ID is only meaningful while Bookmarked is true.
type BookmarkState struct {
	Bookmarked bool
	ID         int
}

// Interactions covers the social surface: bookmarks, ratings, comments and
// the genre tag editing used by the back office.
type Interactions struct {
	account  domain.AccountRepository
	genres   domain.GenreRepository
	comments domain.CommentRepository
}

func NewInteractions(
	account domain.AccountRepository,
	genres domain.GenreRepository,
	comments domain.CommentRepository,
) *Interactions {
	return &Interactions{
		account:  account,
		genres:   genres,
		comments: comments,
	}
}

// BookmarkStateFor resolves whether the manga is in the user's bookmarks
func (i *Interactions) BookmarkStateFor(ctx context.Context, mangaID int) (BookmarkState, error) {
	bookmarks, err := i.account.Bookmarks(ctx)
	if err != nil {
		return BookmarkState{}, err
	}

	for _, bookmark := range bookmarks {
		if bookmark.Manga == mangaID {
			return BookmarkState{Bookmarked: true, ID: bookmark.ID}, nil
		}
	}
	return BookmarkState{}, nil
}

// ToggleBookmark flips the bookmark and returns the resulting state.  The
// returned state is authoritative; on error the caller keeps the old one.
func (i *Interactions) ToggleBookmark(ctx context.Context, mangaID int, current BookmarkState) (BookmarkState, error) {
	if current.Bookmarked {
		if err := i.account.RemoveBookmark(ctx, current.ID); err != nil {
			return current, err
		}
		return BookmarkState{}, nil
	}

	bookmark, err := i.account.AddBookmark(ctx, mangaID)
	if err != nil {
		return current, err
	}
	return BookmarkState{Bookmarked: true, ID: bookmark.ID}, nil
}

// BookmarksList returns all of the user's bookmarks
func (i *Interactions) BookmarksList(ctx context.Context) ([]domain.Bookmark, error) {
	return i.account.Bookmarks(ctx)
}

// RemoveBookmark deletes a bookmark by its own id
func (i *Interactions) RemoveBookmark(ctx context.Context, bookmarkID int) error {
	return i.account.RemoveBookmark(ctx, bookmarkID)
}

// HistoryList returns the server-side reading history
func (i *Interactions) HistoryList(ctx context.Context) ([]domain.HistoryEntry, error) {
	return i.account.History(ctx)
}

// Rate submits a score from 1 to 5 and returns the canonical stored rating
func (i *Interactions) Rate(ctx context.Context, mangaID, score int) (*domain.Rating, error) {
	return i.account.Rate(ctx, mangaID, score)
}

// RatingFor finds the user's own rating for a manga, or nil if unrated
func (i *Interactions) RatingFor(ctx context.Context, mangaID int) (*domain.Rating, error) {
	ratings, err := i.account.Ratings(ctx)
	if err != nil {
		return nil, err
	}

	for idx := range ratings {
		if ratings[idx].Manga == mangaID {
			return &ratings[idx], nil
		}
	}
	return nil, nil
}

// Comments lists the comments for a manga, or for one chapter when chapterID
// is non-zero.
func (i *Interactions) Comments(ctx context.Context, mangaID, chapterID int) ([]domain.Comment, error) {
	return i.comments.List(ctx, mangaID, chapterID)
}

// PostComment submits a comment and returns the refreshed thread so the new
// comment shows up with its server-assigned id and timestamp.
func (i *Interactions) PostComment(ctx context.Context, mangaID, chapterID int, name, content string) ([]domain.Comment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultCommenterName
	}

	if _, err := i.comments.Create(ctx, mangaID, chapterID, name, content); err != nil {
		return nil, err
	}

	log.Info("Posted comment", "manga", mangaID, "name", name)
	return i.comments.List(ctx, mangaID, chapterID)
}

// DeleteComment removes a comment (staff moderation)
func (i *Interactions) DeleteComment(ctx context.Context, commentID int) error {
	return i.comments.Delete(ctx, commentID)
}

// AddGenreTag adds a genre name to a selection, reusing an existing genre
// when one matches case-insensitively and creating it otherwise.  The
// returned slice is the new selection.
func (i *Interactions) AddGenreTag(ctx context.Context, name string, selection []string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return selection, nil
	}

	for _, selected := range selection {
		if strings.EqualFold(selected, name) {
			return selection, nil
		}
	}

	existing, err := i.genres.List(ctx)
	if err != nil {
		return selection, err
	}

	canonical := name
	found := false
	for _, genre := range existing {
		if strings.EqualFold(genre.Name, name) {
			canonical = genre.Name
			found = true
			break
		}
	}

	if !found {
		genre, err := i.genres.Create(ctx, name)
		if err != nil {
			return selection, err
		}
		canonical = genre.Name
		log.Info("Created genre", "name", canonical)
	}

	return append(selection, canonical), nil
}

// RemoveGenreTag drops a name from the selection without touching the genre
// itself.
func RemoveGenreTag(selection []string, name string) []string {
	out := selection[:0]
	for _, selected := range selection {
		if !strings.EqualFold(selected, name) {
			out = append(out, selected)
		}
	}
	return out
}

// DeleteGenre deletes the genre site-wide and prunes it from the selection.
// The backend detaches the genre from every manga, so callers confirm first.
func (i *Interactions) DeleteGenre(ctx context.Context, genre domain.Genre, selection []string) ([]string, error) {
	if err := i.genres.Delete(ctx, genre.ID); err != nil {
		return selection, err
	}

	log.Info("Deleted genre", "id", genre.ID, "name", genre.Name)
	return RemoveGenreTag(selection, genre.Name), nil
}
