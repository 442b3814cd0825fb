package service

import (
	"context"
	"fmt"

	"github.com/yomu-dev/yomu/internal/domain"
)

type fakeMangaRepo struct {
	page      *domain.MangaPage
	manga     *domain.Manga
	err       error
	lastQuery domain.ListQuery
	calls     int
}

func (f *fakeMangaRepo) List(_ context.Context, query domain.ListQuery) (*domain.MangaPage, error) {
	f.lastQuery = query
	f.calls++
	return f.page, f.err
}

func (f *fakeMangaRepo) Get(_ context.Context, id int) (*domain.Manga, error) {
	if f.manga == nil || f.manga.ID != id {
		return nil, fmt.Errorf("manga %d not found", id)
	}
	return f.manga, f.err
}

func (f *fakeMangaRepo) Create(_ context.Context, _ domain.MangaDraft) (*domain.Manga, error) {
	return f.manga, f.err
}

func (f *fakeMangaRepo) Update(_ context.Context, _ int, _ domain.MangaDraft) (*domain.Manga, error) {
	return f.manga, f.err
}

func (f *fakeMangaRepo) Delete(_ context.Context, _ int) error {
	return f.err
}

type fakeGenreRepo struct {
	genres  []domain.Genre
	created []string
	deleted []int
	err     error
}

func (f *fakeGenreRepo) List(_ context.Context) ([]domain.Genre, error) {
	return f.genres, f.err
}

func (f *fakeGenreRepo) Create(_ context.Context, name string) (*domain.Genre, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, name)
	genre := domain.Genre{ID: 100 + len(f.created), Name: name}
	f.genres = append(f.genres, genre)
	return &genre, nil
}

func (f *fakeGenreRepo) Delete(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

type fakeChapterRepo struct {
	chapter *domain.Chapter
	err     error
}

func (f *fakeChapterRepo) Get(_ context.Context, id int) (*domain.Chapter, error) {
	if f.chapter == nil || f.chapter.ID != id {
		return nil, fmt.Errorf("chapter %d not found", id)
	}
	return f.chapter, f.err
}

func (f *fakeChapterRepo) Create(_ context.Context, _ domain.ChapterDraft) (*domain.Chapter, error) {
	return f.chapter, f.err
}

func (f *fakeChapterRepo) Delete(_ context.Context, _ int) error {
	return f.err
}

type fakeAccountRepo struct {
	bookmarks []domain.Bookmark
	ratings   []domain.Rating
	history   []domain.HistoryEntry

	addErr    error
	removeErr error
	syncErr   error

	removed []int
	synced  [][2]int
}

func (f *fakeAccountRepo) Bookmarks(_ context.Context) ([]domain.Bookmark, error) {
	return f.bookmarks, nil
}

func (f *fakeAccountRepo) AddBookmark(_ context.Context, mangaID int) (*domain.Bookmark, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	bookmark := domain.Bookmark{ID: 500 + mangaID, Manga: mangaID}
	f.bookmarks = append(f.bookmarks, bookmark)
	return &bookmark, nil
}

func (f *fakeAccountRepo) RemoveBookmark(_ context.Context, bookmarkID int) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, bookmarkID)
	return nil
}

func (f *fakeAccountRepo) Ratings(_ context.Context) ([]domain.Rating, error) {
	return f.ratings, nil
}

func (f *fakeAccountRepo) Rate(_ context.Context, mangaID, score int) (*domain.Rating, error) {
	return &domain.Rating{ID: 1, Manga: mangaID, Score: score}, nil
}

func (f *fakeAccountRepo) History(_ context.Context) ([]domain.HistoryEntry, error) {
	return f.history, nil
}

func (f *fakeAccountRepo) UpsertHistory(_ context.Context, mangaID, chapterID int) error {
	if f.syncErr != nil {
		return f.syncErr
	}
	f.synced = append(f.synced, [2]int{mangaID, chapterID})
	return nil
}

type fakeCommentRepo struct {
	comments []domain.Comment
	err      error
	deleted  []int
}

func (f *fakeCommentRepo) List(_ context.Context, mangaID, chapterID int) ([]domain.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Comment
	for _, comment := range f.comments {
		if mangaID > 0 && comment.Manga != mangaID {
			continue
		}
		if chapterID > 0 && (comment.Chapter == nil || *comment.Chapter != chapterID) {
			continue
		}
		out = append(out, comment)
	}
	return out, nil
}

func (f *fakeCommentRepo) Create(_ context.Context, mangaID, chapterID int, name, content string) (*domain.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	comment := domain.Comment{
		ID:      len(f.comments) + 1,
		Manga:   mangaID,
		Name:    name,
		Content: content,
	}
	if chapterID > 0 {
		comment.Chapter = &chapterID
	}
	f.comments = append(f.comments, comment)
	return &comment, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

type fakeIdentity struct {
	loggedIn bool
}

func (f *fakeIdentity) LoggedIn() bool {
	return f.loggedIn
}
