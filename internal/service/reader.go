package service

import (
	"context"
	"fmt"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/history"
	"github.com/yomu-dev/yomu/internal/log"
)

// Identity is the slice of the session the reader needs
type Identity interface {
	LoggedIn() bool
}

// ReadView is everything the reader screen needs for one chapter
type ReadView struct {
	Manga   *domain.Manga
	Chapter *domain.Chapter
	Prev    *domain.ChapterRef
	Next    *domain.ChapterRef
}

// Reader resolves chapters for reading and records progress.  Chapters are
// addressed by manga id plus chapter number string, the same way the site's
// URLs do, so resolution goes through the manga's chapter list first.
type Reader struct {
	mangas   domain.MangaRepository
	chapters domain.ChapterRepository
	account  domain.AccountRepository
	history  *history.Store
	identity Identity
}

func NewReader(
	mangas domain.MangaRepository,
	chapters domain.ChapterRepository,
	account domain.AccountRepository,
	store *history.Store,
	identity Identity,
) *Reader {
	return &Reader{
		mangas:   mangas,
		chapters: chapters,
		account:  account,
		history:  store,
		identity: identity,
	}
}

// Resolve loads the chapter identified by mangaID and chapterNumber along
// with its neighbours in reading order.
func (r *Reader) Resolve(ctx context.Context, mangaID int, chapterNumber string) (*ReadView, error) {
	manga, err := r.mangas.Get(ctx, mangaID)
	if err != nil {
		return nil, err
	}

	sorted := domain.SortChapters(manga.Chapters)

	ref := domain.FindChapter(sorted, chapterNumber)
	if ref == nil {
		return nil, fmt.Errorf("%s has no chapter %q", manga.Title, chapterNumber)
	}

	chapter, err := r.chapters.Get(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	prev, next := domain.AdjacentChapters(sorted, chapterNumber)

	log.Debug("Resolved chapter",
		"manga", manga.Title,
		"chapter", chapterNumber,
		"pages", len(chapter.Pages))

	return &ReadView{
		Manga:   manga,
		Chapter: chapter,
		Prev:    prev,
		Next:    next,
	}, nil
}

// LastRead returns the locally recorded last read for a manga, or nil when
// the manga was never opened on this machine.
func (r *Reader) LastRead(mangaID int) *history.Entry {
	for _, entry := range r.history.Entries() {
		if entry.MangaID == mangaID {
			found := entry
			return &found
		}
	}
	return nil
}

// MergeHistory combines the backend reading history with locally recorded
// reads.  Backend entries keep their order and win on conflict; local entries
// fill in mangas the backend does not know about, which is the entire history
// for a guest.
func MergeHistory(backend []domain.HistoryEntry, local []history.Entry) []domain.HistoryEntry {
	merged := append([]domain.HistoryEntry(nil), backend...)

	seen := make(map[int]bool, len(backend))
	for _, entry := range backend {
		seen[entry.Manga] = true
	}

	for _, entry := range local {
		if seen[entry.MangaID] {
			continue
		}
		merged = append(merged, domain.HistoryEntry{
			Manga:         entry.MangaID,
			MangaTitle:    entry.MangaTitle,
			Chapter:       entry.ChapterID,
			ChapterNumber: entry.ChapterNumber,
			LastReadAt:    entry.ReadAt,
		})
	}
	return merged
}

// RecordProgress notes the read locally and, for a logged-in user, mirrors it
// to the backend.  Failures are logged and swallowed; progress tracking never
// interrupts reading.
func (r *Reader) RecordProgress(ctx context.Context, view *ReadView) {
	entry := history.Entry{
		MangaID:       view.Manga.ID,
		MangaTitle:    view.Manga.Title,
		ChapterID:     view.Chapter.ID,
		ChapterNumber: view.Chapter.ChapterNumber,
	}
	if err := r.history.Record(entry); err != nil {
		log.Warn("Failed to record local reading history", "error", err)
	}

	if !r.identity.LoggedIn() {
		return
	}
	if err := r.account.UpsertHistory(ctx, view.Manga.ID, view.Chapter.ID); err != nil {
		log.Warn("Failed to sync reading history", "error", err)
	}
}
