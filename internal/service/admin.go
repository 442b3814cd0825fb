package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
)

// imageExtensions are the page file types accepted for upload
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Admin bundles the back-office operations: catalog management, chapter
// uploads, user administration and the analytics dashboard.
type Admin struct {
	admin    domain.AdminRepository
	mangas   domain.MangaRepository
	chapters domain.ChapterRepository
}

func NewAdmin(admin domain.AdminRepository, mangas domain.MangaRepository, chapters domain.ChapterRepository) *Admin {
	return &Admin{
		admin:    admin,
		mangas:   mangas,
		chapters: chapters,
	}
}

func (a *Admin) Users(ctx context.Context) ([]domain.User, error) {
	return a.admin.Users(ctx)
}

func (a *Admin) DeleteUser(ctx context.Context, id int) error {
	return a.admin.DeleteUser(ctx, id)
}

func (a *Admin) ResetPassword(ctx context.Context, id int, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return a.admin.ResetPassword(ctx, id, newPassword)
}

func (a *Admin) Analytics(ctx context.Context) (*domain.Analytics, error) {
	return a.admin.Analytics(ctx)
}

func (a *Admin) CreateManga(ctx context.Context, draft domain.MangaDraft) (*domain.Manga, error) {
	return a.mangas.Create(ctx, draft)
}

func (a *Admin) UpdateManga(ctx context.Context, id int, draft domain.MangaDraft) (*domain.Manga, error) {
	return a.mangas.Update(ctx, id, draft)
}

func (a *Admin) DeleteManga(ctx context.Context, id int) error {
	return a.mangas.Delete(ctx, id)
}

func (a *Admin) DeleteChapter(ctx context.Context, id int) error {
	return a.chapters.Delete(ctx, id)
}

// UploadChapter builds a chapter from the image files in dir, in filename
// order, and uploads it.  Open file handles are closed once the request is
// done.
func (a *Admin) UploadChapter(ctx context.Context, mangaID int, chapterNumber, dir string) (*domain.Chapter, error) {
	paths, err := pageFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no page images found in %s", dir)
	}

	draft := domain.ChapterDraft{
		Manga:         mangaID,
		ChapterNumber: chapterNumber,
	}

	var open []*os.File
	defer func() {
		for _, f := range open {
			f.Close()
		}
	}()

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open page file: %w", err)
		}
		open = append(open, f)
		draft.Pages = append(draft.Pages, domain.FileUpload{
			Name: filepath.Base(path),
			Body: f,
		})
	}

	chapter, err := a.chapters.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	log.Info("Uploaded chapter", "manga", mangaID, "chapter", chapterNumber, "pages", len(paths))
	return chapter, nil
}

// LoadImage opens a cover or banner file for a manga draft
func LoadImage(path string) (*domain.FileUpload, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}
	return &domain.FileUpload{
		Name: filepath.Base(path),
		Body: f,
	}, f, nil
}

// pageFiles lists the image files directly inside dir, sorted by name
func pageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read page directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
