package rest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
)

// ChapterRepository implements chapter detail access and admin management
type ChapterRepository struct {
	client *Client
}

func NewChapterRepository(client *Client) domain.ChapterRepository {
	return &ChapterRepository{client: client}
}

func (r *ChapterRepository) Get(ctx context.Context, id int) (*domain.Chapter, error) {
	var chapter domain.Chapter

	resp, err := r.client.request().
		SetContext(ctx).
		SetResult(&chapter).
		Get(fmt.Sprintf("/api/chapters/%d/", id))
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch chapter %d: %w", id, err)
	}

	return &chapter, nil
}

func (r *ChapterRepository) Create(ctx context.Context, draft domain.ChapterDraft) (*domain.Chapter, error) {
	var chapter domain.Chapter

	req := r.client.request().
		SetContext(ctx).
		SetResult(&chapter).
		SetFormData(map[string]string{
			"manga":          strconv.Itoa(draft.Manga),
			"chapter_number": draft.ChapterNumber,
		})

	// Page files all go under the same field; the backend keeps their order
	for _, page := range draft.Pages {
		req.SetMultipartField("files_input", page.Name, "application/octet-stream", page.Body)
	}

	resp, err := req.Post("/api/chapters/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}

	log.Info("Created chapter", "id", chapter.ID, "manga", draft.Manga, "chapter_number", draft.ChapterNumber, "pages", len(chapter.Pages))
	return &chapter, nil
}

func (r *ChapterRepository) Delete(ctx context.Context, id int) error {
	resp, err := r.client.request().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/chapters/%d/", id))
	if err := r.client.check(resp, err); err != nil {
		return fmt.Errorf("failed to delete chapter %d: %w", id, err)
	}

	log.Info("Deleted chapter", "id", id)
	return nil
}
