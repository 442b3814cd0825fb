package rest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
)

// CommentRepository implements comment thread access
type CommentRepository struct {
	client *Client
}

func NewCommentRepository(client *Client) domain.CommentRepository {
	return &CommentRepository{client: client}
}

// List fetches the comments for a manga, optionally narrowed to one chapter.
// A mangaID of zero fetches all comments, which the moderation view uses.
func (r *CommentRepository) List(ctx context.Context, mangaID, chapterID int) ([]domain.Comment, error) {
	var comments []domain.Comment

	req := r.client.request().SetContext(ctx).SetResult(&comments)
	if mangaID > 0 {
		req.SetQueryParam("manga", strconv.Itoa(mangaID))
	}
	if chapterID > 0 {
		req.SetQueryParam("chapter", strconv.Itoa(chapterID))
	}

	resp, err := req.Get("/api/comments/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	return comments, nil
}

func (r *CommentRepository) Create(ctx context.Context, mangaID, chapterID int, name, content string) (*domain.Comment, error) {
	var comment domain.Comment

	body := map[string]any{
		"manga":   mangaID,
		"content": content,
	}
	if chapterID > 0 {
		body["chapter"] = chapterID
	}
	// Guest display name; authenticated posts get the account name server-side
	if name != "" {
		body["name"] = name
	}

	resp, err := r.client.request().
		SetContext(ctx).
		SetBody(body).
		SetResult(&comment).
		Post("/api/comments/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to post comment: %w", err)
	}

	log.Info("Posted comment", "id", comment.ID, "manga", mangaID, "chapter", chapterID)
	return &comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int) error {
	resp, err := r.client.request().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/comments/%d/", id))
	if err := r.client.check(resp, err); err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}

	log.Info("Deleted comment", "id", id)
	return nil
}
