package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
)

// AccountRepository implements the per-user resources: bookmarks, ratings and
// backend reading history.  All of these require an authenticated client.
type AccountRepository struct {
	client *Client
}

func NewAccountRepository(client *Client) domain.AccountRepository {
	return &AccountRepository{client: client}
}

func (r *AccountRepository) Bookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	resp, err := r.client.request().SetContext(ctx).Get("/api/bookmarks/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch bookmarks: %w", err)
	}
	return decodeList[domain.Bookmark](resp.Body())
}

func (r *AccountRepository) AddBookmark(ctx context.Context, mangaID int) (*domain.Bookmark, error) {
	var bookmark domain.Bookmark

	resp, err := r.client.request().
		SetContext(ctx).
		SetBody(map[string]int{"manga": mangaID}).
		SetResult(&bookmark).
		Post("/api/bookmarks/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to add bookmark: %w", err)
	}

	log.Info("Added bookmark", "id", bookmark.ID, "manga", mangaID)
	return &bookmark, nil
}

func (r *AccountRepository) RemoveBookmark(ctx context.Context, bookmarkID int) error {
	resp, err := r.client.request().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/bookmarks/%d/", bookmarkID))
	if err := r.client.check(resp, err); err != nil {
		return fmt.Errorf("failed to remove bookmark %d: %w", bookmarkID, err)
	}

	log.Info("Removed bookmark", "id", bookmarkID)
	return nil
}

func (r *AccountRepository) Ratings(ctx context.Context) ([]domain.Rating, error) {
	resp, err := r.client.request().SetContext(ctx).Get("/api/ratings/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch ratings: %w", err)
	}
	return decodeList[domain.Rating](resp.Body())
}

// Rate submits a score for a manga.  The backend upserts, so repeated calls
// update the existing rating; the response carries the canonical record.
func (r *AccountRepository) Rate(ctx context.Context, mangaID, score int) (*domain.Rating, error) {
	var rating domain.Rating

	resp, err := r.client.request().
		SetContext(ctx).
		SetBody(map[string]int{
			"manga": mangaID,
			"score": score,
		}).
		SetResult(&rating).
		Post("/api/ratings/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	log.Info("Submitted rating", "manga", mangaID, "score", rating.Score)
	return &rating, nil
}

func (r *AccountRepository) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	resp, err := r.client.request().SetContext(ctx).Get("/api/history/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch reading history: %w", err)
	}
	return decodeList[domain.HistoryEntry](resp.Body())
}

func (r *AccountRepository) UpsertHistory(ctx context.Context, mangaID, chapterID int) error {
	resp, err := r.client.request().
		SetContext(ctx).
		SetBody(map[string]int{
			"manga":   mangaID,
			"chapter": chapterID,
		}).
		Post("/api/history/update_history/")
	if err := r.client.check(resp, err); err != nil {
		return fmt.Errorf("failed to sync reading history: %w", err)
	}
	return nil
}

// decodeList accepts either a bare collection or the paginated {results}
// envelope and returns just the items.
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode list envelope: %w", err)
	}
	return envelope.Results, nil
}
