package rest

import (
	"context"
	"fmt"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
)

// GenreRepository implements genre tag access
type GenreRepository struct {
	client *Client
}

func NewGenreRepository(client *Client) domain.GenreRepository {
	return &GenreRepository{client: client}
}

func (r *GenreRepository) List(ctx context.Context) ([]domain.Genre, error) {
	var genres []domain.Genre

	resp, err := r.client.request().
		SetContext(ctx).
		SetResult(&genres).
		Get("/api/genres/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch genres: %w", err)
	}

	return genres, nil
}

func (r *GenreRepository) Create(ctx context.Context, name string) (*domain.Genre, error) {
	var genre domain.Genre

	resp, err := r.client.request().
		SetContext(ctx).
		SetBody(map[string]string{"name": name}).
		SetResult(&genre).
		Post("/api/genres/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to create genre %q: %w", name, err)
	}

	log.Info("Created genre", "id", genre.ID, "name", genre.Name)
	return &genre, nil
}

// Delete removes a genre site-wide.  The backend detaches it from every manga
// referencing it, so callers must confirm with the user first.
func (r *GenreRepository) Delete(ctx context.Context, id int) error {
	resp, err := r.client.request().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/genres/%d/", id))
	if err := r.client.check(resp, err); err != nil {
		return fmt.Errorf("failed to delete genre %d: %w", id, err)
	}

	log.Info("Deleted genre", "id", id)
	return nil
}
