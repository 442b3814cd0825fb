package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
)

// MangaRepository implements catalog access against the manga endpoints
type MangaRepository struct {
	client *Client
}

func NewMangaRepository(client *Client) domain.MangaRepository {
	return &MangaRepository{client: client}
}

func (r *MangaRepository) List(ctx context.Context, query domain.ListQuery) (*domain.MangaPage, error) {
	req := r.client.request().SetContext(ctx)

	if query.Search != "" {
		req.SetQueryParam("search", query.Search)
	}
	if query.Genre != "" {
		req.SetQueryParam("genre", query.Genre)
	}
	if query.Status != "" {
		req.SetQueryParam("status", query.Status)
	}
	if query.Type != "" {
		req.SetQueryParam("type", query.Type)
	}
	if query.Ordering != "" {
		req.SetQueryParam("ordering", query.Ordering)
	}
	if query.Featured {
		req.SetQueryParam("is_featured", "true")
	}
	if query.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(query.Limit))
		req.SetQueryParam("offset", strconv.Itoa(query.Offset))
	}

	resp, err := req.Get("/api/mangas/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch manga list: %w", err)
	}

	page, err := decodeMangaPage(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode manga list: %w", err)
	}

	log.Debug("Fetched manga list", "count", len(page.Mangas), "total", page.Count, "paginated", page.Paginated)
	return page, nil
}

func (r *MangaRepository) Get(ctx context.Context, id int) (*domain.Manga, error) {
	var manga domain.Manga

	resp, err := r.client.request().
		SetContext(ctx).
		SetResult(&manga).
		Get(fmt.Sprintf("/api/mangas/%d/", id))
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch manga %d: %w", id, err)
	}

	return &manga, nil
}

func (r *MangaRepository) Create(ctx context.Context, draft domain.MangaDraft) (*domain.Manga, error) {
	var manga domain.Manga

	req := r.client.request().SetContext(ctx).SetResult(&manga)
	applyMangaDraft(req, draft)

	resp, err := req.Post("/api/mangas/")
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to create manga: %w", err)
	}

	log.Info("Created manga", "id", manga.ID, "title", manga.Title)
	return &manga, nil
}

func (r *MangaRepository) Update(ctx context.Context, id int, draft domain.MangaDraft) (*domain.Manga, error) {
	var manga domain.Manga

	req := r.client.request().SetContext(ctx).SetResult(&manga)
	applyMangaDraft(req, draft)

	resp, err := req.Patch(fmt.Sprintf("/api/mangas/%d/", id))
	if err := r.client.check(resp, err); err != nil {
		return nil, fmt.Errorf("failed to update manga %d: %w", id, err)
	}

	log.Info("Updated manga", "id", id)
	return &manga, nil
}

func (r *MangaRepository) Delete(ctx context.Context, id int) error {
	resp, err := r.client.request().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/mangas/%d/", id))
	if err := r.client.check(resp, err); err != nil {
		return fmt.Errorf("failed to delete manga %d: %w", id, err)
	}

	log.Info("Deleted manga", "id", id)
	return nil
}

// applyMangaDraft fills a request with the draft fields.  Image uploads make
// the request multipart; without them it is sent as an ordinary form post.
func applyMangaDraft(req *resty.Request, draft domain.MangaDraft) {
	values := url.Values{}
	values.Set("title", draft.Title)
	values.Set("description", draft.Description)
	values.Set("status", draft.Status)
	values.Set("type", draft.Type)
	values.Set("released_year", draft.ReleasedYear)
	values.Set("author", draft.Author)
	values.Set("artist", draft.Artist)
	values.Set("is_featured", strconv.FormatBool(draft.IsFeatured))
	for _, genre := range draft.Genres {
		values.Add("genres", genre)
	}
	req.SetFormDataFromValues(values)

	if draft.CoverImage != nil {
		req.SetMultipartField("cover_image_file", draft.CoverImage.Name, "application/octet-stream", draft.CoverImage.Body)
	}
	if draft.BannerImage != nil {
		req.SetMultipartField("banner_image_file", draft.BannerImage.Name, "application/octet-stream", draft.BannerImage.Body)
	}
}

// decodeMangaPage accepts either the paginated {count, results} envelope or a
// bare collection, which older endpoints still return.
func decodeMangaPage(body []byte) (*domain.MangaPage, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var mangas []domain.Manga
		if err := json.Unmarshal(trimmed, &mangas); err != nil {
			return nil, err
		}
		return &domain.MangaPage{
			Mangas:    mangas,
			Count:     len(mangas),
			Paginated: false,
		}, nil
	}

	var envelope struct {
		Count   int            `json:"count"`
		Results []domain.Manga `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	return &domain.MangaPage{
		Mangas:    envelope.Results,
		Count:     envelope.Count,
		Paginated: true,
	}, nil
}
