package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomu-dev/yomu/internal/domain"
)

// newTestServer starts an httptest server with the given handler and returns a
// client pointed at it.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL), server
}

func TestResolveImageURL(t *testing.T) {
	client := NewClient("http://api.example.com/")

	t.Run("EmptyStaysEmpty", func(t *testing.T) {
		assert.Equal(t, "", client.ResolveImageURL(""))
	})

	t.Run("AbsolutePassesThrough", func(t *testing.T) {
		assert.Equal(t, "https://cdn.example.com/a.png", client.ResolveImageURL("https://cdn.example.com/a.png"))
	})

	t.Run("RelativeResolvesAgainstBase", func(t *testing.T) {
		assert.Equal(t, "http://api.example.com/media/covers/a.png", client.ResolveImageURL("/media/covers/a.png"))
		assert.Equal(t, "http://api.example.com/media/covers/a.png", client.ResolveImageURL("media/covers/a.png"))
	})
}

func TestMangaListDecoding(t *testing.T) {
	t.Run("PaginatedEnvelope", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/mangas/", r.URL.Path)
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"count": 42, "results": [{"id": 1, "title": "Berserk"}]}`))
		})

		page, err := NewMangaRepository(client).List(context.Background(), domain.ListQuery{Page: 2})
		require.NoError(t, err)
		assert.True(t, page.Paginated)
		assert.Equal(t, 42, page.Count)
		require.Len(t, page.Mangas, 1)
		assert.Equal(t, "Berserk", page.Mangas[0].Title)
	})

	t.Run("BareArray", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id": 1, "title": "Berserk"}, {"id": 2, "title": "Vagabond"}]`))
		})

		page, err := NewMangaRepository(client).List(context.Background(), domain.ListQuery{})
		require.NoError(t, err)
		assert.False(t, page.Paginated)
		assert.Equal(t, 2, page.Count)
		assert.Len(t, page.Mangas, 2)
	})

	t.Run("FilterParams", func(t *testing.T) {
		var query map[string][]string
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"count": 0, "results": []}`))
		})

		_, err := NewMangaRepository(client).List(context.Background(), domain.ListQuery{
			Search:   "berserk",
			Genre:    "Action",
			Ordering: "-views",
			Featured: true,
			Limit:    12,
			Offset:   0,
		})
		require.NoError(t, err)
		assert.Equal(t, "berserk", query["search"][0])
		assert.Equal(t, "Action", query["genre"][0])
		assert.Equal(t, "-views", query["ordering"][0])
		assert.Equal(t, "true", query["is_featured"][0])
		assert.Equal(t, "12", query["limit"][0])
		assert.Equal(t, "0", query["offset"][0])
	})
}

func TestErrorMapping(t *testing.T) {
	t.Run("UnauthorizedSentinel", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Given token not valid for any token type"}`))
		})

		_, err := NewMangaRepository(client).Get(context.Background(), 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Contains(t, err.Error(), "token not valid")
	})

	t.Run("NotFoundSentinel", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Not found."}`))
		})

		_, err := NewMangaRepository(client).Get(context.Background(), 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ValidationMapFlattened", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"username": ["already taken"], "email": ["invalid address"]}`))
		})

		err := NewAuthRepository(client).Register(context.Background(), "x", "y", "z")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "email: invalid address; username: already taken", apiErr.Message)
	})

	t.Run("TransportFailure", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		client := NewClient(server.URL)

		_, err := NewMangaRepository(client).Get(context.Background(), 1)
		require.Error(t, err)

		var netErr NetworkError
		assert.ErrorAs(t, err, &netErr)
	})
}

func TestAuthHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	client.SetToken("access-token")
	_, err := NewAccountRepository(client).Bookmarks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)

	client.ClearToken()
	_, err = NewAccountRepository(client).Bookmarks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestAccountRepository(t *testing.T) {
	t.Run("RateReturnsCanonicalScore", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]int
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 7, body["manga"])
			assert.Equal(t, 4, body["score"])
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": 3, "manga": 7, "score": 4}`))
		})

		rating, err := NewAccountRepository(client).Rate(context.Background(), 7, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, rating.Score)
	})

	t.Run("HistoryToleratesEnvelope", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"count": 1, "results": [{"id": 1, "manga": 7, "chapter": 12}]}`))
		})

		entries, err := NewAccountRepository(client).History(context.Background())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 7, entries[0].Manga)
	})

	t.Run("UpsertHistoryPayload", func(t *testing.T) {
		var path string
		var body map[string]int
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.WriteHeader(http.StatusOK)
		})

		err := NewAccountRepository(client).UpsertHistory(context.Background(), 7, 12)
		require.NoError(t, err)
		assert.Equal(t, "/api/history/update_history/", path)
		assert.Equal(t, 7, body["manga"])
		assert.Equal(t, 12, body["chapter"])
	})
}

func TestAuthFlowEndpoints(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/token/":
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "guts", creds["username"])
			w.Write([]byte(`{"access": "acc", "refresh": "ref"}`))
		case "/api/profile/":
			w.Write([]byte(`{"id": 1, "username": "guts", "is_staff": false}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	repo := NewAuthRepository(client)

	tokens, err := repo.Token(context.Background(), "guts", "dragonslayer")
	require.NoError(t, err)
	assert.Equal(t, "acc", tokens.Access)
	assert.Equal(t, "ref", tokens.Refresh)

	user, err := repo.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "guts", user.Username)
	assert.False(t, user.IsStaff)
}
