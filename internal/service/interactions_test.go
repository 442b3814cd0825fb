package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomu-dev/yomu/internal/domain"
)

func TestBookmarkStateFor(t *testing.T) {
	account := &fakeAccountRepo{bookmarks: []domain.Bookmark{
		{ID: 11, Manga: 1},
		{ID: 12, Manga: 7},
	}}
	interactions := NewInteractions(account, &fakeGenreRepo{}, &fakeCommentRepo{})

	t.Run("Bookmarked", func(t *testing.T) {
		state, err := interactions.BookmarkStateFor(context.Background(), 7)
		require.NoError(t, err)
		assert.True(t, state.Bookmarked)
		assert.Equal(t, 12, state.ID)
	})

	t.Run("NotBookmarked", func(t *testing.T) {
		state, err := interactions.BookmarkStateFor(context.Background(), 99)
		require.NoError(t, err)
		assert.False(t, state.Bookmarked)
	})
}

func TestToggleBookmark(t *testing.T) {
	t.Run("AddThenRemove", func(t *testing.T) {
		account := &fakeAccountRepo{}
		interactions := NewInteractions(account, &fakeGenreRepo{}, &fakeCommentRepo{})

		state, err := interactions.ToggleBookmark(context.Background(), 7, BookmarkState{})
		require.NoError(t, err)
		assert.True(t, state.Bookmarked)
		assert.Equal(t, 507, state.ID)

		state, err = interactions.ToggleBookmark(context.Background(), 7, state)
		require.NoError(t, err)
		assert.False(t, state.Bookmarked)
		assert.Equal(t, []int{507}, account.removed)
	})

	t.Run("AddFailureKeepsState", func(t *testing.T) {
		account := &fakeAccountRepo{addErr: errors.New("backend down")}
		interactions := NewInteractions(account, &fakeGenreRepo{}, &fakeCommentRepo{})

		state, err := interactions.ToggleBookmark(context.Background(), 7, BookmarkState{})
		require.Error(t, err)
		assert.False(t, state.Bookmarked)
	})

	t.Run("RemoveFailureKeepsState", func(t *testing.T) {
		account := &fakeAccountRepo{removeErr: errors.New("backend down")}
		interactions := NewInteractions(account, &fakeGenreRepo{}, &fakeCommentRepo{})

		current := BookmarkState{Bookmarked: true, ID: 12}
		state, err := interactions.ToggleBookmark(context.Background(), 7, current)
		require.Error(t, err)
		assert.Equal(t, current, state)
	})
}

func TestRatingFor(t *testing.T) {
	account := &fakeAccountRepo{ratings: []domain.Rating{{ID: 1, Manga: 7, Score: 4}}}
	interactions := NewInteractions(account, &fakeGenreRepo{}, &fakeCommentRepo{})

	rating, err := interactions.RatingFor(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 4, rating.Score)

	rating, err = interactions.RatingFor(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, rating)
}

func TestPostComment(t *testing.T) {
	t.Run("ReturnsRefreshedThread", func(t *testing.T) {
		comments := &fakeCommentRepo{comments: []domain.Comment{{ID: 1, Manga: 7, Name: "casca", Content: "first"}}}
		interactions := NewInteractions(&fakeAccountRepo{}, &fakeGenreRepo{}, comments)

		thread, err := interactions.PostComment(context.Background(), 7, 0, "guts", "second")
		require.NoError(t, err)
		require.Len(t, thread, 2)
		assert.Equal(t, "second", thread[1].Content)
	})

	t.Run("BlankNameDefaultsToGuest", func(t *testing.T) {
		comments := &fakeCommentRepo{}
		interactions := NewInteractions(&fakeAccountRepo{}, &fakeGenreRepo{}, comments)

		thread, err := interactions.PostComment(context.Background(), 7, 0, "   ", "hello")
		require.NoError(t, err)
		require.Len(t, thread, 1)
		assert.Equal(t, "Guest", thread[0].Name)
	})

	t.Run("ChapterScoped", func(t *testing.T) {
		comments := &fakeCommentRepo{}
		interactions := NewInteractions(&fakeAccountRepo{}, &fakeGenreRepo{}, comments)

		thread, err := interactions.PostComment(context.Background(), 7, 20, "guts", "nice chapter")
		require.NoError(t, err)
		require.Len(t, thread, 1)
		require.NotNil(t, thread[0].Chapter)
		assert.Equal(t, 20, *thread[0].Chapter)
	})
}

func TestAddGenreTag(t *testing.T) {
	t.Run("ReusesExistingCaseInsensitively", func(t *testing.T) {
		genres := &fakeGenreRepo{genres: []domain.Genre{{ID: 1, Name: "Action"}}}
		interactions := NewInteractions(&fakeAccountRepo{}, genres, &fakeCommentRepo{})

		selection, err := interactions.AddGenreTag(context.Background(), "action", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Action"}, selection)
		assert.Empty(t, genres.created)
	})

	t.Run("CreatesMissingGenre", func(t *testing.T) {
		genres := &fakeGenreRepo{}
		interactions := NewInteractions(&fakeAccountRepo{}, genres, &fakeCommentRepo{})

		selection, err := interactions.AddGenreTag(context.Background(), "Isekai", []string{"Action"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Action", "Isekai"}, selection)
		assert.Equal(t, []string{"Isekai"}, genres.created)
	})

	t.Run("AlreadySelectedIsNoop", func(t *testing.T) {
		genres := &fakeGenreRepo{genres: []domain.Genre{{ID: 1, Name: "Action"}}}
		interactions := NewInteractions(&fakeAccountRepo{}, genres, &fakeCommentRepo{})

		selection, err := interactions.AddGenreTag(context.Background(), "ACTION", []string{"Action"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Action"}, selection)
	})

	t.Run("BlankNameIsNoop", func(t *testing.T) {
		interactions := NewInteractions(&fakeAccountRepo{}, &fakeGenreRepo{}, &fakeCommentRepo{})

		selection, err := interactions.AddGenreTag(context.Background(), "  ", []string{"Action"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Action"}, selection)
	})
}

func TestRemoveGenreTag(t *testing.T) {
	assert.Equal(t, []string{"Action"}, RemoveGenreTag([]string{"Action", "Drama"}, "drama"))
	assert.Empty(t, RemoveGenreTag([]string{"Drama"}, "Drama"))
}

func TestDeleteGenre(t *testing.T) {
	genres := &fakeGenreRepo{genres: []domain.Genre{{ID: 3, Name: "Drama"}}}
	interactions := NewInteractions(&fakeAccountRepo{}, genres, &fakeCommentRepo{})

	selection, err := interactions.DeleteGenre(context.Background(), domain.Genre{ID: 3, Name: "Drama"}, []string{"Action", "Drama"})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, genres.deleted)
	assert.Equal(t, []string{"Action"}, selection)
}
