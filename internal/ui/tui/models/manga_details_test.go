package models

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/history"
	"github.com/yomu-dev/yomu/internal/session"
)

func guestDetails(t *testing.T) *MangaDetailsModel {
	t.Helper()
	m := NewMangaDetailsModel(&Services{Session: session.New(nil, nil, nil)}, 7)
	m.loading = false
	m.width = 80
	m.height = 40
	return m
}

func TestGuestCommentNameField(t *testing.T) {
	m := guestDetails(t)
	m.writingMode = true
	m.commentInput.Focus()

	// tab moves focus between the comment and the guest name field
	m.handleWritingKey(tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.nameFocused)

	m.handleWritingKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Rei")})
	assert.Equal(t, "Rei", m.nameInput.Value())

	m.handleWritingKey(tea.KeyMsg{Type: tea.KeyTab})
	require.False(t, m.nameFocused)
	m.handleWritingKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("great chapter")})

	cmd := m.handleWritingKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.writingMode)

	// The name sticks around for the next comment
	assert.Equal(t, "Rei", m.nameInput.Value())
	assert.Empty(t, m.commentInput.Value())
}

func TestGuestCommentPaneShowsNameField(t *testing.T) {
	m := guestDetails(t)
	m.writingMode = true

	pane := m.renderComments()
	assert.Contains(t, pane, "Name:")
	assert.Contains(t, pane, "Comment:")
}

func TestDetailsCursorLandsOnLastRead(t *testing.T) {
	m := guestDetails(t)
	m.lastRead = &history.Entry{MangaID: 7, ChapterNumber: "2"}

	model, _ := m.Update(MangaLoadedMsg{Manga: &domain.Manga{
		ID:    7,
		Title: "Berserk",
		Chapters: []domain.ChapterRef{
			{ID: 30, ChapterNumber: "3"},
			{ID: 10, ChapterNumber: "1"},
			{ID: 20, ChapterNumber: "2"},
		},
	}})
	m = model.(*MangaDetailsModel)

	// Chapters sort into reading order, chapter 2 sits at index 1
	assert.Equal(t, 1, m.cursor)
}
