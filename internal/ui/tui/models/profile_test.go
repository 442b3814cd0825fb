package models

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomu-dev/yomu/internal/history"
	"github.com/yomu-dev/yomu/internal/session"
)

func guestServices(t *testing.T) *Services {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.yaml"))
	require.NoError(t, err)
	return &Services{
		Session: session.New(nil, nil, nil),
		History: store,
	}
}

func TestProfileGuestSeesLocalHistory(t *testing.T) {
	svcs := guestServices(t)
	require.NoError(t, svcs.History.Record(history.Entry{
		MangaID:       7,
		MangaTitle:    "Berserk",
		ChapterID:     20,
		ChapterNumber: "2",
		ReadAt:        time.Now(),
	}))

	// A guest load never talks to the backend, so the command runs inline
	msg := loadProfile(svcs)()
	loaded, ok := msg.(ProfileLoadedMsg)
	require.True(t, ok)

	require.Len(t, loaded.History, 1)
	assert.Equal(t, "Berserk", loaded.History[0].MangaTitle)
	assert.Equal(t, "2", loaded.History[0].ChapterNumber)
	assert.Empty(t, loaded.Bookmarks)
}

func TestProfileGuestLandsOnHistoryTab(t *testing.T) {
	m := NewProfileModel(guestServices(t))
	m.Init()

	assert.Equal(t, tabHistory, m.activeTab)
}

func TestProfileClearsLocalHistory(t *testing.T) {
	svcs := guestServices(t)
	require.NoError(t, svcs.History.Record(history.Entry{MangaID: 7, MangaTitle: "Berserk"}))

	m := NewProfileModel(svcs)
	m.loading = false
	m.activeTab = tabHistory

	cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	require.NotNil(t, cmd)

	// The clear goes through the confirmation modal first
	confirm, ok := cmd().(ConfirmRequestMsg)
	require.True(t, ok)
	assert.Equal(t, "Clear local reading history?", confirm.Prompt)

	msg := confirm.OnConfirm()
	assert.IsType(t, LocalHistoryClearedMsg{}, msg)
	assert.Empty(t, svcs.History.Entries())
}

func TestProfileClearNoopWhenHistoryEmpty(t *testing.T) {
	m := NewProfileModel(guestServices(t))
	m.loading = false
	m.activeTab = tabHistory

	assert.Nil(t, m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}))
}
