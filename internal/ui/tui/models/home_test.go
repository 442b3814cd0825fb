package models

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/service"
)

func loadedHome(t *testing.T) *HomeModel {
	t.Helper()
	m := NewHomeModel(&Services{})
	_, _ = m.Update(HomeLoadedMsg{
		Featured: []domain.Manga{{ID: 1}},
		Latest:   &service.StripPage{Mangas: []domain.Manga{{ID: 2}, {ID: 3}}, Page: 1, TotalPages: 3},
		Popular:  &service.StripPage{Mangas: make([]domain.Manga, 6), Page: 1, TotalPages: 7},
	})
	m.loading = false
	return m
}

func TestHomeTracksStripPageState(t *testing.T) {
	m := loadedHome(t)

	assert.Equal(t, 1, m.pages[stripPopular])
	assert.Equal(t, 7, m.pageCounts[stripPopular])
	assert.Equal(t, 3, m.pageCounts[stripLatest])

	// Featured never paginates
	assert.Equal(t, 1, m.pageCounts[stripFeatured])
}

func TestHomeRightEdgeFetchesNextPage(t *testing.T) {
	m := loadedHome(t)
	m.activeStrip = stripPopular
	m.cursors[stripPopular] = 5

	// More pages remain, so the edge issues a fetch
	cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)

	// On the final page the edge is a no-op
	m.pages[stripPopular] = 7
	assert.Nil(t, m.handleKey(tea.KeyMsg{Type: tea.KeyRight}))
}

func TestHomeLeftEdgeFetchesPreviousPage(t *testing.T) {
	m := loadedHome(t)
	m.activeStrip = stripLatest
	m.cursors[stripLatest] = 0

	// First page, nothing before it
	assert.Nil(t, m.handleKey(tea.KeyMsg{Type: tea.KeyLeft}))

	m.pages[stripLatest] = 2
	require.NotNil(t, m.handleKey(tea.KeyMsg{Type: tea.KeyLeft}))
}

func TestHomeStripPageLandsCursorByDirection(t *testing.T) {
	m := loadedHome(t)
	m.pages[stripPopular] = 2

	// Arriving from the right edge of the previous page lands on the last item
	_, _ = m.Update(StripPageMsg{
		Strip: stripPopular,
		Page:  &service.StripPage{Mangas: make([]domain.Manga, 6), Page: 1, TotalPages: 7},
	})
	assert.Equal(t, 5, m.cursors[stripPopular])
	assert.Equal(t, 1, m.pages[stripPopular])

	// Advancing lands on the first item
	_, _ = m.Update(StripPageMsg{
		Strip: stripPopular,
		Page:  &service.StripPage{Mangas: make([]domain.Manga, 6), Page: 2, TotalPages: 7},
	})
	assert.Equal(t, 0, m.cursors[stripPopular])
}
