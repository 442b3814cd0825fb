package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/service"
	kb "github.com/yomu-dev/yomu/internal/ui/tui/keybindings"
	"github.com/yomu-dev/yomu/internal/ui/tui/styles"
)

// ChapterSelectModel is the chapter jump modal shown over the reader
type ChapterSelectModel struct {
	width, height  int
	mangaID        int
	mangaTitle     string
	chapters       []domain.ChapterRef
	filtered       []domain.ChapterRef
	cursor         int
	searchInput    textinput.Model
	searchMode     bool
	viewportOffset int
}

// NewChapterSelectModel creates a chapter jump modal from the current read view
func NewChapterSelectModel(view *service.ReadView) *ChapterSelectModel {
	input := textinput.New()
	input.Placeholder = "Filter chapters..."
	input.Width = 30

	chapters := domain.SortChapters(view.Manga.Chapters)

	// Start the cursor on the chapter being read
	cursor := 0
	for i, chapter := range chapters {
		if chapter.ID == view.Chapter.ID {
			cursor = i
			break
		}
	}

	return &ChapterSelectModel{
		mangaID:     view.Manga.ID,
		mangaTitle:  view.Manga.Title,
		chapters:    chapters,
		filtered:    chapters,
		cursor:      cursor,
		searchInput: input,
	}
}

// Searching reports whether the filter input currently captures keys
func (m *ChapterSelectModel) Searching() bool {
	return m.searchMode
}

func (m *ChapterSelectModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ChapterSelectModel) Init() tea.Cmd {
	return nil
}

func (m *ChapterSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := m.handleSearchModeKey(key); handled {
			return m, cmd
		}
		return m, m.handleKey(key)
	}
	return m, nil
}

func (m *ChapterSelectModel) handleSearchModeKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !m.searchMode {
		return nil, false
	}

	switch kb.GetActionByKey(msg, kb.ContextSearchMode) {
	case kb.ActionBack:
		m.searchMode = false
		m.searchInput.SetValue("")
		m.applyFilter()
		return nil, true
	case kb.ActionSearchComplete:
		m.searchMode = false
		m.applyFilter()
		return nil, true
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applyFilter()
	return cmd, true
}

func (m *ChapterSelectModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextChapterSelect) {
	case kb.ActionSelectChapter:
		if m.cursor >= 0 && m.cursor < len(m.filtered) {
			number := m.filtered[m.cursor].ChapterNumber
			mangaID := m.mangaID
			return func() tea.Msg {
				return OpenReaderMsg{MangaID: mangaID, ChapterNumber: number}
			}
		}
	case kb.ActionEnableSearch:
		m.searchMode = true
		m.searchInput.Focus()
		return textinput.Blink
	case kb.ActionMoveDown:
		if len(m.filtered) > 0 && m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
	case kb.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
	case kb.ActionPageDown:
		m.cursor = min(len(m.filtered)-1, m.cursor+m.pageSize())
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.ensureCursorVisible()
	case kb.ActionPageUp:
		m.cursor = max(0, m.cursor-m.pageSize())
		m.ensureCursorVisible()
	case kb.ActionMoveTop:
		m.cursor = 0
		m.ensureCursorVisible()
	case kb.ActionMoveBottom:
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		}
		m.ensureCursorVisible()
	}
	return nil
}

func (m *ChapterSelectModel) pageSize() int {
	return max(1, m.height-11)
}

// applyFilter filters chapters based on search input
func (m *ChapterSelectModel) applyFilter() {
	query := m.searchInput.Value()
	if query == "" {
		m.filtered = m.chapters
	} else {
		var filtered []domain.ChapterRef
		for _, chapter := range m.chapters {
			if fuzzy.Match(query, chapter.ChapterNumber) {
				filtered = append(filtered, chapter)
			}
		}
		m.filtered = filtered
	}

	if len(m.filtered) == 0 {
		m.cursor = 0
	} else if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	m.ensureCursorVisible()
}

// ensureCursorVisible adjusts the viewport offset to keep the cursor visible
func (m *ChapterSelectModel) ensureCursorVisible() {
	if len(m.filtered) == 0 {
		m.cursor = 0
		m.viewportOffset = 0
		return
	}

	visibleCount := min(len(m.filtered), m.pageSize())
	if len(m.filtered) <= visibleCount {
		m.viewportOffset = 0
		return
	}

	if m.cursor < m.viewportOffset {
		m.viewportOffset = m.cursor
	}
	if m.cursor >= m.viewportOffset+visibleCount {
		m.viewportOffset = max(0, m.cursor-visibleCount+1)
	}

	maxPossibleOffset := max(0, len(m.filtered)-visibleCount)
	if m.viewportOffset > maxPossibleOffset {
		m.viewportOffset = maxPossibleOffset
	}
}

func (m *ChapterSelectModel) View() string {
	header := styles.Header(m.width, "Jump to Chapter - "+m.mangaTitle)
	content := m.renderChapterList()

	if m.searchMode {
		searchPrompt := styles.Title.Render("Search: ") + m.searchInput.View()
		content = lipgloss.JoinVertical(lipgloss.Left, searchPrompt, content)
	}

	keyBindings := " ↑/↓: Navigate • Enter: Open • /: Search • Esc: Cancel "
	footer := styles.FilterStatus.Render(keyBindings)

	return fmt.Sprintf("%s\n\n%s\n\n%s", header, content, footer)
}

// renderChapterList renders the filtered chapters
func (m *ChapterSelectModel) renderChapterList() string {
	if len(m.filtered) == 0 {
		if m.searchInput.Value() != "" {
			return styles.CenteredText(m.width, "No chapters match your filter")
		}
		return styles.CenteredText(m.width, "No chapters found")
	}

	visibleCount := min(len(m.filtered), m.pageSize())
	startIdx := m.viewportOffset
	endIdx := min(len(m.filtered), startIdx+visibleCount)

	listContent := styles.ListHeader(m.width-4, fmt.Sprintf("%-14s %s", "Chapter", "Released")) + "\n"
	listContent += strings.Repeat("─", max(1, m.width-6)) + "\n"

	for i := startIdx; i < endIdx; i++ {
		chapter := m.filtered[i]
		released := ""
		if !chapter.ReleasedAt.IsZero() {
			released = chapter.ReleasedAt.Format("2006-01-02")
		}
		row := fmt.Sprintf("%-14s %s", "Chapter "+chapter.ChapterNumber, released)
		listContent += styles.ListItem(m.width-4, row, i == m.cursor) + "\n"
	}

	return listContent
}
