package models

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
	"github.com/yomu-dev/yomu/internal/service"
	"github.com/yomu-dev/yomu/internal/ui/tui/components"
	kb "github.com/yomu-dev/yomu/internal/ui/tui/keybindings"
	"github.com/yomu-dev/yomu/internal/ui/tui/styles"
	"github.com/yomu-dev/yomu/internal/ui/tui/util"
)

// profileTab selects between the bookmark list and the reading history
type profileTab int

const (
	tabBookmarks profileTab = iota
	tabHistory
)

// ProfileModel shows the logged in user's bookmarks and reading history
type ProfileModel struct {
	svcs          *Services
	width, height int
	loading       bool
	loadError     error
	spinner       spinner.Model

	activeTab profileTab
	cursor    int
	bookmarks []domain.Bookmark
	history   []domain.HistoryEntry

	statusText string
}

// NewProfileModel creates a new profile model
func NewProfileModel(svcs *Services) *ProfileModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0485A"))

	return &ProfileModel{
		svcs:    svcs,
		loading: true,
		spinner: s,
	}
}

// loadProfile fetches bookmarks and the backend reading history.  The local
// history file is merged in either way, so a guest still sees what they read
// on this machine.
func loadProfile(svcs *Services) tea.Cmd {
	return func() tea.Msg {
		local := svcs.History.Entries()

		if !svcs.Session.LoggedIn() {
			return ProfileLoadedMsg{History: service.MergeHistory(nil, local)}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		bookmarks, err := svcs.Interactions.BookmarksList(ctx)
		if err != nil {
			log.Error("Failed to load bookmarks", "error", err)
			return ProfileErrorMsg{Error: err}
		}

		history, err := svcs.Interactions.HistoryList(ctx)
		if err != nil {
			// The profile is still useful without backend history
			log.Warn("Failed to load reading history", "error", err)
		}

		return ProfileLoadedMsg{
			Bookmarks: bookmarks,
			History:   service.MergeHistory(history, local),
		}
	}
}

// clearLocalHistory wipes the history file on this machine
func clearLocalHistory(svcs *Services) tea.Cmd {
	return func() tea.Msg {
		if err := svcs.History.Clear(); err != nil {
			log.Error("Failed to clear local history", "error", err)
			return ProfileErrorMsg{Error: err}
		}
		return LocalHistoryClearedMsg{}
	}
}

// removeBookmark deletes a bookmark and reports which one is gone
func removeBookmark(svcs *Services, bookmarkID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svcs.Interactions.RemoveBookmark(ctx, bookmarkID); err != nil {
			log.Error("Failed to remove bookmark", "id", bookmarkID, "error", err)
			return ProfileErrorMsg{Error: err}
		}
		return BookmarkRemovedMsg{BookmarkID: bookmarkID}
	}
}

func (m *ProfileModel) Init() tea.Cmd {
	m.loading = true
	m.loadError = nil
	if !m.svcs.Session.LoggedIn() {
		// Guests have no bookmarks, land them on their local history
		m.activeTab = tabHistory
		m.cursor = 0
	}
	return tea.Batch(m.spinner.Tick, loadProfile(m.svcs))
}

func (m *ProfileModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case ProfileLoadedMsg:
		m.loading = false
		m.bookmarks = msg.Bookmarks
		m.history = msg.History
		m.clampCursor()
		return m, nil

	case ProfileErrorMsg:
		m.loading = false
		m.loadError = msg.Error
		return m, nil

	case BookmarkRemovedMsg:
		kept := m.bookmarks[:0]
		for _, bookmark := range m.bookmarks {
			if bookmark.ID != msg.BookmarkID {
				kept = append(kept, bookmark)
			}
		}
		m.bookmarks = kept
		m.statusText = "Bookmark removed"
		m.clampCursor()
		return m, nil

	case LocalHistoryClearedMsg:
		m.statusText = "Local history cleared"
		return m, loadProfile(m.svcs)
	}

	return m, nil
}

func (m *ProfileModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextProfile) {
	case kb.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case kb.ActionMoveDown:
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
	case kb.ActionSwitchTab:
		if m.activeTab == tabBookmarks {
			m.activeTab = tabHistory
		} else {
			m.activeTab = tabBookmarks
		}
		m.cursor = 0
	case kb.ActionOpenDetails:
		if mangaID := m.selectedMangaID(); mangaID > 0 {
			return func() tea.Msg {
				return OpenMangaMsg{MangaID: mangaID}
			}
		}
	case kb.ActionRemoveBookmark:
		if m.activeTab == tabBookmarks {
			if m.cursor < len(m.bookmarks) {
				return removeBookmark(m.svcs, m.bookmarks[m.cursor].ID)
			}
			return nil
		}
		if len(m.svcs.History.Entries()) > 0 {
			return Confirm("Clear local reading history?", clearLocalHistory(m.svcs))
		}
	case kb.ActionRefresh:
		return m.Init()
	case kb.ActionBack:
		return Back()
	}
	return nil
}

func (m *ProfileModel) itemCount() int {
	if m.activeTab == tabBookmarks {
		return len(m.bookmarks)
	}
	return len(m.history)
}

func (m *ProfileModel) selectedMangaID() int {
	if m.activeTab == tabBookmarks {
		if m.cursor < len(m.bookmarks) {
			return m.bookmarks[m.cursor].Manga
		}
		return 0
	}
	if m.cursor < len(m.history) {
		return m.history[m.cursor].Manga
	}
	return 0
}

func (m *ProfileModel) clampCursor() {
	if count := m.itemCount(); m.cursor >= count {
		if count == 0 {
			m.cursor = 0
		} else {
			m.cursor = count - 1
		}
	}
}

func (m *ProfileModel) View() string {
	username := "guest"
	if user := m.svcs.Session.User(); user != nil {
		username = user.Username
	}
	header := styles.Header(m.width, "Profile - "+username)

	if m.loading {
		return styles.CenteredView(
			m.width,
			m.height,
			fmt.Sprintf("%s Loading profile...", m.spinner.View()),
		)
	}

	if m.loadError != nil {
		errorMsg := fmt.Sprintf("Error loading profile: %v\n\nPress 'r' to retry.", m.loadError)
		return styles.CenteredView(
			m.width,
			m.height,
			styles.ContentBox(m.width-20, errorMsg, 1),
		)
	}

	tabs := m.renderTabs()
	var content string
	if m.activeTab == tabBookmarks {
		content = m.renderBookmarks()
	} else {
		content = m.renderHistory()
	}

	var statusLine string
	if m.statusText != "" {
		statusLine = styles.CenteredText(m.width, styles.Subtle.Render(m.statusText)) + "\n"
	}

	footer := components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "tab", Desc: "Switch tab"},
		{Key: "enter", Desc: "Open"},
		{Key: "d", Desc: "Remove bookmark / clear history"},
		{Key: "r", Desc: "Refresh"},
		{Key: "esc", Desc: "Back"},
	})

	return header + "\n" + tabs + "\n\n" + content + "\n" + statusLine + footer
}

func (m *ProfileModel) renderTabs() string {
	bookmarks := styles.Tab.Render(fmt.Sprintf("Bookmarks (%d)", len(m.bookmarks)))
	history := styles.Tab.Render(fmt.Sprintf("History (%d)", len(m.history)))
	if m.activeTab == tabBookmarks {
		bookmarks = styles.ActiveTab.Render(fmt.Sprintf("Bookmarks (%d)", len(m.bookmarks)))
	} else {
		history = styles.ActiveTab.Render(fmt.Sprintf("History (%d)", len(m.history)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, bookmarks, history)
}

func (m *ProfileModel) renderBookmarks() string {
	if len(m.bookmarks) == 0 {
		if !m.svcs.Session.LoggedIn() {
			return styles.CenteredText(m.width, "Log in to bookmark manga")
		}
		return styles.CenteredText(m.width, "No bookmarks yet")
	}

	titleWidth := max(20, m.width-24)
	listContent := styles.ListHeader(m.width-4, fmt.Sprintf("%-*s %s", titleWidth, "Title", "Added")) + "\n"
	for i, bookmark := range m.visibleBookmarks() {
		row := fmt.Sprintf("%-*s %s",
			titleWidth,
			util.TruncateString(bookmark.MangaTitle, titleWidth),
			util.FormatRelativeTime(bookmark.CreatedAt))
		listContent += styles.ListItem(m.width-4, row, m.rowSelected(i)) + "\n"
	}
	return listContent
}

func (m *ProfileModel) renderHistory() string {
	if len(m.history) == 0 {
		return styles.CenteredText(m.width, "No reading history yet")
	}

	titleWidth := max(20, m.width-36)
	listContent := styles.ListHeader(m.width-4, fmt.Sprintf("%-*s %-12s %s", titleWidth, "Title", "Chapter", "Read")) + "\n"
	for i, entry := range m.visibleHistory() {
		row := fmt.Sprintf("%-*s %-12s %s",
			titleWidth,
			util.TruncateString(entry.MangaTitle, titleWidth),
			entry.ChapterNumber,
			util.FormatRelativeTime(entry.LastReadAt))
		listContent += styles.ListItem(m.width-4, row, m.rowSelected(i)) + "\n"
	}
	return listContent
}

// visibleBookmarks windows the bookmark list around the cursor
func (m *ProfileModel) visibleBookmarks() []domain.Bookmark {
	start, end := m.window(len(m.bookmarks))
	return m.bookmarks[start:end]
}

// visibleHistory windows the history list around the cursor
func (m *ProfileModel) visibleHistory() []domain.HistoryEntry {
	start, end := m.window(len(m.history))
	return m.history[start:end]
}

func (m *ProfileModel) window(count int) (int, int) {
	availableHeight := m.height - 10
	if availableHeight < 1 {
		availableHeight = 1
	}
	visibleCount := min(count, availableHeight)

	start := 0
	if m.cursor >= visibleCount {
		start = m.cursor - visibleCount + 1
	}
	return start, min(count, start+visibleCount)
}

// rowSelected translates a windowed row index back to a cursor comparison
func (m *ProfileModel) rowSelected(rowIdx int) bool {
	start, _ := m.window(m.itemCount())
	return start+rowIdx == m.cursor
}
