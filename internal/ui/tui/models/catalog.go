package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
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

// Filter cycle values.  The empty string means no filter.
var (
	statusCycle   = []string{"", "Ongoing", "Completed", "Hiatus"}
	typeCycle     = []string{"", "Manga", "Manhwa", "Manhua"}
	orderingCycle = []string{"update", "latest", "popular", "title", "titlereverse"}
)

// CatalogModel handles browsing the filtered, paginated catalog
type CatalogModel struct {
	svcs          *Services
	width, height int
	loading       bool
	loadError     error
	spinner       spinner.Model

	searchInput textinput.Model
	searchMode  bool

	genres      []domain.Genre
	genreIdx    int // 0 means no genre filter, 1..n indexes into genres
	statusIdx   int
	typeIdx     int
	orderingIdx int

	page   *service.CatalogPage
	cursor int
}

// NewCatalogModel creates a new catalog model
func NewCatalogModel(svcs *Services) *CatalogModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0485A"))

	input := textinput.New()
	input.Placeholder = "Search titles..."
	input.Width = 30

	return &CatalogModel{
		svcs:        svcs,
		loading:     true,
		spinner:     s,
		searchInput: input,
	}
}

// EnableSearch puts the catalog straight into search mode when it opens
func (m *CatalogModel) EnableSearch() {
	m.searchMode = true
	m.searchInput.Focus()
}

// filters assembles the current filter state
func (m *CatalogModel) filters() service.Filters {
	genre := ""
	if m.genreIdx > 0 && m.genreIdx <= len(m.genres) {
		genre = m.genres[m.genreIdx-1].Name
	}
	return service.Filters{
		Search:   strings.TrimSpace(m.searchInput.Value()),
		Genre:    genre,
		Status:   statusCycle[m.statusIdx],
		Type:     typeCycle[m.typeIdx],
		Ordering: orderingCycle[m.orderingIdx],
	}
}

// loadCatalogPage fetches a page, stamped so stale responses can be dropped
func loadCatalogPage(svcs *Services, filters service.Filters, page int) tea.Cmd {
	seq := svcs.Catalog.NextSeq()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := svcs.Catalog.FetchPage(ctx, filters, page)
		if err != nil {
			log.Error("Failed to load catalog page", "page", page, "error", err)
			return CatalogErrorMsg{Seq: seq, Error: err}
		}
		return CatalogPageMsg{Seq: seq, Page: result}
	}
}

// loadGenres fetches the genre list for the filter cycle
func loadGenres(svcs *Services) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		genres, err := svcs.Catalog.Genres(ctx)
		if err != nil {
			log.Warn("Failed to load genres; genre filter unavailable", "error", err)
			return GenresLoadedMsg{}
		}
		return GenresLoadedMsg{Genres: genres}
	}
}

func (m *CatalogModel) Init() tea.Cmd {
	m.loading = true
	m.loadError = nil
	cmds := []tea.Cmd{m.spinner.Tick, loadCatalogPage(m.svcs, m.filters(), 1)}
	if len(m.genres) == 0 {
		cmds = append(cmds, loadGenres(m.svcs))
	}
	if m.searchMode {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

func (m *CatalogModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleSearchModeKey(msg); handled {
			return m, cmd
		}
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case GenresLoadedMsg:
		m.genres = msg.Genres
		return m, nil

	case CatalogPageMsg:
		if m.svcs.Catalog.Stale(msg.Seq) {
			log.Debug("Dropping stale catalog response", "seq", msg.Seq)
			return m, nil
		}
		m.loading = false
		m.page = msg.Page
		if m.cursor >= len(msg.Page.Mangas) {
			m.cursor = 0
		}
		return m, nil

	case CatalogErrorMsg:
		if m.svcs.Catalog.Stale(msg.Seq) {
			return m, nil
		}
		m.loading = false
		m.loadError = msg.Error
		return m, nil
	}

	return m, nil
}

// refetch loads the given page with the current filters
func (m *CatalogModel) refetch(page int) tea.Cmd {
	m.loading = true
	m.loadError = nil
	m.cursor = 0
	return tea.Batch(m.spinner.Tick, loadCatalogPage(m.svcs, m.filters(), page))
}

func (m *CatalogModel) handleSearchModeKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !m.searchMode {
		return nil, false
	}

	switch kb.GetActionByKey(msg, kb.ContextSearchMode) {
	case kb.ActionBack:
		m.searchMode = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		return m.refetch(1), true
	case kb.ActionSearchComplete:
		m.searchMode = false
		m.searchInput.Blur()
		return m.refetch(1), true
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return cmd, true
}

func (m *CatalogModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.loading {
		return nil
	}

	switch kb.GetActionByKey(msg, kb.ContextCatalog) {
	case kb.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case kb.ActionMoveDown:
		if m.page != nil && m.cursor < len(m.page.Mangas)-1 {
			m.cursor++
		}
	case kb.ActionMoveTop:
		m.cursor = 0
	case kb.ActionMoveBottom:
		if m.page != nil && len(m.page.Mangas) > 0 {
			m.cursor = len(m.page.Mangas) - 1
		}
	case kb.ActionOpenDetails:
		if manga := m.selected(); manga != nil {
			mangaID := manga.ID
			return func() tea.Msg {
				return OpenMangaMsg{MangaID: mangaID}
			}
		}
	case kb.ActionEnableSearch:
		m.searchMode = true
		m.searchInput.Focus()
		return textinput.Blink
	case kb.ActionCycleGenre:
		m.genreIdx = (m.genreIdx + 1) % (len(m.genres) + 1)
		return m.refetch(1)
	case kb.ActionCycleStatus:
		m.statusIdx = (m.statusIdx + 1) % len(statusCycle)
		return m.refetch(1)
	case kb.ActionCycleType:
		m.typeIdx = (m.typeIdx + 1) % len(typeCycle)
		return m.refetch(1)
	case kb.ActionCycleOrdering:
		m.orderingIdx = (m.orderingIdx + 1) % len(orderingCycle)
		return m.refetch(1)
	case kb.ActionClearFilters:
		m.genreIdx = 0
		m.statusIdx = 0
		m.typeIdx = 0
		m.orderingIdx = 0
		m.searchInput.SetValue("")
		return m.refetch(1)
	case kb.ActionNextPage:
		if m.page != nil && m.page.Page < m.page.TotalPages {
			return m.refetch(m.page.Page + 1)
		}
	case kb.ActionPrevPage:
		if m.page != nil && m.page.Page > 1 {
			return m.refetch(m.page.Page - 1)
		}
	case kb.ActionRefresh:
		page := 1
		if m.page != nil {
			page = m.page.Page
		}
		return m.refetch(page)
	case kb.ActionBack:
		return Back()
	}
	return nil
}

// selected returns the manga under the cursor
func (m *CatalogModel) selected() *domain.Manga {
	if m.page == nil || m.cursor < 0 || m.cursor >= len(m.page.Mangas) {
		return nil
	}
	return &m.page.Mangas[m.cursor]
}

func (m *CatalogModel) View() string {
	header := styles.Header(m.width, "Yomu - Catalog")

	if m.loading {
		return styles.CenteredView(
			m.width,
			m.height,
			fmt.Sprintf("%s Loading catalog...", m.spinner.View()),
		)
	}

	if m.loadError != nil {
		errorMsg := fmt.Sprintf("Error loading catalog: %v\n\nPress 'r' to retry.", m.loadError)
		return styles.CenteredView(
			m.width,
			m.height,
			styles.ContentBox(m.width-20, errorMsg, 1),
		)
	}

	filterBar := m.renderFilterBar()
	content := m.renderList()

	var searchBar string
	if m.searchMode {
		searchBar = styles.Title.Render("Search: ") + m.searchInput.View() + "\n"
	}

	footer := components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "enter", Desc: "Open"},
		{Key: "/", Desc: "Search"},
		{Key: "g/s/t/o", Desc: "Filters"},
		{Key: "c", Desc: "Clear"},
		{Key: "←/→", Desc: "Page"},
		{Key: "esc", Desc: "Back"},
	})

	return header + "\n" + filterBar + "\n" + searchBar + content + "\n" + footer
}

// renderFilterBar shows the active filters and pagination position
func (m *CatalogModel) renderFilterBar() string {
	show := func(label, value string) string {
		if value == "" {
			value = "All"
		}
		return fmt.Sprintf("%s: %s", styles.Subtle.Render(label), value)
	}

	filters := m.filters()
	parts := []string{
		show("Genre", filters.Genre),
		show("Status", filters.Status),
		show("Type", filters.Type),
		show("Order", filters.Ordering),
	}
	if filters.Search != "" {
		parts = append(parts, show("Search", filters.Search))
	}
	if m.page != nil {
		parts = append(parts, fmt.Sprintf("Page %d/%d (%d titles)", m.page.Page, m.page.TotalPages, m.page.Total))
	}

	return styles.FilterStatus.Render(strings.Join(parts, "  |  "))
}

// renderList renders the result rows
func (m *CatalogModel) renderList() string {
	if m.page == nil || len(m.page.Mangas) == 0 {
		return styles.CenteredText(m.width, "No manga match the current filters")
	}

	availableHeight := m.height - 9
	if availableHeight < 1 {
		availableHeight = 1
	}
	visibleCount := min(len(m.page.Mangas), availableHeight)

	startIdx := 0
	if m.cursor >= visibleCount {
		startIdx = m.cursor - visibleCount + 1
	}
	endIdx := min(len(m.page.Mangas), startIdx+visibleCount)

	titleWidth := max(20, m.width-46)
	headerText := fmt.Sprintf("%-*s %-10s %-8s %8s %6s", titleWidth, "Title", "Status", "Type", "Views", "Score")
	listContent := styles.ListHeader(m.width-4, headerText) + "\n"
	listContent += strings.Repeat("─", max(1, m.width-6)) + "\n"

	for i := startIdx; i < endIdx; i++ {
		manga := m.page.Mangas[i]
		row := fmt.Sprintf("%-*s %-10s %-8s %8d %6.1f",
			titleWidth,
			util.TruncateString(manga.Title, titleWidth),
			manga.Status,
			manga.Type,
			manga.Views,
			manga.Rating)
		listContent += styles.ListItem(m.width-4, row, i == m.cursor) + "\n"
	}

	return listContent
}
