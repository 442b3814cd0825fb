package models

import (
	"context"
	"fmt"
	"strings"
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

// homeStrip identifies one of the horizontal strips on the home screen
type homeStrip int

const (
	stripFeatured homeStrip = iota
	stripLatest
	stripPopular
)

var stripTitles = map[homeStrip]string{
	stripFeatured: "Featured",
	stripLatest:   "Latest Updates",
	stripPopular:  "Most Popular",
}

// HomeModel shows the landing screen strips: featured, latest and popular
type HomeModel struct {
	svcs          *Services
	width, height int
	loading       bool
	loadError     error
	spinner       spinner.Model

	activeStrip homeStrip
	cursors     map[homeStrip]int
	strips      map[homeStrip][]domain.Manga
	pages       map[homeStrip]int
	pageCounts  map[homeStrip]int
}

// NewHomeModel creates a new home model
func NewHomeModel(svcs *Services) *HomeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0485A"))

	return &HomeModel{
		svcs:       svcs,
		loading:    true,
		spinner:    s,
		cursors:    map[homeStrip]int{},
		strips:     map[homeStrip][]domain.Manga{},
		pages:      map[homeStrip]int{},
		pageCounts: map[homeStrip]int{},
	}
}

// loadHome fetches all three strips in one command
func loadHome(svcs *Services) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		featured, err := svcs.Catalog.FetchFeatured(ctx)
		if err != nil {
			log.Error("Failed to load featured strip", "error", err)
			return HomeErrorMsg{Error: err}
		}
		latest, err := svcs.Catalog.FetchLatest(ctx, 1)
		if err != nil {
			log.Error("Failed to load latest strip", "error", err)
			return HomeErrorMsg{Error: err}
		}
		popular, err := svcs.Catalog.FetchPopular(ctx, 1)
		if err != nil {
			log.Error("Failed to load popular strip", "error", err)
			return HomeErrorMsg{Error: err}
		}

		return HomeLoadedMsg{
			Featured: featured,
			Latest:   latest,
			Popular:  popular,
		}
	}
}

// loadStripPage fetches one page of a paginating strip
func loadStripPage(svcs *Services, strip homeStrip, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var fetched *service.StripPage
		var err error
		if strip == stripLatest {
			fetched, err = svcs.Catalog.FetchLatest(ctx, page)
		} else {
			fetched, err = svcs.Catalog.FetchPopular(ctx, page)
		}
		if err != nil {
			log.Error("Failed to load strip page", "strip", int(strip), "page", page, "error", err)
			return HomeErrorMsg{Error: err}
		}
		return StripPageMsg{Strip: strip, Page: fetched}
	}
}

func (m *HomeModel) Init() tea.Cmd {
	m.loading = true
	m.loadError = nil
	return tea.Batch(m.spinner.Tick, loadHome(m.svcs))
}

func (m *HomeModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	case HomeLoadedMsg:
		m.loading = false
		m.strips[stripFeatured] = msg.Featured
		m.pages[stripFeatured] = 1
		m.pageCounts[stripFeatured] = 1
		m.applyStripPage(stripLatest, msg.Latest)
		m.applyStripPage(stripPopular, msg.Popular)
		m.clampCursors()
		return m, nil

	case StripPageMsg:
		// Entering from the right edge lands on the new page's first item,
		// from the left edge on its last.
		backwards := msg.Page.Page < m.pages[msg.Strip]
		m.applyStripPage(msg.Strip, msg.Page)
		if backwards && len(msg.Page.Mangas) > 0 {
			m.cursors[msg.Strip] = len(msg.Page.Mangas) - 1
		} else {
			m.cursors[msg.Strip] = 0
		}
		return m, nil

	case HomeErrorMsg:
		m.loading = false
		m.loadError = msg.Error
		return m, nil
	}

	return m, nil
}

func (m *HomeModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextHome) {
	case kb.ActionMoveUp:
		if m.activeStrip > stripFeatured {
			m.activeStrip--
		}
	case kb.ActionMoveDown:
		if m.activeStrip < stripPopular {
			m.activeStrip++
		}
	case kb.ActionMoveLeft:
		if m.cursors[m.activeStrip] > 0 {
			m.cursors[m.activeStrip]--
		} else if m.pages[m.activeStrip] > 1 {
			return loadStripPage(m.svcs, m.activeStrip, m.pages[m.activeStrip]-1)
		}
	case kb.ActionMoveRight:
		if m.cursors[m.activeStrip] < len(m.strips[m.activeStrip])-1 {
			m.cursors[m.activeStrip]++
		} else if m.pages[m.activeStrip] < m.pageCounts[m.activeStrip] {
			return loadStripPage(m.svcs, m.activeStrip, m.pages[m.activeStrip]+1)
		}
	case kb.ActionOpenDetails:
		if manga := m.selected(); manga != nil {
			mangaID := manga.ID
			return func() tea.Msg {
				return OpenMangaMsg{MangaID: mangaID}
			}
		}
	case kb.ActionOpenCatalog:
		return OpenView(ViewCatalog)
	case kb.ActionOpenProfile:
		return OpenView(ViewProfile)
	case kb.ActionOpenAdmin:
		return OpenView(ViewAdmin)
	case kb.ActionEnableSearch:
		return OpenCatalogSearch()
	case kb.ActionRefresh:
		return m.Init()
	}
	return nil
}

// applyStripPage stores a fetched page's content and pagination facts
func (m *HomeModel) applyStripPage(strip homeStrip, page *service.StripPage) {
	if page == nil {
		return
	}
	m.strips[strip] = page.Mangas
	m.pages[strip] = page.Page
	m.pageCounts[strip] = page.TotalPages
}

// selected returns the manga under the cursor in the active strip
func (m *HomeModel) selected() *domain.Manga {
	strip := m.strips[m.activeStrip]
	cursor := m.cursors[m.activeStrip]
	if cursor < 0 || cursor >= len(strip) {
		return nil
	}
	return &strip[cursor]
}

func (m *HomeModel) clampCursors() {
	for strip, cursor := range m.cursors {
		if count := len(m.strips[strip]); cursor >= count {
			if count == 0 {
				m.cursors[strip] = 0
			} else {
				m.cursors[strip] = count - 1
			}
		}
	}
}

func (m *HomeModel) View() string {
	header := styles.Header(m.width, "Yomu")

	if m.loading {
		return styles.CenteredView(
			m.width,
			m.height,
			fmt.Sprintf("%s Loading...", m.spinner.View()),
		)
	}

	if m.loadError != nil {
		errorMsg := fmt.Sprintf("Error loading home screen: %v\n\nPress 'r' to retry.", m.loadError)
		return styles.CenteredView(
			m.width,
			m.height,
			styles.ContentBox(m.width-20, errorMsg, 1),
		)
	}

	var b strings.Builder
	for strip := stripFeatured; strip <= stripPopular; strip++ {
		b.WriteString(m.renderStrip(strip))
		b.WriteString("\n")
	}

	user := "browsing as guest"
	if u := m.svcs.Session.User(); u != nil {
		user = "logged in as " + u.Username
	}
	status := styles.Subtle.Render(user)

	bindings := []components.KeyBinding{
		{Key: "↑/↓", Desc: "Strip"},
		{Key: "←/→", Desc: "Browse"},
		{Key: "enter", Desc: "Open"},
		{Key: "c", Desc: "Catalog"},
		{Key: "/", Desc: "Search"},
		{Key: "u", Desc: "Profile"},
	}
	if m.svcs.Session.IsStaff() {
		bindings = append(bindings, components.KeyBinding{Key: "a", Desc: "Admin"})
	}
	footer := components.KeyBindingsBar(m.width, bindings)

	return header + "\n\n" + b.String() + "\n" + styles.CenteredText(m.width, status) + "\n" + footer
}

// renderStrip renders one horizontal strip of manga titles
func (m *HomeModel) renderStrip(strip homeStrip) string {
	title := stripTitles[strip]
	if m.pageCounts[strip] > 1 {
		title = fmt.Sprintf("%s (%d/%d)", title, m.pages[strip], m.pageCounts[strip])
	}
	if strip == m.activeStrip {
		title = styles.Highlight.Render("▶ " + title)
	} else {
		title = styles.Info.Render("  " + title)
	}

	mangas := m.strips[strip]
	if len(mangas) == 0 {
		return title + "\n  " + styles.Subtle.Render("Nothing here yet") + "\n"
	}

	cursor := m.cursors[strip]
	cellWidth := 22
	perRow := max(1, (m.width-4)/cellWidth)

	// Window the strip around the cursor
	start := 0
	if cursor >= perRow {
		start = cursor - perRow + 1
	}
	end := min(len(mangas), start+perRow)

	var cells []string
	for i := start; i < end; i++ {
		label := util.TruncateString(mangas[i].Title, cellWidth-4)
		if strip == m.activeStrip && i == cursor {
			cells = append(cells, styles.ListItem(cellWidth-2, label, true))
		} else {
			cells = append(cells, styles.ListItem(cellWidth-2, label, false))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	return title + "\n" + row + "\n"
}
