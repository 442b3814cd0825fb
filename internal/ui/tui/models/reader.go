package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yomu-dev/yomu/internal/log"
	"github.com/yomu-dev/yomu/internal/service"
	"github.com/yomu-dev/yomu/internal/ui/tui/components"
	kb "github.com/yomu-dev/yomu/internal/ui/tui/keybindings"
	"github.com/yomu-dev/yomu/internal/ui/tui/styles"
)

// ReaderModel displays a chapter as its ordered page list with next/previous
// chapter navigation.  Page URLs are resolved against the API host so they
// can be opened directly.
type ReaderModel struct {
	svcs          *Services
	width, height int
	mangaID       int
	chapterNumber string
	loading       bool
	loadError     error
	spinner       spinner.Model

	view       *service.ReadView
	pageCursor int
}

// NewReaderModel creates a reader for one chapter
func NewReaderModel(svcs *Services, mangaID int, chapterNumber string) *ReaderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0485A"))

	return &ReaderModel{
		svcs:          svcs,
		mangaID:       mangaID,
		chapterNumber: chapterNumber,
		loading:       true,
		spinner:       s,
	}
}

// loadChapter resolves the chapter and records the read
func loadChapter(svcs *Services, mangaID int, chapterNumber string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		view, err := svcs.Reader.Resolve(ctx, mangaID, chapterNumber)
		if err != nil {
			log.Error("Failed to load chapter", "manga", mangaID, "chapter", chapterNumber, "error", err)
			return ChapterErrorMsg{Error: err}
		}

		svcs.Reader.RecordProgress(ctx, view)
		return ChapterLoadedMsg{View: view}
	}
}

func (m *ReaderModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadChapter(m.svcs, m.mangaID, m.chapterNumber))
}

func (m *ReaderModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ReaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	case ChapterLoadedMsg:
		m.loading = false
		m.view = msg.View
		m.chapterNumber = msg.View.Chapter.ChapterNumber
		m.pageCursor = 0
		return m, nil

	case ChapterErrorMsg:
		m.loading = false
		m.loadError = msg.Error
		return m, nil
	}

	return m, nil
}

func (m *ReaderModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextReader) {
	case kb.ActionMoveUp:
		if m.pageCursor > 0 {
			m.pageCursor--
		}
	case kb.ActionMoveDown:
		if m.view != nil && m.pageCursor < len(m.view.Chapter.Pages)-1 {
			m.pageCursor++
		}
	case kb.ActionMoveTop:
		m.pageCursor = 0
	case kb.ActionMoveBottom:
		if m.view != nil && len(m.view.Chapter.Pages) > 0 {
			m.pageCursor = len(m.view.Chapter.Pages) - 1
		}
	case kb.ActionNextChapter:
		if m.view != nil && m.view.Next != nil {
			return m.openChapter(m.view.Next.ChapterNumber)
		}
	case kb.ActionPrevChapter:
		if m.view != nil && m.view.Prev != nil {
			return m.openChapter(m.view.Prev.ChapterNumber)
		}
	case kb.ActionOpenChapterSelect:
		return func() tea.Msg {
			return OpenChapterSelectMsg{}
		}
	case kb.ActionBack:
		return Back()
	}
	return nil
}

// openChapter jumps to another chapter within the same manga
func (m *ReaderModel) openChapter(number string) tea.Cmd {
	mangaID := m.mangaID
	return func() tea.Msg {
		return OpenReaderMsg{MangaID: mangaID, ChapterNumber: number}
	}
}

func (m *ReaderModel) View() string {
	if m.loading {
		return styles.CenteredView(
			m.width,
			m.height,
			fmt.Sprintf("%s Loading chapter...", m.spinner.View()),
		)
	}

	if m.loadError != nil {
		errorMsg := fmt.Sprintf("Error loading chapter: %v\n\nPress esc to go back.", m.loadError)
		return styles.CenteredView(
			m.width,
			m.height,
			styles.ContentBox(m.width-20, errorMsg, 1),
		)
	}

	title := fmt.Sprintf("%s - Chapter %s", m.view.Manga.Title, m.view.Chapter.ChapterNumber)
	header := styles.Header(m.width, title)

	content := m.renderPages()

	// Show where the chapter sits in the reading order
	var position []string
	if m.view.Prev != nil {
		position = append(position, "prev: "+m.view.Prev.ChapterNumber)
	}
	if m.view.Next != nil {
		position = append(position, "next: "+m.view.Next.ChapterNumber)
	}
	positionLine := styles.CenteredText(m.width, styles.Subtle.Render(strings.Join(position, "  •  ")))

	footer := components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "↑/↓", Desc: "Pages"},
		{Key: "n", Desc: "Next chapter"},
		{Key: "p", Desc: "Previous chapter"},
		{Key: "ctrl+p", Desc: "Jump"},
		{Key: "esc", Desc: "Back"},
	})

	return header + "\n\n" + content + "\n" + positionLine + "\n" + footer
}

// renderPages renders the ordered page list with resolved URLs
func (m *ReaderModel) renderPages() string {
	pages := m.view.Chapter.Pages
	if len(pages) == 0 {
		return styles.CenteredText(m.width, "This chapter has no pages")
	}

	availableHeight := m.height - 9
	if availableHeight < 1 {
		availableHeight = 1
	}
	visibleCount := min(len(pages), availableHeight)

	startIdx := 0
	if m.pageCursor >= visibleCount {
		startIdx = m.pageCursor - visibleCount + 1
	}
	endIdx := min(len(pages), startIdx+visibleCount)

	var b strings.Builder
	for i := startIdx; i < endIdx; i++ {
		url := m.svcs.Client.ResolveImageURL(pages[i])
		label := fmt.Sprintf("Page %2d/%d  ", i+1, len(pages))
		if i == m.pageCursor {
			b.WriteString(styles.Highlight.Render("▶ "+label) + styles.Url.Render(url) + "\n")
		} else {
			b.WriteString("  " + label + styles.Subtle.Render(url) + "\n")
		}
	}
	return b.String()
}
