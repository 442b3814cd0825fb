package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	kb "github.com/yomu-dev/yomu/internal/ui/tui/keybindings"
	"github.com/yomu-dev/yomu/internal/ui/tui/styles"
)

// HelpModel displays contextual help with scrolling.  The content is rebuilt
// whenever it is shown over a different view.
type HelpModel struct {
	width, height int
	context       View
	hasContext    bool
	viewport      viewport.Model
}

// NewHelpModel creates a new help model
func NewHelpModel() *HelpModel {
	return &HelpModel{
		viewport: viewport.New(0, 0),
	}
}

// Update handles scrolling while the help modal is open
func (m *HelpModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextHelp) {
		case kb.ActionMoveUp, kb.ActionMoveDown, kb.ActionPageUp, kb.ActionPageDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return cmd
		case kb.ActionMoveTop:
			m.viewport.GotoTop()
			return nil
		case kb.ActionMoveBottom:
			m.viewport.GotoBottom()
			return nil
		}
	}
	return nil
}

// Resize updates the dimensions
func (m *HelpModel) Resize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := width - 4    // Account for borders
	contentHeight := height - 10 // Account for header, footer, spacing

	if contentWidth < 1 {
		contentWidth = 1
	}
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight

	if m.hasContext {
		m.viewport.SetContent(m.generateHelpContent())
	}
}

// View renders the help screen for the view it is overlaying
func (m *HelpModel) View(context View) string {
	if !m.hasContext || context != m.context {
		m.context = context
		m.hasContext = true
		m.viewport.SetContent(m.generateHelpContent())
		m.viewport.GotoTop()
	}

	header := styles.Header(m.width, "Help: "+m.getContextTitle())

	scrollText := "↑/↓: Scroll • PgUp/PgDn: Page scroll • Home/End: Goto top/bottom • ESC: Return"
	footer := styles.CenteredText(m.width, styles.Info.Render(scrollText))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"", // Spacing
		styles.ContentBox(m.width-2, m.viewport.View(), 1),
		"", // Spacing
		footer,
	)
}

// getContextTitle returns a user-friendly title for the context
func (m *HelpModel) getContextTitle() string {
	switch m.context {
	case ViewAuth:
		return "Authentication"
	case ViewHome:
		return "Home"
	case ViewCatalog:
		return "Catalog"
	case ViewMangaDetails:
		return "Manga Details"
	case ViewReader:
		return "Reader"
	case ViewProfile:
		return "Profile"
	case ViewAdmin:
		return "Admin Dashboard"
	case ViewMangaForm:
		return "Manga Form"
	default:
		return "General"
	}
}

// formatKeybindingSection formats a section of keybindings with aligned colons
func (m *HelpModel) formatKeybindingSection(title string, bindings []kb.Binding, skipActions map[kb.Action]bool) string {
	if len(bindings) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")

	// First pass: determine the maximum key width for alignment
	maxKeyWidth := 0
	for _, binding := range bindings {
		if skipActions != nil && skipActions[binding.Action] {
			continue
		}

		keyText := binding.KeyMap.Primary
		if binding.KeyMap.Secondary != "" {
			keyText += " or " + binding.KeyMap.Secondary
		}

		if width := utf8.RuneCountInString(keyText); width > maxKeyWidth {
			maxKeyWidth = width
		}
	}

	// Second pass: format each binding with aligned colons
	for _, binding := range bindings {
		if skipActions != nil && skipActions[binding.Action] {
			continue
		}

		keyText := binding.KeyMap.Primary
		if binding.KeyMap.Secondary != "" {
			keyText += " or " + binding.KeyMap.Secondary
		}

		padding := strings.Repeat(" ", maxKeyWidth-utf8.RuneCountInString(keyText))

		b.WriteString(fmt.Sprintf("• %s%s : %s\n",
			lipgloss.NewStyle().Bold(true).Render(keyText),
			padding,
			binding.KeyMap.Help))
	}

	return b.String()
}

// generateHelpContent builds the complete help content
func (m *HelpModel) generateHelpContent() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E0485A"))

	b.WriteString(titleStyle.Render(m.getContextTitle()))
	b.WriteString("\n\n")
	b.WriteString(m.getContextDescription())
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Keybindings"))
	b.WriteString("\n\n")

	globalBindings := m.formatKeybindingSection("Global commands:", kb.ContextBindings[kb.ContextGlobal], nil)
	b.WriteString(globalBindings)

	// Avoid duplicating global actions in the context-specific section
	globalActions := make(map[kb.Action]bool)
	for _, binding := range kb.ContextBindings[kb.ContextGlobal] {
		globalActions[binding.Action] = true
	}

	var contextName kb.ContextName
	switch m.context {
	case ViewAuth:
		contextName = kb.ContextAuth
	case ViewHome:
		contextName = kb.ContextHome
	case ViewCatalog:
		contextName = kb.ContextCatalog
	case ViewMangaDetails:
		contextName = kb.ContextMangaDetails
	case ViewReader:
		contextName = kb.ContextReader
	case ViewProfile:
		contextName = kb.ContextProfile
	case ViewAdmin:
		contextName = kb.ContextAdmin
	}

	if contextName != "" {
		if globalBindings != "" {
			b.WriteString("\n")
		}

		sectionTitle := fmt.Sprintf("%s commands:", m.getContextTitle())
		b.WriteString(m.formatKeybindingSection(sectionTitle, kb.ContextBindings[contextName], globalActions))

		if contextName == kb.ContextCatalog {
			b.WriteString("\n")
			b.WriteString(m.getFilterDetails())
		}
	}

	if m.context == ViewReader {
		b.WriteString("\n")
		b.WriteString(m.formatKeybindingSection("In the chapter jump modal:", kb.ContextBindings[kb.ContextChapterSelect], globalActions))
	}

	if m.context == ViewCatalog {
		b.WriteString("\n")
		b.WriteString(m.formatKeybindingSection("When in search mode:", kb.ContextBindings[kb.ContextSearchMode], nil))
	}

	return b.String()
}

// getFilterDetails returns a detailed explanation of the catalog filters
func (m *HelpModel) getFilterDetails() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E0485A"))
	b.WriteString(titleStyle.Render("Filters"))
	b.WriteString("\n\n")

	b.WriteString("Each filter key cycles through its options, returning to 'any' at the end:\n\n")
	b.WriteString("• [g] : Genre - Cycles through the site-wide genre tags\n")
	b.WriteString("• [s] : Status - Ongoing, Completed or Hiatus\n")
	b.WriteString("• [t] : Type - Manga, Manhwa or Manhua\n")
	b.WriteString("• [o] : Ordering - Recently updated, newest, most viewed, or by title\n\n")

	b.WriteString("Filters combine with the title search. Press 'c' to clear everything at once.\n")

	return b.String()
}

// getContextDescription returns help text for the current context
func (m *HelpModel) getContextDescription() string {
	switch m.context {
	case ViewAuth:
		return "Log in with your site account, or register a new one.\n\n" +
			"Press ctrl+r to switch between the login and registration forms. " +
			"An account is needed for bookmarks, ratings and synced reading history, " +
			"but you can browse and read as a guest."

	case ViewHome:
		return "The home screen shows three strips: featured series, the latest updates " +
			"and the most viewed series.\n\n" +
			"Move between strips with up/down and within a strip with left/right. " +
			"Press enter to open the selected series."

	case ViewCatalog:
		return "The catalog lists every series on the site with search, filters and pagination.\n\n" +
			"Start a title search with '/', cycle the filters with their keys, and page " +
			"through the results with left/right."

	case ViewMangaDetails:
		return "The details screen shows everything about one series: its description, " +
			"genres, chapter list and comments.\n\n" +
			"Select a chapter and press enter to start reading. When logged in you can " +
			"bookmark the series with 'b' and rate it by pressing 1 to 5."

	case ViewReader:
		return "The reader shows the pages of the current chapter.\n\n" +
			"Move through pages with up/down, jump to the next or previous chapter with " +
			"'n' and 'p', or open the chapter jump modal with ctrl+p. Your reading " +
			"position is recorded automatically."

	case ViewProfile:
		return "Your profile collects your bookmarks and reading history. The history " +
			"merges what this machine recorded with the synced backend history, so it " +
			"works for guests too.\n\n" +
			"Switch between the two tabs with tab, open a series with enter, remove a " +
			"bookmark with 'd', or press 'd' on the history tab to clear the local file."

	case ViewAdmin:
		return "The admin dashboard is the staff back office.\n\n" +
			"The analytics tab shows site totals, daily views and the most viewed series. " +
			"The mangas tab manages the catalog including chapter uploads, the users tab " +
			"manages accounts, the comments tab moderates every comment on the site, and " +
			"the genres tab removes unused tags."

	case ViewMangaForm:
		return "Create a new series or edit an existing one.\n\n" +
			"Move between fields with tab, toggle the featured flag with ctrl+t, and " +
			"save with ctrl+s. On the genre field, typing filters the site's tags, " +
			"enter adds the typed name (creating it when new), ctrl+n and ctrl+p pick " +
			"a suggestion, ctrl+x drops the last tag and ctrl+d deletes a genre " +
			"everywhere. Cover and banner images are uploaded from local file paths."

	default:
		return "Yomu is a terminal client for reading manga."
	}
}
