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

// adminTab selects one of the dashboard panels
type adminTab int

const (
	tabAnalytics adminTab = iota
	tabMangas
	tabUsers
	tabComments
	tabGenres

	adminTabCount
)

var adminTabTitles = map[adminTab]string{
	tabAnalytics: "Analytics",
	tabMangas:    "Mangas",
	tabUsers:     "Users",
	tabComments:  "Comments",
	tabGenres:    "Genres",
}

// adminPrompt is a small inline input flow on top of the dashboard
type adminPrompt int

const (
	promptNone adminPrompt = iota
	promptUploadChapter
	promptResetPassword
)

// AdminModel is the staff back office: analytics, catalog management,
// user administration and comment moderation.
type AdminModel struct {
	svcs          *Services
	width, height int
	loading       bool
	loadError     error
	spinner       spinner.Model

	activeTab adminTab
	cursor    int

	analytics *domain.Analytics
	mangaPage *service.CatalogPage
	users     []domain.User
	comments  []domain.Comment
	genres    []domain.Genre

	prompt       adminPrompt
	promptTarget int
	chapterInput textinput.Model
	dirInput     textinput.Model
	passInput    textinput.Model
	focused      *textinput.Model

	statusText string
}

// NewAdminModel creates a new admin dashboard model
func NewAdminModel(svcs *Services) *AdminModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0485A"))

	chapterInput := textinput.New()
	chapterInput.Placeholder = "Chapter number (e.g. 12 or 12.5)"
	chapterInput.CharLimit = 16
	chapterInput.Width = 40

	dirInput := textinput.New()
	dirInput.Placeholder = "Directory with page images"
	dirInput.Width = 40

	passInput := textinput.New()
	passInput.Placeholder = "New password (min 8 characters)"
	passInput.EchoMode = textinput.EchoPassword
	passInput.EchoCharacter = '•'
	passInput.Width = 40

	return &AdminModel{
		svcs:         svcs,
		loading:      true,
		spinner:      s,
		chapterInput: chapterInput,
		dirInput:     dirInput,
		passInput:    passInput,
	}
}

func (m *AdminModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload refetches the data behind the active tab
func (m *AdminModel) Reload() tea.Cmd {
	m.loading = true
	m.loadError = nil

	var load tea.Cmd
	switch m.activeTab {
	case tabAnalytics:
		load = loadAnalytics(m.svcs)
	case tabMangas:
		load = loadAdminMangas(m.svcs, m.mangaTabPage())
	case tabUsers:
		load = loadUsers(m.svcs)
	case tabComments:
		load = loadAdminComments(m.svcs)
	case tabGenres:
		load = loadAdminGenres(m.svcs)
	}
	return tea.Batch(m.spinner.Tick, load)
}

func (m *AdminModel) mangaTabPage() int {
	if m.mangaPage != nil {
		return m.mangaPage.Page
	}
	return 1
}

func loadAnalytics(svcs *Services) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		analytics, err := svcs.Admin.Analytics(ctx)
		if err != nil {
			log.Error("Failed to load analytics", "error", err)
			return AdminErrorMsg{Error: err}
		}
		return AnalyticsLoadedMsg{Analytics: analytics}
	}
}

func loadAdminMangas(svcs *Services, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := svcs.Catalog.FetchPage(ctx, service.Filters{Ordering: "latest"}, page)
		if err != nil {
			log.Error("Failed to load manga list", "error", err)
			return AdminErrorMsg{Error: err}
		}
		return AdminMangasLoadedMsg{Page: result}
	}
}

func loadUsers(svcs *Services) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		users, err := svcs.Admin.Users(ctx)
		if err != nil {
			log.Error("Failed to load users", "error", err)
			return AdminErrorMsg{Error: err}
		}
		return UsersLoadedMsg{Users: users}
	}
}

// loadAdminComments lists every comment on the site for moderation
func loadAdminComments(svcs *Services) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		comments, err := svcs.Interactions.Comments(ctx, 0, 0)
		if err != nil {
			log.Error("Failed to load comments for moderation", "error", err)
			return AdminErrorMsg{Error: err}
		}
		return AdminCommentsLoadedMsg{Comments: comments}
	}
}

func loadAdminGenres(svcs *Services) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		genres, err := svcs.Catalog.Genres(ctx)
		if err != nil {
			log.Error("Failed to load genres", "error", err)
			return AdminErrorMsg{Error: err}
		}
		return GenresLoadedMsg{Genres: genres}
	}
}

func deleteGenre(svcs *Services, genre domain.Genre) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := svcs.Interactions.DeleteGenre(ctx, genre, nil); err != nil {
			log.Error("Failed to delete genre", "id", genre.ID, "error", err)
			return AdminErrorMsg{Error: err}
		}
		return AdminActionDoneMsg{Info: fmt.Sprintf("Genre %q deleted", genre.Name)}
	}
}

func deleteManga(svcs *Services, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svcs.Admin.DeleteManga(ctx, id); err != nil {
			log.Error("Failed to delete manga", "id", id, "error", err)
			return AdminErrorMsg{Error: err}
		}
		return AdminActionDoneMsg{Info: "Manga deleted"}
	}
}

func deleteUser(svcs *Services, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svcs.Admin.DeleteUser(ctx, id); err != nil {
			log.Error("Failed to delete user", "id", id, "error", err)
			return AdminErrorMsg{Error: err}
		}
		return AdminActionDoneMsg{Info: "User deleted"}
	}
}

func deleteComment(svcs *Services, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svcs.Interactions.DeleteComment(ctx, id); err != nil {
			log.Error("Failed to delete comment", "id", id, "error", err)
			return AdminErrorMsg{Error: err}
		}
		return AdminActionDoneMsg{Info: "Comment deleted"}
	}
}

func uploadChapter(svcs *Services, mangaID int, chapterNumber, dir string) tea.Cmd {
	return func() tea.Msg {
		// Uploads can be slow, large pages over a slow link
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		chapter, err := svcs.Admin.UploadChapter(ctx, mangaID, chapterNumber, dir)
		if err != nil {
			log.Error("Chapter upload failed", "manga", mangaID, "error", err)
			return AdminErrorMsg{Error: err}
		}
		return AdminActionDoneMsg{Info: fmt.Sprintf("Uploaded chapter %s (%d pages)", chapter.ChapterNumber, len(chapter.Pages))}
	}
}

func resetPassword(svcs *Services, userID int, newPassword string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svcs.Admin.ResetPassword(ctx, userID, newPassword); err != nil {
			log.Error("Password reset failed", "user", userID, "error", err)
			return AdminErrorMsg{Error: err}
		}
		return AdminActionDoneMsg{Info: "Password reset"}
	}
}

func (m *AdminModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *AdminModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m, m.handlePromptKey(msg)
		}
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

	case AnalyticsLoadedMsg:
		m.loading = false
		m.analytics = msg.Analytics
		return m, nil

	case AdminMangasLoadedMsg:
		m.loading = false
		m.mangaPage = msg.Page
		m.clampCursor()
		return m, nil

	case UsersLoadedMsg:
		m.loading = false
		m.users = msg.Users
		m.clampCursor()
		return m, nil

	case AdminCommentsLoadedMsg:
		m.loading = false
		m.comments = msg.Comments
		m.clampCursor()
		return m, nil

	case GenresLoadedMsg:
		m.loading = false
		m.genres = msg.Genres
		m.clampCursor()
		return m, nil

	case AdminErrorMsg:
		m.loading = false
		m.loadError = msg.Error
		return m, nil

	case AdminActionDoneMsg:
		m.statusText = msg.Info
		return m, m.Reload()
	}

	return m, nil
}

func (m *AdminModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextAdmin) {
	case kb.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case kb.ActionMoveDown:
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
	case kb.ActionMoveTop:
		m.cursor = 0
	case kb.ActionMoveBottom:
		if count := m.itemCount(); count > 0 {
			m.cursor = count - 1
		}
	case kb.ActionSwitchTab:
		m.activeTab = (m.activeTab + 1) % adminTabCount
		m.cursor = 0
		m.statusText = ""
		return m.Reload()
	case kb.ActionNewManga:
		if m.activeTab == tabMangas {
			return func() tea.Msg {
				return OpenMangaFormMsg{}
			}
		}
	case kb.ActionEditManga:
		if manga := m.selectedManga(); manga != nil {
			return func() tea.Msg {
				return OpenMangaFormMsg{Manga: manga}
			}
		}
	case kb.ActionUploadChapter:
		if manga := m.selectedManga(); manga != nil {
			m.prompt = promptUploadChapter
			m.promptTarget = manga.ID
			m.statusText = ""
			m.chapterInput.SetValue("")
			m.dirInput.SetValue("")
			m.focusPromptField(&m.chapterInput)
			return textinput.Blink
		}
	case kb.ActionResetPassword:
		if user := m.selectedUser(); user != nil {
			m.prompt = promptResetPassword
			m.promptTarget = user.ID
			m.statusText = ""
			m.passInput.SetValue("")
			m.focusPromptField(&m.passInput)
			return textinput.Blink
		}
	case kb.ActionDelete:
		return m.deleteSelected()
	case kb.ActionNextPage:
		if m.activeTab == tabMangas && m.mangaPage != nil && m.mangaPage.Page < m.mangaPage.TotalPages {
			m.mangaPage.Page++
			return m.Reload()
		}
	case kb.ActionPrevPage:
		if m.activeTab == tabMangas && m.mangaPage != nil && m.mangaPage.Page > 1 {
			m.mangaPage.Page--
			return m.Reload()
		}
	case kb.ActionRefresh:
		m.statusText = ""
		return m.Reload()
	case kb.ActionBack:
		return Back()
	}
	return nil
}

// deleteSelected confirms then deletes whatever the cursor is on
func (m *AdminModel) deleteSelected() tea.Cmd {
	switch m.activeTab {
	case tabMangas:
		if manga := m.selectedManga(); manga != nil {
			prompt := fmt.Sprintf("Delete manga %q and all of its chapters?", manga.Title)
			return Confirm(prompt, deleteManga(m.svcs, manga.ID))
		}
	case tabUsers:
		if user := m.selectedUser(); user != nil {
			if current := m.svcs.Session.User(); current != nil && current.ID == user.ID {
				m.statusText = "You cannot delete your own account"
				return nil
			}
			prompt := fmt.Sprintf("Delete user %q?", user.Username)
			return Confirm(prompt, deleteUser(m.svcs, user.ID))
		}
	case tabComments:
		if m.cursor < len(m.comments) {
			comment := m.comments[m.cursor]
			prompt := fmt.Sprintf("Delete comment by %q?", comment.Name)
			return Confirm(prompt, deleteComment(m.svcs, comment.ID))
		}
	case tabGenres:
		if m.cursor < len(m.genres) {
			genre := m.genres[m.cursor]
			prompt := fmt.Sprintf("Delete genre %q? It is removed from every manga.", genre.Name)
			return Confirm(prompt, deleteGenre(m.svcs, genre))
		}
	}
	return nil
}

func (m *AdminModel) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.blurPromptFields()
		return nil
	case "tab":
		if m.prompt == promptUploadChapter {
			if m.focused == &m.chapterInput {
				m.focusPromptField(&m.dirInput)
			} else {
				m.focusPromptField(&m.chapterInput)
			}
			return textinput.Blink
		}
		return nil
	case "enter":
		return m.submitPrompt()
	}

	var cmd tea.Cmd
	switch m.focused {
	case &m.chapterInput:
		m.chapterInput, cmd = m.chapterInput.Update(msg)
	case &m.dirInput:
		m.dirInput, cmd = m.dirInput.Update(msg)
	case &m.passInput:
		m.passInput, cmd = m.passInput.Update(msg)
	}
	return cmd
}

func (m *AdminModel) submitPrompt() tea.Cmd {
	switch m.prompt {
	case promptUploadChapter:
		chapterNumber := strings.TrimSpace(m.chapterInput.Value())
		dir := strings.TrimSpace(m.dirInput.Value())
		if chapterNumber == "" {
			m.focusPromptField(&m.chapterInput)
			return textinput.Blink
		}
		if dir == "" {
			m.focusPromptField(&m.dirInput)
			return textinput.Blink
		}
		mangaID := m.promptTarget
		m.prompt = promptNone
		m.blurPromptFields()
		m.loading = true
		m.statusText = ""
		return tea.Batch(m.spinner.Tick, uploadChapter(m.svcs, mangaID, chapterNumber, dir))

	case promptResetPassword:
		password := m.passInput.Value()
		if len(password) < 8 {
			m.statusText = "Password must be at least 8 characters"
			return nil
		}
		userID := m.promptTarget
		m.prompt = promptNone
		m.blurPromptFields()
		m.loading = true
		m.statusText = ""
		return tea.Batch(m.spinner.Tick, resetPassword(m.svcs, userID, password))
	}
	return nil
}

func (m *AdminModel) focusPromptField(field *textinput.Model) {
	m.blurPromptFields()
	m.focused = field
	field.Focus()
}

func (m *AdminModel) blurPromptFields() {
	m.chapterInput.Blur()
	m.dirInput.Blur()
	m.passInput.Blur()
	m.focused = nil
}

func (m *AdminModel) itemCount() int {
	switch m.activeTab {
	case tabMangas:
		if m.mangaPage != nil {
			return len(m.mangaPage.Mangas)
		}
	case tabUsers:
		return len(m.users)
	case tabComments:
		return len(m.comments)
	case tabGenres:
		return len(m.genres)
	}
	return 0
}

func (m *AdminModel) selectedManga() *domain.Manga {
	if m.activeTab != tabMangas || m.mangaPage == nil {
		return nil
	}
	if m.cursor < 0 || m.cursor >= len(m.mangaPage.Mangas) {
		return nil
	}
	return &m.mangaPage.Mangas[m.cursor]
}

func (m *AdminModel) selectedUser() *domain.User {
	if m.activeTab != tabUsers || m.cursor < 0 || m.cursor >= len(m.users) {
		return nil
	}
	return &m.users[m.cursor]
}

func (m *AdminModel) clampCursor() {
	if count := m.itemCount(); m.cursor >= count {
		if count == 0 {
			m.cursor = 0
		} else {
			m.cursor = count - 1
		}
	}
}

func (m *AdminModel) View() string {
	header := styles.Header(m.width, "Admin Dashboard")

	if m.prompt != promptNone {
		return header + "\n\n" + m.renderPrompt()
	}

	if m.loading {
		return styles.CenteredView(
			m.width,
			m.height,
			fmt.Sprintf("%s Loading dashboard...", m.spinner.View()),
		)
	}

	if m.loadError != nil {
		errorMsg := fmt.Sprintf("Error: %v\n\nPress 'r' to retry.", m.loadError)
		return styles.CenteredView(
			m.width,
			m.height,
			styles.ContentBox(m.width-20, errorMsg, 1),
		)
	}

	var content string
	switch m.activeTab {
	case tabAnalytics:
		content = m.renderAnalytics()
	case tabMangas:
		content = m.renderMangas()
	case tabUsers:
		content = m.renderUsers()
	case tabComments:
		content = m.renderComments()
	case tabGenres:
		content = m.renderGenres()
	}

	var statusLine string
	if m.statusText != "" {
		statusLine = styles.CenteredText(m.width, styles.Highlight.Render(m.statusText)) + "\n"
	}

	return header + "\n" + m.renderTabs() + "\n\n" + content + "\n" + statusLine + m.renderFooter()
}

func (m *AdminModel) renderTabs() string {
	tabs := make([]string, 0, adminTabCount)
	for tab := tabAnalytics; tab < adminTabCount; tab++ {
		if tab == m.activeTab {
			tabs = append(tabs, styles.ActiveTab.Render(adminTabTitles[tab]))
		} else {
			tabs = append(tabs, styles.Tab.Render(adminTabTitles[tab]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *AdminModel) renderFooter() string {
	bindings := []components.KeyBinding{
		{Key: "tab", Desc: "Switch tab"},
	}
	switch m.activeTab {
	case tabMangas:
		bindings = append(bindings,
			components.KeyBinding{Key: "n", Desc: "New"},
			components.KeyBinding{Key: "e", Desc: "Edit"},
			components.KeyBinding{Key: "u", Desc: "Upload chapter"},
			components.KeyBinding{Key: "d", Desc: "Delete"},
		)
	case tabUsers:
		bindings = append(bindings,
			components.KeyBinding{Key: "p", Desc: "Reset password"},
			components.KeyBinding{Key: "d", Desc: "Delete"},
		)
	case tabComments, tabGenres:
		bindings = append(bindings,
			components.KeyBinding{Key: "d", Desc: "Delete"},
		)
	}
	bindings = append(bindings,
		components.KeyBinding{Key: "r", Desc: "Refresh"},
		components.KeyBinding{Key: "esc", Desc: "Back"},
	)
	return components.KeyBindingsBar(m.width, bindings)
}

// renderAnalytics draws the totals, a daily view bar chart and the
// most-viewed ranking.
func (m *AdminModel) renderAnalytics() string {
	if m.analytics == nil {
		return styles.CenteredText(m.width, "No analytics data")
	}

	var b strings.Builder
	totals := fmt.Sprintf("Mangas: %d   Chapters: %d   Total views: %d",
		m.analytics.TotalMangas, m.analytics.TotalChapters, m.analytics.TotalViews)
	b.WriteString(styles.CenteredText(m.width, styles.Info.Render(totals)))
	b.WriteString("\n\n")

	if len(m.analytics.ChartData) > 0 {
		b.WriteString(styles.ListHeader(m.width-4, "Views over the last days"))
		b.WriteString("\n")

		maxViews := 0
		for _, day := range m.analytics.ChartData {
			if day.Views > maxViews {
				maxViews = day.Views
			}
		}
		barWidth := max(10, m.width-40)
		for _, day := range m.analytics.ChartData {
			bar := 0
			if maxViews > 0 {
				bar = day.Views * barWidth / maxViews
			}
			line := fmt.Sprintf("  %-12s %s %d", day.Date, strings.Repeat("█", bar), day.Views)
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.analytics.TopMangas) > 0 {
		b.WriteString(styles.ListHeader(m.width-4, "Most viewed"))
		b.WriteString("\n")
		titleWidth := max(20, m.width-24)
		for i, top := range m.analytics.TopMangas {
			row := fmt.Sprintf("%2d. %-*s %d views",
				i+1, titleWidth, util.TruncateString(top.Title, titleWidth), top.Views)
			b.WriteString(styles.ListItem(m.width-4, row, false))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m *AdminModel) renderMangas() string {
	if m.mangaPage == nil || len(m.mangaPage.Mangas) == 0 {
		return styles.CenteredText(m.width, "No mangas")
	}

	titleWidth := max(20, m.width-46)
	listContent := styles.ListHeader(m.width-4,
		fmt.Sprintf("%-*s %-10s %-8s %8s %9s", titleWidth, "Title", "Status", "Type", "Views", "Featured")) + "\n"
	for i, manga := range m.mangaPage.Mangas {
		featured := ""
		if manga.IsFeatured {
			featured = "yes"
		}
		row := fmt.Sprintf("%-*s %-10s %-8s %8d %9s",
			titleWidth,
			util.TruncateString(manga.Title, titleWidth),
			manga.Status,
			manga.Type,
			manga.Views,
			featured)
		listContent += styles.ListItem(m.width-4, row, i == m.cursor) + "\n"
	}

	listContent += "\n" + styles.CenteredText(m.width,
		styles.Subtle.Render(fmt.Sprintf("Page %d of %d (%d mangas)",
			m.mangaPage.Page, m.mangaPage.TotalPages, m.mangaPage.Total)))
	return listContent
}

func (m *AdminModel) renderUsers() string {
	if len(m.users) == 0 {
		return styles.CenteredText(m.width, "No users")
	}

	nameWidth := max(16, m.width-50)
	listContent := styles.ListHeader(m.width-4,
		fmt.Sprintf("%5s %-*s %-30s %s", "ID", nameWidth, "Username", "Email", "Staff")) + "\n"
	for i, user := range m.users {
		staff := ""
		if user.IsStaff {
			staff = "yes"
		}
		row := fmt.Sprintf("%5d %-*s %-30s %s",
			user.ID,
			nameWidth,
			util.TruncateString(user.Username, nameWidth),
			util.TruncateString(user.Email, 30),
			staff)
		listContent += styles.ListItem(m.width-4, row, i == m.cursor) + "\n"
	}
	return listContent
}

func (m *AdminModel) renderComments() string {
	if len(m.comments) == 0 {
		return styles.CenteredText(m.width, "No comments")
	}

	contentWidth := max(20, m.width-44)
	listContent := styles.ListHeader(m.width-4,
		fmt.Sprintf("%-16s %-*s %s", "Author", contentWidth, "Comment", "Posted")) + "\n"
	for i, comment := range m.comments {
		row := fmt.Sprintf("%-16s %-*s %s",
			util.TruncateString(comment.Name, 16),
			contentWidth,
			util.TruncateString(comment.Content, contentWidth),
			util.FormatRelativeTime(comment.CreatedAt))
		listContent += styles.ListItem(m.width-4, row, i == m.cursor) + "\n"
	}
	return listContent
}

func (m *AdminModel) renderGenres() string {
	if len(m.genres) == 0 {
		return styles.CenteredText(m.width, "No genres")
	}

	listContent := styles.ListHeader(m.width-4, fmt.Sprintf("%5s %s", "ID", "Name")) + "\n"
	for i, genre := range m.genres {
		row := fmt.Sprintf("%5d %s", genre.ID, genre.Name)
		listContent += styles.ListItem(m.width-4, row, i == m.cursor) + "\n"
	}
	return listContent
}

func (m *AdminModel) renderPrompt() string {
	var form string
	switch m.prompt {
	case promptUploadChapter:
		form = styles.Title.Render("Upload chapter") + "\n\n" +
			"Chapter number:\n" + m.chapterInput.View() + "\n\n" +
			"Page directory:\n" + m.dirInput.View() + "\n\n" +
			styles.Subtle.Render("enter: upload   tab: next field   esc: cancel")
	case promptResetPassword:
		form = styles.Title.Render("Reset password") + "\n\n" +
			"New password:\n" + m.passInput.View() + "\n\n" +
			styles.Subtle.Render("enter: reset   esc: cancel")
	}

	boxWidth := min(m.width-4, 60)
	return styles.CenteredView(m.width, m.height-4, styles.ContentBox(boxWidth, form, 1))
}
