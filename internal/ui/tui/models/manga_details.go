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
	"github.com/yomu-dev/yomu/internal/history"
	"github.com/yomu-dev/yomu/internal/log"
	"github.com/yomu-dev/yomu/internal/service"
	"github.com/yomu-dev/yomu/internal/ui/tui/components"
	kb "github.com/yomu-dev/yomu/internal/ui/tui/keybindings"
	"github.com/yomu-dev/yomu/internal/ui/tui/styles"
	"github.com/yomu-dev/yomu/internal/ui/tui/util"
)

// MangaDetailsModel shows a single manga: metadata, chapters, bookmark and
// rating state, and the comment thread.
type MangaDetailsModel struct {
	svcs          *Services
	width, height int
	mangaID       int
	loading       bool
	loadError     error
	spinner       spinner.Model

	manga    *domain.Manga
	chapters []domain.ChapterRef
	cursor   int
	lastRead *history.Entry

	bookmark service.BookmarkState
	myRating *domain.Rating

	showComments bool
	comments     []domain.Comment
	commentInput textinput.Model
	nameInput    textinput.Model
	nameFocused  bool
	writingMode  bool

	statusText string
}

// NewMangaDetailsModel creates a details model for one manga
func NewMangaDetailsModel(svcs *Services, mangaID int) *MangaDetailsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0485A"))

	input := textinput.New()
	input.Placeholder = "Write a comment..."
	input.Width = 60
	input.CharLimit = 500

	name := textinput.New()
	name.Placeholder = "Guest"
	name.Width = 24
	name.CharLimit = 40

	return &MangaDetailsModel{
		svcs:         svcs,
		mangaID:      mangaID,
		loading:      true,
		spinner:      s,
		commentInput: input,
		nameInput:    name,
	}
}

// loadManga fetches the manga detail
func loadManga(svcs *Services, mangaID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		manga, err := svcs.Catalog.Get(ctx, mangaID)
		if err != nil {
			log.Error("Failed to load manga", "id", mangaID, "error", err)
			return MangaErrorMsg{Error: err}
		}
		return MangaLoadedMsg{Manga: manga}
	}
}

// loadBookmarkState resolves whether this manga is bookmarked
func loadBookmarkState(svcs *Services, mangaID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		state, err := svcs.Interactions.BookmarkStateFor(ctx, mangaID)
		if err != nil {
			log.Warn("Failed to load bookmark state", "manga", mangaID, "error", err)
			return BookmarkStateMsg{}
		}
		return BookmarkStateMsg{State: state}
	}
}

// loadOwnRating resolves the user's rating for this manga
func loadOwnRating(svcs *Services, mangaID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		rating, err := svcs.Interactions.RatingFor(ctx, mangaID)
		if err != nil {
			log.Warn("Failed to load own rating", "manga", mangaID, "error", err)
			return RatingLoadedMsg{}
		}
		return RatingLoadedMsg{Rating: rating}
	}
}

// loadComments fetches the manga-level comment thread
func loadComments(svcs *Services, mangaID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		comments, err := svcs.Interactions.Comments(ctx, mangaID, 0)
		if err != nil {
			log.Warn("Failed to load comments", "manga", mangaID, "error", err)
			return CommentsErrorMsg{Error: err}
		}
		return CommentsLoadedMsg{Comments: comments}
	}
}

func (m *MangaDetailsModel) Init() tea.Cmd {
	m.lastRead = m.svcs.Reader.LastRead(m.mangaID)
	cmds := []tea.Cmd{m.spinner.Tick, loadManga(m.svcs, m.mangaID)}
	if m.svcs.Session.LoggedIn() {
		cmds = append(cmds, loadBookmarkState(m.svcs, m.mangaID), loadOwnRating(m.svcs, m.mangaID))
	}
	return tea.Batch(cmds...)
}

func (m *MangaDetailsModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *MangaDetailsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.writingMode {
			return m, m.handleWritingKey(msg)
		}
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case MangaLoadedMsg:
		m.loading = false
		m.manga = msg.Manga
		m.chapters = domain.SortChapters(msg.Manga.Chapters)
		if m.cursor >= len(m.chapters) {
			m.cursor = 0
		}
		// Land the cursor on the last read chapter so enter continues reading
		if m.lastRead != nil {
			for i, ref := range m.chapters {
				if ref.ChapterNumber == m.lastRead.ChapterNumber {
					m.cursor = i
					break
				}
			}
		}
		return m, nil

	case MangaErrorMsg:
		m.loading = false
		m.loadError = msg.Error
		return m, nil

	case BookmarkStateMsg:
		m.bookmark = msg.State
		return m, nil

	case BookmarkToggleErrorMsg:
		// Roll the optimistic flip back
		log.Warn("Bookmark toggle failed, reverting", "manga", m.mangaID, "error", msg.Error)
		m.bookmark = msg.Previous
		m.statusText = "Bookmark update failed"
		return m, nil

	case RatingLoadedMsg:
		m.myRating = msg.Rating
		return m, nil

	case RatedMsg:
		m.myRating = msg.Rating
		m.statusText = fmt.Sprintf("Rated %d/5", msg.Rating.Score)
		return m, nil

	case CommentsLoadedMsg:
		m.comments = msg.Comments
		return m, nil

	case CommentsErrorMsg:
		m.statusText = fmt.Sprintf("Comments unavailable: %v", msg.Error)
		return m, nil

	case ChapterDeletedMsg:
		m.statusText = fmt.Sprintf("Deleted chapter %s", msg.ChapterNumber)
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, loadManga(m.svcs, m.mangaID))

	case ChapterErrorMsg:
		m.statusText = fmt.Sprintf("Chapter delete failed: %v", msg.Error)
		return m, nil
	}

	return m, nil
}

func (m *MangaDetailsModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Digit keys submit a rating
	if key := msg.String(); len(key) == 1 && key >= "1" && key <= "5" {
		return m.rate(int(key[0] - '0'))
	}

	switch kb.GetActionByKey(msg, kb.ContextMangaDetails) {
	case kb.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case kb.ActionMoveDown:
		if m.cursor < len(m.chapters)-1 {
			m.cursor++
		}
	case kb.ActionMoveTop:
		m.cursor = 0
	case kb.ActionMoveBottom:
		if len(m.chapters) > 0 {
			m.cursor = len(m.chapters) - 1
		}
	case kb.ActionReadChapter:
		if m.cursor < len(m.chapters) {
			number := m.chapters[m.cursor].ChapterNumber
			mangaID := m.mangaID
			return func() tea.Msg {
				return OpenReaderMsg{MangaID: mangaID, ChapterNumber: number}
			}
		}
	case kb.ActionToggleBookmark:
		return m.toggleBookmark()
	case kb.ActionDelete:
		return m.confirmDeleteChapter()
	case kb.ActionToggleComments:
		m.showComments = !m.showComments
		if m.showComments && m.comments == nil {
			return loadComments(m.svcs, m.mangaID)
		}
	case kb.ActionWriteComment:
		m.writingMode = true
		m.showComments = true
		m.commentInput.Focus()
		cmds := []tea.Cmd{textinput.Blink}
		if m.comments == nil {
			cmds = append(cmds, loadComments(m.svcs, m.mangaID))
		}
		return tea.Batch(cmds...)
	case kb.ActionRefresh:
		m.loading = true
		m.loadError = nil
		return m.Init()
	case kb.ActionBack:
		return Back()
	}
	return nil
}

func (m *MangaDetailsModel) handleWritingKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.exitWritingMode()
		m.commentInput.SetValue("")
		return nil
	case "tab", "shift+tab":
		// Guests get a name field next to the comment field
		if m.svcs.Session.LoggedIn() {
			return nil
		}
		m.nameFocused = !m.nameFocused
		if m.nameFocused {
			m.commentInput.Blur()
			return m.nameInput.Focus()
		}
		m.nameInput.Blur()
		return m.commentInput.Focus()
	case "enter":
		content := strings.TrimSpace(m.commentInput.Value())
		if content == "" {
			return nil
		}
		name := strings.TrimSpace(m.nameInput.Value())
		m.exitWritingMode()
		m.commentInput.SetValue("")
		return m.postComment(content, name)
	}

	var cmd tea.Cmd
	if m.nameFocused {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.commentInput, cmd = m.commentInput.Update(msg)
	}
	return cmd
}

// exitWritingMode blurs both inputs.  The name survives so a guest does not
// retype it for every comment.
func (m *MangaDetailsModel) exitWritingMode() {
	m.writingMode = false
	m.nameFocused = false
	m.commentInput.Blur()
	m.nameInput.Blur()
}

// toggleBookmark flips the bookmark optimistically and reconciles with the
// backend response.
func (m *MangaDetailsModel) toggleBookmark() tea.Cmd {
	if !m.svcs.Session.LoggedIn() {
		m.statusText = "Log in to bookmark manga"
		return nil
	}

	previous := m.bookmark
	m.bookmark = service.BookmarkState{Bookmarked: !previous.Bookmarked}

	svcs := m.svcs
	mangaID := m.mangaID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		state, err := svcs.Interactions.ToggleBookmark(ctx, mangaID, previous)
		if err != nil {
			return BookmarkToggleErrorMsg{Previous: previous, Error: err}
		}
		return BookmarkStateMsg{State: state}
	}
}

// confirmDeleteChapter routes a staff chapter deletion through the
// confirmation modal.
func (m *MangaDetailsModel) confirmDeleteChapter() tea.Cmd {
	if !m.svcs.Session.IsStaff() {
		return nil
	}
	if m.cursor >= len(m.chapters) {
		return nil
	}

	chapter := m.chapters[m.cursor]
	svcs := m.svcs
	prompt := fmt.Sprintf("Delete chapter %s of %s?", chapter.ChapterNumber, m.manga.Title)

	return Confirm(prompt, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svcs.Admin.DeleteChapter(ctx, chapter.ID); err != nil {
			log.Error("Failed to delete chapter", "id", chapter.ID, "error", err)
			return ChapterErrorMsg{Error: err}
		}
		return ChapterDeletedMsg{ChapterNumber: chapter.ChapterNumber}
	})
}

// rate submits a 1-5 score
func (m *MangaDetailsModel) rate(score int) tea.Cmd {
	if !m.svcs.Session.LoggedIn() {
		m.statusText = "Log in to rate manga"
		return nil
	}

	svcs := m.svcs
	mangaID := m.mangaID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		rating, err := svcs.Interactions.Rate(ctx, mangaID, score)
		if err != nil {
			log.Warn("Failed to submit rating", "manga", mangaID, "error", err)
			return CommentsErrorMsg{Error: err}
		}
		return RatedMsg{Rating: rating}
	}
}

// postComment submits the comment and refreshes the thread.  Logged in users
// always post under their username; guestName only applies to guests and may
// be blank.
func (m *MangaDetailsModel) postComment(content, guestName string) tea.Cmd {
	svcs := m.svcs
	mangaID := m.mangaID

	name := guestName
	if user := svcs.Session.User(); user != nil {
		name = user.Username
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		comments, err := svcs.Interactions.PostComment(ctx, mangaID, 0, name, content)
		if err != nil {
			log.Warn("Failed to post comment", "manga", mangaID, "error", err)
			return CommentsErrorMsg{Error: err}
		}
		return CommentsLoadedMsg{Comments: comments}
	}
}

func (m *MangaDetailsModel) View() string {
	if m.loading {
		return styles.CenteredView(
			m.width,
			m.height,
			fmt.Sprintf("%s Loading manga...", m.spinner.View()),
		)
	}

	if m.loadError != nil {
		errorMsg := fmt.Sprintf("Error loading manga: %v\n\nPress 'r' to retry.", m.loadError)
		return styles.CenteredView(
			m.width,
			m.height,
			styles.ContentBox(m.width-20, errorMsg, 1),
		)
	}

	header := styles.Header(m.width, m.manga.Title)
	meta := m.renderMeta()

	var body string
	if m.showComments {
		body = m.renderComments()
	} else {
		body = m.renderChapters()
	}

	var statusLine string
	if m.statusText != "" {
		statusLine = styles.CenteredText(m.width, styles.Subtle.Render(m.statusText)) + "\n"
	}

	bindings := []components.KeyBinding{
		{Key: "enter", Desc: "Read"},
		{Key: "b", Desc: "Bookmark"},
		{Key: "1-5", Desc: "Rate"},
		{Key: "c", Desc: "Comments"},
		{Key: "w", Desc: "Write comment"},
	}
	if m.svcs.Session.IsStaff() {
		bindings = append(bindings, components.KeyBinding{Key: "d", Desc: "Delete chapter"})
	}
	bindings = append(bindings, components.KeyBinding{Key: "esc", Desc: "Back"})
	footer := components.KeyBindingsBar(m.width, bindings)

	return header + "\n" + meta + "\n" + body + "\n" + statusLine + footer
}

// renderMeta renders the metadata block under the title
func (m *MangaDetailsModel) renderMeta() string {
	manga := m.manga

	bookmarkText := "not bookmarked"
	if m.bookmark.Bookmarked {
		bookmarkText = styles.Success.Render("bookmarked")
	}
	ratingText := fmt.Sprintf("%.1f", manga.Rating)
	if m.myRating != nil {
		ratingText += fmt.Sprintf(" (yours: %d)", m.myRating.Score)
	}

	lines := []string{
		fmt.Sprintf("%s %s   %s %s   %s %s   %s %d",
			styles.Subtle.Render("Status:"), manga.Status,
			styles.Subtle.Render("Type:"), manga.Type,
			styles.Subtle.Render("Year:"), manga.ReleasedYear,
			styles.Subtle.Render("Views:"), manga.Views),
		fmt.Sprintf("%s %s   %s %s",
			styles.Subtle.Render("Author:"), manga.Author,
			styles.Subtle.Render("Artist:"), manga.Artist),
		fmt.Sprintf("%s %s   %s %s",
			styles.Subtle.Render("Genres:"), strings.Join(manga.Genres, ", "),
			styles.Subtle.Render("Rating:"), ratingText),
		fmt.Sprintf("%s %s", styles.Subtle.Render("Bookmark:"), bookmarkText),
	}

	if m.lastRead != nil {
		lines = append(lines, fmt.Sprintf("%s Chapter %s, %s",
			styles.Subtle.Render("Continue reading:"),
			m.lastRead.ChapterNumber,
			util.FormatRelativeTime(m.lastRead.ReadAt)))
	}

	description := util.TruncateString(strings.ReplaceAll(manga.Description, "\n", " "), (m.width-8)*2)

	return styles.ContentBox(m.width-2, strings.Join(lines, "\n")+"\n\n"+description, 0)
}

// renderChapters renders the chapter list in reading order
func (m *MangaDetailsModel) renderChapters() string {
	if len(m.chapters) == 0 {
		return styles.CenteredText(m.width, "No chapters released yet")
	}

	availableHeight := m.height - 16
	if availableHeight < 1 {
		availableHeight = 1
	}
	visibleCount := min(len(m.chapters), availableHeight)

	startIdx := 0
	if m.cursor >= visibleCount {
		startIdx = m.cursor - visibleCount + 1
	}
	endIdx := min(len(m.chapters), startIdx+visibleCount)

	listContent := styles.ListHeader(m.width-4, fmt.Sprintf("%-14s %s", "Chapter", "Released")) + "\n"
	for i := startIdx; i < endIdx; i++ {
		chapter := m.chapters[i]
		released := ""
		if !chapter.ReleasedAt.IsZero() {
			released = chapter.ReleasedAt.Format("2006-01-02")
		}
		row := fmt.Sprintf("%-14s %s", "Chapter "+chapter.ChapterNumber, released)
		listContent += styles.ListItem(m.width-4, row, i == m.cursor) + "\n"
	}
	return listContent
}

// renderComments renders the comment pane
func (m *MangaDetailsModel) renderComments() string {
	var b strings.Builder
	b.WriteString(styles.Highlight.Render("Comments"))
	b.WriteString("\n\n")

	if len(m.comments) == 0 {
		b.WriteString(styles.Subtle.Render("No comments yet.  Press 'w' to write the first one."))
	}

	availableHeight := m.height - 18
	shown := m.comments
	if availableHeight > 0 && len(shown) > availableHeight/2 {
		// Newest comments last; show the tail of the thread
		shown = shown[len(shown)-availableHeight/2:]
	}

	for _, comment := range shown {
		b.WriteString(fmt.Sprintf("%s %s\n%s\n\n",
			styles.Highlight.Render(comment.Name),
			styles.Subtle.Render(util.FormatRelativeTime(comment.CreatedAt)),
			util.TruncateString(comment.Content, m.width-6)))
	}

	if m.writingMode {
		b.WriteString("\n")
		if !m.svcs.Session.LoggedIn() {
			b.WriteString(styles.Title.Render("Name: ") + m.nameInput.View() + "\n")
			b.WriteString(styles.Subtle.Render("tab switches between name and comment") + "\n")
		}
		b.WriteString(styles.Title.Render("Comment: ") + m.commentInput.View())
	}

	return b.String()
}
