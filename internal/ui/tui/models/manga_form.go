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
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
	"github.com/yomu-dev/yomu/internal/service"
	"github.com/yomu-dev/yomu/internal/ui/tui/components"
	"github.com/yomu-dev/yomu/internal/ui/tui/styles"
)

// formField indexes the ordered inputs of the manga form
type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldStatus
	fieldType
	fieldYear
	fieldAuthor
	fieldArtist
	fieldGenres
	fieldCover
	fieldBanner

	formFieldCount
)

var formLabels = map[formField]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldStatus:      "Status (Ongoing/Completed/Hiatus)",
	fieldType:        "Type (Manga/Manhwa/Manhua)",
	fieldYear:        "Released year",
	fieldAuthor:      "Author",
	fieldArtist:      "Artist",
	fieldGenres:      "Genres (type to search, enter adds)",
	fieldCover:       "Cover image path (optional)",
	fieldBanner:      "Banner image path (optional)",
}

// MangaFormModel is the create/edit form used by the admin dashboard.
// A nil editing target means a new manga is being created.
type MangaFormModel struct {
	svcs          *Services
	width, height int

	editing  *domain.Manga
	inputs   []textinput.Model
	focusIdx formField
	featured bool

	// Genre tag editor state.  The suggestion list is fetched once when the
	// form opens; selection holds the tags that will be submitted.
	allGenres  []domain.Genre
	selection  []string
	suggestIdx int
	tagBusy    bool

	submitting bool
	spinner    spinner.Model
	errorText  string
}

// maxGenreSuggestions caps the suggestion rows rendered under the genre field
const maxGenreSuggestions = 6

// NewMangaFormModel creates the form, prefilled when editing an existing manga
func NewMangaFormModel(svcs *Services, editing *domain.Manga) *MangaFormModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0485A"))

	inputs := make([]textinput.Model, formFieldCount)
	for field := fieldTitle; field < formFieldCount; field++ {
		input := textinput.New()
		input.Placeholder = formLabels[field]
		input.Width = 50
		inputs[field] = input
	}
	inputs[fieldDescription].Width = 70
	inputs[fieldYear].CharLimit = 4

	m := &MangaFormModel{
		svcs:    svcs,
		editing: editing,
		inputs:  inputs,
		spinner: s,
	}

	if editing != nil {
		inputs[fieldTitle].SetValue(editing.Title)
		inputs[fieldDescription].SetValue(editing.Description)
		inputs[fieldStatus].SetValue(string(editing.Status))
		inputs[fieldType].SetValue(string(editing.Type))
		inputs[fieldYear].SetValue(editing.ReleasedYear)
		inputs[fieldAuthor].SetValue(editing.Author)
		inputs[fieldArtist].SetValue(editing.Artist)
		m.selection = append([]string(nil), editing.Genres...)
		m.featured = editing.IsFeatured
	}

	m.focusField(fieldTitle)
	return m
}

func (m *MangaFormModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadFormGenres(m.svcs))
}

// loadFormGenres fetches the suggestion list once per form open.  A failure
// only costs suggestions, so it is logged and swallowed.
func loadFormGenres(svcs *Services) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		genres, err := svcs.Catalog.Genres(ctx)
		if err != nil {
			log.Warn("Failed to load genre suggestions", "error", err)
			return GenresLoadedMsg{}
		}
		return GenresLoadedMsg{Genres: genres}
	}
}

// addGenreTag resolves a typed name against the site-wide genres, creating a
// new one when nothing matches case-insensitively.
func addGenreTag(svcs *Services, name string, selection []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		updated, err := svcs.Interactions.AddGenreTag(ctx, name, selection)
		if err != nil {
			return AdminErrorMsg{Error: err}
		}
		return GenreTagAddedMsg{Selection: updated}
	}
}

// deleteGenreTag removes the genre from the whole site and prunes it from the
// in-progress selection.  Callers route this through the confirmation modal.
func deleteGenreTag(svcs *Services, genre domain.Genre, selection []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		updated, err := svcs.Interactions.DeleteGenre(ctx, genre, selection)
		if err != nil {
			return AdminErrorMsg{Error: err}
		}
		return GenreTagDeletedMsg{GenreID: genre.ID, Selection: updated}
	}
}

func (m *MangaFormModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// saveManga builds the draft from the form and submits it.  Image files are
// opened here so their handles live exactly as long as the request.
func saveManga(svcs *Services, editing *domain.Manga, draft domain.MangaDraft, coverPath, bannerPath string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if coverPath != "" {
			upload, f, err := service.LoadImage(coverPath)
			if err != nil {
				return AdminErrorMsg{Error: err}
			}
			defer f.Close()
			draft.CoverImage = upload
		}
		if bannerPath != "" {
			upload, f, err := service.LoadImage(bannerPath)
			if err != nil {
				return AdminErrorMsg{Error: err}
			}
			defer f.Close()
			draft.BannerImage = upload
		}

		// Resolve genre names against the site-wide tag list, creating any
		// that do not exist yet and taking the canonical casing of the rest.
		var resolved []string
		for _, name := range draft.Genres {
			var err error
			resolved, err = svcs.Interactions.AddGenreTag(ctx, name, resolved)
			if err != nil {
				log.Error("Failed to resolve genre", "name", name, "error", err)
				return AdminErrorMsg{Error: err}
			}
		}
		draft.Genres = resolved

		var manga *domain.Manga
		var err error
		if editing != nil {
			manga, err = svcs.Admin.UpdateManga(ctx, editing.ID, draft)
		} else {
			manga, err = svcs.Admin.CreateManga(ctx, draft)
		}
		if err != nil {
			log.Error("Failed to save manga", "error", err)
			return AdminErrorMsg{Error: err}
		}

		log.Info("Saved manga", "id", manga.ID, "title", manga.Title)
		return MangaSavedMsg{Manga: manga}
	}
}

func (m *MangaFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case GenresLoadedMsg:
		m.allGenres = msg.Genres
		m.suggestIdx = 0
		return m, nil

	case GenreTagAddedMsg:
		m.selection = msg.Selection
		m.inputs[fieldGenres].SetValue("")
		m.suggestIdx = 0
		m.tagBusy = false
		return m, nil

	case GenreTagDeletedMsg:
		m.selection = msg.Selection
		kept := m.allGenres[:0]
		for _, genre := range m.allGenres {
			if genre.ID != msg.GenreID {
				kept = append(kept, genre)
			}
		}
		m.allGenres = kept
		m.suggestIdx = 0
		m.tagBusy = false
		return m, nil

	case AdminErrorMsg:
		m.submitting = false
		m.tagBusy = false
		m.errorText = msg.Error.Error()
		return m, nil
	}

	return m, nil
}

func (m *MangaFormModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return Back()
	case "tab", "down":
		m.focusField((m.focusIdx + 1) % formFieldCount)
		return textinput.Blink
	case "shift+tab", "up":
		m.focusField((m.focusIdx + formFieldCount - 1) % formFieldCount)
		return textinput.Blink
	case "ctrl+t":
		m.featured = !m.featured
		return nil
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.focusIdx == fieldGenres {
			return m.addTag()
		}
		return m.submit()
	case "ctrl+n", "ctrl+p", "ctrl+x", "ctrl+d":
		if m.focusIdx == fieldGenres {
			return m.handleGenreKey(msg)
		}
		return nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	if m.focusIdx == fieldGenres {
		m.suggestIdx = 0
	}
	return cmd
}

// handleGenreKey covers the keys that only mean something on the genre field
func (m *MangaFormModel) handleGenreKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+n":
		if suggestions := m.genreSuggestions(); m.suggestIdx < len(suggestions)-1 {
			m.suggestIdx++
		}
	case "ctrl+p":
		if m.suggestIdx > 0 {
			m.suggestIdx--
		}
	case "ctrl+x":
		if len(m.selection) > 0 {
			m.selection = m.selection[:len(m.selection)-1]
		}
	case "ctrl+d":
		genre := m.highlightedGenre()
		if genre == nil {
			return nil
		}
		prompt := fmt.Sprintf("Delete genre %q everywhere?  Every manga tagged with it loses the tag.", genre.Name)
		return Confirm(prompt, deleteGenreTag(m.svcs, *genre, m.selection))
	}
	return nil
}

// addTag adds the typed name, or the highlighted suggestion when the input
// is empty.
func (m *MangaFormModel) addTag() tea.Cmd {
	if m.tagBusy {
		return nil
	}

	name := strings.TrimSpace(m.inputs[fieldGenres].Value())
	if name == "" {
		if genre := m.highlightedGenre(); genre != nil {
			name = genre.Name
		}
	}
	if name == "" {
		return nil
	}

	m.tagBusy = true
	m.errorText = ""
	return addGenreTag(m.svcs, name, m.selection)
}

// genreSuggestions filters the site-wide genres by the typed query
func (m *MangaFormModel) genreSuggestions() []domain.Genre {
	query := strings.TrimSpace(m.inputs[fieldGenres].Value())

	var out []domain.Genre
	for _, genre := range m.allGenres {
		if query != "" && !fuzzy.MatchFold(query, genre.Name) {
			continue
		}
		out = append(out, genre)
		if len(out) == maxGenreSuggestions {
			break
		}
	}
	return out
}

func (m *MangaFormModel) highlightedGenre() *domain.Genre {
	suggestions := m.genreSuggestions()
	if len(suggestions) == 0 {
		return nil
	}
	idx := min(m.suggestIdx, len(suggestions)-1)
	return &suggestions[idx]
}

func (m *MangaFormModel) focusField(field formField) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focusIdx = field
	m.inputs[field].Focus()
}

func (m *MangaFormModel) submit() tea.Cmd {
	title := strings.TrimSpace(m.inputs[fieldTitle].Value())
	if title == "" {
		m.errorText = "Title is required"
		m.focusField(fieldTitle)
		return nil
	}

	genres := append([]string(nil), m.selection...)
	if pending := strings.TrimSpace(m.inputs[fieldGenres].Value()); pending != "" {
		genres = append(genres, pending)
	}

	draft := domain.MangaDraft{
		Title:        title,
		Description:  strings.TrimSpace(m.inputs[fieldDescription].Value()),
		Status:       strings.TrimSpace(m.inputs[fieldStatus].Value()),
		Type:         strings.TrimSpace(m.inputs[fieldType].Value()),
		ReleasedYear: strings.TrimSpace(m.inputs[fieldYear].Value()),
		Author:       strings.TrimSpace(m.inputs[fieldAuthor].Value()),
		Artist:       strings.TrimSpace(m.inputs[fieldArtist].Value()),
		IsFeatured:   m.featured,
		Genres:       genres,
	}

	coverPath := strings.TrimSpace(m.inputs[fieldCover].Value())
	bannerPath := strings.TrimSpace(m.inputs[fieldBanner].Value())

	m.submitting = true
	m.errorText = ""
	return tea.Batch(m.spinner.Tick, saveManga(m.svcs, m.editing, draft, coverPath, bannerPath))
}

// renderGenreEditor shows the current tag selection and, while the genre
// field is focused, the fuzzy-matched suggestions with the delete target
// highlighted.
func (m *MangaFormModel) renderGenreEditor() string {
	var b strings.Builder

	tags := "(none)"
	if len(m.selection) > 0 {
		tags = strings.Join(m.selection, ", ")
	}
	b.WriteString(styles.Subtle.Render("Tags: "))
	b.WriteString(styles.Info.Render(tags))
	if m.tagBusy {
		b.WriteString(styles.Subtle.Render("  adding..."))
	}
	b.WriteString("\n")

	if m.focusIdx != fieldGenres {
		return b.String()
	}

	suggestions := m.genreSuggestions()
	if len(suggestions) == 0 {
		b.WriteString(styles.Subtle.Render("  no matching genres, enter creates one"))
		b.WriteString("\n")
		return b.String()
	}

	highlighted := min(m.suggestIdx, len(suggestions)-1)
	for idx, genre := range suggestions {
		if idx == highlighted {
			b.WriteString(styles.Highlight.Render("  > " + genre.Name))
		} else {
			b.WriteString(styles.Subtle.Render("    " + genre.Name))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.Subtle.Render("  ctrl+n/ctrl+p pick, ctrl+x drop last tag, ctrl+d delete genre"))
	b.WriteString("\n")
	return b.String()
}

func (m *MangaFormModel) View() string {
	title := "New Manga"
	if m.editing != nil {
		title = fmt.Sprintf("Edit Manga - %s", m.editing.Title)
	}
	header := styles.Header(m.width, title)

	if m.submitting {
		return styles.CenteredView(
			m.width,
			m.height,
			fmt.Sprintf("%s Saving...", m.spinner.View()),
		)
	}

	var b strings.Builder
	for field := fieldTitle; field < formFieldCount; field++ {
		label := formLabels[field]
		if field == m.focusIdx {
			b.WriteString(styles.Highlight.Render(label))
		} else {
			b.WriteString(styles.Subtle.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(m.inputs[field].View())
		b.WriteString("\n")

		if field == fieldGenres {
			b.WriteString(m.renderGenreEditor())
		}
	}

	featured := "no"
	if m.featured {
		featured = "yes"
	}
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("Featured on the home screen: "))
	b.WriteString(styles.Info.Render(featured))
	b.WriteString("\n")

	if m.errorText != "" {
		b.WriteString("\n")
		b.WriteString(styles.Error.Render(m.errorText))
		b.WriteString("\n")
	}

	boxWidth := min(m.width-4, 80)
	form := styles.ContentBox(boxWidth, b.String(), 1)

	footer := components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "tab", Desc: "Next field"},
		{Key: "ctrl+t", Desc: "Toggle featured"},
		{Key: "ctrl+s", Desc: "Save"},
		{Key: "esc", Desc: "Cancel"},
	})

	return header + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, form) + "\n" + footer
}
