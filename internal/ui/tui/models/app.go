package models

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yomu-dev/yomu/internal/config"
	"github.com/yomu-dev/yomu/internal/history"
	"github.com/yomu-dev/yomu/internal/log"
	"github.com/yomu-dev/yomu/internal/repository/rest"
	"github.com/yomu-dev/yomu/internal/service"
	"github.com/yomu-dev/yomu/internal/session"
)

// Services bundles everything the views need to do their work.  It is built
// once at startup and shared by all models.
type Services struct {
	Config       *config.Config
	Client       *rest.Client
	Session      *session.Session
	Catalog      *service.Catalog
	Reader       *service.Reader
	Interactions *service.Interactions
	Admin        *service.Admin
	History      *history.Store
}

// BackMsg asks the app to return to the previous view
type BackMsg struct{}

// Back is a command models emit when the user backs out of their view
func Back() tea.Cmd {
	return func() tea.Msg {
		return BackMsg{}
	}
}

// AppModel is the main application model that coordinates all child models.  It is the high level wrapper.
type AppModel struct {
	svcs          *Services
	activeView    View  // Track the current active 'main view'
	activeModal   Modal // Track the current active 'modal overlay' if any
	viewStack     []View
	width, height int

	// Confirm modal state
	confirmPrompt string
	onConfirm     tea.Cmd

	// Models used for various views
	authModel          *AuthModel
	homeModel          *HomeModel
	catalogModel       *CatalogModel
	detailsModel       *MangaDetailsModel
	readerModel        *ReaderModel
	chapterSelectModel *ChapterSelectModel
	profileModel       *ProfileModel
	adminModel         *AdminModel
	mangaFormModel     *MangaFormModel
	helpModel          *HelpModel
}

// NewAppModel creates a new instance of the main application model
func NewAppModel(svcs *Services) AppModel {
	return AppModel{
		svcs:         svcs,
		activeView:   ViewHome,
		activeModal:  ModalNone,
		authModel:    NewAuthModel(svcs),
		homeModel:    NewHomeModel(svcs),
		catalogModel: NewCatalogModel(svcs),
		profileModel: NewProfileModel(svcs),
		helpModel:    NewHelpModel(),
	}
}

func (m AppModel) Init() tea.Cmd {
	log.Info("Initialising Yomu TUI")
	return m.homeModel.Init()
}

// Update handles messages and updates the models as appropriate
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// A 401 on any request means the stored token is no longer good.  Force
	// the logout path and offer the login form.
	if failure, ok := msg.(interface{ Err() error }); ok {
		if errors.Is(failure.Err(), rest.ErrUnauthorized) && m.svcs.Session.LoggedIn() {
			log.Warn("Session rejected by the backend, logging out")
			m.svcs.Session.Logout()
			m.authModel.Reset()
			m.viewStack = nil
			m.activeView = ViewAuth
			m.activeModal = ModalNone
			return m, m.authModel.Init()
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			log.Info("Quit command received.  Shutting down...")
			return m, tea.Quit
		case "ctrl+l":
			if m.svcs.Session.LoggedIn() {
				log.Info("Logging out.  Cleaning up tokens from config file...")
				m.svcs.Session.Logout()
				m.authModel.Reset()
				m.viewStack = nil
				m.activeView = ViewHome
				return m, m.homeModel.Init()
			}
			return m, nil
		case "ctrl+h":
			log.Debug("Help requested", "active_view", m.activeView)
			// Disable/toggle modal if one already active
			if m.activeModal != ModalNone {
				m.activeModal = ModalNone
			} else {
				m.activeModal = ModalHelp
			}
			return m, nil

		// Handle closing modal when esc is pressed if any is active
		case "esc":
			switch m.activeModal {
			case ModalHelp, ModalConfirm:
				m.activeModal = ModalNone
				m.onConfirm = nil
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeAll(msg.Width, msg.Height)

	case BackMsg:
		return m.popView()

	case AuthSuccessMsg:
		log.Info("Authentication successful", "username", msg.User.Username)
		m.authModel.Reset()
		return m.popView()

	case OpenMangaMsg:
		m.detailsModel = NewMangaDetailsModel(m.svcs, msg.MangaID)
		m.detailsModel.Resize(m.width, m.height)
		m.pushView(ViewMangaDetails)
		return m, m.detailsModel.Init()

	case OpenReaderMsg:
		m.activeModal = ModalNone
		if m.activeView != ViewReader {
			m.pushView(ViewReader)
		}
		m.readerModel = NewReaderModel(m.svcs, msg.MangaID, msg.ChapterNumber)
		m.readerModel.Resize(m.width, m.height)
		return m, m.readerModel.Init()

	case ChapterLoadedMsg:
		// Offer the chapter list in the jump modal
		m.chapterSelectModel = NewChapterSelectModel(msg.View)
		m.chapterSelectModel.Resize(m.width, m.height)
		return m.updateView(ViewReader, msg)

	case OpenChapterSelectMsg:
		if m.chapterSelectModel != nil {
			m.activeModal = ModalChapterSelect
		}
		return m, nil

	case OpenMangaFormMsg:
		m.mangaFormModel = NewMangaFormModel(m.svcs, msg.Manga)
		m.mangaFormModel.Resize(m.width, m.height)
		m.pushView(ViewMangaForm)
		return m, m.mangaFormModel.Init()

	case MangaSavedMsg:
		log.Info("Manga saved", "id", msg.Manga.ID, "title", msg.Manga.Title)
		model, _ := m.popView()
		app := model.(AppModel)
		if app.activeView == ViewAdmin && app.adminModel != nil {
			return app, app.adminModel.Reload()
		}
		return app, nil

	case ConfirmRequestMsg:
		m.confirmPrompt = msg.Prompt
		m.onConfirm = msg.OnConfirm
		m.activeModal = ModalConfirm
		return m, nil
	}

	// Prioritise delegating messages to a modal if one is active
	switch m.activeModal {
	case ModalHelp:
		return m, m.helpModel.Update(msg)
	case ModalChapterSelect:
		return m.updateChapterSelectModal(msg)
	case ModalConfirm:
		return m.updateConfirmModal(msg)
	}

	return m.updateView(m.activeView, msg)
}

func (m AppModel) View() string {
	// If there is an active modal it takes precedence
	switch m.activeModal {
	case ModalHelp:
		return m.helpModel.View(m.activeView)
	case ModalChapterSelect:
		if m.chapterSelectModel != nil {
			return m.chapterSelectModel.View()
		}
	case ModalConfirm:
		return m.confirmView()
	}

	// Else display the actual view
	switch m.activeView {
	case ViewAuth:
		return m.authModel.View()
	case ViewHome:
		return m.homeModel.View()
	case ViewCatalog:
		return m.catalogModel.View()
	case ViewMangaDetails:
		if m.detailsModel != nil {
			return m.detailsModel.View()
		}
	case ViewReader:
		if m.readerModel != nil {
			return m.readerModel.View()
		}
	case ViewProfile:
		return m.profileModel.View()
	case ViewAdmin:
		if m.adminModel != nil {
			return m.adminModel.View()
		}
	case ViewMangaForm:
		if m.mangaFormModel != nil {
			return m.mangaFormModel.View()
		}
	}
	return "Unknown view\nPress ctrl+c to quit."
}

// pushView switches to a view, remembering where we came from
func (m *AppModel) pushView(view View) {
	m.viewStack = append(m.viewStack, m.activeView)
	m.activeView = view
}

// popView returns to the previous view, falling back to home
func (m AppModel) popView() (tea.Model, tea.Cmd) {
	if len(m.viewStack) == 0 {
		m.activeView = ViewHome
		return m, nil
	}
	m.activeView = m.viewStack[len(m.viewStack)-1]
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
	return m, nil
}

// OpenViewMsg is used by views to navigate to top level views.  Search opens
// the catalog with search mode already active.
type OpenViewMsg struct {
	View   View
	Search bool
}

// OpenView asks the app to switch to the given view
func OpenView(view View) tea.Cmd {
	return func() tea.Msg {
		return OpenViewMsg{View: view}
	}
}

// OpenCatalogSearch asks the app to open the catalog ready for a title search
func OpenCatalogSearch() tea.Cmd {
	return func() tea.Msg {
		return OpenViewMsg{View: ViewCatalog, Search: true}
	}
}

// OpenChapterSelectMsg asks the app to show the chapter jump modal
type OpenChapterSelectMsg struct{}

func (m *AppModel) resizeAll(width, height int) {
	m.authModel.Resize(width, height)
	m.helpModel.Resize(width, height)
	m.homeModel.Resize(width, height)
	m.catalogModel.Resize(width, height)
	m.profileModel.Resize(width, height)
	if m.detailsModel != nil {
		m.detailsModel.Resize(width, height)
	}
	if m.readerModel != nil {
		m.readerModel.Resize(width, height)
	}
	if m.chapterSelectModel != nil {
		m.chapterSelectModel.Resize(width, height)
	}
	if m.adminModel != nil {
		m.adminModel.Resize(width, height)
	}
	if m.mangaFormModel != nil {
		m.mangaFormModel.Resize(width, height)
	}
}

// updateView delegates message processing to the named view's model
func (m AppModel) updateView(view View, msg tea.Msg) (tea.Model, tea.Cmd) {
	// Navigation requests can come from any view
	if open, ok := msg.(OpenViewMsg); ok {
		return m.openView(open)
	}

	var cmd tea.Cmd
	switch view {
	case ViewAuth:
		var model tea.Model
		model, cmd = m.authModel.Update(msg)
		m.authModel = model.(*AuthModel)
	case ViewHome:
		var model tea.Model
		model, cmd = m.homeModel.Update(msg)
		m.homeModel = model.(*HomeModel)
	case ViewCatalog:
		var model tea.Model
		model, cmd = m.catalogModel.Update(msg)
		m.catalogModel = model.(*CatalogModel)
	case ViewMangaDetails:
		if m.detailsModel == nil {
			return m, nil
		}
		var model tea.Model
		model, cmd = m.detailsModel.Update(msg)
		m.detailsModel = model.(*MangaDetailsModel)
	case ViewReader:
		if m.readerModel == nil {
			return m, nil
		}
		var model tea.Model
		model, cmd = m.readerModel.Update(msg)
		m.readerModel = model.(*ReaderModel)
	case ViewProfile:
		var model tea.Model
		model, cmd = m.profileModel.Update(msg)
		m.profileModel = model.(*ProfileModel)
	case ViewAdmin:
		if m.adminModel == nil {
			return m, nil
		}
		var model tea.Model
		model, cmd = m.adminModel.Update(msg)
		m.adminModel = model.(*AdminModel)
	case ViewMangaForm:
		if m.mangaFormModel == nil {
			return m, nil
		}
		var model tea.Model
		model, cmd = m.mangaFormModel.Update(msg)
		m.mangaFormModel = model.(*MangaFormModel)
	}
	return m, cmd
}

// openView handles top level navigation between views
func (m AppModel) openView(open OpenViewMsg) (tea.Model, tea.Cmd) {
	switch open.View {
	case ViewCatalog:
		m.pushView(ViewCatalog)
		if open.Search {
			m.catalogModel.EnableSearch()
		}
		return m, m.catalogModel.Init()
	case ViewProfile:
		// Guests get the profile too, with their local reading history
		m.pushView(ViewProfile)
		return m, m.profileModel.Init()
	case ViewAdmin:
		if !m.svcs.Session.IsStaff() {
			log.Warn("Admin view requested without staff permissions")
			return m, nil
		}
		m.adminModel = NewAdminModel(m.svcs)
		m.adminModel.Resize(m.width, m.height)
		m.pushView(ViewAdmin)
		return m, m.adminModel.Init()
	case ViewAuth:
		m.pushView(ViewAuth)
		return m, m.authModel.Init()
	case ViewHome:
		m.viewStack = nil
		m.activeView = ViewHome
		return m, m.homeModel.Init()
	}
	return m, nil
}

func (m AppModel) updateChapterSelectModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" && !m.chapterSelectModel.Searching() {
		m.activeModal = ModalNone
		return m, nil
	}

	model, cmd := m.chapterSelectModel.Update(msg)
	m.chapterSelectModel = model.(*ChapterSelectModel)
	return m, cmd
}
