package models

// View represents a specific UI view in the application
type View string

// Available views in the application
const (
	ViewAuth         View = "auth"
	ViewHome         View = "home"
	ViewCatalog      View = "catalog"
	ViewMangaDetails View = "manga-details"
	ViewReader       View = "reader"
	ViewProfile      View = "profile"
	ViewAdmin        View = "admin"
	ViewMangaForm    View = "manga-form"
)

// Modal represents a UI intended to be temporarily shown to the user before returning to the original view
type Modal string

// Available modals in the application
const (
	ModalNone          Modal = "none"
	ModalHelp          Modal = "help"
	ModalChapterSelect Modal = "chapter_select"
	ModalConfirm       Modal = "confirm"
)
