package keybindings

import tea "github.com/charmbracelet/bubbletea"

// Action represents a specific action that can be triggered by a key
type Action string

// Define all possible actions
const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionToggleHelp Action = "toggle_help"
	ActionLogout     Action = "logout"
	ActionBack       Action = "back" // General purpose "go back" or "cancel"

	// Navigation actions
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionMoveLeft   Action = "move_left"
	ActionMoveRight  Action = "move_right"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionMoveTop    Action = "move_top"
	ActionMoveBottom Action = "move_bottom"

	// Auth view actions
	ActionSubmit     Action = "submit"
	ActionNextField  Action = "next_field"
	ActionSwitchMode Action = "switch_mode"

	// Home view actions
	ActionOpenCatalog Action = "open_catalog"
	ActionOpenProfile Action = "open_profile"
	ActionOpenAdmin   Action = "open_admin"
	ActionOpenDetails Action = "open_details"
	ActionRefresh     Action = "refresh"

	// Catalog view actions
	ActionEnableSearch   Action = "enable_search"
	ActionSearchComplete Action = "search_complete"
	ActionCycleGenre     Action = "cycle_genre"
	ActionCycleStatus    Action = "cycle_status"
	ActionCycleType      Action = "cycle_type"
	ActionCycleOrdering  Action = "cycle_ordering"
	ActionClearFilters   Action = "clear_filters"
	ActionNextPage       Action = "next_page"
	ActionPrevPage       Action = "prev_page"

	// Manga details actions
	ActionToggleBookmark Action = "toggle_bookmark"
	ActionReadChapter    Action = "read_chapter"
	ActionToggleComments Action = "toggle_comments"
	ActionWriteComment   Action = "write_comment"

	// Reader actions
	ActionNextChapter       Action = "next_chapter"
	ActionPrevChapter       Action = "prev_chapter"
	ActionOpenChapterSelect Action = "chapter_select"
	ActionSelectChapter     Action = "select_chapter"

	// Profile view actions
	ActionSwitchTab      Action = "switch_tab"
	ActionRemoveBookmark Action = "remove_bookmark"

	// Admin view actions
	ActionNewManga      Action = "new_manga"
	ActionEditManga     Action = "edit_manga"
	ActionDelete        Action = "delete"
	ActionUploadChapter Action = "upload_chapter"
	ActionResetPassword Action = "reset_password"

	// Confirm modal actions
	ActionConfirm Action = "confirm"
)

// ContextName represents a specific UI context in the application that has its own keybinds
type ContextName string

const (
	ContextGlobal        ContextName = "global"
	ContextAuth          ContextName = "auth"
	ContextHome          ContextName = "home"
	ContextCatalog       ContextName = "catalog"
	ContextMangaDetails  ContextName = "manga_details"
	ContextReader        ContextName = "reader"
	ContextChapterSelect ContextName = "chapter_select"
	ContextProfile       ContextName = "profile"
	ContextAdmin         ContextName = "admin"
	ContextSearchMode    ContextName = "search_mode"
	ContextConfirm       ContextName = "confirm"
	ContextHelp          ContextName = "help"
)

var ContextBindings = map[ContextName][]Binding{
	ContextGlobal:        globalBindings,
	ContextAuth:          authBindings,
	ContextHome:          homeBindings,
	ContextCatalog:       catalogBindings,
	ContextMangaDetails:  mangaDetailsBindings,
	ContextReader:        readerBindings,
	ContextChapterSelect: chapterSelectBindings,
	ContextProfile:       profileBindings,
	ContextAdmin:         adminBindings,
	ContextSearchMode:    searchModeBindings,
	ContextConfirm:       confirmBindings,
	ContextHelp:          helpBindings,
}

// KeyMap stores the mappings from actions to key sequences for each context
type KeyMap struct {
	Primary   string
	Secondary string // Optional alternative key
	Help      string // Description for help screen
}

// Binding maps an action to its keys and help text
type Binding struct {
	Action Action
	KeyMap KeyMap
}

// navigationBindings contains general navigation bindings for consistent navigation across the app
var navigationBindings = []Binding{
	{
		Action: ActionMoveUp,
		KeyMap: KeyMap{
			Primary:   "up",
			Secondary: "k",
			Help:      "Move cursor up",
		},
	},
	{
		Action: ActionMoveDown,
		KeyMap: KeyMap{
			Primary:   "down",
			Secondary: "j",
			Help:      "Move cursor down",
		},
	},
	{
		Action: ActionPageUp,
		KeyMap: KeyMap{
			Primary: "pgup",
			Help:    "Move up one page",
		},
	},
	{
		Action: ActionPageDown,
		KeyMap: KeyMap{
			Primary: "pgdown",
			Help:    "Move down one page",
		},
	},
	{
		Action: ActionMoveTop,
		KeyMap: KeyMap{
			Primary: "home",
			Help:    "Move top of view",
		},
	},
	{
		Action: ActionMoveBottom,
		KeyMap: KeyMap{
			Primary: "end",
			Help:    "Move bottom of view",
		},
	},
}

// globalBindings contains key bindings that work across all views
var globalBindings = []Binding{
	{
		Action: ActionQuit,
		KeyMap: KeyMap{
			Primary: "ctrl+c",
			Help:    "Quit application",
		},
	},
	{
		Action: ActionToggleHelp,
		KeyMap: KeyMap{
			Primary: "ctrl+h",
			Help:    "Toggle help screen",
		},
	},
	{
		Action: ActionLogout,
		KeyMap: KeyMap{
			Primary: "ctrl+l",
			Help:    "Logout (clear tokens)",
		},
	},
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary: "esc",
			Help:    "Go back/cancel current action",
		},
	},
}

// authBindings contains key bindings specific to the auth view
var authBindings = []Binding{
	{
		Action: ActionSubmit,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Submit the form",
		},
	},
	{
		Action: ActionNextField,
		KeyMap: KeyMap{
			Primary: "tab",
			Help:    "Move to the next field",
		},
	},
	{
		Action: ActionSwitchMode,
		KeyMap: KeyMap{
			Primary: "ctrl+r",
			Help:    "Switch between login and registration",
		},
	},
}

// homeBindings contains key bindings specific to the home view
var homeBindings = withNavigation([]Binding{
	{
		Action: ActionOpenDetails,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Open selected manga",
		},
	},
	{
		Action: ActionMoveLeft,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "h",
			Help:      "Move left in the strip, previous page at the start",
		},
	},
	{
		Action: ActionMoveRight,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "l",
			Help:      "Move right in the strip, next page at the end",
		},
	},
	{
		Action: ActionOpenCatalog,
		KeyMap: KeyMap{
			Primary: "c",
			Help:    "Browse the full catalog",
		},
	},
	{
		Action: ActionOpenProfile,
		KeyMap: KeyMap{
			Primary: "u",
			Help:    "Open your profile",
		},
	},
	{
		Action: ActionOpenAdmin,
		KeyMap: KeyMap{
			Primary: "a",
			Help:    "Open the admin dashboard (staff only)",
		},
	},
	{
		Action: ActionEnableSearch,
		KeyMap: KeyMap{
			Primary:   "/",
			Secondary: "ctrl+f",
			Help:      "Search the catalog",
		},
	},
	{
		Action: ActionRefresh,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Refresh the home screen",
		},
	},
})

// catalogBindings contains key bindings specific to the catalog view
var catalogBindings = withNavigation([]Binding{
	{
		Action: ActionOpenDetails,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Open selected manga",
		},
	},
	{
		Action: ActionEnableSearch,
		KeyMap: KeyMap{
			Primary:   "/",
			Secondary: "ctrl+f",
			Help:      "Search by title",
		},
	},
	{
		Action: ActionCycleGenre,
		KeyMap: KeyMap{
			Primary: "g",
			Help:    "Cycle genre filter",
		},
	},
	{
		Action: ActionCycleStatus,
		KeyMap: KeyMap{
			Primary: "s",
			Help:    "Cycle status filter",
		},
	},
	{
		Action: ActionCycleType,
		KeyMap: KeyMap{
			Primary: "t",
			Help:    "Cycle type filter",
		},
	},
	{
		Action: ActionCycleOrdering,
		KeyMap: KeyMap{
			Primary: "o",
			Help:    "Cycle sort order",
		},
	},
	{
		Action: ActionClearFilters,
		KeyMap: KeyMap{
			Primary: "c",
			Help:    "Clear all filters",
		},
	},
	{
		Action: ActionPrevPage,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "h",
			Help:      "Previous page",
		},
	},
	{
		Action: ActionNextPage,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "l",
			Help:      "Next page",
		},
	},
	{
		Action: ActionRefresh,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Refresh results",
		},
	},
})

// mangaDetailsBindings contains key bindings specific to the manga details view
var mangaDetailsBindings = withNavigation([]Binding{
	{
		Action: ActionReadChapter,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Read selected chapter",
		},
	},
	{
		Action: ActionToggleBookmark,
		KeyMap: KeyMap{
			Primary: "b",
			Help:    "Bookmark/unbookmark this manga",
		},
	},
	{
		Action: ActionToggleComments,
		KeyMap: KeyMap{
			Primary: "c",
			Help:    "Show/hide comments",
		},
	},
	{
		Action: ActionWriteComment,
		KeyMap: KeyMap{
			Primary: "w",
			Help:    "Write a comment",
		},
	},
	{
		Action: ActionDelete,
		KeyMap: KeyMap{
			Primary: "d",
			Help:    "Delete selected chapter (staff)",
		},
	},
	{
		Action: ActionRefresh,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Refresh details",
		},
	},
})

// readerBindings contains key bindings specific to the reader view
var readerBindings = withNavigation([]Binding{
	{
		Action: ActionNextChapter,
		KeyMap: KeyMap{
			Primary: "n",
			Help:    "Next chapter",
		},
	},
	{
		Action: ActionPrevChapter,
		KeyMap: KeyMap{
			Primary: "p",
			Help:    "Previous chapter",
		},
	},
	{
		Action: ActionOpenChapterSelect,
		KeyMap: KeyMap{
			Primary: "ctrl+p",
			Help:    "Jump to a chapter",
		},
	},
})

// chapterSelectBindings contains key bindings specific to the chapter selection modal
var chapterSelectBindings = withNavigation([]Binding{
	{
		Action: ActionSelectChapter,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Open chapter",
		},
	},
	{
		Action: ActionEnableSearch,
		KeyMap: KeyMap{
			Primary:   "/",
			Secondary: "ctrl+f",
			Help:      "Filter chapters",
		},
	},
})

// profileBindings contains key bindings specific to the profile view
var profileBindings = withNavigation([]Binding{
	{
		Action: ActionOpenDetails,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Open selected manga",
		},
	},
	{
		Action: ActionSwitchTab,
		KeyMap: KeyMap{
			Primary: "tab",
			Help:    "Switch between bookmarks and history",
		},
	},
	{
		Action: ActionRemoveBookmark,
		KeyMap: KeyMap{
			Primary: "d",
			Help:    "Remove selected bookmark, clear local history on the history tab",
		},
	},
	{
		Action: ActionRefresh,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Refresh profile data",
		},
	},
})

// adminBindings contains key bindings specific to the admin view
var adminBindings = withNavigation([]Binding{
	{
		Action: ActionSwitchTab,
		KeyMap: KeyMap{
			Primary: "tab",
			Help:    "Switch dashboard tab",
		},
	},
	{
		Action: ActionNewManga,
		KeyMap: KeyMap{
			Primary: "n",
			Help:    "Create a new manga",
		},
	},
	{
		Action: ActionEditManga,
		KeyMap: KeyMap{
			Primary: "e",
			Help:    "Edit selected manga",
		},
	},
	{
		Action: ActionUploadChapter,
		KeyMap: KeyMap{
			Primary: "u",
			Help:    "Upload a chapter for selected manga",
		},
	},
	{
		Action: ActionDelete,
		KeyMap: KeyMap{
			Primary: "d",
			Help:    "Delete selected item",
		},
	},
	{
		Action: ActionResetPassword,
		KeyMap: KeyMap{
			Primary: "p",
			Help:    "Reset selected user's password",
		},
	},
	{
		Action: ActionPrevPage,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "h",
			Help:      "Previous page of mangas",
		},
	},
	{
		Action: ActionNextPage,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "l",
			Help:      "Next page of mangas",
		},
	},
	{
		Action: ActionRefresh,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Refresh dashboard data",
		},
	},
})

// searchModeBindings contains key bindings specific for when search mode is active
var searchModeBindings = []Binding{
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary:   "esc",
			Secondary: "ctrl+f",
			Help:      "Exit search mode and remove the filter",
		},
	},
	{
		Action: ActionSearchComplete,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Apply the search and return control to the original view",
		},
	},
}

// confirmBindings contains key bindings specific to the confirmation modal
var confirmBindings = []Binding{
	{
		Action: ActionConfirm,
		KeyMap: KeyMap{
			Primary:   "y",
			Secondary: "enter",
			Help:      "Confirm the action",
		},
	},
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary:   "n",
			Secondary: "esc",
			Help:      "Cancel",
		},
	},
}

// helpBindings contains key bindings specific to the help view
var helpBindings = withNavigation([]Binding{})

// GetActionKey returns the primary key for an action
func GetActionKey(action Action, bindings []Binding) string {
	for _, binding := range bindings {
		if binding.Action == action {
			return binding.KeyMap.Primary
		}
	}
	return ""
}

// GetBindingByKey returns the action and help text for a given key
func GetBindingByKey(key string, bindings []Binding) (Action, string) {
	for _, binding := range bindings {
		if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
			return binding.Action, binding.KeyMap.Help
		}
	}
	return "", ""
}

// GetActionByKey returns just the action for a given key, or an empty Action if not found
func GetActionByKey(keyMsg tea.KeyMsg, name ContextName) Action {
	key := keyMsg.String()
	if bindings, exists := ContextBindings[name]; exists {
		for _, binding := range bindings {
			if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
				return binding.Action
			}
		}
	}
	// Keys not claimed by the active context fall through to the global set,
	// so esc works as "back" everywhere without repeating the binding.
	if name != ContextGlobal {
		for _, binding := range globalBindings {
			if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
				return binding.Action
			}
		}
	}
	return ""
}

// FormatKeyHelp formats a key binding for display in help text
func FormatKeyHelp(binding Binding) string {
	if binding.KeyMap.Secondary != "" {
		return binding.KeyMap.Primary + "/" + binding.KeyMap.Secondary + ": " + binding.KeyMap.Help
	}
	return binding.KeyMap.Primary + ": " + binding.KeyMap.Help
}

// withNavigation is a helper function to include navigation bindings in other binding sets
func withNavigation(bindings []Binding) []Binding {
	return append(append([]Binding{}, navigationBindings...), bindings...)
}
