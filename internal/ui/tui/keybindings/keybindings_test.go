package keybindings

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNoDuplicateKeyBindings(t *testing.T) {
	// Check each context individually
	for contextName, bindings := range ContextBindings {
		t.Run(fmt.Sprintf("Context_%s", contextName), func(t *testing.T) {
			keyToAction := make(map[string]Action)

			for _, binding := range bindings {
				// Check primary key
				if existingAction, exists := keyToAction[binding.KeyMap.Primary]; exists {
					t.Errorf("Duplicate key binding '%s' in context '%s': "+
						"first assigned to action '%s', then to '%s'",
						binding.KeyMap.Primary, contextName, existingAction, binding.Action)
				} else {
					keyToAction[binding.KeyMap.Primary] = binding.Action
				}

				// Check secondary key if it exists
				if binding.KeyMap.Secondary != "" {
					if existingAction, exists := keyToAction[binding.KeyMap.Secondary]; exists {
						t.Errorf("Duplicate key binding '%s' in context '%s': "+
							"first assigned to action '%s', then to '%s'",
							binding.KeyMap.Secondary, contextName, existingAction, binding.Action)
					} else {
						keyToAction[binding.KeyMap.Secondary] = binding.Action
					}
				}
			}
		})
	}
}

func TestEveryBindingHasHelpText(t *testing.T) {
	for contextName, bindings := range ContextBindings {
		for _, binding := range bindings {
			if binding.KeyMap.Help == "" {
				t.Errorf("Binding for action '%s' in context '%s' has no help text",
					binding.Action, contextName)
			}
		}
	}
}

// Home left/right move within a strip and page at the edges; the help text
// must describe that, not a strip switch (up/down do that).
func TestHomeLeftRightHelpDescribesStripMovement(t *testing.T) {
	for _, binding := range ContextBindings[ContextHome] {
		if binding.Action != ActionMoveLeft && binding.Action != ActionMoveRight {
			continue
		}
		if !strings.Contains(binding.KeyMap.Help, "in the strip") || !strings.Contains(binding.KeyMap.Help, "page") {
			t.Errorf("Help for '%s' in home context should describe in-strip movement and edge paging, got %q",
				binding.Action, binding.KeyMap.Help)
		}
	}
}

func TestGetActionByKey(t *testing.T) {
	key := func(s string) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	if action := GetActionByKey(key("b"), ContextMangaDetails); action != ActionToggleBookmark {
		t.Errorf("Expected 'b' in manga details context to map to toggle_bookmark, got '%s'", action)
	}

	// Secondary keys resolve too
	if action := GetActionByKey(key("k"), ContextCatalog); action != ActionMoveUp {
		t.Errorf("Expected 'k' in catalog context to map to move_up, got '%s'", action)
	}

	// Unclaimed keys fall through to the global bindings
	if action := GetActionByKey(tea.KeyMsg{Type: tea.KeyEsc}, ContextProfile); action != ActionBack {
		t.Errorf("Expected esc in profile context to fall back to global back, got '%s'", action)
	}

	if action := GetActionByKey(key("z"), ContextHome); action != "" {
		t.Errorf("Expected unbound key to map to empty action, got '%s'", action)
	}

	if action := GetActionByKey(key("b"), ContextName("bogus")); action != "" {
		t.Errorf("Expected unknown context to map to empty action, got '%s'", action)
	}
}
