package models

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yomu-dev/yomu/internal/ui/tui/components"
	kb "github.com/yomu-dev/yomu/internal/ui/tui/keybindings"
	"github.com/yomu-dev/yomu/internal/ui/tui/styles"
)

// Confirm builds a command that opens the confirmation modal
func Confirm(prompt string, onConfirm tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		return ConfirmRequestMsg{
			Prompt:    prompt,
			OnConfirm: onConfirm,
		}
	}
}

// updateConfirmModal handles input while the confirmation modal is active
func (m AppModel) updateConfirmModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kb.GetActionByKey(key, kb.ContextConfirm) {
	case kb.ActionConfirm:
		cmd := m.onConfirm
		m.activeModal = ModalNone
		m.confirmPrompt = ""
		m.onConfirm = nil
		return m, cmd
	case kb.ActionBack:
		m.activeModal = ModalNone
		m.confirmPrompt = ""
		m.onConfirm = nil
		return m, nil
	}
	return m, nil
}

// confirmView renders the confirmation modal
func (m AppModel) confirmView() string {
	content := styles.Highlight.Render("Are you sure?") + "\n\n" + m.confirmPrompt

	footer := components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "y", Desc: "Confirm"},
		{Key: "n", Desc: "Cancel"},
	})

	box := styles.ContentBox(min(m.width-4, 60), content, 1)
	return styles.CenteredView(m.width, m.height-2, box) + "\n" + footer
}
