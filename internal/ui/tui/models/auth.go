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

	"github.com/yomu-dev/yomu/internal/log"
	"github.com/yomu-dev/yomu/internal/ui/tui/components"
	kb "github.com/yomu-dev/yomu/internal/ui/tui/keybindings"
	"github.com/yomu-dev/yomu/internal/ui/tui/styles"
)

// authMode selects between the login and registration forms
type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// AuthModel handles the login and registration forms
type AuthModel struct {
	svcs          *Services
	width, height int
	mode          authMode
	focusIndex    int
	username      textinput.Model
	email         textinput.Model
	password      textinput.Model
	loading       bool
	spinner       spinner.Model
	errorText     string
}

// NewAuthModel creates a new auth model
func NewAuthModel(svcs *Services) *AuthModel {
	username := textinput.New()
	username.Placeholder = "Username"
	username.Width = 30
	username.Focus()

	email := textinput.New()
	email.Placeholder = "Email"
	email.Width = 30

	password := textinput.New()
	password.Placeholder = "Password"
	password.Width = 30
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0485A"))

	return &AuthModel{
		svcs:     svcs,
		mode:     modeLogin,
		username: username,
		email:    email,
		password: password,
		spinner:  s,
	}
}

// Reset clears the form so revisiting the auth view starts fresh
func (m *AuthModel) Reset() {
	m.username.SetValue("")
	m.email.SetValue("")
	m.password.SetValue("")
	m.errorText = ""
	m.loading = false
	m.mode = modeLogin
	m.focusField(0)
}

func (m *AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AuthModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// login exchanges the entered credentials for a session
func login(svcs *Services, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := svcs.Session.Login(ctx, username, password)
		if err != nil {
			log.Warn("Login failed", "username", username, "error", err)
			return AuthErrorMsg{Error: err.Error()}
		}
		return AuthSuccessMsg{User: user}
	}
}

// register creates an account and logs it in
func register(svcs *Services, username, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := svcs.Session.Register(ctx, username, email, password)
		if err != nil {
			log.Warn("Registration failed", "username", username, "error", err)
			return AuthErrorMsg{Error: err.Error()}
		}
		return AuthSuccessMsg{User: user}
	}
}

func (m *AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch kb.GetActionByKey(msg, kb.ContextAuth) {
		case kb.ActionSubmit:
			return m, m.submit()
		case kb.ActionNextField:
			m.focusField(m.focusIndex + 1)
			return m, nil
		case kb.ActionSwitchMode:
			if m.mode == modeLogin {
				m.mode = modeRegister
			} else {
				m.mode = modeLogin
			}
			m.errorText = ""
			m.focusField(0)
			return m, nil
		}

		if msg.String() == "esc" {
			return m, Back()
		}

		return m, m.updateFocusedField(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case AuthErrorMsg:
		m.loading = false
		m.errorText = msg.Error
		return m, nil
	}

	return m, nil
}

// submit validates the form and kicks off the credential exchange
func (m *AuthModel) submit() tea.Cmd {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()

	if username == "" || password == "" {
		m.errorText = "Username and password are required"
		return nil
	}

	m.loading = true
	m.errorText = ""

	if m.mode == modeRegister {
		email := strings.TrimSpace(m.email.Value())
		if email == "" {
			m.loading = false
			m.errorText = "Email is required"
			return nil
		}
		return tea.Batch(m.spinner.Tick, register(m.svcs, username, email, password))
	}
	return tea.Batch(m.spinner.Tick, login(m.svcs, username, password))
}

// fieldCount is the number of inputs in the active form
func (m *AuthModel) fieldCount() int {
	if m.mode == modeRegister {
		return 3
	}
	return 2
}

// focusField moves input focus, wrapping around the form
func (m *AuthModel) focusField(index int) {
	m.focusIndex = index % m.fieldCount()

	m.username.Blur()
	m.email.Blur()
	m.password.Blur()

	switch m.fields()[m.focusIndex] {
	case &m.username:
		m.username.Focus()
	case &m.email:
		m.email.Focus()
	case &m.password:
		m.password.Focus()
	}
}

// fields returns the active form's inputs in display order
func (m *AuthModel) fields() []*textinput.Model {
	if m.mode == modeRegister {
		return []*textinput.Model{&m.username, &m.email, &m.password}
	}
	return []*textinput.Model{&m.username, &m.password}
}

func (m *AuthModel) updateFocusedField(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.fields()[m.focusIndex] {
	case &m.username:
		m.username, cmd = m.username.Update(msg)
	case &m.email:
		m.email, cmd = m.email.Update(msg)
	case &m.password:
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

func (m *AuthModel) View() string {
	title := "Login"
	if m.mode == modeRegister {
		title = "Create Account"
	}
	header := styles.Header(m.width, "Yomu - "+title)

	if m.loading {
		return styles.CenteredView(
			m.width,
			m.height,
			fmt.Sprintf("%s Authenticating...", m.spinner.View()),
		)
	}

	var b strings.Builder
	b.WriteString(m.username.View())
	b.WriteString("\n\n")
	if m.mode == modeRegister {
		b.WriteString(m.email.View())
		b.WriteString("\n\n")
	}
	b.WriteString(m.password.View())

	if m.errorText != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Error.Render(m.errorText))
	}

	form := styles.ContentBox(min(m.width-4, 50), b.String(), 1)

	switchHelp := "Create an account"
	if m.mode == modeRegister {
		switchHelp = "Back to login"
	}
	footer := components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "enter", Desc: "Submit"},
		{Key: "tab", Desc: "Next field"},
		{Key: "ctrl+r", Desc: switchHelp},
		{Key: "esc", Desc: "Back"},
	})

	return header + "\n" + styles.CenteredView(m.width, m.height-4, form) + "\n" + footer
}
