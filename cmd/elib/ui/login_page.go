package ui

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"elibrary/internal/client"
	"elibrary/internal/session"
)

// authMode selects which form the login page shows.
type authMode int

const (
	modeLogin authMode = iota
	modeSignup
	modeReset
)

// passwordCharset is the allowed password alphabet. The policy is at least
// eight characters from this set with at least one symbol; validation runs
// locally and blocks submission, nothing invalid is sent to the backend.
var passwordCharset = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*]{8,}$`)

const passwordSymbols = "!@#$%^&*"

// ValidatePassword enforces the password policy.
func ValidatePassword(pw string) error {
	if !passwordCharset.MatchString(pw) || !strings.ContainsAny(pw, passwordSymbols) {
		return errors.New("password must be at least 8 characters and contain at least one symbol (!@#$%^&*)")
	}
	return nil
}

// LoginPageModel is the unauthenticated entry point: sign in, sign up, and
// password reset share one surface.
type LoginPageModel struct {
	api      *client.Client
	sessions *session.Store
	styles   Styles

	mode   authMode
	inputs []textinput.Model
	focus  int

	errText     string
	successText string
	busy        bool

	width  int
	height int
}

// NewLoginPageModel creates the auth surface in sign-in mode.
func NewLoginPageModel(api *client.Client, sessions *session.Store, styles Styles) LoginPageModel {
	m := LoginPageModel{api: api, sessions: sessions, styles: styles}
	m.rebuildInputs()
	return m
}

// rebuildInputs resets the form fields for the current mode.
func (m *LoginPageModel) rebuildInputs() {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 36

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120
	password.Width = 36

	switch m.mode {
	case modeSignup:
		name := textinput.New()
		name.Placeholder = "full name"
		name.CharLimit = 120
		name.Width = 36
		m.inputs = []textinput.Model{name, email, password}
	case modeReset:
		password.Placeholder = "new password"
		confirm := textinput.New()
		confirm.Placeholder = "confirm new password"
		confirm.EchoMode = textinput.EchoPassword
		confirm.CharLimit = 120
		confirm.Width = 36
		m.inputs = []textinput.Model{email, password, confirm}
	default:
		m.inputs = []textinput.Model{email, password}
	}

	m.focus = 0
	m.inputs[0].Focus()
	m.errText = ""
	m.busy = false
}

// SetSize updates layout bounds.
func (m *LoginPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles page messages.
func (m LoginPageModel) Update(msg tea.Msg) (LoginPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = friendlyAuthError(msg.err)
			return m, nil
		}
		if err := m.sessions.SaveSession(msg.user.Session(), msg.user.Token); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return sessionChangedMsg{} }

	case signupResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = friendlyAuthError(msg.err)
			return m, nil
		}
		m.mode = modeLogin
		m.rebuildInputs()
		m.successText = "Account created. Sign in to continue."
		return m, nil

	case resetResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = friendlyAuthError(msg.err)
			return m, nil
		}
		m.mode = modeLogin
		m.rebuildInputs()
		m.successText = "Password updated. Sign in with your new password."
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil
		case "enter":
			return m, m.submit()
		case "ctrl+u":
			// cycle sign in -> sign up -> reset
			m.mode = (m.mode + 1) % 3
			m.successText = ""
			m.rebuildInputs()
			return m, nil
		}

		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *LoginPageModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// submit validates the active form locally, then issues the backend call.
func (m *LoginPageModel) submit() tea.Cmd {
	if m.busy {
		return nil
	}
	m.errText = ""
	m.successText = ""

	switch m.mode {
	case modeSignup:
		name := strings.TrimSpace(m.inputs[0].Value())
		email := strings.TrimSpace(m.inputs[1].Value())
		password := m.inputs[2].Value()
		if name == "" || email == "" || password == "" {
			m.errText = "Please fill in all fields"
			return nil
		}
		if err := ValidatePassword(password); err != nil {
			m.errText = err.Error()
			return nil
		}
		m.busy = true
		api := m.api
		return func() tea.Msg {
			_, err := api.CreateUser(context.Background(), client.User{
				Name: name, Email: email, Password: password, Active: true,
			})
			return signupResultMsg{err: err}
		}

	case modeReset:
		email := strings.TrimSpace(m.inputs[0].Value())
		newPassword := m.inputs[1].Value()
		confirm := m.inputs[2].Value()
		if email == "" {
			m.errText = "Please enter your email address"
			return nil
		}
		if newPassword == "" || confirm == "" {
			m.errText = "Please fill in all fields"
			return nil
		}
		if newPassword != confirm {
			m.errText = "Passwords do not match"
			return nil
		}
		if err := ValidatePassword(newPassword); err != nil {
			m.errText = err.Error()
			return nil
		}
		m.busy = true
		api := m.api
		return func() tea.Msg {
			return resetResultMsg{err: api.ResetPassword(context.Background(), email, newPassword)}
		}

	default:
		email := strings.TrimSpace(m.inputs[0].Value())
		password := m.inputs[1].Value()
		if email == "" || password == "" {
			m.errText = "Please fill in all fields"
			return nil
		}
		m.busy = true
		api := m.api
		return func() tea.Msg {
			user, err := api.Login(context.Background(), email, password)
			return loginResultMsg{user: user, err: err}
		}
	}
}

// friendlyAuthError surfaces the backend's own message when it supplied
// one, else a generic line. Transport details never reach the form.
func friendlyAuthError(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.As(err, &apiErr) {
		return "Invalid credentials"
	}
	return "Cannot reach the library service. Check your connection and try again."
}

// View renders the page.
func (m LoginPageModel) View() string {
	var sb strings.Builder

	title := "Sign In"
	switch m.mode {
	case modeSignup:
		title = "Create Account"
	case modeReset:
		title = "Reset Password"
	}
	sb.WriteString(m.styles.Title.Render("E-Library"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Header.Render(title))
	sb.WriteString("\n\n")

	for i := range m.inputs {
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.busy {
		sb.WriteString(m.styles.Muted.Render("contacting the library service..."))
		sb.WriteString("\n")
	}
	if m.errText != "" {
		sb.WriteString(m.styles.Error.Render(m.errText))
		sb.WriteString("\n")
	}
	if m.successText != "" {
		sb.WriteString(m.styles.Success.Render(m.successText))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("enter submit · tab next field · ctrl+u switch sign in / sign up / reset"))
	return m.styles.Panel.Render(sb.String())
}
