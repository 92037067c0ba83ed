package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"elibrary/internal/session"
)

// SettingsPageModel is the profile surface: identity card, avatar upload,
// account edits and sign-out.
type SettingsPageModel struct {
	sessions *session.Store
	styles   Styles

	sess   session.Session
	avatar string

	nameInput   textinput.Model
	emailInput  textinput.Model
	avatarInput textinput.Model
	focus       int

	status string
	isErr  bool

	width  int
	height int
}

// NewSettingsPageModel creates the settings page seeded from the store.
func NewSettingsPageModel(sessions *session.Store, styles Styles) SettingsPageModel {
	name := textinput.New()
	name.Placeholder = "display name"
	name.CharLimit = 120
	name.Width = 36

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 36

	avatar := textinput.New()
	avatar.Placeholder = "path to an image file, e.g. ~/pictures/me.png"
	avatar.CharLimit = 512
	avatar.Width = 48

	m := SettingsPageModel{
		sessions:    sessions,
		styles:      styles,
		nameInput:   name,
		emailInput:  email,
		avatarInput: avatar,
	}
	m.Refresh()
	m.nameInput.Focus()
	return m
}

// Refresh re-derives the page's transient copies from the store. Called on
// mount and whenever the store signals a change; safe to call repeatedly
// with the same values.
func (m *SettingsPageModel) Refresh() {
	m.sess = m.sessions.Load()
	m.avatar = m.sessions.ProfileImage()
	m.nameInput.SetValue(m.sess.Name)
	m.emailInput.SetValue(m.sess.Email)
}

// SetAvatar applies a broadcast avatar value without touching form state.
func (m *SettingsPageModel) SetAvatar(image string) {
	m.avatar = image
}

// SetSize updates layout bounds.
func (m *SettingsPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *SettingsPageModel) inputs() []*textinput.Model {
	return []*textinput.Model{&m.nameInput, &m.emailInput, &m.avatarInput}
}

func (m *SettingsPageModel) setFocus(i int) {
	inputs := m.inputs()
	inputs[m.focus].Blur()
	m.focus = i
	inputs[m.focus].Focus()
}

// Update handles page messages.
func (m SettingsPageModel) Update(msg tea.Msg) (SettingsPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case avatarResultMsg:
		if msg.err != nil {
			// the previous avatar stays; the failure is only reported
			m.status = msg.err.Error()
			m.isErr = true
			return m, nil
		}
		m.status = "Profile picture updated everywhere."
		m.isErr = false
		m.avatarInput.SetValue("")
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % 3)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + 2) % 3)
			return m, nil
		case "enter":
			if m.focus == 2 {
				return m, m.uploadAvatar()
			}
			return m, m.saveAccount()
		case "esc":
			return m, func() tea.Msg { return navigateMsg{page: PageBooks} }
		case "ctrl+x":
			return m, m.signOut(session.KeepAvatar)
		case "ctrl+p":
			return m, m.signOut(session.ClearAll)
		}

		var cmd tea.Cmd
		inputs := m.inputs()
		*inputs[m.focus], cmd = inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// saveAccount persists edited display name and email back into the session
// record.
func (m *SettingsPageModel) saveAccount() tea.Cmd {
	name := strings.TrimSpace(m.nameInput.Value())
	email := strings.TrimSpace(m.emailInput.Value())
	if name == "" || email == "" {
		m.status = "Name and email are required"
		m.isErr = true
		return nil
	}

	updated := m.sess
	updated.Name = name
	updated.Email = email
	if err := m.sessions.SaveSession(updated, m.sessions.Token()); err != nil {
		m.status = err.Error()
		m.isErr = true
		return nil
	}
	m.sess = updated
	m.status = "Changes saved."
	m.isErr = false
	return func() tea.Msg { return sessionChangedMsg{} }
}

// uploadAvatar reads the file named in the avatar input and pushes it into
// the session store, which persists it and notifies every mounted surface.
// Any failure leaves the previous avatar in place.
func (m *SettingsPageModel) uploadAvatar() tea.Cmd {
	path := strings.TrimSpace(m.avatarInput.Value())
	if path == "" {
		m.status = "Enter the path of an image file first"
		m.isErr = true
		return nil
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}

	sessions := m.sessions
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return avatarResultMsg{err: fmt.Errorf("read image: %w", err)}
		}
		if err := sessions.SetProfileImage(data); err != nil {
			if errors.Is(err, session.ErrEmptyImage) {
				return avatarResultMsg{err: errors.New("that file is empty")}
			}
			return avatarResultMsg{err: err}
		}
		return avatarResultMsg{}
	}
}

func (m *SettingsPageModel) signOut(policy session.ClearPolicy) tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		if err := sessions.Clear(policy); err != nil {
			return avatarResultMsg{err: err}
		}
		return sessionChangedMsg{}
	}
}

// View renders the page.
func (m SettingsPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Settings"))
	sb.WriteString("\n\n")

	// Profile card
	var card strings.Builder
	card.WriteString(avatarBadge(m.styles, m.sess, m.avatar))
	card.WriteString("  ")
	card.WriteString(m.styles.Bold.Render(displayName(m.sess)))
	card.WriteString("\n")
	card.WriteString(m.styles.Muted.Render(
		fmt.Sprintf("Library Member · Member since %d", m.sess.MemberSince(2023))))
	card.WriteString("\n")
	if m.avatar != "" {
		card.WriteString(m.styles.Success.Render(fmt.Sprintf("avatar set (%d KB)", len(m.avatar)/1024)))
	} else {
		card.WriteString(m.styles.Muted.Render("no avatar uploaded"))
	}
	sb.WriteString(m.styles.Panel.Render(card.String()))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Muted.Render("display name: "))
	sb.WriteString(m.nameInput.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("email:        "))
	sb.WriteString(m.emailInput.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("avatar file:  "))
	sb.WriteString(m.avatarInput.View())
	sb.WriteString("\n\n")

	if m.status != "" {
		if m.isErr {
			sb.WriteString(m.styles.Error.Render(m.status))
		} else {
			sb.WriteString(m.styles.Success.Render(m.status))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Muted.Render("enter save/upload · tab next field · esc back · ctrl+x sign out · ctrl+p sign out and forget avatar"))
	return sb.String()
}

// displayName falls back to a neutral label for a half-formed session.
func displayName(sess session.Session) string {
	if sess.Name != "" {
		return sess.Name
	}
	return "User"
}

// avatarBadge renders the avatar presence marker: the member's initial,
// filled when an image is stored.
func avatarBadge(styles Styles, sess session.Session, avatar string) string {
	initial := "U"
	if name := displayName(sess); name != "" {
		initial = strings.ToUpper(string([]rune(name)[0]))
	}
	if avatar != "" {
		return styles.Selected.Render(" " + initial + " ")
	}
	return styles.Badge.Render("(" + initial + ")")
}
