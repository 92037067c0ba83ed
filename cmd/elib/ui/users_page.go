package ui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"elibrary/internal/client"
)

// UsersPageModel shows the member roster.
type UsersPageModel struct {
	api    *client.Client
	styles Styles

	users  []client.User
	cursor int

	gen     int
	loading bool
	errText string

	width  int
	height int
}

// NewUsersPageModel creates the users page.
func NewUsersPageModel(api *client.Client, styles Styles) UsersPageModel {
	return UsersPageModel{api: api, styles: styles}
}

// SetSize updates layout bounds.
func (m *UsersPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Load fetches the roster.
func (m *UsersPageModel) Load() tea.Cmd {
	m.gen++
	m.loading = true
	gen := m.gen
	api := m.api
	return func() tea.Msg {
		users, err := api.ListUsers(context.Background())
		return usersLoadedMsg{gen: gen, users: users, err: err}
	}
}

// Update handles page messages.
func (m UsersPageModel) Update(msg tea.Msg) (UsersPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			m.users = nil
			return m, nil
		}
		m.errText = ""
		m.users = msg.users
		if m.cursor >= len(m.users) {
			m.cursor = max(0, len(m.users)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.users)-1 {
				m.cursor++
			}
		case "ctrl+r":
			return m, m.Load()
		}
	}
	return m, nil
}

// View renders the page.
func (m UsersPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Members"))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.styles.Muted.Render("loading members..."))
		sb.WriteString("\n")
		return sb.String()
	}
	if m.errText != "" {
		sb.WriteString(m.styles.Error.Render(m.errText))
		sb.WriteString("\n")
		return sb.String()
	}

	table := NewSimpleTable("", []string{"Name", "Email", "Phone", "Member Since", "Loans", "Status"})
	table.Cursor = m.cursor
	for _, u := range m.users {
		phone := u.Phone
		if phone == "" {
			phone = "-"
		}
		since := u.MembershipDate
		if since == "" {
			since = "-"
		}
		status := "Inactive"
		if u.Active {
			status = "Active"
		}
		table.AddRow(u.Name, u.Email, phone, since, strconv.Itoa(u.ActiveLoans), status)
	}
	sb.WriteString(table.View(m.styles))

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("ctrl+r reload"))
	return sb.String()
}
