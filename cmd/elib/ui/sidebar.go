package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"elibrary/internal/session"
)

// SidebarModel is the navigation rail. It owns no state of its own: the
// identity and avatar it shows are transient copies re-derived from the
// session store on every change broadcast.
type SidebarModel struct {
	sessions *session.Store
	styles   Styles

	sess   session.Session
	avatar string

	active Page
	height int
}

// NewSidebarModel creates the rail seeded from the store.
func NewSidebarModel(sessions *session.Store, styles Styles) SidebarModel {
	m := SidebarModel{sessions: sessions, styles: styles}
	m.Refresh()
	return m
}

// Refresh re-reads identity and avatar from the store. Idempotent; called
// on every change signal regardless of origin.
func (m *SidebarModel) Refresh() {
	m.sess = m.sessions.Load()
	m.avatar = m.sessions.ProfileImage()
}

// SetAvatar applies a broadcast avatar value.
func (m *SidebarModel) SetAvatar(image string) {
	m.avatar = image
}

// SetActive highlights the current page.
func (m *SidebarModel) SetActive(page Page) {
	m.active = page
}

// SetHeight fixes the rail height.
func (m *SidebarModel) SetHeight(h int) {
	m.height = h
}

var navItems = []struct {
	page  Page
	key   string
	label string
}{
	{PageBooks, "1", "Books"},
	{PageLoans, "2", "Loans"},
	{PageUsers, "3", "Members"},
	{PageReading, "4", "Reader"},
	{PageSettings, "5", "Settings"},
}

// View renders the rail.
func (m SidebarModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("E-Library"))
	sb.WriteString("\n\n")

	for _, item := range navItems {
		line := item.key + " " + item.label
		if item.page == m.active {
			sb.WriteString(m.styles.SidebarActive.Render("▸ " + line))
		} else {
			sb.WriteString(m.styles.SidebarItem.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(avatarBadge(m.styles, m.sess, m.avatar))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Bold.Render(truncate(displayName(m.sess), 18)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(truncate(m.sess.Email, 20)))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render("q quit"))

	rail := lipgloss.NewStyle().
		Width(22).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(m.styles.Theme.Border).
		Render(sb.String())
	return rail
}
