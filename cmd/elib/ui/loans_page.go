package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"elibrary/internal/client"
)

// loanTab selects which slice of the loan ledger is shown.
type loanTab int

const (
	loanTabAll loanTab = iota
	loanTabActive
	loanTabOverdue
)

func (t loanTab) String() string {
	switch t {
	case loanTabActive:
		return "Active"
	case loanTabOverdue:
		return "Overdue"
	default:
		return "All"
	}
}

// LoansPageModel shows the loan ledger with all/active/overdue tabs and
// return/extend actions on the selected row.
type LoansPageModel struct {
	api    *client.Client
	styles Styles

	tab    loanTab
	loans  []client.Loan
	cursor int

	gen     int
	loading bool
	status  string
	isErr   bool

	width  int
	height int
}

// NewLoansPageModel creates the loans page.
func NewLoansPageModel(api *client.Client, styles Styles) LoansPageModel {
	return LoansPageModel{api: api, styles: styles}
}

// SetSize updates layout bounds.
func (m *LoansPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Load fetches the ledger slice for the active tab.
func (m *LoansPageModel) Load() tea.Cmd {
	m.gen++
	m.loading = true
	gen := m.gen
	tab := m.tab
	api := m.api
	return func() tea.Msg {
		var (
			loans []client.Loan
			err   error
		)
		ctx := context.Background()
		switch tab {
		case loanTabActive:
			loans, err = api.ActiveLoans(ctx)
		case loanTabOverdue:
			loans, err = api.OverdueLoans(ctx)
		default:
			loans, err = api.ListLoans(ctx)
		}
		return loansLoadedMsg{gen: gen, tab: tab, loans: loans, err: err}
	}
}

// Update handles page messages.
func (m LoansPageModel) Update(msg tea.Msg) (LoansPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loansLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			m.isErr = true
			m.loans = nil
			return m, nil
		}
		m.status = ""
		m.isErr = false
		m.loans = msg.loans
		if m.cursor >= len(m.loans) {
			m.cursor = max(0, len(m.loans)-1)
		}
		return m, nil

	case loanActionMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.isErr = true
			return m, nil
		}
		m.status = msg.note
		m.isErr = false
		return m, m.Load()

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right":
			m.tab = (m.tab + 1) % 3
			return m, m.Load()
		case "shift+tab", "left":
			m.tab = (m.tab + 2) % 3
			return m, m.Load()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.loans)-1 {
				m.cursor++
			}
		case "r":
			return m, m.returnSelected()
		case "e":
			return m, m.extendSelected(7)
		case "ctrl+r":
			return m, m.Load()
		}
	}
	return m, nil
}

func (m *LoansPageModel) returnSelected() tea.Cmd {
	if m.cursor >= len(m.loans) {
		return nil
	}
	loan := m.loans[m.cursor]
	if loan.Status == client.LoanStatusReturned {
		m.status = "loan is already returned"
		m.isErr = true
		return nil
	}
	api := m.api
	return func() tea.Msg {
		if _, err := api.Return(context.Background(), loan.ID); err != nil {
			return loanActionMsg{err: err}
		}
		return loanActionMsg{note: fmt.Sprintf("returned %q", loan.BookTitle)}
	}
}

func (m *LoansPageModel) extendSelected(days int) tea.Cmd {
	if m.cursor >= len(m.loans) {
		return nil
	}
	loan := m.loans[m.cursor]
	api := m.api
	return func() tea.Msg {
		if _, err := api.Extend(context.Background(), loan.ID, days); err != nil {
			return loanActionMsg{err: err}
		}
		return loanActionMsg{note: fmt.Sprintf("extended %q by %d days", loan.BookTitle, days)}
	}
}

// View renders the page.
func (m LoansPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Loans"))
	sb.WriteString("\n\n")
	for t := loanTabAll; t <= loanTabOverdue; t++ {
		if t == m.tab {
			sb.WriteString(m.styles.Selected.Render(" " + t.String() + " "))
		} else {
			sb.WriteString(m.styles.SidebarItem.Render(t.String()))
		}
	}
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.styles.Muted.Render("loading loans..."))
		sb.WriteString("\n")
		return sb.String()
	}

	table := NewSimpleTable("", []string{"Book", "Member", "Loaned", "Due", "Returned", "Status"})
	table.Cursor = m.cursor
	for _, loan := range m.loans {
		returned := loan.ReturnDate
		if returned == "" {
			returned = "-"
		}
		table.AddRow(truncate(loan.BookTitle, 32), loan.UserName, loan.LoanDate, loan.DueDate, returned, loan.Status)
	}
	sb.WriteString(table.View(m.styles))

	sb.WriteString("\n")
	if m.status != "" {
		if m.isErr {
			sb.WriteString(m.styles.Error.Render(m.status))
		} else {
			sb.WriteString(m.styles.Success.Render(m.status))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Muted.Render("tab switch · r return · e extend 7d · ctrl+r reload"))
	return sb.String()
}
