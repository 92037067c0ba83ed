package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"elibrary/internal/catalog"
)

// BooksPageModel is the book discovery surface: a free-text search box, a
// category selector, the filtered book rail, and an exclusive detail view.
//
// The visible subset is always Filter(base, search, category); it is
// recomputed whenever either predicate or the base collection changes,
// debounced while the user is typing.
type BooksPageModel struct {
	loader *catalog.Loader
	styles Styles

	input      textinput.Model
	categories []string
	catIndex   int

	base    []catalog.Book
	visible []catalog.Book
	cursor  int
	detail  *catalog.Book

	// loadGen invalidates in-flight loads; filterGen invalidates pending
	// debounce ticks.
	loadGen   int
	filterGen int
	loading   bool

	width  int
	height int
}

// NewBooksPageModel creates the books page.
func NewBooksPageModel(loader *catalog.Loader, styles Styles) BooksPageModel {
	input := textinput.New()
	input.Placeholder = "find the book you like..."
	input.CharLimit = 120
	input.Width = 40

	categories := []string{catalog.AllCategories}
	for _, cat := range catalog.SampleCategories() {
		categories = append(categories, cat.Name)
	}

	return BooksPageModel{
		loader:     loader,
		styles:     styles,
		input:      input,
		categories: categories,
	}
}

// Load kicks off a base-collection fetch. Earlier in-flight loads are
// invalidated rather than cancelled; their results get discarded on arrival.
func (m *BooksPageModel) Load() tea.Cmd {
	m.loadGen++
	m.loading = true
	gen := m.loadGen
	loader := m.loader
	return func() tea.Msg {
		books := loader.Load(context.Background())
		return booksLoadedMsg{gen: gen, books: books}
	}
}

// SetSize updates layout bounds.
func (m *BooksPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = min(60, max(20, w-30))
}

// Searching reports whether keystrokes are currently feeding the search box.
func (m BooksPageModel) Searching() bool {
	return m.input.Focused() && m.detail == nil
}

// Update handles page messages.
func (m BooksPageModel) Update(msg tea.Msg) (BooksPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case booksLoadedMsg:
		if msg.gen != m.loadGen {
			return m, nil
		}
		m.loading = false
		m.base = msg.books
		m.applyFilters()
		return m, nil

	case filterTickMsg:
		if msg.gen != m.filterGen {
			return m, nil
		}
		m.applyFilters()
		return m, nil

	case tea.KeyMsg:
		if m.detail != nil {
			switch msg.String() {
			case "esc", "q", "enter":
				m.detail = nil
			}
			return m, nil
		}

		if m.input.Focused() {
			switch msg.String() {
			case "esc":
				m.input.Blur()
				return m, nil
			case "enter":
				m.input.Blur()
				m.applyFilters()
				return m, nil
			}
			var cmd tea.Cmd
			before := m.input.Value()
			m.input, cmd = m.input.Update(msg)
			if m.input.Value() != before {
				m.filterGen++
				return m, tea.Batch(cmd, debounceFilter(m.filterGen))
			}
			return m, cmd
		}

		switch msg.String() {
		case "/":
			m.input.Focus()
			return m, textinput.Blink
		case "shift+tab", "left":
			m.catIndex = (m.catIndex + len(m.categories) - 1) % len(m.categories)
			m.applyFilters()
			return m, nil
		case "tab", "right":
			m.catIndex = (m.catIndex + 1) % len(m.categories)
			m.applyFilters()
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.cursor < len(m.visible) {
				book := m.visible[m.cursor]
				m.detail = &book
			}
			return m, nil
		case "ctrl+r":
			return m, m.Load()
		}
		return m, nil
	}

	return m, nil
}

// applyFilters recomputes the visible subset from the base collection and
// both predicates, and clamps the cursor.
func (m *BooksPageModel) applyFilters() {
	m.visible = catalog.Filter(m.base, m.input.Value(), m.categories[m.catIndex])
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

// Selected returns the book open in the detail view, if any.
func (m BooksPageModel) Selected() *catalog.Book {
	return m.detail
}

// CurrentBook returns the book the user is acting on: the open detail view
// if there is one, else the rail cursor.
func (m BooksPageModel) CurrentBook() *catalog.Book {
	if m.detail != nil {
		return m.detail
	}
	if m.cursor < len(m.visible) {
		book := m.visible[m.cursor]
		return &book
	}
	return nil
}

// View renders the page.
func (m BooksPageModel) View() string {
	if m.detail != nil {
		return m.viewDetail()
	}

	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Books"))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render("search: "))
	sb.WriteString(m.input.View())
	sb.WriteString("\n")

	sb.WriteString(m.styles.Muted.Render("category: "))
	for i, cat := range m.categories {
		if i == m.catIndex {
			sb.WriteString(m.styles.Selected.Render(" " + cat + " "))
		} else {
			sb.WriteString(m.styles.SidebarItem.Render(cat))
		}
	}
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.styles.Muted.Render("loading collection..."))
		sb.WriteString("\n")
		return sb.String()
	}

	if len(m.visible) == 0 {
		sb.WriteString(m.styles.Muted.Render("No books found matching your search."))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, book := range m.visible {
		line := fmt.Sprintf("%-38s %-22s", truncate(book.Title, 38), truncate(book.Author, 22))
		if i == m.cursor {
			sb.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			sb.WriteString(m.styles.Body.Render("  " + line))
		}
		sb.WriteString(" ")
		sb.WriteString(m.styles.CategoryPill(book.Category))
		if book.Bestseller {
			sb.WriteString(" ")
			sb.WriteString(m.styles.Badge.Render("bestseller"))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("/ search · enter detail · tab category · b borrow · ctrl+r reload"))
	return sb.String()
}

func (m BooksPageModel) viewDetail() string {
	b := m.detail
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(b.Title))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("by " + b.Author))
	sb.WriteString("  ")
	sb.WriteString(m.styles.CategoryPill(b.Category))
	if b.Bestseller {
		sb.WriteString(" ")
		sb.WriteString(m.styles.Badge.Render("bestseller"))
	}
	sb.WriteString("\n\n")

	meta := NewSimpleTable("", []string{"ISBN", "Pages", "Language", "Published"})
	meta.AddRow(b.ISBN, b.Pages, b.Language, b.PublishedDate)
	sb.WriteString(meta.View(m.styles))
	sb.WriteString("\n")

	sb.WriteString(m.styles.Body.Width(min(78, max(40, m.width-4))).Render(b.Description))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render("esc close · r open reader · b borrow"))
	return m.styles.Panel.Render(sb.String())
}

// truncate shortens s to n characters, counting runes so multibyte titles
// are never split mid-character.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
