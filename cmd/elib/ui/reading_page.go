package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"elibrary/internal/catalog"
)

// ReadingPageModel is the e-reader surface: the open book's text rendered
// as markdown in a scrollable viewport.
type ReadingPageModel struct {
	styles   Styles
	viewport viewport.Model
	book     *catalog.Book
	width    int
	height   int
}

// NewReadingPageModel creates an empty reader.
func NewReadingPageModel(styles Styles) ReadingPageModel {
	return ReadingPageModel{
		styles:   styles,
		viewport: viewport.New(80, 20),
	}
}

// Open loads a book into the reader.
func (m *ReadingPageModel) Open(book catalog.Book) {
	m.book = &book
	m.render()
}

// SetSize updates layout bounds.
func (m *ReadingPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = max(5, h-4)
	m.render()
}

// render rebuilds the viewport content. Rendering failures degrade to the
// plain text rather than an empty reader.
func (m *ReadingPageModel) render() {
	if m.book == nil {
		m.viewport.SetContent("No book open. Pick one from the Books page.")
		return
	}

	md := fmt.Sprintf("# %s\n\n*by %s*\n\n---\n\n%s\n\n---\n\n**ISBN** %s · **Pages** %s · **Language** %s\n",
		m.book.Title, m.book.Author, m.book.Description, m.book.ISBN, m.book.Pages, m.book.Language)

	width := min(90, max(40, m.width-4))
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.viewport.SetContent(md)
		return
	}
	out, err := renderer.Render(md)
	if err != nil {
		m.viewport.SetContent(md)
		return
	}
	m.viewport.SetContent(out)
}

// Update handles scrolling and the way back to the shelf.
func (m ReadingPageModel) Update(msg tea.Msg) (ReadingPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m, func() tea.Msg { return navigateMsg{page: PageBooks} }
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m ReadingPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Reader"))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("arrows/pgup/pgdn scroll · esc back to books"))
	return sb.String()
}
