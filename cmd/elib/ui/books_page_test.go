package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elibrary/internal/catalog"
)

type stubFetcher struct {
	books []catalog.Book
	err   error
}

func (s stubFetcher) ListBooks(ctx context.Context) ([]catalog.Book, error) {
	return s.books, s.err
}

func newBooksPage(fetcher catalog.Fetcher) BooksPageModel {
	loader := catalog.NewLoader(fetcher, nil, nil)
	return NewBooksPageModel(loader, NewStyles(LightTheme()))
}

func typeText(t *testing.T, m BooksPageModel, text string) BooksPageModel {
	t.Helper()
	if !m.input.Focused() {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
		require.True(t, m.input.Focused(), "/ should focus the search box")
	}
	for _, r := range text {
		var cmd tea.Cmd
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		require.NotNil(t, cmd, "each keystroke should arm a debounce tick")
	}
	return m
}

func TestBooksPage_LoadFallsBackOnFetchFailure(t *testing.T) {
	m := newBooksPage(stubFetcher{err: errors.New("transport down")})

	cmd := m.Load()
	msg := cmd()
	loaded, ok := msg.(booksLoadedMsg)
	require.True(t, ok)

	m, _ = m.Update(loaded)
	assert.Len(t, m.visible, len(catalog.SampleBooks()),
		"fetch failure must surface the sample collection, not a blank page")
	assert.False(t, m.loading)
}

func TestBooksPage_StaleLoadResultIsDiscarded(t *testing.T) {
	m := newBooksPage(stubFetcher{books: catalog.SampleBooks()})

	first := m.Load()
	_ = first
	stale := booksLoadedMsg{gen: m.loadGen - 1, books: []catalog.Book{{ID: "zzz", Title: "Stale"}}}

	m, _ = m.Update(stale)
	assert.Empty(t, m.base, "a result from a superseded load must not be applied")
}

func TestBooksPage_SearchRecomputesAfterDebounce(t *testing.T) {
	m := newBooksPage(stubFetcher{})
	m, _ = m.Update(booksLoadedMsg{gen: m.loadGen, books: catalog.SampleBooks()})

	m = typeText(t, m, "atomic")
	// the visible set is untouched until the debounce tick lands
	assert.Len(t, m.visible, len(catalog.SampleBooks()))

	m, _ = m.Update(filterTickMsg{gen: m.filterGen})
	require.Len(t, m.visible, 1)
	assert.Equal(t, "Atomic Habits", m.visible[0].Title)
}

func TestBooksPage_StaleDebounceTickIsIgnored(t *testing.T) {
	m := newBooksPage(stubFetcher{})
	m, _ = m.Update(booksLoadedMsg{gen: m.loadGen, books: catalog.SampleBooks()})

	m = typeText(t, m, "atomic")
	m, _ = m.Update(filterTickMsg{gen: m.filterGen - 1})
	assert.Len(t, m.visible, len(catalog.SampleBooks()),
		"a tick armed by an earlier keystroke must not trigger a recompute")
}

func TestBooksPage_CategoryCycleFiltersImmediately(t *testing.T) {
	m := newBooksPage(stubFetcher{})
	m, _ = m.Update(booksLoadedMsg{gen: m.loadGen, books: catalog.SampleBooks()})

	// All Categories -> Business
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Len(t, m.visible, 2)
	assert.Equal(t, "The Psychology of Money", m.visible[0].Title)
	assert.Equal(t, "Company of One", m.visible[1].Title)
}

func TestBooksPage_EmptyResultRendersExplicitMessage(t *testing.T) {
	m := newBooksPage(stubFetcher{})
	m, _ = m.Update(booksLoadedMsg{gen: m.loadGen, books: catalog.SampleBooks()})

	m = typeText(t, m, "no such book anywhere")
	m, _ = m.Update(filterTickMsg{gen: m.filterGen})

	require.Empty(t, m.visible)
	assert.True(t, strings.Contains(m.View(), "No books found"),
		"an empty subset must render a message, not a silent gap")
}

func TestBooksPage_EscReleasesSearchFocus(t *testing.T) {
	m := newBooksPage(stubFetcher{})
	m, _ = m.Update(booksLoadedMsg{gen: m.loadGen, books: catalog.SampleBooks()})

	m = typeText(t, m, "atomic")
	require.True(t, m.Searching())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Searching())

	// the query stays in force after focus is released
	m, _ = m.Update(filterTickMsg{gen: m.filterGen})
	assert.Len(t, m.visible, 1)
}

func TestTruncate_CountsRunesNotBytes(t *testing.T) {
	assert.Equal(t, "Bücher", truncate("Bücher", 6))

	got := truncate("Überraschungsroman", 10)
	assert.Equal(t, "Überras...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestBooksPage_DetailViewIsExclusiveAndDismissable(t *testing.T) {
	m := newBooksPage(stubFetcher{})
	m, _ = m.Update(booksLoadedMsg{gen: m.loadGen, books: catalog.SampleBooks()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Selected())
	assert.Equal(t, "The Psychology of Money", m.Selected().Title)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.Selected(), "esc must close the detail view")
}
