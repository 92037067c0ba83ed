package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleTable_RendersHeadersAndRows(t *testing.T) {
	tbl := NewSimpleTable("Loans", []string{"Book", "Due"})
	tbl.AddRow("Atomic Habits", "2026-09-14")
	tbl.AddRow("Company of One", "2026-09-21")

	out := tbl.View(NewStyles(LightTheme()))

	assert.Contains(t, out, "Loans")
	assert.Contains(t, out, "Book")
	assert.Contains(t, out, "Atomic Habits")
	assert.Contains(t, out, "2026-09-21")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5, "title, header, separator, two rows")
}

func TestSimpleTable_EmptyShowsPlaceholder(t *testing.T) {
	tbl := NewSimpleTable("", []string{"Book", "Due"})

	out := tbl.View(NewStyles(LightTheme()))
	assert.Contains(t, out, "(no entries)")
	assert.NotContains(t, out, "Book", "headers are omitted when there is nothing to list")
}
