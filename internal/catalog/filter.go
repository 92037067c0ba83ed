package catalog

import "strings"

// AllCategories is the neutral category sentinel: no category filtering.
const AllCategories = "All Categories"

// Filter returns the subsequence of books whose title or author
// case-insensitively contains search (when search is non-blank) and whose
// category equals category (unless it is the AllCategories sentinel).
// Whitespace-only search text is neutral. Order is preserved, the input is
// never mutated, and applying the same filter twice is a no-op.
func Filter(books []Book, search, category string) []Book {
	search = strings.TrimSpace(search)
	needle := strings.ToLower(search)
	all := category == "" || category == AllCategories

	filtered := make([]Book, 0, len(books))
	for _, b := range books {
		if needle != "" &&
			!strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Author), needle) {
			continue
		}
		if !all && b.Category != category {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}
