// Package catalog holds the book domain model, the bundled sample dataset,
// and the filter pipeline that projects the base collection down to the
// visible subset.
package catalog

// Book is a catalog entry. Books are sourced from the backend or the sample
// set and are never mutated by the UI, only filtered and projected.
type Book struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	CoverImage    string `json:"coverImage"`
	Category      string `json:"category"`
	PublishedDate string `json:"publishedDate"`
	ISBN          string `json:"isbn"`
	Pages         string `json:"pages"`
	Language      string `json:"language"`
	Description   string `json:"description"`
	Bestseller    bool   `json:"isBestseller"`
}

// Category is a browsable shelf label with its display palette.
type Category struct {
	Name       string
	Background string
	Foreground string
}
