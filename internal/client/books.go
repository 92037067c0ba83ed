package client

import (
	"context"
	"net/http"
	"net/url"

	"elibrary/internal/catalog"
)

// bookDTO is the backend's book shape. The backend labels the shelf
// "categoryName" while the catalog model calls it Category; everything else
// maps one-to-one, with catalog-only display fields left empty for the
// loader's cover backfill.
type bookDTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	CoverImage    string `json:"coverImage"`
	Category      string `json:"category"`
	CategoryName  string `json:"categoryName"`
	PublishedDate string `json:"publishedDate"`
	ISBN          string `json:"isbn"`
	Pages         string `json:"pages"`
	Language      string `json:"language"`
	Description   string `json:"description"`
	Bestseller    bool   `json:"isBestseller"`
	Available     bool   `json:"available"`
}

func (d bookDTO) toBook() catalog.Book {
	category := d.Category
	if category == "" {
		category = d.CategoryName
	}
	return catalog.Book{
		ID:            d.ID,
		Title:         d.Title,
		Author:        d.Author,
		CoverImage:    d.CoverImage,
		Category:      category,
		PublishedDate: d.PublishedDate,
		ISBN:          d.ISBN,
		Pages:         d.Pages,
		Language:      d.Language,
		Description:   d.Description,
		Bestseller:    d.Bestseller,
	}
}

func toBooks(dtos []bookDTO) []catalog.Book {
	books := make([]catalog.Book, 0, len(dtos))
	for _, d := range dtos {
		books = append(books, d.toBook())
	}
	return books
}

// ListBooks fetches the whole collection. Satisfies catalog.Fetcher.
func (c *Client) ListBooks(ctx context.Context) ([]catalog.Book, error) {
	var dtos []bookDTO
	if err := c.do(ctx, http.MethodGet, "/books", nil, nil, &dtos); err != nil {
		return nil, err
	}
	return toBooks(dtos), nil
}

// Book fetches a single entry by id.
func (c *Client) Book(ctx context.Context, id string) (catalog.Book, error) {
	var dto bookDTO
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil, nil, &dto); err != nil {
		return catalog.Book{}, err
	}
	return dto.toBook(), nil
}

// SearchBooks runs a keyword search on the backend.
func (c *Client) SearchBooks(ctx context.Context, keyword string) ([]catalog.Book, error) {
	var dtos []bookDTO
	q := url.Values{"keyword": {keyword}}
	if err := c.do(ctx, http.MethodGet, "/books/search", q, nil, &dtos); err != nil {
		return nil, err
	}
	return toBooks(dtos), nil
}

// AvailableBooks fetches entries with copies on the shelf.
func (c *Client) AvailableBooks(ctx context.Context) ([]catalog.Book, error) {
	var dtos []bookDTO
	if err := c.do(ctx, http.MethodGet, "/books/available", nil, nil, &dtos); err != nil {
		return nil, err
	}
	return toBooks(dtos), nil
}

// BooksByCategory fetches the entries shelved under a category id.
func (c *Client) BooksByCategory(ctx context.Context, categoryID string) ([]catalog.Book, error) {
	var dtos []bookDTO
	if err := c.do(ctx, http.MethodGet, "/books/category/"+url.PathEscape(categoryID), nil, nil, &dtos); err != nil {
		return nil, err
	}
	return toBooks(dtos), nil
}

// CreateBook adds a catalog entry.
func (c *Client) CreateBook(ctx context.Context, book catalog.Book) (catalog.Book, error) {
	var dto bookDTO
	if err := c.do(ctx, http.MethodPost, "/books", nil, book, &dto); err != nil {
		return catalog.Book{}, err
	}
	return dto.toBook(), nil
}

// UpdateBook replaces a catalog entry.
func (c *Client) UpdateBook(ctx context.Context, id string, book catalog.Book) (catalog.Book, error) {
	var dto bookDTO
	if err := c.do(ctx, http.MethodPut, "/books/"+url.PathEscape(id), nil, book, &dto); err != nil {
		return catalog.Book{}, err
	}
	return dto.toBook(), nil
}

// DeleteBook removes a catalog entry.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), nil, nil, nil)
}
