package client

import (
	"context"
	"net/http"
	"net/url"
)

// CategoryRecord is a shelf category as the backend stores it.
type CategoryRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BookCount   int    `json:"bookCount"`
}

// ListCategories fetches all shelf categories.
func (c *Client) ListCategories(ctx context.Context) ([]CategoryRecord, error) {
	var cats []CategoryRecord
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Category fetches a single shelf category.
func (c *Client) Category(ctx context.Context, id string) (CategoryRecord, error) {
	var cat CategoryRecord
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, nil, &cat); err != nil {
		return CategoryRecord{}, err
	}
	return cat, nil
}

// CreateCategory adds a shelf category.
func (c *Client) CreateCategory(ctx context.Context, cat CategoryRecord) (CategoryRecord, error) {
	var created CategoryRecord
	if err := c.do(ctx, http.MethodPost, "/categories", nil, cat, &created); err != nil {
		return CategoryRecord{}, err
	}
	return created, nil
}

// UpdateCategory replaces a shelf category.
func (c *Client) UpdateCategory(ctx context.Context, id string, cat CategoryRecord) (CategoryRecord, error) {
	var updated CategoryRecord
	if err := c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), nil, cat, &updated); err != nil {
		return CategoryRecord{}, err
	}
	return updated, nil
}

// DeleteCategory removes a shelf category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil, nil)
}
