package client

import (
	"context"
	"net/http"
	"net/url"

	"elibrary/internal/session"
)

// User is a library member as the backend reports it.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password,omitempty"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	MembershipDate string `json:"membershipDate"`
	Active         bool   `json:"active"`
	ActiveLoans    int    `json:"activeLoans"`
	// Token rides along on the login response when the backend issues one.
	Token string `json:"token,omitempty"`
}

// Session derives the persisted session record from a user payload.
func (u User) Session() session.Session {
	return session.Session{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		MembershipDate: u.MembershipDate,
	}
}

// ListUsers fetches the member roster.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// User fetches a single member.
func (c *Client) User(ctx context.Context, id string) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// SearchUsers finds members by name.
func (c *Client) SearchUsers(ctx context.Context, name string) ([]User, error) {
	var users []User
	q := url.Values{"name": {name}}
	if err := c.do(ctx, http.MethodGet, "/users/search", q, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers a new member. Used by the sign-up flow.
func (c *Client) CreateUser(ctx context.Context, user User) (User, error) {
	var created User
	if err := c.do(ctx, http.MethodPost, "/users", nil, user, &created); err != nil {
		return User{}, err
	}
	return created, nil
}

// UpdateUser replaces a member record.
func (c *Client) UpdateUser(ctx context.Context, id string, user User) (User, error) {
	var updated User
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, user, &updated); err != nil {
		return User{}, err
	}
	return updated, nil
}

// DeleteUser removes a member record.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}

// Login exchanges credentials for the validated session payload.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	body := map[string]string{"email": email, "password": password}
	var user User
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, body, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// ResetPassword sets a new password for the given account.
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	body := map[string]string{"email": email, "password": newPassword}
	return c.do(ctx, http.MethodPost, "/users/reset-password", nil, body, nil)
}
