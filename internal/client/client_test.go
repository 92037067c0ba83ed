package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 5*time.Second, nil)
}

func TestListBooks_MapsBackendCategoryName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "1", "title": "Dune", "author": "Frank Herbert", "categoryName": "Classics"},
			{"id": "2", "title": "Refactoring", "author": "Martin Fowler", "category": "Technology"},
		})
	})

	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Classics", books[0].Category)
	assert.Equal(t, "Technology", books[1].Category)
}

func TestLogin_ReturnsSessionPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "pa$$word!", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "7", "name": "Ada", "email": "ada@example.com",
			"membershipDate": "2021-03-14", "token": "tok-1",
		})
	})

	user, err := c.Login(context.Background(), "ada@example.com", "pa$$word!")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", user.Token)

	sess := user.Session()
	assert.Equal(t, "7", sess.ID)
	assert.Equal(t, "Ada", sess.Name)
	assert.Equal(t, "2021-03-14", sess.MembershipDate)
}

func TestDo_SurfacesBackendMessageVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	})

	_, err := c.Login(context.Background(), "x@y.z", "nope")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Error())
}

func TestDo_GenericMessageWhenBackendGivesNone(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListLoans(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Error(), "500")
}

func TestCheckoutAndExtend_UseQueryParameters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/loans/checkout":
			assert.Equal(t, "b1", r.URL.Query().Get("bookId"))
			assert.Equal(t, "u1", r.URL.Query().Get("userId"))
			_ = json.NewEncoder(w).Encode(Loan{ID: "l1", Status: LoanStatusActive})
		case "/loans/l1/extend":
			assert.Equal(t, "7", r.URL.Query().Get("days"))
			_ = json.NewEncoder(w).Encode(Loan{ID: "l1", Status: LoanStatusActive})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	loan, err := c.Checkout(context.Background(), "b1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "l1", loan.ID)

	_, err = c.Extend(context.Background(), "l1", 7)
	require.NoError(t, err)
}

func TestDo_TransportFailureIsNotAnAPIError(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second, nil)

	_, err := c.ListBooks(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.NotErrorAs(t, err, &apiErr)
}
