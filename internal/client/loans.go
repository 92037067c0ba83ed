package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Loan statuses as the backend reports them.
const (
	LoanStatusActive   = "ACTIVE"
	LoanStatusReturned = "RETURNED"
	LoanStatusOverdue  = "OVERDUE"
)

// Loan is a borrow record, denormalized with the book title and member name
// for display.
type Loan struct {
	ID         string `json:"id"`
	BookID     string `json:"bookId"`
	BookTitle  string `json:"bookTitle"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	LoanDate   string `json:"loanDate"`
	DueDate    string `json:"dueDate"`
	ReturnDate string `json:"returnDate"`
	Status     string `json:"status"`
}

// ListLoans fetches every loan record.
func (c *Client) ListLoans(ctx context.Context) ([]Loan, error) {
	var loans []Loan
	if err := c.do(ctx, http.MethodGet, "/loans", nil, nil, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// Loan fetches a single record.
func (c *Client) Loan(ctx context.Context, id string) (Loan, error) {
	var loan Loan
	if err := c.do(ctx, http.MethodGet, "/loans/"+url.PathEscape(id), nil, nil, &loan); err != nil {
		return Loan{}, err
	}
	return loan, nil
}

// LoansByUser fetches one member's loans.
func (c *Client) LoansByUser(ctx context.Context, userID string) ([]Loan, error) {
	var loans []Loan
	if err := c.do(ctx, http.MethodGet, "/loans/user/"+url.PathEscape(userID), nil, nil, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// ActiveLoans fetches loans not yet returned.
func (c *Client) ActiveLoans(ctx context.Context) ([]Loan, error) {
	var loans []Loan
	if err := c.do(ctx, http.MethodGet, "/loans/active", nil, nil, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// OverdueLoans fetches loans past their due date.
func (c *Client) OverdueLoans(ctx context.Context) ([]Loan, error) {
	var loans []Loan
	if err := c.do(ctx, http.MethodGet, "/loans/overdue", nil, nil, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// Checkout borrows a book for a member.
func (c *Client) Checkout(ctx context.Context, bookID, userID string) (Loan, error) {
	q := url.Values{"bookId": {bookID}, "userId": {userID}}
	var loan Loan
	if err := c.do(ctx, http.MethodPost, "/loans/checkout", q, nil, &loan); err != nil {
		return Loan{}, err
	}
	return loan, nil
}

// Return closes out a loan.
func (c *Client) Return(ctx context.Context, id string) (Loan, error) {
	var loan Loan
	if err := c.do(ctx, http.MethodPost, "/loans/"+url.PathEscape(id)+"/return", nil, nil, &loan); err != nil {
		return Loan{}, err
	}
	return loan, nil
}

// Extend pushes a loan's due date out by the given number of days.
func (c *Client) Extend(ctx context.Context, id string, days int) (Loan, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	var loan Loan
	if err := c.do(ctx, http.MethodPost, "/loans/"+url.PathEscape(id)+"/extend", q, nil, &loan); err != nil {
		return Loan{}, err
	}
	return loan, nil
}
