package ui

import (
	"elibrary/internal/catalog"
	"elibrary/internal/client"
)

// Page identifies a top-level surface.
type Page int

const (
	PageLogin Page = iota
	PageBooks
	PageLoans
	PageUsers
	PageSettings
	PageReading
)

// profileImageMsg is delivered whenever the session store broadcasts a new
// avatar, whether the write happened in this process or another one.
type profileImageMsg struct {
	image string
}

// sessionChangedMsg is emitted after sign-in or sign-out so surfaces
// re-derive their identity copies from the store.
type sessionChangedMsg struct{}

// navigateMsg switches the active page.
type navigateMsg struct {
	page Page
}

// booksLoadedMsg carries a resolved base collection. Gen ties the result to
// the load that requested it; results for torn-down or superseded loads are
// discarded instead of applied.
type booksLoadedMsg struct {
	gen   int
	books []catalog.Book
}

type loansLoadedMsg struct {
	gen   int
	tab   loanTab
	loans []client.Loan
	err   error
}

type usersLoadedMsg struct {
	gen   int
	users []client.User
	err   error
}

type loginResultMsg struct {
	user client.User
	err  error
}

type signupResultMsg struct {
	err error
}

type resetResultMsg struct {
	err error
}

// loanActionMsg reports the outcome of a checkout, return or extension.
type loanActionMsg struct {
	note string
	err  error
}

type avatarResultMsg struct {
	err error
}
