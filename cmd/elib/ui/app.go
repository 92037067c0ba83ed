package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"elibrary/internal/catalog"
	"elibrary/internal/client"
	"elibrary/internal/session"
)

// App is the root model. It owns the page registry, the sidebar, the auth
// gate, and the bridge between the session store's subscription channel and
// the message loop.
type App struct {
	api      *client.Client
	sessions *session.Store
	loader   *catalog.Loader
	logger   *zap.Logger
	styles   Styles

	page     Page
	sidebar  SidebarModel
	books    BooksPageModel
	loans    LoansPageModel
	users    UsersPageModel
	login    LoginPageModel
	settings SettingsPageModel
	reading  ReadingPageModel

	// updates carries store notifications and loan actions from outside
	// the Elm loop into it.
	updates chan tea.Msg

	unsubscribe func()

	width  int
	height int
}

// NewApp wires the application together. The session store subscription is
// registered here and torn down when the program exits.
func NewApp(api *client.Client, sessions *session.Store, loader *catalog.Loader, logger *zap.Logger, styles Styles) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		api:      api,
		sessions: sessions,
		loader:   loader,
		logger:   logger,
		styles:   styles,
		sidebar:  NewSidebarModel(sessions, styles),
		books:    NewBooksPageModel(loader, styles),
		loans:    NewLoansPageModel(api, styles),
		users:    NewUsersPageModel(api, styles),
		login:    NewLoginPageModel(api, sessions, styles),
		settings: NewSettingsPageModel(sessions, styles),
		reading:  NewReadingPageModel(styles),
		updates:  make(chan tea.Msg, 16),
	}

	// Both notification channels (same-process broadcast and the storage
	// watch) funnel through this one subscription; the page models treat
	// every delivery as a refresh trigger and tolerate duplicates.
	app.unsubscribe = sessions.Subscribe(func(image string) {
		select {
		case app.updates <- profileImageMsg{image: image}:
		default:
			// the loop is saturated; the next signal re-syncs
		}
	})

	if sessions.Authenticated() {
		app.page = PageBooks
	} else {
		app.page = PageLogin
	}
	return app
}

// Close releases the store subscription.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// externalMsg wraps a message that arrived through the updates channel, so
// the listener is re-armed exactly once per delivery.
type externalMsg struct {
	inner tea.Msg
}

// listen forwards the next external update into the message loop.
func (a *App) listen() tea.Cmd {
	updates := a.updates
	return func() tea.Msg {
		return externalMsg{inner: <-updates}
	}
}

// Init starts the external-update listener and the initial page load.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.listen(), tea.SetWindowTitle("elib")}
	if a.page == PageBooks {
		cmds = append(cmds, a.books.Load())
	}
	return tea.Batch(cmds...)
}

// Update routes messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		content := max(20, msg.Width-24)
		a.books.SetSize(content, msg.Height)
		a.loans.SetSize(content, msg.Height)
		a.users.SetSize(content, msg.Height)
		a.login.SetSize(msg.Width, msg.Height)
		a.settings.SetSize(content, msg.Height)
		a.reading.SetSize(content, msg.Height)
		a.sidebar.SetHeight(msg.Height)
		return a, nil

	case externalMsg:
		model, cmd := a.Update(msg.inner)
		return model, tea.Batch(cmd, a.listen())

	case profileImageMsg:
		// Same value may arrive more than once; applying it is
		// idempotent by construction.
		a.sidebar.SetAvatar(msg.image)
		a.settings.SetAvatar(msg.image)
		return a, nil

	case sessionChangedMsg:
		a.sidebar.Refresh()
		a.settings.Refresh()
		if !a.sessions.Authenticated() {
			a.page = PageLogin
			a.login = NewLoginPageModel(a.api, a.sessions, a.styles)
			return a, nil
		}
		return a, a.navigate(PageBooks)

	case navigateMsg:
		return a, a.navigate(msg.page)

	case loginResultMsg, signupResultMsg, resetResultMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case booksLoadedMsg, filterTickMsg:
		var cmd tea.Cmd
		a.books, cmd = a.books.Update(msg)
		return a, cmd

	case loansLoadedMsg:
		var cmd tea.Cmd
		a.loans, cmd = a.loans.Update(msg)
		return a, cmd

	case usersLoadedMsg:
		var cmd tea.Cmd
		a.users, cmd = a.users.Update(msg)
		return a, cmd

	case loanActionMsg:
		var cmd tea.Cmd
		a.loans, cmd = a.loans.Update(msg)
		return a, cmd

	case avatarResultMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// handleKey deals with global chrome keys, then forwards to the active
// page.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		a.Close()
		return a, tea.Quit
	}

	// Global navigation is disabled while a text field is capturing input.
	typing := a.page == PageLogin || a.page == PageSettings ||
		(a.page == PageBooks && a.books.Searching())
	if !typing {
		switch key {
		case "q":
			a.Close()
			return a, tea.Quit
		case "1":
			return a, a.navigate(PageBooks)
		case "2":
			return a, a.navigate(PageLoans)
		case "3":
			return a, a.navigate(PageUsers)
		case "4":
			return a, a.navigate(PageReading)
		case "5":
			return a, a.navigate(PageSettings)
		}
	}

	switch a.page {
	case PageLogin:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case PageBooks:
		// Reader and borrow act on the page's current selection, but
		// need app-level wiring, so they are intercepted here.
		if key == "r" && a.books.Selected() != nil {
			a.reading.Open(*a.books.Selected())
			return a, a.navigate(PageReading)
		}
		if key == "b" && !a.books.Searching() {
			if book := a.books.CurrentBook(); book != nil {
				return a, a.borrow(*book)
			}
		}
		var cmd tea.Cmd
		a.books, cmd = a.books.Update(msg)
		return a, cmd

	case PageLoans:
		var cmd tea.Cmd
		a.loans, cmd = a.loans.Update(msg)
		return a, cmd

	case PageUsers:
		var cmd tea.Cmd
		a.users, cmd = a.users.Update(msg)
		return a, cmd

	case PageReading:
		var cmd tea.Cmd
		a.reading, cmd = a.reading.Update(msg)
		return a, cmd

	case PageSettings:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.Update(msg)
		return a, cmd
	}

	return a, nil
}

// navigate enforces the auth gate and runs a page's mount-time load.
func (a *App) navigate(page Page) tea.Cmd {
	if page != PageLogin && !a.sessions.Authenticated() {
		a.page = PageLogin
		return nil
	}

	a.page = page
	a.sidebar.SetActive(page)
	switch page {
	case PageBooks:
		return a.books.Load()
	case PageLoans:
		return a.loans.Load()
	case PageUsers:
		return a.users.Load()
	case PageSettings:
		a.settings.Refresh()
	}
	return nil
}

// borrow checks the current book out to the signed-in member.
func (a *App) borrow(book catalog.Book) tea.Cmd {
	sess := a.sessions.Load()
	if sess.Anonymous() {
		return func() tea.Msg { return sessionChangedMsg{} }
	}
	api := a.api
	updates := a.updates
	return func() tea.Msg {
		_, err := api.Checkout(context.Background(), book.ID, sess.ID)
		if err != nil {
			a.logger.Warn("checkout failed", zap.String("book", book.ID), zap.Error(err))
		}
		// surface the outcome on the loans page next time it loads
		select {
		case updates <- loanActionMsg{note: fmt.Sprintf("borrowed %q", book.Title), err: err}:
		default:
		}
		return nil
	}
}

// View renders the chrome and the active page.
func (a *App) View() string {
	if a.page == PageLogin {
		return lipgloss.Place(max(40, a.width), max(10, a.height),
			lipgloss.Center, lipgloss.Center, a.login.View())
	}

	var page string
	switch a.page {
	case PageBooks:
		page = a.books.View()
	case PageLoans:
		page = a.loans.View()
	case PageUsers:
		page = a.users.View()
	case PageReading:
		page = a.reading.View()
	case PageSettings:
		page = a.settings.View()
	}

	body := lipgloss.NewStyle().Padding(0, 2).Render(page)
	return lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar.View(), body)
}
