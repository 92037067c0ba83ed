// Command elib is a terminal client for the e-library service: book
// discovery and borrowing, loan tracking, the member roster, and local
// profile state shared with any other elib process on the machine.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"elibrary/cmd/elib/ui"
	"elibrary/internal/catalog"
	"elibrary/internal/client"
	"elibrary/internal/config"
	"elibrary/internal/logging"
	"elibrary/internal/session"
	"elibrary/internal/storage"
)

var (
	flagStateDir string
	flagAPIURL   string

	cfg      config.Config
	logger   *zap.Logger
	api      *client.Client
	sessions *session.Store
)

var rootCmd = &cobra.Command{
	Use:   "elib",
	Short: "Terminal client for the e-library service",
	Long: `elib browses the library catalog, manages loans and members, and keeps
your signed-in session and profile picture on this machine. Run without
arguments for the interactive interface; the subcommands cover scripted use.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagStateDir)
		if err != nil {
			return err
		}
		if flagAPIURL != "" {
			cfg.APIBaseURL = flagAPIURL
		}

		logger, err = logging.New(cfg.StateDir, cfg.LogLevel)
		if err != nil {
			// degraded to a no-op logger; the client still runs
			fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		}

		api = client.New(cfg.APIBaseURL, cfg.RequestTimeout, logger)
		kv := storage.New(cfg.StateDir, logger)
		sessions = session.NewStore(kv, logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

// runInteractive launches the full-screen interface. The storage watch runs
// for the program's lifetime so avatar changes made by other elib processes
// show up without a restart.
func runInteractive(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := sessions.StartWatch(ctx); err != nil {
		logger.Warn("cross-process state watch unavailable", zap.Error(err))
	}

	loader := catalog.NewLoader(api, nil, logger)
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))
	app := ui.NewApp(api, sessions, loader, logger, styles)
	defer app.Close()

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := os.Getenv("ELIB_PASSWORD")
		if password == "" {
			return errors.New("set ELIB_PASSWORD with your password")
		}

		user, err := api.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		if err := sessions.SaveSession(user.Session(), user.Token); err != nil {
			return err
		}
		if exp, ok := session.TokenExpiry(sessions.Token()); ok {
			fmt.Printf("Signed in as %s (session valid until %s)\n", user.Name, exp.Format(time.RFC1123))
			return nil
		}
		fmt.Printf("Signed in as %s\n", user.Name)
		return nil
	},
}

var flagPurge bool

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		policy := session.KeepAvatar
		if flagPurge {
			policy = session.ClearAll
		}
		if err := sessions.Clear(policy); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var (
	flagSearch   string
	flagCategory string
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List the catalog, filtered like the Books page",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := catalog.NewLoader(api, nil, logger)

		var (
			books []catalog.Book
			cats  []client.CategoryRecord
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			books = loader.Load(ctx)
			return nil
		})
		g.Go(func() error {
			// shelf counts are decoration here; a failure only hides them
			cats, _ = api.ListCategories(ctx)
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		category := flagCategory
		if category == "" {
			category = catalog.AllCategories
		}
		visible := catalog.Filter(books, flagSearch, category)
		if len(visible) == 0 {
			fmt.Println("No books found matching your search.")
			return nil
		}

		for _, b := range visible {
			marker := " "
			if b.Bestseller {
				marker = "*"
			}
			fmt.Printf("%s %-40s %-24s %s\n", marker, truncateCell(b.Title, 40), truncateCell(b.Author, 24), b.Category)
		}
		if len(cats) > 0 {
			var parts []string
			for _, c := range cats {
				parts = append(parts, fmt.Sprintf("%s (%d)", c.Name, c.BookCount))
			}
			fmt.Println("\nShelves: " + strings.Join(parts, ", "))
		}
		return nil
	},
}

var (
	flagActive  bool
	flagOverdue bool
)

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "List loan records",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			loans []client.Loan
			err   error
		)
		switch {
		case flagActive:
			loans, err = api.ActiveLoans(cmd.Context())
		case flagOverdue:
			loans, err = api.OverdueLoans(cmd.Context())
		default:
			loans, err = api.ListLoans(cmd.Context())
		}
		if err != nil {
			return err
		}

		for _, l := range loans {
			returned := l.ReturnDate
			if returned == "" {
				returned = "-"
			}
			fmt.Printf("%-36s %-20s due %-12s returned %-12s %s\n",
				truncateCell(l.BookTitle, 36), truncateCell(l.UserName, 20), l.DueDate, returned, l.Status)
		}
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the member roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := api.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		for _, u := range users {
			status := "inactive"
			if u.Active {
				status = "active"
			}
			fmt.Printf("%-24s %-32s loans:%-3d %s\n", truncateCell(u.Name, 24), truncateCell(u.Email, 32), u.ActiveLoans, status)
		}
		return nil
	},
}

var avatarCmd = &cobra.Command{
	Use:   "avatar [image-file]",
	Short: "Set the profile picture shown by every elib surface",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		if err := sessions.SetProfileImage(data); err != nil {
			return err
		}
		fmt.Println("Profile picture updated.")
		return nil
	},
}

func truncateCell(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagStateDir, "state-dir", "", "state directory (default ~/.elib)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "backend base URL")

	logoutCmd.Flags().BoolVar(&flagPurge, "purge", false, "also forget the stored profile picture")
	booksCmd.Flags().StringVar(&flagSearch, "search", "", "title or author contains")
	booksCmd.Flags().StringVar(&flagCategory, "category", "", "category name (default all)")
	loansCmd.Flags().BoolVar(&flagActive, "active", false, "only loans not yet returned")
	loansCmd.Flags().BoolVar(&flagOverdue, "overdue", false, "only loans past due")

	rootCmd.AddCommand(loginCmd, logoutCmd, booksCmd, loansCmd, usersCmd, avatarCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
