package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/homedash/internal/config"
	"github.com/javiermolinar/homedash/internal/db"
	"github.com/javiermolinar/homedash/internal/event"
	"github.com/javiermolinar/homedash/internal/logging"
	"github.com/javiermolinar/homedash/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     event.Repository
	config   *config.Config
	root     *cobra.Command
	out      io.Writer
	logger   *zap.Logger
	closeLog func() error
	debug    bool // Enable debug logging
	logLevel string
}

// NewApp creates a new CLI application. A nil repo is opened lazily from
// the configured database path.
func NewApp(repo event.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, out: os.Stdout, logger: zap.NewNop()}

	a.root = &cobra.Command{
		Use:   "homedash",
		Short: "A terminal calendar for the home dashboard",
		Long: `homedash shows your calendars as month, week, day and agenda views.

Events are synced from Google Calendar, .ics files and JSON/YAML event
files into a local cache, and browsed offline from there.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setupLogging()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config, a.logger)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DefaultPath+")")
	a.root.PersistentFlags().StringVar(&a.logLevel, "log-level", "debug", "Debug log level (debug, info, warn, error)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.viewCmd("month", "Show a month grid"))
	a.root.AddCommand(a.viewCmd("week", "Show a week as a time grid"))
	a.root.AddCommand(a.viewCmd("day", "Show a day with overlapping events side by side"))
	a.root.AddCommand(a.agendaCmd())
	a.root.AddCommand(a.searchCmd())
	a.root.AddCommand(a.syncCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "homedash %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) setupLogging() error {
	if !a.debug {
		return nil
	}
	logger, closeLog, err := logging.New(logging.Options{Debug: true, Level: a.logLevel})
	if err != nil {
		return err
	}
	a.logger = logger
	a.closeLog = closeLog
	a.logger.Debug("debug logging enabled", zap.String("db_path", a.config.Storage.DBPath))
	return nil
}

// ensureRepo opens the event cache if it is not open yet.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if path == "" {
		return fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	a.repo = repo
	return nil
}

// SetArgs overrides the command line, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output, for tests.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
	a.root.SetOut(w)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository and flushes the debug log.
func (a *App) Close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
	}
	if a.closeLog != nil {
		if cerr := a.closeLog(); err == nil {
			err = cerr
		}
	}
	return err
}
