// Package cmd implements the taskboard CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/app"
	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/config"
	"github.com/antopolskiy/taskboard/internal/logging"
	"github.com/antopolskiy/taskboard/internal/output"
	"github.com/antopolskiy/taskboard/internal/seed"
	"github.com/antopolskiy/taskboard/internal/store"
	"github.com/antopolskiy/taskboard/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
)

// Replaceable in tests.
var (
	nowFn   = time.Now
	newIDFn func() string
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "A personal task board with a terminal UI",
	Long: `taskboard keeps a small per-user task board in a local data directory.
Tasks move between todo, inprogress and done, either from the interactive
board (drag with the mouse or grab with the keyboard) or from the CLI.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to the data directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError: exit with its code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	cliErr := toCLIError(err)
	if outputFormat() == output.FormatJSON {
		output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
		os.Exit(cliErr.ExitCode())
	}

	fmt.Fprintln(os.Stderr, "Error:", cliErr.Message)
	os.Exit(cliErr.ExitCode())
}

// toCLIError maps any command error onto a coded CLI error.
func toCLIError(err error) *clierr.Error {
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		return cliErr
	}
	var verrs task.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.ToCLIError()
	}
	switch {
	case errors.Is(err, app.ErrNotLoggedIn):
		return clierr.New(clierr.NotLoggedIn, "not logged in (run 'taskboard login EMAIL')")
	case errors.Is(err, app.ErrSeedUnavailable), errors.Is(err, seed.ErrBadResponse):
		return clierr.New(clierr.SeedFailed, err.Error())
	case errors.Is(err, config.ErrNotFound):
		return clierr.New(clierr.BoardNotFound, "no taskboard found (run 'taskboard init' to create one)")
	case errors.Is(err, config.ErrInvalid):
		return clierr.New(clierr.InvalidInput, err.Error())
	case errors.Is(err, store.ErrCorrupt), errors.Is(err, store.ErrUnknownBackend):
		return clierr.New(clierr.StoreError, err.Error())
	}
	return clierr.New(clierr.InternalError, err.Error())
}

// loadConfig finds and loads the board config with environment overrides.
func loadConfig() (*config.Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return config.Load(dir)
}

// configDir resolves the data directory: --dir wins over TASKBOARD_DIR,
// which wins over searching upward from the working directory.
func configDir() (string, error) {
	if err := config.LoadDotEnv(config.EnvFileName); err != nil {
		return "", err
	}

	if flagDir != "" {
		return flagDir, nil
	}
	if dir := os.Getenv(config.EnvDir); dir != "" {
		return dir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return config.FindDir(cwd)
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// session is an opened board: config, restored state and the resources
// behind them.
type session struct {
	cfg   *config.Config
	state *app.State
	log   *slog.Logger

	closers []io.Closer
}

// openSession loads the config, opens the diagnostic log and the store,
// and restores the persisted user and tasks.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, logFile, err := logging.Open(cfg.LogPath(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Store.Backend, cfg.Dir())
	if err != nil {
		_ = logFile.Close()
		return nil, clierr.Newf(clierr.StoreError, "opening %s store: %v", cfg.Store.Backend, err)
	}

	state := app.New(app.Options{
		Store:           st,
		Seeder:          seed.NewLoader(cfg.Seed.URL, cfg.Seed.Count, cfg.SeedTimeout()),
		Logger:          logger,
		Now:             nowFn,
		NewID:           newIDFn,
		ActivityDir:     cfg.Dir(),
		NotificationTTL: cfg.NotificationDuration(),
	})
	s := &session{cfg: cfg, state: state, log: logger, closers: []io.Closer{st, logFile}}
	if err := state.Restore(); err != nil {
		s.Close()
		return nil, err
	}
	logger.Debug("session_opened", "dir", cfg.Dir(), "backend", cfg.Store.Backend)
	return s, nil
}

// Close releases the store and the log file.
func (s *session) Close() {
	for _, c := range s.closers {
		_ = c.Close()
	}
}

// currentUser returns the logged-in user or ErrNotLoggedIn.
func (s *session) currentUser() (*app.User, error) {
	u := s.state.User()
	if u == nil {
		return nil, app.ErrNotLoggedIn
	}
	return u, nil
}

// ownTask returns the current user's task with the given id. Other users'
// tasks are reported as not found.
func (s *session) ownTask(id string) (*task.Task, error) {
	u, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	t, err := s.state.Task(id)
	if err != nil || t.UserID != u.UserID {
		return nil, task.NotFoundError(id)
	}
	return t, nil
}
