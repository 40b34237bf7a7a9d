package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/config"
	"github.com/antopolskiy/taskboard/internal/store"
	"github.com/antopolskiy/taskboard/internal/tui"
	"github.com/antopolskiy/taskboard/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive board UI",
	Long: `Launches the interactive terminal board. Drag cards between columns with
the mouse, or grab one with space and move it with h/l. The board reloads
when another process changes the stored tasks.

Press ? for help.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// RunTUI launches the interactive TUI.
func RunTUI(dir string) error {
	if dir != "" {
		flagDir = dir
	}
	return runTUI(tuiCmd, nil)
}

func runTUI(_ *cobra.Command, _ []string) error {
	if _, err := loadConfig(); err != nil {
		if !isBoardNotFound(err) {
			return err
		}
		cfg, err := offerInitTUI()
		if err != nil {
			return err
		}
		flagDir = cfg.Dir()
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	model := tui.NewBoard(s.cfg, s.state, s.log)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if s.cfg.Store.Backend != store.BackendMemory {
		go startTUIWatcher(ctx, s, model, p)
	}

	_, err = p.Run()
	return err
}

func isBoardNotFound(err error) bool {
	if errors.Is(err, config.ErrNotFound) {
		return true
	}
	var cliErr *clierr.Error
	return errors.As(err, &cliErr) && cliErr.Code == clierr.BoardNotFound
}

func offerInitTUI() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	name := filepath.Base(cwd)
	dataDir := filepath.Join(cwd, config.DefaultDir)
	if flagDir != "" {
		dataDir = flagDir
	}

	fmt.Printf("No taskboard found. Create one in %s? [Y/n] ", dataDir)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))

	if answer != "" && answer != "y" && answer != "yes" {
		return nil, errors.New("no board found; run 'taskboard init' to create one")
	}

	cfg, err := config.Init(dataDir, name)
	if err != nil {
		return nil, fmt.Errorf("initializing board: %w", err)
	}

	fmt.Printf("Board %q created in %s\n", name, dataDir)
	return cfg, nil
}

// storeFiles are the data directory entries whose changes trigger a reload.
var storeFiles = []string{
	store.KeyUser + ".json",
	store.KeyTasks + ".json",
	store.SQLiteFileName,
}

func startTUIWatcher(ctx context.Context, s *session, model *tui.Board, p *tea.Program) {
	w, err := watcher.New(model.WatchPaths(), watcher.Names(storeFiles...), func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		// The board works without live refresh.
		s.log.Warn("watcher_unavailable", "error", err)
		return
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		p.Send(tui.WatchErrMsg{Err: err})
	})
}
