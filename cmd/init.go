package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/config"
	"github.com/antopolskiy/taskboard/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new board",
	Long: `Creates the data directory with a default config.yml. The directory is
--dir, TASKBOARD_DIR, or .taskboard in the working directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "board name (default: working directory name)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(config.EnvFileName); err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	dir := flagDir
	if dir == "" {
		dir = os.Getenv(config.EnvDir)
	}
	if dir == "" {
		dir = filepath.Join(cwd, config.DefaultDir)
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = filepath.Base(cwd)
	}

	cfg, err := config.Init(dir, name)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "initialized",
			"name":   cfg.Board.Name,
			"dir":    cfg.Dir(),
		})
	}
	output.Messagef(os.Stdout, "Initialized board %q in %s", cfg.Board.Name, cfg.Dir())
	return nil
}
