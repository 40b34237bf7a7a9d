package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/date"
	"github.com/antopolskiy/taskboard/internal/output"
	"github.com/antopolskiy/taskboard/internal/task"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show activity log",
	Long:  `Displays the activity log of board mutations (login, seed, create, edit, move, delete, logout).`,
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func init() {
	logCmd.Flags().String("since", "", "show entries after this date (YYYY-MM-DD)")
	logCmd.Flags().Int("limit", 0, "maximum number of entries to show (most recent)")
	logCmd.Flags().String("action", "", "filter by action type")
	logCmd.Flags().String("task", "", "filter by task ID")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := board.LogFilterOptions{}

	if v, _ := cmd.Flags().GetString("since"); v != "" {
		d, parseErr := date.Parse(v)
		if parseErr != nil {
			return task.ValidateDate("since", v, parseErr)
		}
		opts.Since = d.Time
	}
	if v, _ := cmd.Flags().GetInt("limit"); v > 0 {
		opts.Limit = v
	}
	opts.Action, _ = cmd.Flags().GetString("action")
	opts.TaskID, _ = cmd.Flags().GetString("task")

	entries, err := board.ReadLog(cfg.Dir(), opts)
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		if entries == nil {
			entries = []board.LogEntry{}
		}
		return output.JSON(os.Stdout, entries)
	case output.FormatCompact:
		output.ActivityLogCompact(os.Stdout, entries)
	default:
		output.ActivityLogTable(os.Stdout, entries)
	}
	return nil
}
