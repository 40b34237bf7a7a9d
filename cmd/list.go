package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/output"
	"github.com/antopolskiy/taskboard/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your tasks",
	Long: `Lists the current user's tasks through the same filter and sort
pipeline as the board toolbar.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("search", "", "case-insensitive title substring")
	listCmd.Flags().String("tag", "", "case-insensitive tag substring")
	listCmd.Flags().Bool("sort-due", false, "sort by due date, earliest first")
	listCmd.Flags().String("status", "", "only show one status (todo, inprogress, done)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	opts, err := listOptions(cmd)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.currentUser(); err != nil {
		return err
	}
	s.state.SetView(opts)
	tasks := s.state.Visible()

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.TaskTable(os.Stdout, tasks)
	}
	return nil
}

func listOptions(cmd *cobra.Command) (board.ViewOptions, error) {
	search, _ := cmd.Flags().GetString("search")
	tag, _ := cmd.Flags().GetString("tag")
	sortDue, _ := cmd.Flags().GetBool("sort-due")
	status, _ := cmd.Flags().GetString("status")

	if status != "" {
		if err := task.ValidateStatus(status); err != nil {
			return board.ViewOptions{}, err
		}
	}
	return board.ViewOptions{
		Search:    search,
		Tag:       tag,
		SortByDue: sortDue,
		Status:    status,
	}, nil
}
