package cmd

import (
	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/app"
	"github.com/antopolskiy/taskboard/internal/clierr"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a task",
	Long: `Modifies fields of one of your tasks. Only specified fields are changed,
but the whole task is revalidated, so an overdue task needs a new --due.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("description", "", "new description")
	editCmd.Flags().String("due", "", "new due date (YYYY-MM-DD, today or later)")
	editCmd.Flags().String("status", "", "new status (todo, inprogress, done)")
	editCmd.Flags().String("tags", "", `new comma-separated tags ("" clears them)`)
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	changed := false
	for _, f := range formFlags {
		changed = changed || cmd.Flags().Changed(f.flag)
	}
	if !changed {
		return clierr.New(clierr.InvalidInput,
			"no changes specified (use --title, --description, --due, --status or --tags)")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.state.Dispatch(app.OpenEdit{ID: args[0]}); err != nil {
		return err
	}
	if err := fillForm(cmd, s.state); err != nil {
		return err
	}
	res, err := s.state.Dispatch(app.CommitTask{})
	if err != nil {
		return err
	}

	return printTaskResult("Updated", res.Task)
}
