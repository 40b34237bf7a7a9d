package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/app"
	"github.com/antopolskiy/taskboard/internal/output"
	"github.com/antopolskiy/taskboard/internal/task"
)

var createCmd = &cobra.Command{
	Use:     "create TITLE",
	Aliases: []string{"add"},
	Short:   "Create a new task",
	Long: `Creates a task owned by the current user. The title and due date are
validated the same way as in the board's task dialog.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().String("due", "", "due date (YYYY-MM-DD, today or later)")
	createCmd.Flags().String("description", "", "task description")
	createCmd.Flags().String("status", task.StatusTodo, "task status (todo, inprogress, done)")
	createCmd.Flags().String("tags", "", `comma-separated tags, e.g. "home, errands"`)
	rootCmd.AddCommand(createCmd)
}

// formFlag binds a command flag to a task form field.
type formFlag struct {
	flag  string
	field string
}

var formFlags = []formFlag{
	{"title", task.FieldTitle},
	{"description", task.FieldDescription},
	{"due", task.FieldDueDate},
	{"status", task.FieldStatus},
	{"tags", task.FieldTags},
}

// fillForm copies every flag the user set onto the open form.
func fillForm(cmd *cobra.Command, state *app.State) error {
	for _, f := range formFlags {
		if cmd.Flags().Lookup(f.flag) == nil || !cmd.Flags().Changed(f.flag) {
			continue
		}
		v, _ := cmd.Flags().GetString(f.flag)
		if _, err := state.Dispatch(app.SetField{Field: f.field, Value: v}); err != nil {
			return err
		}
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.state.Dispatch(app.OpenCreate{}); err != nil {
		return err
	}
	if _, err := s.state.Dispatch(app.SetField{Field: task.FieldTitle, Value: args[0]}); err != nil {
		return err
	}
	if err := fillForm(cmd, s.state); err != nil {
		return err
	}
	res, err := s.state.Dispatch(app.CommitTask{})
	if err != nil {
		return err
	}

	return printTaskResult("Created", res.Task)
}

func printTaskResult(verb string, t *task.Task) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, t)
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, t)
	default:
		output.Messagef(os.Stdout, "%s task %s: %s", verb, t.ID, t.Title)
	}
	return nil
}
