package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/app"
	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/output"
	"github.com/antopolskiy/taskboard/internal/task"
)

var moveCmd = &cobra.Command{
	Use:   "move ID [STATUS]",
	Short: "Move a task to a different status",
	Long: `Moves a task the way dropping it on a board column does. Provide the
new status directly, or use --next/--prev to step along todo, inprogress,
done. Moving a task to its own status changes nothing.`,
	Args: cobra.RangeArgs(1, 2), //nolint:mnd // 1 or 2 positional args
	RunE: runMove,
}

func init() {
	moveCmd.Flags().Bool("next", false, "move to next status")
	moveCmd.Flags().Bool("prev", false, "move to previous status")
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.ownTask(args[0])
	if err != nil {
		return err
	}
	target, err := resolveTarget(cmd, args, t.Status)
	if err != nil {
		return err
	}

	if _, err := s.state.Dispatch(app.BeginDrag{ID: t.ID}); err != nil {
		return err
	}
	res, err := s.state.Dispatch(app.DropOn{Target: target})
	if err != nil {
		return err
	}

	result := output.MoveResult{ID: t.ID, From: t.Status, To: target, Unchanged: true}
	if res.Drop != nil && res.Drop.Moved {
		result.Unchanged = false
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, result)
	}
	if result.Unchanged {
		output.Messagef(os.Stdout, "Task %s is already %s", t.ID, target)
		return nil
	}
	output.Messagef(os.Stdout, "Moved task %s: %s -> %s", t.ID, result.From, result.To)
	return nil
}

// resolveTarget picks the destination status from the positional argument
// or from --next/--prev relative to current.
func resolveTarget(cmd *cobra.Command, args []string, current string) (string, error) {
	next, _ := cmd.Flags().GetBool("next")
	prev, _ := cmd.Flags().GetBool("prev")

	switch {
	case len(args) == 2 && (next || prev): //nolint:mnd // ID and STATUS
		return "", clierr.New(clierr.InvalidInput, "provide a status or --next/--prev, not both")
	case next && prev:
		return "", clierr.New(clierr.InvalidInput, "cannot use --next and --prev together")
	case len(args) == 2: //nolint:mnd // ID and STATUS
		if err := task.ValidateStatus(args[1]); err != nil {
			return "", err
		}
		return args[1], nil
	case next || prev:
		step := 1
		if prev {
			step = -1
		}
		idx := task.StatusIndex(current) + step
		if idx < 0 || idx >= len(task.Statuses) {
			return "", clierr.Newf(clierr.InvalidStatus, "task is already %s; no status in that direction", current).
				WithDetails(map[string]any{"status": current})
		}
		return task.Statuses[idx], nil
	default:
		return "", clierr.New(clierr.InvalidInput, "missing target status (or use --next/--prev)")
	}
}
