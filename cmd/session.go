package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/antopolskiy/taskboard/internal/app"
	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/output"
)

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Log in as the given email",
	Long: `Stores EMAIL as the current user. The user id is the part before "@".
A board with no task collection yet is seeded with sample tasks.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the task collection",
	Long: `Clears the current user and the whole task collection, including tasks
owned by other users. Prompts for confirmation in interactive mode.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user and task counts",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	logoutCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(args[0]) == "" {
		return clierr.New(clierr.InvalidInput, "email is required")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.state.Dispatch(app.Login{Email: args[0]})
	if err != nil {
		return err
	}
	u, err := s.currentUser()
	if err != nil {
		return err
	}

	seeded := false
	if res.SeedNeeded {
		seeded = seedBoard(cmd.Context(), s)
	}

	count := len(s.state.Visible())
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.SessionResult{
			Email:     u.Email,
			UserID:    u.UserID,
			TaskCount: count,
			Seeded:    seeded,
		})
	}
	output.Messagef(os.Stdout, "Logged in as %s (%d tasks)", u.Email, count)
	return nil
}

// seedBoard fetches the sample tasks. A failed fetch leaves the collection
// empty and is reported as a warning; the login itself stands.
func seedBoard(ctx context.Context, s *session) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	fetch, err := s.state.SeedFunc()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return false
	}
	tasks, fetchErr := fetch(ctx)
	if _, err := s.state.Dispatch(app.SeedLoaded{Tasks: tasks, Err: fetchErr}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load sample tasks: %v\n", err)
		return false
	}
	return true
}

func runLogout(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	u, err := s.currentUser()
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierr.New(clierr.InvalidInput,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(os.Stderr, "Log out %s and delete all tasks, including other users'? [y/N] ", u.Email)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	if _, err := s.state.Dispatch(app.Logout{}); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "logged_out",
			"email":  u.Email,
		})
	}
	output.Messagef(os.Stdout, "Logged out %s", u.Email)
	return nil
}

func runWhoami(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	u, err := s.currentUser()
	if err != nil {
		return err
	}
	visible := s.state.Visible()

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, output.SessionResult{
			Email:     u.Email,
			UserID:    u.UserID,
			TaskCount: len(visible),
		})
	case output.FormatCompact:
		output.SummaryCompact(os.Stdout, u.Email, board.CountByStatus(visible))
	default:
		output.SummaryTable(os.Stdout, u.Email, board.CountByStatus(visible))
	}
	return nil
}
