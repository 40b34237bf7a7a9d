// taskboard-tui opens the interactive board directly.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/cmd"
)

func main() {
	var dir string
	root := &cobra.Command{
		Use:           "taskboard-tui",
		Short:         "Interactive terminal board",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.RunTUI(dir)
		},
	}
	root.Flags().StringVar(&dir, "dir", "", "path to the data directory")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
