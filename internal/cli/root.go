package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the activitylog command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "activitylog",
		Short: "Dashboard for a personal activity log",
		Long: `activitylog reads a two-week activity log (CSV or Google Sheets), groups
activities into categories and renders a dashboard of sleep, time spent
and moods.

Configuration comes from the environment; a .env file in the working
directory is loaded first when present.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			LoadEnvFile()
		},
	}
	root.AddCommand(newServeCommand())
	root.AddCommand(newSummaryCommand())
	return root
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
