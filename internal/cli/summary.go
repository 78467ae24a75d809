package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"activitylog/internal/config"
	"activitylog/internal/core"
	"activitylog/internal/services"
)

func newSummaryCommand() *cobra.Command {
	var (
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard numbers to stdout",
		Long: `Run the same pipeline as the dashboard and print the headline hours,
time per category, daily sleep and the most frequent moods.

Examples:
  activitylog summary
  activitylog summary --file ./october.csv
  activitylog summary --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, func(c *config.Config) { applyFileFlag(c, file) })
			if err != nil {
				return err
			}

			svc := services.NewDashboardService(rt.source, rt.summary, 0, rt.logger)
			defer svc.Close()

			report, err := svc.Report(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return printSummary(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV activity log to read (forces the csv backend)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	return cmd
}

func printSummary(out io.Writer, report core.Report) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Total Sleeping Time\t%d hours\n", report.Headline.SleepHours.Whole())
	fmt.Fprintf(tw, "Positive Moods\t%d hours\n", report.Headline.PositiveHours.Whole())

	fmt.Fprintln(tw, "\nCATEGORY\tHOURS")
	for _, c := range report.Categories {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.Hours)
	}

	fmt.Fprintln(tw, "\nDAY\tSLEEP")
	for _, d := range report.DailySleep {
		fmt.Fprintf(tw, "%d\t%s\n", d.Day, d.Hours)
	}

	fmt.Fprintln(tw, "\nMOOD\tCOUNT")
	for _, m := range report.TopMoods {
		fmt.Fprintf(tw, "%s\t%d\n", m.Mood, m.Count)
	}
	return tw.Flush()
}
