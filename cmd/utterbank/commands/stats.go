package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsReport bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the corpus",
	Long: `Print sample counts, the category list, and duration totals for the
loaded corpus. With --report a per-category breakdown and the first few
samples are included.

Examples:
  utterbank stats
  utterbank stats --report`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openLibrary(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		st := e.lib.Stats(ctx)
		categories := e.lib.Categories(ctx)

		out := cmd.OutOrStdout()
		if statsReport {
			fmt.Fprint(out, renderReport(st, categories, e.lib.Samples(ctx)))
			return nil
		}
		fmt.Fprint(out, renderStats(st, categories))
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsReport, "report", false, "print the full corpus report")
	rootCmd.AddCommand(statsCmd)
}
