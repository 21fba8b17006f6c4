package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "List every utterance matching a query",
	Long: `List all utterances whose text contains the query, is contained by it,
or shares words with it, ranked by similarity. Unlike 'match' this never
falls back to phonetics and may return many results.

Examples:
  utterbank search "capital"
  utterbank search --limit 5 "the weather"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openLibrary(cmd)
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		hits := e.lib.Search(cmd.Context(), query)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Found %d matches:\n", len(hits))
		for _, s := range hits {
			fmt.Fprintln(out, sampleRow(s))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "cap the number of results (0 = show all)")
	rootCmd.AddCommand(searchCmd)
}
