package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utterbank/utterbank/pkg/corpus"
)

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List the utterances of one category",
	Long: `List every utterance labelled with the given category, in corpus order.
Without an argument the known categories are listed instead.

Examples:
  utterbank list questions
  utterbank list`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		categories := e.lib.Categories(cmd.Context())
		if len(args) == 0 {
			fmt.Fprintf(out, "%d categories:\n", len(categories))
			for _, c := range categories {
				fmt.Fprintf(out, "  %s\n", c)
			}
			return nil
		}

		category := args[0]
		samples, err := e.lib.Category(cmd.Context(), category)
		if err != nil {
			if errors.Is(err, corpus.ErrUnknownCategory) {
				return withSuggestion(corpus.ErrUnknownCategory, category, categories)
			}
			return err
		}

		fmt.Fprintf(out, "%d samples in %q:\n", len(samples), category)
		for _, s := range samples {
			fmt.Fprintln(out, sampleRow(s))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
