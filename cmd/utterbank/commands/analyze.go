package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utterbank/utterbank/pkg/corpus"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <id>",
	Short: "Break an utterance's transcription into words and stress marks",
	Long: `Tokenize the phoneme transcription of one utterance and report its word
segments, stress placement, and most frequent phones.

Example:
  utterbank analyze questions_0001`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openLibrary(cmd)
		if err != nil {
			return err
		}

		id := args[0]
		report, s, err := e.lib.Analyze(cmd.Context(), id)
		if err != nil {
			if errors.Is(err, corpus.ErrUnknownSample) {
				return withSuggestion(corpus.ErrUnknownSample, id, sampleIDs(cmd.Context(), e))
			}
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), renderAnalysis(s, report))
		return nil
	},
}

// sampleIDs collects every indexed utterance id, in corpus order, for
// suggestion candidates.
func sampleIDs(ctx context.Context, e *env) []string {
	samples := e.lib.Samples(ctx)
	ids := make([]string, len(samples))
	for i, s := range samples {
		ids[i] = s.ID
	}
	return ids
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
