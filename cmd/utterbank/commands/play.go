package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utterbank/utterbank/pkg/corpus"
)

var playCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Play an utterance's recording",
	Long: `Resolve the audio asset for one utterance id and play it through ffplay.
CAF recordings are converted with ffmpeg first.

Example:
  utterbank play exclamations_0001`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openLibrary(cmd)
		if err != nil {
			return err
		}

		id := args[0]
		s, err := e.lib.Sample(cmd.Context(), id)
		if err != nil {
			if errors.Is(err, corpus.ErrUnknownSample) {
				return withSuggestion(corpus.ErrUnknownSample, id, sampleIDs(cmd.Context(), e))
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Playing: %s\n", s.Text)
		fmt.Fprintf(out, "Phonemes: %s\n", s.PhoneSequence)
		fmt.Fprintf(out, "Duration: %.2fs\n", s.DurationSeconds)
		return e.player.Play(cmd.Context(), id)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
