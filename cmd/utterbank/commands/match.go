package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/utterbank/utterbank/pkg/match"
)

var matchPlay bool

var matchCmd = &cobra.Command{
	Use:   "match <phrase>",
	Short: "Find the best-matching utterance for a phrase",
	Long: `Find the single best recording for a free-text phrase.

The cascade tries an exact text match first, then substring containment,
then word overlap, and falls back to a phonetic comparison of approximated
phone sequences. The stage that produced the winner is printed with the
score.

Examples:
  utterbank match "is miami the capital of florida"
  utterbank match --play "oh no"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openLibrary(cmd)
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		r, s, err := e.lib.Best(cmd.Context(), query)
		if err != nil {
			if errors.Is(err, match.ErrNoMatch) {
				return fmt.Errorf("the corpus is empty, nothing to match against")
			}
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), renderMatch(r, s))
		if matchPlay {
			return e.player.Play(cmd.Context(), s.ID)
		}
		return nil
	},
}

func init() {
	matchCmd.Flags().BoolVar(&matchPlay, "play", false, "play the winning recording")
	rootCmd.AddCommand(matchCmd)
}
