package commands

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

// suggestionThreshold is the minimum Jaro-Winkler similarity an id or
// category needs before it is offered as a "did you mean" hint.
const suggestionThreshold = 0.70

// closest returns the candidate most similar to input by Jaro-Winkler
// similarity, case-insensitive. The second return is false when no candidate
// clears [suggestionThreshold].
func closest(input string, candidates []string) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(input))
	if lowered == "" {
		return "", false
	}

	var best string
	bestScore := 0.0
	for _, cand := range candidates {
		score := matchr.JaroWinkler(lowered, strings.ToLower(cand), false)
		if score > bestScore {
			best, bestScore = cand, score
		}
	}
	if bestScore < suggestionThreshold {
		return "", false
	}
	return best, true
}

// withSuggestion decorates err with a "did you mean" hint when one of the
// candidates is close enough to input. errors.Is still sees the original err.
func withSuggestion(err error, input string, candidates []string) error {
	if hint, ok := closest(input, candidates); ok {
		return fmt.Errorf("%w: %q — did you mean %q?", err, input, hint)
	}
	return fmt.Errorf("%w: %q", err, input)
}
