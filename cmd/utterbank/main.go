// Package main is the entry point for the utterbank CLI.
//
// Usage:
//
//	utterbank [flags] <command> [args]
//
// Commands:
//
//	match    - Find the best-matching utterance for a phrase
//	search   - List every utterance matching a query
//	list     - List the utterances of one category
//	analyze  - Break an utterance's transcription into words and stress marks
//	stats    - Summarise the corpus
//	play     - Play an utterance's recording
//	repl     - Interactive command loop
//	version  - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/utterbank/utterbank/cmd/utterbank/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
