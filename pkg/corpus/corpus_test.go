package corpus_test

import (
	"slices"
	"testing"

	"github.com/utterbank/utterbank/pkg/corpus"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Oh No", "oh no"},
		{"collapses whitespace", "oh \t  no\n", "oh no"},
		{"strips surrounding punctuation", `"oh no!"`, "oh no"},
		{"keeps interior punctuation", "don't stop", "don't stop"},
		{"strips punctuation separated by space", "oh no !", "oh no"},
		{"empty", "", ""},
		{"punctuation only", "?!...", ""},
		{"already normal", "is miami the capital of florida", "is miami the capital of florida"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := corpus.NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"splits and sorts", "the quick fox", []string{"fox", "quick", "the"}},
		{"deduplicates", "no no NO", []string{"no"}},
		{"trims punctuation per word", "wait, what?!", []string{"wait", "what"}},
		{"drops empty leftovers", "so ... what", []string{"so", "what"}},
		{"empty input", "   ", nil},
		{"punctuation only", "?? !!", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := corpus.Words(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Words(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
