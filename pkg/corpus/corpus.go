// Package corpus models the utterance corpus and its read-only query index.
//
// A [Sample] is one pre-recorded utterance with its text, phoneme
// transcription, and audio metadata. [NewIndex] turns an ordered sample
// slice into an [Index]: an immutable snapshot carrying the lookup
// structures the matching layer needs (id map, per-category lists, an
// inverted word index, and normalized text/word/phone caches).
//
// An Index never changes after construction and is safe for any number of
// concurrent readers without locking. Reflecting corpus changes means
// building a new Index and swapping the reference — never mutating in
// place. Position arguments on the accessors refer to corpus insertion
// order, which is also the tie-break order used by matching.
package corpus

import (
	"errors"
	"slices"
	"strings"
	"unicode"
)

// ErrUnknownSample is returned by lookups for an id absent from the index.
var ErrUnknownSample = errors.New("corpus: unknown sample id")

// ErrUnknownCategory is returned when listing a category absent from the corpus.
var ErrUnknownCategory = errors.New("corpus: unknown category")

// Sample is one utterance record. Samples are created at load time and never
// mutated afterwards.
type Sample struct {
	// ID is the stable unique identifier ("utterance_name" in the corpus file).
	ID string

	// Text is the spoken phrase ("words").
	Text string

	// Transcription is the raw phoneme string including boundary, stress, and
	// punctuation markers.
	Transcription string

	// PhoneSequence is the phoneme string with only phones and word
	// boundaries, no stress or punctuation markers.
	PhoneSequence string

	// Category is the corpus-supplied label ("script_title"). The label set
	// is open.
	Category string

	// DurationSeconds is the estimated spoken duration. Positive for every
	// sample admitted by the loader.
	DurationSeconds float64

	// Locale, SentenceIdx, and ParagraphIdx are passthrough metadata not used
	// by matching.
	Locale       string
	SentenceIdx  int
	ParagraphIdx int
}

// Stats summarises an [Index].
type Stats struct {
	// SampleCount is the number of indexed samples.
	SampleCount int

	// CategoryCounts maps each category to its sample count.
	CategoryCounts map[string]int

	// AverageDuration is the mean sample duration in seconds; 0 for an empty
	// index.
	AverageDuration float64

	// TotalDuration is the summed sample duration in seconds.
	TotalDuration float64
}

// NormalizeText canonicalises free text for comparison: lowercase, internal
// whitespace collapsed to single spaces, and punctuation stripped from the
// surrounding edges of the whole string. Interior punctuation survives
// ("don't" keeps its apostrophe).
func NormalizeText(s string) string {
	lowered := strings.ToLower(s)
	collapsed := strings.Join(strings.Fields(lowered), " ")
	return strings.TrimSpace(strings.TrimFunc(collapsed, unicode.IsPunct))
}

// Words reduces free text to its set of normalized words: lowercased,
// whitespace-split, punctuation trimmed per word, empty leftovers dropped.
// The result is sorted and duplicate-free so callers can intersect two word
// sets with a linear merge.
func Words(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, unicode.IsPunct)
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return nil
	}
	slices.Sort(words)
	return slices.Compact(words)
}
