// Package phoneme parses the marker-annotated phonetic notation used by the
// utterance corpus.
//
// A transcription is a whitespace-separated string of units. Each unit is
// either a phone (one phonetic sound, case-sensitive: `N` and `n` are
// distinct) or one of a small set of structural markers:
//
//	~    end of utterance
//	#    word boundary
//	.    sentence boundary
//	,    pause
//	! ?  punctuation carried over from the source text
//	145  numeric stress code on the adjacent phone (145 = primary,
//	     146 = secondary; other values are accepted as-is)
//
// [Tokenize] classifies every unit into a typed [Token] without interpreting
// the phone alphabet itself — the alphabet is open-ended and varies between
// corpus releases, so anything that is not a recognised marker is a phone.
// [Analyze] consumes a token sequence and reports word segmentation, stress
// placement, and phone frequencies for a single utterance.
package phoneme

import (
	"errors"
	"iter"
	"strconv"
	"strings"
)

// ErrEmptyTranscription is returned by [Tokenize] when the input contains no
// units at all. Every non-empty input tokenizes successfully because the
// phone alphabet is open.
var ErrEmptyTranscription = errors.New("phoneme: empty transcription")

// Kind classifies a single transcription unit.
type Kind int

const (
	// KindPhone is a single phonetic sound unit. Values are case-sensitive.
	KindPhone Kind = iota

	// KindWordBoundary separates two word segments (`#`).
	KindWordBoundary

	// KindStressMarker is a numeric prosody code attached to the phone that
	// follows it within the same word segment.
	KindStressMarker

	// KindSentenceBoundary marks the end of a sentence (`.`).
	KindSentenceBoundary

	// KindPause marks a spoken pause (`,`).
	KindPause

	// KindPunctuation carries `!` or `?` over from the source text.
	KindPunctuation

	// KindUtteranceEnd terminates the whole utterance (`~`).
	KindUtteranceEnd
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPhone:
		return "phone"
	case KindWordBoundary:
		return "word-boundary"
	case KindStressMarker:
		return "stress-marker"
	case KindSentenceBoundary:
		return "sentence-boundary"
	case KindPause:
		return "pause"
	case KindPunctuation:
		return "punctuation"
	case KindUtteranceEnd:
		return "utterance-end"
	default:
		return "unknown"
	}
}

// Token is one classified transcription unit.
type Token struct {
	// Kind classifies the unit.
	Kind Kind

	// Value is the raw unit text, verbatim.
	Value string

	// Level is the parsed stress code. Only meaningful when Kind is
	// [KindStressMarker]; zero otherwise.
	Level int
}

// Tokenize splits transcription on whitespace and classifies each unit.
//
// The returned sequence is lazy, preserves input order, and may be ranged
// over multiple times; the input string is never modified. Classification
// precedence per unit:
//
//  1. `~` → [KindUtteranceEnd]
//  2. `#` → [KindWordBoundary]
//  3. `.` → [KindSentenceBoundary]
//  4. `,` → [KindPause]
//  5. `!` or `?` → [KindPunctuation]
//  6. all decimal digits → [KindStressMarker] with Level set
//  7. anything else → [KindPhone]
//
// Returns [ErrEmptyTranscription] when the input is empty or whitespace-only.
func Tokenize(transcription string) (iter.Seq[Token], error) {
	if strings.TrimSpace(transcription) == "" {
		return nil, ErrEmptyTranscription
	}
	seq := func(yield func(Token) bool) {
		for unit := range strings.FieldsSeq(transcription) {
			if !yield(classify(unit)) {
				return
			}
		}
	}
	return seq, nil
}

// Tokens is a convenience wrapper around [Tokenize] that collects the whole
// sequence into a slice.
func Tokens(transcription string) ([]Token, error) {
	seq, err := Tokenize(transcription)
	if err != nil {
		return nil, err
	}
	var toks []Token
	for tok := range seq {
		toks = append(toks, tok)
	}
	return toks, nil
}

// classify maps one non-empty whitespace-delimited unit to a [Token].
func classify(unit string) Token {
	switch unit {
	case "~":
		return Token{Kind: KindUtteranceEnd, Value: unit}
	case "#":
		return Token{Kind: KindWordBoundary, Value: unit}
	case ".":
		return Token{Kind: KindSentenceBoundary, Value: unit}
	case ",":
		return Token{Kind: KindPause, Value: unit}
	case "!", "?":
		return Token{Kind: KindPunctuation, Value: unit}
	}
	if allDigits(unit) {
		// A digit run too long for int falls through to phone.
		if level, err := strconv.Atoi(unit); err == nil {
			return Token{Kind: KindStressMarker, Value: unit, Level: level}
		}
	}
	return Token{Kind: KindPhone, Value: unit}
}

// allDigits reports whether unit consists entirely of ASCII decimal digits.
func allDigits(unit string) bool {
	for i := 0; i < len(unit); i++ {
		if unit[i] < '0' || unit[i] > '9' {
			return false
		}
	}
	return true
}
