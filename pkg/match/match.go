// Package match implements cascading best-match selection and multi-result
// search over a [corpus.Index].
//
// [Engine.Best] evaluates four stages in strict priority order, and the first
// stage that yields any candidate wins — lower stages never override a higher
// stage's hit, no matter how they would score:
//
//  1. Exact: a sample whose normalized text equals the normalized query.
//     Score 100.
//
//  2. Substring: the normalized query contains, or is contained in, a
//     sample's normalized text. Score 75 + 25 × (shorter length / longer
//     length), so closer length means a higher score.
//
//  3. Word overlap: samples sharing at least one normalized word with the
//     query, gathered through the inverted word index. Score 50 × Jaccard
//     similarity of the two word sets.
//
//  4. Phonetic: the query is converted to an approximate phone sequence by a
//     deterministic grapheme-to-phone rule table ([Phonemize]) and compared
//     against each sample's stored phones by Levenshtein distance. Score
//     40 × (1 − distance / longer sequence length). This stage always yields
//     a candidate on a non-empty index, so [Engine.Best] only fails when the
//     index is empty.
//
// Within a stage, ties resolve to the lowest corpus insertion index, making
// results fully deterministic for a fixed index.
//
// [Engine.Search] is the non-cascaded counterpart: it lists every sample the
// substring or word-overlap criteria accept, ranked by score, for
// multi-result display.
package match

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/utterbank/utterbank/pkg/corpus"
)

// ErrNoMatch is returned by [Engine.Best] when the index holds no samples.
// Any non-empty index always produces a match.
var ErrNoMatch = errors.New("match: empty corpus")

// Stage identifies which cascade stage produced a [Result].
type Stage int

const (
	// StageNone is the zero value; it never appears in a returned [Result].
	StageNone Stage = iota

	// StageExact means the normalized texts were equal.
	StageExact

	// StageSubstring means one normalized text contained the other.
	StageSubstring

	// StageWordOverlap means the word sets intersected.
	StageWordOverlap

	// StagePhonetic means only the phone-sequence comparison produced the
	// winner.
	StagePhonetic
)

// String returns the human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageExact:
		return "exact"
	case StageSubstring:
		return "substring"
	case StageWordOverlap:
		return "word-overlap"
	case StagePhonetic:
		return "phonetic"
	default:
		return "none"
	}
}

// Result is the outcome of one best-match query.
type Result struct {
	// SampleID identifies the winning sample.
	SampleID string

	// Score is the stage-specific score in [0, 100].
	Score float64

	// Stage reports which cascade stage produced the winner.
	Stage Stage

	// EditDistance is the phone-level Levenshtein distance to the winner.
	// Only meaningful when Stage is [StagePhonetic]; zero otherwise.
	EditDistance int
}

// Option is a functional option for configuring an [Engine].
type Option func(*Engine)

// WithPhonemizer replaces the grapheme-to-phone function used by the phonetic
// stage. fn must be pure and deterministic; nil is ignored. Default:
// [Phonemize].
func WithPhonemizer(fn func(text string) []string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.phonemize = fn
		}
	}
}

// WithSearchLimit caps the number of results returned by [Engine.Search].
// Zero or negative means unlimited. Default: unlimited.
func WithSearchLimit(n int) Option {
	return func(e *Engine) {
		e.searchLimit = n
	}
}

// Engine evaluates queries against a [corpus.Index]. All methods are safe
// for concurrent use — the Engine is read-only after construction and the
// index it queries is immutable.
type Engine struct {
	phonemize   func(string) []string
	searchLimit int
}

// New returns an [Engine] configured with the supplied options.
func New(opts ...Option) *Engine {
	e := &Engine{phonemize: Phonemize}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Best returns the single best match for query per the four-stage cascade.
// Returns [ErrNoMatch] only when ix is empty.
func (e *Engine) Best(query string, ix *corpus.Index) (Result, error) {
	if ix == nil || ix.Len() == 0 {
		return Result{}, ErrNoMatch
	}
	norm := corpus.NormalizeText(query)

	if r, ok := exact(norm, ix); ok {
		return r, nil
	}
	if r, ok := substring(norm, ix); ok {
		return r, nil
	}
	if r, ok := wordOverlap(norm, ix); ok {
		return r, nil
	}
	return e.phonetic(norm, ix), nil
}

// exact scans for a sample whose normalized text equals norm. The first hit
// wins, which is the lowest insertion index.
func exact(norm string, ix *corpus.Index) (Result, bool) {
	for i := 0; i < ix.Len(); i++ {
		if ix.NormalizedAt(i) == norm {
			return Result{SampleID: ix.SampleAt(i).ID, Score: 100, Stage: StageExact}, true
		}
	}
	return Result{}, false
}

// substring scans for containment in either direction. Empty normalized
// strings are skipped on both sides: containment of nothing is meaningless.
func substring(norm string, ix *corpus.Index) (Result, bool) {
	if norm == "" {
		return Result{}, false
	}
	var best Result
	found := false
	for i := 0; i < ix.Len(); i++ {
		cand := ix.NormalizedAt(i)
		if cand == "" {
			continue
		}
		if !strings.Contains(cand, norm) && !strings.Contains(norm, cand) {
			continue
		}
		score := substringScore(norm, cand)
		if !found || score > best.Score {
			best = Result{SampleID: ix.SampleAt(i).ID, Score: score, Stage: StageSubstring}
			found = true
		}
	}
	return best, found
}

// substringScore rewards closer length match: 75 + 25 × (shorter / longer),
// measured in runes.
func substringScore(a, b string) float64 {
	shorter, longer := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	return 75 + 25*float64(shorter)/float64(longer)
}

// wordOverlap gathers candidates through the inverted word index and ranks
// them by Jaccard similarity. Candidates share at least one word by
// construction, so every candidate scores above zero.
func wordOverlap(norm string, ix *corpus.Index) (Result, bool) {
	qw := corpus.Words(norm)
	if len(qw) == 0 {
		return Result{}, false
	}
	var best Result
	found := false
	for _, pos := range ix.CandidatesSharing(qw) {
		score := 50 * jaccard(qw, ix.WordsAt(pos))
		if !found || score > best.Score {
			best = Result{SampleID: ix.SampleAt(pos).ID, Score: score, Stage: StageWordOverlap}
			found = true
		}
	}
	return best, found
}

// jaccard computes intersection-over-union for two sorted, duplicate-free
// word slices using a linear merge.
func jaccard(a, b []string) float64 {
	union := len(a) + len(b)
	if union == 0 {
		return 0
	}
	inter := 0
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] == b[j]:
			inter++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return float64(inter) / float64(union-inter)
}

// phonetic compares the phonemized query against every sample's phone
// sequence. It always produces a result on a non-empty index: distance-based
// scoring degrades to 0 rather than failing.
func (e *Engine) phonetic(norm string, ix *corpus.Index) Result {
	qp := e.phonemize(norm)
	var best Result
	for i := 0; i < ix.Len(); i++ {
		sp := ix.PhonesAt(i)
		dist := editDistance(qp, sp)

		score := 40.0
		if longer := max(len(qp), len(sp)); longer > 0 {
			score = 40 * (1 - float64(dist)/float64(longer))
		}
		if i == 0 || score > best.Score {
			best = Result{SampleID: ix.SampleAt(i).ID, Score: score, Stage: StagePhonetic, EditDistance: dist}
		}
	}
	return best
}
