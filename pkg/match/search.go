package match

import (
	"cmp"
	"slices"
	"strings"

	"github.com/utterbank/utterbank/pkg/corpus"
)

// Search lists every sample accepted by the substring or word-overlap
// criteria, without cascading: a sample qualifies when the normalized query
// and its normalized text contain one another in either direction, or when
// the two word sets intersect.
//
// Results are ordered by score descending — substring hits use the substring
// formula (which tops out at 100 for an equal text and always beats the
// word-overlap formula's maximum of 50) — with insertion order breaking
// ties. A search limit configured via [WithSearchLimit] truncates the list.
// An empty or punctuation-only query returns nil.
func (e *Engine) Search(query string, ix *corpus.Index) []corpus.Sample {
	if ix == nil || ix.Len() == 0 {
		return nil
	}
	norm := corpus.NormalizeText(query)
	if norm == "" {
		return nil
	}
	qw := corpus.Words(norm)

	type hit struct {
		pos   int
		score float64
	}
	var hits []hit
	for i := 0; i < ix.Len(); i++ {
		var score float64
		if cand := ix.NormalizedAt(i); cand != "" &&
			(strings.Contains(cand, norm) || strings.Contains(norm, cand)) {
			score = substringScore(norm, cand)
		}
		if s := 50 * jaccard(qw, ix.WordsAt(i)); s > score {
			score = s
		}
		if score > 0 {
			hits = append(hits, hit{pos: i, score: score})
		}
	}

	// Stable sort keeps equal scores in insertion order.
	slices.SortStableFunc(hits, func(a, b hit) int {
		return cmp.Compare(b.score, a.score)
	})
	if e.searchLimit > 0 && len(hits) > e.searchLimit {
		hits = hits[:e.searchLimit]
	}

	out := make([]corpus.Sample, len(hits))
	for i, h := range hits {
		out[i] = ix.SampleAt(h.pos)
	}
	return out
}
