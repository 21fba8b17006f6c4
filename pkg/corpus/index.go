package corpus

import (
	"slices"

	"github.com/utterbank/utterbank/pkg/phoneme"
)

// Index is an immutable query snapshot over a sample slice.
//
// Construction copies the input, so mutating the caller's slice afterwards
// has no effect on query results. All methods are safe for concurrent use.
type Index struct {
	samples    []Sample
	normalized []string   // NormalizeText(sample.Text), by position
	words      [][]string // Words(sample.Text), by position
	phones     [][]string // phone values of sample.PhoneSequence, by position

	byID       map[string]int
	byCategory map[string][]int // positions in corpus order
	byWord     map[string][]int // ascending positions per normalized word
}

// NewIndex builds an [Index] from samples.
//
// The slice is assumed structurally valid per the loader's admission rules.
// A later sample reusing an earlier id is dropped wholesale so that every
// indexed position maps to exactly one id; loaders warn about duplicates
// before the index ever sees them.
func NewIndex(samples []Sample) *Index {
	ix := &Index{
		samples:    make([]Sample, 0, len(samples)),
		normalized: make([]string, 0, len(samples)),
		words:      make([][]string, 0, len(samples)),
		phones:     make([][]string, 0, len(samples)),
		byID:       make(map[string]int, len(samples)),
		byCategory: make(map[string][]int),
		byWord:     make(map[string][]int),
	}

	for _, s := range samples {
		if _, dup := ix.byID[s.ID]; dup {
			continue
		}
		pos := len(ix.samples)
		ix.samples = append(ix.samples, s)
		ix.normalized = append(ix.normalized, NormalizeText(s.Text))
		ix.phones = append(ix.phones, phoneValues(s.PhoneSequence))

		ws := Words(s.Text)
		ix.words = append(ix.words, ws)
		for _, w := range ws {
			ix.byWord[w] = append(ix.byWord[w], pos)
		}

		ix.byID[s.ID] = pos
		ix.byCategory[s.Category] = append(ix.byCategory[s.Category], pos)
	}
	return ix
}

// phoneValues extracts the plain phone tokens from a phone sequence string,
// dropping word boundaries and any other markers. An empty sequence yields nil.
func phoneValues(sequence string) []string {
	seq, err := phoneme.Tokenize(sequence)
	if err != nil {
		return nil
	}
	var phones []string
	for tok := range seq {
		if tok.Kind == phoneme.KindPhone {
			phones = append(phones, tok.Value)
		}
	}
	return phones
}

// Len returns the number of indexed samples.
func (ix *Index) Len() int {
	return len(ix.samples)
}

// SampleAt returns a copy of the sample at position i.
// i must be in [0, Len()).
func (ix *Index) SampleAt(i int) Sample {
	return ix.samples[i]
}

// NormalizedAt returns the normalized text of the sample at position i.
func (ix *Index) NormalizedAt(i int) string {
	return ix.normalized[i]
}

// WordsAt returns the sorted, duplicate-free normalized words of the sample
// at position i. The slice is shared with the index and must be treated as
// read-only.
func (ix *Index) WordsAt(i int) []string {
	return ix.words[i]
}

// PhonesAt returns the phone values of the sample at position i, in
// transcription order. The slice is shared with the index and must be
// treated as read-only.
func (ix *Index) PhonesAt(i int) []string {
	return ix.phones[i]
}

// CandidatesSharing returns the ascending positions of every sample whose
// word set shares at least one word with words. The result is freshly
// allocated on every call.
func (ix *Index) CandidatesSharing(words []string) []int {
	var positions []int
	for _, w := range words {
		positions = append(positions, ix.byWord[w]...)
	}
	if len(positions) == 0 {
		return nil
	}
	slices.Sort(positions)
	return slices.Compact(positions)
}

// ByID returns a copy of the sample with the given id.
// Returns [ErrUnknownSample] when the id is not indexed.
func (ix *Index) ByID(id string) (Sample, error) {
	pos, ok := ix.byID[id]
	if !ok {
		return Sample{}, ErrUnknownSample
	}
	return ix.samples[pos], nil
}

// Category returns copies of the samples labelled with category, preserving
// corpus order. Returns [ErrUnknownCategory] when no sample carries the label.
func (ix *Index) Category(category string) ([]Sample, error) {
	positions, ok := ix.byCategory[category]
	if !ok {
		return nil, ErrUnknownCategory
	}
	out := make([]Sample, len(positions))
	for i, pos := range positions {
		out[i] = ix.samples[pos]
	}
	return out, nil
}

// Categories returns every category label present in the corpus, sorted.
func (ix *Index) Categories() []string {
	out := make([]string, 0, len(ix.byCategory))
	for c := range ix.byCategory {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Samples returns a copy of all indexed samples in corpus order.
func (ix *Index) Samples() []Sample {
	return slices.Clone(ix.samples)
}

// Stats summarises the index contents.
func (ix *Index) Stats() Stats {
	st := Stats{
		SampleCount:    len(ix.samples),
		CategoryCounts: make(map[string]int, len(ix.byCategory)),
	}
	for c, positions := range ix.byCategory {
		st.CategoryCounts[c] = len(positions)
	}
	for _, s := range ix.samples {
		st.TotalDuration += s.DurationSeconds
	}
	if st.SampleCount > 0 {
		st.AverageDuration = st.TotalDuration / float64(st.SampleCount)
	}
	return st
}

// Analyze tokenizes and analyzes the transcription of the sample with the
// given id. Returns [ErrUnknownSample] for an unindexed id and
// [phoneme.ErrEmptyTranscription] if the stored transcription is empty.
func (ix *Index) Analyze(id string) (*phoneme.Report, error) {
	s, err := ix.ByID(id)
	if err != nil {
		return nil, err
	}
	return phoneme.AnalyzeString(s.Transcription)
}
