package phoneme

import "iter"

// StressMark records one stress code and the word segment that contains it.
type StressMark struct {
	// Word is the index into [Report.Words] of the containing segment.
	Word int

	// Level is the numeric stress code (145 = primary, 146 = secondary).
	Level int
}

// Report is the structural breakdown of a single utterance transcription.
type Report struct {
	// Words holds the word segments in order. A segment is the run of phone
	// and stress-marker tokens between two word boundaries (or between the
	// sequence start/end and a boundary). Boundary tokens are delimiters and
	// never appear in a segment; empty runs produce no segment.
	Words [][]Token

	// StressPattern lists every stress marker in order of appearance,
	// attributed to its containing word segment.
	StressPattern []StressMark

	// Histogram counts occurrences per phone value. Only [KindPhone] tokens
	// are counted.
	Histogram map[string]int

	// PhoneCount is the total number of phone tokens.
	PhoneCount int

	// WordCount is len(Words).
	WordCount int
}

// Analyze consumes a token sequence and builds a [Report].
//
// Word segmentation happens as tokens stream by: boundaries close the current
// segment, phones and stress markers extend it, and all other marker kinds
// (sentence boundaries, pauses, punctuation, utterance end) are transparent —
// they neither extend nor close a segment. Stress markers are attributed to
// the segment being accumulated when they appear; segmentation therefore runs
// ahead of stress attribution, never behind it.
func Analyze(tokens iter.Seq[Token]) *Report {
	r := &Report{Histogram: make(map[string]int)}
	var current []Token

	flush := func() {
		if len(current) > 0 {
			r.Words = append(r.Words, current)
			current = nil
		}
	}

	for tok := range tokens {
		switch tok.Kind {
		case KindWordBoundary:
			flush()
		case KindPhone:
			current = append(current, tok)
			r.Histogram[tok.Value]++
			r.PhoneCount++
		case KindStressMarker:
			current = append(current, tok)
			// len(r.Words) is the index this segment will occupy once flushed.
			r.StressPattern = append(r.StressPattern, StressMark{Word: len(r.Words), Level: tok.Level})
		}
	}
	flush()

	r.WordCount = len(r.Words)
	return r
}

// AnalyzeString tokenizes transcription and analyzes the result in one step.
// Returns [ErrEmptyTranscription] for empty input.
func AnalyzeString(transcription string) (*Report, error) {
	seq, err := Tokenize(transcription)
	if err != nil {
		return nil, err
	}
	return Analyze(seq), nil
}
