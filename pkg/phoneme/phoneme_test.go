package phoneme_test

import (
	"errors"
	"testing"

	"github.com/utterbank/utterbank/pkg/phoneme"
)

// corpusSequence is a real transcription shape from the corpus: four words,
// three of them stress-marked.
const corpusSequence = "w e # D J # 146 r 145 v L I N # 146 $ g E D e"

func TestTokenize_CorpusSequence(t *testing.T) {
	t.Parallel()

	want := []phoneme.Token{
		{Kind: phoneme.KindPhone, Value: "w"},
		{Kind: phoneme.KindPhone, Value: "e"},
		{Kind: phoneme.KindWordBoundary, Value: "#"},
		{Kind: phoneme.KindPhone, Value: "D"},
		{Kind: phoneme.KindPhone, Value: "J"},
		{Kind: phoneme.KindWordBoundary, Value: "#"},
		{Kind: phoneme.KindStressMarker, Value: "146", Level: 146},
		{Kind: phoneme.KindPhone, Value: "r"},
		{Kind: phoneme.KindStressMarker, Value: "145", Level: 145},
		{Kind: phoneme.KindPhone, Value: "v"},
		{Kind: phoneme.KindPhone, Value: "L"},
		{Kind: phoneme.KindPhone, Value: "I"},
		{Kind: phoneme.KindPhone, Value: "N"},
		{Kind: phoneme.KindWordBoundary, Value: "#"},
		{Kind: phoneme.KindStressMarker, Value: "146", Level: 146},
		{Kind: phoneme.KindPhone, Value: "$"},
		{Kind: phoneme.KindPhone, Value: "g"},
		{Kind: phoneme.KindPhone, Value: "E"},
		{Kind: phoneme.KindPhone, Value: "D"},
		{Kind: phoneme.KindPhone, Value: "e"},
	}

	got, err := phoneme.Tokens(corpusSequence)
	if err != nil {
		t.Fatalf("Tokens(%q): unexpected error: %v", corpusSequence, err)
	}
	if len(got) != len(want) {
		t.Fatalf("Tokens(%q): got %d tokens, want %d", corpusSequence, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTokenize_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		unit  string
		kind  phoneme.Kind
		level int
	}{
		{"utterance end", "~", phoneme.KindUtteranceEnd, 0},
		{"word boundary", "#", phoneme.KindWordBoundary, 0},
		{"sentence boundary", ".", phoneme.KindSentenceBoundary, 0},
		{"pause", ",", phoneme.KindPause, 0},
		{"exclamation", "!", phoneme.KindPunctuation, 0},
		{"question", "?", phoneme.KindPunctuation, 0},
		{"primary stress", "145", phoneme.KindStressMarker, 145},
		{"secondary stress", "146", phoneme.KindStressMarker, 146},
		{"unlisted stress code", "7", phoneme.KindStressMarker, 7},
		{"lowercase phone", "n", phoneme.KindPhone, 0},
		{"uppercase phone", "N", phoneme.KindPhone, 0},
		{"symbol phone", "$", phoneme.KindPhone, 0},
		{"multi-char phone", "tS", phoneme.KindPhone, 0},
		{"mixed digit-letter unit", "1a", phoneme.KindPhone, 0},
		{"digit run exceeding int range", "99999999999999999999999999999", phoneme.KindPhone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := phoneme.Tokens(tt.unit)
			if err != nil {
				t.Fatalf("Tokens(%q): unexpected error: %v", tt.unit, err)
			}
			if len(got) != 1 {
				t.Fatalf("Tokens(%q): got %d tokens, want 1", tt.unit, len(got))
			}
			if got[0].Kind != tt.kind {
				t.Errorf("Tokens(%q): kind=%v, want %v", tt.unit, got[0].Kind, tt.kind)
			}
			if got[0].Value != tt.unit {
				t.Errorf("Tokens(%q): value=%q, want %q", tt.unit, got[0].Value, tt.unit)
			}
			if got[0].Level != tt.level {
				t.Errorf("Tokens(%q): level=%d, want %d", tt.unit, got[0].Level, tt.level)
			}
		})
	}
}

func TestTokenize_CaseSensitivePhones(t *testing.T) {
	t.Parallel()

	got, err := phoneme.Tokens("N n")
	if err != nil {
		t.Fatalf("Tokens: unexpected error: %v", err)
	}
	if got[0].Value == got[1].Value {
		t.Errorf("Tokens(%q): %q and %q must stay distinct", "N n", got[0].Value, got[1].Value)
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "\t\n"} {
		if _, err := phoneme.Tokenize(input); !errors.Is(err, phoneme.ErrEmptyTranscription) {
			t.Errorf("Tokenize(%q): err=%v, want ErrEmptyTranscription", input, err)
		}
	}
}

func TestTokenize_Restartable(t *testing.T) {
	t.Parallel()

	seq, err := phoneme.Tokenize("a # b")
	if err != nil {
		t.Fatalf("Tokenize: unexpected error: %v", err)
	}

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}

	first, second := count(), count()
	if first != 3 || second != 3 {
		t.Errorf("ranging twice over the same sequence: got %d then %d tokens, want 3 both times", first, second)
	}
}

func TestTokenize_EarlyBreak(t *testing.T) {
	t.Parallel()

	seq, err := phoneme.Tokenize("a b c d e")
	if err != nil {
		t.Fatalf("Tokenize: unexpected error: %v", err)
	}

	var got []phoneme.Token
	for tok := range seq {
		got = append(got, tok)
		if len(got) == 2 {
			break
		}
	}
	if len(got) != 2 {
		t.Fatalf("early break: collected %d tokens, want 2", len(got))
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind phoneme.Kind
		want string
	}{
		{phoneme.KindPhone, "phone"},
		{phoneme.KindWordBoundary, "word-boundary"},
		{phoneme.KindStressMarker, "stress-marker"},
		{phoneme.KindSentenceBoundary, "sentence-boundary"},
		{phoneme.KindPause, "pause"},
		{phoneme.KindPunctuation, "punctuation"},
		{phoneme.KindUtteranceEnd, "utterance-end"},
		{phoneme.Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
