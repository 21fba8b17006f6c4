package match_test

import (
	"testing"

	"github.com/utterbank/utterbank/pkg/corpus"
	"github.com/utterbank/utterbank/pkg/match"
)

func sampleIDs(samples []corpus.Sample) []string {
	ids := make([]string, len(samples))
	for i, s := range samples {
		ids[i] = s.ID
	}
	return ids
}

func TestSearch_Ordering(t *testing.T) {
	t.Parallel()

	ix := testIndex()
	e := match.New()

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		// "the" is a substring of three texts; the shortest text has the best
		// length ratio and leads.
		{"substring ranked by length ratio", "the", []string{"statements_0001", "questions_0001", "statements_0002"}},
		{"phrase in two texts", "capital of Florida", []string{"questions_0001", "statements_0002"}},
		// No containment anywhere, so both hits come from word overlap.
		{"word overlap only", "miami capital", []string{"questions_0001", "statements_0002"}},
		{"equal text single hit", "oh no", []string{"exclamations_0001"}},
		{"no hits", "zebra", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sampleIDs(e.Search(tt.query, ix))
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Search(%q) = %v, want %v", tt.query, got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("Search(%q) = %v, want %v", tt.query, got, tt.wantIDs)
				}
			}
		})
	}
}

func TestSearch_Limit(t *testing.T) {
	t.Parallel()

	ix := testIndex()

	got := sampleIDs(match.New(match.WithSearchLimit(2)).Search("the", ix))
	if len(got) != 2 || got[0] != "statements_0001" || got[1] != "questions_0001" {
		t.Errorf("Search(the) with limit 2 = %v, want the top two hits", got)
	}

	// A limit beyond the hit count changes nothing.
	if got := match.New(match.WithSearchLimit(50)).Search("the", ix); len(got) != 3 {
		t.Errorf("Search(the) with limit 50: got %d hits, want 3", len(got))
	}

	// Zero means unlimited.
	if got := match.New(match.WithSearchLimit(0)).Search("the", ix); len(got) != 3 {
		t.Errorf("Search(the) with limit 0: got %d hits, want 3", len(got))
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	t.Parallel()

	ix := testIndex()
	e := match.New()

	if got := e.Search("", ix); got != nil {
		t.Errorf("Search(\"\") = %v, want nil", got)
	}
	if got := e.Search("?!...", ix); got != nil {
		t.Errorf("Search(punctuation only) = %v, want nil", got)
	}
	if got := e.Search("florida", corpus.NewIndex(nil)); got != nil {
		t.Errorf("Search on empty index = %v, want nil", got)
	}
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	ix := corpus.NewIndex([]corpus.Sample{
		{ID: "pair_0001", Text: "green apple", Transcription: "g r i 145 n # & p L ~", PhoneSequence: "g r i n & p L"},
		{ID: "pair_0002", Text: "green banana", Transcription: "g r i 145 n # b @ n & 145 n @ ~", PhoneSequence: "g r i n b @ n & n @"},
	})
	e := match.New()

	// Each text shares exactly one of the two query words, so the scores are
	// identical and insertion order must decide.
	got := sampleIDs(e.Search("banana apple", ix))
	if len(got) != 2 || got[0] != "pair_0001" || got[1] != "pair_0002" {
		t.Errorf("Search(banana apple) = %v, want insertion order on equal scores", got)
	}
}
