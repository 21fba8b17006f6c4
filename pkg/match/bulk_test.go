package match_test

import (
	"context"
	"errors"
	"testing"

	"github.com/utterbank/utterbank/pkg/corpus"
	"github.com/utterbank/utterbank/pkg/match"
)

func TestBestAll_QueryOrder(t *testing.T) {
	t.Parallel()

	ix := testIndex()
	e := match.New()

	queries := []string{"Oh no!", "capital of Florida", "Miami capital"}
	got, err := e.BestAll(context.Background(), queries, ix)
	if err != nil {
		t.Fatalf("BestAll: unexpected error: %v", err)
	}
	if len(got) != len(queries) {
		t.Fatalf("BestAll returned %d results, want %d", len(got), len(queries))
	}

	want := match.Result{SampleID: "exclamations_0001", Score: 100, Stage: match.StageExact}
	if got[0] != want {
		t.Errorf("results[0] = %+v, want %+v", got[0], want)
	}
	if got[1].SampleID != "questions_0001" || got[1].Stage != match.StageSubstring {
		t.Errorf("results[1] = %+v, want questions_0001 via substring", got[1])
	}
	if got[2].SampleID != "questions_0001" || got[2].Stage != match.StageWordOverlap {
		t.Errorf("results[2] = %+v, want questions_0001 via word overlap", got[2])
	}
}

func TestBestAll_NoQueries(t *testing.T) {
	t.Parallel()

	got, err := match.New().BestAll(context.Background(), nil, testIndex())
	if err != nil {
		t.Fatalf("BestAll(nil queries): unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("BestAll(nil queries) = %v, want no results", got)
	}
}

func TestBestAll_EmptyIndex(t *testing.T) {
	t.Parallel()

	got, err := match.New().BestAll(context.Background(), []string{"a", "b"}, corpus.NewIndex(nil))
	if !errors.Is(err, match.ErrNoMatch) {
		t.Fatalf("BestAll on empty index: err=%v, want ErrNoMatch", err)
	}
	if got != nil {
		t.Errorf("BestAll on empty index = %v, want nil results", got)
	}
}

func TestBestAll_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := match.New().BestAll(ctx, []string{"oh no", "miami", "weather", "zz"}, testIndex())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("BestAll with cancelled context: err=%v, want context.Canceled", err)
	}
}
