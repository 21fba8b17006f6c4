package commands

import (
	"strings"
	"testing"
)

func TestSearchCommand(t *testing.T) {
	out, err := runCmd(t, "search", "--metadata", writeCorpus(t), "capital")
	if err != nil {
		t.Fatalf("search: unexpected error: %v", err)
	}
	if !strings.Contains(out, "Found 2 matches:") {
		t.Errorf("search output should find both capital samples:\n%s", out)
	}
	// Containment in the shorter text scores higher.
	first := strings.Index(out, "statements_0002")
	second := strings.Index(out, "questions_0001")
	if first < 0 || second < 0 || first > second {
		t.Errorf("search output should rank statements_0002 before questions_0001:\n%s", out)
	}
}

func TestSearchCommand_Limit(t *testing.T) {
	out, err := runCmd(t, "search", "--metadata", writeCorpus(t), "--limit", "1", "capital")
	if err != nil {
		t.Fatalf("search: unexpected error: %v", err)
	}
	if !strings.Contains(out, "Found 1 matches:") {
		t.Errorf("search output should honour --limit 1:\n%s", out)
	}
	if strings.Contains(out, "questions_0001") {
		t.Errorf("the runner-up should be cut by --limit 1:\n%s", out)
	}
}

func TestSearchCommand_NoHits(t *testing.T) {
	out, err := runCmd(t, "search", "--metadata", writeCorpus(t), "xylophone")
	if err != nil {
		t.Fatalf("search: unexpected error: %v", err)
	}
	if !strings.Contains(out, "Found 0 matches:") {
		t.Errorf("search output should report zero hits:\n%s", out)
	}
}
