package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/utterbank/utterbank/pkg/corpus"
	"github.com/utterbank/utterbank/pkg/match"
	"github.com/utterbank/utterbank/pkg/phoneme"
)

// styles holds the lipgloss styles for terminal output.
type styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	ID    lipgloss.Style
	Muted lipgloss.Style
	Warn  lipgloss.Style
}

// ui is the package-wide style set. Lipgloss degrades the colours to plain
// text automatically when stdout is not a terminal.
var ui = styles{
	Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7ee787")),
	Label: lipgloss.NewStyle().Bold(true),
	ID:    lipgloss.NewStyle().Foreground(lipgloss.Color("#79c0ff")),
	Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e")),
	Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#d29922")),
}

// sampleRow renders one "  id: text" listing line.
func sampleRow(s corpus.Sample) string {
	return fmt.Sprintf("  %s: %s", ui.ID.Render(s.ID), s.Text)
}

// renderMatch renders a best-match result with its winning sample.
func renderMatch(r match.Result, s corpus.Sample) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", ui.Title.Render("Closest match:"), ui.ID.Render(r.SampleID))
	fmt.Fprintf(&b, "  %s     %s\n", ui.Label.Render("Text:"), s.Text)
	fmt.Fprintf(&b, "  %s %s\n", ui.Label.Render("Category:"), s.Category)
	fmt.Fprintf(&b, "  %s %.2fs\n", ui.Label.Render("Duration:"), s.DurationSeconds)

	score := fmt.Sprintf("%.1f (%s)", r.Score, r.Stage)
	if r.Stage == match.StagePhonetic {
		score = fmt.Sprintf("%.1f (%s, edit distance %d)", r.Score, r.Stage, r.EditDistance)
	}
	fmt.Fprintf(&b, "  %s    %s\n", ui.Label.Render("Score:"), score)
	return b.String()
}

// renderAnalysis renders the phonetic breakdown of one utterance.
func renderAnalysis(s corpus.Sample, rep *phoneme.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", ui.Title.Render("Analysis:"), ui.ID.Render(s.ID))
	fmt.Fprintf(&b, "  %s %s\n", ui.Label.Render("Text:"), s.Text)
	fmt.Fprintf(&b, "  %s %d phones across %d words\n", ui.Label.Render("Size:"), rep.PhoneCount, rep.WordCount)

	fmt.Fprintf(&b, "  %s\n", ui.Label.Render("Words:"))
	for i, word := range rep.Words {
		values := make([]string, len(word))
		for j, tok := range word {
			values[j] = tok.Value
		}
		fmt.Fprintf(&b, "    %2d. %s\n", i+1, strings.Join(values, " "))
	}

	if len(rep.StressPattern) > 0 {
		fmt.Fprintf(&b, "  %s\n", ui.Label.Render("Stress:"))
		for _, m := range rep.StressPattern {
			fmt.Fprintf(&b, "    word %d ← %d (%s)\n", m.Word+1, m.Level, stressName(m.Level))
		}
	}

	if top := topPhones(rep.Histogram, 5); len(top) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", ui.Label.Render("Top phones:"), strings.Join(top, ", "))
	}
	fmt.Fprintf(&b, "  %s %s\n", ui.Label.Render("Transcription:"), ui.Muted.Render(s.Transcription))
	return b.String()
}

// stressName maps the corpus stress codes to their conventional names.
func stressName(level int) string {
	switch level {
	case 145:
		return "primary"
	case 146:
		return "secondary"
	default:
		return fmt.Sprintf("level %d", level)
	}
}

// topPhones returns the n most frequent phones as "value ×count" fragments,
// ordered by descending count with the phone value as tie-break.
func topPhones(hist map[string]int, n int) []string {
	type entry struct {
		value string
		count int
	}
	entries := make([]entry, 0, len(hist))
	for v, c := range hist {
		entries = append(entries, entry{v, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].value < entries[j].value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = fmt.Sprintf("%s ×%d", e.value, e.count)
	}
	return out
}

// renderStats renders the short corpus summary.
func renderStats(st corpus.Stats, categories []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", ui.Label.Render("Total samples:"), st.SampleCount)
	fmt.Fprintf(&b, "%s %s\n", ui.Label.Render("Categories:"), strings.Join(categories, ", "))
	fmt.Fprintf(&b, "%s %.2fs\n", ui.Label.Render("Average duration:"), st.AverageDuration)
	fmt.Fprintf(&b, "%s %.2fs\n", ui.Label.Render("Total duration:"), st.TotalDuration)
	return b.String()
}

// renderReport renders the full corpus report: the overall summary, a
// per-category breakdown, and the first few samples as examples.
func renderReport(st corpus.Stats, categories []string, samples []corpus.Sample) string {
	const exampleCount = 5
	rule := ui.Muted.Render(strings.Repeat("─", 60))

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n%s\n", rule, ui.Title.Render("UTTERANCE CORPUS REPORT"), rule)
	b.WriteString(renderStats(st, categories))

	fmt.Fprintf(&b, "\n%s\n%s\n", ui.Title.Render("CATEGORY BREAKDOWN"), rule)
	for _, cat := range categories {
		var total float64
		count := 0
		for _, s := range samples {
			if s.Category == cat {
				total += s.DurationSeconds
				count++
			}
		}
		if count == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s\n", ui.Label.Render(strings.ToUpper(cat)))
		fmt.Fprintf(&b, "  Samples: %d\n", count)
		fmt.Fprintf(&b, "  Total duration: %.2fs\n", total)
		fmt.Fprintf(&b, "  Average duration: %.2fs\n", total/float64(count))
	}

	fmt.Fprintf(&b, "\n%s\n%s\n", ui.Title.Render("SAMPLE EXAMPLES"), rule)
	for i, s := range samples {
		if i == exampleCount {
			break
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, ui.ID.Render(s.ID), s.Category)
		fmt.Fprintf(&b, "   Text: %s\n", s.Text)
		fmt.Fprintf(&b, "   Duration: %.2fs\n", s.DurationSeconds)
		fmt.Fprintf(&b, "   Phones: %s\n", ui.Muted.Render(truncate(s.PhoneSequence, 80)))
	}
	return b.String()
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
