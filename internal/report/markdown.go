// Package report renders analysis results and session histories as
// Markdown, HTML and PDF documents.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/hyperifyio/factlens/internal/analysis"
	"github.com/hyperifyio/factlens/internal/score"
	"github.com/hyperifyio/factlens/internal/session"
)

// Markdown renders a single result.
func Markdown(r analysis.Result) string {
	var b strings.Builder
	writeResult(&b, r, "#")
	return b.String()
}

// HistoryMarkdown renders a session's history, oldest first, with a tally
// of verdicts at the top. A nil session renders as empty.
func HistoryMarkdown(s *session.Session) string {
	var b strings.Builder
	b.WriteString("# Analysis History\n\n")
	if s == nil || s.Len() == 0 {
		b.WriteString("No analyses yet.\n")
		return b.String()
	}
	results := s.Entries()
	counts := s.Counts()
	fmt.Fprintf(&b, "Analyses: %d (reliable %d, fake %d, borderline %d, error %d)\n\n",
		len(results), counts[score.Reliable], counts[score.Fake], counts[score.Borderline], counts[score.Error])
	for i, r := range results {
		fmt.Fprintf(&b, "## Analysis %d: %s\n\n", i+1, oneLine(r.Title))
		writeBody(&b, r)
	}
	return b.String()
}

func writeResult(b *strings.Builder, r analysis.Result, heading string) {
	fmt.Fprintf(b, "%s %s\n\n", heading, oneLine(r.Title))
	writeBody(b, r)
}

func writeBody(b *strings.Builder, r analysis.Result) {
	v := r.Verdict
	fmt.Fprintf(b, "**Verdict:** %s  \n", v.Label.Display())
	fmt.Fprintf(b, "**Confidence:** %s  \n", Percent(v.Confidence))
	fmt.Fprintf(b, "**Date:** %s  \n", r.Timestamp.Local().Format("2006-01-02 15:04"))
	if r.Source != "" {
		fmt.Fprintf(b, "**Source:** [%s](%s)  \n", r.Source, r.Source)
	}
	fmt.Fprintf(b, "**Words:** %d, **Characters:** %d\n\n", r.WordCount, r.CharCount)
	if v.Label == score.Error && v.ErrorDetail != "" {
		fmt.Fprintf(b, "> Classification failed: %s\n\n", oneLine(v.ErrorDetail))
	}

	b.WriteString("### Summary\n\n")
	b.WriteString(oneLine(r.Summary))
	b.WriteString("\n\n")

	b.WriteString("### Scores\n\n")
	b.WriteString("| Series | Score |\n|---|---|\n")
	fmt.Fprintf(b, "| fake_score | %s |\n", Percent(v.FakeScore))
	fmt.Fprintf(b, "| reliable_score | %s |\n\n", Percent(v.ReliableScore))

	f := r.Features
	b.WriteString("### Features\n\n")
	b.WriteString("| Feature | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Words (tokens) | %d |\n", f.WordCount)
	fmt.Fprintf(b, "| Sentences | %d |\n", f.SentenceCount)
	fmt.Fprintf(b, "| Average sentence length | %.1f |\n", f.AvgSentenceLength)
	fmt.Fprintf(b, "| Exclamation marks | %d |\n", f.ExclamationCount)
	fmt.Fprintf(b, "| Sensational words | %d |\n", f.SensationalWordCount)
	fmt.Fprintf(b, "| Reliable indicators | %d |\n\n", f.ReliableIndicatorCount)
}

// Percent formats a 0..1 ratio with one decimal, e.g. 0.723 -> "72.3%".
func Percent(x float64) string {
	return fmt.Sprintf("%.1f%%", x*100)
}

// oneLine keeps titles and summaries from breaking table or heading syntax.
func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", "\\|")
}

// Footer is appended to exported documents.
func Footer(generated time.Time) string {
	return fmt.Sprintf("\n---\nGenerated by factlens on %s. Scores are heuristic signals, not fact checks.\n", generated.UTC().Format(time.RFC3339))
}
