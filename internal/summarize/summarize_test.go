package summarize

import (
	"strings"
	"testing"
)

func TestSummarize_TooShort(t *testing.T) {
	if got := Summarize("Short text."); got != TooShort {
		t.Fatalf("got %q, want %q", got, TooShort)
	}
}

func TestSummarize_FourSentencesKeepsFirstThree(t *testing.T) {
	text := "The council met on Monday to discuss the budget. " +
		"Several members raised concerns about road repairs. " +
		"The mayor promised a detailed report next month. " +
		"The meeting adjourned at nine in the evening."
	got := Summarize(text)
	want := "The council met on Monday to discuss the budget. " +
		"Several members raised concerns about road repairs. " +
		"The mayor promised a detailed report next month."
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestSummarize_ThreeOrFewerReturnsAll(t *testing.T) {
	text := "The committee published its findings after a long review period. " +
		"Officials said the recommendations would be adopted within a year."
	got := Summarize(text)
	if got != text {
		t.Fatalf("got %q, want the full text", got)
	}
}

func TestSummarize_NoSentencesFallsBackToPrefix(t *testing.T) {
	text := strings.Repeat(" ", 300)
	got := Summarize(text)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis fallback, got %q", got)
	}
	if len([]rune(got)) != 203 {
		t.Fatalf("expected 200 runes plus ellipsis, got %d", len([]rune(got)))
	}
}

func TestSummarize_SentenceEndingInAbbreviationCountsOnce(t *testing.T) {
	text := "The council met on Monday to vote on the plan. " +
		"Asked if it would pass, the mayor said no. " +
		"Critics cheered outside the hall. " +
		"The vote was delayed until spring."
	want := "The council met on Monday to vote on the plan. " +
		"Asked if it would pass, the mayor said no. " +
		"Critics cheered outside the hall."
	if got := Summarize(text); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}
