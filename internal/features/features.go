package features

import (
	"strings"

	"github.com/hyperifyio/factlens/internal/textseg"
)

// Set is the fixed bundle of linguistic counters computed for a text.
type Set struct {
	WordCount              int     `json:"word_count"`
	SentenceCount          int     `json:"sentence_count"`
	AvgSentenceLength      float64 `json:"avg_sentence_length"`
	ExclamationCount       int     `json:"exclamation_count"`
	SensationalWordCount   int     `json:"sensational_word_count"`
	ReliableIndicatorCount int     `json:"reliable_indicator_count"`
}

// SensationalWords are matched as substrings of single lower-cased tokens.
var SensationalWords = []string{"shocking", "miracle", "secret", "breaking", "urgent"}

// ReliableIndicators are matched against single tokens as well. A token
// never contains a space, so these multi-word phrases do not match; the
// count is kept for compatibility with existing result consumers.
var ReliableIndicators = []string{"according to", "study shows", "research indicates", "experts say"}

// Extract computes the feature set of text. It never fails; empty input
// yields a zero Set.
func Extract(text string) Set {
	text = textseg.Normalize(text)
	tokens := textseg.Words(textseg.Lower(text))
	sentences := textseg.Sentences(text)

	s := Set{
		WordCount:              len(tokens),
		SentenceCount:          len(sentences),
		ExclamationCount:       strings.Count(text, "!"),
		SensationalWordCount:   countTokensContaining(tokens, SensationalWords),
		ReliableIndicatorCount: countTokensContaining(tokens, ReliableIndicators),
	}
	if s.SentenceCount > 0 {
		s.AvgSentenceLength = float64(s.WordCount) / float64(s.SentenceCount)
	}
	return s
}

func countTokensContaining(tokens []string, needles []string) int {
	n := 0
	for _, tok := range tokens {
		for _, needle := range needles {
			if strings.Contains(tok, needle) {
				n++
				break
			}
		}
	}
	return n
}
