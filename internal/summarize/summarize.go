package summarize

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/factlens/internal/textseg"
)

const (
	// MinChars is the shortest text that gets a real summary.
	MinChars = 100
	// MaxSentences is how many leading sentences make up the summary.
	MaxSentences = 3
	// fallbackRunes is the prefix length used when segmentation fails.
	fallbackRunes = 200
)

// TooShort is returned in place of a summary for texts under MinChars.
const TooShort = "Text too short for meaningful summary"

// Summarize returns an extractive summary made of the first MaxSentences
// sentences of text.
func Summarize(text string) string {
	if utf8.RuneCountInString(text) < MinChars {
		return TooShort
	}
	sents, ok := segment(text)
	if !ok {
		return fallback(text)
	}
	if len(sents) > MaxSentences {
		sents = sents[:MaxSentences]
	}
	return strings.Join(sents, " ")
}

// segment recovers from segmentation panics so that malformed input degrades
// to the prefix fallback.
func segment(text string) (sents []string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("sentence segmentation failed; using prefix summary")
			sents, ok = nil, false
		}
	}()
	sents = textseg.Sentences(text)
	return sents, len(sents) > 0
}

func fallback(text string) string {
	if utf8.RuneCountInString(text) <= fallbackRunes {
		return text + "..."
	}
	return string([]rune(text)[:fallbackRunes]) + "..."
}
