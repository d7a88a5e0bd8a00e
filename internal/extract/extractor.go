package extract

import (
	"bytes"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/rs/zerolog/log"
)

// Extractor defines a minimal interface for content extraction strategies.
// Implementations can swap readability tactics without changing callers.
type Extractor interface {
	// Extract converts raw HTML bytes into an Article. pageURL is used to
	// resolve relative links and may be empty.
	Extract(input []byte, pageURL string) Article
}

// Strategy names accepted by NewExtractor.
const (
	StrategyHeuristic   = "heuristic"
	StrategyReadability = "readability"
)

// NewExtractor returns the extractor registered under name. Unknown or empty
// names select the heuristic extractor.
func NewExtractor(name string) Extractor {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyReadability:
		return ReadabilityExtractor{}
	default:
		return HeuristicExtractor{}
	}
}

// HeuristicExtractor uses FromHTML: first <article>, else all <p> elements.
type HeuristicExtractor struct{}

func (HeuristicExtractor) Extract(input []byte, _ string) Article {
	return FromHTML(input)
}

// ReadabilityExtractor runs Mozilla's readability algorithm. When readability
// cannot find a main content block the heuristic extractor is used instead.
type ReadabilityExtractor struct{}

func (ReadabilityExtractor) Extract(input []byte, pageURL string) Article {
	u, err := url.Parse(pageURL)
	if err != nil || u == nil {
		u = &url.URL{}
	}
	art, err := readability.FromReader(bytes.NewReader(input), u)
	if err != nil || strings.TrimSpace(art.TextContent) == "" {
		log.Debug().Err(err).Str("url", pageURL).Msg("readability found no content; using heuristic")
		return FromHTML(input)
	}
	title := strings.TrimSpace(art.Title)
	if title == "" {
		title = NoTitle
	}
	return NewArticle(title, art.TextContent)
}
