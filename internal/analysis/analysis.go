package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/factlens/internal/extract"
	"github.com/hyperifyio/factlens/internal/features"
	"github.com/hyperifyio/factlens/internal/score"
	"github.com/hyperifyio/factlens/internal/summarize"
)

// MinInputChars is the shortest text Analyze accepts.
const MinInputChars = 50

// PastedTitle is the title recorded for pasted-text analyses.
const PastedTitle = "Pasted Text Analysis"

// ErrInputTooShort is returned when the text is under MinInputChars.
var ErrInputTooShort = errors.New("text too short for analysis")

// ExtractionError reports a URL whose article could not be extracted.
type ExtractionError struct {
	URL     string
	Article extract.Article
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract content from %s: %s", e.URL, e.Article.ErrorDetail)
}

func (e *ExtractionError) Unwrap() error { return e.Article.Err() }

// Result is the complete record of one analysis. It is never modified after
// Analyze returns it.
type Result struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Title     string        `json:"title"`
	Source    string        `json:"source,omitempty"`
	Summary   string        `json:"summary"`
	Verdict   score.Verdict `json:"verdict"`
	Features  features.Set  `json:"features"`
	WordCount int           `json:"word_count"`
	CharCount int           `json:"char_count"`
}

// ArticleExtractor fetches a URL and reduces it to an article.
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) extract.Article
}

// Analyzer runs the summarize, score and feature stages over one text. It
// holds no per-request state and may be shared between sessions.
type Analyzer struct {
	Scorer    score.Scorer
	Extractor ArticleExtractor
	// Now defaults to time.Now.
	Now func() time.Time
}

// Analyze produces a Result for text, or ErrInputTooShort. No partial
// result is ever returned.
func (a *Analyzer) Analyze(ctx context.Context, title, text string) (Result, error) {
	if n := utf8.RuneCountInString(text); n < MinInputChars {
		return Result{}, fmt.Errorf("%w: %d characters, need %d", ErrInputTooShort, n, MinInputChars)
	}
	scorer := a.Scorer
	if scorer == nil {
		scorer = score.RuleBased{}
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}

	start := time.Now()
	res := Result{
		ID:        uuid.NewString(),
		Timestamp: now(),
		Title:     title,
		Summary:   summarize.Summarize(text),
		Verdict:   scorer.Score(ctx, text),
		Features:  features.Extract(text),
		WordCount: len(strings.Fields(text)),
		CharCount: utf8.RuneCountInString(text),
	}
	log.Info().
		Str("id", res.ID).
		Str("label", string(res.Verdict.Label)).
		Float64("confidence", res.Verdict.Confidence).
		Int("words", res.WordCount).
		Dur("duration", time.Since(start)).
		Msg("analysis complete")
	return res, nil
}

// Run resolves the input union and analyzes the resulting text. URL inputs
// whose extraction fails return an *ExtractionError and never reach
// Analyze.
func (a *Analyzer) Run(ctx context.Context, in Input) (Result, error) {
	if in.Kind != URLReference {
		return a.Analyze(ctx, PastedTitle, in.Value)
	}
	ex := a.Extractor
	if ex == nil {
		ex = &extract.Fetcher{}
	}
	art := ex.Extract(ctx, in.Value)
	if !art.Succeeded {
		return Result{}, &ExtractionError{URL: in.Value, Article: art}
	}
	res, err := a.Analyze(ctx, art.Title, art.Content)
	if err != nil {
		return Result{}, err
	}
	res.Source = in.Value
	return res, nil
}
