package extract

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/factlens/internal/fetch"
)

// PageGetter is the part of fetch.Client the Fetcher needs.
type PageGetter interface {
	Get(ctx context.Context, url string) (fetch.Page, error)
}

// Fetcher downloads a URL and reduces it to an Article. It never returns an
// error: failures are reported through Article.Succeeded and ErrorDetail.
type Fetcher struct {
	Client    PageGetter
	Extractor Extractor
}

// Extract fetches url and extracts its article text.
func (f *Fetcher) Extract(ctx context.Context, url string) Article {
	client := f.Client
	if client == nil {
		client = &fetch.Client{}
	}
	ex := f.Extractor
	if ex == nil {
		ex = HeuristicExtractor{}
	}

	page, err := client.Get(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("fetch failed")
		return Failed(err)
	}
	art := ex.Extract(page.Body, page.FinalURL)
	if !art.Succeeded {
		log.Warn().Str("url", url).Int("chars", len(art.Content)).Msg("extracted content too short")
	} else {
		log.Debug().Str("url", url).Str("title", art.Title).Int("chars", len(art.Content)).Msg("extracted article")
	}
	return art
}
