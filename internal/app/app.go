// Package app assembles the credibility pipeline from configuration: the
// fetcher and extractor for URL inputs, the scorer strategy and the optional
// remote classifier client.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/factlens/internal/analysis"
	"github.com/hyperifyio/factlens/internal/cache"
	"github.com/hyperifyio/factlens/internal/extract"
	"github.com/hyperifyio/factlens/internal/fetch"
	"github.com/hyperifyio/factlens/internal/llm"
	"github.com/hyperifyio/factlens/internal/score"
)

// App owns one configured Analyzer. It is safe to share between sessions.
type App struct {
	cfg      Config
	analyzer *analysis.Analyzer
}

// Options lets callers and tests replace the network-facing collaborators.
type Options struct {
	// Client overrides the OpenAI-compatible client built from Config.
	Client llm.Client
	// Pages overrides the HTTP page getter used for URL inputs.
	Pages extract.PageGetter
}

// New validates cfg and builds the pipeline.
func New(ctx context.Context, cfg Config, opts ...Options) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	pages := o.Pages
	if pages == nil {
		pages = &fetch.Client{
			HTTPClient:        newFetchHTTPClient(),
			UserAgent:         cfg.UserAgent,
			PerRequestTimeout: cfg.FetchTimeout,
			RedirectMaxHops:   5,
		}
	}

	sopts := score.Options{Strategy: cfg.Scorer}
	if strings.EqualFold(strings.TrimSpace(cfg.Scorer), score.StrategyRemote) {
		client := o.Client
		if client == nil {
			client = llm.NewOpenAIProvider(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.ClassifierTimeout)
		}
		if !cfg.SkipPreflight {
			preflight(ctx, client)
		}
		sopts.Client = client
		sopts.Model = cfg.LLMModel
		sopts.Cache = &cache.LLMCache{MaxEntries: cfg.CacheEntries}
		sopts.SystemPrompt = cfg.SystemPrompt
		sopts.Timeout = cfg.ClassifierTimeout
	}
	scorer, err := score.New(sopts)
	if err != nil {
		return nil, fmt.Errorf("init scorer: %w", err)
	}

	a := &App{
		cfg: cfg,
		analyzer: &analysis.Analyzer{
			Scorer:    scorer,
			Extractor: &extract.Fetcher{Client: pages, Extractor: extract.NewExtractor(cfg.Extractor)},
		},
	}
	log.Debug().
		Str("scorer", strings.ToLower(pickNonEmpty(cfg.Scorer, DefaultScorer))).
		Str("extractor", strings.ToLower(pickNonEmpty(cfg.Extractor, DefaultExtractor))).
		Str("model", cfg.LLMModel).
		Msg("pipeline ready")
	return a, nil
}

// preflight lists the classifier's models. It is best-effort: an unreachable
// service only produces a warning, and each classification then reports an
// Error verdict on its own.
func preflight(ctx context.Context, client llm.Client) {
	lister, ok := client.(llm.ModelLister)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := lister.ListModels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("LLM model list failed; continuing")
		return
	}
	if len(models.Models) > 0 {
		log.Info().Int("count", len(models.Models)).Msg("LLM models available")
	} else {
		log.Warn().Msg("LLM returned zero models")
	}
}

// Analyzer exposes the configured pipeline.
func (a *App) Analyzer() *analysis.Analyzer { return a.analyzer }

// Run analyzes one input.
func (a *App) Run(ctx context.Context, in analysis.Input) (analysis.Result, error) {
	return a.analyzer.Run(ctx, in)
}

func pickNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
