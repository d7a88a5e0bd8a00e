package app

import "time"

// Defaults applied when neither flags, environment nor a config file set a
// value.
const (
	DefaultScorer            = "rule"
	DefaultExtractor         = "heuristic"
	DefaultFetchTimeout      = 10 * time.Second
	DefaultClassifierTimeout = 30 * time.Second
	DefaultCacheEntries      = 256
)

// Config holds runtime configuration for the application.
type Config struct {
	// Strategies
	Scorer    string
	Extractor string

	// LLM classifier, used only by the remote scorer
	LLMBaseURL        string
	LLMModel          string
	LLMAPIKey         string
	SystemPrompt      string
	ClassifierTimeout time.Duration
	CacheEntries      int

	// Fetching
	FetchTimeout time.Duration
	UserAgent    string

	// SkipPreflight disables the model listing performed by New when the
	// remote scorer is selected.
	SkipPreflight bool
	Verbose       bool
}

// Defaults returns a Config populated with the default values.
func Defaults() Config {
	return Config{
		Scorer:            DefaultScorer,
		Extractor:         DefaultExtractor,
		FetchTimeout:      DefaultFetchTimeout,
		ClassifierTimeout: DefaultClassifierTimeout,
		CacheEntries:      DefaultCacheEntries,
	}
}
