package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when they are set. This lets env take precedence over values coming from a
// config file while flags remain highest precedence.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLMAPIKey = v
	}
	if v := os.Getenv("FACTLENS_SCORER"); v != "" {
		cfg.Scorer = v
	}
	if v := os.Getenv("FACTLENS_EXTRACTOR"); v != "" {
		cfg.Extractor = v
	}
	if d, ok := envDuration("FETCH_TIMEOUT"); ok {
		cfg.FetchTimeout = d
	}
	if d, ok := envDuration("LLM_TIMEOUT"); ok {
		cfg.ClassifierTimeout = d
	}
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("LLM_CACHE_ENTRIES"))); err == nil && n > 0 {
		cfg.CacheEntries = n
	}
	if b, ok := envBool("VERBOSE"); ok {
		cfg.Verbose = b
	}
}

func envDuration(key string) (time.Duration, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
