package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/factlens/internal/extract"
	"github.com/hyperifyio/factlens/internal/score"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Scorer    string `yaml:"scorer" json:"scorer"`
	Extractor string `yaml:"extractor" json:"extractor"`

	LLM struct {
		BaseURL      string        `yaml:"base" json:"base"`
		Model        string        `yaml:"model" json:"model"`
		APIKey       string        `yaml:"key" json:"key"`
		SystemPrompt string        `yaml:"systemPrompt" json:"systemPrompt"`
		Timeout      time.Duration `yaml:"timeout" json:"timeout"`
		CacheEntries int           `yaml:"cacheEntries" json:"cacheEntries"`
	} `yaml:"llm" json:"llm"`

	Fetch struct {
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
		UserAgent string        `yaml:"userAgent" json:"userAgent"`
	} `yaml:"fetch" json:"fetch"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc into cfg for any fields that are
// unset or still at their default. Flags should already have been parsed;
// the file supplies defaults while explicit flags are preserved.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.Scorer == "" || cfg.Scorer == DefaultScorer) && fc.Scorer != "" {
		cfg.Scorer = fc.Scorer
	}
	if (cfg.Extractor == "" || cfg.Extractor == DefaultExtractor) && fc.Extractor != "" {
		cfg.Extractor = fc.Extractor
	}

	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.SystemPrompt == "" && fc.LLM.SystemPrompt != "" {
		cfg.SystemPrompt = fc.LLM.SystemPrompt
	}
	if (cfg.ClassifierTimeout == 0 || cfg.ClassifierTimeout == DefaultClassifierTimeout) && fc.LLM.Timeout > 0 {
		cfg.ClassifierTimeout = fc.LLM.Timeout
	}
	if (cfg.CacheEntries == 0 || cfg.CacheEntries == DefaultCacheEntries) && fc.LLM.CacheEntries > 0 {
		cfg.CacheEntries = fc.LLM.CacheEntries
	}

	if (cfg.FetchTimeout == 0 || cfg.FetchTimeout == DefaultFetchTimeout) && fc.Fetch.Timeout > 0 {
		cfg.FetchTimeout = fc.Fetch.Timeout
	}
	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
// LLM settings are only required by the remote scorer.
func ValidateConfig(cfg Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Scorer)) {
	case "", score.StrategyRule:
	case score.StrategyRemote:
		if strings.TrimSpace(cfg.LLMModel) == "" {
			return errors.New("config: llm.model is required for the remote scorer (or set LLM_MODEL)")
		}
	default:
		return fmt.Errorf("config: unknown scorer %q (want %s or %s)", cfg.Scorer, score.StrategyRule, score.StrategyRemote)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Extractor)) {
	case "", extract.StrategyHeuristic, extract.StrategyReadability:
	default:
		return fmt.Errorf("config: unknown extractor %q (want %s or %s)", cfg.Extractor, extract.StrategyHeuristic, extract.StrategyReadability)
	}
	if cfg.FetchTimeout < 0 || cfg.ClassifierTimeout < 0 {
		return errors.New("config: negative timeouts are not allowed")
	}
	if cfg.CacheEntries < 0 {
		return errors.New("config: negative cache size is not allowed")
	}
	return nil
}
