package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigFile_YAML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "factlens.yaml")
	body := `scorer: remote
extractor: readability
llm:
  base: http://localhost:8080/v1
  model: classifier
  key: k
  timeout: 5s
  cacheEntries: 32
fetch:
  timeout: 4s
  userAgent: test-agent
verbose: true
`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if fc.Scorer != "remote" || fc.Extractor != "readability" {
		t.Fatalf("strategies not parsed: %+v", fc)
	}
	if fc.LLM.Model != "classifier" || fc.LLM.Timeout != 5*time.Second || fc.LLM.CacheEntries != 32 {
		t.Fatalf("llm section not parsed: %+v", fc.LLM)
	}
	if fc.Fetch.Timeout != 4*time.Second || fc.Fetch.UserAgent != "test-agent" || !fc.Verbose {
		t.Fatalf("fetch section not parsed: %+v", fc)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "factlens.json")
	if err := os.WriteFile(p, []byte(`{"scorer":"rule","llm":{"model":"m"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if fc.Scorer != "rule" || fc.LLM.Model != "m" {
		t.Fatalf("unexpected %+v", fc)
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("scorer: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfigFile(p); err == nil {
		t.Fatalf("expected parse error")
	}
}

// Values still at their defaults are replaced by the file; explicit flag
// values survive.
func TestApplyFileConfig_Precedence(t *testing.T) {
	var fc FileConfig
	fc.Scorer = "remote"
	fc.Extractor = "readability"
	fc.LLM.Model = "file-model"
	fc.Fetch.Timeout = 2 * time.Second

	cfg := Defaults()
	cfg.LLMModel = "flag-model"
	cfg.Extractor = "heuristic"
	ApplyFileConfig(&cfg, fc)

	if cfg.Scorer != "remote" {
		t.Fatalf("Scorer=%q, want file value", cfg.Scorer)
	}
	if cfg.LLMModel != "flag-model" {
		t.Fatalf("LLMModel=%q, want flag value", cfg.LLMModel)
	}
	if cfg.FetchTimeout != 2*time.Second {
		t.Fatalf("FetchTimeout=%v, want file value", cfg.FetchTimeout)
	}
	// heuristic equals the default, so the file may replace it
	if cfg.Extractor != "readability" {
		t.Fatalf("Extractor=%q, want readability", cfg.Extractor)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Defaults(), ""},
		{"empty", Config{}, ""},
		{"remote needs model", Config{Scorer: "remote"}, "llm.model"},
		{"remote with model", Config{Scorer: "Remote", LLMModel: "m"}, ""},
		{"unknown scorer", Config{Scorer: "bayes"}, "unknown scorer"},
		{"unknown extractor", Config{Extractor: "magic"}, "unknown extractor"},
		{"negative timeout", Config{FetchTimeout: -time.Second}, "negative"},
		{"negative cache", Config{CacheEntries: -1}, "negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateConfig(tc.cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err=%v, want containing %q", err, tc.wantErr)
			}
		})
	}
}
