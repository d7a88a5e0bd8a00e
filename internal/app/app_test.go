package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/hyperifyio/factlens/internal/analysis"
	"github.com/hyperifyio/factlens/internal/extract"
	"github.com/hyperifyio/factlens/internal/fetch"
	"github.com/hyperifyio/factlens/internal/score"
)

const reliableText = "According to study data released on Monday, research shows that the new " +
	"transit plan cut commute times. Officials confirmed the figures in a peer-reviewed report."

type stubPages struct {
	body string
	err  error
}

func (s stubPages) Get(_ context.Context, url string) (fetch.Page, error) {
	if s.err != nil {
		return fetch.Page{}, s.err
	}
	return fetch.Page{URL: url, FinalURL: url, Body: []byte(s.body)}, nil
}

func TestNew_RuleScorerPastedText(t *testing.T) {
	a, err := New(context.Background(), Defaults())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := a.Run(context.Background(), analysis.Text(reliableText))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Verdict.Label != score.Reliable {
		t.Fatalf("label=%s, want Reliable", res.Verdict.Label)
	}
	if res.Title != analysis.PastedTitle {
		t.Fatalf("title=%q", res.Title)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(context.Background(), Config{Scorer: "remote"}); err == nil {
		t.Fatalf("expected validation error for remote scorer without model")
	}
}

func TestNew_URLInputUsesConfiguredExtractor(t *testing.T) {
	page := "<html><head><title>Transit</title></head><body><article><p>" + reliableText + "</p></article></body></html>"
	a, err := New(context.Background(), Config{Extractor: "readability"}, Options{Pages: stubPages{body: page}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := a.Run(context.Background(), analysis.URL("https://news.example/transit"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Source != "https://news.example/transit" || res.Verdict.Label != score.Reliable {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestNew_URLFetchFailure(t *testing.T) {
	a, err := New(context.Background(), Defaults(), Options{Pages: stubPages{err: fetch.ErrNetwork}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = a.Run(context.Background(), analysis.URL("https://down.example"))
	var xe *analysis.ExtractionError
	if !errors.As(err, &xe) || !errors.Is(err, fetch.ErrNetwork) {
		t.Fatalf("err=%v, want ExtractionError wrapping ErrNetwork", err)
	}
	if xe.Article.Title != extract.ErrorTitle {
		t.Fatalf("article title=%q", xe.Article.Title)
	}
}

// End to end through the real OpenAI-compatible client against a local
// server: preflight lists models, then one classification call is made.
func TestNew_RemoteScorerAgainstOpenAICompatibleServer(t *testing.T) {
	var modelCalls, chatCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/models"):
			atomic.AddInt32(&modelCalls, 1)
			_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"classifier","object":"model"}]}`))
		case strings.HasSuffix(r.URL.Path, "/chat/completions"):
			atomic.AddInt32(&chatCalls, 1)
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("Authorization=%q", got)
			}
			resp := map[string]any{
				"id":     "cmpl-1",
				"object": "chat.completion",
				"model":  "classifier",
				"choices": []map[string]any{{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": `{"label":"Fake","confidence":0.8}`,
					},
				}},
			}
			_ = json.NewEncoder(w).Encode(resp)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := Defaults()
	cfg.Scorer = "remote"
	cfg.LLMBaseURL = srv.URL + "/v1"
	cfg.LLMModel = "classifier"
	cfg.LLMAPIKey = "test-key"
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := a.Run(context.Background(), analysis.Text(reliableText))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Verdict.Label != score.Fake || res.Verdict.Confidence != 0.8 {
		t.Fatalf("verdict=%+v, want Fake 0.8", res.Verdict)
	}
	// Same text again is answered from the cache
	if _, err := a.Analyzer().Analyze(context.Background(), "again", reliableText); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got := atomic.LoadInt32(&modelCalls); got != 1 {
		t.Fatalf("model list calls=%d, want 1", got)
	}
	if got := atomic.LoadInt32(&chatCalls); got != 1 {
		t.Fatalf("chat calls=%d, want 1", got)
	}
}

func TestNew_RemoteScorerUnreachableYieldsErrorVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := Defaults()
	cfg.Scorer = "remote"
	cfg.LLMBaseURL = srv.URL + "/v1"
	cfg.LLMModel = "classifier"
	cfg.SkipPreflight = true
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := a.Run(context.Background(), analysis.Text(reliableText))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Verdict.Label != score.Error || !errors.Is(res.Verdict.Err(), score.ErrClassificationService) {
		t.Fatalf("verdict=%+v, want Error", res.Verdict)
	}
}

func TestVersionString(t *testing.T) {
	if s := VersionString(); !strings.HasPrefix(s, "factlens "+BuildVersion) {
		t.Fatalf("VersionString=%q", s)
	}
}
