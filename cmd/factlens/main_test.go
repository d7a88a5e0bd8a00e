package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperifyio/factlens/internal/analysis"
	"github.com/hyperifyio/factlens/internal/score"
)

const reliableText = "According to study data released on Monday, research shows that the new " +
	"transit plan cut commute times. Officials confirmed the figures in a peer-reviewed report."

const fakeText = "SHOCKING! The miracle cure they don't want you to know about! Big pharma is hiding it from everyone."

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"FACTLENS_SCORER", "FACTLENS_EXTRACTOR", "LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY", "FETCH_TIMEOUT", "VERBOSE"} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyze_TextFlagJSON(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, "", "analyze", "--text", reliableText, "--format", "json")
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	var res analysis.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if res.Verdict.Label != score.Reliable || res.Title != analysis.PastedTitle {
		t.Fatalf("unexpected result %+v", res)
	}
	if !strings.Contains(out, `"reliable_score"`) {
		t.Fatalf("expected snake_case keys:\n%s", out)
	}
}

func TestAnalyze_StdinTextFormat(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, fakeText, "analyze")
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Verdict:    Fake News") {
		t.Fatalf("expected Fake verdict:\n%s", out)
	}
}

func TestAnalyze_TooShort(t *testing.T) {
	clearEnv(t)
	_, err := execute(t, "", "analyze", "--text", "too short")
	if err == nil || !strings.Contains(err.Error(), "at least 50 characters") {
		t.Fatalf("err=%v, want too-short message", err)
	}
}

func TestAnalyze_URLAndExports(t *testing.T) {
	clearEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><head><title>Transit plan</title></head><body><article><p>" + reliableText + "</p></article></body></html>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "r.html")
	pdfPath := filepath.Join(dir, "r.pdf")
	out, err := execute(t, "", "analyze", "--url", srv.URL, "--format", "markdown", "--html", htmlPath, "--pdf", pdfPath)
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "# Transit plan") {
		t.Fatalf("unexpected markdown:\n%s", out)
	}
	page, err := os.ReadFile(htmlPath)
	if err != nil || !bytes.Contains(page, []byte("<h1>Transit plan</h1>")) {
		t.Fatalf("html export missing or wrong: %v\n%s", err, page)
	}
	pdf, err := os.ReadFile(pdfPath)
	if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("pdf export missing: %v", err)
	}
}

func TestAnalyze_URLExtractionFailure(t *testing.T) {
	clearEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()
	_, err := execute(t, "", "analyze", "--url", srv.URL)
	if err == nil || !strings.Contains(err.Error(), "could not extract article content") {
		t.Fatalf("err=%v, want extraction failure", err)
	}
}

func TestAnalyze_RejectsUnknownFormatAndScorer(t *testing.T) {
	clearEnv(t)
	if _, err := execute(t, "", "analyze", "--text", reliableText, "--format", "yaml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
	if _, err := execute(t, "", "--scorer", "bayes", "analyze", "--text", reliableText); err == nil {
		t.Fatalf("expected unknown scorer error")
	}
}

func TestAnalyze_EnvSelectsScorer(t *testing.T) {
	clearEnv(t)
	t.Setenv("FACTLENS_SCORER", "remote")
	// remote without a model fails validation, proving env was read
	if _, err := execute(t, "", "analyze", "--text", reliableText); err == nil || !strings.Contains(err.Error(), "llm.model") {
		t.Fatalf("err=%v, want missing model", err)
	}
	// an explicit flag wins over env
	if out, err := execute(t, "", "--scorer", "rule", "analyze", "--text", reliableText); err != nil {
		t.Fatalf("flag should override env: %v\n%s", err, out)
	}
}

func TestSession_HistoryInOrder(t *testing.T) {
	clearEnv(t)
	stdin := reliableText + "\n\nshort\n" + fakeText + "\n"
	out, err := execute(t, stdin, "session")
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1: Reliable") || !strings.Contains(out, "3: please enter at least") || !strings.Contains(out, "4: Fake News") {
		t.Fatalf("unexpected per-line verdicts:\n%s", out)
	}
	if !strings.Contains(out, "Analyses: 2 (reliable 1, fake 1, borderline 0, error 0)") {
		t.Fatalf("history tally missing:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil || !strings.HasPrefix(out, "factlens ") {
		t.Fatalf("version out=%q err=%v", out, err)
	}
}
