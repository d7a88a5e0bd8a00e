// Command openai-stub serves a minimal OpenAI-compatible API that answers
// classification prompts deterministically with the rule-based scorer. It
// lets the remote scorer run end to end without a real model.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/factlens/internal/score"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	log.Info().Str("addr", addr).Str("model", model).Msg("openai-stub listening")
	if err := http.ListenAndServe(addr, newMux(model)); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}

func newMux(model string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		sys, user := "", ""
		for _, m := range req.Messages {
			switch m.Role {
			case "system":
				sys = m.Content
			case "user":
				user = m.Content
			}
		}
		if !strings.Contains(strings.ToLower(sys), "classif") {
			http.Error(w, "unexpected system", http.StatusBadRequest)
			return
		}
		content := classify(user)
		log.Debug().Str("model", req.Model).Str("reply", content).Msg("classified")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "stub",
			"object": "chat.completion",
			"model":  model,
			"choices": []map[string]any{
				{"index": 0, "finish_reason": "stop", "message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	})
	return mux
}

// classify answers with the rule-based verdict for the text after "Text:".
// Borderline maps to the closer of the two labels since the classifier
// protocol only knows Fake and Reliable.
func classify(user string) string {
	text := user
	if i := strings.Index(user, "Text:"); i >= 0 {
		text = user[i+len("Text:"):]
	}
	v := score.RuleBased{}.Score(context.Background(), strings.TrimSpace(text))
	label, conf := "Reliable", v.ReliableScore
	if v.FakeScore > v.ReliableScore {
		label, conf = "Fake", v.FakeScore
	}
	b, _ := json.Marshal(map[string]any{"label": label, "confidence": conf})
	return string(b)
}
