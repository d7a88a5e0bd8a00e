package score

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/factlens/internal/cache"
	"github.com/hyperifyio/factlens/internal/llm"
)

const (
	// MaxClassifierChars caps how much text is sent to the classifier.
	MaxClassifierChars = 1000
	// DefaultFakeConfidence and DefaultReliableConfidence apply when the
	// service names a label without a usable numeric score.
	DefaultFakeConfidence     = 0.9
	DefaultReliableConfidence = 0.95
	defaultRemoteTimeout      = 30 * time.Second
)

const systemMessage = "You are a news credibility classifier. Classify the text as \"Fake\" or \"Reliable\". Respond with strict JSON only: {\"label\":\"Fake\"|\"Reliable\",\"confidence\":number between 0 and 1}."

// RemoteClassifier delegates classification to an OpenAI-compatible chat
// model.
type RemoteClassifier struct {
	Client llm.Client
	Model  string
	// Cache, when set, memoizes replies per model and prompt.
	Cache *cache.LLMCache
	// SystemPrompt, when non-empty, overrides the default system message.
	SystemPrompt string
	// Timeout bounds one classification call. Zero means 30s.
	Timeout time.Duration
}

func (r *RemoteClassifier) Score(ctx context.Context, text string) Verdict {
	if r.Client == nil || strings.TrimSpace(r.Model) == "" {
		return errorVerdict(fmt.Errorf("%w: classifier not configured", ErrClassificationService))
	}
	sys := systemMessage
	if strings.TrimSpace(r.SystemPrompt) != "" {
		sys = r.SystemPrompt
	}
	user := buildUserMessage(text)
	key := cache.KeyFrom(r.Model, sys+"\n\n"+user)
	if raw, ok := r.Cache.Get(ctx, key); ok {
		return parseReply(string(raw))
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := r.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sys},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.0,
		N:           1,
	})
	if err != nil {
		log.Warn().Err(err).Str("model", r.Model).Msg("classifier call failed")
		return errorVerdict(fmt.Errorf("%w: %v", ErrClassificationService, err))
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return errorVerdict(fmt.Errorf("%w: empty response", ErrClassificationService))
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	r.Cache.Save(ctx, key, []byte(content))

	v := parseReply(content)
	log.Debug().Str("model", r.Model).Str("label", string(v.Label)).Float64("confidence", v.Confidence).Dur("duration", time.Since(start)).Msg("classified text")
	return v
}

func buildUserMessage(text string) string {
	var sb strings.Builder
	sb.WriteString("Classify the following news text as Fake or Reliable and give your confidence.\n\nText:\n")
	sb.WriteString(truncateRunes(text, MaxClassifierChars))
	return sb.String()
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

type classifierReply struct {
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence"`
}

// parseReply reads a structured reply when possible and otherwise falls back
// to looking for the word "fake" anywhere in the text. A structured reply
// whose label is neither Fake nor Reliable is a classification failure.
func parseReply(content string) Verdict {
	var rep classifierReply
	if err := llm.DecodeJSON(content, &rep); err == nil && strings.TrimSpace(rep.Label) != "" {
		label, ok := labelFrom(rep.Label)
		if !ok {
			return errorVerdict(fmt.Errorf("%w: unrecognized label %q", ErrClassificationService, rep.Label))
		}
		return verdictFor(label, confidenceFrom(rep.Confidence, label))
	}
	if strings.Contains(strings.ToLower(content), "fake") {
		return verdictFor(Fake, DefaultFakeConfidence)
	}
	return verdictFor(Reliable, DefaultReliableConfidence)
}

func labelFrom(s string) (Label, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, "fake"), strings.Contains(s, "unreliable"), strings.Contains(s, "not reliable"):
		return Fake, true
	case strings.Contains(s, "reliable"), strings.Contains(s, "real"), strings.Contains(s, "credible"):
		return Reliable, true
	}
	return "", false
}

// confidenceFrom accepts a 0..1 probability or a 0..100 percentage.
func confidenceFrom(c *float64, label Label) float64 {
	def := DefaultReliableConfidence
	if label == Fake {
		def = DefaultFakeConfidence
	}
	if c == nil {
		return def
	}
	v := *c
	if v > 1 && v <= 100 {
		v /= 100
	}
	if v < 0 || v > 1 {
		return def
	}
	return v
}

func verdictFor(label Label, confidence float64) Verdict {
	v := Verdict{Label: label, Confidence: confidence}
	if label == Fake {
		v.FakeScore, v.ReliableScore = confidence, 1-confidence
	} else {
		v.ReliableScore, v.FakeScore = confidence, 1-confidence
	}
	return v
}
