// Package score maps text to a credibility verdict. Two strategies share the
// Scorer interface: a keyword/feature rule set and a remote chat-model
// classifier.
package score

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperifyio/factlens/internal/cache"
	"github.com/hyperifyio/factlens/internal/llm"
)

// Label is the categorical outcome of scoring.
type Label string

const (
	Reliable   Label = "Reliable"
	Fake       Label = "Fake"
	Borderline Label = "Borderline"
	Error      Label = "Error"
)

// Display returns the human-facing wording for the label.
func (l Label) Display() string {
	switch l {
	case Fake:
		return "Fake News"
	case Borderline:
		return "Borderline/Uncertain"
	default:
		return string(l)
	}
}

// Color is a presentation hint: red for fake, green for reliable, orange
// otherwise.
func (l Label) Color() string {
	switch l {
	case Fake:
		return "red"
	case Reliable:
		return "green"
	default:
		return "orange"
	}
}

// Verdict is a label plus its confidence and the per-label score split.
// FakeScore+ReliableScore is 1 whenever Label is not Error.
type Verdict struct {
	Label         Label   `json:"label"`
	Confidence    float64 `json:"confidence"`
	FakeScore     float64 `json:"fake_score"`
	ReliableScore float64 `json:"reliable_score"`
	ErrorDetail   string  `json:"error_detail,omitempty"`

	err error
}

// Err returns the failure behind an Error verdict, or nil.
func (v Verdict) Err() error {
	if v.Label != Error {
		return nil
	}
	if v.err != nil {
		return v.err
	}
	return ErrClassificationService
}

// ErrClassificationService wraps transport and parse failures of the remote
// classifier.
var ErrClassificationService = errors.New("classification service error")

func errorVerdict(err error) Verdict {
	return Verdict{Label: Error, ErrorDetail: err.Error(), err: err}
}

// Scorer assigns a credibility verdict to text. Implementations report
// failures through an Error verdict and never panic or return errors.
type Scorer interface {
	Score(ctx context.Context, text string) Verdict
}

// Strategy names accepted by New.
const (
	StrategyRule   = "rule"
	StrategyRemote = "remote"
)

// Options selects and configures a Scorer.
type Options struct {
	Strategy string
	// Remote classifier settings; ignored by the rule strategy.
	Client       llm.Client
	Model        string
	Cache        *cache.LLMCache
	SystemPrompt string
	Timeout      time.Duration
}

// New builds the Scorer named by o.Strategy. An empty strategy selects the
// rule-based scorer.
func New(o Options) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(o.Strategy)) {
	case "", StrategyRule:
		return RuleBased{}, nil
	case StrategyRemote:
		if o.Client == nil {
			return nil, errors.New("remote scorer: llm client is required")
		}
		if strings.TrimSpace(o.Model) == "" {
			return nil, errors.New("remote scorer: model is required")
		}
		return &RemoteClassifier{
			Client:       o.Client,
			Model:        o.Model,
			Cache:        o.Cache,
			SystemPrompt: o.SystemPrompt,
			Timeout:      o.Timeout,
		}, nil
	default:
		return nil, fmt.Errorf("unknown scorer strategy %q", o.Strategy)
	}
}
