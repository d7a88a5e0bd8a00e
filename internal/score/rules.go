package score

import (
	"context"
	"strings"

	"github.com/hyperifyio/factlens/internal/features"
	"github.com/hyperifyio/factlens/internal/textseg"
)

// FakeIndicators and ReliableIndicators are matched as substrings of the
// lower-cased text; every occurrence weighs IndicatorWeight.
var (
	FakeIndicators = []string{
		"miracle cure", "secret they don't want you to know", "conspiracy",
		"cover-up", "big pharma", "mainstream media hiding",
	}
	ReliableIndicators = []string{
		"according to study", "research shows", "experts say", "official report",
		"peer-reviewed", "clinical trial", "scientific study",
	}
)

const (
	IndicatorWeight   = 3
	ExclamationWeight = 2
	// Threshold is the exclusive ratio a side must exceed to win.
	Threshold = 0.6
)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'")

// RuleBased scores text by counting indicator phrases and penalizing
// exclamation marks that outnumber sentences.
type RuleBased struct{}

func (RuleBased) Score(_ context.Context, text string) Verdict {
	text = textseg.Normalize(text)
	lower := apostrophes.Replace(textseg.Lower(text))

	fakeRaw := IndicatorWeight * countAll(lower, FakeIndicators)
	reliableRaw := IndicatorWeight * countAll(lower, ReliableIndicators)

	fs := features.Extract(text)
	if fs.ExclamationCount > fs.SentenceCount {
		fakeRaw += ExclamationWeight
	}
	return Decide(fakeRaw, reliableRaw)
}

// Decide turns raw fake/reliable weights into a verdict. With no signal on
// either side both ratios are 0.5 and the verdict is Borderline.
func Decide(fakeRaw, reliableRaw int) Verdict {
	fakeRatio, reliableRatio := 0.5, 0.5
	if total := fakeRaw + reliableRaw; total > 0 {
		fakeRatio = float64(fakeRaw) / float64(total)
		reliableRatio = float64(reliableRaw) / float64(total)
	}
	v := Verdict{FakeScore: fakeRatio, ReliableScore: reliableRatio}
	switch {
	case fakeRatio > Threshold:
		v.Label, v.Confidence = Fake, fakeRatio
	case reliableRatio > Threshold:
		v.Label, v.Confidence = Reliable, reliableRatio
	default:
		v.Label, v.Confidence = Borderline, max(fakeRatio, reliableRatio)
	}
	return v
}

func countAll(s string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		n += strings.Count(s, p)
	}
	return n
}
