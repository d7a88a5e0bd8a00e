package analysis

import "strings"

// InputKind tags the raw input union.
type InputKind int

const (
	PastedText InputKind = iota
	URLReference
)

func (k InputKind) String() string {
	if k == URLReference {
		return "url"
	}
	return "text"
}

// Input is what a caller hands to Run: either pasted text or a URL.
type Input struct {
	Kind  InputKind
	Value string
}

// Text wraps pasted article text.
func Text(s string) Input { return Input{Kind: PastedText, Value: s} }

// URL wraps an article URL.
func URL(s string) Input { return Input{Kind: URLReference, Value: strings.TrimSpace(s)} }

// Guess classifies a single line of user input: values starting with an
// http(s) scheme are URLs, everything else is pasted text.
func Guess(s string) Input {
	t := strings.TrimSpace(s)
	lower := strings.ToLower(t)
	if (strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")) && !strings.ContainsAny(t, " \t\n") {
		return URL(t)
	}
	return Text(s)
}
