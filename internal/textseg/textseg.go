// Package textseg splits English prose into word and sentence tokens using
// Unicode text segmentation (UAX #29) with a small abbreviation pass on top.
package textseg

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// titles precede a name and never end a sentence.
var titles = map[string]struct{}{
	"mr.": {}, "mrs.": {}, "ms.": {}, "dr.": {}, "prof.": {}, "sen.": {}, "rep.": {},
}

// abbreviations end with a period but may also end a sentence ("said no.",
// "pears, etc."), so they only join a following segment that continues in
// lower case or with a number.
var abbreviations = map[string]struct{}{
	"sr.": {}, "jr.": {}, "st.": {}, "vs.": {}, "etc.": {}, "e.g.": {}, "i.e.": {},
	"u.s.": {}, "u.k.": {}, "inc.": {}, "ltd.": {}, "co.": {}, "corp.": {}, "gen.": {},
	"gov.": {}, "no.": {}, "jan.": {}, "feb.": {}, "aug.": {}, "sept.": {}, "oct.": {},
	"nov.": {}, "dec.": {},
}

// Normalize returns the NFC form of s so that composed and decomposed
// spellings of the same word tokenize identically.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// Lower lower-cases s with English casing rules.
func Lower(s string) string {
	return cases.Lower(language.English).String(s)
}

// Words returns the word tokens of s. Whitespace segments are dropped;
// punctuation segments are kept as their own tokens.
func Words(s string) []string {
	out := make([]string, 0, len(s)/5+1)
	tokens := words.FromString(s)
	for tokens.Next() {
		tok := tokens.Value()
		if isSpace(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Sentences returns the trimmed, non-empty sentences of s in order.
func Sentences(s string) []string {
	var raw []string
	segs := sentences.FromString(s)
	for segs.Next() {
		if seg := strings.TrimSpace(segs.Value()); seg != "" {
			raw = append(raw, seg)
		}
	}
	return mergeAbbreviations(raw)
}

// mergeAbbreviations glues a segment that ends in an abbreviation onto the
// following one ("Dr." + "Smith said so." -> one sentence). Titles always
// join; other abbreviations join only when the next segment starts with a
// lower-case letter or a digit.
func mergeAbbreviations(segs []string) []string {
	out := make([]string, 0, len(segs))
	for i := 0; i < len(segs); i++ {
		seg := segs[i]
		for i+1 < len(segs) && continues(seg, segs[i+1]) {
			i++
			seg += " " + segs[i]
		}
		out = append(out, seg)
	}
	return out
}

func continues(seg, next string) bool {
	fields := strings.Fields(seg)
	if len(fields) == 0 {
		return false
	}
	last := strings.ToLower(fields[len(fields)-1])
	if _, ok := titles[last]; ok {
		return true
	}
	if _, ok := abbreviations[last]; !ok {
		return false
	}
	r, _ := utf8.DecodeRuneInString(next)
	return unicode.IsLower(r) || unicode.IsDigit(r)
}

func isSpace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
