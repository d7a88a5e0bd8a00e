package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// MinContentChars is the length the normalized content must exceed for an
// extraction to count as successful.
const MinContentChars = 100

const (
	// NoTitle is used when the page has no <title> element.
	NoTitle = "No title found"
	// ErrorTitle is the title of a failed extraction.
	ErrorTitle = "Error"
)

// ErrExtractionTooShort marks pages whose extracted content is at most
// MinContentChars long.
var ErrExtractionTooShort = errors.New("extracted content too short")

// Article is the outcome of reducing a page to a title and body text.
// Succeeded is true iff Content has more than MinContentChars characters.
type Article struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Succeeded   bool   `json:"succeeded"`
	ErrorDetail string `json:"error_detail,omitempty"`

	err error
}

// Err reports why the extraction did not succeed, or nil.
func (a Article) Err() error {
	if a.Succeeded {
		return nil
	}
	if a.err != nil {
		return a.err
	}
	return ErrExtractionTooShort
}

// Failed builds the article returned for any fetch or parse failure.
func Failed(err error) Article {
	return Article{Title: ErrorTitle, ErrorDetail: err.Error(), err: err}
}

// NewArticle normalizes content and applies the success rule.
func NewArticle(title, content string) Article {
	content = NormalizeWhitespace(content)
	n := utf8.RuneCountInString(content)
	a := Article{Title: title, Content: content, Succeeded: n > MinContentChars}
	if !a.Succeeded {
		a.err = ErrExtractionTooShort
		a.ErrorDetail = fmt.Sprintf("%s: %d characters", ErrExtractionTooShort, n)
	}
	return a
}

// FromHTML extracts the title and body text of a page. The body is the text
// of the first <article> when present, otherwise the text of every <p> in
// document order joined by single spaces.
func FromHTML(input []byte) Article {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil {
		return Failed(fmt.Errorf("parse html: %w", err))
	}

	title := NoTitle
	if t := findFirst(node, "title"); t != nil {
		title = strings.TrimSpace(textOf(t))
	}

	var content string
	if art := findFirst(node, "article"); art != nil {
		content = textOf(art)
	} else {
		paras := findAll(node, "p")
		parts := make([]string, 0, len(paras))
		for _, p := range paras {
			parts = append(parts, textOf(p))
		}
		content = strings.Join(parts, " ")
	}
	return NewArticle(title, content)
}

func findFirst(n *html.Node, tag string) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(n)
	return res
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
			out = append(out, cur)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(n)
	return out
}

// textOf concatenates the text nodes under n. Script and style bodies are
// not text content and are skipped.
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		switch cur.Type {
		case html.TextNode:
			b.WriteString(cur.Data)
			return
		case html.ElementNode:
			switch strings.ToLower(cur.Data) {
			case "script", "style", "noscript", "template":
				return
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// NormalizeWhitespace collapses every whitespace run to a single space and
// trims both ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
