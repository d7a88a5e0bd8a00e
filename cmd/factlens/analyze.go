package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/factlens/internal/analysis"
	"github.com/hyperifyio/factlens/internal/app"
	"github.com/hyperifyio/factlens/internal/report"
)

type analyzeOptions struct {
	text     string
	url      string
	file     string
	format   string
	htmlPath string
	pdfPath  string
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	o := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one article given as text, URL, file or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := o.input(cmd.InOrStdin())
			if err != nil {
				return err
			}
			switch o.format {
			case "text", "json", "markdown":
			default:
				return fmt.Errorf("unknown format %q (want text, json or markdown)", o.format)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := app.New(ctx, root.cfg)
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}

			res, err := a.Run(ctx, in)
			if err != nil {
				return explain(err)
			}
			if err := writeResult(cmd.OutOrStdout(), res, o.format); err != nil {
				return err
			}
			md := report.Markdown(res) + report.Footer(res.Timestamp)
			return export(md, res.Title, o.htmlPath, o.pdfPath)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.text, "text", "", "Article text to analyze")
	f.StringVar(&o.url, "url", "", "Article URL to fetch and analyze")
	f.StringVar(&o.file, "file", "", "Path to a file containing article text")
	f.StringVarP(&o.format, "format", "f", "text", "Output format: text, json or markdown")
	f.StringVar(&o.htmlPath, "html", "", "Also write an HTML report to this path")
	f.StringVar(&o.pdfPath, "pdf", "", "Also write a PDF report to this path")
	cmd.MarkFlagsMutuallyExclusive("text", "url", "file")
	return cmd
}

// input picks the single input source. With no flag set, stdin is read and
// a lone http(s) line is treated as a URL.
func (o *analyzeOptions) input(stdin io.Reader) (analysis.Input, error) {
	switch {
	case o.text != "":
		return analysis.Text(o.text), nil
	case o.url != "":
		return analysis.URL(o.url), nil
	case o.file != "":
		b, err := os.ReadFile(o.file)
		if err != nil {
			return analysis.Input{}, fmt.Errorf("read input: %w", err)
		}
		return analysis.Text(string(b)), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return analysis.Input{}, fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return analysis.Input{}, errors.New("no input: use --text, --url, --file or pipe text on stdin")
	}
	return analysis.Guess(string(b)), nil
}

// explain turns pipeline errors into the messages shown to the user.
func explain(err error) error {
	var xe *analysis.ExtractionError
	switch {
	case errors.Is(err, analysis.ErrInputTooShort):
		return fmt.Errorf("please enter at least %d characters of text to analyze", analysis.MinInputChars)
	case errors.As(err, &xe):
		return fmt.Errorf("could not extract article content from %s: %s", xe.URL, xe.Article.ErrorDetail)
	}
	return err
}

func writeResult(w io.Writer, res analysis.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "markdown":
		_, err := io.WriteString(w, report.Markdown(res))
		return err
	}
	_, err := io.WriteString(w, formatText(res))
	return err
}

func formatText(res analysis.Result) string {
	v := res.Verdict
	var b strings.Builder
	fmt.Fprintf(&b, "Title:      %s\n", res.Title)
	if res.Source != "" {
		fmt.Fprintf(&b, "Source:     %s\n", res.Source)
	}
	fmt.Fprintf(&b, "Verdict:    %s (%s)\n", v.Label.Display(), report.Percent(v.Confidence))
	if v.ErrorDetail != "" {
		fmt.Fprintf(&b, "Detail:     %s\n", v.ErrorDetail)
	}
	fmt.Fprintf(&b, "Scores:     fake %s, reliable %s\n", report.Percent(v.FakeScore), report.Percent(v.ReliableScore))
	fmt.Fprintf(&b, "Length:     %d words, %d characters\n", res.WordCount, res.CharCount)
	f := res.Features
	fmt.Fprintf(&b, "Features:   %d tokens, %d sentences, avg %.1f, %d exclamations, %d sensational\n",
		f.WordCount, f.SentenceCount, f.AvgSentenceLength, f.ExclamationCount, f.SensationalWordCount)
	fmt.Fprintf(&b, "Summary:    %s\n", res.Summary)
	return b.String()
}

// export writes the optional HTML and PDF renderings of md.
func export(md, title, htmlPath, pdfPath string) error {
	if htmlPath != "" {
		page, err := report.HTML(title, md)
		if err != nil {
			return err
		}
		if err := os.WriteFile(htmlPath, page, 0o644); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
	}
	if pdfPath != "" {
		f, err := os.Create(pdfPath)
		if err != nil {
			return fmt.Errorf("create pdf: %w", err)
		}
		if err := report.PDF(md, f); err != nil {
			_ = f.Close()
			return fmt.Errorf("write pdf: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
	}
	return nil
}
