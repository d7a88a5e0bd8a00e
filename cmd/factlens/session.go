package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/factlens/internal/analysis"
	"github.com/hyperifyio/factlens/internal/app"
	"github.com/hyperifyio/factlens/internal/report"
	"github.com/hyperifyio/factlens/internal/session"
)

func newSessionCmd(root *rootOptions) *cobra.Command {
	var htmlPath, pdfPath string
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Analyze one input per stdin line and print the session history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := app.New(ctx, root.cfg)
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}

			sess := session.New()
			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
			line := 0
			for scanner.Scan() {
				line++
				raw := strings.TrimSpace(scanner.Text())
				if raw == "" {
					continue
				}
				res, err := a.Run(ctx, analysis.Guess(raw))
				if err != nil {
					log.Warn().Err(err).Int("line", line).Msg("input skipped")
					fmt.Fprintf(out, "%d: %v\n", line, explain(err))
					continue
				}
				sess.Append(res)
				fmt.Fprintf(out, "%d: %s (%s) %s\n", line, res.Verdict.Label.Display(), report.Percent(res.Verdict.Confidence), res.Title)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			md := report.HistoryMarkdown(sess)
			fmt.Fprintln(out)
			fmt.Fprint(out, md)
			log.Info().Str("session", sess.ID).Int("analyses", sess.Len()).Msg("session finished")
			return export(md+report.Footer(time.Now()), "factlens session "+sess.ID, htmlPath, pdfPath)
		},
	}
	cmd.Flags().StringVar(&htmlPath, "html", "", "Write the session history as HTML to this path")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Write the session history as PDF to this path")
	return cmd
}
