package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/a-h/templ"

	"chateval/internal/runner"
)

// ReportPage builds the HTML report component for one run.
func ReportPage(results runner.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		esc := templ.EscapeString[string]
		if _, err := fmt.Fprintf(w,
			"<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Evaluation run %s</title>\n",
			esc(results.RunID)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, reportStyle); err != nil {
			return err
		}
		summary := results.Summary
		if _, err := fmt.Fprintf(w,
			"</head>\n<body>\n<h1>Evaluation run %s</h1>\n<p>Test dir: %s</p>\n"+
				"<p>%d cases: %d passed, %d failed, %d errored (%s%% pass rate)</p>\n",
			esc(results.RunID), esc(results.TestDir),
			summary.CasesTotal, summary.CasesPassed, summary.CasesFailed, summary.CasesErrored,
			esc(formatPassRate(summary.PassRate))); err != nil {
			return err
		}
		if _, err := io.WriteString(w,
			"<table>\n<tr><th>Case</th><th>Outcome</th><th>Metric</th><th>Score</th><th>Threshold</th><th>Reason</th></tr>\n"); err != nil {
			return err
		}
		for _, result := range results.Cases {
			outcome := "fail"
			if result.Pass {
				outcome = "pass"
			}
			if result.Errored() {
				if _, err := fmt.Fprintf(w,
					"<tr><td>%s</td><td class=\"error\">error</td><td colspan=\"4\">%s</td></tr>\n",
					esc(result.ID), esc(result.Err)); err != nil {
					return err
				}
				continue
			}
			for _, detail := range result.Metrics {
				if _, err := fmt.Fprintf(w,
					"<tr><td>%s</td><td class=\"%s\">%s</td><td>%s</td><td>%.2f</td><td>%.2f</td><td>%s</td></tr>\n",
					esc(result.ID), outcome, outcome,
					esc(detail.Name), detail.Score, detail.Threshold, esc(detail.Reason)); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, "</table>\n"); err != nil {
			return err
		}
		if len(results.Skipped) > 0 {
			if _, err := io.WriteString(w, "<h2>Skipped files</h2>\n<ul>\n"); err != nil {
				return err
			}
			for _, skipped := range results.Skipped {
				if _, err := fmt.Fprintf(w, "<li>%s: %s</li>\n",
					esc(skipped.Path), esc(skipped.Reason)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</ul>\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

const reportStyle = "<style>\n" +
	"body { font-family: sans-serif; margin: 2em; }\n" +
	"table { border-collapse: collapse; }\n" +
	"th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; }\n" +
	"td.pass { color: #0a0; }\n" +
	"td.fail { color: #c00; }\n" +
	"td.error { color: #c60; }\n" +
	"</style>\n"

// RenderHTML renders the report component into a string.
func RenderHTML(results runner.Results) (string, error) {
	var builder strings.Builder
	if err := ReportPage(results).Render(context.Background(), &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WriteHTMLFile renders the report and writes it to path.
func WriteHTMLFile(path string, results runner.Results) error {
	html, err := RenderHTML(results)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0o644)
}
