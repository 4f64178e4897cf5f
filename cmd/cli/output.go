package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/yurifrl/secstmt/pkg/config"
	"github.com/yurifrl/secstmt/pkg/render"
	"github.com/yurifrl/secstmt/pkg/service"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

// printResults writes successful results to out in the configured format and
// diagnostics to errOut. It returns the number of failed results.
func printResults(out, errOut io.Writer, cfg *config.Config, results []*service.Result) (int, error) {
	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
			fmt.Fprintln(errOut, errorStyle.Render(res.Label+": "+res.Message))
			continue
		}
		var err error
		switch cfg.Output {
		case config.OutputJSON:
			err = render.JSON(out, res.Envelopes)
		case config.OutputSummary:
			render.Summary(out, res.Label, res.Report)
		case config.OutputCSV:
			_, err = fmt.Fprintf(out, "%s -> %s\n", res.File, res.Output)
		default:
			err = render.Pretty(out, res.Envelopes, os.Getenv("NO_COLOR") == "")
		}
		if err != nil {
			return failed, err
		}
	}
	return failed, nil
}
