package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lwfront/internal/diag"
	"lwfront/internal/diagfmt"
	"lwfront/internal/observ"
	"lwfront/internal/source"
	"lwfront/internal/version"
)

// renderDiagnostics prints bag in one of the diagnostic formats.
func (a *app) renderDiagnostics(cmd *cobra.Command, w io.Writer, format string, bag *diag.Bag, fs *source.FileSet) error {
	switch format {
	case "pretty":
		opts, err := a.prettyOpts(cmd, w)
		if err != nil {
			return err
		}
		diagfmt.Pretty(w, bag, fs, opts)
		return nil
	case "short":
		if out := diag.FormatGoldenDiagnostics(bag.Items(), fs, false); out != "" {
			_, err := fmt.Fprintln(w, out)
			return err
		}
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	case "sarif":
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "lwfront",
			ToolVersion:    version.Version().String(),
			InvocationArgs: cmd.Flags().Args(),
		})
	default:
		return fmt.Errorf("unknown diagnostics format %q (expected pretty|json|sarif|short)", format)
	}
}

// printTimings writes one phase table per file.
func printTimings(w io.Writer, path string, report *observ.Report) {
	if report == nil || len(report.Phases) == 0 {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "timings %s:\n", path)
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-10s %8.3f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-10s %8.3f ms\n", "total", report.TotalMS)
	_, _ = io.WriteString(w, sb.String()) //nolint:errcheck
}
