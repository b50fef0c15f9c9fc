package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lwfront/internal/diagfmt"
	"lwfront/internal/driver"
)

// Флаг, заданный явно, сильнее конфига; конфиг сильнее значения по умолчанию.

func (a *app) maxDiagnostics(cmd *cobra.Command) (int, error) {
	flags := cmd.Root().PersistentFlags()
	n, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && a.cfg.Diagnostics.Max > 0 {
		n = a.cfg.Diagnostics.Max
	}
	return n, nil
}

func (a *app) colorMode(cmd *cobra.Command) (string, error) {
	flags := cmd.Root().PersistentFlags()
	mode, err := flags.GetString("color")
	if err != nil {
		return "", fmt.Errorf("failed to get color flag: %w", err)
	}
	if !flags.Changed("color") && a.cfg.Diagnostics.Color != "" {
		mode = a.cfg.Diagnostics.Color
	}
	switch mode {
	case "auto", "on", "off":
		return mode, nil
	}
	return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}

func (a *app) useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	mode, err := a.colorMode(cmd)
	if err != nil {
		return false, err
	}
	return mode == "on" || (mode == "auto" && isTerminal(w)), nil
}

func (a *app) jobs(cmd *cobra.Command) (int, error) {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return 0, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !cmd.Flags().Changed("jobs") && a.cfg.Parse.Jobs > 0 {
		jobs = a.cfg.Parse.Jobs
	}
	return jobs, nil
}

// diagFormat reads --format of commands that print diagnostics.
func (a *app) diagFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	if !cmd.Flags().Changed("format") && a.cfg.Diagnostics.Format != "" {
		format = a.cfg.Diagnostics.Format
	}
	return strings.ToLower(format), nil
}

func (a *app) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	maxDiag, err := a.maxDiagnostics(cmd)
	if err != nil {
		return driver.Options{}, err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return driver.Options{MaxDiagnostics: maxDiag, Timings: timings}, nil
}

func (a *app) prettyOpts(cmd *cobra.Command, w io.Writer) (diagfmt.PrettyOpts, error) {
	color, err := a.useColor(cmd, w)
	if err != nil {
		return diagfmt.PrettyOpts{}, err
	}
	return diagfmt.PrettyOpts{
		Color:       color,
		Context:     1,
		PathMode:    diagfmt.PathModeAuto,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	}, nil
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}
