package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lwfront/internal/driver"
	"lwfront/internal/format"
)

func newFmtCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <path> [path...]",
		Short: "Format lw source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFmt(cmd, args)
		},
	}
	cmd.Flags().Bool("check", false, "check if files are properly formatted")
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	cmd.Flags().Int("indent", 4, "spaces per indentation level")
	cmd.Flags().Bool("tabs", false, "indent with tabs")
	return cmd
}

func (a *app) runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return err
	}
	tabs, err := cmd.Flags().GetBool("tabs")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if indent < 1 || indent > 16 {
		return fmt.Errorf("fmt: --indent must be between 1 and 16, got %d", indent)
	}

	parseOpts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}
	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Check:   check,
		Stdout:  writeToStdout,
		Options: format.Options{IndentWidth: indent, UseTabs: tabs},
		Parse:   parseOpts,
	})
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	switch outputFormat {
	case "text":
		if writeToStdout {
			hasErrors, err = a.renderFmtStdout(cmd, results)
		} else {
			hasErrors, hasChanges, err = a.renderFmtText(cmd, results, check)
		}
		if err != nil {
			return err
		}
	case "json":
		if err := renderFmtJSON(cmd.OutOrStdout(), results, check); err != nil {
			return err
		}
		for _, res := range results {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors || (check && hasChanges) {
		return errFailed
	}
	return nil
}

// reportFmtError prints the parse diagnostic when there is one, a plain line otherwise.
func (a *app) reportFmtError(cmd *cobra.Command, res driver.FormatResult) error {
	if errors.Is(res.Err, driver.ErrParse) && res.Parse != nil {
		return a.renderDiagnostics(cmd, cmd.ErrOrStderr(), "pretty", res.Parse.Bag, res.Parse.FileSet)
	}
	_, err := fmt.Fprintf(cmd.ErrOrStderr(), "fmt: %s: %v\n", res.Path, res.Err)
	return err
}

func (a *app) renderFmtStdout(cmd *cobra.Command, results []driver.FormatResult) (hasErrors bool, err error) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			if err := a.reportFmtError(cmd, res); err != nil {
				return hasErrors, err
			}
			continue
		}
		if _, err := cmd.OutOrStdout().Write(res.Formatted); err != nil {
			return hasErrors, err
		}
	}
	return hasErrors, nil
}

func (a *app) renderFmtText(cmd *cobra.Command, results []driver.FormatResult, check bool) (hasErrors, hasChanges bool, err error) {
	out := cmd.OutOrStdout()
	silent := quiet(cmd)
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			if err := a.reportFmtError(cmd, res); err != nil {
				return hasErrors, hasChanges, err
			}
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if silent {
			continue
		}
		if check {
			_, err = fmt.Fprintln(out, res.Path)
		} else {
			_, err = fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
		if err != nil {
			return hasErrors, hasChanges, err
		}
	}
	return hasErrors, hasChanges, nil
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
