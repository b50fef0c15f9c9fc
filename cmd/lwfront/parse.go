package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lwfront/internal/diagfmt"
	"lwfront/internal/driver"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.lw|directory>",
		Short: "Parse an lw source file or directory and print the syntax tree",
		Long:  `Parse builds the syntax tree of a file, or of every *.lw file in a directory, and prints it. A file that does not parse yields its single diagnostic instead.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, path string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}
	if opts.Jobs, err = a.jobs(cmd); err != nil {
		return err
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return a.parseDir(cmd, path, format, opts)
	}

	result, err := driver.Parse(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	printTimings(cmd.ErrOrStderr(), result.File.Path, result.Timing)
	if !result.OK() {
		if err := a.renderDiagnostics(cmd, cmd.ErrOrStderr(), "pretty", result.Bag, result.FileSet); err != nil {
			return err
		}
		return errFailed
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatASTJSON(out, result.Builder, result.FileID)
	}
	return diagfmt.FormatASTPretty(out, result.Builder, result.FileID, result.FileSet)
}

func (a *app) parseDir(cmd *cobra.Command, dir, format string, opts driver.Options) error {
	fs, results, err := driver.ParseDir(cmd.Context(), dir, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	// Диагностики в stderr, деревья в stdout
	failed := false
	for _, r := range results {
		if r.OK() {
			continue
		}
		failed = true
		if r.LoadErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.LoadErr)
			continue
		}
		if err := a.renderDiagnostics(cmd, cmd.ErrOrStderr(), "pretty", r.Bag, fs); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		type fileAST struct {
			Path string          `json:"path"`
			OK   bool            `json:"ok"`
			AST  json.RawMessage `json:"ast,omitempty"`
		}
		payload := make([]fileAST, 0, len(results))
		for _, r := range results {
			item := fileAST{Path: r.Path, OK: r.OK()}
			if r.OK() {
				raw, err := astJSON(r)
				if err != nil {
					return err
				}
				item.AST = raw
			}
			payload = append(payload, item)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	default:
		for idx, r := range results {
			if !r.OK() {
				continue
			}
			if !quiet(cmd) {
				if idx > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "== %s ==\n", fs.Get(r.FileID).FormatPath("auto", fs.BaseDir()))
			}
			if err := diagfmt.FormatASTPretty(out, r.Builder, r.ASTFile, fs); err != nil {
				return err
			}
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

func astJSON(r driver.ParseDirResult) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := diagfmt.FormatASTJSON(&buf, r.Builder, r.ASTFile); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}
