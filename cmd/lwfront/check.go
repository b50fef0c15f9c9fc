package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lwfront/internal/diag"
	"lwfront/internal/driver"
	"lwfront/internal/source"
	"lwfront/internal/store"
	"lwfront/internal/ui"
	"lwfront/internal/version"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.lw|directory> [...]",
		Short: "Check that lw sources parse and report diagnostics",
		Long:  `Check parses every given file (and every *.lw file under given directories) in parallel and reports one diagnostic per broken file. Exit status is 1 when any file fails.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args)
		},
	}
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|sarif|short)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse outcomes of unchanged files from the disk cache")
	cmd.Flags().String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/lwfront)")
	cmd.Flags().Bool("drop-cache", false, "clear the disk cache before checking")
	cmd.Flags().String("index", "", "record the run in an SQLite index at this path")
	return cmd
}

func collectCheckFiles(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}
		list := []string{arg}
		if st.IsDir() {
			if list, err = driver.ListSourceFiles(arg); err != nil {
				return nil, err
			}
		}
		for _, f := range list {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	if len(files) == 0 {
		return nil, errors.New("check: no .lw files found")
	}
	return files, nil
}

func (a *app) openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, err
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, err
	}
	drop, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("cache") && a.cfg.Cache.Enabled {
		enabled = true
	}
	if dir == "" {
		dir = a.cfg.Cache.Dir
	}
	if !enabled && !drop {
		return nil, nil
	}

	var cache *driver.DiskCache
	if dir != "" {
		cache, err = driver.NewDiskCache(dir)
	} else {
		cache, err = driver.OpenDiskCache("lwfront")
	}
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if drop {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("drop cache: %w", err)
		}
	}
	if !enabled {
		return nil, nil
	}
	return cache, nil
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	started := time.Now()

	format, err := a.diagFormat(cmd)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	indexPath, err := cmd.Flags().GetString("index")
	if err != nil {
		return err
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}
	if opts.Jobs, err = a.jobs(cmd); err != nil {
		return err
	}
	if opts.Cache, err = a.openCache(cmd); err != nil {
		return err
	}

	files, err := collectCheckFiles(args)
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []driver.ParseDirResult
	)
	work := func(sink driver.ProgressSink) error {
		opts.Sink = sink
		var werr error
		fs, results, werr = driver.ParseFiles(ctx, files, opts)
		return werr
	}
	if shouldUseTUI(mode, cmd.OutOrStdout()) {
		err = ui.RunProgress(ctx, cmd.OutOrStdout(), "checking", files, work)
	} else {
		err = work(nil)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	combined := diag.NewBag(0)
	failed, cached := 0, 0
	for _, r := range results {
		if r.Cached {
			cached++
		}
		if r.Timing != nil {
			printTimings(cmd.ErrOrStderr(), r.Path, r.Timing)
		}
		if r.OK() {
			continue
		}
		failed++
		if r.LoadErr != nil {
			// у таких диагностик нет позиции в файле
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.LoadErr)
			continue
		}
		combined.Merge(r.Bag)
	}
	if err := a.renderDiagnostics(cmd, cmd.OutOrStdout(), format, combined, fs); err != nil {
		return err
	}

	if indexPath != "" {
		if err := recordRun(ctx, indexPath, started, args, fs, results); err != nil {
			return err
		}
	}

	if !quiet(cmd) && (format == "pretty" || format == "short") {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d files: %d with errors, %d cached, %s\n",
			len(results), failed, cached, time.Since(started).Round(time.Millisecond))
	}
	if failed > 0 {
		return errFailed
	}
	return nil
}

func recordRun(ctx context.Context, path string, started time.Time, args []string, fs *source.FileSet, results []driver.ParseDirResult) error {
	ix, err := store.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer ix.Close() //nolint:errcheck

	run := store.Run{
		StartedAt: started,
		Version:   version.Version().String(),
		Root:      fmt.Sprint(args),
		Files:     make([]store.FileOutcome, 0, len(results)),
	}
	for _, r := range results {
		var hash [32]byte
		if r.LoadErr == nil {
			hash = fs.Get(r.FileID).Hash
		}
		outcome := store.NewFileOutcome(r.Path, hash, r.Bag, fs)
		outcome.Cached = r.Cached
		outcome.Tokens = r.Consumed
		outcome.ElapsedMS = float64(r.Elapsed) / float64(time.Millisecond)
		run.Files = append(run.Files, outcome)
	}
	if _, err := ix.RecordRun(ctx, run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
