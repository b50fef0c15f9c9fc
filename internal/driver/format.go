package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"lwfront/internal/format"
	"lwfront/internal/source"
)

// ErrNoSources is returned when the given paths contain no .lw files.
var ErrNoSources = errors.New("format: no source files found")

// ErrParse marks a file that could not be formatted because it does not parse.
var ErrParse = errors.New("format: parse error")

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check   bool
	Stdout  bool
	Options format.Options
	Parse   Options
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	// Parse is set when the file was parsed; on ErrParse it holds the diagnostic.
	Parse *ParseResult
}

// FormatPaths formats provided files or directories (recursively collecting .lw files).
// When opts.Check is true, files are not modified; Changed indicates whether formatting
// would update the file contents. When opts.Stdout is true, formatted content is returned
// in the results without touching files on disk.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSources
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := FormatResult{Path: path}
		res, formatted, changed, err := formatSingleFile(ctx, path, opts)
		result.Parse = res
		if err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}
		result.Changed = changed

		switch {
		case opts.Check:
		case opts.Stdout:
			result.Formatted = formatted
		case changed:
			mode := os.FileMode(0o644)
			if info, statErr := os.Stat(path); statErr == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
				result.Err = err
				result.Changed = false
			}
		}
		results = append(results, result)
	}

	return results, nil
}

func formatSingleFile(ctx context.Context, path string, opts FormatOptions) (res *ParseResult, formatted []byte, changed bool, err error) {
	res, err = Parse(ctx, path, opts.Parse)
	if err != nil {
		return nil, nil, false, err
	}
	if d, failed := res.Diagnostic(); failed {
		return res, nil, false, fmt.Errorf("%w: %s", ErrParse, d.Message)
	}

	formatted, err = format.FormatFile(res.File, res.Builder, res.FileID, opts.Options)
	if err != nil {
		return res, nil, false, err
	}
	// Load снимает BOM и CRLF: такой файл всё равно переписывается
	rewritten := res.File.Flags&(source.FileHadBOM|source.FileNormalizedCRLF) != 0
	changed = rewritten || !bytes.Equal(res.File.Content, formatted)
	return res, formatted, changed, nil
}

func collectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			// явно названный файл форматируем при любом расширении
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == SourceExt {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
