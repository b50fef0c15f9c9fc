package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lwfront/internal/ast"
	"lwfront/internal/diag"
	"lwfront/internal/observ"
	"lwfront/internal/source"
	"lwfront/internal/token"
	"lwfront/internal/trace"
)

// SourceExt is the extension of lw source files.
const SourceExt = ".lw"

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path    string
	FileID  source.FileID
	Builder *ast.Builder // nil for cache hits and load failures
	ASTFile ast.FileID
	Bag     *diag.Bag
	// Cached is set when the outcome came from the disk cache.
	Cached   bool
	Consumed int
	Elapsed  time.Duration
	Timings  *diag.Bag
	Timing   *observ.Report
	// LoadErr is set when the file could not be read; Bag then holds IO4001.
	LoadErr error
}

// OK reports whether the file parsed without error.
func (r ParseDirResult) OK() bool {
	return r.Bag != nil && !r.Bag.HasErrors()
}

// ListSourceFiles возвращает отсортированный список всех *.lw файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git, .cache) не обходим
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// preload registers every file in one FileSet before workers start; after
// that the set is only read. Load failures are kept per path.
func preload(dir string, files []string) (*source.FileSet, map[string]source.FileID, map[string]error) {
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}
	return fileSet, fileIDs, loadErrors
}

func loadFailure(path string, err error, limit int) *diag.Bag {
	bag := diag.NewBag(limit)
	bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, "failed to load file "+path+": "+err.Error()))
	return bag
}

func workers(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

// TokenizeDir токенизирует все *.lw файлы в директории параллельно
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet, fileIDs, loadErrors := preload(dir, files)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]TokenizeDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opts.Jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, bad := loadErrors[path]; bad {
				results[i] = TokenizeDirResult{Path: path, Bag: loadFailure(path, loadErr, opts.MaxDiagnostics)}
				return nil
			}
			fileID := fileIDs[path]
			res := tokenizeFile(gctx, fileSet, fileSet.Get(fileID), opts)
			results[i] = TokenizeDirResult{Path: path, FileID: fileID, Tokens: res.Tokens, Bag: res.Bag}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ParseDir парсит все *.lw файлы в директории параллельно. Each worker owns
// its stream, Bag and Builder; results are ordered by path. With
// opts.Cache set, files whose content hash has a cached outcome are not
// parsed again and their result carries no Builder.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet, fileIDs, loadErrors := preload(dir, files)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	results, err := parseFiles(ctx, fileSet, files, fileIDs, loadErrors, opts)
	return fileSet, results, err
}

// ParseFiles is ParseDir over an explicit list of paths.
func ParseFiles(ctx context.Context, paths []string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	files := append([]string(nil), paths...)
	sort.Strings(files)
	fileSet, fileIDs, loadErrors := preload("", files)
	results, err := parseFiles(ctx, fileSet, files, fileIDs, loadErrors, opts)
	return fileSet, results, err
}

func parseFiles(
	ctx context.Context,
	fileSet *source.FileSet,
	files []string,
	fileIDs map[string]source.FileID,
	loadErrors map[string]error,
	opts Options,
) ([]ParseDirResult, error) {
	ctx, runSpan := trace.BeginCtx(ctx, trace.ScopeDriver, "parse-dir")
	runStart := time.Now()
	opts.emit(Event{Stage: StageCheck, Status: StatusWorking})
	for _, path := range files {
		opts.emit(Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	results := make([]ParseDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opts.Jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			if loadErr, bad := loadErrors[path]; bad {
				results[i] = ParseDirResult{Path: path, Bag: loadFailure(path, loadErr, opts.MaxDiagnostics), LoadErr: loadErr}
				opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(start)})
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)
			if hit, ok := lookupCached(opts, file); ok {
				hit.Path = path
				hit.Elapsed = time.Since(start)
				results[i] = hit
				opts.emit(Event{File: path, Stage: StageCacheHit, Status: statusOf(hit.OK()), Elapsed: hit.Elapsed})
				return nil
			}

			opts.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
			res, err := parseFile(gctx, fileSet, file, opts, nil)
			if err != nil {
				return err
			}
			if opts.Cache != nil {
				if err := opts.Cache.Put(file.Hash, outcomeToPayload(res)); err != nil {
					trace.Point(trace.FromContext(gctx), trace.ScopeFile, "cache-put-failed", err.Error())
				}
			}
			results[i] = ParseDirResult{
				Path:     path,
				FileID:   fileID,
				Builder:  res.Builder,
				ASTFile:  res.FileID,
				Bag:      res.Bag,
				Consumed: res.Consumed,
				Elapsed:  time.Since(start),
				Timings:  res.Timings,
				Timing:   res.Timing,
			}
			var evErr error
			if d, failed := res.Diagnostic(); failed {
				evErr = errors.New(d.Message)
			}
			opts.emit(Event{File: path, Stage: StageParse, Status: statusOf(res.OK()), Err: evErr, Elapsed: results[i].Elapsed})
			return nil
		})
	}

	err := g.Wait()
	status := StatusDone
	if err != nil {
		status = StatusError
	}
	opts.emit(Event{Stage: StageCheck, Status: status, Err: err, Elapsed: time.Since(runStart)})
	runSpan.WithExtra("files", fmt.Sprint(len(files))).End(string(status))
	return results, err
}

func lookupCached(opts Options, file *source.File) (ParseDirResult, bool) {
	if opts.Cache == nil {
		return ParseDirResult{}, false
	}
	var payload DiskPayload
	ok, err := opts.Cache.Get(file.Hash, &payload)
	if err != nil || !ok {
		return ParseDirResult{}, false
	}
	return ParseDirResult{
		FileID:   file.ID,
		ASTFile:  ast.NoFileID,
		Bag:      payloadToBag(&payload, file.ID, opts.MaxDiagnostics),
		Cached:   true,
		Consumed: payload.Consumed,
	}, true
}

func statusOf(ok bool) Status {
	if ok {
		return StatusDone
	}
	return StatusError
}
