// Package store keeps an SQLite index of check runs: which files were
// checked, with what content hash, and which diagnostic each one produced.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"lwfront/internal/diag"
	"lwfront/internal/source"
)

//go:embed schema.sql
var schemaSQL string

// ErrNoRuns is returned by LastRun on an empty index.
var ErrNoRuns = errors.New("store: no runs recorded")

// Index wraps the database connection.
type Index struct {
	db *sql.DB
}

// Open opens (creating if needed) the index at path and applies the schema.
// ":memory:" gives a private in-memory index.
func Open(ctx context.Context, path string) (*Index, error) {
	var dsn string
	if path == ":memory:" {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	} else {
		// pragmas через DSN, чтобы каждое соединение пула их получило
		dsn = fmt.Sprintf(
			"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)",
			path,
		)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// у каждого соединения своя in-memory база
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close() //nolint:errcheck
		return nil, fmt.Errorf("exec schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close closes the database connection.
func (ix *Index) Close() error {
	if ix.db != nil {
		return ix.db.Close()
	}
	return nil
}

// Run is one `check` invocation.
type Run struct {
	ID        int64
	StartedAt time.Time
	Version   string
	Root      string
	Files     []FileOutcome
}

// Failed counts files that did not parse.
func (r Run) Failed() int {
	n := 0
	for _, f := range r.Files {
		if !f.OK {
			n++
		}
	}
	return n
}

// FileOutcome is the stored result for one file.
type FileOutcome struct {
	Path        string
	SHA256      string
	OK          bool
	Cached      bool
	Tokens      int
	ElapsedMS   float64
	Diagnostics []DiagnosticRow
}

// DiagnosticRow is a diagnostic flattened to columns.
type DiagnosticRow struct {
	Code     string // "SYN2002"
	Class    string
	Severity string
	Message  string
	Start    uint32
	End      uint32
	Line     uint32
	Col      uint32
	Expected string // альтернативы через " | "
	Found    string
}

// NewFileOutcome flattens a parse bag. fs resolves line/column; hash is the
// content hash of the file.
func NewFileOutcome(path string, hash [32]byte, bag *diag.Bag, fs *source.FileSet) FileOutcome {
	out := FileOutcome{Path: path, SHA256: hex.EncodeToString(hash[:]), OK: bag == nil || !bag.HasErrors()}
	if bag == nil {
		return out
	}
	for _, d := range bag.Items() {
		row := DiagnosticRow{
			Code:     d.Code.ID(),
			Class:    d.Code.Class().String(),
			Severity: d.Severity.String(),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Expected: strings.Join(d.Expected, " | "),
			Found:    d.Found,
		}
		if fs != nil && d.Code != diag.IOLoadFileError {
			start, _ := fs.Resolve(d.Primary)
			row.Line, row.Col = start.Line, start.Col
		}
		out.Diagnostics = append(out.Diagnostics, row)
	}
	return out
}

// RecordRun stores run and its files in one transaction and returns the run id.
func (ix *Index) RecordRun(ctx context.Context, run Run) (id int64, err error) {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback() //nolint:errcheck
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, tool_version, root, files, failed) VALUES (?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano), run.Version, run.Root, len(run.Files), run.Failed(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}

	for _, f := range run.Files {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO files (run_id, path, sha256, ok, cached, tokens, elapsed_ms) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, f.Path, f.SHA256, f.OK, f.Cached, f.Tokens, f.ElapsedMS,
		)
		if err != nil {
			return 0, fmt.Errorf("insert file %s: %w", f.Path, err)
		}
		fileID, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		for _, d := range f.Diagnostics {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO diagnostics (file_id, code, class, severity, message, start_off, end_off, line, col, expected, found)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				fileID, d.Code, d.Class, d.Severity, d.Message, d.Start, d.End, d.Line, d.Col, d.Expected, d.Found,
			)
			if err != nil {
				return 0, fmt.Errorf("insert diagnostic: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// LastRun returns the most recent run with its files and diagnostics.
func (ix *Index) LastRun(ctx context.Context) (Run, error) {
	var run Run
	var started string
	err := ix.db.QueryRowContext(ctx,
		`SELECT id, started_at, tool_version, root FROM runs ORDER BY id DESC LIMIT 1`,
	).Scan(&run.ID, &started, &run.Version, &run.Root)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("select run: %w", err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("run %d: bad timestamp: %w", run.ID, err)
	}
	run.Files, err = ix.files(ctx, run.ID)
	return run, err
}

func (ix *Index) files(ctx context.Context, runID int64) ([]FileOutcome, error) {
	rows, err := ix.db.QueryContext(ctx,
		`SELECT id, path, sha256, ok, cached, tokens, elapsed_ms FROM files WHERE run_id = ? ORDER BY path`, runID)
	if err != nil {
		return nil, fmt.Errorf("select files: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var (
		ids []int64
		out []FileOutcome
	)
	for rows.Next() {
		var (
			id int64
			f  FileOutcome
		)
		if err := rows.Scan(&id, &f.Path, &f.SHA256, &f.OK, &f.Cached, &f.Tokens, &f.ElapsedMS); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// диагностики читаем после закрытия курсора: пул может быть из одного соединения
	_ = rows.Close() //nolint:errcheck
	for i, id := range ids {
		if out[i].Diagnostics, err = ix.diagnostics(ctx, id); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (ix *Index) diagnostics(ctx context.Context, fileID int64) ([]DiagnosticRow, error) {
	rows, err := ix.db.QueryContext(ctx,
		`SELECT code, class, severity, message, start_off, end_off, line, col, expected, found
		 FROM diagnostics WHERE file_id = ? ORDER BY id`, fileID)
	if err != nil {
		return nil, fmt.Errorf("select diagnostics: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []DiagnosticRow
	for rows.Next() {
		var d DiagnosticRow
		if err := rows.Scan(&d.Code, &d.Class, &d.Severity, &d.Message, &d.Start, &d.End, &d.Line, &d.Col, &d.Expected, &d.Found); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CodeCounts aggregates diagnostic codes across all runs.
func (ix *Index) CodeCounts(ctx context.Context) (map[string]int, error) {
	rows, err := ix.db.QueryContext(ctx, `SELECT code, COUNT(*) FROM diagnostics GROUP BY code`)
	if err != nil {
		return nil, fmt.Errorf("count codes: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make(map[string]int)
	for rows.Next() {
		var (
			code string
			n    int
		)
		if err := rows.Scan(&code, &n); err != nil {
			return nil, err
		}
		out[code] = n
	}
	return out, rows.Err()
}

// Prune deletes all runs but the newest keep; files and diagnostics cascade.
func (ix *Index) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := ix.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	return res.RowsAffected()
}
