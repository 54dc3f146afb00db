// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads the stage output CSVs into a SQLite database with a
// full-text index on names, so tariffs, medicines, lab services, procedures
// and drugs can be searched and exported from one place.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/nhis-import/internal/logging"
	"github.com/pdiddy/nhis-import/internal/sheet"
	"github.com/pdiddy/nhis-import/pkg/types"
)

const defaultMaxResults = 20

// Kind names the stage output a catalog entry came from.
type Kind string

const (
	KindTariff    Kind = "tariff"
	KindMedicine  Kind = "medicine"
	KindLab       Kind = "lab"
	KindProcedure Kind = "procedure"
	KindDrug      Kind = "drug"
)

// layout names the columns of a stage output that map to entry fields.
type layout struct {
	code, name, category string
}

var layouts = map[Kind]layout{
	KindTariff:    {code: "code", name: "name", category: "mdc_category"},
	KindMedicine:  {code: "nhis_code", name: "name", category: "category"},
	KindLab:       {code: "code", name: "name", category: "category"},
	KindProcedure: {code: "code", name: "name", category: "category"},
	KindDrug:      {code: "drug_code", name: "name", category: "category"},
}

// Kinds lists every kind in pipeline order.
func Kinds() []Kind {
	return []Kind{KindTariff, KindMedicine, KindLab, KindProcedure, KindDrug}
}

// ParseKind validates a kind name. The empty string is accepted and means
// "any kind" in queries.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return "", nil
	}
	if _, ok := layouts[k]; !ok {
		return "", fmt.Errorf("unknown catalog kind %q (want tariff, medicine, lab, procedure or drug)", s)
	}
	return k, nil
}

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	fts        bool
	log        *zap.Logger
}

// NewStore opens or creates the catalog database at cfg.DBPath and creates
// the schema if it does not exist. When the SQLite build lacks FTS5, search
// falls back to substring matching.
func NewStore(cfg types.CatalogConfig, log *zap.Logger) (*Store, error) {
	log = logging.OrNop(log)

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults, log: log}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// FullText reports whether searches use the FTS5 index.
func (s *Store) FullText() bool {
	return s.fts
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			code TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT,
			fields TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_kind_code ON entries(kind, code)`,
		`CREATE TABLE IF NOT EXISTS loads (
			kind TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			file_mod_time TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			loaded_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='entries_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	if _, err := s.db.Exec(
		`CREATE VIRTUAL TABLE entries_fts USING fts5(name, category, content=entries, content_rowid=rowid)`,
	); err != nil {
		if strings.Contains(err.Error(), "no such module") {
			s.log.Warn("sqlite built without fts5, catalog search uses substring matching")
			return nil
		}
		return fmt.Errorf("creating FTS table: %w", err)
	}

	triggers := []string{
		`CREATE TRIGGER entries_ai AFTER INSERT ON entries BEGIN
			INSERT INTO entries_fts(rowid, name, category) VALUES (new.rowid, new.name, new.category);
		END`,
		`CREATE TRIGGER entries_ad AFTER DELETE ON entries BEGIN
			INSERT INTO entries_fts(entries_fts, rowid, name, category) VALUES('delete', old.rowid, old.name, old.category);
		END`,
		`CREATE TRIGGER entries_au AFTER UPDATE ON entries BEGIN
			INSERT INTO entries_fts(entries_fts, rowid, name, category) VALUES('delete', old.rowid, old.name, old.category);
			INSERT INTO entries_fts(rowid, name, category) VALUES (new.rowid, new.name, new.category);
		END`,
	}
	for _, stmt := range triggers {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS triggers: %w", err)
		}
	}
	s.fts = true
	return nil
}

// LoadSummary holds counts from a catalog load run.
type LoadSummary struct {
	Loaded  int
	Updated int
	Skipped int
	Failed  int
	Rows    int
}

// Total returns the number of sources processed.
func (s LoadSummary) Total() int {
	return s.Loaded + s.Updated + s.Skipped + s.Failed
}

// Source is one stage output to load.
type Source struct {
	Kind Kind
	Path string
}

// Load ingests each source CSV, replacing the rows previously loaded for
// its kind. A source whose file has not changed since the last load is
// skipped. Missing files are reported and counted as failed, not returned
// as errors.
func (s *Store) Load(ctx context.Context, sources []Source, w io.Writer) (LoadSummary, error) {
	var summary LoadSummary

	for _, src := range sources {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := os.Stat(src.Path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", src.Kind, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var stored string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM loads WHERE kind = ? AND source = ?`, string(src.Kind), src.Path,
		).Scan(&stored)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return summary, fmt.Errorf("checking last load of %s: %w", src.Kind, err)
		}
		if err == nil && stored == modTime {
			fmt.Fprintf(w, "skipped %s\n", src.Kind)
			summary.Skipped++
			continue
		}

		prior, err := s.loadedBefore(ctx, src.Kind)
		if err != nil {
			return summary, err
		}

		n, err := s.loadSource(ctx, src, modTime)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", src.Kind, err)
			summary.Failed++
			continue
		}
		summary.Rows += n

		if prior {
			fmt.Fprintf(w, "updated %s (%d rows)\n", src.Kind, n)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "loaded  %s (%d rows)\n", src.Kind, n)
			summary.Loaded++
		}
	}

	fmt.Fprintf(w, "\nloaded: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Loaded, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

// loadedBefore reports whether kind has a load record.
func (s *Store) loadedBefore(ctx context.Context, kind Kind) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM loads WHERE kind = ?`, string(kind)).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("checking load record for %s: %w", kind, err)
	}
	return true, nil
}

func (s *Store) loadSource(ctx context.Context, src Source, modTime string) (int, error) {
	lay, ok := layouts[src.Kind]
	if !ok {
		return 0, fmt.Errorf("unknown catalog kind %q", src.Kind)
	}
	records, err := sheet.ReadRecords(src.Path, lay.code, lay.name)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE kind = ?`, string(src.Kind)); err != nil {
		return 0, fmt.Errorf("deleting old entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (kind, code, name, category, fields) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, rec := range records {
		code, name := rec.Get(lay.code), rec.Get(lay.name)
		if code == "" || name == "" {
			continue
		}
		fields, _ := json.Marshal(map[string]string(rec))
		if _, err := stmt.ExecContext(ctx,
			string(src.Kind), code, name, rec.Get(lay.category), string(fields),
		); err != nil {
			return 0, fmt.Errorf("inserting %s %s: %w", src.Kind, code, err)
		}
		n++
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO loads (kind, source, file_mod_time, row_count, loaded_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(kind) DO UPDATE SET
			source=excluded.source, file_mod_time=excluded.file_mod_time,
			row_count=excluded.row_count, loaded_at=excluded.loaded_at`,
		string(src.Kind), src.Path, modTime, n, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return 0, fmt.Errorf("recording load: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing %s: %w", src.Kind, err)
	}
	s.log.Debug("loaded catalog source", zap.String("kind", string(src.Kind)), zap.String("path", src.Path), zap.Int("rows", n))
	return n, nil
}
