// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists extracted problems in a SQLite database so a
// batch's output can be listed, searched by title, and exported without
// re-reading the SGF files.
//
// See docs/ARCHITECTURE.md § Catalog.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tsumego-engine/pkg/types"
)

const dbFile = "catalog.db"

// Store manages the problem catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the catalog database at catalogDir/catalog.db,
// creating the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS problems (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			seq INTEGER NOT NULL,
			title TEXT NOT NULL,
			player TEXT NOT NULL,
			black_stones INTEGER NOT NULL,
			white_stones INTEGER NOT NULL,
			labels INTEGER NOT NULL,
			sgf_path TEXT NOT NULL,
			render_status TEXT NOT NULL,
			extracted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_problems_source ON problems(source, seq)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over titles, kept in sync by triggers.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='problems_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE problems_fts USING fts5(title, content=problems, content_rowid=rowid)`,
			`CREATE TRIGGER problems_ai AFTER INSERT ON problems BEGIN
				INSERT INTO problems_fts(rowid, title) VALUES (new.rowid, new.title);
			END`,
			`CREATE TRIGGER problems_ad AFTER DELETE ON problems BEGIN
				INSERT INTO problems_fts(problems_fts, rowid, title) VALUES('delete', old.rowid, old.title);
			END`,
			`CREATE TRIGGER problems_au AFTER UPDATE ON problems BEGIN
				INSERT INTO problems_fts(problems_fts, rowid, title) VALUES('delete', old.rowid, old.title);
				INSERT INTO problems_fts(rowid, title) VALUES (new.rowid, new.title);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

const upsertProblem = `
	INSERT INTO problems
		(id, source, seq, title, player, black_stones, white_stones, labels, sgf_path, render_status, extracted_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		source = excluded.source,
		seq = excluded.seq,
		title = excluded.title,
		player = excluded.player,
		black_stones = excluded.black_stones,
		white_stones = excluded.white_stones,
		labels = excluded.labels,
		sgf_path = excluded.sgf_path,
		render_status = excluded.render_status,
		extracted_at = excluded.extracted_at`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, e execer, p types.Problem) error {
	_, err := e.ExecContext(ctx, upsertProblem,
		p.ID, p.Source, p.Seq, p.Title, string(p.Player), p.BlackStones, p.WhiteStones,
		p.Labels, p.SGFPath, string(p.RenderStatus), p.ExtractedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording problem %s: %w", p.ID, err)
	}
	return nil
}

// Record upserts one problem, keyed by its ID. Re-extracting a document
// overwrites its previous rows rather than duplicating them.
func (s *Store) Record(ctx context.Context, p types.Problem) error {
	return upsert(ctx, s.db, p)
}

// RecordAll upserts a batch of problems in one transaction.
func (s *Store) RecordAll(ctx context.Context, problems []types.Problem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range problems {
		if err := upsert(ctx, tx, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const selectColumns = `id, source, seq, title, player, black_stones, white_stones,
	labels, sgf_path, render_status, extracted_at`

// List returns problems ordered by source and sequence. An empty source
// lists the whole catalog.
func (s *Store) List(ctx context.Context, source string) ([]types.Problem, error) {
	query := `SELECT ` + selectColumns + ` FROM problems`
	var args []any
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY source, seq`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing problems: %w", err)
	}
	defer rows.Close()
	return scanProblems(rows)
}

// Search runs an FTS5 full-text query over problem titles.
func (s *Store) Search(ctx context.Context, query string) ([]types.Problem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM problems
		JOIN problems_fts ON problems.rowid = problems_fts.rowid
		WHERE problems_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching titles for %q: %w", query, err)
	}
	defer rows.Close()
	return scanProblems(rows)
}

// ExportManifest writes the whole catalog as YAML to w, ordered by source
// and sequence.
func (s *Store) ExportManifest(ctx context.Context, w io.Writer) error {
	problems, err := s.List(ctx, "")
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	data, err := yaml.Marshal(problems)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

func scanProblems(rows *sql.Rows) ([]types.Problem, error) {
	var problems []types.Problem
	for rows.Next() {
		var p types.Problem
		var player, renderStatus, extractedAt string
		if err := rows.Scan(&p.ID, &p.Source, &p.Seq, &p.Title, &player, &p.BlackStones,
			&p.WhiteStones, &p.Labels, &p.SGFPath, &renderStatus, &extractedAt); err != nil {
			return nil, fmt.Errorf("scanning problem row: %w", err)
		}
		p.Player = types.Color(player)
		p.RenderStatus = types.RenderStatus(renderStatus)
		if ts, err := time.Parse(time.RFC3339, extractedAt); err == nil {
			p.ExtractedAt = ts
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}
