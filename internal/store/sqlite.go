// Package store persists corpus analysis results: a SQLite archive for
// querying runs over time, and a TOML results file for the most recent
// run plus a capped history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/finchworks/aviary/internal/complexity"
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS
// makes it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    analyzed_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    design_count  INTEGER NOT NULL,
    mean_total    REAL NOT NULL,
    std_total     REAL NOT NULL,
    min_total     REAL NOT NULL,
    max_total     REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS design_scores (
    run_id           INTEGER NOT NULL REFERENCES runs(id),
    design           TEXT NOT NULL,
    design_number    INTEGER NOT NULL,
    nodes            INTEGER NOT NULL,
    edges            INTEGER NOT NULL,
    h_diversity      REAL NOT NULL,
    h_flexibility    REAL NOT NULL,
    h_combinability  REAL NOT NULL,
    h_in_degree      REAL NOT NULL,
    h_out_degree     REAL NOT NULL,
    total_complexity REAL NOT NULL,
    PRIMARY KEY (run_id, design)
);
`

// Archive stores analysis runs in a local SQLite database in WAL mode.
type Archive struct {
	db *sql.DB
}

// RunSummary is one archived run's header row.
type RunSummary struct {
	ID          int64
	AnalyzedAt  time.Time
	DesignCount int
	MeanTotal   float64
	StdTotal    float64
	MinTotal    float64
	MaxTotal    float64
}

// NewArchive opens (or creates) a SQLite database at dbPath, enables
// WAL mode and creates the schema tables if they do not exist.
func NewArchive(ctx context.Context, dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// Limit to one connection. SQLite only supports a single writer; a
	// single pooled connection avoids SQLITE_BUSY contention between
	// connections that each need their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// SaveRun archives one corpus run: a header row plus one score row per
// analyzed design, in a single transaction.
func (a *Archive) SaveRun(ctx context.Context, corpus complexity.CorpusResult, summary complexity.Summary) (int64, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (design_count, mean_total, std_total, min_total, max_total)
		 VALUES (?, ?, ?, ?, ?)`,
		summary.Designs, summary.TotalComplexity.Mean, summary.TotalComplexity.Std,
		summary.Min, summary.Max)
	if err != nil {
		return 0, fmt.Errorf("store: insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO design_scores (run_id, design, design_number, nodes, edges,
		     h_diversity, h_flexibility, h_combinability, h_in_degree, h_out_degree,
		     total_complexity)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("store: prepare scores: %w", err)
	}
	defer stmt.Close()

	for _, name := range corpus.Order {
		r := corpus.Designs[name]
		sys := r.System
		if _, err := stmt.ExecContext(ctx, runID, r.Design, r.Number, r.Nodes, r.Edges,
			sys.HDiversity, sys.HFlexibility, sys.HCombinability,
			sys.HInDegree, sys.HOutDegree, sys.TotalComplexity); err != nil {
			return 0, fmt.Errorf("store: insert score for %s: %w", r.Design, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit run: %w", err)
	}
	return runID, nil
}

// Runs returns archived run headers, most recent first.
func (a *Archive) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, analyzed_at, design_count, mean_total, std_total, min_total, max_total
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.AnalyzedAt, &r.DesignCount,
			&r.MeanTotal, &r.StdTotal, &r.MinTotal, &r.MaxTotal); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DesignScores returns the archived per-design rows for one run,
// ascending by design number.
func (a *Archive) DesignScores(ctx context.Context, runID int64) ([]complexity.DesignResult, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT design, design_number, nodes, edges, h_diversity, h_flexibility,
		        h_combinability, h_in_degree, h_out_degree, total_complexity
		 FROM design_scores WHERE run_id = ? ORDER BY design_number, design`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: query scores: %w", err)
	}
	defer rows.Close()

	var results []complexity.DesignResult
	for rows.Next() {
		var r complexity.DesignResult
		if err := rows.Scan(&r.Design, &r.Number, &r.Nodes, &r.Edges,
			&r.System.HDiversity, &r.System.HFlexibility, &r.System.HCombinability,
			&r.System.HInDegree, &r.System.HOutDegree, &r.System.TotalComplexity); err != nil {
			return nil, fmt.Errorf("store: scan score: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}
