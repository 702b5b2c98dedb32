package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/valpere/humanizer/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	-- runs holds one row per humanize invocation; input and output text are never stored
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		duration_ms INTEGER NOT NULL,
		paraphraser TEXT NOT NULL,
		corrector TEXT NOT NULL DEFAULT '',
		correct_grammar BOOLEAN DEFAULT FALSE,
		error_kind TEXT NOT NULL DEFAULT '',
		input_chars INTEGER NOT NULL,
		output_chars INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRun appends a run record.
func (s *Store) SaveRun(ctx context.Context, rec internal.RunRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, duration_ms, paraphraser, corrector, correct_grammar, error_kind, input_chars, output_chars) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StartedAt.UTC(), rec.Duration.Milliseconds(), rec.Paraphraser, rec.Corrector, rec.CorrectGrammar, rec.ErrorKind, rec.InputChars, rec.OutputChars)
	return err
}

// ListRuns returns the most recent runs first. limit <= 0 returns all of them.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]internal.RunRecord, error) {
	query := `SELECT id, started_at, duration_ms, paraphraser, corrector, correct_grammar, error_kind, input_chars, output_chars FROM runs ORDER BY started_at DESC, id`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []internal.RunRecord
	for rows.Next() {
		var r internal.RunRecord
		var durationMs int64
		if err := rows.Scan(&r.ID, &r.StartedAt, &durationMs, &r.Paraphraser, &r.Corrector, &r.CorrectGrammar, &r.ErrorKind, &r.InputChars, &r.OutputChars); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		results = append(results, r)
	}

	return results, rows.Err()
}

// RunStats summarises the run log.
type RunStats struct {
	TotalRuns       int
	SucceededRuns   int
	FailuresByKind  map[string]int
	AverageDuration time.Duration
}

// Stats returns summary statistics for the run log.
func (s *Store) Stats(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{FailuresByKind: make(map[string]int)}

	var avgMs float64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN error_kind = '' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(duration_ms), 0)
		FROM runs`).Scan(
		&stats.TotalRuns,
		&stats.SucceededRuns,
		&avgMs,
	)
	if err != nil {
		return nil, err
	}
	stats.AverageDuration = time.Duration(avgMs * float64(time.Millisecond))

	rows, err := s.db.QueryContext(ctx,
		`SELECT error_kind, COUNT(*) FROM runs WHERE error_kind <> '' GROUP BY error_kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		stats.FailuresByKind[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// ClearRuns removes every run record.
func (s *Store) ClearRuns(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}
