package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/facetlabs/facet/pkg/facet/internalerr"
	"github.com/facetlabs/facet/pkg/facet/store"
)

// sqliteStore implements store.Store on a SQLite database.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite run store with WAL mode enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	review_count INTEGER NOT NULL,
	segment_count INTEGER NOT NULL,
	warnings TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS aspect_stats (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	count INTEGER NOT NULL,
	review_count INTEGER NOT NULL,
	positive INTEGER NOT NULL,
	negative INTEGER NOT NULL,
	neutral INTEGER NOT NULL,
	net_sentiment REAL NOT NULL,
	confidence REAL NOT NULL,
	keywords TEXT NOT NULL DEFAULT '[]',
	PRIMARY KEY (run_id, name)
);

CREATE TABLE IF NOT EXISTS word_stats (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	rank INTEGER NOT NULL,
	token TEXT NOT NULL,
	count INTEGER NOT NULL,
	score REAL NOT NULL,
	PRIMARY KEY (run_id, rank)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun stores a complete run snapshot in one transaction.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	warnings, err := json.Marshal(r.Warnings)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, review_count, segment_count, warnings)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.ReviewCount, r.SegmentCount, string(warnings),
	); err != nil {
		return err
	}

	for _, a := range r.Aspects {
		keywords, err := json.Marshal(a.Keywords)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO aspect_stats (run_id, name, count, review_count, positive, negative, neutral, net_sentiment, confidence, keywords)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, a.Name, a.Count, a.ReviewCount, a.Positive, a.Negative, a.Neutral, a.NetSentiment, a.Confidence, string(keywords),
		); err != nil {
			return err
		}
	}

	for _, w := range r.TopWords {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO word_stats (run_id, rank, token, count, score) VALUES (?, ?, ?, ?, ?)`,
			r.ID, w.Rank, w.Token, w.Count, w.Score,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRun loads a run snapshot by ID.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var (
		r         store.Run
		createdAt string
		warnings  string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, review_count, segment_count, warnings FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &createdAt, &r.ReviewCount, &r.SegmentCount, &warnings)
	if err == sql.ErrNoRows {
		return store.Run{}, fmt.Errorf("%w: run %s", internalerr.ErrNotFound, id)
	}
	if err != nil {
		return store.Run{}, err
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return store.Run{}, err
	}
	if err := json.Unmarshal([]byte(warnings), &r.Warnings); err != nil {
		return store.Run{}, err
	}
	if r.Aspects, err = s.loadAspects(ctx, id); err != nil {
		return store.Run{}, err
	}
	if r.TopWords, err = s.loadWords(ctx, id); err != nil {
		return store.Run{}, err
	}
	return r, nil
}

// LatestRun loads the most recently created run.
func (s *sqliteStore) LatestRun(ctx context.Context) (store.Run, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY created_at DESC LIMIT 1`,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return store.Run{}, fmt.Errorf("%w: no runs stored", internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	return s.GetRun(ctx, id)
}

// ListRuns returns run summaries ordered newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.created_at, r.review_count, r.segment_count,
		        (SELECT COUNT(*) FROM aspect_stats a WHERE a.run_id = r.id)
		 FROM runs r ORDER BY r.created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.RunSummary
	for rows.Next() {
		var (
			sum       store.RunSummary
			createdAt string
		)
		if err := rows.Scan(&sum.ID, &createdAt, &sum.ReviewCount, &sum.SegmentCount, &sum.AspectCount); err != nil {
			return nil, err
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *sqliteStore) loadAspects(ctx context.Context, runID string) ([]store.AspectRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, count, review_count, positive, negative, neutral, net_sentiment, confidence, keywords
		 FROM aspect_stats WHERE run_id = ? ORDER BY count DESC, name ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.AspectRecord
	for rows.Next() {
		var (
			a        store.AspectRecord
			keywords string
		)
		if err := rows.Scan(&a.Name, &a.Count, &a.ReviewCount, &a.Positive, &a.Negative, &a.Neutral, &a.NetSentiment, &a.Confidence, &keywords); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(keywords), &a.Keywords); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *sqliteStore) loadWords(ctx context.Context, runID string) ([]store.WordRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rank, token, count, score FROM word_stats WHERE run_id = ? ORDER BY rank ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.WordRecord
	for rows.Next() {
		var w store.WordRecord
		if err := rows.Scan(&w.Rank, &w.Token, &w.Count, &w.Score); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
