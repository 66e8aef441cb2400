package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/polarity/pkg/polarity/internalerr"
	"github.com/cognicore/polarity/pkg/polarity/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", path, internalerr.ErrStoreUnavailable, err)
	}
	// Run reports are small; one connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	question INTEGER NOT NULL DEFAULT 0,
	alpha REAL NOT NULL,
	use_log INTEGER NOT NULL,
	count_mode TEXT,
	tie_break TEXT,
	unseen TEXT,
	train_pos INTEGER NOT NULL,
	train_neg INTEGER NOT NULL,
	test_pos INTEGER NOT NULL,
	test_neg INTEGER NOT NULL,
	vocab_size INTEGER NOT NULL,
	tp INTEGER NOT NULL,
	fn INTEGER NOT NULL,
	fp INTEGER NOT NULL,
	tn INTEGER NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_question ON runs(question);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

const runColumns = `id, question, alpha, use_log, count_mode, tie_break, unseen,
	train_pos, train_neg, test_pos, test_neg, vocab_size, tp, fn, fp, tn, created_at`

// SaveRun inserts or replaces a run
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) (string, error) {
	r = store.Prepare(r)

	const stmt = `
INSERT INTO runs (` + runColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	question=excluded.question,
	alpha=excluded.alpha,
	use_log=excluded.use_log,
	count_mode=excluded.count_mode,
	tie_break=excluded.tie_break,
	unseen=excluded.unseen,
	train_pos=excluded.train_pos,
	train_neg=excluded.train_neg,
	test_pos=excluded.test_pos,
	test_neg=excluded.test_neg,
	vocab_size=excluded.vocab_size,
	tp=excluded.tp,
	fn=excluded.fn,
	fp=excluded.fp,
	tn=excluded.tn,
	created_at=excluded.created_at;
`

	_, err := s.db.ExecContext(
		ctx,
		stmt,
		r.ID,
		r.Question,
		r.Alpha,
		boolToInt(r.UseLog),
		r.CountMode,
		r.TieBreak,
		r.Unseen,
		r.TrainPos,
		r.TrainNeg,
		r.TestPos,
		r.TestNeg,
		r.VocabSize,
		r.Confusion.TruePositive,
		r.Confusion.FalseNegative,
		r.Confusion.FalsePositive,
		r.Confusion.TrueNegative,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("save run %s: %w", r.ID, err)
	}
	return r.ID, nil
}

// GetRun looks up a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	return r, nil
}

// ListRuns returns runs in insertion order
func (s *sqliteStore) ListRuns(ctx context.Context, question int, limit int) ([]store.Run, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`SELECT ` + runColumns + ` FROM runs`)
	if question > 0 {
		query.WriteString(` WHERE question = ?`)
		args = append(args, question)
	}
	query.WriteString(` ORDER BY rowid`)
	if limit > 0 {
		query.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r         store.Run
		useLog    int
		createdAt string
	)
	err := sc.Scan(
		&r.ID,
		&r.Question,
		&r.Alpha,
		&useLog,
		&r.CountMode,
		&r.TieBreak,
		&r.Unseen,
		&r.TrainPos,
		&r.TrainNeg,
		&r.TestPos,
		&r.TestNeg,
		&r.VocabSize,
		&r.Confusion.TruePositive,
		&r.Confusion.FalseNegative,
		&r.Confusion.FalsePositive,
		&r.Confusion.TrueNegative,
		&createdAt,
	)
	if err != nil {
		return store.Run{}, err
	}
	r.UseLog = useLog != 0
	if createdAt != "" {
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = ts
		}
	}
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
