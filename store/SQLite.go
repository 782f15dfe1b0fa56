// Package store persists the statistics of experiment runs
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	mmerrors "github.com/samuelfneumann/mmlearn/errors"
	"github.com/samuelfneumann/mmlearn/experiment/trackers"
)

// Run is a single finished run of an agent together with the
// statistics of each of its episodes
type Run struct {
	ID        int64
	Label     string
	AgentType string
	Env       string
	Seed      uint64
	CreatedAt time.Time

	// Config is the serialized configuration the run was created with
	Config string

	Episodes []trackers.Episode
}

// SQLite stores runs in a SQLite database
type SQLite struct {
	db *sql.DB
}

// Open opens the SQLite database at path, creating it and its schema
// if needed
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT NOT NULL,
		agent_type TEXT NOT NULL,
		env TEXT NOT NULL,
		seed INTEGER NOT NULL,
		config TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS episodes (
		run_id INTEGER NOT NULL,
		episode INTEGER NOT NULL,
		length INTEGER NOT NULL,
		ep_return REAL NOT NULL,
		wealth REAL NOT NULL,
		profit REAL NOT NULL,
		inventory INTEGER NOT NULL,
		mean_abs_inventory REAL NOT NULL,
		fills INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, episode),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveRun saves run and its episodes and returns the ID assigned to it
func (s *SQLite) SaveRun(ctx context.Context, run Run) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (label, agent_type, env, seed, config, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.Label, run.AgentType, run.Env, int64(run.Seed), run.Config,
		run.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO episodes (run_id, episode, length, ep_return, wealth, profit,
			inventory, mean_abs_inventory, fills)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, ep := range run.Episodes {
		_, err := stmt.ExecContext(ctx, id, i, ep.Length, ep.Return,
			ep.Wealth, ep.Profit, ep.Inventory, ep.MeanAbsInventory, ep.Fills)
		if err != nil {
			return 0, fmt.Errorf("failed to insert episode: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// LoadRun loads the run with the argument ID together with its
// episodes. If there is no such run, an error wrapping
// errors.ErrNotFound is returned.
func (s *SQLite) LoadRun(ctx context.Context, id int64) (Run, error) {
	var run Run
	var seed int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, agent_type, env, seed, COALESCE(config, ''),
			created_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Label, &run.AgentType, &run.Env, &seed,
		&run.Config, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %d: %w", id, mmerrors.ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to get run: %w", err)
	}
	run.Seed = uint64(seed)

	rows, err := s.db.QueryContext(ctx, `
		SELECT length, ep_return, wealth, profit, inventory,
			mean_abs_inventory, fills
		FROM episodes WHERE run_id = ?
		ORDER BY episode ASC
	`, id)
	if err != nil {
		return Run{}, fmt.Errorf("failed to query episodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ep trackers.Episode
		if err := rows.Scan(&ep.Length, &ep.Return, &ep.Wealth, &ep.Profit,
			&ep.Inventory, &ep.MeanAbsInventory, &ep.Fills); err != nil {
			return Run{}, fmt.Errorf("failed to scan episode: %w", err)
		}
		run.Episodes = append(run.Episodes, ep)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("error iterating episodes: %w", err)
	}

	return run, nil
}

// ListRuns returns all stored runs, most recent first, without their
// episodes
func (s *SQLite) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, agent_type, env, seed, COALESCE(config, ''),
			created_at
		FROM runs
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var seed int64
		if err := rows.Scan(&run.ID, &run.Label, &run.AgentType, &run.Env,
			&seed, &run.Config, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Seed = uint64(seed)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// DeleteRun deletes the run with the argument ID and its episodes
func (s *SQLite) DeleteRun(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM episodes WHERE run_id = ?`,
		id); err != nil {
		return fmt.Errorf("failed to delete episodes: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %d: %w", id, mmerrors.ErrNotFound)
	}

	return tx.Commit()
}
