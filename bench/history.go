package bench

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// HistoryStore persists benchmark runs in SQLite so score movement across
// ingestion or prompt changes can be tracked over time
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore opens (or creates) the history database at path
func NewHistoryStore(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	store := &HistoryStore{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *HistoryStore) initSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			duration_ms INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL,
			question TEXT NOT NULL,
			question_type TEXT NOT NULL,
			strategy TEXT NOT NULL,
			score INTEGER NOT NULL,
			answer TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs (id)
		);
		CREATE INDEX IF NOT EXISTS idx_results_run_id ON results (run_id);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveRun stores a report and returns its run id
func (s *HistoryStore) SaveRun(ctx context.Context, rep Report) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, started_at, duration_ms) VALUES (?, ?, ?)",
		runID, rep.StartedAt.UTC(), rep.Duration.Milliseconds())
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, res := range rep.Results {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO results (run_id, question, question_type, strategy, score, answer) VALUES (?, ?, ?, ?, ?, ?)",
			runID, res.Question, res.Type, res.Strategy, res.Score, res.Answer)
		if err != nil {
			return "", fmt.Errorf("failed to insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// RunSummary is one stored run with its per-strategy averages
type RunSummary struct {
	ID        string
	StartedAt time.Time
	Averages  []StrategyAverage
}

// ListRuns returns stored runs, newest first
func (s *HistoryStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started_at FROM runs ORDER BY started_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		if err := rows.Scan(&run.ID, &run.StartedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		averages, err := s.runAverages(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Averages = averages
	}
	return runs, nil
}

// LoadRun reads one stored run back as a Report
func (s *HistoryStore) LoadRun(ctx context.Context, runID string) (Report, error) {
	var rep Report
	var durationMS int64
	err := s.db.QueryRowContext(ctx,
		"SELECT started_at, duration_ms FROM runs WHERE id = ?", runID).
		Scan(&rep.StartedAt, &durationMS)
	if err != nil {
		return Report{}, fmt.Errorf("run %s not found: %w", runID, err)
	}
	rep.Duration = time.Duration(durationMS) * time.Millisecond

	rows, err := s.db.QueryContext(ctx,
		"SELECT question, question_type, strategy, score, answer FROM results WHERE run_id = ?", runID)
	if err != nil {
		return Report{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.Question, &res.Type, &res.Strategy, &res.Score, &res.Answer); err != nil {
			return Report{}, err
		}
		rep.Results = append(rep.Results, res)
	}
	return rep, rows.Err()
}

func (s *HistoryStore) runAverages(ctx context.Context, runID string) ([]StrategyAverage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT strategy, AVG(score) FROM results WHERE run_id = ? GROUP BY strategy ORDER BY AVG(score) DESC", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var averages []StrategyAverage
	for rows.Next() {
		var avg StrategyAverage
		if err := rows.Scan(&avg.Strategy, &avg.Average); err != nil {
			return nil, err
		}
		averages = append(averages, avg)
	}
	return averages, rows.Err()
}

// Close closes the database connection
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
