// Package db provides PostgreSQL persistence for refinement runs.
//
// Persistence is optional: callers hold a nil *DB when no DATABASE_URL is
// configured and the workflow treats every write as best-effort.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/star-refiner/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateRun records the start of a refinement run
func (db *DB) CreateRun(ctx context.Context, runID string, req types.AnswerRequest) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO runs (id, role, industry, question, status)
		 VALUES ($1, $2, $3, $4, 'running')`,
		runID, req.Role, req.Industry, req.Question,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// SaveIteration stores one critique iteration of a run
func (db *DB) SaveIteration(ctx context.Context, runID string, rec types.IterationRecord) error {
	answerJSON, err := json.Marshal(rec.Answer)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	critiqueJSON, err := json.Marshal(rec.Critique)
	if err != nil {
		return fmt.Errorf("failed to marshal critique: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO iterations (run_id, iteration, answer, critique, rating, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (run_id, iteration) DO UPDATE SET answer = $3, critique = $4, rating = $5, recorded_at = $6`,
		runID, rec.Iteration, answerJSON, critiqueJSON, rec.Rating, rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save iteration %d: %w", rec.Iteration, err)
	}
	return nil
}

// CompleteRun records the terminal state of a run
func (db *DB) CompleteRun(ctx context.Context, runID string, state types.WorkflowState) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE runs SET status = $1, highest_rating = $2, iterations_run = $3,
		        error_message = NULLIF($4, ''), completed_at = NOW()
		 WHERE id = $5`,
		string(state.Status), state.HighestRating, state.IterationsRun, state.ErrorMessage, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID, or nil when no such run exists
func (db *DB) GetRun(ctx context.Context, runID string) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, role, industry, question, status, highest_rating, iterations_run,
		        COALESCE(error_message, ''), created_at, completed_at
		 FROM runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Role, &run.Industry, &run.Question, &run.Status,
		&run.HighestRating, &run.IterationsRun, &run.ErrorMessage, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves recent runs, newest first
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, role, industry, question, status, highest_rating, iterations_run,
		        COALESCE(error_message, ''), created_at, completed_at
		 FROM runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Role, &run.Industry, &run.Question, &run.Status,
			&run.HighestRating, &run.IterationsRun, &run.ErrorMessage, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// GetIterations retrieves the recorded iterations of a run in order
func (db *DB) GetIterations(ctx context.Context, runID string) ([]Iteration, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT run_id, iteration, answer, critique, rating, recorded_at
		 FROM iterations WHERE run_id = $1 ORDER BY iteration ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get iterations: %w", err)
	}
	defer rows.Close()

	var iterations []Iteration
	for rows.Next() {
		var (
			it           Iteration
			answerJSON   []byte
			critiqueJSON []byte
		)
		if err := rows.Scan(&it.RunID, &it.Iteration, &answerJSON, &critiqueJSON, &it.Rating, &it.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan iteration: %w", err)
		}
		if err := json.Unmarshal(answerJSON, &it.Answer); err != nil {
			return nil, fmt.Errorf("failed to decode answer for iteration %d: %w", it.Iteration, err)
		}
		if err := json.Unmarshal(critiqueJSON, &it.Critique); err != nil {
			return nil, fmt.Errorf("failed to decode critique for iteration %d: %w", it.Iteration, err)
		}
		iterations = append(iterations, it)
	}
	return iterations, nil
}
