package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// NewRunID returns a fresh identifier for a simulation run.
func NewRunID() string {
	return uuid.NewString()
}

// SQLiteStore appends run metadata, window rows and bookmarks to a SQLite
// database so that many runs can be compared in one place.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore creates a store for the database at path. Call Init before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the tables if needed.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("creating tables: %w", err)
	}

	s.db = db
	return nil
}

// StartRun records a run with its seed and the effective configuration.
func (s *SQLiteStore) StartRun(ctx context.Context, runID string, seed int64, configYAML []byte) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, seed, started_at, config)
		VALUES (?, ?, ?, ?)
	`, runID, seed, time.Now().UTC().Format(time.RFC3339), string(configYAML))
	return err
}

// SaveWindow stores one reporting window, replacing any earlier row for the
// same run and tick.
func (s *SQLiteStore) SaveWindow(ctx context.Context, w WindowStats) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO windows (
			run_id, window_end, ticks_per_sec, efficiency, food_avg, life_avg,
			fitness_std, fitness_p50, fitness_p90, best,
			starved, wandered, natural_deaths, eaten, born, mutations
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, window_end) DO UPDATE SET
			ticks_per_sec = excluded.ticks_per_sec,
			efficiency = excluded.efficiency,
			food_avg = excluded.food_avg,
			life_avg = excluded.life_avg,
			fitness_std = excluded.fitness_std,
			fitness_p50 = excluded.fitness_p50,
			fitness_p90 = excluded.fitness_p90,
			best = excluded.best,
			starved = excluded.starved,
			wandered = excluded.wandered,
			natural_deaths = excluded.natural_deaths,
			eaten = excluded.eaten,
			born = excluded.born,
			mutations = excluded.mutations
	`, w.RunID, w.WindowEndTick, w.TicksPerSec, w.Efficiency, w.FoodAverage, w.LifeAverage,
		w.FitnessStd, w.FitnessP50, w.FitnessP90, w.Best,
		w.Starved, w.Wandered, w.Natural, w.Eaten, w.Born, w.Mutations)
	return err
}

// SaveBookmark stores a bookmark.
func (s *SQLiteStore) SaveBookmark(ctx context.Context, b Bookmark) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO bookmarks (run_id, tick, type, description)
		VALUES (?, ?, ?, ?)
	`, b.RunID, b.Tick, string(b.Type), b.Description)
	return err
}

// Windows returns the stored windows of a run in tick order.
func (s *SQLiteStore) Windows(ctx context.Context, runID string) ([]WindowStats, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT window_end, ticks_per_sec, efficiency, food_avg, life_avg,
			fitness_std, fitness_p50, fitness_p90, best,
			starved, wandered, natural_deaths, eaten, born, mutations
		FROM windows WHERE run_id = ? ORDER BY window_end
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WindowStats
	for rows.Next() {
		w := WindowStats{RunID: runID}
		if err := rows.Scan(
			&w.WindowEndTick, &w.TicksPerSec, &w.Efficiency, &w.FoodAverage, &w.LifeAverage,
			&w.FitnessStd, &w.FitnessP50, &w.FitnessP90, &w.Best,
			&w.Starved, &w.Wandered, &w.Natural, &w.Eaten, &w.Born, &w.Mutations,
		); err != nil {
			return nil, fmt.Errorf("scan window: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// RunSeed returns the seed recorded for a run.
func (s *SQLiteStore) RunSeed(ctx context.Context, runID string) (int64, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return 0, false, err
	}

	var seed int64
	err = db.QueryRowContext(ctx, `SELECT seed FROM runs WHERE id = ?`, runID).Scan(&seed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return seed, true, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			config TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS windows (
			run_id TEXT NOT NULL,
			window_end INTEGER NOT NULL,
			ticks_per_sec REAL NOT NULL,
			efficiency REAL NOT NULL,
			food_avg REAL NOT NULL,
			life_avg REAL NOT NULL,
			fitness_std REAL NOT NULL,
			fitness_p50 REAL NOT NULL,
			fitness_p90 REAL NOT NULL,
			best INTEGER NOT NULL,
			starved INTEGER NOT NULL,
			wandered INTEGER NOT NULL,
			natural_deaths INTEGER NOT NULL,
			eaten INTEGER NOT NULL,
			born INTEGER NOT NULL,
			mutations INTEGER NOT NULL,
			PRIMARY KEY (run_id, window_end)
		);
		CREATE TABLE IF NOT EXISTS bookmarks (
			run_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			type TEXT NOT NULL,
			description TEXT NOT NULL
		);
	`)
	return err
}
