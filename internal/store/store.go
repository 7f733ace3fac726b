package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// RunRecord is one completed run.
type RunRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Backend   string    `json:"backend"`
	N         int       `json:"n"`
	Phases    int       `json:"phases"`
	NumSteps  int       `json:"num_steps"`
	Seed      uint64    `json:"seed"`

	Alpha         float64 `json:"alpha"`
	Pump          float64 `json:"pump"`
	CouplingCoeff float64 `json:"coupling_coeff"`
	NoiseLevel    float64 `json:"noise_level"`
	Dt            float64 `json:"dt"`
	TotalTime     float64 `json:"total_time"`

	FinalState []float64     `json:"final_state"`
	Wall       time.Duration `json:"wall_ms"`
}

// RunStore persists run history in a SQLite database.
type RunStore struct {
	db   *sql.DB
	path string
}

// Open creates or opens the run store at dir/cimsim.db.
func Open(dir string) (*RunStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "cimsim.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &RunStore{db: db, path: dbPath}, nil
}

// SaveRun persists a run record. A missing ID is filled with a fresh UUID
// and a missing timestamp with the current time; the stored record is
// returned.
func (s *RunStore) SaveRun(ctx context.Context, rec RunRecord) (RunRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	finalJSON, err := json.Marshal(rec.FinalState)
	if err != nil {
		return RunRecord{}, fmt.Errorf("encoding final state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, backend, n, phases, num_steps, seed,
			alpha, pump, coupling_coeff, noise_level, dt, total_time,
			final_state, wall_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.Format(time.RFC3339Nano), rec.Backend,
		rec.N, rec.Phases, rec.NumSteps, int64(rec.Seed),
		rec.Alpha, rec.Pump, rec.CouplingCoeff, rec.NoiseLevel, rec.Dt, rec.TotalTime,
		string(finalJSON), rec.Wall.Milliseconds(),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("inserting run %s: %w", rec.ID, err)
	}
	return rec, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 returns all.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
		SELECT id, created_at, backend, n, phases, num_steps, seed,
		       alpha, pump, coupling_coeff, noise_level, dt, total_time,
		       final_state, wall_ms
		FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetRun returns the run with the given ID.
func (s *RunStore) GetRun(ctx context.Context, id string) (RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, backend, n, phases, num_steps, seed,
		       alpha, pump, coupling_coeff, noise_level, dt, total_time,
		       final_state, wall_ms
		FROM runs WHERE id = ?`, id)
	rec, err := scanRun(row)
	if err == sql.ErrNoRows {
		return RunRecord{}, fmt.Errorf("run %s not found", id)
	}
	return rec, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var rec RunRecord
	var createdAt, finalJSON string
	var seed, wallMS int64
	err := row.Scan(
		&rec.ID, &createdAt, &rec.Backend, &rec.N, &rec.Phases, &rec.NumSteps, &seed,
		&rec.Alpha, &rec.Pump, &rec.CouplingCoeff, &rec.NoiseLevel, &rec.Dt, &rec.TotalTime,
		&finalJSON, &wallMS,
	)
	if err != nil {
		return RunRecord{}, err
	}
	rec.Seed = uint64(seed)
	rec.Wall = time.Duration(wallMS) * time.Millisecond
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return RunRecord{}, fmt.Errorf("parsing created_at for run %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(finalJSON), &rec.FinalState); err != nil {
		return RunRecord{}, fmt.Errorf("decoding final state for run %s: %w", rec.ID, err)
	}
	return rec, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}
