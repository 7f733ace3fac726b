// Package store persists run history in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the run store.
const schemaV1 = `
-- Completed runs (parameters and terminal state denormalized for
-- single-query retrieval)
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    backend TEXT NOT NULL,       -- 'sequential' or 'fused'
    n INTEGER NOT NULL,
    phases INTEGER NOT NULL,
    num_steps INTEGER NOT NULL,
    seed INTEGER NOT NULL,

    -- Scalar parameters
    alpha REAL NOT NULL,
    pump REAL NOT NULL,
    coupling_coeff REAL NOT NULL,
    noise_level REAL NOT NULL,
    dt REAL NOT NULL,
    total_time REAL NOT NULL,

    -- Outputs
    final_state TEXT NOT NULL,   -- JSON array of N floats
    wall_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);

CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER PRIMARY KEY
);
`

// InitSchema creates the schema if it does not exist and records the
// schema version.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_info (version) VALUES (?)`, SchemaVersion); err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}
	return nil
}
