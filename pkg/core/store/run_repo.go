package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"school_projection/pkg/core/projection"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RunRepo stores solved projection runs keyed by run ID, with the version
// they were computed for.
type RunRepo struct{}

// NewRunRepo creates a new repository instance.
func NewRunRepo() *RunRepo {
	return &RunRepo{}
}

// Schema assumption (managed elsewhere, e.g. migrations):
//
//	CREATE TABLE IF NOT EXISTS projection_runs (
//	  id UUID PRIMARY KEY,
//	  version_id TEXT,
//	  converged BOOLEAN,
//	  result_json JSONB,
//	  created_at TIMESTAMPTZ
//	);

// Save upserts a solved run. The whole result travels as one JSONB blob;
// decimals serialize as strings so no precision is lost in transit.
func (r *RunRepo) Save(ctx context.Context, runID uuid.UUID, versionID string, res *projection.Result) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal projection run: %w", err)
	}

	query := `
		INSERT INTO projection_runs (id, version_id, converged, result_json, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			version_id = EXCLUDED.version_id,
			converged = EXCLUDED.converged,
			result_json = EXCLUDED.result_json,
			created_at = EXCLUDED.created_at;
	`

	_, err = pool.Exec(ctx, query, runID, versionID, res.Converged, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save projection run: %w", err)
	}
	return nil
}

// Load retrieves a run by ID.
func (r *RunRepo) Load(ctx context.Context, runID uuid.UUID) (*projection.Result, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT result_json FROM projection_runs WHERE id = $1`, runID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no projection run %s", runID)
		}
		return nil, fmt.Errorf("failed to load projection run: %w", err)
	}

	var res projection.Result
	if err := json.Unmarshal(jsonData, &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projection run: %w", err)
	}
	return &res, nil
}

// LatestForVersion retrieves the most recent run for a version.
func (r *RunRepo) LatestForVersion(ctx context.Context, versionID string) (*projection.Result, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `
		SELECT result_json FROM projection_runs
		WHERE version_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, versionID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no projection runs for version %s", versionID)
		}
		return nil, fmt.Errorf("failed to load projection run: %w", err)
	}

	var res projection.Result
	if err := json.Unmarshal(jsonData, &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projection run: %w", err)
	}
	return &res, nil
}
