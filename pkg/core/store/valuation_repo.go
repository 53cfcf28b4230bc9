package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"finnvesta/pkg/core/valuation"
)

// ValuationRepo stores computed valuation snapshots as a value history.
// Valuations are always derivable from building fields, so this table is a
// history of what was computed when, not a source of truth.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS building_valuations (
//	  id SERIAL PRIMARY KEY,
//	  building_id INT NOT NULL,
//	  evaluation_year INT NOT NULL,
//	  valuation_json JSONB NOT NULL,
//	  created_at TIMESTAMPTZ NOT NULL,
//	  UNIQUE (building_id, evaluation_year)
//	);
type ValuationRepo struct{}

// NewValuationRepo creates a new repository instance.
func NewValuationRepo() *ValuationRepo {
	return &ValuationRepo{}
}

// Save upserts the snapshot for (building, evaluation year).
func (r *ValuationRepo) Save(ctx context.Context, buildingID int, v *valuation.Valuation) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal valuation: %w", err)
	}

	query := `
		INSERT INTO building_valuations (building_id, evaluation_year, valuation_json, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (building_id, evaluation_year)
		DO UPDATE SET
			valuation_json = EXCLUDED.valuation_json,
			created_at = EXCLUDED.created_at;
	`

	if _, err := pool.Exec(ctx, query, buildingID, v.EvaluationYear, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save valuation: %w", err)
	}
	return nil
}

// History returns all stored snapshots for a building, oldest first.
func (r *ValuationRepo) History(ctx context.Context, buildingID int) ([]valuation.Valuation, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT valuation_json FROM building_valuations
		 WHERE building_id = $1 ORDER BY evaluation_year ASC`, buildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load valuation history: %w", err)
	}
	defer rows.Close()

	var history []valuation.Valuation
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan valuation row: %w", err)
		}
		var v valuation.Valuation
		if err := json.Unmarshal(jsonData, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal valuation: %w", err)
		}
		history = append(history, v)
	}
	return history, rows.Err()
}

// Latest returns the most recent snapshot for a building.
func (r *ValuationRepo) Latest(ctx context.Context, buildingID int) (*valuation.Valuation, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx,
		`SELECT valuation_json FROM building_valuations
		 WHERE building_id = $1 ORDER BY evaluation_year DESC LIMIT 1`, buildingID).Scan(&jsonData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load latest valuation: %w", err)
	}

	var v valuation.Valuation
	if err := json.Unmarshal(jsonData, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal valuation: %w", err)
	}
	return &v, nil
}
