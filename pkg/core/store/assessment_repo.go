package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finnvesta/pkg/models"
)

// AssessmentRepo stores component assessments. Assessments are immutable
// once written; corrections create a new assessment.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS component_assessments (
//	  id UUID PRIMARY KEY,
//	  building_id INT NOT NULL,
//	  assessment_date DATE NOT NULL,
//	  inspector_name TEXT,
//	  pka_score NUMERIC,
//	  assessment_json JSONB NOT NULL,
//	  created_at TIMESTAMPTZ NOT NULL
//	);
type AssessmentRepo struct{}

// NewAssessmentRepo creates a new repository instance.
func NewAssessmentRepo() *AssessmentRepo {
	return &AssessmentRepo{}
}

// Save inserts an assessment. The scores/notes payload goes into a single
// JSONB column; pka_score is broken out for dashboard queries.
func (r *AssessmentRepo) Save(ctx context.Context, a *models.Assessment) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	query := `
		INSERT INTO component_assessments
			(id, building_id, assessment_date, inspector_name, pka_score, assessment_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = pool.Exec(ctx, query, a.ID, a.BuildingID, a.AssessmentDate,
		a.InspectorName, a.WeightedScore, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// ListForBuilding returns a building's assessments, newest first.
func (r *AssessmentRepo) ListForBuilding(ctx context.Context, buildingID int) ([]models.Assessment, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT assessment_json FROM component_assessments
		 WHERE building_id = $1 ORDER BY assessment_date DESC, created_at DESC`, buildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []models.Assessment
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		var a models.Assessment
		if err := json.Unmarshal(jsonData, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}
