package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"finnvesta/pkg/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// BuildingRepo handles building persistence.
//
// Schema assumption (migrations managed elsewhere):
//
//	CREATE TABLE IF NOT EXISTS buildings (
//	  id SERIAL PRIMARY KEY,
//	  org_id INT NOT NULL,
//	  name TEXT NOT NULL,
//	  address TEXT,
//	  construction_year INT NOT NULL,
//	  area_m2 NUMERIC NOT NULL,
//	  cost_per_m2 NUMERIC NOT NULL,
//	  building_type TEXT,
//	  notes TEXT,
//	  archived BOOLEAN NOT NULL DEFAULT FALSE,
//	  created_at TIMESTAMPTZ NOT NULL,
//	  updated_at TIMESTAMPTZ NOT NULL
//	);
type BuildingRepo struct{}

// NewBuildingRepo creates a new repository instance.
func NewBuildingRepo() *BuildingRepo {
	return &BuildingRepo{}
}

const buildingColumns = `id, org_id, name, COALESCE(address, ''), construction_year,
	area_m2, cost_per_m2, COALESCE(building_type, ''), COALESCE(notes, ''),
	archived, created_at, updated_at`

func scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	err := row.Scan(&b.ID, &b.OrgID, &b.Name, &b.Address, &b.ConstructionYear,
		&b.AreaM2, &b.CostPerM2, &b.BuildingType, &b.Notes,
		&b.Archived, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan building: %w", err)
	}
	return &b, nil
}

// Create inserts a new building and returns it with its assigned ID.
func (r *BuildingRepo) Create(ctx context.Context, b *models.Building) (*models.Building, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	now := time.Now()
	query := `
		INSERT INTO buildings (org_id, name, address, construction_year, area_m2,
			cost_per_m2, building_type, notes, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $9)
		RETURNING ` + buildingColumns

	row := pool.QueryRow(ctx, query, b.OrgID, b.Name, b.Address, b.ConstructionYear,
		b.AreaM2, b.CostPerM2, b.BuildingType, b.Notes, now)
	return scanBuilding(row)
}

// Get retrieves one building by id, archived or not.
func (r *BuildingRepo) Get(ctx context.Context, id int) (*models.Building, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT ` + buildingColumns + ` FROM buildings WHERE id = $1`
	return scanBuilding(pool.QueryRow(ctx, query, id))
}

// ListActive returns all non-archived buildings for an organization, oldest
// construction first (the order the planner reports in).
func (r *BuildingRepo) ListActive(ctx context.Context, orgID int) ([]models.Building, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT ` + buildingColumns + `
		FROM buildings
		WHERE org_id = $1 AND NOT archived
		ORDER BY construction_year ASC, id ASC`

	rows, err := pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	defer rows.Close()

	var buildings []models.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, *b)
	}
	return buildings, rows.Err()
}

// Update replaces the mutable building fields.
func (r *BuildingRepo) Update(ctx context.Context, b *models.Building) (*models.Building, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		UPDATE buildings
		SET name = $2, address = $3, construction_year = $4, area_m2 = $5,
			cost_per_m2 = $6, building_type = $7, notes = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + buildingColumns

	row := pool.QueryRow(ctx, query, b.ID, b.Name, b.Address, b.ConstructionYear,
		b.AreaM2, b.CostPerM2, b.BuildingType, b.Notes, time.Now())
	return scanBuilding(row)
}

// Archive soft-deletes a building. Historical valuations and assessments
// keep referencing it, so rows are never hard-deleted.
func (r *BuildingRepo) Archive(ctx context.Context, id int) error {
	return r.setArchived(ctx, id, true)
}

// Restore brings an archived building back into the active portfolio.
func (r *BuildingRepo) Restore(ctx context.Context, id int) error {
	return r.setArchived(ctx, id, false)
}

func (r *BuildingRepo) setArchived(ctx context.Context, id int, archived bool) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	tag, err := pool.Exec(ctx,
		`UPDATE buildings SET archived = $2, updated_at = $3 WHERE id = $1`,
		id, archived, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update archived flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
