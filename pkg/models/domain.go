package models

import (
	"time"
)

// Organization is the multi-tenant owner of buildings.
type Organization struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	SubscriptionTier string    `json:"subscription_tier"` // 'basic', 'professional', 'enterprise'
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Building is the core entity for condition tracking and valuation.
// In the Finnish methodology all calculations are done at building level.
type Building struct {
	ID               int       `json:"id"`
	OrgID            int       `json:"org_id"`
	Name             string    `json:"name"`
	Address          string    `json:"address,omitempty"`
	ConstructionYear int       `json:"construction_year"`
	AreaM2           float64   `json:"area_m2"`
	CostPerM2        float64   `json:"cost_per_m2"` // Replacement cost basis for JHA
	BuildingType     string    `json:"building_type,omitempty"` // 'school', 'daycare', 'office', 'healthcare'
	Notes            string    `json:"notes,omitempty"`
	Archived         bool      `json:"archived"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Assessment is one inspection event for one building. Scores are partial:
// components not inspected are simply absent from the map. Immutable once
// stored; corrections create a new assessment.
type Assessment struct {
	ID             string         `json:"id"`
	BuildingID     int            `json:"building_id"`
	AssessmentDate time.Time      `json:"assessment_date"`
	InspectorName  string         `json:"inspector_name,omitempty"`
	Scores         map[string]int `json:"scores"` // component name -> 1..5

	ComponentNotes map[string]string `json:"component_notes,omitempty"`
	Notes          string            `json:"notes,omitempty"`

	// PKA, derived at write time. Nil means "not assessed" (no components
	// scored), which downstream reporting must treat as a distinct state.
	WeightedScore *float64 `json:"pka_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
