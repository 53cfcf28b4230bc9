// Package pts implements the long-term investment plan (PTS, "pitkän
// aikavälin suunnitelma"): projecting each building's condition forward,
// triggering renovations, splitting large projects over consecutive years
// and aggregating the portfolio-wide schedule.
package pts

// Parameters control one plan generation run. They are validated at the
// GeneratePlan boundary; out-of-range values block the whole plan rather
// than being silently clamped.
type Parameters struct {
	TriggerThreshold     float64 `json:"trigger_threshold" validate:"gt=0,lt=1"`
	TargetPercentage     float64 `json:"target_percentage" validate:"gte=0.5"`
	PlanningHorizonYears int     `json:"planning_horizon_years" validate:"gte=1"`
	StartYear            int     `json:"start_year" validate:"gte=1"`
}

// BuildingInput is the per-building data the planner consumes. It is a plain
// snapshot; the planner never reaches back into storage.
type BuildingInput struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	AreaM2           float64 `json:"area_m2"`
	CostPerM2        float64 `json:"cost_per_m2"`
	ConstructionYear int     `json:"construction_year"`
	BuildingType     string  `json:"building_type,omitempty"`
}

// Investment is one scheduled entry in the yearly schedule. For split
// projects, ConditionBefore appears only on the first year's entry and
// ConditionAfter only on the last (step function; the target is reached when
// the project completes).
type Investment struct {
	Year             int      `json:"year"`
	BuildingID       int      `json:"building_id"`
	BuildingName     string   `json:"building_name"`
	InvestmentAmount float64  `json:"investment_amount"`
	ConditionBefore  *float64 `json:"condition_before,omitempty"`
	ConditionAfter   *float64 `json:"condition_after,omitempty"`
	IsSplitProject   bool     `json:"is_split_project"`
	SplitYearIndex   int      `json:"split_year_index,omitempty"` // 1-based within a split, 0 otherwise
}

// AnnualSummary aggregates one year of the schedule.
type AnnualSummary struct {
	Year                 int     `json:"year"`
	TotalInvestment      float64 `json:"total_investment"`
	BuildingsCount       int     `json:"buildings_count"` // distinct buildings, not split entries
	CumulativeInvestment float64 `json:"cumulative_investment"`
}

// Warning flags a building excluded from the schedule for data-quality
// reasons. The rest of the portfolio still produces a plan.
type Warning struct {
	BuildingID   int    `json:"building_id"`
	BuildingName string `json:"building_name"`
	Reason       string `json:"reason"`
}

// Plan is the complete portfolio investment plan. It is a recomputable view,
// built fresh on every request and never persisted as authoritative state.
type Plan struct {
	PlanID     string     `json:"plan_id"`
	Parameters Parameters `json:"parameters"`

	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"` // start_year + horizon - 1

	// YearlySchedule maps year -> investments in building-insertion order.
	// Split projects of buildings triggered late in the horizon may add
	// years beyond EndYear; those amounts are recorded in full, truncation
	// is a presentation decision.
	YearlySchedule map[int][]Investment `json:"yearly_schedule"`
	AnnualSummary  []AnnualSummary      `json:"annual_summary"`

	TotalInvestment            float64 `json:"total_investment"`
	AverageAnnualInvestment    float64 `json:"average_annual_investment"`
	BuildingsNeedingRenovation int     `json:"buildings_needing_renovation"`
	TotalBuildings             int     `json:"total_buildings"`

	Warnings []Warning `json:"warnings,omitempty"`
}
