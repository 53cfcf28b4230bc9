package pts

import (
	"finnvesta/pkg/core/policy"
	"finnvesta/pkg/core/valuation"
)

// RenovationEvent is the single triggered renovation for one building within
// a planning horizon, before any multi-year split.
type RenovationEvent struct {
	Year             int
	InvestmentAmount float64
	ConditionBefore  float64
	ConditionAfter   float64
}

// findRenovation projects the building's condition forward year by year and
// returns the first year within [start, start+horizon-1] where the ratio
// drops below the trigger threshold, with the investment required to restore
// to the target fraction of JHA. Returns nil when the projected condition
// stays above the threshold for the whole horizon.
//
// This is a single-event model: only the first qualifying year is scheduled,
// and the projection assumes no renovation has yet occurred.
func findRenovation(b BuildingInput, params Parameters, p policy.Policy) *RenovationEvent {
	jha := valuation.ReplacementValue(b.AreaM2, b.CostPerM2)
	dep := valuation.AnnualDepreciation(jha, p)

	for year := params.StartYear; year < params.StartYear+params.PlanningHorizonYears; year++ {
		age := valuation.BuildingAge(b.ConstructionYear, year)
		tekna := valuation.TechnicalValue(jha, dep, age)
		ratio := valuation.ConditionRatio(tekna, jha)
		if ratio >= params.TriggerThreshold {
			continue
		}

		// Investment raises TeknA to target% of JHA. If the target sits
		// below the current value the renovation is a no-op; the amount is
		// clamped to zero but the trigger is still recorded.
		amount := jha*params.TargetPercentage - tekna
		if amount < 0 {
			amount = 0
		}

		return &RenovationEvent{
			Year:             year,
			InvestmentAmount: amount,
			ConditionBefore:  ratio,
			// Values above 1.0 are allowed: they represent better-than-new
			// upgrades, e.g. a 120% improvement target.
			ConditionAfter: params.TargetPercentage,
		}
	}
	return nil
}
