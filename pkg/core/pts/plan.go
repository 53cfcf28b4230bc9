package pts

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"finnvesta/pkg/core/policy"
)

var validate = validator.New()

// DefaultParameters fills a Parameters struct from the policy defaults.
func DefaultParameters(startYear int, p policy.Policy) Parameters {
	return Parameters{
		TriggerThreshold:     p.DefaultTriggerThreshold,
		TargetPercentage:     p.DefaultTargetPercentage,
		PlanningHorizonYears: p.DefaultHorizonYears,
		StartYear:            startYear,
	}
}

// GeneratePlan runs the scheduler and splitter over every building and
// merges the results into a year-indexed schedule with portfolio summaries.
//
// Parameter violations (threshold outside (0,1), horizon < 1, …) reject the
// whole plan. Bad building data (non-positive area or cost) only excludes
// that building, with a warning, so one broken record cannot sink the
// portfolio. The computation is pure and side-effect-free: safe to call
// concurrently for different portfolios or parameter sets.
func GeneratePlan(buildings []BuildingInput, params Parameters, p policy.Policy) (*Plan, error) {
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid plan parameters: %w", err)
	}

	endYear := params.StartYear + params.PlanningHorizonYears - 1

	plan := &Plan{
		PlanID:         uuid.New().String(),
		Parameters:     params,
		StartYear:      params.StartYear,
		EndYear:        endYear,
		YearlySchedule: make(map[int][]Investment, params.PlanningHorizonYears),
		TotalBuildings: len(buildings),
	}
	for year := params.StartYear; year <= endYear; year++ {
		plan.YearlySchedule[year] = []Investment{}
	}

	lastScheduledYear := endYear
	for _, b := range buildings {
		if b.CostPerM2 <= 0 || b.AreaM2 <= 0 {
			plan.Warnings = append(plan.Warnings, Warning{
				BuildingID:   b.ID,
				BuildingName: b.Name,
				Reason:       fmt.Sprintf("replacement value undefined: area_m2=%v cost_per_m2=%v", b.AreaM2, b.CostPerM2),
			})
			continue
		}

		ev := findRenovation(b, params, p)
		if ev == nil {
			continue // stays above the trigger threshold for the whole horizon
		}

		plan.BuildingsNeedingRenovation++
		plan.TotalInvestment += ev.InvestmentAmount

		for _, inv := range splitInvestment(b, ev, p) {
			// Split years may spill past EndYear; they are kept so the
			// building's full cost stays in the plan.
			plan.YearlySchedule[inv.Year] = append(plan.YearlySchedule[inv.Year], inv)
			if inv.Year > lastScheduledYear {
				lastScheduledYear = inv.Year
			}
		}
	}

	plan.AnnualSummary = summarize(plan, lastScheduledYear)
	plan.AverageAnnualInvestment = plan.TotalInvestment / float64(params.PlanningHorizonYears)
	return plan, nil
}

// summarize builds the per-year totals, distinct-building counts and running
// cumulative total. It covers every scheduled year, including split
// spill-over past the nominal horizon, so the summary totals always add up
// to the plan's TotalInvestment.
func summarize(plan *Plan, lastYear int) []AnnualSummary {
	summary := make([]AnnualSummary, 0, lastYear-plan.StartYear+1)
	cumulative := 0.0

	for year := plan.StartYear; year <= lastYear; year++ {
		investments := plan.YearlySchedule[year]

		annualTotal := 0.0
		distinct := make(map[int]bool, len(investments))
		for _, inv := range investments {
			annualTotal += inv.InvestmentAmount
			distinct[inv.BuildingID] = true
		}
		cumulative += annualTotal

		summary = append(summary, AnnualSummary{
			Year:                 year,
			TotalInvestment:      annualTotal,
			BuildingsCount:       len(distinct),
			CumulativeInvestment: cumulative,
		})
	}
	return summary
}
