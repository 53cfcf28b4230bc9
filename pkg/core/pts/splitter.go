package pts

import "finnvesta/pkg/core/policy"

// splitInvestment turns a triggered renovation into schedule entries.
// Large buildings cannot realistically be renovated in one budget year, so
// the cost is spread equally over consecutive years by size:
//
//	area > three-year threshold (default 8000 m²): 3 years
//	area > two-year threshold (default 4000 m²):   2 years
//	otherwise: a single entry
//
// Condition handling is a step function: ConditionBefore only on the first
// entry, ConditionAfter only on the last. The sum of split amounts equals
// the unsplit total.
func splitInvestment(b BuildingInput, ev *RenovationEvent, p policy.Policy) []Investment {
	numYears := 1
	switch {
	case b.AreaM2 > p.SplitThreeYearAreaM2:
		numYears = 3
	case b.AreaM2 > p.SplitTwoYearAreaM2:
		numYears = 2
	}

	if numYears == 1 {
		before := ev.ConditionBefore
		after := ev.ConditionAfter
		return []Investment{{
			Year:             ev.Year,
			BuildingID:       b.ID,
			BuildingName:     b.Name,
			InvestmentAmount: ev.InvestmentAmount,
			ConditionBefore:  &before,
			ConditionAfter:   &after,
			IsSplitProject:   false,
		}}
	}

	annual := ev.InvestmentAmount / float64(numYears)
	entries := make([]Investment, 0, numYears)
	for i := 0; i < numYears; i++ {
		inv := Investment{
			Year:             ev.Year + i,
			BuildingID:       b.ID,
			BuildingName:     b.Name,
			InvestmentAmount: annual,
			IsSplitProject:   true,
			SplitYearIndex:   i + 1,
		}
		if i == 0 {
			before := ev.ConditionBefore
			inv.ConditionBefore = &before
		}
		if i == numYears-1 {
			after := ev.ConditionAfter
			inv.ConditionAfter = &after
		}
		entries = append(entries, inv)
	}
	return entries
}
