package pts

import (
	"testing"

	"finnvesta/pkg/core/policy"
)

func defaultTestParams() Parameters {
	return Parameters{
		TriggerThreshold:     0.50,
		TargetPercentage:     1.00,
		PlanningHorizonYears: 15,
		StartYear:            2025,
	}
}

func TestGeneratePlan_Portfolio(t *testing.T) {
	p := policy.Default()
	params := defaultTestParams()

	buildings := []BuildingInput{
		// Age 29 in 2025: triggers immediately. JHA 2.5M, TeknA 1231250,
		// investment 1268750, single entry.
		{ID: 1, Name: "Keskuskoulu", AreaM2: 1000, CostPerM2: 2500, ConstructionYear: 1996},
		// Age 29 in 2030. JHA 10M, investment 5075000, split over
		// 2030-2031 at 2537500 per year.
		{ID: 2, Name: "Liikuntahalli", AreaM2: 5000, CostPerM2: 2000, ConstructionYear: 2001},
		// Age 19 at horizon end, ratio 0.6675: never triggers.
		{ID: 3, Name: "Uusi päiväkoti", AreaM2: 800, CostPerM2: 3000, ConstructionYear: 2020},
		// Bad data: excluded with a warning.
		{ID: 4, Name: "Tuntematon", AreaM2: 0, CostPerM2: 1500, ConstructionYear: 1970},
	}

	plan, err := GeneratePlan(buildings, params, p)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}
	t.Logf("plan %s: total=%.0f needing=%d warnings=%d",
		plan.PlanID, plan.TotalInvestment, plan.BuildingsNeedingRenovation, len(plan.Warnings))

	if plan.StartYear != 2025 || plan.EndYear != 2039 {
		t.Errorf("plan years %d-%d, want 2025-2039", plan.StartYear, plan.EndYear)
	}
	if plan.TotalBuildings != 4 {
		t.Errorf("total buildings = %d, want 4", plan.TotalBuildings)
	}
	if plan.BuildingsNeedingRenovation != 2 {
		t.Errorf("buildings needing renovation = %d, want 2", plan.BuildingsNeedingRenovation)
	}
	if !approxEqual(plan.TotalInvestment, 6343750) {
		t.Errorf("total investment = %v, want 6343750", plan.TotalInvestment)
	}
	if !approxEqual(plan.AverageAnnualInvestment, 6343750.0/15) {
		t.Errorf("average annual = %v, want %v", plan.AverageAnnualInvestment, 6343750.0/15)
	}

	if len(plan.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(plan.Warnings))
	}
	if plan.Warnings[0].BuildingID != 4 {
		t.Errorf("warning for building %d, want 4", plan.Warnings[0].BuildingID)
	}

	// Schedule shape.
	if got := plan.YearlySchedule[2025]; len(got) != 1 || got[0].BuildingID != 1 {
		t.Errorf("2025 schedule = %+v, want single Keskuskoulu entry", got)
	}
	if got := plan.YearlySchedule[2026]; len(got) != 0 {
		t.Errorf("2026 should be empty, got %d entries", len(got))
	}
	for _, year := range []int{2030, 2031} {
		got := plan.YearlySchedule[year]
		if len(got) != 1 || got[0].BuildingID != 2 {
			t.Fatalf("%d schedule = %+v, want single Liikuntahalli entry", year, got)
		}
		if !approxEqual(got[0].InvestmentAmount, 2537500) {
			t.Errorf("%d amount = %v, want 2537500", year, got[0].InvestmentAmount)
		}
	}

	// Every horizon year exists as a key, even when empty.
	for year := 2025; year <= 2039; year++ {
		if _, ok := plan.YearlySchedule[year]; !ok {
			t.Errorf("year %d missing from schedule", year)
		}
	}
}

func TestGeneratePlan_SummaryAddsUp(t *testing.T) {
	p := policy.Default()
	params := defaultTestParams()

	buildings := []BuildingInput{
		{ID: 1, Name: "Keskuskoulu", AreaM2: 1000, CostPerM2: 2500, ConstructionYear: 1996},
		{ID: 2, Name: "Liikuntahalli", AreaM2: 5000, CostPerM2: 2000, ConstructionYear: 2001},
	}

	plan, err := GeneratePlan(buildings, params, p)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	if len(plan.AnnualSummary) != 15 {
		t.Fatalf("summary covers %d years, want 15", len(plan.AnnualSummary))
	}

	sum := 0.0
	prevCumulative := 0.0
	for _, s := range plan.AnnualSummary {
		sum += s.TotalInvestment
		if s.CumulativeInvestment+tolerance < prevCumulative {
			t.Errorf("cumulative decreased at %d: %v < %v", s.Year, s.CumulativeInvestment, prevCumulative)
		}
		prevCumulative = s.CumulativeInvestment
	}
	if !approxEqual(sum, plan.TotalInvestment) {
		t.Errorf("summary totals %v != plan total %v", sum, plan.TotalInvestment)
	}
	last := plan.AnnualSummary[len(plan.AnnualSummary)-1]
	if !approxEqual(last.CumulativeInvestment, plan.TotalInvestment) {
		t.Errorf("final cumulative %v != total %v", last.CumulativeInvestment, plan.TotalInvestment)
	}

	// 2030 and 2031 each carry one split year of the Liikuntahalli project
	// and count it as one building.
	for _, s := range plan.AnnualSummary {
		switch s.Year {
		case 2025:
			if s.BuildingsCount != 1 || !approxEqual(s.TotalInvestment, 1268750) {
				t.Errorf("2025 summary = %+v", s)
			}
		case 2030, 2031:
			if s.BuildingsCount != 1 || !approxEqual(s.TotalInvestment, 2537500) {
				t.Errorf("%d summary = %+v", s.Year, s)
			}
		default:
			if s.BuildingsCount != 0 || !approxEqual(s.TotalInvestment, 0) {
				t.Errorf("%d summary = %+v, want empty", s.Year, s)
			}
		}
	}
}

// A three-year split triggered in the final horizon year spills past EndYear.
// The spill years stay in the schedule and summary so nothing is lost.
func TestGeneratePlan_SplitSpillsPastHorizon(t *testing.T) {
	p := policy.Default()
	params := defaultTestParams()

	// Age 29 in 2039 (the last horizon year); 9000 m2 forces a 3-year
	// split across 2039-2041. JHA 9M, TeknA 4432500, total 4567500.
	buildings := []BuildingInput{
		{ID: 1, Name: "Kampus", AreaM2: 9000, CostPerM2: 1000, ConstructionYear: 2010},
	}

	plan, err := GeneratePlan(buildings, params, p)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	if plan.EndYear != 2039 {
		t.Errorf("end year = %d, want 2039", plan.EndYear)
	}
	if !approxEqual(plan.TotalInvestment, 4567500) {
		t.Errorf("total = %v, want 4567500", plan.TotalInvestment)
	}

	for _, year := range []int{2039, 2040, 2041} {
		got := plan.YearlySchedule[year]
		if len(got) != 1 {
			t.Fatalf("year %d has %d entries, want 1", year, len(got))
		}
		if !approxEqual(got[0].InvestmentAmount, 1522500) {
			t.Errorf("%d amount = %v, want 1522500", year, got[0].InvestmentAmount)
		}
	}

	// Summary extends to cover the spill years and still adds up.
	last := plan.AnnualSummary[len(plan.AnnualSummary)-1]
	if last.Year != 2041 {
		t.Errorf("summary ends at %d, want 2041", last.Year)
	}
	if !approxEqual(last.CumulativeInvestment, plan.TotalInvestment) {
		t.Errorf("final cumulative %v != total %v", last.CumulativeInvestment, plan.TotalInvestment)
	}
}

func TestGeneratePlan_EmptyPortfolio(t *testing.T) {
	p := policy.Default()
	plan, err := GeneratePlan(nil, defaultTestParams(), p)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}
	if plan.TotalBuildings != 0 || plan.BuildingsNeedingRenovation != 0 {
		t.Errorf("empty portfolio counts: %d/%d", plan.TotalBuildings, plan.BuildingsNeedingRenovation)
	}
	if !approxEqual(plan.TotalInvestment, 0) {
		t.Errorf("total = %v, want 0", plan.TotalInvestment)
	}
	if len(plan.AnnualSummary) != 15 {
		t.Errorf("summary covers %d years, want 15", len(plan.AnnualSummary))
	}
}

func TestGeneratePlan_RejectsBadParameters(t *testing.T) {
	p := policy.Default()
	base := defaultTestParams()

	tests := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"threshold zero", func(pp *Parameters) { pp.TriggerThreshold = 0 }},
		{"threshold one", func(pp *Parameters) { pp.TriggerThreshold = 1.0 }},
		{"threshold above one", func(pp *Parameters) { pp.TriggerThreshold = 1.5 }},
		{"threshold negative", func(pp *Parameters) { pp.TriggerThreshold = -0.2 }},
		{"target below half", func(pp *Parameters) { pp.TargetPercentage = 0.4 }},
		{"horizon zero", func(pp *Parameters) { pp.PlanningHorizonYears = 0 }},
		{"horizon negative", func(pp *Parameters) { pp.PlanningHorizonYears = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base
			tt.mutate(&params)
			if _, err := GeneratePlan(nil, params, p); err == nil {
				t.Error("expected parameter validation error, got nil")
			}
		})
	}

	// Boundary values that must pass.
	ok := base
	ok.TargetPercentage = 0.5
	ok.PlanningHorizonYears = 1
	if _, err := GeneratePlan(nil, ok, p); err != nil {
		t.Errorf("boundary parameters rejected: %v", err)
	}
}

func TestGeneratePlan_ZeroCostEventStillCounted(t *testing.T) {
	p := policy.Default()
	params := Parameters{
		TriggerThreshold:     0.90,
		TargetPercentage:     0.50,
		PlanningHorizonYears: 10,
		StartYear:            2025,
	}

	// Triggers immediately but the 50% target is already met: a zero-cost
	// entry is scheduled and the building counted as needing renovation.
	buildings := []BuildingInput{
		{ID: 1, Name: "Terveysasema", AreaM2: 1000, CostPerM2: 100, ConstructionYear: 2015},
	}

	plan, err := GeneratePlan(buildings, params, p)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}
	if plan.BuildingsNeedingRenovation != 1 {
		t.Errorf("buildings needing renovation = %d, want 1", plan.BuildingsNeedingRenovation)
	}
	got := plan.YearlySchedule[2025]
	if len(got) != 1 {
		t.Fatalf("2025 has %d entries, want 1", len(got))
	}
	if !approxEqual(got[0].InvestmentAmount, 0) {
		t.Errorf("amount = %v, want 0", got[0].InvestmentAmount)
	}
	if !approxEqual(plan.TotalInvestment, 0) {
		t.Errorf("total = %v, want 0", plan.TotalInvestment)
	}
}

func TestDefaultParameters(t *testing.T) {
	p := policy.Default()
	params := DefaultParameters(2026, p)

	if params.TriggerThreshold != p.DefaultTriggerThreshold {
		t.Errorf("trigger = %v, want %v", params.TriggerThreshold, p.DefaultTriggerThreshold)
	}
	if params.StartYear != 2026 {
		t.Errorf("start year = %d, want 2026", params.StartYear)
	}
	if _, err := GeneratePlan(nil, params, p); err != nil {
		t.Errorf("default parameters failed validation: %v", err)
	}
}
