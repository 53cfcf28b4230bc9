package valuation

import "finnvesta/pkg/core/policy"

// TrajectoryPoint is one year in a building's projected condition decline.
// The projection is the unrenovated path: age increases by one each year and
// no intervention is modeled.
type TrajectoryPoint struct {
	Year           int     `json:"year"`
	Age            int     `json:"age"`
	TechnicalValue float64 `json:"tekna"`
	ConditionRatio float64 `json:"condition_score"`
}

// ForecastTrajectory projects a building's condition from startYear through
// startYear+yearsAhead inclusive. The zeroth point is the current state.
func ForecastTrajectory(in Input, startYear, yearsAhead int, p policy.Policy) []TrajectoryPoint {
	jha := ReplacementValue(in.AreaM2, in.CostPerM2)
	dep := AnnualDepreciation(jha, p)

	points := make([]TrajectoryPoint, 0, yearsAhead+1)
	for offset := 0; offset <= yearsAhead; offset++ {
		year := startYear + offset
		age := BuildingAge(in.ConstructionYear, year)
		tekna := TechnicalValue(jha, dep, age)
		points = append(points, TrajectoryPoint{
			Year:           year,
			Age:            age,
			TechnicalValue: tekna,
			ConditionRatio: ConditionRatio(tekna, jha),
		})
	}
	return points
}
