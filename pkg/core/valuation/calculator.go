// Package valuation computes the point-in-time technical valuation of a
// building: replacement value (JHA), age-depreciated technical value (TeknA),
// condition ratio (kla) and the repair-debt breakdown (pptarve/kptarve).
// Every function here is a pure function of its inputs and the policy.
package valuation

import (
	"fmt"

	"finnvesta/pkg/core/policy"
)

// Input holds the building fields the calculator needs.
type Input struct {
	CostPerM2        float64 `json:"cost_per_m2"`
	AreaM2           float64 `json:"area_m2"`
	ConstructionYear int     `json:"construction_year"`
	EvaluationYear   int     `json:"evaluation_year"`
}

// Valuation is one computed snapshot for one building at one evaluation year.
// Never mutated; recomputed on demand.
type Valuation struct {
	EvaluationYear int `json:"evaluation_year"`
	BuildingAge    int `json:"building_age"`

	ReplacementValue float64 `json:"replacement_value"` // JHA
	AnnualDepreciation float64 `json:"annual_depreciation"`
	TechnicalValue   float64 `json:"technical_value"` // TeknA
	ConditionRatio   float64 `json:"condition_ratio"` // kla = TeknA/JHA

	// Repair-debt components. At most one is nonzero.
	Pptarve    float64 `json:"pptarve"`     // major-renovation need (kla below improvement tier)
	Kptarve    float64 `json:"kptarve"`     // maintenance need (kla in maintenance tier)
	RepairDebt float64 `json:"repair_debt"` // pptarve + kptarve
}

// ReplacementValue computes JHA = cost_per_m2 × area_m2.
func ReplacementValue(areaM2, costPerM2 float64) float64 {
	return areaM2 * costPerM2
}

// AnnualDepreciation computes the yearly straight-line write-down of JHA.
func AnnualDepreciation(replacementValue float64, p policy.Policy) float64 {
	return replacementValue * p.AnnualDepreciationRate
}

// BuildingAge computes age at the evaluation year, clamped at 0 for
// buildings evaluated before their construction year.
func BuildingAge(constructionYear, evaluationYear int) int {
	age := evaluationYear - constructionYear
	if age < 0 {
		return 0
	}
	return age
}

// TechnicalValue computes TeknA = JHA − depreciation × age, floored at 0 and
// capped at JHA.
func TechnicalValue(replacementValue, annualDepreciation float64, age int) float64 {
	tekna := replacementValue - annualDepreciation*float64(age)
	if tekna < 0 {
		return 0
	}
	if tekna > replacementValue {
		return replacementValue
	}
	return tekna
}

// ConditionRatio computes kla = TeknA / JHA. A zero JHA signals a data error
// upstream; callers must have rejected it already, so 0 is returned.
func ConditionRatio(technicalValue, replacementValue float64) float64 {
	if replacementValue == 0 {
		return 0
	}
	return technicalValue / replacementValue
}

// RepairDebt computes the pptarve/kptarve split for a condition ratio.
//
// Tiers (boundaries from policy, defaults 0.60 / 0.75):
//   - kla >= maintenance threshold: no debt
//   - improvement threshold <= kla < maintenance threshold: kptarve raises
//     the building to the maintenance target (default 75% of JHA)
//   - kla < improvement threshold: pptarve raises it to the improvement
//     target (default 120% of JHA)
func RepairDebt(conditionRatio, replacementValue, technicalValue float64, p policy.Policy) (pptarve, kptarve float64) {
	switch {
	case conditionRatio >= p.MaintenanceThreshold:
		return 0, 0
	case conditionRatio >= p.ImprovementThreshold:
		kptarve = replacementValue*p.MaintenanceTarget - technicalValue
		if kptarve < 0 {
			kptarve = 0
		}
		return 0, kptarve
	default:
		pptarve = replacementValue*p.ImprovementTarget - technicalValue
		if pptarve < 0 {
			pptarve = 0
		}
		return pptarve, 0
	}
}

// Compute runs the full valuation for one building at one evaluation year.
// Non-positive cost or area is a data-validation error: the ratio TeknA/JHA
// would be undefined.
func Compute(in Input, p policy.Policy) (*Valuation, error) {
	if in.CostPerM2 <= 0 {
		return nil, fmt.Errorf("cost_per_m2 must be positive, got %v", in.CostPerM2)
	}
	if in.AreaM2 <= 0 {
		return nil, fmt.Errorf("area_m2 must be positive, got %v", in.AreaM2)
	}

	jha := ReplacementValue(in.AreaM2, in.CostPerM2)
	dep := AnnualDepreciation(jha, p)
	age := BuildingAge(in.ConstructionYear, in.EvaluationYear)
	tekna := TechnicalValue(jha, dep, age)
	kla := ConditionRatio(tekna, jha)
	pptarve, kptarve := RepairDebt(kla, jha, tekna, p)

	return &Valuation{
		EvaluationYear:     in.EvaluationYear,
		BuildingAge:        age,
		ReplacementValue:   jha,
		AnnualDepreciation: dep,
		TechnicalValue:     tekna,
		ConditionRatio:     kla,
		Pptarve:            pptarve,
		Kptarve:            kptarve,
		RepairDebt:         pptarve + kptarve,
	}, nil
}
