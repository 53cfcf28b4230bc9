// Package policy holds the valuation and planning constants in one
// injectable configuration surface. The repair-debt tier boundaries and the
// scheduler's defaults are deliberately defined side by side so they cannot
// drift apart.
package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Policy is the full set of tunable constants for the valuation and PTS
// engines. The engine is a pure function of (data, policy); tests inject
// alternate policies instead of patching globals.
type Policy struct {
	// AnnualDepreciationRate is the straight-line depreciation applied to
	// the replacement value, per year of building age. Finnish standard
	// practice uses 1.75%.
	AnnualDepreciationRate float64 `yaml:"annual_depreciation_rate"`

	// Repair-debt tier boundaries on the condition ratio (kla).
	MaintenanceThreshold float64 `yaml:"maintenance_threshold"` // kla below this needs maintenance (kptarve)
	ImprovementThreshold float64 `yaml:"improvement_threshold"` // kla below this needs major renovation (pptarve)

	// Repair-debt targets as fractions of the replacement value.
	MaintenanceTarget float64 `yaml:"maintenance_target"` // restore to this in the kptarve tier
	ImprovementTarget float64 `yaml:"improvement_target"` // restore to this in the pptarve tier

	// Project split thresholds by building size.
	SplitTwoYearAreaM2   float64 `yaml:"split_two_year_area_m2"`   // area above this splits over 2 years
	SplitThreeYearAreaM2 float64 `yaml:"split_three_year_area_m2"` // area above this splits over 3 years

	// Scheduler defaults, used when a plan request omits parameters.
	DefaultTriggerThreshold float64 `yaml:"default_trigger_threshold"`
	DefaultTargetPercentage float64 `yaml:"default_target_percentage"`
	DefaultHorizonYears     int     `yaml:"default_horizon_years"`
}

// Default returns the standard Finnish methodology policy.
func Default() Policy {
	return Policy{
		AnnualDepreciationRate:  0.0175,
		MaintenanceThreshold:    0.75,
		ImprovementThreshold:    0.60,
		MaintenanceTarget:       0.75,
		ImprovementTarget:       1.20,
		SplitTwoYearAreaM2:      4000,
		SplitThreeYearAreaM2:    8000,
		DefaultTriggerThreshold: 0.50,
		DefaultTargetPercentage: 1.00,
		DefaultHorizonYears:     15,
	}
}

// Load reads a policy YAML file, overlaying it on the defaults so a partial
// file is valid. A missing file is not an error: callers get the defaults
// and are expected to log a warning.
func Load(path string) (Policy, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("failed to read policy file: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid policy in %s: %w", path, err)
	}
	return p, nil
}

// Validate rejects configurations that would make the tier logic nonsensical.
func (p Policy) Validate() error {
	if p.AnnualDepreciationRate <= 0 || p.AnnualDepreciationRate >= 1 {
		return fmt.Errorf("annual_depreciation_rate must be in (0,1), got %v", p.AnnualDepreciationRate)
	}
	if p.ImprovementThreshold <= 0 || p.ImprovementThreshold >= p.MaintenanceThreshold {
		return fmt.Errorf("improvement_threshold (%v) must be positive and below maintenance_threshold (%v)",
			p.ImprovementThreshold, p.MaintenanceThreshold)
	}
	if p.MaintenanceThreshold >= 1 {
		return fmt.Errorf("maintenance_threshold must be below 1, got %v", p.MaintenanceThreshold)
	}
	if p.MaintenanceTarget < p.MaintenanceThreshold {
		return fmt.Errorf("maintenance_target (%v) below maintenance_threshold (%v)", p.MaintenanceTarget, p.MaintenanceThreshold)
	}
	if p.SplitTwoYearAreaM2 <= 0 || p.SplitThreeYearAreaM2 <= p.SplitTwoYearAreaM2 {
		return fmt.Errorf("split thresholds must satisfy 0 < two-year (%v) < three-year (%v)",
			p.SplitTwoYearAreaM2, p.SplitThreeYearAreaM2)
	}
	if p.DefaultHorizonYears < 1 {
		return fmt.Errorf("default_horizon_years must be >= 1, got %d", p.DefaultHorizonYears)
	}
	return nil
}
