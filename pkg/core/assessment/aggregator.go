// Package assessment implements the qualitative side of building condition
// tracking: the component catalogue and the PKA weighted score. PKA is a
// diagnostic figure; it never feeds the deterministic valuation, which runs
// purely off age and depreciation.
package assessment

import "fmt"

// WeightedScore reduces a partial map of component scores (1-5) into a single
// weighted average in [1.0, 5.0]. Components absent from the assessment are
// excluded and the remaining weights renormalized to sum to 1, so a partial
// inspection still yields a meaningful figure.
//
// The second return value is false when no catalogued component was scored:
// "not assessed" is a distinct non-error state callers must handle, never
// reported as zero.
func WeightedScore(scores map[string]int, weights map[string]float64) (float64, bool) {
	var weightSum, acc float64
	for name, score := range scores {
		w, ok := weights[name]
		if !ok {
			continue // unknown component, not part of the catalogue
		}
		weightSum += w
		acc += float64(score) * w
	}
	if weightSum == 0 {
		return 0, false
	}
	return acc / weightSum, true
}

// ValidateScores rejects scores outside the 1-5 scale or naming components
// not present in the catalogue.
func ValidateScores(scores map[string]int, weights map[string]float64) error {
	for name, score := range scores {
		if _, ok := weights[name]; !ok {
			return fmt.Errorf("unknown component %q", name)
		}
		if score < 1 || score > 5 {
			return fmt.Errorf("component %q score %d outside 1-5 scale", name, score)
		}
	}
	return nil
}
