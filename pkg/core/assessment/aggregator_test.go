package assessment

import (
	"math"
	"testing"
)

func TestWeightedScore_FullInspection(t *testing.T) {
	weights := DefaultCatalogue().Weights()

	// All nine components scored 4 -> weighted average is exactly 4
	// regardless of weights.
	scores := map[string]int{}
	for name := range weights {
		scores[name] = 4
	}

	got, ok := WeightedScore(scores, weights)
	if !ok {
		t.Fatal("full inspection reported as not assessed")
	}
	if math.Abs(got-4.0) > 1e-9 {
		t.Errorf("uniform scores of 4 should average 4.0, got %v", got)
	}
}

func TestWeightedScore_StandardWeights(t *testing.T) {
	weights := DefaultCatalogue().Weights()

	// Mixed inspection: structure poor, everything else good.
	scores := map[string]int{
		"structure":         2,
		"facade_roof":       4,
		"windows_doors":     4,
		"interior_walls":    4,
		"interior_finishes": 4,
		"heating":           4,
		"electrical":        4,
		"plumbing":          4,
		"hvac":              4,
	}

	// 2*0.30 + 4*0.70 = 3.40
	got, ok := WeightedScore(scores, weights)
	if !ok {
		t.Fatal("reported as not assessed")
	}
	t.Logf("PKA with poor structure: %.2f", got)
	if math.Abs(got-3.40) > 1e-9 {
		t.Errorf("PKA = %v, want 3.40", got)
	}
}

func TestWeightedScore_PartialRenormalizes(t *testing.T) {
	weights := map[string]float64{
		"structure": 0.30,
		"heating":   0.05,
		"hvac":      0.08,
	}

	tests := []struct {
		name   string
		scores map[string]int
		want   float64
	}{
		{
			// (5*0.30 + 1*0.05) / 0.35 = 1.55/0.35
			name:   "two of three components",
			scores: map[string]int{"structure": 5, "heating": 1},
			want:   1.55 / 0.35,
		},
		{
			// A single assessed component yields its raw score.
			name:   "single component",
			scores: map[string]int{"hvac": 3},
			want:   3.0,
		},
		{
			// Unknown components are ignored; heating alone remains.
			name:   "unknown component ignored",
			scores: map[string]int{"heating": 2, "elevator": 5},
			want:   2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WeightedScore(tt.scores, weights)
			if !ok {
				t.Fatal("reported as not assessed")
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WeightedScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeightedScore_NotAssessed(t *testing.T) {
	weights := DefaultCatalogue().Weights()

	// No components scored: distinct non-error state, never a zero score.
	if got, ok := WeightedScore(map[string]int{}, weights); ok {
		t.Errorf("empty assessment should report not assessed, got %v", got)
	}

	// Only unknown components scored is also "not assessed".
	if got, ok := WeightedScore(map[string]int{"elevator": 3}, weights); ok {
		t.Errorf("unknown-only assessment should report not assessed, got %v", got)
	}
}

func TestWeightedScore_Bounds(t *testing.T) {
	weights := DefaultCatalogue().Weights()

	for score := 1; score <= 5; score++ {
		scores := map[string]int{}
		for name := range weights {
			scores[name] = score
		}
		got, ok := WeightedScore(scores, weights)
		if !ok {
			t.Fatal("reported as not assessed")
		}
		if got < 1.0 || got > 5.0 {
			t.Errorf("weighted score %v outside [1.0, 5.0]", got)
		}
	}
}

func TestValidateScores(t *testing.T) {
	weights := DefaultCatalogue().Weights()

	if err := ValidateScores(map[string]int{"structure": 3}, weights); err != nil {
		t.Errorf("valid scores rejected: %v", err)
	}
	if err := ValidateScores(map[string]int{"structure": 6}, weights); err == nil {
		t.Error("score above 5 not rejected")
	}
	if err := ValidateScores(map[string]int{"structure": 0}, weights); err == nil {
		t.Error("score below 1 not rejected")
	}
	if err := ValidateScores(map[string]int{"elevator": 3}, weights); err == nil {
		t.Error("unknown component not rejected")
	}
}

func TestCatalogue_Validate(t *testing.T) {
	if err := DefaultCatalogue().Validate(); err != nil {
		t.Fatalf("default catalogue invalid: %v", err)
	}

	bad := &Catalogue{Components: []ComponentDefinition{
		{Name: "structure", Weight: 0.30},
		{Name: "roof", Weight: 0.30},
	}}
	if err := bad.Validate(); err == nil {
		t.Error("weights summing to 0.60 not rejected")
	}

	dup := &Catalogue{Components: []ComponentDefinition{
		{Name: "structure", Weight: 0.50},
		{Name: "structure", Weight: 0.50},
	}}
	if err := dup.Validate(); err == nil {
		t.Error("duplicate component not rejected")
	}
}
