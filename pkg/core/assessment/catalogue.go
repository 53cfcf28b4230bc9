package assessment

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
)

// ComponentDefinition is one fixed catalogue entry a building is scored on.
type ComponentDefinition struct {
	Name        string  `json:"name"`
	FinnishName string  `json:"finnish_name,omitempty"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description,omitempty"`
}

// Catalogue is the active set of component definitions. Weights are expected
// to sum to 1.0; this is enforced at configuration time, not at compute time
// (the aggregator renormalizes over the components actually scored).
type Catalogue struct {
	Components []ComponentDefinition `json:"components"`
}

// DefaultCatalogue returns the nine-component catalogue of the standard
// Finnish building assessment methodology.
func DefaultCatalogue() *Catalogue {
	return &Catalogue{Components: []ComponentDefinition{
		{Name: "structure", FinnishName: "Runko", Weight: 0.30, Description: "Structure and foundation"},
		{Name: "facade_roof", FinnishName: "Julkisivut/Katot", Weight: 0.15, Description: "Facade and roof"},
		{Name: "windows_doors", FinnishName: "Ikkunat/Ovet", Weight: 0.05, Description: "Windows and doors"},
		{Name: "interior_walls", FinnishName: "Väliseinät", Weight: 0.10, Description: "Interior walls"},
		{Name: "interior_finishes", FinnishName: "Sisäpuoleiset pinnat", Weight: 0.13, Description: "Interior finishes"},
		{Name: "heating", FinnishName: "Lämmitys", Weight: 0.05, Description: "Heating systems"},
		{Name: "electrical", FinnishName: "Sähkö", Weight: 0.08, Description: "Electrical and automation"},
		{Name: "plumbing", FinnishName: "Vesi ja viemäri", Weight: 0.08, Description: "Water and sewage"},
		{Name: "hvac", FinnishName: "Ilmanvaihto", Weight: 0.08, Description: "Ventilation"},
	}}
}

// LoadCatalogue reads a component catalogue from an hjson resource file.
// A missing file yields the built-in default; callers log a warning.
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCatalogue(), nil
		}
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}

	var cat Catalogue
	if err := hjson.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue %s: %w", path, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalogue %s: %w", path, err)
	}
	return &cat, nil
}

// Validate enforces the configuration-time invariants: unique names,
// weights in (0,1], and a weight sum of 1.0 within tolerance.
func (c *Catalogue) Validate() error {
	if len(c.Components) == 0 {
		return fmt.Errorf("catalogue has no components")
	}
	seen := make(map[string]bool, len(c.Components))
	sum := 0.0
	for _, comp := range c.Components {
		if comp.Name == "" {
			return fmt.Errorf("component with empty name")
		}
		if seen[comp.Name] {
			return fmt.Errorf("duplicate component %q", comp.Name)
		}
		seen[comp.Name] = true
		if comp.Weight <= 0 || comp.Weight > 1 {
			return fmt.Errorf("component %q weight %v outside (0,1]", comp.Name, comp.Weight)
		}
		sum += comp.Weight
	}
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("component weights sum to %v, expected 1.0", sum)
	}
	return nil
}

// Weights returns the catalogue as a name->weight map for the aggregator.
func (c *Catalogue) Weights() map[string]float64 {
	w := make(map[string]float64, len(c.Components))
	for _, comp := range c.Components {
		w[comp.Name] = comp.Weight
	}
	return w
}
