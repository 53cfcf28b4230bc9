package assessment

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalogue_MissingFileUsesDefault(t *testing.T) {
	cat, err := LoadCatalogue(filepath.Join(t.TempDir(), "nope.hjson"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(cat.Components) != 9 {
		t.Errorf("default catalogue has %d components, want 9", len(cat.Components))
	}
}

func TestLoadCatalogue_Hjson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "components.hjson")
	content := `{
  # two-component test catalogue
  components: [
    {
      name: structure
      finnish_name: Runko
      weight: 0.7
    }
    {
      name: hvac
      weight: 0.3
    }
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalogue(path)
	if err != nil {
		t.Fatalf("LoadCatalogue failed: %v", err)
	}
	if len(cat.Components) != 2 {
		t.Fatalf("got %d components, want 2", len(cat.Components))
	}
	weights := cat.Weights()
	if weights["structure"] != 0.7 || weights["hvac"] != 0.3 {
		t.Errorf("weights = %v", weights)
	}
}

func TestLoadCatalogue_RejectsBadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "components.hjson")
	content := `{components: [{name: structure, weight: 0.5}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalogue(path); err == nil {
		t.Error("weight sum of 0.5 not rejected")
	}
}
