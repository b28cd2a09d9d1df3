package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Pain0430/lead-network-toxicology/internal/kinetics"
	"github.com/Pain0430/lead-network-toxicology/internal/models"
	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

const sampleYAML = `
model:
  name: toy_decay
  species:
    - id: A
      initial: 10
    - id: B
      initial: 0
  parameters:
    - id: k
      value: 0.5
  reactions:
    - id: a_to_b
      reactants:
        - species: A
      products:
        - species: B
      rate:
        kind: mass_action
        constant: k
sweep:
  t0: 0
  tf: 12
  output_every: 0.5
  abs_tol: 1e-6
  workers: 2
  vary:
    species: A
    values: [0, 5, 10]
  scenarios:
    - id: fast
      parameters:
        k: 2
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Definition(t *testing.T) {
	doc, err := Load(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	def := doc.Definition()
	m, err := kinetics.Build(def)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Name() != "toy_decay" {
		t.Errorf("Name = %q", m.Name())
	}
	if m.NumSpecies() != 2 || m.NumReactions() != 1 {
		t.Errorf("got %d species, %d reactions", m.NumSpecies(), m.NumReactions())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load succeeded for missing file")
	}
}

// An unstated stoichiometric coefficient means one.
func TestDefinition_DefaultCoefficient(t *testing.T) {
	doc, err := Load(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	def := doc.Definition()
	if got := def.Reactions[0].Reactants[0].Coeff; got != 1 {
		t.Errorf("reactant coeff = %v, want 1", got)
	}
	if got := def.Reactions[0].Products[0].Coeff; got != 1 {
		t.Errorf("product coeff = %v, want 1", got)
	}
}

func TestRunConfig_MergeOverDefaults(t *testing.T) {
	doc, err := Load(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	cfg := doc.RunConfig()
	def := sim.DefaultRunConfig()

	if cfg.TF != 12 || cfg.OutputEvery != 0.5 || cfg.AbsTol != 1e-6 || cfg.Workers != 2 {
		t.Errorf("stated fields not applied: %+v", cfg)
	}
	// Unstated fields keep engine defaults.
	if cfg.RelTol != def.RelTol || cfg.MaxSteps != def.MaxSteps || cfg.MinStep != def.MinStep {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestRunConfig_EmptySweepIsDefault(t *testing.T) {
	doc := &Document{}
	if got, want := doc.RunConfig(), sim.DefaultRunConfig(); !reflect.DeepEqual(got, want) {
		t.Errorf("empty sweep = %+v, want defaults %+v", got, want)
	}
}

func TestScenarios_VaryPlusExplicit(t *testing.T) {
	doc, err := Load(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	scens := doc.Scenarios()
	if len(scens) != 4 {
		t.Fatalf("got %d scenarios, want 3 vary + 1 explicit", len(scens))
	}
	if scens[0].ID != "A_0" || scens[0].InitialOverrides["A"] != 0 {
		t.Errorf("first vary scenario = %+v", scens[0])
	}
	last := scens[3]
	if last.ID != "fast" || last.ParamOverrides["k"] != 2 {
		t.Errorf("explicit scenario = %+v", last)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	def, err := models.Get("oxidative_core")
	if err != nil {
		t.Fatal(err)
	}
	doc := &Document{
		Model: FromDefinition(def),
		Sweep: Sweep{TF: 24, OutputEvery: 1},
	}

	path := filepath.Join(t.TempDir(), "oxidative.yaml")
	if err := Save(path, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	orig, err := kinetics.Build(def)
	if err != nil {
		t.Fatal(err)
	}
	back, err := kinetics.Build(loaded.Definition())
	if err != nil {
		t.Fatalf("Build after round trip: %v", err)
	}
	if !reflect.DeepEqual(orig.StoichMatrix(), back.StoichMatrix()) {
		t.Error("stoichiometry changed across save/load")
	}
	if !reflect.DeepEqual(orig.InitialState(), back.InitialState()) {
		t.Error("initial state changed across save/load")
	}
	if !reflect.DeepEqual(orig.ParamValues(), back.ParamValues()) {
		t.Error("parameter values changed across save/load")
	}
}

func TestPresets(t *testing.T) {
	if doses := GetPreset("lead_endothelial", "nhanes"); len(doses) != 5 || doses[4] != 20 {
		t.Errorf("nhanes preset = %v", doses)
	}
	if doses := GetPreset("lead_endothelial", "nope"); doses != nil {
		t.Errorf("unknown preset = %v, want nil", doses)
	}
	if doses := GetPreset("nope", "nhanes"); doses != nil {
		t.Errorf("unknown model preset = %v, want nil", doses)
	}
	if names := ListPresets("oxidative_core"); len(names) != 2 {
		t.Errorf("ListPresets = %v", names)
	}
}
