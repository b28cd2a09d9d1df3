package storage

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Pain0430/lead-network-toxicology/internal/kinetics"
	"github.com/Pain0430/lead-network-toxicology/internal/models"
	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

func sweepResult(t *testing.T) (sim.RunConfig, *sim.SweepResult) {
	t.Helper()
	def, err := models.Get("oxidative_core")
	if err != nil {
		t.Fatal(err)
	}
	m, err := kinetics.Build(def)
	if err != nil {
		t.Fatal(err)
	}
	cfg := sim.DefaultRunConfig()
	cfg.TF = 4

	scens := sim.DoseGrid("Lead", []float64{0, 10})
	// A scenario that exhausts its step budget, to exercise the
	// no-table-for-failures path.
	scens = append(scens, sim.Scenario{
		ID:             "stiff",
		ParamOverrides: map[string]float64{"k_ros_sod": 1e12},
	})

	result, err := sim.NewSweeper(m, cfg).Run(context.Background(), scens)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	return cfg, result
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	cfg, result := sweepResult(t)

	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save(cfg, result)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Model != "oxidative_core" || meta.TF != 4 {
		t.Errorf("metadata = %+v", meta)
	}
	if len(meta.Scenarios) != 3 {
		t.Fatalf("got %d scenario entries, want 3", len(meta.Scenarios))
	}

	byID := map[string]ScenarioMeta{}
	for _, sm := range meta.Scenarios {
		byID[sm.ID] = sm
	}
	if byID["Lead_10"].Status != "completed" || byID["Lead_10"].StepsAccepted == 0 {
		t.Errorf("Lead_10 meta = %+v", byID["Lead_10"])
	}
	if byID["stiff"].Status != "failed" || byID["stiff"].Reason == "" {
		t.Errorf("stiff meta = %+v", byID["stiff"])
	}
}

func TestStore_SeriesRoundTrip(t *testing.T) {
	cfg, result := sweepResult(t)

	st := New(t.TempDir())
	runID, err := st.Save(cfg, result)
	if err != nil {
		t.Fatal(err)
	}

	ts, err := st.LoadSeries(runID, "Lead_10")
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}
	orig := result.Outcomes["Lead_10"].Series

	if len(ts.Times) != len(orig.Times) {
		t.Fatalf("got %d samples, want %d", len(ts.Times), len(orig.Times))
	}
	for i := range orig.Times {
		if math.Abs(ts.Times[i]-orig.Times[i]) > 1e-5 {
			t.Fatalf("time[%d] = %v, want %v", i, ts.Times[i], orig.Times[i])
		}
		for j := range orig.SpeciesIDs {
			// Values survive the 6-decimal CSV encoding.
			if math.Abs(ts.Values[i][j]-orig.Values[i][j]) > 1e-5 {
				t.Fatalf("value[%d][%d] = %v, want %v", i, j, ts.Values[i][j], orig.Values[i][j])
			}
		}
	}
}

func TestStore_FailedScenarioHasNoTable(t *testing.T) {
	cfg, result := sweepResult(t)

	dir := t.TempDir()
	st := New(dir)
	runID, err := st.Save(cfg, result)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, runID, "scenario_stiff.csv")); !os.IsNotExist(err) {
		t.Errorf("failed scenario has a concentration table (err=%v)", err)
	}
	if _, err := st.LoadSeries(runID, "stiff"); err == nil {
		t.Error("LoadSeries succeeded for a failed scenario")
	}
}

func TestStore_List(t *testing.T) {
	cfg, result := sweepResult(t)

	st := New(t.TempDir())
	if sweeps, err := st.List(); err != nil || len(sweeps) != 0 {
		t.Fatalf("empty store: sweeps=%v err=%v", sweeps, err)
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		t.Fatal(err)
	}

	sweeps, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sweeps) != 1 || sweeps[0].ID != runID {
		t.Errorf("List = %+v, want the saved run", sweeps)
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("Lead_2.5"); got != "Lead_2.5" {
		t.Errorf("sanitize(Lead_2.5) = %q", got)
	}
	if got := sanitize("a/b c"); got != "a_b_c" {
		t.Errorf("sanitize(a/b c) = %q", got)
	}
}
