package models

import (
	"context"
	"math"
	"testing"

	"github.com/Pain0430/lead-network-toxicology/internal/kinetics"
	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

func TestRegistry_AllModelsBuild(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			def, err := Get(name)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			m, err := kinetics.Build(def)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if m.NumSpecies() == 0 || m.NumReactions() == 0 {
				t.Errorf("degenerate model: %d species, %d reactions", m.NumSpecies(), m.NumReactions())
			}
		})
	}
}

func TestRegistry_UnknownModel(t *testing.T) {
	_, err := Get("plutonium_core")
	if err == nil {
		t.Fatal("Get succeeded for unknown model")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	names := List()
	for i := 1; i < len(names); i++ {
		if names[i] <= names[i-1] {
			t.Errorf("List not sorted: %v", names)
		}
	}
}

func runModel(t *testing.T, name string, overrides map[string]float64) *sim.TimeSeries {
	t.Helper()
	def, err := Get(name)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	m, err := kinetics.Build(def)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ts, err := sim.NewRunner(m, sim.DefaultRunConfig()).Run(context.Background(),
		sim.Scenario{ID: "t", InitialOverrides: overrides})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return ts
}

func TestEndothelial_BaselineHomeostasis(t *testing.T) {
	// With no lead exposure the pressure loop must hold near its resting
	// point over a full day.
	ts := runModel(t, "lead_endothelial", nil)

	bp, _ := ts.Series("BloodPressure")
	for i, v := range bp {
		if math.Abs(v-120) > 5 {
			t.Errorf("BloodPressure(%vh) = %v, want 120 +/- 5 at baseline", ts.Times[i], v)
		}
	}

	no, _ := ts.Series("NO")
	if final := no[len(no)-1]; math.Abs(final-20) > 3 {
		t.Errorf("NO(24h) = %v, want near resting 20", final)
	}
}

func TestEndothelial_LeadRaisesPressure(t *testing.T) {
	base := runModel(t, "lead_endothelial", nil)
	dosed := runModel(t, "lead_endothelial", map[string]float64{"Lead": 20})

	bp0, _ := base.Series("BloodPressure")
	bp20, _ := dosed.Series("BloodPressure")

	if bp20[len(bp20)-1] <= bp0[len(bp0)-1] {
		t.Errorf("BloodPressure(24h): dosed %v <= baseline %v, want hypertensive shift",
			bp20[len(bp20)-1], bp0[len(bp0)-1])
	}

	no0, _ := base.Series("NO")
	no20, _ := dosed.Series("NO")
	if no20[len(no20)-1] >= no0[len(no0)-1] {
		t.Errorf("NO(24h): dosed %v >= baseline %v, want impaired vasodilation",
			no20[len(no20)-1], no0[len(no0)-1])
	}
}

func TestMacrophage_LeadDrivesCytokines(t *testing.T) {
	base := runModel(t, "lead_macrophage", nil)
	dosed := runModel(t, "lead_macrophage", map[string]float64{"Lead": 20})

	for _, cytokine := range []string{"TNF", "IL6", "IL1b"} {
		b, _ := base.Series(cytokine)
		d, _ := dosed.Series(cytokine)
		if d[len(d)-1] <= b[len(b)-1] {
			t.Errorf("%s(24h): dosed %v <= baseline %v, want inflammatory induction",
				cytokine, d[len(d)-1], b[len(b)-1])
		}
	}

	nf, _ := dosed.Series("NFkB_n")
	nfBase, _ := base.Series("NFkB_n")
	if nf[len(nf)-1] <= nfBase[len(nfBase)-1] {
		t.Errorf("nuclear NF-kB: dosed %v <= baseline %v", nf[len(nf)-1], nfBase[len(nfBase)-1])
	}
}

func TestOxidativeCore_LeadConvertsToRos(t *testing.T) {
	ts := runModel(t, "oxidative_core", nil)

	lead, _ := ts.Series("Lead")
	if lead[len(lead)-1] >= lead[0] {
		t.Errorf("Lead did not decay: %v -> %v", lead[0], lead[len(lead)-1])
	}
	sod, _ := ts.Series("SOD")
	if sod[len(sod)-1] >= sod[0] {
		t.Errorf("SOD not consumed: %v -> %v", sod[0], sod[len(sod)-1])
	}
}
