package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Pain0430/lead-network-toxicology/internal/kinetics"
	"github.com/Pain0430/lead-network-toxicology/internal/models"
)

func oxidativeModel(t *testing.T) *kinetics.Model {
	t.Helper()
	def, err := models.Get("oxidative_core")
	if err != nil {
		t.Fatalf("models.Get: %v", err)
	}
	m, err := kinetics.Build(def)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func TestRunner_CompletesOnOutputGrid(t *testing.T) {
	m := oxidativeModel(t)
	cfg := DefaultRunConfig()

	r := NewRunner(m, cfg)
	ts, err := r.Run(context.Background(), Scenario{ID: "baseline"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if r.Phase() != PhaseCompleted {
		t.Errorf("phase = %v, want completed", r.Phase())
	}

	if ts.Len() != 25 {
		t.Fatalf("samples = %d, want 25 (hourly over 24h)", ts.Len())
	}
	for i, tm := range ts.Times {
		if math.Abs(tm-float64(i)) > 1e-9 {
			t.Errorf("grid point %d = %v, want %d", i, tm, i)
		}
	}

	// first sample is the initial state
	if ts.Values[0][0] != 10 || ts.Values[0][1] != 1 {
		t.Errorf("t=0 sample = %v, want initial concentrations", ts.Values[0])
	}
}

func TestRunner_NonNegativeConcentrations(t *testing.T) {
	m := oxidativeModel(t)
	cfg := DefaultRunConfig()

	r := NewRunner(m, cfg)
	ts, err := r.Run(context.Background(), Scenario{ID: "dose", InitialOverrides: map[string]float64{"Lead": 20}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for i, row := range ts.Values {
		for k, v := range row {
			if v < 0 {
				t.Errorf("negative concentration %v for %s at t=%v", v, ts.SpeciesIDs[k], ts.Times[i])
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("non-finite concentration for %s at t=%v", ts.SpeciesIDs[k], ts.Times[i])
			}
		}
	}
}

func TestRunner_RosProductionBound(t *testing.T) {
	// Lead only decays, so ROS production rate is at most k1*Lead(0) and
	// the trajectory must satisfy ROS(t) <= ROS(0) + k1*Lead(0)*t.
	m := oxidativeModel(t)
	cfg := DefaultRunConfig()

	r := NewRunner(m, cfg)
	ts, err := r.Run(context.Background(), Scenario{ID: "baseline"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	ros, ok := ts.Series("ROS")
	if !ok {
		t.Fatal("no ROS series")
	}
	const k1, lead0, ros0 = 0.1, 10.0, 1.0
	for i, v := range ros {
		bound := ros0 + k1*lead0*ts.Times[i]
		if v > bound+1e-6 {
			t.Errorf("ROS(%v) = %v exceeds production bound %v", ts.Times[i], v, bound)
		}
	}
}

func TestRunner_ZeroDoseEquilibrium(t *testing.T) {
	// With no lead there is no ROS source; the antioxidant pools consume
	// the initial ROS and nothing else moves.
	m := oxidativeModel(t)
	cfg := DefaultRunConfig()

	r := NewRunner(m, cfg)
	ts, err := r.Run(context.Background(), Scenario{ID: "zero", InitialOverrides: map[string]float64{"Lead": 0}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	ros, _ := ts.Series("ROS")
	for i := 1; i < len(ros); i++ {
		if ros[i] > ros[i-1]+1e-9 {
			t.Errorf("ROS increased from %v to %v with no lead", ros[i-1], ros[i])
		}
	}
	if final := ros[len(ros)-1]; final > 0.01 {
		t.Errorf("ROS(24h) = %v, want near zero with no source", final)
	}

	lead, _ := ts.Series("Lead")
	for i, v := range lead {
		if v != 0 {
			t.Errorf("Lead(%v) = %v, want exactly 0", ts.Times[i], v)
		}
	}
}

func TestRunner_Deterministic(t *testing.T) {
	m := oxidativeModel(t)
	cfg := DefaultRunConfig()
	sc := Scenario{ID: "rep", InitialOverrides: map[string]float64{"Lead": 5}}

	ts1, err := NewRunner(m, cfg).Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	ts2, err := NewRunner(m, cfg).Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for i := range ts1.Values {
		for k := range ts1.Values[i] {
			if ts1.Values[i][k] != ts2.Values[i][k] {
				t.Fatalf("runs diverge at t=%v species %s: %v != %v",
					ts1.Times[i], ts1.SpeciesIDs[k], ts1.Values[i][k], ts2.Values[i][k])
			}
		}
	}
}

func TestRunner_CancelledBeforeStart(t *testing.T) {
	m := oxidativeModel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(m, DefaultRunConfig()).Run(ctx, Scenario{ID: "c"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRunner_StepBudgetExceeded(t *testing.T) {
	m := oxidativeModel(t)
	cfg := DefaultRunConfig()
	cfg.MaxSteps = 3

	_, err := NewRunner(m, cfg).Run(context.Background(), Scenario{ID: "tight"})
	if !errors.Is(err, ErrMaxSteps) {
		t.Fatalf("error = %v, want %v", err, ErrMaxSteps)
	}
	var nerr *NumericalError
	if !errors.As(err, &nerr) {
		t.Fatalf("error %T is not a *NumericalError", err)
	}
	if nerr.Scenario != "tight" {
		t.Errorf("scenario = %q, want %q", nerr.Scenario, "tight")
	}
}

func TestRunner_StiffScenarioFails(t *testing.T) {
	// An extreme quench constant makes the ROS equation stiff enough to
	// exhaust a modest step budget.
	m := oxidativeModel(t)
	cfg := DefaultRunConfig()
	cfg.MaxSteps = 500

	sc := Scenario{ID: "stiff", ParamOverrides: map[string]float64{"k_ros_sod": 1e12}}
	_, err := NewRunner(m, cfg).Run(context.Background(), sc)
	if err == nil {
		t.Fatal("stiff run completed, want numerical failure")
	}
	var nerr *NumericalError
	if !errors.As(err, &nerr) {
		t.Fatalf("error %T is not a *NumericalError: %v", err, err)
	}
}

func TestRunner_UnknownOverrideIsConfigError(t *testing.T) {
	m := oxidativeModel(t)

	_, err := NewRunner(m, DefaultRunConfig()).Run(context.Background(),
		Scenario{ID: "bad", InitialOverrides: map[string]float64{"Mercury": 1}})

	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error %T = %v, want *ConfigError", err, err)
	}
}

func TestRunner_ExplicitOutputGrid(t *testing.T) {
	m := oxidativeModel(t)
	cfg := DefaultRunConfig()
	cfg.OutputGrid = []float64{0, 0.5, 6, 23.25, 24}

	ts, err := NewRunner(m, cfg).Run(context.Background(), Scenario{ID: "grid"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if ts.Len() != 5 {
		t.Fatalf("samples = %d, want 5", ts.Len())
	}
	for i, want := range cfg.OutputGrid {
		if ts.Times[i] != want {
			t.Errorf("grid point %d = %v, want %v", i, ts.Times[i], want)
		}
	}
}

func TestRunConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunConfig)
	}{
		{"reversed span", func(c *RunConfig) { c.TF = c.T0 }},
		{"zero abs tol", func(c *RunConfig) { c.AbsTol = 0 }},
		{"negative rel tol", func(c *RunConfig) { c.RelTol = -1 }},
		{"min above max step", func(c *RunConfig) { c.MinStep = 2; c.MaxStep = 1 }},
		{"zero initial step", func(c *RunConfig) { c.InitialStep = 0 }},
		{"zero step budget", func(c *RunConfig) { c.MaxSteps = 0 }},
		{"clamp limit above one", func(c *RunConfig) { c.ClampLimit = 1.5 }},
		{"zero output interval", func(c *RunConfig) { c.OutputEvery = 0 }},
		{"non-monotonic grid", func(c *RunConfig) { c.OutputGrid = []float64{0, 5, 5} }},
		{"grid outside span", func(c *RunConfig) { c.OutputGrid = []float64{0, 30} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Errorf("error %T = %v, want *ConfigError", err, err)
			}
		})
	}

	if err := DefaultRunConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestRunConfig_Grid(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.TF = 4
	cfg.OutputEvery = 2

	grid, err := cfg.Grid()
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}
	want := []float64{0, 2, 4}
	if len(grid) != len(want) {
		t.Fatalf("grid = %v, want %v", grid, want)
	}
	for i := range want {
		if math.Abs(grid[i]-want[i]) > 1e-12 {
			t.Errorf("grid[%d] = %v, want %v", i, grid[i], want[i])
		}
	}
}
