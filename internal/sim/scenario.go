package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/Pain0430/lead-network-toxicology/internal/integrate"
	"github.com/Pain0430/lead-network-toxicology/internal/kinetics"
)

// Scenario is one parameterized run: the shared model plus a small set of
// overrides applied to private copies of the initial state and parameter
// vector. The base model is never mutated.
type Scenario struct {
	ID               string
	InitialOverrides map[string]float64
	ParamOverrides   map[string]float64
}

// DoseGrid builds one scenario per dose, overriding the named species'
// initial concentration. Scenario IDs embed the dose value.
func DoseGrid(species string, doses []float64) []Scenario {
	scens := make([]Scenario, len(doses))
	for i, d := range doses {
		scens[i] = Scenario{
			ID:               fmt.Sprintf("%s_%g", species, d),
			InitialOverrides: map[string]float64{species: d},
		}
	}
	return scens
}

// resolve checks a scenario's overrides against the model and returns the
// private initial state and parameter vector for the run.
func (sc Scenario) resolve(m *kinetics.Model) (kinetics.State, []float64, error) {
	x0 := m.InitialState()
	for id, v := range sc.InitialOverrides {
		slot, ok := m.SpeciesIndex(id)
		if !ok {
			return nil, nil, configf("scenario "+sc.ID, "override of unknown species %q", id)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, configf("scenario "+sc.ID, "initial override %s=%v", id, v)
		}
		x0[slot] = v
	}
	params := m.ParamValues()
	for id, v := range sc.ParamOverrides {
		slot, ok := m.ParameterIndex(id)
		if !ok {
			return nil, nil, configf("scenario "+sc.ID, "override of unknown parameter %q", id)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, configf("scenario "+sc.ID, "parameter override %s=%v", id, v)
		}
		params[slot] = v
	}
	return x0, params, nil
}

// Phase tracks a run through its lifecycle:
// Built -> Stepping -> {Completed, Failed}.
type Phase int

const (
	PhaseBuilt Phase = iota
	PhaseStepping
	PhaseCompleted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseBuilt:
		return "built"
	case PhaseStepping:
		return "stepping"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// networkSystem adapts a model plus a resolved parameter vector to the
// integrator's System interface. The rates slice is per-run scratch, so a
// networkSystem must not be shared between goroutines.
type networkSystem struct {
	model  *kinetics.Model
	params []float64
	rates  []float64
}

func (s *networkSystem) Dim() int { return s.model.NumSpecies() }

func (s *networkSystem) Derive(t float64, x []float64, dx []float64) {
	s.model.Derive(t, kinetics.State(x), s.params, s.rates, kinetics.State(dx))
}

// Runner integrates a single scenario. All mutable state (current
// concentration vector, step-size controller state) is private to the
// runner, so concurrent runners sharing one model need no locking.
type Runner struct {
	model   *kinetics.Model
	stepper *integrate.RK45
	cfg     RunConfig
	phase   Phase
	stats   Stats
}

func NewRunner(model *kinetics.Model, cfg RunConfig) *Runner {
	return &Runner{
		model:   model,
		stepper: integrate.NewRK45(),
		cfg:     cfg,
		phase:   PhaseBuilt,
	}
}

func (r *Runner) Phase() Phase { return r.phase }
func (r *Runner) Stats() Stats { return r.stats }

// Run integrates the scenario over [T0, TF], sampling onto the output grid
// via dense output. It returns a ConfigError before integration starts, a
// NumericalError when the run itself fails, or the context error when the
// sweep is cancelled mid-run.
func (r *Runner) Run(ctx context.Context, sc Scenario) (*TimeSeries, error) {
	grid, err := r.cfg.Grid()
	if err != nil {
		return nil, err
	}
	x, params, err := sc.resolve(r.model)
	if err != nil {
		return nil, err
	}

	sys := &networkSystem{
		model:  r.model,
		params: params,
		rates:  make([]float64, r.model.NumReactions()),
	}
	rec := newRecorder(grid, r.model.SpeciesIDs())

	r.phase = PhaseStepping
	t := r.cfg.T0
	dt := math.Min(r.cfg.InitialStep, r.cfg.MaxStep)
	rec.start(t, x)

	fail := func(step int, kind error) (*TimeSeries, error) {
		r.phase = PhaseFailed
		return nil, &NumericalError{Scenario: sc.ID, Step: step, Time: t, Kind: kind}
	}

	n := r.model.NumSpecies()
	for attempt := 0; t < r.cfg.TF; attempt++ {
		select {
		case <-ctx.Done():
			r.phase = PhaseFailed
			return nil, ctx.Err()
		default:
		}

		if attempt >= r.cfg.MaxSteps {
			return fail(attempt, ErrMaxSteps)
		}
		if t+dt > r.cfg.TF {
			dt = r.cfg.TF - t
		}

		step := r.stepper.StepAdaptive(sys, x, t, dt, r.cfg.AbsTol, r.cfg.RelTol)
		r.stats.RateEvals += 7

		if !kinetics.State(step.X).IsValid() {
			// A wild step can blow up a valid model; retry smaller before
			// declaring the run non-finite.
			if dt/5 >= r.cfg.MinStep {
				r.stats.StepsRejected++
				dt /= 5
				continue
			}
			return fail(attempt, ErrNonFinite)
		}

		if step.Err > 1 {
			r.stats.StepsRejected++
			if step.NextDt < r.cfg.MinStep {
				return fail(attempt, ErrStepTooSmall)
			}
			dt = step.NextDt
			continue
		}

		tNew := t + dt
		rec.observe(t, tNew, x, step.X, step.K1, step.K7)

		clamped := 0
		for i, v := range step.X {
			if v < 0 {
				step.X[i] = 0
				clamped++
			}
		}
		r.stats.Clamped += clamped
		if float64(clamped) > r.cfg.ClampLimit*float64(n) {
			t = tNew
			return fail(attempt, ErrPervasiveClamp)
		}

		x = step.X
		t = tNew
		dt = math.Max(math.Min(step.NextDt, r.cfg.MaxStep), r.cfg.MinStep)
		r.stats.StepsAccepted++
	}

	rec.finish(t, x)
	r.phase = PhaseCompleted
	return rec.series(), nil
}
