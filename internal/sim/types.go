package sim

import "sort"

// RunConfig carries the time span, output grid and integration settings
// shared by every scenario in a sweep.
type RunConfig struct {
	T0 float64
	TF float64

	// OutputEvery spaces a uniform output grid over [T0, TF]. Ignored when
	// OutputGrid is set explicitly.
	OutputEvery float64
	OutputGrid  []float64

	AbsTol float64
	RelTol float64

	InitialStep float64
	MinStep     float64
	MaxStep     float64
	MaxSteps    int

	// ClampLimit is the fraction of species that may be clamped to zero on
	// a single accepted step before the run is treated as numerically
	// unstable.
	ClampLimit float64

	// Workers bounds concurrent scenario runs. Zero means one worker per
	// scenario.
	Workers int
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		T0:          0,
		TF:          24.0,
		OutputEvery: 1.0,
		AbsTol:      1e-8,
		RelTol:      1e-6,
		InitialStep: 0.01,
		MinStep:     1e-10,
		MaxStep:     1.0,
		MaxSteps:    100000,
		ClampLimit:  0.5,
	}
}

// Validate checks the time span, output grid and integration settings.
// Violations are ConfigErrors, raised before any integration begins.
func (c RunConfig) Validate() error {
	if c.TF <= c.T0 {
		return configf("time span", "t0=%v tf=%v", c.T0, c.TF)
	}
	if c.AbsTol <= 0 || c.RelTol <= 0 {
		return configf("tolerance", "abs=%v rel=%v, both must be positive", c.AbsTol, c.RelTol)
	}
	if c.MinStep <= 0 || c.MaxStep < c.MinStep {
		return configf("step bounds", "min=%v max=%v", c.MinStep, c.MaxStep)
	}
	if c.InitialStep <= 0 {
		return configf("initial step", "%v", c.InitialStep)
	}
	if c.MaxSteps <= 0 {
		return configf("step budget", "%d", c.MaxSteps)
	}
	if c.ClampLimit <= 0 || c.ClampLimit > 1 {
		return configf("clamp limit", "%v, must be in (0, 1]", c.ClampLimit)
	}
	if len(c.OutputGrid) > 0 {
		prev := c.OutputGrid[0]
		if prev < c.T0 || prev > c.TF {
			return configf("output grid", "point %v outside [%v, %v]", prev, c.T0, c.TF)
		}
		for _, t := range c.OutputGrid[1:] {
			if t <= prev {
				return configf("output grid", "not monotonically increasing at %v", t)
			}
			if t > c.TF {
				return configf("output grid", "point %v outside [%v, %v]", t, c.T0, c.TF)
			}
			prev = t
		}
		return nil
	}
	if c.OutputEvery <= 0 {
		return configf("output interval", "%v", c.OutputEvery)
	}
	return nil
}

// Grid returns the output time grid, building a uniform one from
// OutputEvery when no explicit grid is configured.
func (c RunConfig) Grid() ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(c.OutputGrid) > 0 {
		return append([]float64(nil), c.OutputGrid...), nil
	}
	span := c.TF - c.T0
	n := int(span/c.OutputEvery + 1e-9)
	grid := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		grid = append(grid, c.T0+float64(i)*c.OutputEvery)
	}
	return grid, nil
}

// TimeSeries holds sampled concentrations on the output grid: Values[i][k]
// is species slot k at Times[i]. Successful runs guarantee every value is
// finite and non-negative.
type TimeSeries struct {
	SpeciesIDs []string
	Times      []float64
	Values     [][]float64
}

func (ts *TimeSeries) Len() int { return len(ts.Times) }

// Series extracts one species' trajectory by identifier. The second return
// is false when the species is not part of the model.
func (ts *TimeSeries) Series(id string) ([]float64, bool) {
	slot := -1
	for k, sid := range ts.SpeciesIDs {
		if sid == id {
			slot = k
			break
		}
	}
	if slot < 0 {
		return nil, false
	}
	out := make([]float64, len(ts.Values))
	for i, row := range ts.Values {
		out[i] = row[slot]
	}
	return out, true
}

// Stats summarizes one run's integration effort.
type Stats struct {
	StepsAccepted int
	StepsRejected int
	RateEvals     int
	Clamped       int
}

type Status int

const (
	StatusCompleted Status = iota
	StatusFailed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is one scenario's result within a sweep: either a TimeSeries or a
// failure record with a reason sufficient to classify the error kind.
type Outcome struct {
	Scenario Scenario
	Status   Status
	Reason   string
	Series   *TimeSeries
	Stats    Stats
}

// SweepResult maps scenario identifiers to their outcomes. Keys identify
// results independent of completion order.
type SweepResult struct {
	Model    string
	Outcomes map[string]*Outcome
}

func (r *SweepResult) AllCompleted() bool {
	for _, o := range r.Outcomes {
		if o.Status != StatusCompleted {
			return false
		}
	}
	return true
}

func (r *SweepResult) AnyCancelled() bool {
	for _, o := range r.Outcomes {
		if o.Status == StatusCancelled {
			return true
		}
	}
	return false
}

// IDs returns scenario identifiers in sorted order, optionally filtered by
// status.
func (r *SweepResult) IDs(filter ...Status) []string {
	ids := make([]string, 0, len(r.Outcomes))
	for id, o := range r.Outcomes {
		if len(filter) == 0 {
			ids = append(ids, id)
			continue
		}
		for _, st := range filter {
			if o.Status == st {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids
}
