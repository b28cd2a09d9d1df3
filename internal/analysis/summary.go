package analysis

import (
	"fmt"

	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

// Summary condenses one species' trajectory into the scalar features the
// statistical-mediation pipeline consumes. Inputs from completed runs are
// finite and non-negative, so summaries are too.
type Summary struct {
	SteadyState float64 `json:"steady_state_value"`
	Peak        float64 `json:"peak_value"`
	TimeToPeak  float64 `json:"time_to_peak"`
	AUC         float64 `json:"area_under_curve"`
}

// Summarize computes a Summary per species from a sampled time series.
func Summarize(ts *sim.TimeSeries) map[string]Summary {
	out := make(map[string]Summary, len(ts.SpeciesIDs))
	for k, id := range ts.SpeciesIDs {
		values := make([]float64, len(ts.Values))
		for i, row := range ts.Values {
			values[i] = row[k]
		}
		out[id] = SummarizeSeries(ts.Times, values)
	}
	return out
}

// SummarizeSeries summarizes a single trajectory. SteadyState is the value
// at the final output time; Peak and TimeToPeak locate the first maximum;
// AUC is the trapezoidal area over the output grid.
func SummarizeSeries(times, values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{
		SteadyState: values[len(values)-1],
		Peak:        values[0],
		TimeToPeak:  times[0],
	}
	for i := 1; i < len(values); i++ {
		if values[i] > s.Peak {
			s.Peak = values[i]
			s.TimeToPeak = times[i]
		}
		s.AUC += 0.5 * (values[i] + values[i-1]) * (times[i] - times[i-1])
	}
	return s
}

// Metric selects one Summary field by name: "steady_state", "peak",
// "time_to_peak" or "auc".
func (s Summary) Metric(name string) (float64, error) {
	switch name {
	case "steady_state":
		return s.SteadyState, nil
	case "peak":
		return s.Peak, nil
	case "time_to_peak":
		return s.TimeToPeak, nil
	case "auc":
		return s.AUC, nil
	default:
		return 0, fmt.Errorf("analysis: unknown metric %q", name)
	}
}
