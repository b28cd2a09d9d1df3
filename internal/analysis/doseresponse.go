package analysis

import (
	"fmt"
	"sort"

	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

// ResponsePoint is one dose-response sample: the varied input level against
// the chosen response metric of a target species.
type ResponsePoint struct {
	Dose  float64
	Value float64
}

// DoseResponse extracts a dose-response curve from a sweep whose scenarios
// varied the initial value of the species named by varied. The response is
// the given Summary metric of the target species. Only completed scenarios
// contribute; points are sorted by dose.
func DoseResponse(result *sim.SweepResult, varied, target, metric string) ([]ResponsePoint, error) {
	points := make([]ResponsePoint, 0, len(result.Outcomes))
	for _, id := range result.IDs(sim.StatusCompleted) {
		o := result.Outcomes[id]
		dose, ok := o.Scenario.InitialOverrides[varied]
		if !ok {
			continue // scenario did not vary the dose axis
		}
		values, ok := o.Series.Series(target)
		if !ok {
			return nil, fmt.Errorf("analysis: species %q not in series of scenario %q", target, id)
		}
		v, err := SummarizeSeries(o.Series.Times, values).Metric(metric)
		if err != nil {
			return nil, err
		}
		points = append(points, ResponsePoint{Dose: dose, Value: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Dose < points[j].Dose })
	return points, nil
}

// StrictlyIncreasing reports whether each response value exceeds the one at
// the next lower dose.
func StrictlyIncreasing(points []ResponsePoint) bool {
	for i := 1; i < len(points); i++ {
		if points[i].Value <= points[i-1].Value {
			return false
		}
	}
	return true
}
