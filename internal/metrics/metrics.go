// Package metrics provides streaming diagnostics over recorded
// concentration trajectories.
package metrics

import (
	"fmt"
	"math"

	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

// Metric accumulates a scalar diagnostic over (time, concentrations)
// samples.
type Metric interface {
	Name() string
	Observe(t float64, x []float64)
	Value() float64
	Reset()
}

// Apply feeds every recorded sample of a time series through the given
// metrics.
func Apply(ts *sim.TimeSeries, ms ...Metric) {
	for i, t := range ts.Times {
		for _, m := range ms {
			m.Observe(t, ts.Values[i])
		}
	}
}

// NonNegativity reports the fraction of samples in which every
// concentration stayed at or above -tol.
type NonNegativity struct {
	name       string
	tol        float64
	violations int
	samples    int
}

func NewNonNegativity(tol float64) *NonNegativity {
	return &NonNegativity{name: "non_negativity", tol: tol}
}

func (n *NonNegativity) Name() string { return n.name }

func (n *NonNegativity) Observe(t float64, x []float64) {
	n.samples++
	for _, val := range x {
		if val < -n.tol {
			n.violations++
			break
		}
	}
}

func (n *NonNegativity) Value() float64 {
	if n.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(n.violations)/float64(n.samples)
}

func (n *NonNegativity) Reset() {
	n.violations = 0
	n.samples = 0
}

// Drift tracks the maximum relative deviation of a summed species group
// from its initial total. A conserved moiety should hold it near zero.
type Drift struct {
	name     string
	slots    []int
	initial  float64
	maxDrift float64
	samples  int
}

func NewDrift(name string, slots []int) *Drift {
	return &Drift{name: name, slots: slots}
}

func (d *Drift) Name() string { return d.name }

func (d *Drift) Observe(t float64, x []float64) {
	total := 0.0
	for _, slot := range d.slots {
		total += x[slot]
	}
	if d.samples == 0 {
		d.initial = total
	}
	d.samples++
	if d.initial != 0 {
		drift := math.Abs(total-d.initial) / math.Abs(d.initial)
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

func (d *Drift) Value() float64 { return d.maxDrift }

func (d *Drift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}

// GroupSlots maps species identifiers to their column positions within a
// time series.
func GroupSlots(ts *sim.TimeSeries, ids ...string) ([]int, error) {
	slots := make([]int, 0, len(ids))
	for _, id := range ids {
		found := -1
		for i, sid := range ts.SpeciesIDs {
			if sid == id {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("unknown species: %s", id)
		}
		slots = append(slots, found)
	}
	return slots, nil
}
