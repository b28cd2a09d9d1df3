package sim

import "github.com/Pain0430/lead-network-toxicology/internal/integrate"

// recorder samples an integrator's accepted steps onto the requested output
// grid using the dense-output interpolant. It never extrapolates: each grid
// point is filled from the accepted step that crosses it.
type recorder struct {
	grid  []float64
	next  int
	ids   []string
	times []float64
	rows  [][]float64
	eps   float64
}

func newRecorder(grid []float64, speciesIDs []string) *recorder {
	eps := 0.0
	if len(grid) > 0 {
		eps = 1e-9 * (grid[len(grid)-1] - grid[0] + 1)
	}
	return &recorder{
		grid:  grid,
		ids:   speciesIDs,
		times: make([]float64, 0, len(grid)),
		rows:  make([][]float64, 0, len(grid)),
		eps:   eps,
	}
}

func (rec *recorder) record(t float64, x []float64) {
	row := make([]float64, len(x))
	for i, v := range x {
		if v < 0 {
			v = 0 // interpolant may undershoot between non-negative endpoints
		}
		row[i] = v
	}
	rec.times = append(rec.times, t)
	rec.rows = append(rec.rows, row)
	rec.next++
}

// start records any grid points coinciding with t0.
func (rec *recorder) start(t0 float64, x0 []float64) {
	for rec.next < len(rec.grid) && rec.grid[rec.next] <= t0+rec.eps {
		rec.record(rec.grid[rec.next], x0)
	}
}

// observe records every grid point crossed by the accepted step [t0, t1].
func (rec *recorder) observe(t0, t1 float64, x0, x1, f0, f1 []float64) {
	buf := make([]float64, len(x0))
	for rec.next < len(rec.grid) && rec.grid[rec.next] <= t1+rec.eps {
		integrate.Interpolate(t0, t1, x0, x1, f0, f1, rec.grid[rec.next], buf)
		rec.record(rec.grid[rec.next], buf)
	}
}

// finish records grid points left unreached by float rounding of the final
// step; they coincide with tf within tolerance.
func (rec *recorder) finish(tf float64, x []float64) {
	for rec.next < len(rec.grid) && rec.grid[rec.next] <= tf+rec.eps {
		rec.record(rec.grid[rec.next], x)
	}
}

func (rec *recorder) series() *TimeSeries {
	return &TimeSeries{SpeciesIDs: rec.ids, Times: rec.times, Values: rec.rows}
}
