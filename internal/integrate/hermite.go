package integrate

// Interpolate evaluates the cubic Hermite interpolant over one accepted step
// [t0, t1] at time t, using the states and derivatives at both endpoints.
// This is the dense-output form matched to the integrator's local solution;
// t must lie within [t0, t1].
func Interpolate(t0, t1 float64, x0, x1, f0, f1 []float64, t float64, out []float64) {
	h := t1 - t0
	if h == 0 {
		copy(out, x1)
		return
	}
	theta := (t - t0) / h
	t2 := theta * theta
	t3 := t2 * theta

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + theta
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	for i := range out {
		out[i] = h00*x0[i] + h10*h*f0[i] + h01*x1[i] + h11*h*f1[i]
	}
}
