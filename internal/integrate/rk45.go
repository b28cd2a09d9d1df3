// Package integrate provides the adaptive Runge-Kutta stepper used to
// advance reaction-network state vectors, plus the dense-output interpolant
// used to sample trajectories onto an output grid.
package integrate

import "math"

// System is the right-hand side of an ODE system dX/dt = f(t, X).
type System interface {
	Dim() int
	Derive(t float64, x []float64, dx []float64)
}

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// Step is one proposed RK45 step. The caller accepts it when Err <= 1 and
// retries with NextDt otherwise. K1 and K7 are the derivatives at the step
// endpoints, retained for dense-output interpolation (K7 is reusable as the
// next step's K1 when the step is accepted).
type Step struct {
	X      []float64
	K1     []float64
	K7     []float64
	Err    float64
	NextDt float64
}

type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
	pool     *vecPool
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// StepAdaptive proposes the state at t+dt with an embedded 4th/5th order
// error estimate scaled by atol + rtol*max(|x|, |xNew|) per component.
func (r *RK45) StepAdaptive(sys System, x []float64, t, dt, atol, rtol float64) Step {
	n := len(x)
	if r.pool == nil || r.pool.size != n {
		r.pool = newVecPool(n)
	}

	k1 := make([]float64, n)
	sys.Derive(t, x, k1)

	x2 := r.pool.Get()
	for i := 0; i < n; i++ {
		x2[i] = x[i] + dt*b21*k1[i]
	}
	k2 := r.pool.Get()
	sys.Derive(t+a2*dt, x2, k2)

	x3 := r.pool.Get()
	for i := 0; i < n; i++ {
		x3[i] = x[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3 := r.pool.Get()
	sys.Derive(t+a3*dt, x3, k3)

	x4 := r.pool.Get()
	for i := 0; i < n; i++ {
		x4[i] = x[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := r.pool.Get()
	sys.Derive(t+a4*dt, x4, k4)

	x5 := r.pool.Get()
	for i := 0; i < n; i++ {
		x5[i] = x[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := r.pool.Get()
	sys.Derive(t+a5*dt, x5, k5)

	x6 := r.pool.Get()
	for i := 0; i < n; i++ {
		x6[i] = x[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := r.pool.Get()
	sys.Derive(t+dt, x6, k6)

	xNew := make([]float64, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := make([]float64, n)
	sys.Derive(t+dt, xNew, k7)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := atol + rtol*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	for _, v := range [][]float64{x2, x3, x4, x5, x6, k2, k3, k4, k5, k6} {
		r.pool.Put(v)
	}

	var dtNew float64
	if errMax > 1 {
		scale := math.Max(r.minScale, r.safety*math.Pow(errMax, -0.25))
		dtNew = dt * scale
	} else if errMax > 0 {
		scale := math.Min(r.maxScale, r.safety*math.Pow(errMax, -0.2))
		dtNew = dt * scale
	} else {
		dtNew = dt * r.maxScale
	}

	return Step{X: xNew, K1: k1, K7: k7, Err: errMax, NextDt: dtNew}
}
