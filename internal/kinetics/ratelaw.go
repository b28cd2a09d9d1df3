package kinetics

import "math"

// RateLaw is a compiled kinetic law. Rate must be a pure function of
// (state, params) so laws can be shared across concurrent scenario runs.
type RateLaw interface {
	Kind() RateKind
	Rate(x State, params []float64) float64
}

// massAction computes k * prod(reactant^coeff). With no reactant terms the
// law is zero-order: a constant source at rate k.
type massAction struct {
	k     int
	terms []netTerm // reactant slots with their coefficients
}

func (l *massAction) Kind() RateKind { return MassAction }

func (l *massAction) Rate(x State, params []float64) float64 {
	rate := params[l.k]
	for _, t := range l.terms {
		if t.coeff == 1 {
			rate *= x[t.slot]
		} else {
			rate *= math.Pow(x[t.slot], t.coeff)
		}
	}
	return rate
}

type michaelisMenten struct {
	vmax      int
	km        int
	substrate int
}

func (l *michaelisMenten) Kind() RateKind { return MichaelisMenten }

func (l *michaelisMenten) Rate(x State, params []float64) float64 {
	s := x[l.substrate]
	return params[l.vmax] * s / (params[l.km] + s)
}

type hillLaw struct {
	vmax      int
	km        int
	n         float64
	substrate int
}

func (l *hillLaw) Kind() RateKind { return Hill }

func (l *hillLaw) Rate(x State, params []float64) float64 {
	sn := math.Pow(x[l.substrate], l.n)
	kn := math.Pow(params[l.km], l.n)
	return params[l.vmax] * sn / (kn + sn)
}
