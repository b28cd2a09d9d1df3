package kinetics

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Min() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0]
	for _, v := range s[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

type Species struct {
	ID          string
	Name        string
	Initial     float64
	Unit        string
	Compartment string
}

type Parameter struct {
	ID    string
	Value float64
	Unit  string
}

type Compartment struct {
	ID   string
	Name string
}

// Stoich pairs a species identifier with its stoichiometric coefficient.
type Stoich struct {
	Species string
	Coeff   float64
}

type RateKind string

const (
	MassAction      RateKind = "mass_action"
	MichaelisMenten RateKind = "michaelis_menten"
	Hill            RateKind = "hill"
)

// RateDef declares a reaction's kinetic law by referencing parameter and
// species identifiers. Which fields are read depends on Kind:
//
//   - MassAction: Constant (rate = k * prod reactant^coeff, zero-order
//     when the reaction has no reactants)
//   - MichaelisMenten: Vmax, Km, Substrate (rate = Vmax*X / (Km+X))
//   - Hill: Vmax, Km, Exponent, Substrate (rate = Vmax*X^n / (Km^n+X^n))
type RateDef struct {
	Kind      RateKind
	Constant  string
	Vmax      string
	Km        string
	Exponent  float64
	Substrate string
}

type ReactionDef struct {
	ID        string
	Reactants []Stoich
	Products  []Stoich
	Rate      RateDef
}

// Definition is the declarative table form of a reaction network (the model
// definition input). It carries no derived structure; Build compiles and
// validates it.
type Definition struct {
	Name         string
	Compartments []Compartment
	Species      []Species
	Parameters   []Parameter
	Reactions    []ReactionDef
}

// Model is a compiled, immutable reaction network. Species occupy fixed
// state-vector slots resolved at build time; rate laws hold index-based
// references so the integration hot path performs no identifier lookups.
type Model struct {
	name         string
	compartments []Compartment
	species      []Species
	speciesIdx   map[string]int
	params       []Parameter
	paramIdx     map[string]int
	reactions    []reaction
	stoich       [][]float64 // [species][reaction] net coefficient
}

type reaction struct {
	def      ReactionDef
	law      RateLaw
	reads    []int     // species slots the rate law depends on
	netTerms []netTerm // sparse column of S for this reaction
}

// netTerm is one nonzero entry of a reaction's stoichiometric column.
type netTerm struct {
	slot  int
	coeff float64
}

func (m *Model) Name() string       { return m.name }
func (m *Model) NumSpecies() int    { return len(m.species) }
func (m *Model) NumReactions() int  { return len(m.reactions) }
func (m *Model) NumParameters() int { return len(m.params) }

func (m *Model) SpeciesIndex(id string) (int, bool) {
	i, ok := m.speciesIdx[id]
	return i, ok
}

func (m *Model) ParameterIndex(id string) (int, bool) {
	i, ok := m.paramIdx[id]
	return i, ok
}

// SpeciesIDs returns the identifiers in state-vector slot order.
func (m *Model) SpeciesIDs() []string {
	ids := make([]string, len(m.species))
	for i, sp := range m.species {
		ids[i] = sp.ID
	}
	return ids
}

func (m *Model) SpeciesByIndex(i int) Species { return m.species[i] }

func (m *Model) ReactionIDs() []string {
	ids := make([]string, len(m.reactions))
	for j, r := range m.reactions {
		ids[j] = r.def.ID
	}
	return ids
}

// ReactionReads returns the state slots reaction j's rate law reads.
// The returned slice is shared; callers must not mutate it.
func (m *Model) ReactionReads(j int) []int { return m.reactions[j].reads }

// InitialState returns a fresh state vector populated with the declared
// initial concentrations.
func (m *Model) InitialState() State {
	x := make(State, len(m.species))
	for i, sp := range m.species {
		x[i] = sp.Initial
	}
	return x
}

// ParamValues returns a fresh parameter vector in parameter slot order.
func (m *Model) ParamValues() []float64 {
	p := make([]float64, len(m.params))
	for i, pr := range m.params {
		p[i] = pr.Value
	}
	return p
}

// StoichMatrix returns a copy of the stoichiometric matrix S, rows indexed
// by species slot and columns by reaction.
func (m *Model) StoichMatrix() [][]float64 {
	s := make([][]float64, len(m.stoich))
	for i, row := range m.stoich {
		s[i] = append([]float64(nil), row...)
	}
	return s
}

// Rates evaluates every reaction's instantaneous rate into out, which must
// have length NumReactions. Pure in (x, params).
func (m *Model) Rates(x State, params []float64, out []float64) {
	for j := range m.reactions {
		out[j] = m.reactions[j].law.Rate(x, params)
	}
}

// Derive computes dx = S * rate(x, params) into dx, which must have length
// NumSpecies. This is the integration hot path; it allocates nothing.
func (m *Model) Derive(t float64, x State, params []float64, rates []float64, dx State) {
	m.Rates(x, params, rates)
	for i := range dx {
		dx[i] = 0
	}
	for j, r := range m.reactions {
		rate := rates[j]
		if rate == 0 {
			continue
		}
		for _, term := range r.netTerms {
			dx[term.slot] += term.coeff * rate
		}
	}
	_ = t
}

// Definition exports the model back to its declarative table form. Building
// the result yields a model with an identical stoichiometric matrix and
// identical species/parameter sets.
func (m *Model) Definition() Definition {
	def := Definition{
		Name:         m.name,
		Compartments: append([]Compartment(nil), m.compartments...),
		Species:      append([]Species(nil), m.species...),
		Parameters:   append([]Parameter(nil), m.params...),
		Reactions:    make([]ReactionDef, len(m.reactions)),
	}
	for j, r := range m.reactions {
		rd := r.def
		rd.Reactants = append([]Stoich(nil), r.def.Reactants...)
		rd.Products = append([]Stoich(nil), r.def.Products...)
		def.Reactions[j] = rd
	}
	return def
}
