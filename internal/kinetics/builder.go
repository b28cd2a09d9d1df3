package kinetics

import (
	"math"
	"sort"
)

// Build validates a declarative definition and compiles it into an immutable
// Model. It resolves every identifier once, assigns each species a fixed
// state-vector slot, compiles rate laws to index-based references, and
// derives the stoichiometric matrix and per-reaction dependency index.
// Build executes no reaction and has no side effects.
func Build(def Definition) (*Model, error) {
	if len(def.Species) == 0 {
		return nil, &ValidationError{Entity: "model", ID: def.Name, Kind: ErrEmptyModel}
	}

	m := &Model{
		name:         def.Name,
		compartments: append([]Compartment(nil), def.Compartments...),
		species:      append([]Species(nil), def.Species...),
		speciesIdx:   make(map[string]int, len(def.Species)),
		params:       append([]Parameter(nil), def.Parameters...),
		paramIdx:     make(map[string]int, len(def.Parameters)),
	}

	compartments := make(map[string]bool, len(def.Compartments))
	for _, c := range def.Compartments {
		if c.ID == "" {
			return nil, &ValidationError{Entity: "compartment", ID: c.Name, Kind: ErrMissingID}
		}
		if compartments[c.ID] {
			return nil, &ValidationError{Entity: "compartment", ID: c.ID, Kind: ErrDuplicateID}
		}
		compartments[c.ID] = true
	}

	for i, sp := range m.species {
		if sp.ID == "" {
			return nil, &ValidationError{Entity: "species", ID: sp.Name, Kind: ErrMissingID}
		}
		if _, dup := m.speciesIdx[sp.ID]; dup {
			return nil, &ValidationError{Entity: "species", ID: sp.ID, Kind: ErrDuplicateID}
		}
		if math.IsNaN(sp.Initial) || math.IsInf(sp.Initial, 0) {
			return nil, invalidf("species", sp.ID, ErrNonFiniteValue, "initial %v", sp.Initial)
		}
		if sp.Initial < 0 {
			return nil, invalidf("species", sp.ID, ErrNegativeInitial, "initial %v", sp.Initial)
		}
		if sp.Compartment != "" && !compartments[sp.Compartment] {
			return nil, invalidf("species", sp.ID, ErrUnresolvedRef, "compartment %q", sp.Compartment)
		}
		m.speciesIdx[sp.ID] = i
	}

	for i, p := range m.params {
		if p.ID == "" {
			return nil, &ValidationError{Entity: "parameter", ID: "", Kind: ErrMissingID}
		}
		if _, dup := m.paramIdx[p.ID]; dup {
			return nil, &ValidationError{Entity: "parameter", ID: p.ID, Kind: ErrDuplicateID}
		}
		if _, clash := m.speciesIdx[p.ID]; clash {
			return nil, invalidf("parameter", p.ID, ErrDuplicateID, "identifier also declares a species")
		}
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return nil, invalidf("parameter", p.ID, ErrNonFiniteValue, "value %v", p.Value)
		}
		m.paramIdx[p.ID] = i
	}

	m.stoich = make([][]float64, len(m.species))
	for i := range m.stoich {
		m.stoich[i] = make([]float64, len(def.Reactions))
	}

	m.reactions = make([]reaction, len(def.Reactions))
	reactionIDs := make(map[string]bool, len(def.Reactions))
	for j, rd := range def.Reactions {
		if rd.ID == "" {
			return nil, &ValidationError{Entity: "reaction", ID: "", Kind: ErrMissingID}
		}
		if reactionIDs[rd.ID] {
			return nil, &ValidationError{Entity: "reaction", ID: rd.ID, Kind: ErrDuplicateID}
		}
		reactionIDs[rd.ID] = true

		r, err := m.compileReaction(j, rd)
		if err != nil {
			return nil, err
		}
		m.reactions[j] = r
	}

	return m, nil
}

func (m *Model) compileReaction(col int, rd ReactionDef) (reaction, error) {
	net := make(map[int]float64)

	for _, st := range rd.Reactants {
		slot, ok := m.speciesIdx[st.Species]
		if !ok {
			return reaction{}, invalidf("reaction", rd.ID, ErrUnresolvedRef, "reactant %q", st.Species)
		}
		if st.Coeff <= 0 || math.IsNaN(st.Coeff) || math.IsInf(st.Coeff, 0) {
			return reaction{}, invalidf("reaction", rd.ID, ErrBadRateLaw, "reactant %q coefficient %v", st.Species, st.Coeff)
		}
		net[slot] -= st.Coeff
	}
	for _, st := range rd.Products {
		slot, ok := m.speciesIdx[st.Species]
		if !ok {
			return reaction{}, invalidf("reaction", rd.ID, ErrUnresolvedRef, "product %q", st.Species)
		}
		if st.Coeff <= 0 || math.IsNaN(st.Coeff) || math.IsInf(st.Coeff, 0) {
			return reaction{}, invalidf("reaction", rd.ID, ErrBadRateLaw, "product %q coefficient %v", st.Species, st.Coeff)
		}
		net[slot] += st.Coeff
	}

	law, reads, err := m.compileLaw(rd)
	if err != nil {
		return reaction{}, err
	}

	r := reaction{def: rd, law: law, reads: reads}
	slots := make([]int, 0, len(net))
	for slot := range net {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	for _, slot := range slots {
		if net[slot] == 0 {
			continue // catalytic species cancel out
		}
		m.stoich[slot][col] = net[slot]
		r.netTerms = append(r.netTerms, netTerm{slot: slot, coeff: net[slot]})
	}
	return r, nil
}

func (m *Model) compileLaw(rd ReactionDef) (RateLaw, []int, error) {
	param := func(field, id string) (int, error) {
		if id == "" {
			return 0, invalidf("reaction", rd.ID, ErrBadRateLaw, "%s law requires %s", rd.Rate.Kind, field)
		}
		slot, ok := m.paramIdx[id]
		if !ok {
			return 0, invalidf("reaction", rd.ID, ErrUnresolvedRef, "%s parameter %q", field, id)
		}
		return slot, nil
	}

	switch rd.Rate.Kind {
	case MassAction:
		k, err := param("rate constant", rd.Rate.Constant)
		if err != nil {
			return nil, nil, err
		}
		law := &massAction{k: k}
		reads := make([]int, 0, len(rd.Reactants))
		for _, st := range rd.Reactants {
			slot := m.speciesIdx[st.Species]
			law.terms = append(law.terms, netTerm{slot: slot, coeff: st.Coeff})
			reads = append(reads, slot)
		}
		sort.Ints(reads)
		return law, reads, nil

	case MichaelisMenten, Hill:
		vmax, err := param("vmax", rd.Rate.Vmax)
		if err != nil {
			return nil, nil, err
		}
		km, err := param("km", rd.Rate.Km)
		if err != nil {
			return nil, nil, err
		}
		if rd.Rate.Substrate == "" {
			return nil, nil, invalidf("reaction", rd.ID, ErrBadRateLaw, "%s law requires substrate", rd.Rate.Kind)
		}
		sub, ok := m.speciesIdx[rd.Rate.Substrate]
		if !ok {
			return nil, nil, invalidf("reaction", rd.ID, ErrUnresolvedRef, "substrate %q", rd.Rate.Substrate)
		}
		if rd.Rate.Kind == MichaelisMenten {
			return &michaelisMenten{vmax: vmax, km: km, substrate: sub}, []int{sub}, nil
		}
		if rd.Rate.Exponent <= 0 || math.IsNaN(rd.Rate.Exponent) || math.IsInf(rd.Rate.Exponent, 0) {
			return nil, nil, invalidf("reaction", rd.ID, ErrBadRateLaw, "hill exponent %v", rd.Rate.Exponent)
		}
		return &hillLaw{vmax: vmax, km: km, n: rd.Rate.Exponent, substrate: sub}, []int{sub}, nil

	default:
		return nil, nil, invalidf("reaction", rd.ID, ErrBadRateLaw, "unknown kind %q", rd.Rate.Kind)
	}
}
