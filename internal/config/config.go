// Package config loads and saves the declarative YAML documents describing
// a reaction network and its sweep settings, and converts them to the
// engine's typed forms.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Pain0430/lead-network-toxicology/internal/kinetics"
	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

type Document struct {
	Model Model `yaml:"model"`
	Sweep Sweep `yaml:"sweep"`
}

type Model struct {
	Name         string        `yaml:"name"`
	Compartments []Compartment `yaml:"compartments,omitempty"`
	Species      []Species     `yaml:"species"`
	Parameters   []Parameter   `yaml:"parameters"`
	Reactions    []Reaction    `yaml:"reactions"`
}

type Compartment struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
}

type Species struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name,omitempty"`
	Initial     float64 `yaml:"initial"`
	Unit        string  `yaml:"unit,omitempty"`
	Compartment string  `yaml:"compartment,omitempty"`
}

type Parameter struct {
	ID    string  `yaml:"id"`
	Value float64 `yaml:"value"`
	Unit  string  `yaml:"unit,omitempty"`
}

type Reaction struct {
	ID        string   `yaml:"id"`
	Reactants []Stoich `yaml:"reactants,omitempty"`
	Products  []Stoich `yaml:"products,omitempty"`
	Rate      Rate     `yaml:"rate"`
}

type Stoich struct {
	Species string  `yaml:"species"`
	Coeff   float64 `yaml:"coeff"`
}

type Rate struct {
	Kind      string  `yaml:"kind"`
	Constant  string  `yaml:"constant,omitempty"`
	Vmax      string  `yaml:"vmax,omitempty"`
	Km        string  `yaml:"km,omitempty"`
	Exponent  float64 `yaml:"exponent,omitempty"`
	Substrate string  `yaml:"substrate,omitempty"`
}

type Sweep struct {
	T0          float64   `yaml:"t0"`
	TF          float64   `yaml:"tf"`
	OutputEvery float64   `yaml:"output_every,omitempty"`
	OutputGrid  []float64 `yaml:"output_grid,omitempty"`

	AbsTol float64 `yaml:"abs_tol,omitempty"`
	RelTol float64 `yaml:"rel_tol,omitempty"`

	InitialStep float64 `yaml:"initial_step,omitempty"`
	MinStep     float64 `yaml:"min_step,omitempty"`
	MaxStep     float64 `yaml:"max_step,omitempty"`
	MaxSteps    int     `yaml:"max_steps,omitempty"`
	ClampLimit  float64 `yaml:"clamp_limit,omitempty"`

	Workers int           `yaml:"workers,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`

	Vary      *Vary      `yaml:"vary,omitempty"`
	Scenarios []Scenario `yaml:"scenarios,omitempty"`
}

// Vary is the common single-axis sweep: one species' initial value over a
// dose grid.
type Vary struct {
	Species string    `yaml:"species"`
	Values  []float64 `yaml:"values"`
}

type Scenario struct {
	ID         string             `yaml:"id"`
	Initial    map[string]float64 `yaml:"initial,omitempty"`
	Parameters map[string]float64 `yaml:"parameters,omitempty"`
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func Save(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Definition converts the document's model tables to the engine's
// declarative form.
func (d *Document) Definition() kinetics.Definition {
	def := kinetics.Definition{Name: d.Model.Name}
	for _, c := range d.Model.Compartments {
		def.Compartments = append(def.Compartments, kinetics.Compartment{ID: c.ID, Name: c.Name})
	}
	for _, s := range d.Model.Species {
		def.Species = append(def.Species, kinetics.Species{
			ID: s.ID, Name: s.Name, Initial: s.Initial, Unit: s.Unit, Compartment: s.Compartment,
		})
	}
	for _, p := range d.Model.Parameters {
		def.Parameters = append(def.Parameters, kinetics.Parameter{ID: p.ID, Value: p.Value, Unit: p.Unit})
	}
	for _, r := range d.Model.Reactions {
		def.Reactions = append(def.Reactions, kinetics.ReactionDef{
			ID:        r.ID,
			Reactants: stoichs(r.Reactants),
			Products:  stoichs(r.Products),
			Rate: kinetics.RateDef{
				Kind:      kinetics.RateKind(r.Rate.Kind),
				Constant:  r.Rate.Constant,
				Vmax:      r.Rate.Vmax,
				Km:        r.Rate.Km,
				Exponent:  r.Rate.Exponent,
				Substrate: r.Rate.Substrate,
			},
		})
	}
	return def
}

// FromDefinition renders a declarative definition back into document form,
// the inverse of Definition.
func FromDefinition(def kinetics.Definition) Model {
	m := Model{Name: def.Name}
	for _, c := range def.Compartments {
		m.Compartments = append(m.Compartments, Compartment{ID: c.ID, Name: c.Name})
	}
	for _, s := range def.Species {
		m.Species = append(m.Species, Species{
			ID: s.ID, Name: s.Name, Initial: s.Initial, Unit: s.Unit, Compartment: s.Compartment,
		})
	}
	for _, p := range def.Parameters {
		m.Parameters = append(m.Parameters, Parameter{ID: p.ID, Value: p.Value, Unit: p.Unit})
	}
	for _, r := range def.Reactions {
		m.Reactions = append(m.Reactions, Reaction{
			ID:        r.ID,
			Reactants: cfgStoichs(r.Reactants),
			Products:  cfgStoichs(r.Products),
			Rate: Rate{
				Kind:      string(r.Rate.Kind),
				Constant:  r.Rate.Constant,
				Vmax:      r.Rate.Vmax,
				Km:        r.Rate.Km,
				Exponent:  r.Rate.Exponent,
				Substrate: r.Rate.Substrate,
			},
		})
	}
	return m
}

func stoichs(in []Stoich) []kinetics.Stoich {
	out := make([]kinetics.Stoich, 0, len(in))
	for _, st := range in {
		coeff := st.Coeff
		if coeff == 0 {
			coeff = 1 // unstated coefficient means one
		}
		out = append(out, kinetics.Stoich{Species: st.Species, Coeff: coeff})
	}
	return out
}

func cfgStoichs(in []kinetics.Stoich) []Stoich {
	out := make([]Stoich, 0, len(in))
	for _, st := range in {
		out = append(out, Stoich{Species: st.Species, Coeff: st.Coeff})
	}
	return out
}

// RunConfig merges the document's sweep settings over the engine defaults;
// unset fields keep their default values.
func (d *Document) RunConfig() sim.RunConfig {
	cfg := sim.DefaultRunConfig()
	s := d.Sweep
	if s.TF != 0 || s.T0 != 0 {
		cfg.T0, cfg.TF = s.T0, s.TF
	}
	if s.OutputEvery > 0 {
		cfg.OutputEvery = s.OutputEvery
	}
	if len(s.OutputGrid) > 0 {
		cfg.OutputGrid = append([]float64(nil), s.OutputGrid...)
	}
	if s.AbsTol > 0 {
		cfg.AbsTol = s.AbsTol
	}
	if s.RelTol > 0 {
		cfg.RelTol = s.RelTol
	}
	if s.InitialStep > 0 {
		cfg.InitialStep = s.InitialStep
	}
	if s.MinStep > 0 {
		cfg.MinStep = s.MinStep
	}
	if s.MaxStep > 0 {
		cfg.MaxStep = s.MaxStep
	}
	if s.MaxSteps > 0 {
		cfg.MaxSteps = s.MaxSteps
	}
	if s.ClampLimit > 0 {
		cfg.ClampLimit = s.ClampLimit
	}
	if s.Workers > 0 {
		cfg.Workers = s.Workers
	}
	return cfg
}

// Scenarios expands the sweep section into concrete scenarios: the vary
// grid first, then any explicitly listed scenario overrides.
func (d *Document) Scenarios() []sim.Scenario {
	var scens []sim.Scenario
	if v := d.Sweep.Vary; v != nil {
		scens = append(scens, sim.DoseGrid(v.Species, v.Values)...)
	}
	for _, sc := range d.Sweep.Scenarios {
		scens = append(scens, sim.Scenario{
			ID:               sc.ID,
			InitialOverrides: sc.Initial,
			ParamOverrides:   sc.Parameters,
		})
	}
	return scens
}
