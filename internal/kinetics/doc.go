// Package kinetics provides the core model primitives for reaction-network
// simulation.
//
// The package defines the declarative model form and its compiled,
// immutable counterpart:
//
//   - [Definition]: declarative tables of species, parameters and reactions
//   - [Build]: validates a Definition and compiles it into a [Model]
//   - [Model]: immutable network with its stoichiometric matrix
//   - [RateLaw]: typed kinetic laws (mass action, Michaelis-Menten, Hill)
//   - [State]: concentration vector, one fixed slot per species
//
// # Example
//
//	model, err := kinetics.Build(def)
//	x := model.InitialState()
//	p := model.ParamValues()
//	model.Derive(0, x, p, dx)
//
// # Thread Safety
//
// A built Model is read-only and may be shared across concurrent scenario
// runs. All mutable integration state lives outside this package.
package kinetics
