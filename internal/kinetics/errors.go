package kinetics

import (
	"errors"
	"fmt"
)

// Validation failure kinds. Every build-time rejection wraps one of these.
var (
	// ErrDuplicateID indicates two declarations share an identifier.
	ErrDuplicateID = errors.New("kinetics: duplicate identifier")

	// ErrUnresolvedRef indicates a reference to an undeclared species,
	// parameter or compartment.
	ErrUnresolvedRef = errors.New("kinetics: unresolved reference")

	// ErrNegativeInitial indicates a negative initial concentration.
	ErrNegativeInitial = errors.New("kinetics: negative initial concentration")

	// ErrNonFiniteValue indicates a NaN or Inf initial or parameter value.
	ErrNonFiniteValue = errors.New("kinetics: non-finite value")

	// ErrBadRateLaw indicates an unknown rate-law kind or a law missing a
	// required reference.
	ErrBadRateLaw = errors.New("kinetics: invalid rate law")

	// ErrEmptyModel indicates a definition declaring no species.
	ErrEmptyModel = errors.New("kinetics: empty model")

	// ErrMissingID indicates a declaration without an identifier.
	ErrMissingID = errors.New("kinetics: missing identifier")
)

// ValidationError reports a malformed or inconsistent model definition.
// It is raised at build time only; a definition that builds cleanly cannot
// produce one during integration.
type ValidationError struct {
	Entity string // "species", "parameter", "reaction", "compartment", "model"
	ID     string
	Kind   error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %s %q", e.Kind, e.Entity, e.ID)
	}
	return fmt.Sprintf("%v: %s %q: %s", e.Kind, e.Entity, e.ID, e.Detail)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func invalidf(entity, id string, kind error, format string, args ...any) error {
	return &ValidationError{Entity: entity, ID: id, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
