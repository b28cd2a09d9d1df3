package sim

import (
	"errors"
	"fmt"
)

// Numerical failure kinds. Each is scoped to a single scenario run and never
// aborts sibling scenarios in a sweep.
var (
	// ErrStepTooSmall indicates the adaptive step was rejected below the
	// minimum bound (non-convergent / stiff system).
	ErrStepTooSmall = errors.New("sim: step size below minimum (non-convergent / stiff system)")

	// ErrMaxSteps indicates the step budget was exhausted before reaching tf.
	ErrMaxSteps = errors.New("sim: maximum step count exceeded")

	// ErrNonFinite indicates a NaN or Inf state or rate evaluation.
	ErrNonFinite = errors.New("sim: non-finite state (NaN or Inf)")

	// ErrPervasiveClamp indicates negative concentrations across more than
	// the configured fraction of species on one step, a sign of an unstable
	// or mis-specified model.
	ErrPervasiveClamp = errors.New("sim: pervasive negative-concentration clamping")
)

// NumericalError records where in a scenario run the integration failed.
type NumericalError struct {
	Scenario string
	Step     int
	Time     float64
	Kind     error
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("scenario %q step %d (t=%.4f): %v", e.Scenario, e.Step, e.Time, e.Kind)
}

func (e *NumericalError) Unwrap() error { return e.Kind }

// ConfigError reports invalid run settings or scenario overrides. It is
// raised before any integration begins and aborts the whole operation.
type ConfigError struct {
	Field  string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sim: invalid %s: %s", e.Field, e.Detail)
}

func configf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Detail: fmt.Sprintf(format, args...)}
}
