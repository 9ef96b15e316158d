package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation state.
var (
	// ErrInvalidState indicates a position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidMass indicates a body with non-positive mass.
	ErrInvalidMass = errors.New("dynamo: mass must be positive")

	// ErrFrozen indicates an attempt to add bodies once a run has started.
	ErrFrozen = errors.New("dynamo: world is frozen")

	// ErrUnknownBody indicates a handle outside the world's arena.
	ErrUnknownBody = errors.New("dynamo: unknown body handle")

	// ErrInvalidConfig indicates an unusable clock or run configuration.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// SingularForceError reports a force law evaluated at a degenerate
// configuration, such as zero separation under an inverse-square law.
type SingularForceError struct {
	Law    string
	Body   Handle
	Detail string
}

func (e *SingularForceError) Error() string {
	return fmt.Sprintf("dynamo: singular force %s on body %d: %s", e.Law, e.Body, e.Detail)
}

// ConstraintInversionError reports a rail position that could not be mapped
// back to a curve parameter.
type ConstraintInversionError struct {
	Constraint string
	Value      float64
	Detail     string
}

func (e *ConstraintInversionError) Error() string {
	return fmt.Sprintf("dynamo: cannot invert %s at %g: %s", e.Constraint, e.Value, e.Detail)
}

// NonConvergenceError reports a search that ran out of iterations before the
// bracket narrowed enough. It accompanies a best-effort result.
type NonConvergenceError struct {
	Iterations int
	Width      float64
	Residual   float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("dynamo: no convergence after %d iterations (bracket %g, residual %g)",
		e.Iterations, e.Width, e.Residual)
}

// StepError wraps a failure with the step and body it happened on.
type StepError struct {
	Step    int
	Time    float64
	Body    Handle
	Wrapped error
}

func (e *StepError) Error() string {
	if e.Body == NoBody {
		return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
	}
	return fmt.Sprintf("step %d (t=%.4f) body %d: %v", e.Step, e.Time, e.Body, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
