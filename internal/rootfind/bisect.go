// Package rootfind inverts monotonic scalar functions by bisection.
package rootfind

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
)

const (
	DefaultIterations = 50
	DefaultExpansion  = 100.0
	DefaultTolerance  = 1e-9
)

type Result struct {
	X          float64
	Residual   float64
	Iterations int
	// Confident is false when the residual never dropped below tolerance.
	Confident bool
}

type options struct {
	iterations int
	expansion  float64
	tolerance  float64
}

type Option func(*options)

func WithIterations(n int) Option {
	return func(o *options) { o.iterations = n }
}

// WithExpansion sets the factor k of the bracket [guess/k, guess·k].
func WithExpansion(k float64) Option {
	return func(o *options) { o.expansion = k }
}

// WithTolerance sets the residual |f(x) − target| accepted as converged.
func WithTolerance(tol float64) Option {
	return func(o *options) { o.tolerance = tol }
}

// Bisect finds x with f(x) = target inside [guess/k, guess·k]. f must be
// monotonic on the bracket; either direction works. A zero or non-finite
// guess leaves no bracket and is rejected with dynamo.ErrInvalidConfig. A
// result that misses the tolerance is returned together with a
// *dynamo.NonConvergenceError.
func Bisect(target float64, f func(float64) float64, guess float64, opts ...Option) (Result, error) {
	o := options{iterations: DefaultIterations, expansion: DefaultExpansion, tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(&o)
	}

	if guess == 0 || math.IsNaN(guess) || math.IsInf(guess, 0) {
		return Result{}, fmt.Errorf("%w: bisection guess %g", dynamo.ErrInvalidConfig, guess)
	}
	if !(o.expansion > 1) {
		return Result{}, fmt.Errorf("%w: bracket expansion %g, want > 1", dynamo.ErrInvalidConfig, o.expansion)
	}

	lo, hi := guess/o.expansion, guess*o.expansion
	if lo > hi {
		lo, hi = hi, lo
	}
	increasing := f(hi) >= f(lo)

	var res Result
	for i := 0; i < o.iterations; i++ {
		mid := 0.5 * (lo + hi)
		v := f(mid)
		res = Result{X: mid, Residual: math.Abs(v - target), Iterations: i + 1}
		if res.Residual < o.tolerance {
			res.Confident = true
			return res, nil
		}
		if (v < target) == increasing {
			lo = mid
		} else {
			hi = mid
		}
	}

	return res, &dynamo.NonConvergenceError{Iterations: res.Iterations, Width: hi - lo, Residual: res.Residual}
}

// Minimize narrows [lo, hi] around the minimum of a unimodal errf. Each
// iteration compares errf just either side of the midpoint and keeps the
// half the function decreases into.
func Minimize(errf func(float64) float64, lo, hi float64, iterations int) float64 {
	for i := 0; i < iterations; i++ {
		mid := 0.5 * (lo + hi)
		eps := 1e-3 * (hi - lo)
		if errf(mid-eps) < errf(mid+eps) {
			hi = mid + eps
		} else {
			lo = mid - eps
		}
	}
	return 0.5 * (lo + hi)
}
