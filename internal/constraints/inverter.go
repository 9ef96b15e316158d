package constraints

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/rootfind"
	"github.com/san-kum/physlab/internal/vec"
)

const (
	// DefaultSearchSamples is how many points Search scans before it
	// bisects around the closest one.
	DefaultSearchSamples    = 64
	DefaultSearchIterations = 30
)

// Inverter maps a position to the parameter of the nearest rail point.
type Inverter interface {
	Invert(c Curve, p vec.Vec3) (float64, error)
}

type heightInverse interface {
	InverseHeight(y float64) (float64, error)
}

type sidedInverse interface {
	InverseSided(p vec.Vec3) (float64, error)
}

// ClosedForm uses the curve's height inverse. It is only valid while the
// body descends.
type ClosedForm struct{}

func (ClosedForm) Invert(c Curve, p vec.Vec3) (float64, error) {
	hi, ok := c.(heightInverse)
	if !ok {
		return 0, &dynamo.ConstraintInversionError{Constraint: fmt.Sprintf("%T", c), Detail: "no closed-form height inverse"}
	}
	return hi.InverseHeight(p.Y)
}

// Sided uses the curve's side-aware inverse.
type Sided struct{}

func (Sided) Invert(c Curve, p vec.Vec3) (float64, error) {
	si, ok := c.(sidedInverse)
	if !ok {
		return 0, &dynamo.ConstraintInversionError{Constraint: fmt.Sprintf("%T", c), Detail: "no sided inverse"}
	}
	return si.InverseSided(p)
}

// Search finds the parameter of the closest curve point over the whole
// domain: a coarse scan picks the nearest sample, then bisection on the
// distance refines it between the neighbouring samples. It works after a
// bounce, where the closed forms do not.
type Search struct {
	Samples    int
	Iterations int
	// MaxDistance rejects positions farther than this from the curve.
	// Zero disables the check.
	MaxDistance float64
}

func (s Search) Invert(c Curve, p vec.Vec3) (float64, error) {
	n := s.Iterations
	if n <= 0 {
		n = DefaultSearchIterations
	}
	samples := s.Samples
	if samples <= 0 {
		samples = DefaultSearchSamples
	}
	lo, hi := c.Domain()
	dist := func(theta float64) float64 { return vec.Distance(c.Point(theta), p) }

	step := (hi - lo) / float64(samples)
	best, bestDist := lo, math.Inf(1)
	for i := 0; i <= samples; i++ {
		theta := lo + step*float64(i)
		if d := dist(theta); d < bestDist {
			best, bestDist = theta, d
		}
	}

	theta := rootfind.Minimize(dist, math.Max(lo, best-step), math.Min(hi, best+step), n)
	if d := dist(theta); s.MaxDistance > 0 && d > s.MaxDistance {
		return theta, &dynamo.ConstraintInversionError{
			Constraint: fmt.Sprintf("%T", c),
			Value:      d,
			Detail:     fmt.Sprintf("no curve point within %g", s.MaxDistance),
		}
	}
	return theta, nil
}

// ParseInverter accepts "closed-form", "sided" and "search".
func ParseInverter(name string) (Inverter, error) {
	switch name {
	case "closed-form":
		return ClosedForm{}, nil
	case "sided", "":
		return Sided{}, nil
	case "search":
		return Search{}, nil
	}
	return nil, fmt.Errorf("unknown inverter: %s", name)
}
