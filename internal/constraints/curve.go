package constraints

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

// tangentStep is the parameter step of the central difference in Tangent.
const tangentStep = 1e-5

// Curve is a 1-D rail parametrized over [lo, hi].
type Curve interface {
	Point(theta float64) vec.Vec3
	Domain() (lo, hi float64)
}

// Tangent is the unit direction of increasing parameter at theta.
func Tangent(c Curve, theta float64) vec.Vec3 {
	d := c.Point(theta + tangentStep).Sub(c.Point(theta - tangentStep))
	return d.Unit()
}

// Sample returns n+1 evenly spaced points covering the curve's domain.
func Sample(c Curve, n int) []vec.Vec3 {
	lo, hi := c.Domain()
	pts := make([]vec.Vec3, n+1)
	for i := range pts {
		pts[i] = c.Point(lo + (hi-lo)*float64(i)/float64(n))
	}
	return pts
}

// Cycloid is the curve traced by a wheel of radius Radius, shifted so the
// lowest point sits at x = 0:
//
//	x = R(θ − sin θ) − πR,  y = R cos θ
//
// θ = 0 is the top of the left cusp and θ = π the bottom.
type Cycloid struct {
	Radius float64
	// Slack is how far past ±1 the normalised height may dip before the
	// height inverse gives up instead of clamping.
	Slack float64
}

func (c Cycloid) Point(theta float64) vec.Vec3 {
	r := c.Radius
	return vec.New(r*(theta-math.Sin(theta))-math.Pi*r, r*math.Cos(theta), 0)
}

func (c Cycloid) Domain() (float64, float64) { return 0, 2 * math.Pi }

// InverseHeight maps a height to θ ∈ [0, π]. It only describes the
// descending branch; a body climbing the far side maps to its mirror.
func (c Cycloid) InverseHeight(y float64) (float64, error) {
	u := y / c.Radius
	switch {
	case u > 1 && u <= 1+c.Slack:
		return 0, nil
	case u < -1 && u >= -1-c.Slack:
		return math.Pi, nil
	case u > 1 || u < -1 || math.IsNaN(u):
		return 0, &dynamo.ConstraintInversionError{
			Constraint: "cycloid",
			Value:      y,
			Detail:     fmt.Sprintf("height outside [-%g, %g]", c.Radius, c.Radius),
		}
	}
	return math.Acos(u), nil
}

// InverseSided uses the side of the bottom the position is on to pick
// the branch, so it also covers θ ∈ (π, 2π).
func (c Cycloid) InverseSided(p vec.Vec3) (float64, error) {
	theta, err := c.InverseHeight(p.Y)
	if err != nil {
		return 0, err
	}
	if p.X >= 0 {
		theta = 2*math.Pi - theta
	}
	return theta, nil
}

// Helix winds Loops turns of radius Radius along the x axis, centred on
// the origin.
type Helix struct {
	Radius float64
	Length float64
	Loops  float64
}

func (h Helix) Point(theta float64) vec.Vec3 {
	x := -h.Length/2 + h.Length*theta/(2*math.Pi*h.Loops)
	return vec.New(x, h.Radius*math.Sin(theta), h.Radius*math.Cos(theta))
}

func (h Helix) Domain() (float64, float64) { return 0, 2 * math.Pi * h.Loops }
