package constraints

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/rootfind"
	"github.com/san-kum/physlab/internal/vec"
)

// snapWindow is the parameter half-width searched around the inverter's
// answer when a body is put back on its rail.
const snapWindow = 0.1

// Rail keeps a body on a curve by discarding the part of its velocity
// that leaves the local tangent, then moving it back onto the nearest
// curve point after the step. The normal force is whatever makes that
// happen.
type Rail struct {
	Curve    Curve
	Inverter Inverter

	theta float64
}

func NewRail(c Curve, inv Inverter) *Rail {
	return &Rail{Curve: c, Inverter: inv}
}

func (r *Rail) Kind() Kind { return RailKind }

// Param is the curve parameter found on the last resolution.
func (r *Rail) Param() float64 { return r.theta }

func (r *Rail) locate(b *dynamo.Body) (vec.Vec3, error) {
	theta, err := r.Inverter.Invert(r.Curve, b.Pos)
	if err != nil {
		return vec.Vec3{}, err
	}
	r.theta = theta
	return Tangent(r.Curve, theta), nil
}

func (r *Rail) ResolveVelocity(b *dynamo.Body) error {
	t, err := r.locate(b)
	if err != nil {
		return err
	}
	b.Vel = b.Vel.Project(t)
	return nil
}

// ResolvePosition moves the body to the closest curve point near the
// inverter's parameter. A height inverse alone would pin a body that
// overshoots the bottom to the bottom itself.
func (r *Rail) ResolvePosition(b *dynamo.Body) error {
	theta, err := r.Inverter.Invert(r.Curve, b.Pos)
	if err != nil {
		return err
	}
	lo, hi := r.Curve.Domain()
	p := b.Pos
	dist := func(t float64) float64 { return vec.Distance(r.Curve.Point(t), p) }
	theta = rootfind.Minimize(dist, math.Max(lo, theta-snapWindow), math.Min(hi, theta+snapWindow), DefaultSearchIterations)
	r.theta = theta
	b.Pos = r.Curve.Point(theta)
	return nil
}

// EnergyRail sets a body's speed from energy conservation in a uniform
// field of strength G along −y and points it along the rail. Forces are
// not needed for a body on an energy rail.
type EnergyRail struct {
	Rail
	Energy float64
	G      float64
}

func NewEnergyRail(c Curve, inv Inverter, energy, g float64) *EnergyRail {
	return &EnergyRail{Rail: Rail{Curve: c, Inverter: inv}, Energy: energy, G: g}
}

func (r *EnergyRail) ResolveVelocity(b *dynamo.Body) error {
	t, err := r.locate(b)
	if err != nil {
		return err
	}
	ke := r.Energy - b.Mass*r.G*b.Pos.Y
	if ke < 0 {
		ke = 0
	}
	b.Vel = t.Scale(math.Sqrt(2 * ke / b.Mass))
	return nil
}
