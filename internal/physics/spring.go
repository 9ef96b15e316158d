package physics

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

// Hooke returns the restoring force on the free end of a spring whose
// axis runs from the fixed end to the free end. A zero-length axis has
// no direction and is singular unless the relaxed length is zero.
func Hooke(axis vec.Vec3, k, relaxed float64) (vec.Vec3, bool) {
	length := axis.Mag()
	if length == 0 {
		return vec.Vec3{}, relaxed == 0
	}
	return axis.Scale(-k * (length - relaxed) / length), true
}

// SpringEnergy is ½·k·stretch².
func SpringEnergy(k, stretch float64) float64 {
	return 0.5 * k * stretch * stretch
}

// Spring ties Body to a fixed Anchor point.
type Spring struct {
	Anchor  vec.Vec3
	Body    dynamo.Handle
	K       float64
	Relaxed float64
}

func (s *Spring) Name() string { return "spring" }

func (s *Spring) Apply(w *dynamo.World, _ VelocityFunc, net []vec.Vec3) error {
	b, err := lookup(w, s.Body)
	if err != nil {
		return err
	}
	f, ok := Hooke(b.Pos.Sub(s.Anchor), s.K, s.Relaxed)
	if !ok {
		return &dynamo.SingularForceError{Law: s.Name(), Body: s.Body, Detail: "body at the anchor"}
	}
	net[s.Body] = net[s.Body].Add(f)
	return nil
}

func (s *Spring) Stretch(w *dynamo.World) float64 {
	b := w.Body(s.Body)
	if b == nil {
		return 0
	}
	return vec.Distance(b.Pos, s.Anchor) - s.Relaxed
}

func (s *Spring) Potential(w *dynamo.World) float64 {
	return SpringEnergy(s.K, s.Stretch(w))
}

// Damping applies −C·v to each target.
type Damping struct {
	C       float64
	Targets []dynamo.Handle
}

func (d *Damping) Name() string { return "damping" }

func (d *Damping) Apply(w *dynamo.World, vel VelocityFunc, net []vec.Vec3) error {
	for _, h := range targets(w, d.Targets) {
		if _, err := lookup(w, h); err != nil {
			return err
		}
		net[h] = net[h].Sub(vel(h).Scale(d.C))
	}
	return nil
}
