package physics

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

// UniformField applies m·Accel to each target.
type UniformField struct {
	Accel   vec.Vec3
	Targets []dynamo.Handle
}

// Gravity is a downward uniform field of magnitude g along −y.
func Gravity(g float64) *UniformField {
	return &UniformField{Accel: vec.New(0, -g, 0)}
}

func (u *UniformField) Name() string { return "uniform-field" }

func (u *UniformField) Apply(w *dynamo.World, _ VelocityFunc, net []vec.Vec3) error {
	for _, h := range targets(w, u.Targets) {
		b, err := lookup(w, h)
		if err != nil {
			return err
		}
		net[h] = net[h].Add(u.Accel.Scale(b.Mass))
	}
	return nil
}

// Potential is −m·a·r summed over free targets, zero at the origin.
func (u *UniformField) Potential(w *dynamo.World) float64 {
	total := 0.0
	for _, h := range targets(w, u.Targets) {
		if b := w.Body(h); b != nil && !b.Fixed {
			total -= b.Mass * u.Accel.Dot(b.Pos)
		}
	}
	return total
}

// InverseSquare attracts each target towards Source with magnitude
// G·m_s·m/r². With Anchor set the source receives no reaction force,
// which decouples several targets sharing one source. This is a
// simplification, not a physical law.
type InverseSquare struct {
	Source  dynamo.Handle
	Targets []dynamo.Handle
	G       float64
	Anchor  bool
}

func (g *InverseSquare) Name() string { return "inverse-square" }

func (g *InverseSquare) Apply(w *dynamo.World, _ VelocityFunc, net []vec.Vec3) error {
	src, err := lookup(w, g.Source)
	if err != nil {
		return err
	}
	for _, h := range targets(w, g.Targets) {
		if h == g.Source {
			continue
		}
		b, err := lookup(w, h)
		if err != nil {
			return err
		}
		r := b.Pos.Sub(src.Pos)
		r2 := r.Mag2()
		if r2 == 0 {
			return &dynamo.SingularForceError{Law: g.Name(), Body: h, Detail: "zero separation from source"}
		}
		f := r.Unit().Scale(-g.G * src.Mass * b.Mass / r2)
		net[h] = net[h].Add(f)
		if !g.Anchor {
			net[g.Source] = net[g.Source].Sub(f)
		}
	}
	return nil
}

// Potential is the sum of −G·m_s·m/r over targets. Coincident bodies are
// skipped.
func (g *InverseSquare) Potential(w *dynamo.World) float64 {
	src := w.Body(g.Source)
	if src == nil {
		return 0
	}
	total := 0.0
	for _, h := range targets(w, g.Targets) {
		if h == g.Source {
			continue
		}
		b := w.Body(h)
		if b == nil {
			continue
		}
		if r := vec.Distance(b.Pos, src.Pos); r > 0 {
			total += GravityPotential(r, g.G, src.Mass, b.Mass)
		}
	}
	return total
}

// GravityPotential is −G·M·m/r.
func GravityPotential(r, G, M, m float64) float64 {
	return -G * M * m / r
}

// CentrifugalPotential is L²/(2·m·r²) for orbital angular momentum L.
func CentrifugalPotential(r, L, m float64) float64 {
	return L * L / (2 * m * r * r)
}
