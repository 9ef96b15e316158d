package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

type MagneticField interface {
	At(p vec.Vec3) (vec.Vec3, error)
}

type UniformB struct {
	B vec.Vec3
}

func (u UniformB) At(vec.Vec3) (vec.Vec3, error) { return u.B, nil }

// Dipole is the equatorial field of a dipole at the origin pointing along
// −z, with strength B0 at radius R0 falling off as (R0/r)³. It decays
// outside R0; the (r/R0)³ profile that grows with r is not used.
type Dipole struct {
	B0 float64
	R0 float64
}

func (d Dipole) At(p vec.Vec3) (vec.Vec3, error) {
	r := p.Mag()
	if r == 0 {
		return vec.Vec3{}, &dynamo.SingularForceError{Law: "dipole", Body: dynamo.NoBody, Detail: "field evaluated at the origin"}
	}
	return vec.New(0, 0, -d.B0*math.Pow(d.R0/r, 3)), nil
}

// Lorentz applies q·v×B to charged targets. Uncharged bodies are skipped.
type Lorentz struct {
	Field   MagneticField
	Targets []dynamo.Handle
}

func (l *Lorentz) Name() string { return "lorentz" }

func (l *Lorentz) Apply(w *dynamo.World, vel VelocityFunc, net []vec.Vec3) error {
	for _, h := range targets(w, l.Targets) {
		b, err := lookup(w, h)
		if err != nil {
			return err
		}
		if b.Charge == 0 {
			continue
		}
		field, err := l.Field.At(b.Pos)
		if err != nil {
			var sf *dynamo.SingularForceError
			if errors.As(err, &sf) {
				sf.Body = h
			}
			return err
		}
		if !field.IsFinite() {
			return &dynamo.SingularForceError{Law: l.Name(), Body: h, Detail: fmt.Sprintf("non-finite field %v", field)}
		}
		net[h] = net[h].Add(vel(h).Cross(field).Scale(b.Charge))
	}
	return nil
}
