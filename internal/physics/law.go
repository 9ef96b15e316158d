package physics

import (
	"fmt"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

// VelocityFunc reports the velocity a velocity-dependent law should use
// for a body. It lets the integrator substitute an interpolated velocity.
type VelocityFunc func(h dynamo.Handle) vec.Vec3

// Law adds its force on every affected body into net, indexed by handle.
type Law interface {
	Name() string
	Apply(w *dynamo.World, vel VelocityFunc, net []vec.Vec3) error
}

// Potential is implemented by conservative laws.
type Potential interface {
	Potential(w *dynamo.World) float64
}

type Assembler struct {
	laws []Law
}

func NewAssembler(laws ...Law) *Assembler {
	return &Assembler{laws: laws}
}

func (a *Assembler) Add(l Law) { a.laws = append(a.laws, l) }

func (a *Assembler) Laws() []Law { return a.laws }

// Net evaluates every law against the current world and returns one net
// force per body. A nil vel uses each body's own velocity.
func (a *Assembler) Net(w *dynamo.World, vel VelocityFunc) ([]vec.Vec3, error) {
	if vel == nil {
		vel = func(h dynamo.Handle) vec.Vec3 { return w.Body(h).Vel }
	}
	net := make([]vec.Vec3, w.Len())
	for _, l := range a.laws {
		if err := l.Apply(w, vel, net); err != nil {
			return nil, fmt.Errorf("%s: %w", l.Name(), err)
		}
	}
	return net, nil
}

// Potential sums the potential energy of every conservative law.
func (a *Assembler) Potential(w *dynamo.World) float64 {
	total := 0.0
	for _, l := range a.laws {
		if p, ok := l.(Potential); ok {
			total += p.Potential(w)
		}
	}
	return total
}

// targets resolves a handle list; nil means every body in the world.
func targets(w *dynamo.World, hs []dynamo.Handle) []dynamo.Handle {
	if hs == nil {
		return w.Handles()
	}
	return hs
}

func lookup(w *dynamo.World, h dynamo.Handle) (*dynamo.Body, error) {
	b := w.Body(h)
	if b == nil {
		return nil, fmt.Errorf("%w: %d", dynamo.ErrUnknownBody, h)
	}
	return b, nil
}
