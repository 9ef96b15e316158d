package constraints

import (
	"fmt"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/vec"
)

// Link is a Hookean spring between bodies A and B.
type Link struct {
	A, B    dynamo.Handle
	K       float64
	Relaxed float64
}

// Chain links consecutive handles with identical springs.
func Chain(hs []dynamo.Handle, k, relaxed float64) []Link {
	if len(hs) < 2 {
		return nil
	}
	links := make([]Link, 0, len(hs)-1)
	for i := 1; i < len(hs); i++ {
		links = append(links, Link{A: hs[i-1], B: hs[i], K: k, Relaxed: relaxed})
	}
	return links
}

// SpringNetwork is a stiff force law between linked bodies rather than a
// hard constraint. It is both a physics.Law and, when attached to its
// free bodies, a velocity resolver that removes a fixed fraction of each
// body's velocity every step so the network relaxes.
type SpringNetwork struct {
	Links       []Link
	Dissipation float64
}

func (n *SpringNetwork) Kind() Kind { return NetworkKind }

func (n *SpringNetwork) Name() string { return "spring-network" }

func (n *SpringNetwork) Apply(w *dynamo.World, _ physics.VelocityFunc, net []vec.Vec3) error {
	for _, l := range n.Links {
		a, b := w.Body(l.A), w.Body(l.B)
		if a == nil || b == nil {
			return fmt.Errorf("%w: link %d-%d", dynamo.ErrUnknownBody, l.A, l.B)
		}
		f, ok := physics.Hooke(b.Pos.Sub(a.Pos), l.K, l.Relaxed)
		if !ok {
			return &dynamo.SingularForceError{Law: n.Name(), Body: l.B, Detail: fmt.Sprintf("coincides with body %d", l.A)}
		}
		net[l.B] = net[l.B].Add(f)
		net[l.A] = net[l.A].Sub(f)
	}
	return nil
}

func (n *SpringNetwork) ResolveVelocity(b *dynamo.Body) error {
	if n.Dissipation != 0 {
		b.Vel = b.Vel.Scale(1 - n.Dissipation)
	}
	return nil
}

// Length sums the current length of every link.
func (n *SpringNetwork) Length(w *dynamo.World) float64 {
	total := 0.0
	for _, l := range n.Links {
		a, b := w.Body(l.A), w.Body(l.B)
		if a == nil || b == nil {
			continue
		}
		total += vec.Distance(a.Pos, b.Pos)
	}
	return total
}

func (n *SpringNetwork) Potential(w *dynamo.World) float64 {
	total := 0.0
	for _, l := range n.Links {
		a, b := w.Body(l.A), w.Body(l.B)
		if a == nil || b == nil {
			continue
		}
		total += physics.SpringEnergy(l.K, vec.Distance(a.Pos, b.Pos)-l.Relaxed)
	}
	return total
}
