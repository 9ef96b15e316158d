package constraints

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

// Wall is a reflecting plane through Point. Normal points into the
// allowed side. A body closer than Offset that is still moving into the
// wall has its normal velocity reversed; the collision is elastic.
type Wall struct {
	Point  vec.Vec3
	Normal vec.Vec3
	Offset float64

	hits int
}

func (w *Wall) Kind() Kind { return WallKind }

// Distance is the signed distance of p from the plane.
func (w *Wall) Distance(p vec.Vec3) float64 {
	return p.Sub(w.Point).Dot(w.Normal.Unit())
}

func (w *Wall) ResolvePosition(b *dynamo.Body) error {
	n := w.Normal.Unit()
	vn := b.Vel.Dot(n)
	if w.Distance(b.Pos) < w.Offset && vn < 0 {
		b.Vel = b.Vel.Sub(n.Scale(2 * vn))
		w.hits++
	}
	return nil
}

// Hits counts reflections so far.
func (w *Wall) Hits() int { return w.hits }
