package viz

import (
	"math"
	"sync"

	"github.com/san-kum/physlab/internal/sink"
	"github.com/san-kum/physlab/internal/vec"
)

const trailLength = 200

type shape struct {
	sink.Object
	trail []vec.Vec3
}

// Scene is a render sink that keeps the latest placement of every object
// and draws them onto a canvas.
type Scene struct {
	mu     sync.Mutex
	shapes []shape
}

func NewScene() *Scene { return &Scene{} }

func (s *Scene) Create(o sink.Object) sink.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shapes = append(s.shapes, shape{Object: o})
	return sink.ObjectID(len(s.shapes) - 1)
}

func (s *Scene) Update(id sink.ObjectID, pos, axis vec.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(id) < 0 || int(id) >= len(s.shapes) {
		return
	}
	sh := &s.shapes[id]
	sh.Pos, sh.Axis = pos, axis
	if sh.Trail {
		sh.trail = append(sh.trail, pos)
		if len(sh.trail) > trailLength {
			sh.trail = sh.trail[1:]
		}
	}
}

func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shapes)
}

// Bounds is the box around every object's end points.
func (s *Scene) Bounds() (lo, hi vec.Vec3, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range s.shapes {
		r := vec.New(sh.Radius, sh.Radius, sh.Radius).Add(sh.Size.Scale(0.5))
		for _, p := range []vec.Vec3{sh.Pos.Sub(r), sh.Pos.Add(r), sh.Pos.Add(sh.Axis)} {
			if !ok {
				lo, hi, ok = p, p, true
			}
			lo = vec.New(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z))
			hi = vec.New(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z))
		}
	}
	return lo, hi, ok
}

// Draw renders the scene from cam.
func (s *Scene) Draw(c *Canvas, cam *Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, h := c.Dots()
	proj := func(p vec.Vec3) (int, int) { return cam.Project(p, w, h) }
	line := func(a, b vec.Vec3) {
		x0, y0 := proj(a)
		x1, y1 := proj(b)
		c.Line(x0, y0, x1, y1)
	}

	for _, sh := range s.shapes {
		for _, p := range sh.trail {
			c.Set(proj(p))
		}
		switch sh.Kind {
		case sink.Sphere:
			x, y := proj(sh.Pos)
			c.Circle(x, y, cam.Length(sh.Radius))
		case sink.Box:
			drawBox(line, sh.Pos, sh.Size)
		case sink.Helix:
			drawHelix(line, sh.Pos, sh.Axis, sh.Radius)
		case sink.Arrow:
			drawArrow(line, sh.Pos, sh.Axis)
		default:
			line(sh.Pos, sh.Pos.Add(sh.Axis))
		}
	}
}

func drawBox(line func(a, b vec.Vec3), center, size vec.Vec3) {
	half := size.Scale(0.5)
	corner := func(i int) vec.Vec3 {
		d := half
		if i&1 == 0 {
			d.X = -d.X
		}
		if i&2 == 0 {
			d.Y = -d.Y
		}
		if i&4 == 0 {
			d.Z = -d.Z
		}
		return center.Add(d)
	}
	for i := range 8 {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				line(corner(i), corner(i|bit))
			}
		}
	}
}

func perpendicular(axis vec.Vec3) vec.Vec3 {
	if p, ok := axis.Cross(vec.New(0, 0, 1)).UnitChecked(); ok {
		return p
	}
	return vec.New(1, 0, 0)
}

func drawHelix(line func(a, b vec.Vec3), base, axis vec.Vec3, radius float64) {
	const turns, perTurn = 10, 8
	if radius <= 0 {
		radius = 0.1 * axis.Mag()
	}
	side := perpendicular(axis).Scale(radius)
	prev := base
	n := turns * perTurn
	for i := 1; i <= n; i++ {
		f := float64(i) / float64(n)
		p := base.Add(axis.Scale(f)).Add(side.Scale(math.Sin(2 * math.Pi * float64(i) / perTurn)))
		line(prev, p)
		prev = p
	}
}

func drawArrow(line func(a, b vec.Vec3), base, axis vec.Vec3) {
	tip := base.Add(axis)
	line(base, tip)
	back := axis.Scale(-0.2)
	side := perpendicular(axis).Scale(0.1 * axis.Mag())
	line(tip, tip.Add(back).Add(side))
	line(tip, tip.Add(back).Sub(side))
}
