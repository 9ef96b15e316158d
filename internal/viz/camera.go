package viz

import (
	"math"

	"github.com/san-kum/physlab/internal/vec"
)

// Camera is an orthographic view with yaw and pitch about Center. Scale
// is dots per world unit before Zoom.
type Camera struct {
	Center     vec.Vec3
	Scale      float64
	Yaw, Pitch float64
	Zoom       float64
}

func NewCamera() *Camera { return &Camera{Scale: 1, Zoom: 1} }

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(20, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.05, c.Zoom/1.2) }

// Fit centers the view on the box lo..hi and scales it to fill a canvas
// of w x h dots with a margin.
func (c *Camera) Fit(lo, hi vec.Vec3, w, h int) {
	c.Center = lo.Add(hi).Scale(0.5)
	ext := hi.Sub(lo)
	span := math.Max(ext.X, math.Max(ext.Y, ext.Z))
	if span <= 0 {
		span = 1
	}
	c.Scale = 0.9 * float64(min(w, h)) / span
}

func (c *Camera) rotate(p vec.Vec3) vec.Vec3 {
	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cp, sp := math.Cos(c.Pitch), math.Sin(c.Pitch)
	p.Y, p.Z = p.Y*cp-p.Z*sp, p.Y*sp+p.Z*cp
	return p
}

// Project maps a world point to canvas dots. Screen y grows downwards.
func (c *Camera) Project(p vec.Vec3, w, h int) (int, int) {
	r := c.rotate(p.Sub(c.Center)).Scale(c.Scale * c.Zoom)
	return int(math.Round(r.X)) + w/2, -int(math.Round(r.Y)) + h/2
}

// Length is a world distance in dots.
func (c *Camera) Length(d float64) float64 { return d * c.Scale * c.Zoom }
