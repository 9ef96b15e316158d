// Package vec provides the 3D vector type shared by every physics component.
//
// Vec3 is a value type; every operation returns a new vector and never
// mutates its receiver. Unit of a zero-length vector is the zero vector.
// Callers that must treat a zero direction as an error use UnitChecked.
package vec

import "math"

// Vec3 is a 3D vector with float64 components.
type Vec3 struct {
	X, Y, Z float64
}

var (
	XHat = Vec3{1, 0, 0}
	YHat = Vec3{0, 1, 0}
	ZHat = Vec3{0, 0, 1}
)

func New(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func Zero() Vec3 {
	return Vec3{}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product v · o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Mag2 returns the squared length v · v.
func (v Vec3) Mag2() float64 {
	return v.Dot(v)
}

// Mag returns the Euclidean length ||v||.
func (v Vec3) Mag() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v / ||v||, or the zero vector when ||v|| == 0.
func (v Vec3) Unit() Vec3 {
	u, _ := v.UnitChecked()
	return u
}

// UnitChecked is Unit that also reports whether v had a usable direction.
func (v Vec3) UnitChecked() (Vec3, bool) {
	n := v.Mag()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Vec3{}, false
	}
	inv := 1.0 / n
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}, true
}

// Project returns the component of v along the direction d.
func (v Vec3) Project(d Vec3) Vec3 {
	u := d.Unit()
	return u.Scale(v.Dot(u))
}

// Reject returns the component of v perpendicular to d.
func (v Vec3) Reject(d Vec3) Vec3 {
	return v.Sub(v.Project(d))
}

func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func Distance(a, b Vec3) float64 {
	return a.Sub(b).Mag()
}
