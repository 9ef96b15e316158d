// Package sink defines the outputs a simulation pushes into and never
// reads back from: a render scene, plots, a pacing source and frame
// capture. The implementations here cover tests, terminals and files.
package sink

import (
	"context"
	"fmt"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

type Kind int

const (
	Sphere Kind = iota
	Cylinder
	Box
	Helix
	Arrow
)

var kindNames = [...]string{"sphere", "cylinder", "box", "helix", "arrow"}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Object is a scene element. Body ties it to a simulated body; static
// scenery uses dynamo.NoBody. Spheres and boxes follow the body's
// position. Elongated kinds keep Pos as their base and stretch their axis
// to the body, or run between two bodies when Linked is set.
type Object struct {
	Kind    Kind
	Body    dynamo.Handle
	From    dynamo.Handle
	Linked  bool
	Pos     vec.Vec3
	Axis    vec.Vec3
	Size    vec.Vec3
	Radius  float64
	Color   string
	Texture string
	Trail   bool
}

// Static returns o detached from any body.
func Static(o Object) Object {
	o.Body = dynamo.NoBody
	o.Linked = false
	return o
}

// Ball is a sphere following body h.
func Ball(h dynamo.Handle, pos vec.Vec3, radius float64, color string) Object {
	return Object{Kind: Sphere, Body: h, Pos: pos, Radius: radius, Color: color}
}

// Tether is a spring or wire from a fixed base to body h.
func Tether(kind Kind, base vec.Vec3, h dynamo.Handle, radius float64) Object {
	return Object{Kind: kind, Body: h, Pos: base, Radius: radius}
}

// Link is a spring drawn between two bodies.
func Link(kind Kind, from, to dynamo.Handle, radius float64) Object {
	return Object{Kind: kind, Body: to, From: from, Linked: true, Radius: radius}
}

// Segment is static scenery from head to tail, the way wires and posts
// are drawn.
func Segment(kind Kind, head, tail vec.Vec3, radius float64) Object {
	return Static(Object{Kind: kind, Pos: tail, Axis: head.Sub(tail), Radius: radius})
}

type ObjectID int

type Render interface {
	Create(o Object) ObjectID
	Update(id ObjectID, pos, axis vec.Vec3)
}

type Graph struct {
	Title  string
	XLabel string
	YLabel string
}

type SeriesID int

// Plot accepts append-only samples. Clear restarts a series from empty.
type Plot interface {
	Series(g Graph, label string) SeriesID
	Add(id SeriesID, x, y float64)
	Clear(id SeriesID)
}

// Pacer throttles the loop to wall-clock time. It never affects physics.
type Pacer interface {
	Wait(ctx context.Context) error
}

type Capture interface {
	Snapshot(tag string) error
}

type Point struct {
	X, Y float64
}
