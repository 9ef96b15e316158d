package scenario

import (
	"github.com/san-kum/physlab/internal/constraints"
	"github.com/san-kum/physlab/internal/sink"
)

var palette = []string{"red", "orange", "yellow", "green", "blue", "magenta", "cyan"}

func colorAt(i int) string { return palette[i%len(palette)] }

// wire draws c as n short metal cylinders.
func wire(c constraints.Curve, n int, radius float64) []sink.Object {
	pts := constraints.Sample(c, n)
	objs := make([]sink.Object, 0, n)
	for i := 0; i+1 < len(pts); i++ {
		o := sink.Segment(sink.Cylinder, pts[i], pts[i+1], radius)
		o.Texture = "metal"
		objs = append(objs, o)
	}
	return objs
}
