package scenario

import (
	"math"
	"math/rand"

	"github.com/san-kum/physlab/internal/constraints"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/sink"
	"github.com/san-kum/physlab/internal/vec"
)

// BallBox drops a ball at a random spot inside an open-topped box. The
// starting speed is capped so the ball cannot clear the walls.
type BallBox struct {
	params
}

func NewBallBox() *BallBox {
	return &BallBox{params: newParams("ball-box", map[string]float64{
		"seed":      1,
		"size":      10,
		"thickness": 1,
		"radius":    0.5,
		"gravity":   9.81,
		"mass":      1,
	})}
}

func (s *BallBox) Build() (*sim.Model, error) {
	size := s.get("size")
	g := s.get("gravity")
	rng := rand.New(rand.NewSource(int64(s.get("seed"))))

	x0 := vec.New(rng.Float64()*size-0.5*size, rng.Float64()*size-0.5*size, 0)
	vmax := math.Sqrt(2 * g * (0.5*size - x0.Y))
	v0 := vec.New(rng.Float64()*vmax, rng.Float64()*vmax, 0)

	w := dynamo.NewWorld()
	ball, err := w.Add(dynamo.Body{Pos: x0, Vel: v0, Mass: s.get("mass")})
	if err != nil {
		return nil, err
	}

	cs := constraints.NewSet()
	var scene []sink.Object
	var walls []*constraints.Wall
	for _, axis := range []vec.Vec3{vec.XHat, vec.XHat.Neg(), vec.YHat} {
		side := axis.Scale(-0.5 * size)
		wall := &constraints.Wall{
			Point:  side,
			Normal: axis,
			Offset: s.get("radius") + 0.5*s.get("thickness"),
		}
		walls = append(walls, wall)
		if err := cs.Attach(ball, wall); err != nil {
			return nil, err
		}
		scene = append(scene,
			sink.Static(sink.Object{Kind: sink.Box, Pos: side, Axis: axis, Size: vec.New(s.get("thickness"), size, size)}),
			sink.Static(sink.Object{Kind: sink.Arrow, Pos: side, Axis: axis, Color: "blue"}),
		)
	}
	scene = append(scene, sink.Ball(ball, x0, s.get("radius"), "red"))

	forces := physics.NewAssembler(physics.Gravity(g))
	graph := sink.Graph{Title: "Ball in a Box", XLabel: "Time (s)", YLabel: "Energy (J)"}
	potential := func(w *dynamo.World, _ dynamo.Clock) float64 {
		return metrics.GravityPotential(w.Body(ball), g, 0)
	}
	kinetic := func(w *dynamo.World, _ dynamo.Clock) float64 { return metrics.Kinetic(w.Body(ball)) }

	return &sim.Model{
		World:       w,
		Forces:      forces,
		Constraints: cs,
		Series: []metrics.Series{
			{Graph: graph, Label: "Potential Energy", Y: potential},
			{Graph: graph, Label: "Kinetic Energy", Y: kinetic},
			{Graph: graph, Label: "Total Energy", Y: func(w *dynamo.World, c dynamo.Clock) float64 {
				return potential(w, c) + kinetic(w, c)
			}},
		},
		Scene: scene,
		Hooks: sim.Hooks{
			Finish: func(*dynamo.World, sim.Sinks) (map[string]float64, error) {
				hits := 0
				for _, wall := range walls {
					hits += wall.Hits()
				}
				return map[string]float64{"wall_hits": float64(hits)}, nil
			},
		},
		Defaults: sim.Config{Dt: 0.001, TMax: 10, SampleEvery: 10},
	}, nil
}
