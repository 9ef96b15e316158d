package scenario

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/constraints"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/sink"
	"github.com/san-kum/physlab/internal/vec"
)

// Oscillator is a ball on a horizontal spring fixed to a wall at the
// origin, released from a compressed length.
type Oscillator struct {
	params
}

func NewOscillator() *Oscillator {
	return &Oscillator{params: newParams("oscillator", map[string]float64{
		"k":       1,
		"mass":    1,
		"relaxed": 10,
		"start":   5,
	})}
}

func (s *Oscillator) Build() (*sim.Model, error) {
	start := vec.New(s.get("start"), 0, 0)
	w := dynamo.NewWorld()
	ball, err := w.Add(dynamo.Body{Pos: start, Mass: s.get("mass")})
	if err != nil {
		return nil, err
	}

	const box = 20
	return &sim.Model{
		World:  w,
		Forces: physics.NewAssembler(&physics.Spring{Body: ball, K: s.get("k"), Relaxed: s.get("relaxed")}),
		Series: []metrics.Series{{
			Graph: sink.Graph{Title: "Ball on a Spring", XLabel: "Time (s)", YLabel: "Displacement (m)"},
			Label: "x",
			Y:     func(w *dynamo.World, _ dynamo.Clock) float64 { return w.Body(ball).Pos.X },
		}},
		Scene: []sink.Object{
			sink.Static(sink.Object{Kind: sink.Box, Pos: vec.New(-0.5*box, 0, 0), Size: vec.New(box, box, box), Texture: "stucco"}),
			sink.Tether(sink.Helix, vec.Zero(), ball, 0.5),
			sink.Ball(ball, start, 1, "red"),
		},
		Defaults: sim.Config{Dt: 0.1, TMax: 30},
	}, nil
}

// SpringyPendulum hangs a ball from a spring under gravity and kicks it
// sideways.
type SpringyPendulum struct {
	params
}

func NewSpringyPendulum() *SpringyPendulum {
	return &SpringyPendulum{params: newParams("springy-pendulum", map[string]float64{
		"k":       1,
		"mass":    1,
		"relaxed": 10,
		"start":   5,
		"kick":    5,
		"gravity": 9.8,
	})}
}

func (s *SpringyPendulum) Build() (*sim.Model, error) {
	start := vec.New(0, -s.get("start"), 0)
	w := dynamo.NewWorld()
	ball, err := w.Add(dynamo.Body{Pos: start, Vel: vec.New(s.get("kick"), 0, 0), Mass: s.get("mass")})
	if err != nil {
		return nil, err
	}

	g := s.get("gravity")
	spring := &physics.Spring{Body: ball, K: s.get("k"), Relaxed: s.get("relaxed")}
	graph := sink.Graph{Title: "Energy of a Springy Pendulum", XLabel: "Time (s)", YLabel: "Energy (J)"}
	kinetic := func(w *dynamo.World, _ dynamo.Clock) float64 { return metrics.Kinetic(w.Body(ball)) }
	elastic := func(w *dynamo.World, _ dynamo.Clock) float64 { return spring.Potential(w) }
	grav := func(w *dynamo.World, _ dynamo.Clock) float64 { return metrics.GravityPotential(w.Body(ball), g, 0) }

	const box = 20
	return &sim.Model{
		World:  w,
		Forces: physics.NewAssembler(spring, physics.Gravity(g)),
		Series: []metrics.Series{
			{Graph: graph, Label: "Kinetic Energy", Y: kinetic},
			{Graph: graph, Label: "Spring Energy", Y: elastic},
			{Graph: graph, Label: "Gravitational Energy", Y: grav},
			{Graph: graph, Label: "Total Energy", Y: func(w *dynamo.World, c dynamo.Clock) float64 {
				return kinetic(w, c) + elastic(w, c) + grav(w, c)
			}},
		},
		Scene: []sink.Object{
			sink.Static(sink.Object{Kind: sink.Box, Pos: vec.New(0, 0.5*box, 0), Size: vec.New(box, box, box), Texture: "stucco"}),
			sink.Tether(sink.Helix, vec.Zero(), ball, 0.5),
			sink.Ball(ball, start, 1, "red"),
		},
		Defaults: sim.Config{Dt: 0.01, TMax: 30},
	}, nil
}

// RigidPendulum swings a ball on a massless rod and compares the swing
// angle with the small-angle solution.
type RigidPendulum struct {
	params
}

func NewRigidPendulum() *RigidPendulum {
	return &RigidPendulum{params: newParams("rigid-pendulum", map[string]float64{
		"length":  10,
		"angle":   45,
		"mass":    1,
		"gravity": 9.8,
	})}
}

func (s *RigidPendulum) Build() (*sim.Model, error) {
	l, g := s.get("length"), s.get("gravity")
	theta0 := metrics.Radians(s.get("angle"))
	start := vec.New(-math.Sin(theta0), -math.Cos(theta0), 0).Scale(l)

	w := dynamo.NewWorld()
	ball, err := w.Add(dynamo.Body{Pos: start, Mass: s.get("mass")})
	if err != nil {
		return nil, err
	}
	rod := &constraints.RigidRod{Pivot: vec.Zero(), Length: l}
	cs := constraints.NewSet()
	if err := cs.Attach(ball, rod); err != nil {
		return nil, err
	}

	graph := sink.Graph{Title: "Pendulum Model vs Small Angle Approximation", XLabel: "Time (s)", YLabel: "Oscillation Angle (°)"}
	var extension float64

	const box = 20
	return &sim.Model{
		World:       w,
		Forces:      physics.NewAssembler(physics.Gravity(g)),
		Constraints: cs,
		Series: []metrics.Series{
			{Graph: graph, Label: "Pendulum", Y: func(w *dynamo.World, _ dynamo.Clock) float64 {
				return metrics.Degrees(metrics.PendulumAngle(w.Body(ball).Pos, rod.Pivot))
			}},
			{Graph: graph, Label: "sqrt(g/L)", Y: func(_ *dynamo.World, c dynamo.Clock) float64 {
				return metrics.Degrees(metrics.SmallAngle(theta0, g, l, c.T))
			}},
		},
		Scene: []sink.Object{
			sink.Static(sink.Object{Kind: sink.Box, Pos: vec.New(0, 0.5*box, 0), Size: vec.New(box, box, box), Texture: "stucco"}),
			sink.Tether(sink.Cylinder, vec.Zero(), ball, 0.1),
			sink.Ball(ball, start, 1, "red"),
		},
		Hooks: sim.Hooks{
			Step: func(w *dynamo.World, _ dynamo.Clock, _ sim.Sinks) error {
				extension = math.Max(extension, math.Abs(rod.Extension(w.Body(ball))))
				return nil
			},
			Finish: func(*dynamo.World, sim.Sinks) (map[string]float64, error) {
				return map[string]float64{"rod_extension": extension}, nil
			},
		},
		Defaults: sim.Config{Dt: 0.01, TMax: 30},
	}, nil
}

// ThreeSprings is two blocks between two walls joined by three springs.
// The walls are fixed bodies, so the whole line is one spring network.
type ThreeSprings struct {
	params
}

func NewThreeSprings() *ThreeSprings {
	return &ThreeSprings{params: newParams("three-springs", map[string]float64{
		"k1":      1,
		"k2":      1,
		"k3":      1,
		"m1":      1,
		"m2":      1,
		"d1":      2,
		"d2":      2,
		"relaxed": 10,
	})}
}

func (s *ThreeSprings) Build() (*sim.Model, error) {
	relaxed := s.get("relaxed")
	left := vec.New(-1.5*relaxed, 0, 0)
	right := vec.New(1.5*relaxed, 0, 0)

	w := dynamo.NewWorld()
	hs := []dynamo.Handle{w.MustAdd(dynamo.Body{Pos: left, Mass: 1, Fixed: true})}
	for i := 1; i <= 2; i++ {
		pos := left.Add(vec.New(float64(i)*relaxed+s.get(fmt.Sprintf("d%d", i)), 0, 0))
		h, err := w.Add(dynamo.Body{Pos: pos, Mass: s.get(fmt.Sprintf("m%d", i))})
		if err != nil {
			return nil, err
		}
		hs = append(hs, h)
	}
	hs = append(hs, w.MustAdd(dynamo.Body{Pos: right, Mass: 1, Fixed: true}))

	network := &constraints.SpringNetwork{}
	for i := 0; i < 3; i++ {
		network.Links = append(network.Links, constraints.Link{
			A:       hs[i],
			B:       hs[i+1],
			K:       s.get(fmt.Sprintf("k%d", i+1)),
			Relaxed: relaxed,
		})
	}

	graph := sink.Graph{Title: "Coupled Oscillators", XLabel: "Time (s)", YLabel: "Displacement (m)"}
	wallSize := vec.New(relaxed/10, relaxed, relaxed/3)
	scene := []sink.Object{
		sink.Static(sink.Object{Kind: sink.Box, Pos: left, Size: wallSize, Texture: "stucco"}),
		sink.Static(sink.Object{Kind: sink.Box, Pos: right, Size: wallSize, Texture: "stucco"}),
	}
	var series []metrics.Series
	for i, h := range hs[1:3] {
		scene = append(scene, sink.Ball(h, w.Body(h).Pos, 0.2*relaxed, []string{"blue", "red"}[i]))
		series = append(series, metrics.Series{
			Graph: graph,
			Label: fmt.Sprintf("block %d", i+1),
			Y:     func(w *dynamo.World, _ dynamo.Clock) float64 { return w.Body(h).Pos.X },
		})
	}
	for _, l := range network.Links {
		o := sink.Link(sink.Helix, l.A, l.B, 0.05*relaxed)
		o.Color = "white"
		scene = append(scene, o)
	}

	return &sim.Model{
		World:    w,
		Forces:   physics.NewAssembler(network),
		Series:   series,
		Scene:    scene,
		Defaults: sim.Config{Dt: 0.01, TMax: 100},
	}, nil
}
