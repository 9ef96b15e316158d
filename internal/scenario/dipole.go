package scenario

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/sink"
	"github.com/san-kum/physlab/internal/vec"
)

// Dipole follows a charged particle in the equatorial plane of a dipole
// field. Scales are picked for visibility, not realism. The run stops
// early if the ion escapes or speeds up, either of which means the
// integration went unstable.
type Dipole struct {
	params
}

func NewDipole() *Dipole {
	return &Dipole{params: newParams("dipole", map[string]float64{
		"r0": 1,
		"b0": 2,
		"m0": 1,
		"q0": 2,
		"v0": 1,
		// runaway is the speed limit as a multiple of v0.
		"runaway": 2.5,
		// escape is the distance limit as a multiple of r0.
		"escape":   100,
		"midpoint": 0,
	})}
}

func (s *Dipole) Build() (*sim.Model, error) {
	r0, v0 := s.get("r0"), s.get("v0")

	w := dynamo.NewWorld()
	ion, err := w.Add(dynamo.Body{
		Pos:    vec.New(0, r0, 0),
		Vel:    vec.New(v0, 0, 0),
		Mass:   s.get("m0"),
		Charge: s.get("q0"),
	})
	if err != nil {
		return nil, err
	}

	mode := integrators.SemiImplicit
	if s.flag("midpoint") {
		mode = integrators.Midpoint
	}

	maxR, maxV := s.get("escape")*r0, s.get("runaway")*v0
	ionBall := sink.Ball(ion, vec.New(0, r0, 0), 0.05*r0, "magenta")
	ionBall.Trail = true
	graph := sink.Graph{Title: "Ion in a Dipole Field", XLabel: "Time (s)", YLabel: "Speed"}

	return &sim.Model{
		World: w,
		Forces: physics.NewAssembler(&physics.Lorentz{
			Field:   physics.Dipole{B0: s.get("b0"), R0: r0},
			Targets: []dynamo.Handle{ion},
		}),
		Mode: mode,
		Done: sim.AnyBody([]dynamo.Handle{ion}, func(b *dynamo.Body) bool {
			return b.Pos.Mag() > maxR || b.Vel.Mag() > maxV
		}),
		Series: []metrics.Series{{
			Graph: graph,
			Label: "speed",
			Y:     func(w *dynamo.World, _ dynamo.Clock) float64 { return w.Body(ion).Vel.Mag() },
		}},
		Scene: []sink.Object{
			sink.Static(sink.Object{Kind: sink.Sphere, Radius: 0.2 * r0, Color: "green"}),
			ionBall,
		},
		Defaults: sim.Config{Dt: 0.001, TMax: 10, SampleEvery: 10},
	}, nil
}
