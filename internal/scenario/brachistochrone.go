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

// cycloidSlack lets numerical jitter dip past the bottom of the wire.
const cycloidSlack = 0.05

// beadAngles spreads n beads over the descending half of the cycloid.
func beadAngles(n int) []float64 {
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = math.Pi * (float64(i) + 0.5) / float64(n)
	}
	return angles
}

// BrachistochroneEnergy slides beads down a cycloid wire using energy
// conservation for their speed. Every bead should reach the bottom at
// about the same time, which ends the run.
type BrachistochroneEnergy struct {
	params
}

func NewBrachistochroneEnergy() *BrachistochroneEnergy {
	return &BrachistochroneEnergy{params: newParams("brachistochrone-energy", map[string]float64{
		"radius":  100,
		"gravity": 9.81,
		"mass":    1,
		"beads":   6,
		"kick":    1e-5,
	})}
}

func (s *BrachistochroneEnergy) Build() (*sim.Model, error) {
	r, g, m := s.get("radius"), s.get("gravity"), s.get("mass")
	curve := constraints.Cycloid{Radius: r, Slack: cycloidSlack}

	w := dynamo.NewWorld()
	cs := constraints.NewSet()
	scene := wire(curve, 500, 0.02*r)
	graph := sink.Graph{Title: "Beads on a Cycloid Wire", XLabel: "Time (s)", YLabel: "180° - Cycloid Angle (°)"}

	var beads []dynamo.Handle
	var series []metrics.Series
	for i, theta := range beadAngles(s.count("beads")) {
		pos := curve.Point(theta)
		h, err := w.Add(dynamo.Body{Pos: pos, Mass: m})
		if err != nil {
			return nil, err
		}
		// The kick keeps a bead released from rest from stalling.
		energy := m*g*pos.Y + s.get("kick")
		if err := cs.Attach(h, constraints.NewEnergyRail(curve, constraints.ClosedForm{}, energy, g)); err != nil {
			return nil, err
		}
		beads = append(beads, h)
		scene = append(scene, sink.Ball(h, pos, 0.1*r, colorAt(i)))
		series = append(series, metrics.Series{
			Graph: graph,
			Label: fmt.Sprintf("bead %d", i+1),
			Y: func(w *dynamo.World, _ dynamo.Clock) float64 {
				theta, err := curve.InverseHeight(w.Body(h).Pos.Y)
				if err != nil {
					theta = math.Pi
				}
				return 180 - metrics.Degrees(theta)
			},
		})
	}

	return &sim.Model{
		World:       w,
		Constraints: cs,
		Done:        sim.AnyBody(beads, func(b *dynamo.Body) bool { return b.Pos.X > 0 }),
		Energy: func(w *dynamo.World) float64 {
			return metrics.KineticTotal(w) + physics.Gravity(g).Potential(w)
		},
		Series:   series,
		Scene:    scene,
		Defaults: sim.Config{Dt: 0.1, TMax: 20},
	}, nil
}

// BrachistochroneForce lets gravity act on beads held to a unit cycloid
// by a rail. The beads pass the bottom and climb the far side, so the
// rail needs an inverter that can tell the two branches apart.
type BrachistochroneForce struct {
	params
}

func NewBrachistochroneForce() *BrachistochroneForce {
	return &BrachistochroneForce{params: newParams("brachistochrone-force", map[string]float64{
		"radius":  1,
		"gravity": 9.81,
		"mass":    1,
		"beads":   6,
		"capture": 0.05,
		// search switches from the sided closed form to a numerical
		// closest-point search.
		"search": 0,
	})}
}

func (s *BrachistochroneForce) Build() (*sim.Model, error) {
	r, m := s.get("radius"), s.get("mass")
	curve := constraints.Cycloid{Radius: r, Slack: cycloidSlack}
	var inv constraints.Inverter = constraints.Sided{}
	if s.flag("search") {
		inv = constraints.Search{}
	}

	w := dynamo.NewWorld()
	cs := constraints.NewSet()
	scene := wire(curve, 500, 0.02)
	graph := sink.Graph{Title: "Beads on a Cycloid Wire", XLabel: "Time (s)", YLabel: "Height (m)"}

	var beads []dynamo.Handle
	var series []metrics.Series
	for i, theta := range beadAngles(s.count("beads")) {
		pos := curve.Point(theta)
		h, err := w.Add(dynamo.Body{Pos: pos, Mass: m})
		if err != nil {
			return nil, err
		}
		if err := cs.Attach(h, constraints.NewRail(curve, inv)); err != nil {
			return nil, err
		}
		beads = append(beads, h)
		scene = append(scene, sink.Ball(h, pos, 0.1, colorAt(i)))
		series = append(series, metrics.Series{
			Graph: graph,
			Label: fmt.Sprintf("bead %d", i+1),
			Y:     func(w *dynamo.World, _ dynamo.Clock) float64 { return w.Body(h).Pos.Y + r },
		})
	}

	return &sim.Model{
		World:       w,
		Forces:      physics.NewAssembler(&physics.UniformField{Accel: vec.New(0, -s.get("gravity"), 0), Targets: beads}),
		Constraints: cs,
		Series:      series,
		Scene:       scene,
		Defaults:    sim.Config{Dt: 0.001, TMax: 2, CaptureEvery: s.get("capture")},
	}, nil
}
