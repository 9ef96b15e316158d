package scenario

import (
	"errors"
	"math"

	"github.com/san-kum/physlab/internal/constraints"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/rootfind"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/sink"
	"github.com/san-kum/physlab/internal/vec"
)

const fitPoints = 1000

// HangingChain relaxes a chain of spring links strung between two posts,
// then fits a catenary and a parabola of the same arc length to it. The
// links start evenly spaced along the top, so every spring begins
// compressed.
type HangingChain struct {
	params
}

func NewHangingChain() *HangingChain {
	return &HangingChain{params: newParams("hanging-chain", map[string]float64{
		"links":    21,
		"length":   40,
		"k":        10000,
		"friction": 0.05,
		"mass":     1,
		"gravity":  9.8,
		"width":    20,
		"height":   20,
		// settle is when kinetic energy is expected to stop rising.
		"settle": 10,
		// tolerance is the length change per step accepted as relaxed.
		"tolerance": 1e-6,
	})}
}

func (s *HangingChain) Build() (*sim.Model, error) {
	n := s.count("links")
	if n < 3 {
		return nil, errors.New("hanging chain needs at least three links")
	}
	width, height := s.get("width"), s.get("height")
	left := -width / 2
	bottom := -height / 2
	top := bottom + height
	relaxed := s.get("length") / float64(n-1)

	w := dynamo.NewWorld()
	scene := make([]sink.Object, 0, n+2)
	for _, x := range []float64{left, left + width} {
		scene = append(scene, sink.Static(sink.Object{
			Kind:   sink.Cylinder,
			Pos:    vec.New(x, bottom, 0),
			Axis:   vec.New(0, height, 0),
			Radius: 0.1,
		}))
	}

	hs := make([]dynamo.Handle, n)
	for i := range hs {
		pos := vec.New(left+float64(i)*width/float64(n-1), top, 0)
		h, err := w.Add(dynamo.Body{Pos: pos, Mass: s.get("mass"), Fixed: i == 0 || i == n-1})
		if err != nil {
			return nil, err
		}
		hs[i] = h
		scene = append(scene, sink.Ball(h, pos, 0.5*width/float64(n), "magenta"))
	}

	network := &constraints.SpringNetwork{
		Links:       constraints.Chain(hs, s.get("k"), relaxed),
		Dissipation: s.get("friction"),
	}
	cs := constraints.NewSet()
	for _, h := range hs[1 : n-1] {
		if err := cs.Attach(h, network); err != nil {
			return nil, err
		}
	}

	fit := func(w *dynamo.World, sinks sim.Sinks) (map[string]float64, error) {
		length := network.Length(w)
		alpha, err := fitShape(length, func(a float64) float64 { return physics.CatenaryLength(a, width) }, 1/s.get("length"))
		if err != nil {
			return nil, err
		}
		a, err := fitShape(length, func(a float64) float64 { return physics.ParabolaLength(a, width) }, 1/s.get("length"))
		if err != nil {
			return nil, err
		}
		catenary := func(x float64) float64 { return physics.CatenaryY(alpha.X, width, top, x) }
		parabola := func(x float64) float64 { return physics.ParabolaY(a.X, width, top, x) }

		graph := sink.Graph{Title: "Shape of a Hanging Chain", XLabel: "X", YLabel: "Y"}
		chain := sinks.Plot.Series(graph, "Chain")
		for _, h := range hs {
			p := w.Body(h).Pos
			sinks.Plot.Add(chain, p.X, p.Y)
		}
		for _, curve := range []struct {
			label string
			y     func(float64) float64
		}{{"Catenary", catenary}, {"Parabola", parabola}} {
			id := sinks.Plot.Series(graph, curve.label)
			for i := 0; i < fitPoints; i++ {
				x := left + float64(i)*width/fitPoints
				sinks.Plot.Add(id, x, curve.y(x))
			}
		}

		return map[string]float64{
			"length":            length,
			"catenary_alpha":    alpha.X,
			"parabola_a":        a.X,
			"catenary_rms":      shapeRMS(w, hs, catenary),
			"parabola_rms":      shapeRMS(w, hs, parabola),
			"catenary_residual": alpha.Residual,
			"parabola_residual": a.Residual,
		}, nil
	}

	return &sim.Model{
		World:       w,
		Forces:      physics.NewAssembler(physics.Gravity(s.get("gravity")), network),
		Constraints: cs,
		Scene:       scene,
		Metrics: []metrics.Metric{
			metrics.NewKineticTrend(s.get("settle")),
			metrics.NewLengthConvergence(network.Length, s.get("tolerance")),
		},
		Hooks:    sim.Hooks{Finish: fit},
		Defaults: sim.Config{Dt: 0.01, TMax: 20},
	}, nil
}

// fitShape solves length(x) = target. A best effort that misses the
// tolerance is still a usable fit.
func fitShape(target float64, length func(float64) float64, guess float64) (rootfind.Result, error) {
	res, err := rootfind.Bisect(target, length, guess)
	var nc *dynamo.NonConvergenceError
	if errors.As(err, &nc) {
		return res, nil
	}
	return res, err
}

// shapeRMS is the root mean square vertical distance of the links from y.
func shapeRMS(w *dynamo.World, hs []dynamo.Handle, y func(float64) float64) float64 {
	sum := 0.0
	for _, h := range hs {
		p := w.Body(h).Pos
		d := p.Y - y(p.X)
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(hs)))
}
