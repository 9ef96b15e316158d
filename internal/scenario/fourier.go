package scenario

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/sink"
)

// Wave is a string of length L fixed at both ends, expanded in its
// standing waves sin((n+1)πx/L). Alpha weights the cosine-in-time part
// fitted to the initial displacement, Beta the sine part fitted to the
// initial velocity.
type Wave struct {
	C, L  float64
	X     []float64
	Alpha []float64
	Beta  []float64

	modes [][]float64
}

// NewWave expands a sine-squared pulse of the given width and height at
// the left end, moving right at speed c, into n terms sampled at points
// positions.
func NewWave(c, length float64, points, terms int, width, height float64) *Wave {
	w := &Wave{C: c, L: length, X: make([]float64, points)}
	floats.Span(w.X, 0, length)

	u0 := make([]float64, points)
	v0 := make([]float64, points)
	for i, x := range w.X {
		if x < width {
			u0[i] = height * math.Pow(math.Sin(math.Pi*x/width), 2)
			v0[i] = -height * math.Pi * c * math.Sin(2*math.Pi*x/width) / width
		}
	}

	for n := 0; n < terms; n++ {
		mode := make([]float64, points)
		for i, x := range w.X {
			mode[i] = math.Sin(float64(n+1) * math.Pi * x / length)
		}
		w.modes = append(w.modes, mode)
		w.Alpha = append(w.Alpha, w.inner(u0, mode))
		w.Beta = append(w.Beta, w.inner(v0, mode)/w.omega(n))
	}
	return w
}

func (w *Wave) omega(n int) float64 { return float64(n+1) * math.Pi * w.C / w.L }

// inner is the normalised inner product 2/L·∫a·b dx on the sample grid.
func (w *Wave) inner(a, b []float64) float64 {
	dx := w.L / float64(len(w.X))
	return floats.Dot(a, b) * dx * 2 / w.L
}

// Displacement sums the first terms standing waves at time t.
func (w *Wave) Displacement(t float64, terms int) []float64 {
	u := make([]float64, len(w.X))
	for n := 0; n < terms && n < len(w.modes); n++ {
		wt := w.omega(n) * t
		floats.AddScaled(u, w.Alpha[n]*math.Cos(wt)+w.Beta[n]*math.Sin(wt), w.modes[n])
	}
	return u
}

// FourierWaves redraws truncated series of a travelling pulse every step.
// It has no bodies; the wave equation is solved in closed form.
type FourierWaves struct {
	params
}

func NewFourierWaves() *FourierWaves {
	return &FourierWaves{params: newParams("fourier-waves", map[string]float64{
		"c":      1,
		"length": 10,
		"points": 100,
		"width":  2,
		"height": 3,
	})}
}

// fourierTerms are the truncations drawn side by side.
var fourierTerms = []int{3, 10, 20}

func (s *FourierWaves) Build() (*sim.Model, error) {
	wave := NewWave(s.get("c"), s.get("length"), s.count("points"), fourierTerms[len(fourierTerms)-1], s.get("width"), s.get("height"))
	ids := make([]sink.SeriesID, len(fourierTerms))

	draw := func(t float64, plot sink.Plot) {
		for i, terms := range fourierTerms {
			plot.Clear(ids[i])
			for j, u := range wave.Displacement(t, terms) {
				plot.Add(ids[i], wave.X[j], u)
			}
		}
	}

	return &sim.Model{
		World: dynamo.NewWorld(),
		Hooks: sim.Hooks{
			Setup: func(_ *dynamo.World, sinks sim.Sinks) error {
				for i, terms := range fourierTerms {
					g := sink.Graph{Title: fmt.Sprintf("1D Wave with %d Fourier Terms", terms), XLabel: "X", YLabel: "Displacement"}
					ids[i] = sinks.Plot.Series(g, "u")
				}
				draw(0, sinks.Plot)
				return nil
			},
			Step: func(_ *dynamo.World, c dynamo.Clock, sinks sim.Sinks) error {
				draw(c.T, sinks.Plot)
				return nil
			},
		},
		Defaults: sim.Config{Dt: 0.1, TMax: 20},
	}, nil
}
