package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/physlab/internal/constraints"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sink"
	"github.com/san-kum/physlab/internal/vec"
)

func TestDiagnostics(t *testing.T) {
	b := &dynamo.Body{Mass: 2, Pos: vec.New(0, 3, 0), Vel: vec.New(1, 1, 0)}
	assert.InDelta(t, 2.0, Kinetic(b), 1e-12)
	assert.InDelta(t, 2*9.8*4, GravityPotential(b, 9.8, -1), 1e-12)
	assert.InDelta(t, 12.5, SpringPotential(1, -5), 1e-12)

	assert.InDelta(t, 180, Degrees(math.Pi), 1e-12)
	assert.InDelta(t, math.Pi/4, Radians(45), 1e-12)

	pos := vec.New(-10*math.Sin(Radians(45)), -10*math.Cos(Radians(45)), 0)
	assert.InDelta(t, 45, Degrees(PendulumAngle(pos, vec.Zero())), 1e-9)
	assert.InDelta(t, 0, PendulumAngle(vec.New(0, -1, 0), vec.Zero()), 1e-12)

	assert.InDelta(t, 0.7, SmallAngle(0.7, 9.8, 10, 0), 1e-12)
	period := 2 * math.Pi * math.Sqrt(10/9.8)
	assert.InDelta(t, 0.7, SmallAngle(0.7, 9.8, 10, period), 1e-9)
}

func TestKineticTotal_SkipsFixed(t *testing.T) {
	w := dynamo.NewWorld()
	w.MustAdd(dynamo.Body{Mass: 1, Vel: vec.New(2, 0, 0)})
	w.MustAdd(dynamo.Body{Mass: 1, Vel: vec.New(5, 0, 0), Fixed: true})
	assert.InDelta(t, 2, KineticTotal(w), 1e-12)

	forces := physics.NewAssembler(physics.Gravity(10))
	assert.InDelta(t, 2, Mechanical(w, forces), 1e-12)
}

func TestEnergyDrift(t *testing.T) {
	energies := []float64{10, 10.5, 9.8, 10.1}
	i := 0
	m := NewEnergyDrift(func(*dynamo.World) float64 { return energies[i] })
	for ; i < len(energies); i++ {
		m.Observe(nil, dynamo.Clock{})
	}
	assert.Equal(t, "energy_drift", m.Name())
	assert.InDelta(t, 0.05, m.Value(), 1e-12)

	m.Reset()
	assert.Equal(t, 0.0, m.Value())
}

func TestKineticTrend(t *testing.T) {
	w := dynamo.NewWorld()
	h := w.MustAdd(dynamo.Body{Mass: 2})
	m := NewKineticTrend(1)

	speeds := []float64{5, 1, 3, 2, 1}
	for i, v := range speeds {
		w.Body(h).Vel = vec.New(v, 0, 0)
		m.Observe(w, dynamo.Clock{T: float64(i) * 0.5})
	}
	// only t = 1, 1.5, 2 count: 9, 4, 1
	assert.Equal(t, 0.0, m.Value())

	w.Body(h).Vel = vec.New(2, 0, 0)
	m.Observe(w, dynamo.Clock{T: 3})
	assert.InDelta(t, 3, m.Value(), 1e-12)
}

func TestLengthConvergence(t *testing.T) {
	lengths := []float64{40, 41, 41.5, 41.5001}
	i := 0
	m := NewLengthConvergence(func(*dynamo.World) float64 { return lengths[i] }, 1e-3)
	assert.False(t, m.Converged())

	for ; i < len(lengths); i++ {
		m.Observe(nil, dynamo.Clock{})
	}
	assert.True(t, m.Converged())
	assert.InDelta(t, 1e-4, m.Value(), 1e-9)
	assert.Equal(t, 41.5001, m.Length())
}

func TestSampler_Cadence(t *testing.T) {
	rec := sink.NewRecorder()
	s := NewSampler(rec, 3)
	g := sink.Graph{Title: "Ball on a Spring"}
	s.Track(
		Series{Graph: g, Label: "x", Y: func(w *dynamo.World, _ dynamo.Clock) float64 { return w.Body(0).Pos.X }},
		Series{Graph: g, Label: "step", X: func(_ *dynamo.World, c dynamo.Clock) float64 { return float64(c.Step) }, Y: Time},
	)

	w := dynamo.NewWorld()
	h := w.MustAdd(dynamo.Body{Mass: 1})
	clock, err := dynamo.NewClock(0.5, 5)
	require.NoError(t, err)
	for !clock.Done() {
		clock.Advance()
		w.Body(h).Pos.X = float64(clock.Step)
		s.Observe(w, clock)
	}

	x, ok := rec.Find("x")
	require.True(t, ok)
	assert.Equal(t, []sink.Point{{X: 1.5, Y: 3}, {X: 3, Y: 6}, {X: 4.5, Y: 9}}, x.Points)

	step, _ := rec.Find("step")
	assert.Equal(t, sink.Point{X: 3, Y: 1.5}, step.Points[0])
	assert.Equal(t, 3, s.Emits())
}

// A short chain between two fixed posts settles when dissipation is on.
func TestSpringNetworkRelaxes(t *testing.T) {
	w := dynamo.NewWorld()
	hs := make([]dynamo.Handle, 5)
	for i := range hs {
		hs[i] = w.MustAdd(dynamo.Body{Mass: 1, Pos: vec.New(float64(i), 0, 0), Fixed: i == 0 || i == len(hs)-1})
	}
	network := &constraints.SpringNetwork{Links: constraints.Chain(hs, 50, 1.5), Dissipation: 0.02}
	set := constraints.NewSet()
	for _, h := range hs[1 : len(hs)-1] {
		require.NoError(t, set.Attach(h, network))
	}
	forces := physics.NewAssembler(physics.Gravity(9.8), network)
	stepper := integrators.NewSemiImplicit()

	trend := NewKineticTrend(20)
	length := NewLengthConvergence(network.Length, 1e-8)

	clock, err := dynamo.NewClock(0.01, 30)
	require.NoError(t, err)
	for !clock.Done() {
		net, err := forces.Net(w, nil)
		require.NoError(t, err)
		for _, h := range hs {
			hh := h
			filter := func(b *dynamo.Body) error { return set.ResolveVelocity(hh, b) }
			require.NoError(t, stepper.Step(h, w.Body(h), net[h], clock.Dt, filter))
		}
		clock.Advance()
		trend.Observe(w, clock)
		length.Observe(w, clock)
	}

	assert.LessOrEqual(t, trend.Value(), 1e-9)
	assert.True(t, length.Converged(), "length still changing by %g", length.Value())
	assert.Greater(t, length.Length(), 4.0)
}
