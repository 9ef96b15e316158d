package constraints

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/vec"
)

func TestCycloid_RoundTrip(t *testing.T) {
	c := Cycloid{Radius: 2, Slack: 0.1}
	for theta := 0.01; theta < math.Pi; theta += 0.05 {
		got, err := c.InverseHeight(c.Point(theta).Y)
		require.NoError(t, err)
		assert.InDelta(t, theta, got, 1e-9, "theta %v", theta)
	}
}

func TestCycloid_InverseSided(t *testing.T) {
	c := Cycloid{Radius: 1, Slack: 0.1}
	for _, theta := range []float64{0.3, 1.2, 2.9, 3.5, 4.4, 6.0} {
		got, err := c.InverseSided(c.Point(theta))
		require.NoError(t, err)
		assert.InDelta(t, theta, got, 1e-9)
	}
}

func TestCycloid_Boundary(t *testing.T) {
	c := Cycloid{Radius: 1, Slack: 0.1}

	theta, err := c.InverseHeight(-1.0001)
	require.NoError(t, err)
	assert.Equal(t, math.Pi, theta)

	theta, err = c.InverseHeight(1.0001)
	require.NoError(t, err)
	assert.Equal(t, 0.0, theta)

	_, err = c.InverseHeight(-3)
	var ce *dynamo.ConstraintInversionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, -3.0, ce.Value)
}

func TestTangent(t *testing.T) {
	c := Cycloid{Radius: 1}
	tan := Tangent(c, math.Pi)
	assert.InDelta(t, 1, tan.X, 1e-9)
	assert.InDelta(t, 0, tan.Y, 1e-9)

	for _, theta := range []float64{0.5, 2, 4} {
		assert.InDelta(t, 1, Tangent(c, theta).Mag(), 1e-12)
	}
}

func TestInverters(t *testing.T) {
	c := Cycloid{Radius: 1, Slack: 0.1}
	// on the far side of the bottom only the side-aware and search
	// inverters recover the parameter
	theta := 4.2
	p := c.Point(theta)

	tests := []struct {
		name string
		inv  Inverter
		tol  float64
		want float64
	}{
		{"closed-form", ClosedForm{}, 1e-9, 2*math.Pi - theta},
		{"sided", Sided{}, 1e-9, theta},
		{"search", Search{}, 1e-6, theta},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.inv.Invert(c, p)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.tol)
		})
	}
}

func TestInverters_Errors(t *testing.T) {
	h := Helix{Radius: 1, Length: 10, Loops: 2}

	_, err := ClosedForm{}.Invert(h, vec.Zero())
	var ce *dynamo.ConstraintInversionError
	assert.True(t, errors.As(err, &ce))

	_, err = Sided{}.Invert(h, vec.Zero())
	assert.True(t, errors.As(err, &ce))

	_, err = Search{MaxDistance: 0.5}.Invert(Cycloid{Radius: 1}, vec.New(0, 10, 0))
	assert.True(t, errors.As(err, &ce))

	_, err = ParseInverter("newton")
	assert.Error(t, err)
	inv, err := ParseInverter("search")
	require.NoError(t, err)
	assert.IsType(t, Search{}, inv)
}

func TestRail_ProjectsVelocity(t *testing.T) {
	c := Cycloid{Radius: 1, Slack: 0.1}
	r := NewRail(c, Sided{})
	b := &dynamo.Body{Mass: 1, Pos: c.Point(1), Vel: vec.New(0, -1, 0)}

	require.NoError(t, r.ResolveVelocity(b))
	assert.InDelta(t, 1, r.Param(), 1e-9)

	tan := Tangent(c, 1)
	assert.InDelta(t, 0, b.Vel.Reject(tan).Mag(), 1e-9)
	assert.InDelta(t, math.Abs(tan.Y), b.Vel.Mag(), 1e-9)
}

func TestRail_HoldsBeadThroughTheBottom(t *testing.T) {
	for _, inv := range []Inverter{Sided{}, Search{}} {
		c := Cycloid{Radius: 1, Slack: 0.05}
		w := dynamo.NewWorld()
		h := w.MustAdd(dynamo.Body{Mass: 1, Pos: c.Point(1)})
		b := w.Body(h)
		set := NewSet()
		require.NoError(t, set.Attach(h, NewRail(c, inv)))

		forces := physics.NewAssembler(physics.Gravity(9.81))
		stepper := integrators.NewSemiImplicit()
		filter := func(b *dynamo.Body) error { return set.ResolveVelocity(h, b) }
		maxX := b.Pos.X
		for i := 0; i < 2000; i++ {
			net, err := forces.Net(w, nil)
			require.NoError(t, err)
			require.NoError(t, stepper.Step(h, b, net[h], 0.001, filter))
			require.NoError(t, set.ResolvePosition(h, b))

			theta, err := Search{}.Invert(c, b.Pos)
			require.NoError(t, err)
			require.Less(t, vec.Distance(c.Point(theta), b.Pos), 1e-6, "%T step %d pos %+v", inv, i, b.Pos)
			require.GreaterOrEqual(t, b.Pos.Y, -1-1e-9)
			maxX = math.Max(maxX, b.Pos.X)
		}
		// past the bottom and up the far side
		assert.Greater(t, maxX, 1.0, "%T", inv)
	}
}

func TestEnergyRail_Speed(t *testing.T) {
	c := Cycloid{Radius: 10, Slack: 0.1}
	start := c.Point(0.5)
	g := 9.81
	r := NewEnergyRail(c, ClosedForm{}, g*start.Y, g)

	b := &dynamo.Body{Mass: 1, Pos: c.Point(1.5)}
	require.NoError(t, r.ResolveVelocity(b))

	want := math.Sqrt(2 * g * (start.Y - b.Pos.Y))
	assert.InDelta(t, want, b.Vel.Mag(), 1e-9)
	// along increasing parameter, which is downhill here
	assert.Less(t, b.Vel.Y, 0.0)

	// above the energy ceiling the bead stalls instead of going imaginary
	b.Pos = c.Point(0.2)
	require.NoError(t, r.ResolveVelocity(b))
	assert.Equal(t, 0.0, b.Vel.Mag())
}

func TestRigidRod_LengthInvariant(t *testing.T) {
	for _, speed := range []float64{0, 1, 5, 15} {
		rod := &RigidRod{Length: 10}
		set := NewSet()
		w := dynamo.NewWorld()
		h := w.MustAdd(dynamo.Body{Mass: 1, Pos: vec.New(-10*math.Sin(0.8), -10*math.Cos(0.8), 0)})
		b := w.Body(h)
		// tangential start velocity
		b.Vel = vec.ZHat.Cross(b.Pos).Unit().Scale(speed)
		require.NoError(t, set.Attach(h, rod))

		forces := physics.NewAssembler(physics.Gravity(9.8))
		stepper := integrators.NewSemiImplicit()
		for i := 0; i < 3000; i++ {
			net, err := forces.Net(w, nil)
			require.NoError(t, err)
			f, err := set.ResolveForce(h, b, net[h])
			require.NoError(t, err)
			require.NoError(t, stepper.Step(h, b, f, 0.01))
			require.NoError(t, set.ResolvePosition(h, b))

			require.InDelta(t, 0, rod.Extension(b), 1e-9, "speed %v step %d", speed, i)
			require.InDelta(t, 0, b.Vel.Dot(b.Pos.Unit()), 1e-9)
		}
	}
}

func TestRigidRod_KeepsEnergy(t *testing.T) {
	const g, l = 9.8, 10.0
	rod := &RigidRod{Length: l}
	set := NewSet()
	w := dynamo.NewWorld()
	h := w.MustAdd(dynamo.Body{Mass: 1, Pos: vec.New(-l*math.Sin(math.Pi/4), -l*math.Cos(math.Pi/4), 0)})
	b := w.Body(h)
	require.NoError(t, set.Attach(h, rod))

	energy := func() float64 { return 0.5*b.Mass*b.Vel.Mag2() + b.Mass*g*b.Pos.Y }
	e0 := energy()

	forces := physics.NewAssembler(physics.Gravity(g))
	stepper := integrators.NewSemiImplicit()
	for i := 0; i < 3000; i++ {
		net, err := forces.Net(w, nil)
		require.NoError(t, err)
		f, err := set.ResolveForce(h, b, net[h])
		require.NoError(t, err)
		require.NoError(t, stepper.Step(h, b, f, 0.01))
		require.NoError(t, set.ResolvePosition(h, b))

		require.Less(t, math.Abs(energy()-e0)/math.Abs(e0), 0.01, "step %d", i)
	}
}

func TestRigidRod_ForceDecomposition(t *testing.T) {
	rod := &RigidRod{Length: 2}
	b := &dynamo.Body{Mass: 1, Pos: vec.New(0, -2, 0), Vel: vec.New(2, 0, 0)}

	f, err := rod.ResolveForce(b, vec.New(1, -9.8, 0))
	require.NoError(t, err)
	// gravity is absorbed; tension supplies m v²/L towards the pivot
	assert.InDelta(t, 1, f.X, 1e-12)
	assert.InDelta(t, 2, f.Y, 1e-12)

	_, err = rod.ResolveForce(&dynamo.Body{Mass: 1}, vec.Zero())
	var sf *dynamo.SingularForceError
	assert.True(t, errors.As(err, &sf))
}

func TestSpringNetwork(t *testing.T) {
	w := dynamo.NewWorld()
	hs := []dynamo.Handle{
		w.MustAdd(dynamo.Body{Mass: 1, Fixed: true}),
		w.MustAdd(dynamo.Body{Mass: 1, Pos: vec.New(3, 0, 0)}),
		w.MustAdd(dynamo.Body{Mass: 1, Pos: vec.New(5, 0, 0), Fixed: true}),
	}
	n := &SpringNetwork{Links: Chain(hs, 2, 2), Dissipation: 0.1}
	require.Len(t, n.Links, 2)

	net, err := physics.NewAssembler(n).Net(w, nil)
	require.NoError(t, err)
	// stretched by one to the left, relaxed to the right
	assert.InDelta(t, -2, net[hs[1]].X, 1e-12)
	assert.InDelta(t, 2, net[hs[0]].X, 1e-12)
	assert.InDelta(t, 0, net[hs[2]].X, 1e-12)

	assert.InDelta(t, 5, n.Length(w), 1e-12)
	assert.InDelta(t, 1, n.Potential(w), 1e-12)

	b := w.Body(hs[1])
	b.Vel = vec.New(10, 0, 0)
	require.NoError(t, n.ResolveVelocity(b))
	assert.InDelta(t, 9, b.Vel.X, 1e-12)

	w.Body(hs[1]).Pos = vec.Zero()
	_, err = physics.NewAssembler(n).Net(w, nil)
	var sf *dynamo.SingularForceError
	assert.True(t, errors.As(err, &sf))

	assert.Nil(t, Chain(hs[:1], 1, 1))
}

// A unit mass thrown along +x under gravity meets a wall at x = 1.
func TestWall_Reflection(t *testing.T) {
	w := dynamo.NewWorld()
	h := w.MustAdd(dynamo.Body{Mass: 1, Vel: vec.New(1, 0, 0)})
	b := w.Body(h)

	wall := &Wall{Point: vec.New(1, 0, 0), Normal: vec.New(-1, 0, 0)}
	set := NewSet()
	require.NoError(t, set.Attach(h, wall))

	forces := physics.NewAssembler(physics.Gravity(9.81))
	stepper := integrators.NewSemiImplicit()

	for i := 0; i < 10000 && wall.Hits() == 0; i++ {
		net, err := forces.Net(w, nil)
		require.NoError(t, err)
		require.NoError(t, stepper.Step(h, b, net[h], 0.001))

		before := b.Vel
		require.NoError(t, set.ResolvePosition(h, b))
		if wall.Hits() == 0 {
			continue
		}

		assert.Greater(t, b.Pos.X, 1.0)
		assert.Equal(t, -before.X, b.Vel.X)
		assert.Equal(t, before.Y, b.Vel.Y)
		assert.InDelta(t, before.Mag2(), b.Vel.Mag2(), 1e-12)
	}
	require.Equal(t, 1, wall.Hits())

	// moving away from the wall is left alone
	require.NoError(t, set.ResolvePosition(h, b))
	assert.Equal(t, 1, wall.Hits())
}

func TestSet(t *testing.T) {
	s := NewSet()
	assert.Equal(t, []Kind{Free}, s.Kinds(0))

	require.NoError(t, s.Attach(0, &RigidRod{Length: 1}, &Wall{Normal: vec.YHat}))
	assert.Equal(t, []Kind{RodKind, WallKind}, s.Kinds(0))
	assert.Len(t, s.For(0), 2)

	s.Freeze()
	assert.ErrorIs(t, s.Attach(1, &Wall{}), dynamo.ErrFrozen)
	assert.Equal(t, "rigid-rod", RodKind.String())
}

func TestSample(t *testing.T) {
	h := Helix{Radius: 1, Length: 10, Loops: 20}
	pts := Sample(h, 100)
	require.Len(t, pts, 101)
	assert.InDelta(t, -5, pts[0].X, 1e-12)
	assert.InDelta(t, 5, pts[100].X, 1e-9)
	for _, p := range pts {
		assert.InDelta(t, 1, math.Hypot(p.Y, p.Z), 1e-12)
	}
}
