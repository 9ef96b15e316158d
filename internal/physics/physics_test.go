package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

const tol = 1e-12

func assertVec(t *testing.T, want, got vec.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
	assert.InDelta(t, want.Z, got.Z, tol, "z")
}

func TestGravity(t *testing.T) {
	w := dynamo.NewWorld()
	h := w.MustAdd(dynamo.Body{Mass: 2, Pos: vec.New(0, 3, 0)})

	g := Gravity(9.81)
	net, err := NewAssembler(g).Net(w, nil)
	require.NoError(t, err)
	assertVec(t, vec.New(0, -19.62, 0), net[h])
	assert.InDelta(t, 2*9.81*3, g.Potential(w), tol)
}

func TestInverseSquare(t *testing.T) {
	tests := []struct {
		name       string
		anchor     bool
		wantSource vec.Vec3
	}{
		{"anchored", true, vec.Zero()},
		{"coupled", false, vec.New(0.25, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := dynamo.NewWorld()
			sun := w.MustAdd(dynamo.Body{Mass: 1})
			planet := w.MustAdd(dynamo.Body{Mass: 1, Pos: vec.New(2, 0, 0)})

			law := &InverseSquare{Source: sun, G: 1, Anchor: tt.anchor}
			net, err := NewAssembler(law).Net(w, nil)
			require.NoError(t, err)

			assertVec(t, vec.New(-0.25, 0, 0), net[planet])
			assertVec(t, tt.wantSource, net[sun])
			assert.InDelta(t, -0.5, law.Potential(w), tol)
		})
	}
}

func TestInverseSquare_ZeroSeparation(t *testing.T) {
	w := dynamo.NewWorld()
	sun := w.MustAdd(dynamo.Body{Mass: 1})
	w.MustAdd(dynamo.Body{Mass: 1})

	_, err := NewAssembler(&InverseSquare{Source: sun, G: 1, Anchor: true}).Net(w, nil)

	var sf *dynamo.SingularForceError
	require.True(t, errors.As(err, &sf), "got %v", err)
	assert.Equal(t, dynamo.Handle(1), sf.Body)
}

func TestLorentz(t *testing.T) {
	w := dynamo.NewWorld()
	ion := w.MustAdd(dynamo.Body{Mass: 1, Charge: 2, Vel: vec.New(1, 0, 0), Pos: vec.New(0, 1, 0)})
	neutral := w.MustAdd(dynamo.Body{Mass: 1, Vel: vec.New(1, 0, 0), Pos: vec.New(0, 1, 0)})

	law := &Lorentz{Field: UniformB{B: vec.New(0, 0, -1)}}
	net, err := NewAssembler(law).Net(w, nil)
	require.NoError(t, err)
	assertVec(t, vec.New(0, 2, 0), net[ion])
	assertVec(t, vec.Zero(), net[neutral])

	// the law uses the supplied velocity rather than the body's
	net, err = NewAssembler(law).Net(w, func(dynamo.Handle) vec.Vec3 { return vec.New(2, 0, 0) })
	require.NoError(t, err)
	assertVec(t, vec.New(0, 4, 0), net[ion])
}

func TestDipole(t *testing.T) {
	d := Dipole{B0: 2, R0: 1}

	b, err := d.At(vec.New(0, 1, 0))
	require.NoError(t, err)
	assertVec(t, vec.New(0, 0, -2), b)

	b, err = d.At(vec.New(2, 0, 0))
	require.NoError(t, err)
	assertVec(t, vec.New(0, 0, -0.25), b)

	w := dynamo.NewWorld()
	h := w.MustAdd(dynamo.Body{Mass: 1, Charge: 1})
	_, err = NewAssembler(&Lorentz{Field: d}).Net(w, nil)
	var sf *dynamo.SingularForceError
	require.True(t, errors.As(err, &sf))
	assert.Equal(t, h, sf.Body)
}

func TestSpring(t *testing.T) {
	w := dynamo.NewWorld()
	h := w.MustAdd(dynamo.Body{Mass: 1, Pos: vec.New(5, 0, 0)})

	s := &Spring{Body: h, K: 1, Relaxed: 10}
	net, err := NewAssembler(s).Net(w, nil)
	require.NoError(t, err)
	assertVec(t, vec.New(5, 0, 0), net[h])
	assert.InDelta(t, -5, s.Stretch(w), tol)
	assert.InDelta(t, 12.5, s.Potential(w), tol)

	w.Body(h).Pos = vec.Zero()
	_, err = NewAssembler(s).Net(w, nil)
	var sf *dynamo.SingularForceError
	assert.True(t, errors.As(err, &sf))
}

func TestHooke_ZeroRelaxed(t *testing.T) {
	f, ok := Hooke(vec.Zero(), 3, 0)
	assert.True(t, ok)
	assert.Equal(t, vec.Zero(), f)
}

func TestDamping(t *testing.T) {
	w := dynamo.NewWorld()
	h := w.MustAdd(dynamo.Body{Mass: 1, Vel: vec.New(1, -2, 0)})

	net, err := NewAssembler(&Damping{C: 0.5}).Net(w, nil)
	require.NoError(t, err)
	assertVec(t, vec.New(-0.5, 1, 0), net[h])
}

func TestAssembler_ComposesAndLeavesBodiesAlone(t *testing.T) {
	w := dynamo.NewWorld()
	h := w.MustAdd(dynamo.Body{Mass: 1, Pos: vec.New(0, -5, 0)})
	before := *w.Body(h)

	a := NewAssembler(Gravity(10))
	a.Add(&Spring{Body: h, K: 2, Relaxed: 10})
	require.Len(t, a.Laws(), 2)

	net, err := a.Net(w, nil)
	require.NoError(t, err)
	// compressed spring pushes further from the anchor
	assertVec(t, vec.New(0, -20, 0), net[h])
	assert.Equal(t, before, *w.Body(h))

	assert.InDelta(t, -50+25, a.Potential(w), tol)
}

func TestAssembler_UnknownTarget(t *testing.T) {
	w := dynamo.NewWorld()
	w.MustAdd(dynamo.Body{Mass: 1})

	_, err := NewAssembler(&UniformField{Accel: vec.XHat, Targets: []dynamo.Handle{4}}).Net(w, nil)
	assert.ErrorIs(t, err, dynamo.ErrUnknownBody)
}

func TestEffectivePotential(t *testing.T) {
	assert.InDelta(t, -2.0, GravityPotential(1, 1, 2, 1), tol)
	assert.InDelta(t, 2.0, CentrifugalPotential(1, 2, 1), tol)
}

func TestShapes(t *testing.T) {
	span := 20.0

	// a nearly flat curve is as long as the span
	assert.InDelta(t, span, CatenaryLength(1e-6, span), 1e-6)
	assert.InDelta(t, span, ParabolaLength(1e-6, span), 1e-6)

	assert.Greater(t, CatenaryLength(0.2, span), CatenaryLength(0.1, span))
	assert.Greater(t, ParabolaLength(0.2, span), ParabolaLength(0.1, span))

	for _, x := range []float64{-span / 2, span / 2} {
		assert.InDelta(t, 10, CatenaryY(0.1, span, 10, x), 1e-9)
		assert.InDelta(t, 10, ParabolaY(0.1, span, 10, x), 1e-9)
	}
	assert.Less(t, CatenaryY(0.1, span, 10, 0), 10.0)
	assert.InDelta(t, 10-0.5*0.1*100, ParabolaY(0.1, span, 10, 0), 1e-9)
	assert.False(t, math.IsNaN(CatenaryY(0.1, span, 10, 0)))
}
