package dynamo

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/vec"
)

// Handle is a stable index into a World's body arena.
type Handle int

// NoBody marks errors and lookups that do not concern a single body.
const NoBody Handle = -1

type Body struct {
	ID     string
	Pos    vec.Vec3
	Vel    vec.Vec3
	Mass   float64
	Charge float64
	// Fixed bodies feel forces but are never moved by the integrator.
	Fixed bool
}

func (b *Body) Momentum() vec.Vec3 {
	return b.Vel.Scale(b.Mass)
}

// SetMomentum sets the velocity that gives momentum p at the body's mass.
func (b *Body) SetMomentum(p vec.Vec3) {
	b.Vel = p.Scale(1 / b.Mass)
}

func (b *Body) IsValid() bool {
	return b.Pos.IsFinite() && b.Vel.IsFinite()
}

func (b *Body) Validate() error {
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return fmt.Errorf("%w: body %q has mass %g", ErrInvalidMass, b.ID, b.Mass)
	}
	if !b.IsValid() {
		return fmt.Errorf("%w: body %q", ErrInvalidState, b.ID)
	}
	return nil
}

// World is the arena of bodies for one run. Its size is fixed once frozen.
type World struct {
	bodies []Body
	frozen bool
}

func NewWorld() *World {
	return &World{bodies: make([]Body, 0, 8)}
}

func (w *World) Add(b Body) (Handle, error) {
	if w.frozen {
		return NoBody, ErrFrozen
	}
	if err := b.Validate(); err != nil {
		return NoBody, err
	}
	w.bodies = append(w.bodies, b)
	return Handle(len(w.bodies) - 1), nil
}

// MustAdd is Add for scenario setup code where a failure is a programming error.
func (w *World) MustAdd(b Body) Handle {
	h, err := w.Add(b)
	if err != nil {
		panic(err)
	}
	return h
}

func (w *World) Freeze()      { w.frozen = true }
func (w *World) Frozen() bool { return w.frozen }
func (w *World) Len() int     { return len(w.bodies) }

// Body returns a pointer into the arena, or nil for an unknown handle.
func (w *World) Body(h Handle) *Body {
	if h < 0 || int(h) >= len(w.bodies) {
		return nil
	}
	return &w.bodies[h]
}

func (w *World) Handles() []Handle {
	hs := make([]Handle, len(w.bodies))
	for i := range hs {
		hs[i] = Handle(i)
	}
	return hs
}

func (w *World) IsValid() bool {
	for i := range w.bodies {
		if !w.bodies[i].IsValid() {
			return false
		}
	}
	return true
}

func (w *World) Clone() *World {
	c := &World{bodies: make([]Body, len(w.bodies)), frozen: w.frozen}
	copy(c.bodies, w.bodies)
	return c
}

// Clock tracks simulated time for a single run.
type Clock struct {
	T    float64
	Dt   float64
	TMax float64
	Step int
}

func NewClock(dt, tmax float64) (Clock, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return Clock{}, fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, dt)
	}
	if !(tmax > 0) || math.IsInf(tmax, 0) {
		return Clock{}, fmt.Errorf("%w: tmax must be positive, got %g", ErrInvalidConfig, tmax)
	}
	return Clock{Dt: dt, TMax: tmax}, nil
}

// MaxSteps is the number of steps needed for T to reach TMax.
func (c Clock) MaxSteps() int {
	return int(math.Ceil(c.TMax/c.Dt - 1e-9))
}

// Advance moves the clock forward one step. Time is derived from the step
// count so it does not accumulate rounding error.
func (c *Clock) Advance() {
	c.Step++
	c.T = float64(c.Step) * c.Dt
}

func (c Clock) Done() bool {
	return c.Step >= c.MaxSteps()
}
