package integrators

import (
	"fmt"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

// Mode selects how a Stepper orders the velocity and position updates.
type Mode int

const (
	// SemiImplicit updates velocity from the current force, then position
	// from the new velocity.
	SemiImplicit Mode = iota
	// Midpoint is SemiImplicit where velocity-dependent forces see the
	// velocity interpolated to the current time, 1.5·v − 0.5·v_prev.
	Midpoint
	// Explicit is forward Euler: position moves with the old velocity.
	// It drifts in energy on oscillators and is kept for comparison runs.
	Explicit
)

var modeNames = map[Mode]string{
	SemiImplicit: "semi-implicit",
	Midpoint:     "midpoint",
	Explicit:     "explicit",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	switch s {
	case "", "euler", "symplectic":
		return SemiImplicit, nil
	}
	return SemiImplicit, fmt.Errorf("unknown integration mode: %s", s)
}

// VelocityFilter adjusts a body's velocity after the kick and before the
// position update. Rail projection and dissipation are filters.
type VelocityFilter func(b *dynamo.Body) error

// Stepper advances bodies by one fixed step.
type Stepper struct {
	mode Mode
	prev map[dynamo.Handle]vec.Vec3
}

func New(mode Mode) *Stepper {
	return &Stepper{mode: mode, prev: make(map[dynamo.Handle]vec.Vec3)}
}

func NewSemiImplicit() *Stepper { return New(SemiImplicit) }

func (s *Stepper) Mode() Mode { return s.mode }

// ForceVelocity returns the velocity velocity-dependent force laws should
// use for body h at the current step.
func (s *Stepper) ForceVelocity(h dynamo.Handle, b *dynamo.Body) vec.Vec3 {
	if s.mode != Midpoint {
		return b.Vel
	}
	prev, ok := s.prev[h]
	if !ok {
		return b.Vel
	}
	return b.Vel.Scale(1.5).Sub(prev.Scale(0.5))
}

// Step applies force to body h over dt. Fixed bodies are left untouched.
func (s *Stepper) Step(h dynamo.Handle, b *dynamo.Body, force vec.Vec3, dt float64, filters ...VelocityFilter) error {
	if b.Fixed {
		return nil
	}
	if !force.IsFinite() {
		return &dynamo.SingularForceError{Law: "net", Body: h, Detail: fmt.Sprintf("non-finite force %v", force)}
	}

	old := b.Vel
	s.prev[h] = old

	b.Vel = b.Vel.Add(force.Scale(dt / b.Mass))
	for _, f := range filters {
		if err := f(b); err != nil {
			return err
		}
	}

	if s.mode == Explicit {
		b.Pos = b.Pos.Add(old.Scale(dt))
	} else {
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}

	if !b.IsValid() {
		return dynamo.ErrInvalidState
	}
	return nil
}

// Reset forgets the velocity history used by Midpoint.
func (s *Stepper) Reset() {
	s.prev = make(map[dynamo.Handle]vec.Vec3)
}
