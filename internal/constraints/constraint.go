package constraints

import (
	"fmt"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

type Kind int

const (
	Free Kind = iota
	RailKind
	RodKind
	NetworkKind
	WallKind
)

var kindNames = map[Kind]string{
	Free:        "free",
	RailKind:    "rail",
	RodKind:     "rigid-rod",
	NetworkKind: "spring-network",
	WallKind:    "wall",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Constraint interface {
	Kind() Kind
}

type ForceResolver interface {
	ResolveForce(b *dynamo.Body, force vec.Vec3) (vec.Vec3, error)
}

type VelocityResolver interface {
	ResolveVelocity(b *dynamo.Body) error
}

type PositionResolver interface {
	ResolvePosition(b *dynamo.Body) error
}

// Set holds the constraints of every body in a world.
type Set struct {
	byBody map[dynamo.Handle][]Constraint
	frozen bool
}

func NewSet() *Set {
	return &Set{byBody: make(map[dynamo.Handle][]Constraint)}
}

func (s *Set) Attach(h dynamo.Handle, cs ...Constraint) error {
	if s.frozen {
		return dynamo.ErrFrozen
	}
	s.byBody[h] = append(s.byBody[h], cs...)
	return nil
}

// Freeze stops further attachment. The runner freezes the set before the
// first step.
func (s *Set) Freeze() { s.frozen = true }

func (s *Set) For(h dynamo.Handle) []Constraint { return s.byBody[h] }

// Kinds lists the kinds attached to h, Free when there are none.
func (s *Set) Kinds(h dynamo.Handle) []Kind {
	cs := s.byBody[h]
	if len(cs) == 0 {
		return []Kind{Free}
	}
	kinds := make([]Kind, len(cs))
	for i, c := range cs {
		kinds[i] = c.Kind()
	}
	return kinds
}

func (s *Set) ResolveForce(h dynamo.Handle, b *dynamo.Body, force vec.Vec3) (vec.Vec3, error) {
	var err error
	for _, c := range s.byBody[h] {
		if r, ok := c.(ForceResolver); ok {
			if force, err = r.ResolveForce(b, force); err != nil {
				return force, err
			}
		}
	}
	return force, nil
}

func (s *Set) ResolveVelocity(h dynamo.Handle, b *dynamo.Body) error {
	for _, c := range s.byBody[h] {
		if r, ok := c.(VelocityResolver); ok {
			if err := r.ResolveVelocity(b); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Set) ResolvePosition(h dynamo.Handle, b *dynamo.Body) error {
	for _, c := range s.byBody[h] {
		if r, ok := c.(PositionResolver); ok {
			if err := r.ResolvePosition(b); err != nil {
				return err
			}
		}
	}
	return nil
}
