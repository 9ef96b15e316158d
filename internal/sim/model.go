// Package sim runs a Model: it owns the clock, assembles forces for all
// bodies, steps them, resolves constraints and feeds the sinks.
package sim

import (
	"fmt"

	"github.com/san-kum/physlab/internal/constraints"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sink"
)

// Scenario builds a fresh Model each time it is asked, so concurrent runs
// never share bodies.
type Scenario interface {
	Name() string
	Build() (*Model, error)
}

// Predicate ends a run early when it returns true.
type Predicate func(w *dynamo.World, c dynamo.Clock) bool

// AnyBody is true once some body in hs satisfies f.
func AnyBody(hs []dynamo.Handle, f func(b *dynamo.Body) bool) Predicate {
	return func(w *dynamo.World, _ dynamo.Clock) bool {
		for _, h := range hs {
			if b := w.Body(h); b != nil && f(b) {
				return true
			}
		}
		return false
	}
}

// AllBodies is true once every body in hs satisfies f.
func AllBodies(hs []dynamo.Handle, f func(b *dynamo.Body) bool) Predicate {
	return func(w *dynamo.World, _ dynamo.Clock) bool {
		for _, h := range hs {
			if b := w.Body(h); b == nil || !f(b) {
				return false
			}
		}
		return len(hs) > 0
	}
}

func Or(ps ...Predicate) Predicate {
	return func(w *dynamo.World, c dynamo.Clock) bool {
		for _, p := range ps {
			if p != nil && p(w, c) {
				return true
			}
		}
		return false
	}
}

// Sinks groups the outputs a run pushes into.
type Sinks struct {
	Render  sink.Render
	Plot    sink.Plot
	Pacer   sink.Pacer
	Capture sink.Capture
}

func (s Sinks) withDefaults() Sinks {
	if s.Render == nil {
		s.Render = sink.Discard
	}
	if s.Plot == nil {
		s.Plot = sink.Discard
	}
	if s.Pacer == nil {
		s.Pacer = sink.NoPace
	}
	if s.Capture == nil {
		s.Capture = sink.Discard
	}
	return s
}

// Hooks let a scenario draw static content or do work the step loop does
// not know about. All are optional.
type Hooks struct {
	// Setup runs once before the first step.
	Setup func(w *dynamo.World, s Sinks) error
	// Step runs after every committed step.
	Step func(w *dynamo.World, c dynamo.Clock, s Sinks) error
	// Finish runs after the loop ends without error.
	Finish func(w *dynamo.World, s Sinks) (map[string]float64, error)
}

// Model is everything a run needs. Only World is required.
type Model struct {
	Name        string
	World       *dynamo.World
	Forces      *physics.Assembler
	Constraints *constraints.Set
	Mode        integrators.Mode

	Done   Predicate
	Energy metrics.EnergyFunc
	Series []metrics.Series
	Scene  []sink.Object
	// Metrics are observed every step and reported in the Result.
	Metrics []metrics.Metric
	Hooks   Hooks

	// CaptureTag names frame snapshots. Defaults to milliseconds of
	// simulated time, zero padded to three digits.
	CaptureTag func(c dynamo.Clock) string

	Defaults Config
}

func (m *Model) normalize() error {
	if m.World == nil {
		return fmt.Errorf("%w: model %q has no world", dynamo.ErrInvalidConfig, m.Name)
	}
	if m.Forces == nil {
		m.Forces = physics.NewAssembler()
	}
	if m.Constraints == nil {
		m.Constraints = constraints.NewSet()
	}
	if m.Energy == nil {
		forces := m.Forces
		m.Energy = func(w *dynamo.World) float64 { return metrics.Mechanical(w, forces) }
	}
	if m.CaptureTag == nil {
		m.CaptureTag = func(c dynamo.Clock) string { return fmt.Sprintf("%03.0f", 1000*c.T) }
	}
	if m.Done == nil {
		m.Done = func(*dynamo.World, dynamo.Clock) bool { return false }
	}
	return nil
}
