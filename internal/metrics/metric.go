package metrics

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
)

// Metric accumulates a single figure over a run.
type Metric interface {
	Name() string
	Observe(w *dynamo.World, c dynamo.Clock)
	Value() float64
	Reset()
}

// EnergyFunc reports the total energy of a world.
type EnergyFunc func(w *dynamo.World) float64

// EnergyDrift tracks the largest relative deviation from the first
// observed energy.
type EnergyDrift struct {
	energy   EnergyFunc
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(energy EnergyFunc) *EnergyDrift {
	return &EnergyDrift{energy: energy}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(w *dynamo.World, _ dynamo.Clock) {
	energy := e.energy(w)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		e.maxDrift = math.Max(e.maxDrift, math.Abs(energy-e.initial)/math.Abs(e.initial))
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// KineticTrend records the largest rise in total kinetic energy between
// consecutive observations made at or after Since. Zero means kinetic
// energy never increased in that window.
type KineticTrend struct {
	Since float64

	last    float64
	seen    bool
	maxRise float64
}

func NewKineticTrend(since float64) *KineticTrend {
	return &KineticTrend{Since: since}
}

func (k *KineticTrend) Name() string { return "kinetic_rise" }

func (k *KineticTrend) Observe(w *dynamo.World, c dynamo.Clock) {
	if c.T < k.Since {
		return
	}
	ke := KineticTotal(w)
	if k.seen {
		k.maxRise = math.Max(k.maxRise, ke-k.last)
	}
	k.last = ke
	k.seen = true
}

func (k *KineticTrend) Value() float64 { return k.maxRise }

func (k *KineticTrend) Reset() {
	k.last = 0
	k.seen = false
	k.maxRise = 0
}

// LengthConvergence watches a length and reports the change between the
// two most recent observations.
type LengthConvergence struct {
	length    func(w *dynamo.World) float64
	tolerance float64

	last    float64
	change  float64
	samples int
}

func NewLengthConvergence(length func(w *dynamo.World) float64, tolerance float64) *LengthConvergence {
	return &LengthConvergence{length: length, tolerance: tolerance, change: math.Inf(1)}
}

func (l *LengthConvergence) Name() string { return "length_change" }

func (l *LengthConvergence) Observe(w *dynamo.World, _ dynamo.Clock) {
	v := l.length(w)
	if l.samples > 0 {
		l.change = math.Abs(v - l.last)
	}
	l.last = v
	l.samples++
}

func (l *LengthConvergence) Value() float64 { return l.change }

// Converged reports whether the last change fell below the tolerance.
func (l *LengthConvergence) Converged() bool { return l.change < l.tolerance }

// Length is the most recent observed length.
func (l *LengthConvergence) Length() float64 { return l.last }

func (l *LengthConvergence) Reset() {
	l.last = 0
	l.change = math.Inf(1)
	l.samples = 0
}
