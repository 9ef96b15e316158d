package scenario

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/constraints"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/sim"
)

// Solenoid draws a coil of wire as cylinder segments. Nothing moves; the
// run is a single step.
type Solenoid struct {
	params
}

func NewSolenoid() *Solenoid {
	return &Solenoid{params: newParams("solenoid", map[string]float64{
		"radius": 1,
		"length": 10,
		"loops":  20,
		// step is the winding angle per segment in degrees.
		"step": 5,
	})}
}

func (s *Solenoid) Build() (*sim.Model, error) {
	if s.get("step") <= 0 {
		return nil, fmt.Errorf("%w: winding step must be positive", dynamo.ErrInvalidConfig)
	}
	coil := constraints.Helix{Radius: s.get("radius"), Length: s.get("length"), Loops: s.get("loops")}
	_, hi := coil.Domain()
	n := int(math.Round(hi / metrics.Radians(s.get("step"))))

	return &sim.Model{
		World:    dynamo.NewWorld(),
		Scene:    wire(coil, n, 0.05),
		Defaults: sim.Config{Dt: 1, TMax: 1},
	}, nil
}
