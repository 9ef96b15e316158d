package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
)

type Config struct {
	Dt   float64
	TMax float64
	// SampleEvery is the diagnostic cadence in steps.
	SampleEvery int
	// CaptureEvery is the snapshot interval in simulated seconds; zero
	// disables capture.
	CaptureEvery float64
	// Mode overrides the model's integration mode when set.
	Mode string
}

// Merge fills the zero fields of c from d.
func (c Config) Merge(d Config) Config {
	if c.Dt == 0 {
		c.Dt = d.Dt
	}
	if c.TMax == 0 {
		c.TMax = d.TMax
	}
	if c.SampleEvery == 0 {
		c.SampleEvery = d.SampleEvery
	}
	if c.CaptureEvery == 0 {
		c.CaptureEvery = d.CaptureEvery
	}
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	return c
}

func (c Config) Validate() error {
	if c.Dt <= 0 || math.IsNaN(c.Dt) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, c.Dt)
	}
	if c.TMax <= 0 || math.IsNaN(c.TMax) {
		return fmt.Errorf("%w: tmax must be positive, got %f", dynamo.ErrInvalidConfig, c.TMax)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("%w: sample cadence must not be negative, got %d", dynamo.ErrInvalidConfig, c.SampleEvery)
	}
	if c.CaptureEvery < 0 {
		return fmt.Errorf("%w: capture interval must not be negative, got %f", dynamo.ErrInvalidConfig, c.CaptureEvery)
	}
	if _, err := integrators.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidConfig, err)
	}
	return nil
}

// captureSteps converts the capture interval to a whole number of steps.
func (c Config) captureSteps() int {
	if c.CaptureEvery <= 0 {
		return 0
	}
	n := int(math.Round(c.CaptureEvery / c.Dt))
	if n < 1 {
		n = 1
	}
	return n
}

type Reason string

const (
	ReasonTMax    Reason = "tmax"
	ReasonDone    Reason = "done"
	ReasonAborted Reason = "aborted"
)

type Result struct {
	RunID       string
	Scenario    string
	Dt          float64
	Steps       int
	Time        float64
	Reason      Reason
	EnergyDrift float64
	Metrics     map[string]float64
	Snapshots   int
	Elapsed     time.Duration
}
