package metrics

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/sink"
)

// Probe computes one coordinate of a sample.
type Probe func(w *dynamo.World, c dynamo.Clock) float64

// Time is the probe for the simulated time.
func Time(_ *dynamo.World, c dynamo.Clock) float64 { return c.T }

type Series struct {
	Graph sink.Graph
	Label string
	X, Y  Probe
}

// Sampler pushes its series into a plot sink every Every steps.
type Sampler struct {
	Every int

	plot   sink.Plot
	series []Series
	ids    []sink.SeriesID
	emits  int
}

func NewSampler(plot sink.Plot, every int) *Sampler {
	if every < 1 {
		every = 1
	}
	return &Sampler{Every: every, plot: plot}
}

// Track registers a series with the sink.
func (s *Sampler) Track(series ...Series) {
	for _, sr := range series {
		s.series = append(s.series, sr)
		s.ids = append(s.ids, s.plot.Series(sr.Graph, sr.Label))
	}
}

// Observe samples every series if the clock is on the cadence.
func (s *Sampler) Observe(w *dynamo.World, c dynamo.Clock) {
	if c.Step%s.Every != 0 {
		return
	}
	for i, sr := range s.series {
		x := Time(w, c)
		if sr.X != nil {
			x = sr.X(w, c)
		}
		s.plot.Add(s.ids[i], x, sr.Y(w, c))
	}
	s.emits++
}

// Emits counts the observations that produced samples.
func (s *Sampler) Emits() int { return s.emits }
