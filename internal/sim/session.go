package sim

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/sink"
	"github.com/san-kum/physlab/internal/vec"
)

// ErrFinished is returned by Step once the run has ended.
var ErrFinished = errors.New("sim: run already finished")

type binding struct {
	id  sink.ObjectID
	obj sink.Object
}

// Session is a run in progress. The live view drives it one step at a
// time; Runner.Run drives it to the end.
type Session struct {
	model  *Model
	cfg    Config
	sinks  Sinks
	logger *zap.Logger

	clock   dynamo.Clock
	stepper *integrators.Stepper
	sampler *metrics.Sampler
	drift   *metrics.EnergyDrift
	objects []binding

	captureEvery  int
	progressEvery int

	result  Result
	done    bool
	err     error
	started time.Time
}

func (s *Session) World() *dynamo.World { return s.model.World }
func (s *Session) Clock() dynamo.Clock  { return s.clock }
func (s *Session) Model() *Model        { return s.model }
func (s *Session) Done() bool           { return s.done }

// Energy is the model's current total energy.
func (s *Session) Energy() float64 { return s.model.Energy(s.model.World) }

func newSession(m *Model, cfg Config, sinks Sinks, logger *zap.Logger) (*Session, error) {
	if err := m.normalize(); err != nil {
		return nil, err
	}
	cfg = cfg.Merge(m.Defaults)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clock, err := dynamo.NewClock(cfg.Dt, cfg.TMax)
	if err != nil {
		return nil, err
	}

	mode := m.Mode
	if cfg.Mode != "" {
		if mode, err = integrators.ParseMode(cfg.Mode); err != nil {
			return nil, err
		}
	}

	s := &Session{
		model:        m,
		cfg:          cfg,
		sinks:        sinks.withDefaults(),
		clock:        clock,
		stepper:      integrators.New(mode),
		drift:        metrics.NewEnergyDrift(m.Energy),
		captureEvery: cfg.captureSteps(),
		started:      time.Now(),
		result: Result{
			RunID:    uuid.NewString(),
			Scenario: m.Name,
			Dt:       cfg.Dt,
			Metrics:  make(map[string]float64),
		},
	}
	s.logger = logger.With(zap.String("run_id", s.result.RunID), zap.String("scenario", m.Name))
	s.progressEvery = clock.MaxSteps() / 10
	if s.progressEvery < 1 {
		s.progressEvery = 1
	}

	m.World.Freeze()
	m.Constraints.Freeze()

	for _, o := range m.Scene {
		s.objects = append(s.objects, binding{id: s.sinks.Render.Create(o), obj: o})
	}
	s.sampler = metrics.NewSampler(s.sinks.Plot, cfg.SampleEvery)
	s.sampler.Track(m.Series...)
	for _, mt := range m.Metrics {
		mt.Reset()
	}

	s.logger.Info("run started",
		zap.Int("bodies", m.World.Len()),
		zap.Float64("dt", cfg.Dt),
		zap.Float64("tmax", cfg.TMax),
		zap.Stringer("mode", mode),
		zap.Int("max_steps", clock.MaxSteps()),
	)

	if m.Hooks.Setup != nil {
		if err := m.Hooks.Setup(m.World, s.sinks); err != nil {
			s.abort(err, dynamo.NoBody)
			return nil, err
		}
	}
	s.observe()
	if err := s.capture(); err != nil {
		s.abort(err, dynamo.NoBody)
		return nil, err
	}
	return s, nil
}

// Step advances the run by one fixed step. Forces on every body are
// computed before any body moves.
func (s *Session) Step() error {
	if s.done {
		return ErrFinished
	}
	w := s.model.World
	cs := s.model.Constraints
	dt := s.clock.Dt

	vel := func(h dynamo.Handle) vec.Vec3 { return s.stepper.ForceVelocity(h, w.Body(h)) }
	net, err := s.model.Forces.Net(w, vel)
	if err != nil {
		return s.abort(err, offendingBody(err))
	}

	for _, h := range w.Handles() {
		b := w.Body(h)
		if b.Fixed {
			continue
		}
		f, err := cs.ResolveForce(h, b, net[h])
		if err != nil {
			return s.abort(err, h)
		}
		filter := func(b *dynamo.Body) error { return cs.ResolveVelocity(h, b) }
		if err := s.stepper.Step(h, b, f, dt, filter); err != nil {
			return s.abort(err, h)
		}
		if err := cs.ResolvePosition(h, b); err != nil {
			return s.abort(err, h)
		}
	}

	s.clock.Advance()
	s.observe()
	s.render()

	if s.model.Hooks.Step != nil {
		if err := s.model.Hooks.Step(w, s.clock, s.sinks); err != nil {
			return s.abort(err, dynamo.NoBody)
		}
	}
	if err := s.capture(); err != nil {
		return s.abort(err, dynamo.NoBody)
	}

	if s.clock.Step%s.progressEvery == 0 {
		s.logger.Debug("progress",
			zap.Int("step", s.clock.Step),
			zap.Float64("t", s.clock.T),
			zap.Float64("energy_drift", s.drift.Value()),
		)
	}

	switch {
	case s.model.Done(w, s.clock):
		s.finish(ReasonDone)
	case s.clock.Done():
		s.finish(ReasonTMax)
	}
	return s.err
}

func (s *Session) observe() {
	w := s.model.World
	s.sampler.Observe(w, s.clock)
	s.drift.Observe(w, s.clock)
	for _, m := range s.model.Metrics {
		m.Observe(w, s.clock)
	}
}

func (s *Session) render() {
	w := s.model.World
	for _, bd := range s.objects {
		o := bd.obj
		if o.Body == dynamo.NoBody {
			continue
		}
		b := w.Body(o.Body)
		if b == nil {
			continue
		}
		switch {
		case o.Linked:
			base := w.Body(o.From)
			if base == nil {
				continue
			}
			s.sinks.Render.Update(bd.id, base.Pos, b.Pos.Sub(base.Pos))
		case o.Kind == sink.Sphere || o.Kind == sink.Box:
			s.sinks.Render.Update(bd.id, b.Pos, o.Axis)
		default:
			s.sinks.Render.Update(bd.id, o.Pos, b.Pos.Sub(o.Pos))
		}
	}
}

func (s *Session) capture() error {
	if s.captureEvery == 0 || s.clock.Step%s.captureEvery != 0 {
		return nil
	}
	if err := s.sinks.Capture.Snapshot(s.model.CaptureTag(s.clock)); err != nil {
		return err
	}
	s.result.Snapshots++
	return nil
}

func (s *Session) finish(reason Reason) {
	s.done = true
	s.fill(reason)

	if s.model.Hooks.Finish != nil {
		extra, err := s.model.Hooks.Finish(s.model.World, s.sinks)
		if err != nil {
			s.err = err
			s.result.Reason = ReasonAborted
			s.logger.Error("finish failed", zap.Error(err))
			return
		}
		for k, v := range extra {
			s.result.Metrics[k] = v
		}
	}

	s.logger.Info("run finished",
		zap.String("reason", string(reason)),
		zap.Int("steps", s.result.Steps),
		zap.Float64("t", s.result.Time),
		zap.Float64("energy_drift", s.result.EnergyDrift),
		zap.Duration("elapsed", s.result.Elapsed),
	)
}

func (s *Session) fill(reason Reason) {
	s.result.Reason = reason
	s.result.Steps = s.clock.Step
	s.result.Time = s.clock.T
	s.result.EnergyDrift = s.drift.Value()
	s.result.Elapsed = time.Since(s.started)
	s.result.Metrics[s.drift.Name()] = s.drift.Value()
	for _, m := range s.model.Metrics {
		s.result.Metrics[m.Name()] = m.Value()
	}
}

// abort ends the run with err wrapped in a StepError.
func (s *Session) abort(err error, body dynamo.Handle) error {
	var se *dynamo.StepError
	if !errors.As(err, &se) {
		se = &dynamo.StepError{Step: s.clock.Step, Time: s.clock.T, Body: body, Wrapped: err}
	}
	s.done = true
	s.err = se
	s.fill(ReasonAborted)
	s.logger.Error("run aborted",
		zap.Int("step", se.Step),
		zap.Float64("t", se.Time),
		zap.Int("body", int(se.Body)),
		zap.Error(se.Wrapped),
	)
	return se
}

// Result is the summary so far; final once Done reports true.
func (s *Session) Result() *Result {
	r := s.result
	r.Metrics = make(map[string]float64, len(s.result.Metrics))
	for k, v := range s.result.Metrics {
		r.Metrics[k] = v
	}
	return &r
}

// Err is the error that ended the run, if any.
func (s *Session) Err() error { return s.err }

func offendingBody(err error) dynamo.Handle {
	var sf *dynamo.SingularForceError
	if errors.As(err, &sf) {
		return sf.Body
	}
	return dynamo.NoBody
}
