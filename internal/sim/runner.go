package sim

import (
	"context"

	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/dynamo"
)

type Runner struct {
	logger *zap.Logger
	sinks  Sinks
}

type Option func(*Runner)

func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithSinks(s Sinks) Option {
	return func(r *Runner) { r.sinks = s }
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.sinks = r.sinks.withDefaults()
	return r
}

// Start prepares a stepwise run of m.
func (r *Runner) Start(m *Model, cfg Config) (*Session, error) {
	return newSession(m, cfg, r.sinks, r.logger)
}

// Run builds the scenario and runs it to completion.
func (r *Runner) Run(ctx context.Context, s Scenario, cfg Config) (*Result, error) {
	m, err := s.Build()
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		m.Name = s.Name()
	}
	return r.RunModel(ctx, m, cfg)
}

// RunModel steps m until the clock runs out, the model's done predicate
// fires, a step fails or ctx is cancelled. The pacer is consulted after
// every step.
func (r *Runner) RunModel(ctx context.Context, m *Model, cfg Config) (*Result, error) {
	sess, err := r.Start(m, cfg)
	if err != nil {
		return nil, err
	}

	for !sess.Done() {
		select {
		case <-ctx.Done():
			err := sess.abort(ctx.Err(), dynamo.NoBody)
			return sess.Result(), err
		default:
		}

		if err := sess.Step(); err != nil {
			return sess.Result(), err
		}
		if err := r.sinks.Pacer.Wait(ctx); err != nil {
			err = sess.abort(err, dynamo.NoBody)
			return sess.Result(), err
		}
	}
	return sess.Result(), sess.Err()
}
