package sim

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Ensemble runs one scenario at several step sizes concurrently. Every
// run builds its own model and pushes into no sinks.
type Ensemble struct {
	scenario Scenario
	logger   *zap.Logger
	limit    int
}

func NewEnsemble(s Scenario, logger *zap.Logger) *Ensemble {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ensemble{scenario: s, logger: logger, limit: runtime.GOMAXPROCS(0)}
}

// Run returns one result per dt, in the order given.
func (e *Ensemble) Run(ctx context.Context, cfg Config, dts []float64) ([]*Result, error) {
	results := make([]*Result, len(dts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i, dt := range dts {
		g.Go(func() error {
			c := cfg
			c.Dt = dt
			c.CaptureEvery = 0
			r := NewRunner(WithLogger(e.logger.With(zap.Float64("dt", dt))))
			res, err := r.Run(ctx, e.scenario, c)
			results[i] = res
			if err != nil {
				return fmt.Errorf("dt=%g: %w", dt, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Halving is dt, dt/2, dt/4, ... with n entries.
func Halving(dt float64, n int) []float64 {
	dts := make([]float64, n)
	for i := range dts {
		dts[i] = dt / math.Pow(2, float64(i))
	}
	return dts
}

// DriftOrder fits log(drift) against log(dt) and returns the slope, the
// empirical order of the integrator. Semi-implicit Euler gives about 1.
func DriftOrder(results []*Result) (float64, error) {
	var xs, ys []float64
	for _, r := range results {
		if r == nil || r.EnergyDrift <= 0 {
			continue
		}
		xs = append(xs, math.Log(r.Dt))
		ys = append(ys, math.Log(r.EnergyDrift))
	}
	if len(xs) < 2 {
		return 0, fmt.Errorf("need at least two runs with non-zero drift, got %d", len(xs))
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope, nil
}
