package analysis

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type SweepPoint struct {
	Param float64
	Value float64
}

// Measure runs one experiment for a parameter value.
type Measure func(ctx context.Context, param float64) (float64, error)

// Sweep measures every value concurrently and returns the points in the
// order of values. The first failure cancels the rest.
func Sweep(ctx context.Context, params []float64, m Measure) ([]SweepPoint, error) {
	points := make([]SweepPoint, len(params))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range params {
		g.Go(func() error {
			v, err := m(ctx, p)
			if err != nil {
				return fmt.Errorf("param=%g: %w", p, err)
			}
			points[i] = SweepPoint{Param: p, Value: v}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Linspace is n values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
