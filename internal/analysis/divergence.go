package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/physlab/internal/sink"
)

// Divergence estimates the largest Lyapunov exponent from two runs
// started a small distance apart: the slope of ln|a-b| against time. A
// positive value means small differences grow exponentially.
//
// The series must share sample times. Samples where the runs agree
// exactly carry no information and are skipped.
func Divergence(a, b []sink.Point) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("analysis: series lengths differ: %d and %d", len(a), len(b))
	}
	var ts, logs []float64
	for i := range a {
		if a[i].X != b[i].X {
			return 0, fmt.Errorf("analysis: sample %d at t=%g and t=%g", i, a[i].X, b[i].X)
		}
		d := math.Abs(a[i].Y - b[i].Y)
		if d == 0 || math.IsNaN(d) {
			continue
		}
		ts = append(ts, a[i].X)
		logs = append(logs, math.Log(d))
	}
	if len(ts) < 2 {
		return 0, ErrTooShort
	}
	_, slope := stat.LinearRegression(ts, logs, nil, false)
	return slope, nil
}
