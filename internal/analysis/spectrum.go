package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/physlab/internal/sink"
)

var ErrTooShort = errors.New("analysis: series too short")

func values(pts []sink.Point) []float64 {
	ys := make([]float64, len(pts))
	for i, p := range pts {
		ys[i] = p.Y
	}
	return ys
}

// PowerSpectrum is |X_k| for the first half of the spectrum of ys with
// the mean removed.
func PowerSpectrum(ys []float64) []float64 {
	centered := make([]float64, len(ys))
	copy(centered, ys)
	floats.AddConst(-stat.Mean(ys, nil), centered)

	bins := fft.FFTReal(centered)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-zero frequency of a
// uniformly sampled series, in cycles per unit of X.
func DominantFrequency(pts []sink.Point) (float64, error) {
	if len(pts) < 8 {
		return 0, ErrTooShort
	}
	dt := pts[1].X - pts[0].X
	if dt <= 0 {
		return 0, errors.New("analysis: samples not increasing in time")
	}

	ps := PowerSpectrum(values(pts))
	k := 1 + floats.MaxIdx(ps[1:])
	if ps[k] == 0 {
		return 0, errors.New("analysis: flat series")
	}

	// Parabolic interpolation between neighbouring bins.
	shift := 0.0
	if k > 1 && k < len(ps)-1 {
		a, b, c := ps[k-1], ps[k], ps[k+1]
		if d := a - 2*b + c; d != 0 {
			shift = 0.5 * (a - c) / d
		}
	}
	return (float64(k) + shift) / (float64(len(pts)) * dt), nil
}

// Period is the mean spacing of upward crossings of the series mean,
// located by linear interpolation.
func Period(pts []sink.Point) (float64, error) {
	if len(pts) < 3 {
		return 0, ErrTooShort
	}
	mean := stat.Mean(values(pts), nil)

	var crossings []float64
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if a.Y < mean && b.Y >= mean {
			frac := (mean - a.Y) / (b.Y - a.Y)
			crossings = append(crossings, a.X+frac*(b.X-a.X))
		}
	}
	if len(crossings) < 2 {
		return 0, ErrTooShort
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1), nil
}

// Derivative is the central difference of pts, one sided at the ends.
func Derivative(pts []sink.Point) []sink.Point {
	n := len(pts)
	if n < 2 {
		return nil
	}
	out := make([]sink.Point, n)
	for i := range pts {
		lo, hi := max(i-1, 0), min(i+1, n-1)
		dx := pts[hi].X - pts[lo].X
		d := math.NaN()
		if dx != 0 {
			d = (pts[hi].Y - pts[lo].Y) / dx
		}
		out[i] = sink.Point{X: pts[i].X, Y: d}
	}
	return out
}
