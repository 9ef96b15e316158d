package sink

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// RatePacer lets through at most stepsPerSecond loop iterations per
// wall-clock second.
type RatePacer struct {
	limiter *rate.Limiter
}

func NewRatePacer(stepsPerSecond float64) *RatePacer {
	burst := int(math.Max(1, stepsPerSecond/60))
	return &RatePacer{limiter: rate.NewLimiter(rate.Limit(stepsPerSecond), burst)}
}

func (p *RatePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Pace returns NoPace for a non-positive rate.
func Pace(stepsPerSecond float64) Pacer {
	if stepsPerSecond <= 0 || math.IsInf(stepsPerSecond, 1) {
		return NoPace
	}
	return NewRatePacer(stepsPerSecond)
}
