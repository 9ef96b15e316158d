// Package metrics computes scalar diagnostics from simulation state and
// samples them into plot sinks.
package metrics

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/vec"
)

const (
	Deg = math.Pi / 180
	Rad = 1 / Deg
)

func Degrees(rad float64) float64 { return rad * Rad }
func Radians(deg float64) float64 { return deg * Deg }

// Kinetic is ½·m·v·v.
func Kinetic(b *dynamo.Body) float64 {
	return 0.5 * b.Mass * b.Vel.Mag2()
}

// KineticTotal sums the kinetic energy of every free body.
func KineticTotal(w *dynamo.World) float64 {
	total := 0.0
	for _, h := range w.Handles() {
		if b := w.Body(h); !b.Fixed {
			total += Kinetic(b)
		}
	}
	return total
}

// GravityPotential is m·g·(y − ref).
func GravityPotential(b *dynamo.Body, g, ref float64) float64 {
	return b.Mass * g * (b.Pos.Y - ref)
}

func SpringPotential(k, stretch float64) float64 {
	return physics.SpringEnergy(k, stretch)
}

// PendulumAngle is the swing angle from straight down, positive when the
// bob hangs on the −x side of the pivot.
func PendulumAngle(pos, pivot vec.Vec3) float64 {
	r := pos.Sub(pivot)
	return math.Atan2(-r.X, -r.Y)
}

// SmallAngle is θ0·cos(√(g/L)·t), the small-amplitude pendulum solution.
func SmallAngle(theta0, g, length, t float64) float64 {
	return theta0 * math.Cos(math.Sqrt(g/length)*t)
}

// Mechanical is kinetic energy plus the potential of every conservative
// law in the assembler.
func Mechanical(w *dynamo.World, forces *physics.Assembler) float64 {
	return KineticTotal(w) + forces.Potential(w)
}
