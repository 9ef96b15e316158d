package physics

import "math"

// CatenaryLength is the arc length of y = cosh(αx)/α between posts span
// apart.
func CatenaryLength(alpha, span float64) float64 {
	return 2 * math.Sinh(alpha*span/2) / alpha
}

// CatenaryY evaluates the catenary through (±span/2, top).
func CatenaryY(alpha, span, top, x float64) float64 {
	y0 := top - math.Cosh(alpha*span/2)/alpha
	return math.Cosh(alpha*x)/alpha + y0
}

// ParabolaLength is the arc length of y = ½ax² between posts span apart.
func ParabolaLength(a, span float64) float64 {
	t := a * span / 2
	return (t*math.Sqrt(1+t*t) + math.Asinh(t)) / a
}

// ParabolaY evaluates the parabola through (±span/2, top).
func ParabolaY(a, span, top, x float64) float64 {
	half := span / 2
	return 0.5*a*x*x + top - 0.5*a*half*half
}
