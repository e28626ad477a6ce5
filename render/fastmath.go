package render

import "math"

// Fast trig for the glow hot path: every live particle evaluates one or two
// sines per frame, and the polynomial approximation (~0.001 absolute error)
// is well inside visual tolerance.

// fastSin approximates sin(x) using a parabola with a correction term.
func fastSin(x float64) float64 {
	x = wrapPi(x)
	const pi2 = math.Pi * math.Pi
	ax := x
	if ax < 0 {
		ax = -ax
	}
	y := 4 * x * (math.Pi - ax) / pi2
	return 0.225*(y*absf(y)-y) + y
}

// wrapPi normalizes an angle to [-pi, pi] without looping.
func wrapPi(x float64) float64 {
	const twoPi = 2 * math.Pi
	x = math.Mod(x+math.Pi, twoPi)
	if x < 0 {
		x += twoPi
	}
	return x - math.Pi
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
