package common

import "math"

const (
	BaseWidth  = 1200
	BaseHeight = 700

	// ReferenceRate is the tick rate that per-tick factors in the config
	// table were tuned against.
	ReferenceRate = 60.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EaseInOutCubic maps t in [0,1] onto a cubic ease curve.
func EaseInOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}

// Decay converts a per-tick multiplicative factor into the factor for dt
// seconds.
func Decay(perTick, dt float64) float64 {
	if dt <= 0 {
		return 1
	}
	return math.Pow(perTick, dt*ReferenceRate)
}

// Approach converts a per-tick lerp weight into the weight for dt seconds.
func Approach(perTick, dt float64) float64 {
	if perTick >= 1 {
		return 1
	}
	return 1 - Decay(1-perTick, dt)
}

// WrapAngle normalizes a to (-pi, pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// TurnToward rotates from toward to by at most maxStep radians.
func TurnToward(from, to, maxStep float64) float64 {
	diff := WrapAngle(to - from)
	if diff > maxStep {
		diff = maxStep
	} else if diff < -maxStep {
		diff = -maxStep
	}
	return from + diff
}
