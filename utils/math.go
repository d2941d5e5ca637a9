// Package utils contains small helpers shared by the kinematics packages.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// WrapToPi returns the angle equivalent to ang in the interval (-pi, pi].
func WrapToPi(ang float64) float64 {
	wrapped := math.Mod(ang, 2*math.Pi)
	if wrapped <= -math.Pi {
		wrapped += 2 * math.Pi
	} else if wrapped > math.Pi {
		wrapped -= 2 * math.Pi
	}
	return wrapped
}

// WrapFrom shifts ang by whole turns so that it lies in [lower, lower+2pi).
func WrapFrom(ang, lower float64) float64 {
	if ang >= lower && ang < lower+2*math.Pi {
		return ang
	}
	shifted := math.Mod(ang-lower, 2*math.Pi)
	if shifted < 0 {
		shifted += 2 * math.Pi
	}
	// math.Mod can round a value just below a full turn up to exactly 2pi.
	if shifted >= 2*math.Pi {
		shifted = 0
	}
	return lower + shifted
}
