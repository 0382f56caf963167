package core

import "math"

// Epsilon is the single tolerance used for every floating point comparison,
// matrix invertibility test and surface offset in the tracer.
const Epsilon = 1e-4

// Equal reports whether two floats are within Epsilon of each other
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
