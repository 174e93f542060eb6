package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

const DegToRadMultiplier = gomath.Pi / 180.0

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

func DegToRad(degrees float32) float32 {
	return degrees * DegToRadMultiplier
}

func RadToDeg(radians float32) float32 {
	return radians * (180.0 / gomath.Pi)
}

func sin32(x float32) float32  { return float32(gomath.Sin(float64(x))) }
func cos32(x float32) float32  { return float32(gomath.Cos(float64(x))) }
func tan32(x float32) float32  { return float32(gomath.Tan(float64(x))) }
func sqrt32(x float32) float32 { return float32(gomath.Sqrt(float64(x))) }
