// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length below which a vector is treated as zero
const Epsilon = 1e-9

// WorldUp is the fixed "up" axis of the simulation
var WorldUp = mgl64.Vec3{0, 1, 0}

// SafeNormalize returns a unit vector in the same direction, or fallback when
// v is too short to normalize
func SafeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	length := v.Len()
	if length < Epsilon || math.IsNaN(length) || math.IsInf(length, 0) {
		return fallback
	}
	return v.Mul(1 / length)
}

// Distance returns the distance between two points
func Distance(a, b mgl64.Vec3) float64 {
	return b.Sub(a).Len()
}

// ClampLength scales v down so its length does not exceed max
func ClampLength(v mgl64.Vec3, max float64) mgl64.Vec3 {
	length := v.Len()
	if length <= max || length < Epsilon {
		return v
	}
	return v.Mul(max / length)
}

// WithLength returns v rescaled to the given length, using fallback as the
// direction when v has none
func WithLength(v mgl64.Vec3, length float64, fallback mgl64.Vec3) mgl64.Vec3 {
	return SafeNormalize(v, fallback).Mul(length)
}

// Forward returns the unit heading for the given pitch and yaw (radians).
// Yaw 0, pitch 0 faces +Z.
func Forward(pitch, yaw float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{
		math.Sin(yaw) * cp,
		math.Sin(pitch),
		math.Cos(yaw) * cp,
	}
}

// Right returns the horizontal unit vector to the right of the given yaw
func Right(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}
}

// Bearing returns the yaw and pitch that point along dir. A zero dir yields
// a zero bearing.
func Bearing(dir mgl64.Vec3) (yaw, pitch float64) {
	n := SafeNormalize(dir, mgl64.Vec3{})
	if n.Len() == 0 {
		return 0, 0
	}
	yaw = math.Atan2(n.X(), n.Z())
	pitch = math.Asin(mgl64.Clamp(n.Y(), -1, 1))
	return yaw, pitch
}

// WrapAngle maps an angle into (-pi, pi]
func WrapAngle(angle float64) float64 {
	wrapped := math.Mod(angle+math.Pi, 2*math.Pi)
	if wrapped <= 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}

// AngleDelta returns the shortest signed rotation from `from` to `to`
func AngleDelta(from, to float64) float64 {
	return WrapAngle(to - from)
}

// IsFinite reports whether every component of v is a real number
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
