package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FrameFactor converts an elapsed dt into a multiple of the reference step
// that per-tick constants are tuned against. A non-positive reference step
// makes every call a single tick.
func FrameFactor(dt, referenceStep float64) float64 {
	if dt <= 0 {
		return 0
	}
	if referenceStep <= 0 {
		return 1
	}
	return dt / referenceStep
}

// DecayFactor raises a per-tick multiplier to the given frame factor
func DecayFactor(perTick, frame float64) float64 {
	if frame == 1 {
		return perTick
	}
	return math.Pow(perTick, frame)
}

// Integrate advances a position by a per-tick velocity over frame ticks
func Integrate(position, velocity mgl64.Vec3, frame float64) mgl64.Vec3 {
	return position.Add(velocity.Mul(frame))
}
