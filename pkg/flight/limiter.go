package flight

import (
	"math"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/physics"
)

// speedEnvelope is the ceiling and damping in force for one tick
type speedEnvelope struct {
	ceiling      float64
	damping      float64
	transitional bool
}

// envelope resolves overlapping boost states with the precedence
// warp > slingshot > normal
func (s *Simulator) envelope(v *entity.Vessel) speedEnvelope {
	switch {
	case v.Warp.Active:
		return speedEnvelope{ceiling: v.Warp.BoostSpeed, damping: s.Tuning.WarpDamping, transitional: true}
	case v.Slingshot.Boosting():
		return speedEnvelope{
			ceiling:      v.Slingshot.MaxSpeed,
			damping:      s.Tuning.SlingshotDamping,
			transitional: v.Slingshot.Phase == entity.SlingshotPost,
		}
	default:
		return speedEnvelope{ceiling: v.MaxVelocity, damping: s.Tuning.NormalDamping}
	}
}

// limitVelocity clamps the velocity to the tick's ceiling, damps it and, in
// steady flight, restores the minimum speed
func (s *Simulator) limitVelocity(tc *tick) {
	v := tc.v
	env := s.envelope(v)

	if !physics.IsFinite(v.Velocity) {
		v.Velocity = v.Forward().Mul(v.MinVelocity)
	}
	if env.ceiling > 0 {
		v.Velocity = physics.ClampLength(v.Velocity, env.ceiling)
	}
	if env.damping > 0 {
		v.Velocity = v.Velocity.Mul(physics.DecayFactor(env.damping, tc.frame))
	}

	if env.transitional {
		return
	}
	floor := v.MinVelocity
	if env.ceiling > 0 {
		floor = math.Min(floor, env.ceiling)
	}
	if floor > 0 && v.Speed() < floor {
		v.Velocity = physics.WithLength(v.Velocity, floor, v.Forward())
	}
}
