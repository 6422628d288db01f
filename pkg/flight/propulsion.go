package flight

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flightsim/pkg/physics"
)

// propel converts thrust input into velocity, paying energy per action, then
// applies braking and the minimum forward speed guarantee.
func (s *Simulator) propel(tc *tick) {
	v := tc.v
	in := tc.in
	t := s.Tuning

	power := v.ThrustPower * tc.frame
	costScale := tc.frame
	if in.Boost {
		power *= t.BoostMultiplier
		costScale *= t.BoostCostMultiplier
	}

	fwd := v.Forward()
	right := v.Right()

	thrust := func(dir mgl64.Vec3, multiplier, cost float64) {
		if v.Energy <= 0 || !v.SpendEnergy(cost*costScale) {
			return
		}
		tc.spent = true
		v.Velocity = v.Velocity.Add(dir.Mul(power * multiplier))
	}

	if in.Thrusting() {
		if in.ThrustForward {
			thrust(fwd, v.WThrustMultiplier, t.ForwardEnergyCost)
		}
		if in.ThrustBack {
			thrust(fwd.Mul(-1), t.BackwardMultiplier, t.BackwardEnergyCost)
		}
		if in.StrafeLeft {
			thrust(right.Mul(-1), t.StrafeMultiplier, t.StrafeEnergyCost)
		}
		if in.StrafeRight {
			thrust(right, t.StrafeMultiplier, t.StrafeEnergyCost)
		}
	}

	if in.Brake {
		v.Velocity = v.Velocity.Mul(physics.DecayFactor(t.BrakeFactor, tc.frame))
	}

	if speed := v.Speed(); speed < v.MinVelocity {
		v.Velocity = v.Velocity.Add(fwd.Mul(v.MinVelocity - speed))
	}
}
