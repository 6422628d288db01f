package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/event"
	"github.com/opd-ai/go-flightsim/pkg/physics"
)

// updateAutopilot runs the Orienting -> Approaching navigation machine
// toward the locked target
func (s *Simulator) updateAutopilot(tc *tick) {
	t := s.Tuning
	v := tc.v
	nav := &v.AutoNav

	if tc.in.ToggleAutopilot {
		if nav.Enabled {
			s.disengage(tc, event.ReasonManual)
			return
		}
		if !v.Lock.Active {
			return
		}
		if v.Energy <= t.AutopilotEnergyFloor {
			tc.emit(event.NewEnergyCriticalEvent(v.Clock, v.Energy))
			return
		}
		*nav = entity.AutoNavState{Enabled: true, Phase: entity.NavOrienting, TargetID: v.Lock.BodyID}
		tc.emit(event.NewAutopilotEvent(event.AutopilotEngaged, v.Clock, nav.TargetID, ""))
	}

	if !nav.Enabled {
		return
	}

	if v.Energy <= t.AutopilotEnergyFloor {
		tc.emit(event.NewEnergyCriticalEvent(v.Clock, v.Energy))
		s.disengage(tc, event.ReasonEnergy)
		return
	}

	target, ok := tc.world.Find(nav.TargetID)
	if !ok || !v.Lock.Active || v.Lock.BodyID != nav.TargetID {
		s.disengage(tc, event.ReasonTargetLost)
		return
	}

	toTarget := target.Position.Sub(v.Position)
	dist := toTarget.Len()
	if dist < target.EffectiveRadius()+t.ArrivalMargin {
		s.disengage(tc, event.ReasonArrived)
		return
	}

	switch nav.Phase {
	case entity.NavOrienting:
		if s.steer(tc, toTarget) {
			nav.Phase = entity.NavApproaching
			s.approach(tc, toTarget)
		}
	case entity.NavApproaching:
		if dist > t.NearFieldDistance && !s.aligned(v, toTarget) {
			s.steer(tc, toTarget)
		}
		s.approach(tc, toTarget)
	}
}

// headingError returns the yaw and pitch still needed to face dir
func headingError(v *entity.Vessel, dir mgl64.Vec3) (dyaw, dpitch float64) {
	yaw, pitch := physics.Bearing(dir)
	return physics.AngleDelta(v.Orientation.Yaw, yaw), pitch - v.Orientation.Pitch
}

func (s *Simulator) aligned(v *entity.Vessel, dir mgl64.Vec3) bool {
	dyaw, dpitch := headingError(v, dir)
	th := s.Tuning.AutopilotAngleThreshold
	return math.Abs(dyaw) < th && math.Abs(dpitch) < th
}

// steer lerps the heading toward dir along the shorter arc and reports
// whether both errors are now under the threshold
func (s *Simulator) steer(tc *tick, dir mgl64.Vec3) bool {
	v := tc.v
	if s.aligned(v, dir) {
		return true
	}
	k := 1 - physics.DecayFactor(1-s.Tuning.AutopilotLerp, tc.frame)
	dyaw, dpitch := headingError(v, dir)
	v.Orientation.Yaw = physics.WrapAngle(v.Orientation.Yaw + dyaw*k)
	v.Orientation.Pitch = clampPitch(v.Orientation.Pitch + dpitch*k)
	return s.aligned(v, dir)
}

// approach thrusts along a blend of the heading and the target direction
func (s *Simulator) approach(tc *tick, toTarget mgl64.Vec3) {
	t := s.Tuning
	v := tc.v
	fwd := v.Forward()
	bias := mgl64.Clamp(t.AutopilotForwardBias, 0, 1)
	dir := physics.SafeNormalize(
		fwd.Mul(bias).Add(physics.SafeNormalize(toTarget, fwd).Mul(1-bias)),
		fwd,
	)
	v.Velocity = v.Velocity.Add(dir.Mul(v.ThrustPower * t.AutopilotThrust * tc.frame))
	v.DrainEnergy(t.AutopilotEnergyCost * tc.frame)
	tc.spent = true
}

func (s *Simulator) disengage(tc *tick, reason string) {
	v := tc.v
	target := v.AutoNav.TargetID
	v.AutoNav = entity.AutoNavState{}
	tc.emit(event.NewAutopilotEvent(event.AutopilotDisengaged, v.Clock, target, reason))
}
