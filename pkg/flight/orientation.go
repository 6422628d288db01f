package flight

import (
	"math"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/physics"
)

const maxPitch = math.Pi/2 - 0.01

// orient applies rotation input. Pitch and yaw are vetoed while the autopilot
// is orienting; roll never is. Any roll or pitch input, even a cancelling
// pair, resets the auto-leveling idle timer for that axis.
func (s *Simulator) orient(tc *tick) {
	v := tc.v
	in := tc.in

	if in.RollLeft || in.RollRight {
		v.Leveling.LastRollInput = v.Clock
		v.Orientation.Roll = physics.WrapAngle(v.Orientation.Roll + in.RollAxis()*s.Tuning.RollSpeed*tc.frame)
	}
	if in.RotateUp || in.RotateDown {
		v.Leveling.LastPitchInput = v.Clock
	}

	if v.AutoNav.Enabled && v.AutoNav.Phase == entity.NavOrienting {
		return
	}

	step := s.Tuning.RotationSpeed * tc.frame
	if pitch := in.PitchAxis(); pitch != 0 {
		v.Orientation.Pitch = clampPitch(v.Orientation.Pitch + pitch*step)
	}
	if yaw := in.YawAxis(); yaw != 0 {
		v.Orientation.Yaw = physics.WrapAngle(v.Orientation.Yaw + yaw*step)
	}
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}
