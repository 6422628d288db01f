package flight

import (
	"math"

	"github.com/opd-ai/go-flightsim/pkg/physics"
)

const levelSnap = 1e-4

// autoLevel eases roll and pitch back to zero once each axis has been idle
// for its delay
func (s *Simulator) autoLevel(tc *tick) {
	t := s.Tuning
	v := tc.v
	if !v.Leveling.Enabled {
		return
	}

	k := 1 - physics.DecayFactor(1-t.LevelSpeed, tc.frame)

	if v.Clock-v.Leveling.LastRollInput >= t.RollIdleDelay {
		v.Orientation.Roll = level(v.Orientation.Roll, k)
	}
	if !v.AutoNav.Enabled && v.Clock-v.Leveling.LastPitchInput >= t.PitchIdleDelay {
		v.Orientation.Pitch = level(v.Orientation.Pitch, k)
	}
}

func level(angle, k float64) float64 {
	angle += -angle * k
	if math.Abs(angle) < levelSnap {
		return 0
	}
	return angle
}
