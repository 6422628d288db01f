package flight

import (
	"math"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/event"
)

// updateWarp regenerates charges, expires an active boost and handles a
// fresh activation request, in that order
func (s *Simulator) updateWarp(tc *tick) {
	v := tc.v
	w := &v.Warp

	if w.Available < entity.MaxWarpCharges && w.RegenerationInterval > 0 {
		w.RegenerationTimer += tc.dt
		for w.RegenerationTimer >= w.RegenerationInterval && w.Available < entity.MaxWarpCharges {
			w.RegenerationTimer -= w.RegenerationInterval
			v.SetWarpCharges(w.Available + 1)
			tc.emit(event.NewWarpEvent(event.EmergencyWarpRecharged, v.Clock, w.Available, w.BoostSpeed))
		}
	}
	if w.Available >= entity.MaxWarpCharges {
		w.RegenerationTimer = 0
	}

	if w.Active {
		w.TimeRemaining -= tc.dt
		if w.TimeRemaining <= 0 {
			w.Active = false
			w.TimeRemaining = 0
			tc.emit(event.NewWarpEvent(event.EmergencyWarpCompleted, v.Clock, w.Available, v.Speed()))
		}
	}

	if tc.in.EmergencyWarp {
		s.activateWarp(tc)
	}
}

func (s *Simulator) activateWarp(tc *tick) {
	v := tc.v
	w := &v.Warp
	if w.Available <= 0 || w.Active {
		return
	}

	v.SetWarpCharges(w.Available - 1)
	w.Active = true
	w.TimeRemaining = w.BoostDuration
	v.Velocity = v.Forward().Mul(w.BoostSpeed)

	e := event.NewWarpEvent(event.EmergencyWarpActivated, v.Clock, w.Available, w.BoostSpeed)
	if w.BoostSpeed > s.Tuning.WarpUnlockTier && !w.Unlocked {
		w.Unlocked = true
		v.MaxVelocity = math.Max(v.MaxVelocity, s.Tuning.UnlockedMaxVelocity)
		e.Unlocked = true
	}
	tc.emit(e)
}
