package flight

import (
	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/event"
	"github.com/opd-ai/go-flightsim/pkg/physics"
)

// trackTarget handles lock-on and release requests and keeps an existing lock
// valid
func (s *Simulator) trackTarget(tc *tick) {
	v := tc.v
	in := tc.in

	if in.ReleaseLock && v.Lock.Active {
		s.releaseLock(tc)
	}

	if in.LockTarget != 0 && (!v.Lock.Active || v.Lock.BodyID != in.LockTarget) {
		if b, ok := tc.world.Find(in.LockTarget); ok && inLockRange(v, b) {
			if v.Lock.Active {
				s.releaseLock(tc)
			}
			v.Lock.Active = true
			v.Lock.BodyID = b.ID
			v.Lock.Strength = 0
			tc.emit(event.NewBodyEvent(event.TargetAcquired, v.Clock, b))
		}
	}

	if !v.Lock.Active {
		return
	}

	b, ok := tc.world.Find(v.Lock.BodyID)
	if !ok {
		s.releaseLock(tc)
		return
	}
	if !inLockRange(v, b) {
		s.releaseLock(tc)
		return
	}

	k := 1 - physics.DecayFactor(1-v.Lock.Smoothing, tc.frame)
	v.Lock.Strength += (1 - v.Lock.Strength) * k
}

func inLockRange(v *entity.Vessel, b entity.Body) bool {
	if v.Lock.MaxDistance <= 0 {
		return true
	}
	return physics.Distance(v.Position, b.Position) <= v.Lock.MaxDistance
}

// releaseLock clears the lock and reports the body it referenced
func (s *Simulator) releaseLock(tc *tick) {
	v := tc.v
	lost := &event.BodyEvent{
		BaseEvent: event.BaseEvent{EventType: event.TargetLost, Time: v.Clock},
		BodyID:    v.Lock.BodyID,
	}
	if b, ok := tc.world.Find(v.Lock.BodyID); ok {
		lost = event.NewBodyEvent(event.TargetLost, v.Clock, b)
	}
	v.Lock.Active = false
	v.Lock.BodyID = 0
	v.Lock.Strength = 0
	tc.emit(lost)
}
