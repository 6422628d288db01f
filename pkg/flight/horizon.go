package flight

import (
	"math"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/event"
	"github.com/opd-ai/go-flightsim/pkg/physics"
)

// monitorHorizon maintains the single black-hole proximity warning and
// applies the critical spiral drift
func (s *Simulator) monitorHorizon(tc *tick) {
	t := s.Tuning
	v := tc.v

	if v.Horizon.Active {
		b, ok := tc.world.Find(v.Horizon.BodyID)
		if !ok || physics.Distance(v.Position, b.Position) > s.warningRadius(b) {
			if ok {
				tc.emit(event.NewBodyEvent(event.EventHorizonWarningExited, v.Clock, b))
			} else {
				tc.emit(&event.BodyEvent{
					BaseEvent: event.BaseEvent{EventType: event.EventHorizonWarningExited, Time: v.Clock},
					BodyID:    v.Horizon.BodyID,
					Category:  entity.BlackHole,
				})
			}
			v.Horizon = entity.HorizonWarning{}
		}
	}

	if !v.Horizon.Active {
		nearest, found := entity.Body{}, false
		best := math.Inf(1)
		for _, b := range tc.world.Bodies {
			if b.Category != entity.BlackHole {
				continue
			}
			d := physics.Distance(v.Position, b.Position)
			if d <= s.warningRadius(b) && d < best {
				nearest, best, found = b, d, true
			}
		}
		if !found {
			return
		}
		v.Horizon = entity.HorizonWarning{Active: true, BodyID: nearest.ID}
		tc.emit(event.NewBodyEvent(event.EventHorizonWarningEntered, v.Clock, nearest))
	}

	b, _ := tc.world.Find(v.Horizon.BodyID)
	critical := s.criticalRadius(b)
	d := physics.Distance(v.Position, b.Position)
	v.Horizon.Critical = d < critical
	if !v.Horizon.Critical {
		return
	}

	phase := v.Clock * t.SpiralFrequency
	v.Velocity = v.Velocity.Add(v.Right().Mul(t.SpiralForce * math.Sin(phase) * tc.frame))
	v.Orientation.Roll = physics.WrapAngle(v.Orientation.Roll + t.SpiralRoll*math.Cos(phase)*tc.frame)

	if s.rng.Float64() < t.SpiralFlickerChance {
		intensity := 1 - d/critical
		tc.emit(event.NewEffectEvent(v.Clock, event.EffectSpiralDistortion, b.Position, intensity))
	}
}

// criticalRadius is the spiral radius of a black hole
func (s *Simulator) criticalRadius(b entity.Body) float64 {
	if b.WarpThreshold > 0 {
		return b.WarpThreshold
	}
	return s.Tuning.CriticalDistance
}

// warningRadius never falls inside the critical radius, so the spiral is
// always preceded by a warning
func (s *Simulator) warningRadius(b entity.Body) float64 {
	return math.Max(s.Tuning.WarningDistance, s.criticalRadius(b))
}
