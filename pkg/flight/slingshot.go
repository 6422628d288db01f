package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/event"
	"github.com/opd-ai/go-flightsim/pkg/physics"
)

// updateSlingshot drives the Idle -> Active -> PostSlingshot -> Idle machine
func (s *Simulator) updateSlingshot(tc *tick) {
	v := tc.v
	sl := &v.Slingshot

	if tc.in.Brake && sl.Boosting() {
		s.finishSlingshot(tc, true)
		return
	}

	switch sl.Phase {
	case entity.SlingshotIdle:
		if tc.in.Slingshot {
			s.startSlingshot(tc)
		}
	case entity.SlingshotActive:
		sl.TimeRemaining -= tc.dt
		if sl.TimeRemaining <= 0 {
			sl.TimeRemaining = 0
			sl.Phase = entity.SlingshotPost
		}
	case entity.SlingshotPost:
		v.Velocity = v.Velocity.Mul(physics.DecayFactor(sl.InertiaDecay, tc.frame))
		if v.Speed() <= v.MaxVelocity {
			s.finishSlingshot(tc, false)
		}
	}
}

// canSlingshot reports whether a slingshot may start given the assist
// candidate found by the gravity pass
func (s *Simulator) canSlingshot(v entity.Vessel, f gravityField) bool {
	return v.Slingshot.Phase == entity.SlingshotIdle &&
		f.hasCandidate &&
		f.candidateDistance < s.Tuning.AssistRange &&
		v.Energy >= s.Tuning.SlingshotMinEnergy
}

func (s *Simulator) startSlingshot(tc *tick) {
	t := s.Tuning
	v := tc.v
	if !s.canSlingshot(*v, tc.field) {
		return
	}
	body := tc.field.candidate

	divisor := t.SlingshotMassRadiusDivisor
	if divisor <= 0 {
		divisor = 1
	}
	boost := t.SlingshotBaseSpeed + body.EffectiveMass()*body.EffectiveRadius()/divisor
	if v.Slingshot.MaxSpeed > 0 {
		boost = math.Min(boost, v.Slingshot.MaxSpeed)
	}

	fwd := v.Forward()
	toBody := physics.SafeNormalize(body.Position.Sub(v.Position), fwd)
	tangent := physics.SafeNormalize(toBody.Cross(physics.WorldUp), mgl64.Vec3{})
	dir := physics.SafeNormalize(fwd.Add(tangent), fwd)

	v.Velocity = dir.Mul(boost)
	v.SetEnergy(math.Max(v.Energy-t.SlingshotEnergyCost, t.SlingshotEnergyFloor))
	tc.spent = true

	v.Slingshot.Phase = entity.SlingshotActive
	v.Slingshot.TimeRemaining = v.Slingshot.Duration
	v.Slingshot.BodyID = body.ID

	tc.emit(event.NewSlingshotEvent(event.SlingshotStarted, v.Clock, body.ID, body.Category, s.tierOf(body), boost))
}

func (s *Simulator) finishSlingshot(tc *tick, cancelled bool) {
	v := tc.v
	body, _ := tc.world.Find(v.Slingshot.BodyID)
	e := event.NewSlingshotEvent(event.SlingshotCompleted, v.Clock, v.Slingshot.BodyID, body.Category, s.tierOf(body), v.Speed())
	e.Cancelled = cancelled

	v.Slingshot.Phase = entity.SlingshotIdle
	v.Slingshot.TimeRemaining = 0
	v.Slingshot.BodyID = 0
	tc.emit(e)
}

func (s *Simulator) tierOf(b entity.Body) event.Tier {
	switch {
	case b.Category == entity.BlackHole:
		return event.TierBlackHole
	case b.Mass >= s.Tuning.GiantPlanetMass:
		return event.TierGiantPlanet
	default:
		return event.TierOrdinary
	}
}
