// Package flight implements the per-tick flight model of the vessel: attitude,
// propulsion, gravity, collisions, black-hole horizons and the slingshot,
// emergency warp and autopilot state machines.
package flight

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/event"
	"github.com/opd-ai/go-flightsim/pkg/input"
	"github.com/opd-ai/go-flightsim/pkg/physics"
)

// Simulator advances a vessel one tick at a time. Its only internal state is
// the cosmetic random source, so a Simulator must not be shared between
// goroutines without external synchronization.
type Simulator struct {
	Tuning Tuning
	rng    *rand.Rand
}

// NewSimulator creates a simulator whose cosmetic randomness is derived from
// seed
func NewSimulator(tuning Tuning, seed uint64) *Simulator {
	return &Simulator{
		Tuning: tuning,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// tick is the scratch context of a single Tick call
type tick struct {
	world entity.World
	in    input.State
	dt    float64
	frame float64
	v     *entity.Vessel

	field  gravityField
	spent  bool
	events []event.Event
}

func (tc *tick) emit(e event.Event) {
	tc.events = append(tc.events, e)
}

// Tick advances v by dt seconds against the given world snapshot and input,
// returning the new vessel state and the events raised along the way. A
// vessel that is not ready, or a non-positive dt, yields v unchanged.
func (s *Simulator) Tick(world entity.World, in input.State, dt float64, v entity.Vessel) (entity.Vessel, []event.Event) {
	if v.Status != entity.Ready || !(dt > 0) || math.IsInf(dt, 0) {
		return v, nil
	}

	v.Clock += dt
	tc := &tick{
		world: world,
		in:    in,
		dt:    dt,
		frame: physics.FrameFactor(dt, s.Tuning.ReferenceStep),
		v:     &v,
	}

	s.orient(tc)
	s.propel(tc)
	tc.field = s.solveGravity(tc)
	s.detectCollisions(tc)
	s.monitorHorizon(tc)
	s.trackTarget(tc)
	s.updateSlingshot(tc)
	s.updateWarp(tc)
	s.updateAutopilot(tc)
	s.autoLevel(tc)
	s.limitVelocity(tc)

	v.Position = physics.Integrate(v.Position, v.Velocity, tc.frame)
	s.regenerate(tc)

	return v, tc.events
}

// NearestAssistBody reports the body a slingshot would currently use, for
// eligibility display
func (s *Simulator) NearestAssistBody(world entity.World, v entity.Vessel) (entity.Body, float64, bool) {
	tc := &tick{world: world, v: &v}
	f := s.scanBodies(tc)
	return f.candidate, f.candidateDistance, f.hasCandidate
}

func (s *Simulator) regenerate(tc *tick) {
	if tc.spent {
		return
	}
	tc.v.SetEnergy(tc.v.Energy + s.Tuning.EnergyRegen*tc.frame)
}
