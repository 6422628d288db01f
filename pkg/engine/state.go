// pkg/engine/state.go
package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flightsim/pkg/entity"
)

// SessionState represents a snapshot of the session between ticks
type SessionState struct {
	Tick      uint64
	Elapsed   float64
	Status    Status
	EndReason string
	Vessel    VesselState
	Bodies    []entity.Body
	Assist    AssistState
}

// VesselState is the heads-up view of the vessel
type VesselState struct {
	Position      mgl64.Vec3
	Velocity      mgl64.Vec3
	Speed         float64
	Orientation   entity.Orientation
	Energy        float64
	Hull          float64
	WarpCharges   int
	WarpActive    bool
	Slingshot     entity.SlingshotPhase
	Autopilot     bool
	AutopilotMode entity.NavPhase
	LockedBodyID  entity.ID
	LockStrength  float64
	HorizonBodyID entity.ID
	HorizonActive bool
}

// AssistState describes the body a slingshot would use right now
type AssistState struct {
	Available bool
	BodyID    entity.ID
	Distance  float64
}

// GetState returns a snapshot of the current session state
func (s *Session) GetState() *SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.createStateSnapshot()
}

func (s *Session) createStateSnapshot() *SessionState {
	v := s.flight.Vessel()
	world := s.flight.World()

	state := &SessionState{
		Tick:      s.CurrentTick,
		Elapsed:   s.ElapsedTime,
		Status:    s.Status,
		EndReason: s.EndReason,
		Vessel:    vesselStateOf(v),
		Bodies:    world.Bodies,
	}
	if b, d, ok := s.flight.sim.NearestAssistBody(world, v); ok {
		state.Assist = AssistState{Available: true, BodyID: b.ID, Distance: d}
	}
	return state
}

func vesselStateOf(v entity.Vessel) VesselState {
	vs := VesselState{
		Position:      v.Position,
		Velocity:      v.Velocity,
		Speed:         v.Speed(),
		Orientation:   v.Orientation,
		Energy:        v.Energy,
		Hull:          v.Hull,
		WarpCharges:   v.Warp.Available,
		WarpActive:    v.Warp.Active,
		Slingshot:     v.Slingshot.Phase,
		Autopilot:     v.AutoNav.Enabled,
		AutopilotMode: v.AutoNav.Phase,
		HorizonActive: v.Horizon.Active,
	}
	if v.Lock.Active {
		vs.LockedBodyID = v.Lock.BodyID
		vs.LockStrength = v.Lock.Strength
	}
	if v.Horizon.Active {
		vs.HorizonBodyID = v.Horizon.BodyID
	}
	return vs
}
