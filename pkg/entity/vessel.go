package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flightsim/pkg/physics"
)

const (
	MaxEnergy      = 100.0
	MaxWarpCharges = 5

	// DefaultInertiaDecay replaces a post-slingshot decay outside (0, 1)
	DefaultInertiaDecay = 0.98
)

// Status gates entry to the simulation tick
type Status int

const (
	NotReady Status = iota
	Ready
)

func (s Status) String() string {
	if s == Ready {
		return "ready"
	}
	return "not_ready"
}

// Orientation holds Euler angles in radians
type Orientation struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// SlingshotPhase is the phase of the gravitational-assist state machine
type SlingshotPhase int

const (
	SlingshotIdle SlingshotPhase = iota
	SlingshotActive
	SlingshotPost
)

func (p SlingshotPhase) String() string {
	switch p {
	case SlingshotActive:
		return "active"
	case SlingshotPost:
		return "post_slingshot"
	default:
		return "idle"
	}
}

// SlingshotState tracks an in-progress gravitational assist
type SlingshotState struct {
	Phase         SlingshotPhase
	TimeRemaining float64
	Duration      float64
	MaxSpeed      float64
	InertiaDecay  float64
	BodyID        ID
}

// Boosting reports whether the slingshot ceiling is in force
func (s SlingshotState) Boosting() bool {
	return s.Phase == SlingshotActive || s.Phase == SlingshotPost
}

// WarpState tracks emergency warp charges and the active boost
type WarpState struct {
	Available            int
	Active               bool
	TimeRemaining        float64
	BoostDuration        float64
	BoostSpeed           float64
	RegenerationTimer    float64
	RegenerationInterval float64
	// Unlocked records that the one-time max velocity raise has happened.
	Unlocked bool
}

// HorizonWarning is the single active black-hole proximity warning
type HorizonWarning struct {
	Active   bool
	BodyID   ID
	Critical bool
}

// NavPhase is the autopilot phase while enabled
type NavPhase int

const (
	NavOrienting NavPhase = iota
	NavApproaching
)

func (p NavPhase) String() string {
	if p == NavApproaching {
		return "approaching"
	}
	return "orienting"
}

// AutoNavState tracks the autopilot
type AutoNavState struct {
	Enabled  bool
	Phase    NavPhase
	TargetID ID
}

// TargetLock is the player's lock on a body
type TargetLock struct {
	Active      bool
	BodyID      ID
	Strength    float64
	MaxDistance float64
	Smoothing   float64
}

// LevelingState tracks idle timers for auto-leveling
type LevelingState struct {
	Enabled        bool
	LastRollInput  float64
	LastPitchInput float64
}

// VesselParams are the construction parameters of a vessel
type VesselParams struct {
	Mass              float64 `json:"mass" mapstructure:"mass"`
	ThrustPower       float64 `json:"thrustPower" mapstructure:"thrustPower"`
	MinVelocity       float64 `json:"minVelocity" mapstructure:"minVelocity"`
	MaxVelocity       float64 `json:"maxVelocity" mapstructure:"maxVelocity"`
	WThrustMultiplier float64 `json:"wThrustMultiplier" mapstructure:"wThrustMultiplier"`
	Hull              float64 `json:"hull" mapstructure:"hull"`
	Energy            float64 `json:"energy" mapstructure:"energy"`
	AutoLevel         bool    `json:"autoLevel" mapstructure:"autoLevel"`

	SlingshotDuration     float64 `json:"slingshotDuration" mapstructure:"slingshotDuration"`
	SlingshotMaxSpeed     float64 `json:"slingshotMaxSpeed" mapstructure:"slingshotMaxSpeed"`
	SlingshotInertiaDecay float64 `json:"slingshotInertiaDecay" mapstructure:"slingshotInertiaDecay"`

	WarpBoostDuration        float64 `json:"warpBoostDuration" mapstructure:"warpBoostDuration"`
	WarpBoostSpeed           float64 `json:"warpBoostSpeed" mapstructure:"warpBoostSpeed"`
	WarpRegenerationInterval float64 `json:"warpRegenerationInterval" mapstructure:"warpRegenerationInterval"`

	LockMaxDistance float64 `json:"lockMaxDistance" mapstructure:"lockMaxDistance"`
	LockSmoothing   float64 `json:"lockSmoothing" mapstructure:"lockSmoothing"`
}

// Vessel is the complete state of the controllable ship. It is a value type:
// assigning a Vessel copies all of its state.
type Vessel struct {
	Status Status
	// Clock is the simulated time in seconds since the vessel became ready.
	Clock float64

	Position    mgl64.Vec3
	Orientation Orientation
	Velocity    mgl64.Vec3

	Energy            float64
	Hull              float64
	Mass              float64
	ThrustPower       float64
	MinVelocity       float64
	MaxVelocity       float64
	WThrustMultiplier float64

	Slingshot SlingshotState
	Warp      WarpState
	Horizon   HorizonWarning
	AutoNav   AutoNavState
	Lock      TargetLock
	Leveling  LevelingState
}

// NewVessel creates a ready vessel at position facing +Z
func NewVessel(position mgl64.Vec3, p VesselParams) Vessel {
	v := Vessel{
		Status:            Ready,
		Position:          position,
		Mass:              p.Mass,
		ThrustPower:       p.ThrustPower,
		MinVelocity:       p.MinVelocity,
		MaxVelocity:       p.MaxVelocity,
		WThrustMultiplier: p.WThrustMultiplier,
		Slingshot: SlingshotState{
			Duration:     p.SlingshotDuration,
			MaxSpeed:     p.SlingshotMaxSpeed,
			InertiaDecay: p.SlingshotInertiaDecay,
		},
		Warp: WarpState{
			Available:            MaxWarpCharges,
			BoostDuration:        p.WarpBoostDuration,
			BoostSpeed:           p.WarpBoostSpeed,
			RegenerationInterval: p.WarpRegenerationInterval,
		},
		Lock: TargetLock{
			MaxDistance: p.LockMaxDistance,
			Smoothing:   p.LockSmoothing,
		},
		Leveling: LevelingState{Enabled: p.AutoLevel},
	}
	v.SetEnergy(p.Energy)
	v.SetHull(p.Hull)
	if v.WThrustMultiplier <= 0 {
		v.WThrustMultiplier = 1
	}
	if d := v.Slingshot.InertiaDecay; !(d > 0 && d < 1) {
		v.Slingshot.InertiaDecay = DefaultInertiaDecay
	}
	return v
}

// Forward returns the unit heading of the vessel
func (v *Vessel) Forward() mgl64.Vec3 {
	return physics.Forward(v.Orientation.Pitch, v.Orientation.Yaw)
}

// Right returns the horizontal unit vector to the vessel's right
func (v *Vessel) Right() mgl64.Vec3 {
	return physics.Right(v.Orientation.Yaw)
}

// Speed returns the magnitude of the velocity
func (v *Vessel) Speed() float64 {
	return v.Velocity.Len()
}

// EffectiveMass returns the vessel mass, falling back to 1 for degenerate
// values
func (v *Vessel) EffectiveMass() float64 {
	if v.Mass <= 0 {
		return 1
	}
	return v.Mass
}

// SetEnergy stores energy clamped to [0, MaxEnergy]
func (v *Vessel) SetEnergy(energy float64) {
	if math.IsNaN(energy) {
		energy = 0
	}
	v.Energy = mgl64.Clamp(energy, 0, MaxEnergy)
}

// SpendEnergy deducts amount if the full amount is available
func (v *Vessel) SpendEnergy(amount float64) bool {
	if amount <= 0 {
		return true
	}
	if v.Energy <= 0 || v.Energy < amount {
		return false
	}
	v.SetEnergy(v.Energy - amount)
	return true
}

// DrainEnergy deducts up to amount, stopping at zero
func (v *Vessel) DrainEnergy(amount float64) {
	v.SetEnergy(v.Energy - amount)
}

// SetHull stores hull clamped to be non-negative
func (v *Vessel) SetHull(hull float64) {
	if math.IsNaN(hull) || hull < 0 {
		hull = 0
	}
	v.Hull = hull
}

// Damage reduces hull and reports whether it reached zero
func (v *Vessel) Damage(amount float64) bool {
	v.SetHull(v.Hull - amount)
	return v.Hull == 0
}

// SetWarpCharges stores the charge count clamped to [0, MaxWarpCharges]
func (v *Vessel) SetWarpCharges(n int) {
	if n < 0 {
		n = 0
	}
	if n > MaxWarpCharges {
		n = MaxWarpCharges
	}
	v.Warp.Available = n
}
