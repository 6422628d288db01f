// Package input reduces the discrete per-frame control signals of the player
// into a single immutable State consumed by the simulation tick.
package input

import (
	"fmt"
	"strings"
	"sync"

	"github.com/opd-ai/go-flightsim/pkg/entity"
)

// Signal is one discrete control signal
type Signal uint8

const (
	RotateUp Signal = iota
	RotateDown
	RotateLeft
	RotateRight
	RollLeft
	RollRight
	ThrustForward
	ThrustBack
	StrafeLeft
	StrafeRight
	Boost
	Brake
	EmergencyWarp
	Slingshot
	ToggleAutopilot
	ReleaseLock
	signalCount
)

var signalNames = [signalCount]string{
	"rotate_up", "rotate_down", "rotate_left", "rotate_right",
	"roll_left", "roll_right",
	"thrust_forward", "thrust_back", "strafe_left", "strafe_right",
	"boost", "brake", "emergency_warp", "slingshot",
	"toggle_autopilot", "release_lock",
}

func (s Signal) String() string {
	if s < signalCount {
		return signalNames[s]
	}
	return fmt.Sprintf("signal(%d)", s)
}

// ParseSignal resolves a signal from its name
func ParseSignal(name string) (Signal, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range signalNames {
		if n == name {
			return Signal(i), nil
		}
	}
	return 0, fmt.Errorf("unknown input signal %q", name)
}

// Trigger reports whether the signal is a one-shot action rather than a held
// control
func (s Signal) Trigger() bool {
	switch s {
	case EmergencyWarp, Slingshot, ToggleAutopilot, ReleaseLock:
		return true
	}
	return false
}

// State is the immutable input record for one tick
type State struct {
	RotateUp, RotateDown    bool
	RotateLeft, RotateRight bool
	RollLeft, RollRight     bool
	ThrustForward           bool
	ThrustBack              bool
	StrafeLeft, StrafeRight bool
	Boost                   bool
	Brake                   bool
	EmergencyWarp           bool
	Slingshot               bool
	ToggleAutopilot         bool
	ReleaseLock             bool
	// LockTarget requests a target lock on the given body; zero means none.
	LockTarget entity.ID
}

// Aggregate reduces a set of signals into a State
func Aggregate(signals ...Signal) State {
	var s State
	for _, sig := range signals {
		s = s.with(sig)
	}
	return s
}

func (s State) with(sig Signal) State {
	switch sig {
	case RotateUp:
		s.RotateUp = true
	case RotateDown:
		s.RotateDown = true
	case RotateLeft:
		s.RotateLeft = true
	case RotateRight:
		s.RotateRight = true
	case RollLeft:
		s.RollLeft = true
	case RollRight:
		s.RollRight = true
	case ThrustForward:
		s.ThrustForward = true
	case ThrustBack:
		s.ThrustBack = true
	case StrafeLeft:
		s.StrafeLeft = true
	case StrafeRight:
		s.StrafeRight = true
	case Boost:
		s.Boost = true
	case Brake:
		s.Brake = true
	case EmergencyWarp:
		s.EmergencyWarp = true
	case Slingshot:
		s.Slingshot = true
	case ToggleAutopilot:
		s.ToggleAutopilot = true
	case ReleaseLock:
		s.ReleaseLock = true
	}
	return s
}

// PitchAxis returns +1 for up, -1 for down, 0 when idle or both pressed
func (s State) PitchAxis() float64 {
	return axis(s.RotateUp, s.RotateDown)
}

// YawAxis returns +1 for right, -1 for left
func (s State) YawAxis() float64 {
	return axis(s.RotateRight, s.RotateLeft)
}

// RollAxis returns +1 for right, -1 for left
func (s State) RollAxis() float64 {
	return axis(s.RollRight, s.RollLeft)
}

// Thrusting reports whether any translational thrust is requested
func (s State) Thrusting() bool {
	return s.ThrustForward || s.ThrustBack || s.StrafeLeft || s.StrafeRight
}

func axis(pos, neg bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	default:
		return 0
	}
}

// Aggregator accumulates held controls and one-shot triggers between ticks.
// Presentation code calls Press/Release as signals arrive and the driver
// calls Snapshot once per tick.
type Aggregator struct {
	mu       sync.Mutex
	held     [signalCount]bool
	pending  [signalCount]bool
	lockOnID entity.ID
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Press records a signal. Held controls stay down until released; triggers
// fire once on the next snapshot.
func (a *Aggregator) Press(sig Signal) {
	if sig >= signalCount {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if sig.Trigger() {
		a.pending[sig] = true
		return
	}
	a.held[sig] = true
}

// Release clears a held control
func (a *Aggregator) Release(sig Signal) {
	if sig >= signalCount {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.held[sig] = false
}

// LockOn requests a target lock on the next snapshot
func (a *Aggregator) LockOn(id entity.ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lockOnID = id
}

// Snapshot returns the State for this tick and clears one-shot triggers
func (a *Aggregator) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	var s State
	for i := Signal(0); i < signalCount; i++ {
		if a.held[i] || a.pending[i] {
			s = s.with(i)
		}
		a.pending[i] = false
	}
	s.LockTarget = a.lockOnID
	a.lockOnID = 0
	return s
}
