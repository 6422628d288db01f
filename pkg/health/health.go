// Package health reports whether a running flight session is sound. It backs
// the liveness and readiness probes of long realtime runs.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/opd-ai/go-flightsim/pkg/engine"
	"github.com/opd-ai/go-flightsim/pkg/physics"
)

// Check is a single named health probe
type Check interface {
	Name() string
	Check(ctx context.Context) error
}

// Status is the aggregated result of every registered check
type Status struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth is the result of one check
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// Checker runs the registered checks
type Checker struct {
	checks map[string]Check
	mu     sync.RWMutex
}

// NewChecker creates an empty checker
func NewChecker() *Checker {
	return &Checker{
		checks: make(map[string]Check),
	}
}

// AddCheck registers a check, replacing any with the same name
func (c *Checker) AddCheck(check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[check.Name()] = check
}

// RemoveCheck removes a check by name
func (c *Checker) RemoveCheck(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.checks, name)
}

// CheckHealth runs every check in name order. The result is healthy only if
// all checks pass.
func (c *Checker) CheckHealth(ctx context.Context) Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := Status{
		Status: statusHealthy,
		Checks: make(map[string]ComponentHealth, len(c.checks)),
	}
	for _, name := range slices.Sorted(maps.Keys(c.checks)) {
		if err := c.checks[name].Check(ctx); err != nil {
			status.Status = statusUnhealthy
			status.Checks[name] = ComponentHealth{Status: statusUnhealthy, Message: err.Error()}
			continue
		}
		status.Checks[name] = ComponentHealth{Status: statusHealthy}
	}
	return status
}

// LivenessHandler answers 200 while the process is up
func (c *Checker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// ReadinessHandler runs the checks and answers 200 or 503
func (c *Checker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := c.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")
	if health.Status == statusHealthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}

// StateFunc returns the latest session snapshot
type StateFunc func() *engine.SessionState

// SessionCheck fails once the session is no longer active
type SessionCheck struct {
	state StateFunc
}

// NewSessionCheck creates a session status check
func NewSessionCheck(state StateFunc) *SessionCheck {
	return &SessionCheck{state: state}
}

func (s *SessionCheck) Name() string { return "session" }

func (s *SessionCheck) Check(ctx context.Context) error {
	st := s.state()
	switch st.Status {
	case engine.StatusActive:
		return nil
	case engine.StatusEnded:
		return fmt.Errorf("session ended: %s", st.EndReason)
	default:
		return fmt.Errorf("session not started")
	}
}

// VesselCheck fails when the vessel state is unusable
type VesselCheck struct {
	state StateFunc
}

// NewVesselCheck creates a vessel sanity check
func NewVesselCheck(state StateFunc) *VesselCheck {
	return &VesselCheck{state: state}
}

func (v *VesselCheck) Name() string { return "vessel" }

func (v *VesselCheck) Check(ctx context.Context) error {
	vs := v.state().Vessel
	if !physics.IsFinite(vs.Position) || !physics.IsFinite(vs.Velocity) {
		return fmt.Errorf("vessel kinematics are not finite")
	}
	if vs.Hull <= 0 {
		return fmt.Errorf("hull integrity lost")
	}
	return nil
}

// ProgressCheck fails when the tick counter has not moved for longer than
// maxStall
type ProgressCheck struct {
	state    StateFunc
	maxStall time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastTick uint64
	lastSeen time.Time
}

// NewProgressCheck creates a stall detector
func NewProgressCheck(state StateFunc, maxStall time.Duration) *ProgressCheck {
	return &ProgressCheck{
		state:    state,
		maxStall: maxStall,
		now:      time.Now,
	}
}

func (p *ProgressCheck) Name() string { return "progress" }

func (p *ProgressCheck) Check(ctx context.Context) error {
	tick := p.state().Tick
	now := p.now()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastSeen.IsZero() || tick != p.lastTick {
		p.lastTick = tick
		p.lastSeen = now
		return nil
	}
	if stalled := now.Sub(p.lastSeen); stalled > p.maxStall {
		return fmt.Errorf("no tick for %s (stuck at %d)", stalled.Round(time.Millisecond), tick)
	}
	return nil
}

// MemoryCheck fails when heap usage exceeds maxMemoryMB
type MemoryCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryCheck creates a memory usage check
func NewMemoryCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryCheck {
	return &MemoryCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

func (m *MemoryCheck) Name() string { return "memory" }

func (m *MemoryCheck) Check(ctx context.Context) error {
	if currentMB := m.getMemoryUsage(); currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}
