// Package engine hosts a flight simulation session: the body registry that
// acts as the world snapshot provider, the ecs world that drives the flight
// tick, and the event wiring between the two.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-flightsim/pkg/config"
	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/event"
	"github.com/opd-ai/go-flightsim/pkg/flight"
	"github.com/opd-ai/go-flightsim/pkg/input"
	"github.com/opd-ai/go-flightsim/pkg/logging"
	"github.com/opd-ai/go-flightsim/pkg/presenter"
	"github.com/opd-ai/go-flightsim/pkg/validation"
)

// Status is the lifecycle state of a session
type Status int

const (
	StatusWaiting Status = iota
	StatusActive
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusEnded:
		return "ended"
	default:
		return "waiting"
	}
}

// Reasons a session ends
const (
	EndStopped   = "stopped"
	EndCollision = "collision"
	EndDestroyed = "destroyed"
)

var (
	ErrNotReady      = errors.New("session not started")
	ErrSessionEnded  = errors.New("session has ended")
	ErrUnknownBody   = errors.New("unknown body")
	ErrDuplicateBody = errors.New("duplicate body id")
	ErrInvalidStep   = errors.New("invalid time step")
)

var _ presenter.BodyRemover = (*Session)(nil)

// Session owns one vessel and the bodies around it
type Session struct {
	Config      *config.Config
	EventBus    *event.Bus
	Status      Status
	EndReason   string
	CurrentTick uint64
	ElapsedTime float64 // simulated seconds
	StartTime   time.Time
	EndTime     time.Time

	mu      sync.RWMutex
	world   *ecs.World
	flight  *FlightSystem
	logger  *logging.Logger
	metrics *sessionMetrics
}

// NewSession creates a waiting session from cfg. A nil cfg uses the
// defaults and a nil logger logs to stdout.
func NewSession(cfg *config.Config, logger *logging.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "invalid configuration")
	}
	if logger == nil {
		logger = logging.NewLogger()
	}

	metrics, err := newSessionMetrics()
	if err != nil {
		return nil, err
	}

	vessel := entity.NewVessel(cfg.Session.Start.Vec3(), cfg.Vessel)
	vessel.Status = entity.NotReady

	s := &Session{
		Config:   cfg,
		EventBus: event.NewEventBus(),
		world:    &ecs.World{},
		flight:   NewFlightSystem(flight.NewSimulator(cfg.Tuning, cfg.Session.SeedValue()), vessel),
		logger:   logger,
		metrics:  metrics,
	}
	s.world.AddSystem(s.flight)

	for _, b := range cfg.WorldBodies() {
		if err := s.addBodyLocked(b); err != nil {
			return nil, err
		}
	}

	s.registerEventHandlers()
	return s, nil
}

// Start marks the vessel ready and the session active
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != StatusWaiting {
		return
	}
	s.Status = StatusActive
	s.StartTime = time.Now()
	s.flight.vessel.Status = entity.Ready

	s.logger.Info(context.Background(), "session started",
		"bodies", s.flight.bodies.Len(),
		"seed", s.Config.Session.Seed,
	)
}

// Stop ends the session
func (s *Session) Stop() {
	s.end(EndStopped)
}

// Update advances the session by the configured step
func (s *Session) Update(ctx context.Context, in input.State) ([]event.Event, error) {
	return s.Advance(ctx, s.Config.Session.Step, in)
}

// Advance runs one tick of dt seconds and publishes the resulting events
// once the tick has completed
func (s *Session) Advance(ctx context.Context, dt float64, in input.State) ([]event.Event, error) {
	s.mu.Lock()
	switch s.Status {
	case StatusWaiting:
		s.mu.Unlock()
		return nil, ErrNotReady
	case StatusEnded:
		s.mu.Unlock()
		return nil, ErrSessionEnded
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrInvalidStep, dt)
	}

	s.flight.stage(dt, in)
	s.world.Update(float32(dt))
	events := s.flight.events
	s.recordHits(events)
	s.CurrentTick++
	s.ElapsedTime += dt
	tick := s.CurrentTick
	s.mu.Unlock()

	s.metrics.recordTick(ctx, events)
	if len(events) > 0 {
		s.logger.Debug(ctx, "tick events", "tick", tick, "count", len(events))
	}

	// Handlers may call back into the session, so publish without the lock
	s.EventBus.PublishAll(events)
	return events, nil
}

// recordHits counts asteroid impacts on the registry so the destruction
// threshold sees them on later ticks
func (s *Session) recordHits(events []event.Event) {
	for _, e := range events {
		ev, ok := e.(*event.CollisionEvent)
		if !ok || ev.Fatal || ev.Category != entity.Asteroid {
			continue
		}
		if be, ok := s.flight.lookup(ev.BodyID); ok {
			be.Body.Hits++
		}
	}
}

// AddBody registers a new body
func (s *Session) AddBody(b entity.Body) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addBodyLocked(b)
}

func (s *Session) addBodyLocked(b entity.Body) error {
	if err := validation.ValidateBody(b); err != nil {
		return logging.WrapError(err, "body %d", b.ID)
	}
	if !s.flight.Add(ecs.NewBasic(), b) {
		return fmt.Errorf("%w: %d", ErrDuplicateBody, b.ID)
	}
	s.metrics.recordBodies(context.Background(), 1)
	return nil
}

// RemoveBody removes a body from the registry. Unknown IDs are ignored.
func (s *Session) RemoveBody(id entity.ID) {
	if err := s.DeleteBody(id); err != nil {
		s.logger.Debug(context.Background(), "body removal ignored", "body_id", uint64(id), "error", err.Error())
	}
}

// DeleteBody removes a body from the registry
func (s *Session) DeleteBody(id entity.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	be, ok := s.flight.lookup(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	s.world.RemoveEntity(be.BasicEntity)
	s.metrics.recordBodies(context.Background(), -1)
	return nil
}

// Body returns a registered body
func (s *Session) Body(id entity.ID) (entity.Body, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	be, ok := s.flight.lookup(id)
	if !ok {
		return entity.Body{}, fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	return be.Body, nil
}

// Vessel returns a copy of the vessel as of the last completed tick
func (s *Session) Vessel() entity.Vessel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flight.Vessel()
}

// registerEventHandlers subscribes the session to the events it acts on as
// the world provider
func (s *Session) registerEventHandlers() {
	s.EventBus.Subscribe(event.BodyDestroyed, s.handleBodyDestroyedEvent)
	s.EventBus.Subscribe(event.ShipDestroyed, s.handleShipDestroyedEvent)
	s.EventBus.Subscribe(event.CollisionOccurred, s.handleCollisionEvent)
}

func (s *Session) handleBodyDestroyedEvent(e event.Event) {
	if ev, ok := e.(*event.BodyEvent); ok {
		s.RemoveBody(ev.BodyID)
	}
}

func (s *Session) handleShipDestroyedEvent(e event.Event) {
	if _, ok := e.(*event.ShipEvent); ok {
		s.end(EndDestroyed)
	}
}

func (s *Session) handleCollisionEvent(e event.Event) {
	if ev, ok := e.(*event.CollisionEvent); ok && ev.Fatal {
		s.end(EndCollision)
	}
}

// end ends the session once; later calls keep the first reason
func (s *Session) end(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status == StatusEnded {
		return
	}
	s.Status = StatusEnded
	s.EndReason = reason
	s.EndTime = time.Now()
	s.flight.vessel.Status = entity.NotReady

	s.logger.Info(context.Background(), "session ended",
		"reason", reason,
		"tick", s.CurrentTick,
		"elapsed", s.ElapsedTime,
	)
}
