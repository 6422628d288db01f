// pkg/event/event.go
package event

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flightsim/pkg/entity"
)

// Type represents the type of event
type Type string

// Flight event types
const (
	CollisionOccurred          Type = "collision_occurred"
	BodyDestroyed              Type = "body_destroyed"
	ShipDestroyed              Type = "ship_destroyed"
	SlingshotStarted           Type = "slingshot_started"
	SlingshotCompleted         Type = "slingshot_completed"
	EmergencyWarpActivated     Type = "emergency_warp_activated"
	EmergencyWarpCompleted     Type = "emergency_warp_completed"
	EmergencyWarpRecharged     Type = "emergency_warp_recharged"
	EnergyCritical             Type = "energy_critical"
	EventHorizonWarningEntered Type = "event_horizon_warning_entered"
	EventHorizonWarningExited  Type = "event_horizon_warning_exited"
	TargetAcquired             Type = "target_acquired"
	TargetLost                 Type = "target_lost"
	AutopilotEngaged           Type = "autopilot_engaged"
	AutopilotDisengaged        Type = "autopilot_disengaged"
	EffectRequested            Type = "effect_requested"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	// GetTime returns the vessel clock at which the event occurred.
	GetTime() float64
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Time      float64
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetTime returns the simulated time of the event
func (e *BaseEvent) GetTime() float64 {
	return e.Time
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler
type Subscription struct {
	ID     uint64
	Cancel func()
}

type handlerEntry struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]handlerEntry
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]handlerEntry),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type. Calling Cancel on
// the returned subscription removes the handler.
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], handlerEntry{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.remove(eventType, id) },
	}
}

// SubscribeAll registers one handler for several event types
func (b *Bus) SubscribeAll(handler Handler, eventTypes ...Type) []*Subscription {
	subs := make([]*Subscription, 0, len(eventTypes))
	for _, t := range eventTypes {
		subs = append(subs, b.Subscribe(t, handler))
	}
	return subs
}

func (b *Bus) remove(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]handlerEntry(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h.handler(event)
	}
}

// PublishAll publishes events in order
func (b *Bus) PublishAll(events []Event) {
	for _, e := range events {
		b.Publish(e)
	}
}

// Specific event implementations

// CollisionEvent reports the vessel penetrating a body
type CollisionEvent struct {
	BaseEvent
	BodyID   entity.ID
	Category entity.Category
	Fatal    bool
	Position mgl64.Vec3
	Hull     float64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(at float64, body entity.Body, fatal bool, hull float64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{EventType: CollisionOccurred, Time: at},
		BodyID:    body.ID,
		Category:  body.Category,
		Fatal:     fatal,
		Position:  body.Position,
		Hull:      hull,
	}
}

// BodyEvent carries a body reference; used for destruction, horizon warnings
// and target lock changes
type BodyEvent struct {
	BaseEvent
	BodyID   entity.ID
	Category entity.Category
	Position mgl64.Vec3
}

// NewBodyEvent creates a new body event
func NewBodyEvent(eventType Type, at float64, body entity.Body) *BodyEvent {
	return &BodyEvent{
		BaseEvent: BaseEvent{EventType: eventType, Time: at},
		BodyID:    body.ID,
		Category:  body.Category,
		Position:  body.Position,
	}
}

// ShipEvent reports the terminal destruction of the vessel
type ShipEvent struct {
	BaseEvent
	Position mgl64.Vec3
	// CauseID is the body whose impact destroyed the hull.
	CauseID entity.ID
}

// NewShipDestroyedEvent creates a new ship destroyed event
func NewShipDestroyedEvent(at float64, position mgl64.Vec3, cause entity.ID) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{EventType: ShipDestroyed, Time: at},
		Position:  position,
		CauseID:   cause,
	}
}

// Tier ranks the presentation cadence of a slingshot
type Tier int

const (
	TierOrdinary Tier = iota
	TierGiantPlanet
	TierBlackHole
)

func (t Tier) String() string {
	switch t {
	case TierBlackHole:
		return "blackhole"
	case TierGiantPlanet:
		return "giant_planet"
	default:
		return "ordinary"
	}
}

// SlingshotEvent reports slingshot start and completion
type SlingshotEvent struct {
	BaseEvent
	BodyID    entity.ID
	Category  entity.Category
	Tier      Tier
	Speed     float64
	Cancelled bool
}

// NewSlingshotEvent creates a new slingshot event
func NewSlingshotEvent(eventType Type, at float64, bodyID entity.ID, category entity.Category, tier Tier, speed float64) *SlingshotEvent {
	return &SlingshotEvent{
		BaseEvent: BaseEvent{EventType: eventType, Time: at},
		BodyID:    bodyID,
		Category:  category,
		Tier:      tier,
		Speed:     speed,
	}
}

// WarpEvent reports emergency warp activity
type WarpEvent struct {
	BaseEvent
	Charges  int
	Speed    float64
	Unlocked bool
}

// NewWarpEvent creates a new warp event
func NewWarpEvent(eventType Type, at float64, charges int, speed float64) *WarpEvent {
	return &WarpEvent{
		BaseEvent: BaseEvent{EventType: eventType, Time: at},
		Charges:   charges,
		Speed:     speed,
	}
}

// EnergyEvent reports a critical energy level
type EnergyEvent struct {
	BaseEvent
	Energy float64
}

// NewEnergyCriticalEvent creates a new energy critical event
func NewEnergyCriticalEvent(at, energy float64) *EnergyEvent {
	return &EnergyEvent{
		BaseEvent: BaseEvent{EventType: EnergyCritical, Time: at},
		Energy:    energy,
	}
}

// Autopilot disengage reasons
const (
	ReasonArrived      = "arrived"
	ReasonEnergy       = "energy"
	ReasonTargetLost   = "target_lost"
	ReasonManual       = "manual"
	ReasonOutOfRange   = "out_of_range"
	ReasonDestroyed    = "destroyed"
	ReasonLockReleased = "released"
)

// AutopilotEvent reports autopilot engagement changes
type AutopilotEvent struct {
	BaseEvent
	TargetID entity.ID
	Reason   string
}

// NewAutopilotEvent creates a new autopilot event
func NewAutopilotEvent(eventType Type, at float64, target entity.ID, reason string) *AutopilotEvent {
	return &AutopilotEvent{
		BaseEvent: BaseEvent{EventType: eventType, Time: at},
		TargetID:  target,
		Reason:    reason,
	}
}

// Cosmetic effect kinds
const (
	EffectSpiralDistortion = "spiral_distortion"
	EffectExplosion        = "explosion"
)

// EffectEvent requests a purely cosmetic effect
type EffectEvent struct {
	BaseEvent
	Effect    string
	Position  mgl64.Vec3
	Intensity float64
}

// NewEffectEvent creates a new effect request
func NewEffectEvent(at float64, effect string, position mgl64.Vec3, intensity float64) *EffectEvent {
	return &EffectEvent{
		BaseEvent: BaseEvent{EventType: EffectRequested, Time: at},
		Effect:    effect,
		Position:  position,
		Intensity: intensity,
	}
}
