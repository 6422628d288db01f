package presenter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/opd-ai/go-flightsim/pkg/event"
	"github.com/opd-ai/go-flightsim/pkg/logging"
)

// Sound identifiers
const (
	SoundImpact          = "impact"
	SoundImpactFatal     = "impact_fatal"
	SoundBodyBreak       = "body_break"
	SoundShipDestroyed   = "ship_destroyed"
	SoundSlingshot       = "slingshot"
	SoundSlingshotHeavy  = "slingshot_heavy"
	SoundSlingshotCancel = "slingshot_cancel"
	SoundWarp            = "warp"
	SoundWarpEnd         = "warp_end"
	SoundWarpRecharged   = "warp_recharged"
	SoundAlarm           = "alarm"
	SoundHorizon         = "horizon_warning"
	SoundLockOn          = "lock_on"
	SoundLockLost        = "lock_lost"
	SoundAutopilot       = "autopilot"
)

// Effect kinds triggered by the dispatcher in addition to the cosmetic
// EffectRequested events
const (
	EffectSlingshot        = "slingshot_trail"
	EffectSlingshotGiant   = "slingshot_gravity_wave"
	EffectSlingshotSpatial = "slingshot_spacetime_tear"
	EffectWarp             = "warp_tunnel"
)

// cadence is the presentation weight of a slingshot tier
type cadence struct {
	effect    string
	intensity float64
	sound     string
	notify    time.Duration
}

var slingshotCadence = map[event.Tier]cadence{
	event.TierOrdinary:    {effect: EffectSlingshot, intensity: 0.4, sound: SoundSlingshot},
	event.TierGiantPlanet: {effect: EffectSlingshotGiant, intensity: 0.7, sound: SoundSlingshotHeavy, notify: 3 * time.Second},
	event.TierBlackHole:   {effect: EffectSlingshotSpatial, intensity: 1, sound: SoundSlingshotHeavy, notify: 5 * time.Second},
}

// Dispatcher subscribes to an event bus and drives the collaborators
type Dispatcher struct {
	c      Collaborators
	logger *logging.Logger

	mu      sync.Mutex
	subs    []*event.Subscription
	handled map[event.Type]int
}

// AllTypes lists every event type the dispatcher handles
var AllTypes = []event.Type{
	event.CollisionOccurred,
	event.BodyDestroyed,
	event.ShipDestroyed,
	event.SlingshotStarted,
	event.SlingshotCompleted,
	event.EmergencyWarpActivated,
	event.EmergencyWarpCompleted,
	event.EmergencyWarpRecharged,
	event.EnergyCritical,
	event.EventHorizonWarningEntered,
	event.EventHorizonWarningExited,
	event.TargetAcquired,
	event.TargetLost,
	event.AutopilotEngaged,
	event.AutopilotDisengaged,
	event.EffectRequested,
}

// NewDispatcher subscribes a dispatcher to bus
func NewDispatcher(bus *event.Bus, c Collaborators, logger *logging.Logger) *Dispatcher {
	d := &Dispatcher{
		c:       c.withDefaults(NewLogPresenter(logger)),
		logger:  logger,
		handled: make(map[event.Type]int),
	}
	d.subs = bus.SubscribeAll(d.Handle, AllTypes...)
	return d
}

// Close unsubscribes the dispatcher
func (d *Dispatcher) Close() {
	d.mu.Lock()
	subs := d.subs
	d.subs = nil
	d.mu.Unlock()

	for _, s := range subs {
		s.Cancel()
	}
}

// Handled returns how many events of type t were dispatched
func (d *Dispatcher) Handled(t event.Type) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handled[t]
}

// Handle maps one event onto the collaborators
func (d *Dispatcher) Handle(e event.Event) {
	d.mu.Lock()
	d.handled[e.GetType()]++
	d.mu.Unlock()

	d.logger.Debug(context.Background(), "dispatching event", "type", string(e.GetType()), "time", e.GetTime())

	switch ev := e.(type) {
	case *event.CollisionEvent:
		d.collision(ev)
	case *event.ShipEvent:
		pos := ev.Position
		d.c.Effects.Trigger(event.EffectExplosion, &pos, 1)
		d.c.Audio.Play(SoundShipDestroyed)
		d.c.Notifier.Notify("Vessel destroyed", "Hull integrity lost", 5*time.Second)
	case *event.SlingshotEvent:
		d.slingshot(ev)
	case *event.WarpEvent:
		d.warp(ev)
	case *event.EnergyEvent:
		d.c.Audio.Play(SoundAlarm)
		d.c.Notifier.Notify("Energy critical", fmt.Sprintf("Energy at %.0f%%", ev.Energy), 3*time.Second)
	case *event.AutopilotEvent:
		d.autopilot(ev)
	case *event.EffectEvent:
		pos := ev.Position
		d.c.Effects.Trigger(ev.Effect, &pos, ev.Intensity)
	case *event.BodyEvent:
		d.body(ev)
	}

	d.c.UI.Refresh()
}

func (d *Dispatcher) collision(ev *event.CollisionEvent) {
	pos := ev.Position
	if ev.Fatal {
		d.c.Effects.Trigger(event.EffectExplosion, &pos, 1)
		d.c.Audio.Play(SoundImpactFatal)
		d.c.Notifier.Notify("Collision", fmt.Sprintf("Impact with %s %d", ev.Category, ev.BodyID), 5*time.Second)
		return
	}
	d.c.Audio.Play(SoundImpact)
}

func (d *Dispatcher) body(ev *event.BodyEvent) {
	switch ev.GetType() {
	case event.BodyDestroyed:
		d.c.Remover.RemoveBody(ev.BodyID)
		d.c.Audio.Play(SoundBodyBreak)
	case event.EventHorizonWarningEntered:
		d.c.Audio.Play(SoundHorizon)
		d.c.Notifier.Notify("Event horizon", fmt.Sprintf("Black hole %d in range", ev.BodyID), 3*time.Second)
	case event.TargetAcquired:
		d.c.Audio.Play(SoundLockOn)
	case event.TargetLost:
		d.c.Audio.Play(SoundLockLost)
	}
}

func (d *Dispatcher) slingshot(ev *event.SlingshotEvent) {
	if ev.GetType() == event.SlingshotCompleted {
		if ev.Cancelled {
			d.c.Audio.Play(SoundSlingshotCancel)
		}
		return
	}

	c := slingshotCadence[ev.Tier]
	d.c.Effects.Trigger(c.effect, nil, c.intensity)
	d.c.Audio.Play(c.sound)
	if c.notify > 0 {
		d.c.Notifier.Notify("Slingshot", fmt.Sprintf("%s assist at %.1f", ev.Tier, ev.Speed), c.notify)
	}
}

func (d *Dispatcher) warp(ev *event.WarpEvent) {
	switch ev.GetType() {
	case event.EmergencyWarpActivated:
		d.c.Effects.Trigger(EffectWarp, nil, 1)
		d.c.Audio.Play(SoundWarp)
		d.c.Notifier.Notify("Emergency warp", fmt.Sprintf("%d charges left", ev.Charges), 2*time.Second)
		if ev.Unlocked {
			d.c.Notifier.Notify("Velocity tier unlocked", "Maximum velocity raised", 4*time.Second)
		}
	case event.EmergencyWarpCompleted:
		d.c.Audio.Play(SoundWarpEnd)
	case event.EmergencyWarpRecharged:
		d.c.Audio.Play(SoundWarpRecharged)
	}
}

func (d *Dispatcher) autopilot(ev *event.AutopilotEvent) {
	d.c.Audio.Play(SoundAutopilot)
	if ev.GetType() == event.AutopilotEngaged {
		d.c.Notifier.Notify("Autopilot", fmt.Sprintf("Navigating to body %d", ev.TargetID), 2*time.Second)
		return
	}
	d.c.Notifier.Notify("Autopilot", "Disengaged: "+ev.Reason, 2*time.Second)
}
