// pkg/engine/system.go
package engine

import (
	"github.com/EngoEngine/ecs"
	"github.com/elliotchance/orderedmap/v2"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/event"
	"github.com/opd-ai/go-flightsim/pkg/flight"
	"github.com/opd-ai/go-flightsim/pkg/input"
)

// bodyEntity is a gravitating body registered in the ecs world
type bodyEntity struct {
	ecs.BasicEntity
	Body entity.Body
}

// FlightSystem is the ecs system that owns the body registry and advances
// the vessel once per world update
type FlightSystem struct {
	sim    *flight.Simulator
	vessel entity.Vessel

	// bodies keeps insertion order so snapshots are deterministic
	bodies *orderedmap.OrderedMap[entity.ID, *bodyEntity]
	index  map[uint64]entity.ID

	// ecs hands Update a float32 dt; the exact step is staged here
	step   float64
	in     input.State
	events []event.Event
}

// NewFlightSystem creates a system driving vessel with sim
func NewFlightSystem(sim *flight.Simulator, vessel entity.Vessel) *FlightSystem {
	return &FlightSystem{
		sim:    sim,
		vessel: vessel,
		bodies: orderedmap.NewOrderedMap[entity.ID, *bodyEntity](),
		index:  make(map[uint64]entity.ID),
	}
}

// Add registers a body. It reports false when the ID is already taken.
func (fs *FlightSystem) Add(basic ecs.BasicEntity, body entity.Body) bool {
	if _, exists := fs.bodies.Get(body.ID); exists {
		return false
	}
	fs.bodies.Set(body.ID, &bodyEntity{BasicEntity: basic, Body: body})
	fs.index[basic.ID()] = body.ID
	return true
}

// Remove implements ecs.System
func (fs *FlightSystem) Remove(basic ecs.BasicEntity) {
	id, ok := fs.index[basic.ID()]
	if !ok {
		return
	}
	delete(fs.index, basic.ID())
	fs.bodies.Delete(id)
}

// Update implements ecs.System. It runs exactly one flight tick.
func (fs *FlightSystem) Update(dt float32) {
	step := fs.step
	if step == 0 {
		step = float64(dt)
	}
	fs.vessel, fs.events = fs.sim.Tick(fs.World(), fs.in, step, fs.vessel)
	fs.step = 0
	fs.in = input.State{}
}

// stage records the exact step and input for the next Update
func (fs *FlightSystem) stage(step float64, in input.State) {
	fs.step = step
	fs.in = in
	fs.events = nil
}

// World returns the current body snapshot in registration order
func (fs *FlightSystem) World() entity.World {
	bodies := make([]entity.Body, 0, fs.bodies.Len())
	for el := fs.bodies.Front(); el != nil; el = el.Next() {
		bodies = append(bodies, el.Value.Body)
	}
	return entity.World{Bodies: bodies}
}

// lookup returns the registered body with the given ID
func (fs *FlightSystem) lookup(id entity.ID) (*bodyEntity, bool) {
	return fs.bodies.Get(id)
}

// Vessel returns a copy of the vessel state
func (fs *FlightSystem) Vessel() entity.Vessel {
	return fs.vessel
}
