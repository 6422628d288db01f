package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flightsim/pkg/physics"
)

// ID is a unique identifier for a gravitating body
type ID uint64

// Category classifies a body for gravity, collision and horizon rules
type Category string

const (
	Star      Category = "star"
	Planet    Category = "planet"
	Asteroid  Category = "asteroid"
	BlackHole Category = "blackhole"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case Star, Planet, Asteroid, BlackHole:
		return true
	}
	return false
}

// ExertsGravity reports whether bodies of this category pull on the vessel
func (c Category) ExertsGravity() bool {
	return c != Asteroid
}

// Body is a gravitating body as published by the world snapshot provider.
// The simulation only reads bodies; removal is requested through events.
type Body struct {
	ID       ID
	Position mgl64.Vec3
	Mass     float64
	Radius   float64
	Category Category
	// WarpThreshold is the critical radius of a black hole; zero means the
	// tuning default applies.
	WarpThreshold float64
	// Hits counts asteroid impacts already recorded by the provider.
	Hits int
}

// EffectiveMass returns the body's mass, falling back to 1 for degenerate
// values
func (b Body) EffectiveMass() float64 {
	if b.Mass <= 0 {
		return 1
	}
	return b.Mass
}

// EffectiveRadius returns the body's radius, never negative
func (b Body) EffectiveRadius() float64 {
	if b.Radius < 0 {
		return 0
	}
	return b.Radius
}

// GetCollider returns the body's collision shape
func (b Body) GetCollider() physics.Sphere {
	return physics.Sphere{
		Center: b.Position,
		Radius: b.EffectiveRadius(),
	}
}

// World is an immutable snapshot of the body set for one tick
type World struct {
	Bodies []Body
}

// NewWorld creates a snapshot that owns a copy of bodies
func NewWorld(bodies []Body) World {
	copied := make([]Body, len(bodies))
	copy(copied, bodies)
	return World{Bodies: copied}
}

// Find returns the body with the given ID
func (w World) Find(id ID) (Body, bool) {
	for _, b := range w.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return Body{}, false
}
