// pkg/physics/collision.go
package physics

import "github.com/go-gl/mathgl/mgl64"

// Sphere represents a spherical collision shape
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Penetrates reports whether point lies closer to the sphere's center than
// its radius plus margin
func (s Sphere) Penetrates(point mgl64.Vec3, margin float64) bool {
	return Distance(s.Center, point) < s.Radius+margin
}

// CollisionResult contains information about a point/sphere contact
type CollisionResult struct {
	Collided    bool
	Distance    float64
	Normal      mgl64.Vec3
	Penetration float64
}

// CheckCollision performs detailed contact detection between a point (the
// vessel) and a sphere, inflating the sphere by margin
func CheckCollision(point mgl64.Vec3, s Sphere, margin float64) CollisionResult {
	// Vector from the sphere to the point
	normal := point.Sub(s.Center)
	distance := normal.Len()

	if !s.Penetrates(point, margin) {
		return CollisionResult{Distance: distance}
	}

	return CollisionResult{
		Collided:    true,
		Distance:    distance,
		Normal:      SafeNormalize(normal, WorldUp),
		Penetration: s.Radius + margin - distance,
	}
}
