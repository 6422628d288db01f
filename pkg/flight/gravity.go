package flight

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/physics"
)

// gravityField is the result of one gravity pass
type gravityField struct {
	// net is the accumulated force for one reference step
	net mgl64.Vec3

	candidate         entity.Body
	candidateDistance float64
	hasCandidate      bool
}

type rankedBody struct {
	body     entity.Body
	distance float64
}

// rankBodies returns every body ordered by distance from the vessel
func rankBodies(world entity.World, from mgl64.Vec3) []rankedBody {
	ranked := make([]rankedBody, 0, len(world.Bodies))
	for _, b := range world.Bodies {
		ranked = append(ranked, rankedBody{body: b, distance: physics.Distance(from, b.Position)})
	}
	slices.SortStableFunc(ranked, func(a, b rankedBody) int {
		return cmp.Compare(a.distance, b.distance)
	})
	return ranked
}

// scanBodies computes the net pull of the nearest GravityNeighbours bodies and
// the nearest assist-eligible body, without touching the vessel
func (s *Simulator) scanBodies(tc *tick) gravityField {
	t := s.Tuning
	v := tc.v
	var f gravityField

	ranked := rankBodies(tc.world, v.Position)
	shipMass := v.EffectiveMass()

	for i, r := range ranked {
		if !f.hasCandidate && r.body.Category != entity.Asteroid && r.distance < t.AssistRange {
			f.candidate = r.body
			f.candidateDistance = r.distance
			f.hasCandidate = true
		}

		if t.GravityNeighbours > 0 && i >= t.GravityNeighbours {
			continue
		}
		if !r.body.Category.ExertsGravity() {
			continue
		}
		dir := physics.SafeNormalize(r.body.Position.Sub(v.Position), mgl64.Vec3{})
		if dir.Len() == 0 {
			continue
		}
		d := math.Max(r.distance, t.MinGravityDistance)
		if d <= 0 {
			continue
		}
		magnitude := t.G * shipMass * r.body.EffectiveMass() / (d * d)
		f.net = f.net.Add(dir.Mul(magnitude))
	}
	return f
}

// solveGravity applies the net gravitational pull to the vessel velocity
func (s *Simulator) solveGravity(tc *tick) gravityField {
	f := s.scanBodies(tc)
	if physics.IsFinite(f.net) {
		tc.v.Velocity = tc.v.Velocity.Add(f.net.Mul(tc.frame))
	}
	return f
}
