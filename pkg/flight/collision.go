package flight

import (
	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/event"
	"github.com/opd-ai/go-flightsim/pkg/physics"
)

// detectCollisions checks the vessel against every body in the snapshot.
// Asteroids damage the hull and are destroyed; anything else is fatal.
func (s *Simulator) detectCollisions(tc *tick) {
	t := s.Tuning
	v := tc.v

	for _, b := range tc.world.Bodies {
		hit := physics.CheckCollision(v.Position, b.GetCollider(), t.CollisionMargin)
		if !hit.Collided {
			continue
		}

		if b.Category != entity.Asteroid {
			tc.emit(event.NewCollisionEvent(v.Clock, b, true, v.Hull))
			continue
		}

		wasIntact := v.Hull > 0
		destroyed := v.Damage(t.AsteroidDamage)
		tc.emit(event.NewCollisionEvent(v.Clock, b, false, v.Hull))

		if b.Hits+1 >= t.AsteroidHitsToDestroy {
			tc.emit(event.NewBodyEvent(event.BodyDestroyed, v.Clock, b))
			tc.emit(event.NewEffectEvent(v.Clock, event.EffectExplosion, b.Position, 1))
		}
		if destroyed && wasIntact {
			tc.emit(event.NewShipDestroyedEvent(v.Clock, v.Position, b.ID))
		}
	}
}
