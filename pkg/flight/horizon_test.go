package flight

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/event"
	"github.com/opd-ai/go-flightsim/pkg/input"
)

func blackHole(id entity.ID, pos mgl64.Vec3, threshold float64) entity.Body {
	return entity.Body{ID: id, Position: pos, Mass: 10, Radius: 2, Category: entity.BlackHole, WarpThreshold: threshold}
}

func TestHorizon_EnterAndExit(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	world := entity.NewWorld([]entity.Body{blackHole(1, mgl64.Vec3{0, 0, 100}, 0)})

	v, events := sim.Tick(world, input.State{}, step, v)
	require.True(t, v.Horizon.Active)
	assert.Equal(t, entity.ID(1), v.Horizon.BodyID)
	assert.False(t, v.Horizon.Critical)
	assert.Len(t, eventsOfType(events, event.EventHorizonWarningEntered), 1)

	v, events = sim.Tick(world, input.State{}, step, v)
	assert.Empty(t, eventsOfType(events, event.EventHorizonWarningEntered), "warning is not repeated")

	v.Position = mgl64.Vec3{0, 0, -200}
	v, events = sim.Tick(world, input.State{}, step, v)
	assert.False(t, v.Horizon.Active)
	exited := eventsOfType(events, event.EventHorizonWarningExited)
	require.Len(t, exited, 1)
	assert.Equal(t, entity.ID(1), exited[0].(*event.BodyEvent).BodyID)
}

func TestHorizon_IgnoresOtherCategories(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	world := entity.NewWorld([]entity.Body{
		{ID: 1, Position: mgl64.Vec3{0, 0, 20}, Mass: 10, Radius: 2, Category: entity.Star},
	})

	got, events := sim.Tick(world, input.State{}, step, v)

	assert.False(t, got.Horizon.Active)
	assert.Empty(t, eventsOfType(events, event.EventHorizonWarningEntered))
}

func TestHorizon_SingleWarningHeld(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	first := entity.NewWorld([]entity.Body{blackHole(1, mgl64.Vec3{0, 0, 120}, 0)})
	v, _ = sim.Tick(first, input.State{}, step, v)
	require.Equal(t, entity.ID(1), v.Horizon.BodyID)

	both := entity.NewWorld([]entity.Body{
		blackHole(1, mgl64.Vec3{0, 0, 120}, 0),
		blackHole(2, mgl64.Vec3{0, 0, -60}, 0),
	})
	v, events := sim.Tick(both, input.State{}, step, v)

	assert.Equal(t, entity.ID(1), v.Horizon.BodyID, "a closer black hole does not steal the warning")
	assert.Empty(t, eventsOfType(events, event.EventHorizonWarningEntered))
}

func TestHorizon_WarnedBodyRemoved_Exits(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	v, _ = sim.Tick(entity.NewWorld([]entity.Body{blackHole(4, mgl64.Vec3{0, 0, 100}, 0)}), input.State{}, step, v)
	require.True(t, v.Horizon.Active)

	got, events := sim.Tick(entity.World{}, input.State{}, step, v)

	assert.False(t, got.Horizon.Active)
	exited := eventsOfType(events, event.EventHorizonWarningExited)
	require.Len(t, exited, 1)
	assert.Equal(t, entity.ID(4), exited[0].(*event.BodyEvent).BodyID)
}

func TestHorizon_CriticalSpiral(t *testing.T) {
	tests := []struct {
		name        string
		threshold   float64
		distance    float64
		wantCrit    bool
		flicker     float64
		wantEffects int
	}{
		{"inside warp threshold", 50, 45, true, 1, 1},
		{"outside warp threshold", 30, 45, false, 1, 0},
		{"tuning default radius", 0, 35, true, 1, 1},
		{"no flicker", 50, 45, true, 0, 0},
		{"threshold beyond warning distance", 250, 180, true, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSimulator(func(tu *Tuning) {
				tu.SpiralFlickerChance = tt.flicker
				tu.G = 0
			})
			v := entity.NewVessel(mgl64.Vec3{}, testParams())
			world := entity.NewWorld([]entity.Body{blackHole(1, mgl64.Vec3{0, 0, tt.distance}, tt.threshold)})

			got, events := sim.Tick(world, input.State{}, step, v)

			assert.True(t, got.Horizon.Active, "every black hole in its critical radius is also warned")
			assert.Equal(t, tt.wantCrit, got.Horizon.Critical)
			effects := eventsOfType(events, event.EffectRequested)
			assert.Len(t, effects, tt.wantEffects)
			if tt.wantCrit {
				assert.NotEqual(t, 0.0, got.Velocity.X(), "spiral pushes the vessel sideways")
				assert.NotEqual(t, 0.0, got.Orientation.Roll, "spiral perturbs roll")
			} else {
				assert.Equal(t, 0.0, got.Orientation.Roll)
			}
			for _, e := range effects {
				fx := e.(*event.EffectEvent)
				assert.Equal(t, event.EffectSpiralDistortion, fx.Effect)
				assert.Greater(t, fx.Intensity, 0.0)
				assert.LessOrEqual(t, fx.Intensity, 1.0)
			}
		})
	}
}
