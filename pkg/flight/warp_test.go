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

func TestWarp_ActivationSetsVelocityAndUnlocks(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	v.Orientation = entity.Orientation{Pitch: 0.2, Yaw: -0.7}
	v.Velocity = mgl64.Vec3{0.3, 0, 0.1}
	require.Equal(t, 0.5, v.MaxVelocity)

	got, events := sim.Tick(entity.World{}, input.Aggregate(input.EmergencyWarp), step, v)

	want := v.Forward().Mul(1.2)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got.Velocity[i], tolerance, "component %d", i)
	}
	assert.Equal(t, sim.Tuning.UnlockedMaxVelocity, got.MaxVelocity)
	assert.True(t, got.Warp.Active)
	assert.True(t, got.Warp.Unlocked)
	assert.Equal(t, entity.MaxWarpCharges-1, got.Warp.Available)

	activated := eventsOfType(events, event.EmergencyWarpActivated)
	require.Len(t, activated, 1)
	e := activated[0].(*event.WarpEvent)
	assert.True(t, e.Unlocked)
	assert.Equal(t, entity.MaxWarpCharges-1, e.Charges)

	// The raised ceiling survives the end of the boost.
	got, events = sim.Tick(entity.World{}, input.State{}, 1, got)
	assert.False(t, got.Warp.Active)
	assert.Len(t, eventsOfType(events, event.EmergencyWarpCompleted), 1)
	assert.Equal(t, sim.Tuning.UnlockedMaxVelocity, got.MaxVelocity)
}

func TestWarp_BelowUnlockTier_KeepsMaxVelocity(t *testing.T) {
	sim := newTestSimulator(nil)
	params := testParams()
	params.WarpBoostSpeed = 0.9
	v := entity.NewVessel(mgl64.Vec3{}, params)

	got, _ := sim.Tick(entity.World{}, input.Aggregate(input.EmergencyWarp), step, v)

	assert.True(t, got.Warp.Active)
	assert.False(t, got.Warp.Unlocked)
	assert.Equal(t, params.MaxVelocity, got.MaxVelocity)
}

func TestWarp_NoCharges_Refused(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	v.SetWarpCharges(0)

	got, events := sim.Tick(entity.World{}, input.Aggregate(input.EmergencyWarp), step, v)

	assert.False(t, got.Warp.Active)
	assert.Equal(t, 0, got.Warp.Available)
	assert.Empty(t, eventsOfType(events, event.EmergencyWarpActivated))
	assert.Equal(t, 0.5, got.MaxVelocity)
}

func TestWarp_AlreadyActive_Refused(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	in := input.Aggregate(input.EmergencyWarp)

	v, _ = sim.Tick(entity.World{}, in, step, v)
	got, events := sim.Tick(entity.World{}, in, step, v)

	assert.Equal(t, entity.MaxWarpCharges-1, got.Warp.Available)
	assert.Empty(t, eventsOfType(events, event.EmergencyWarpActivated))
}

func TestWarp_DepletionThenSingleRegeneration(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	in := input.Aggregate(input.EmergencyWarp)

	// Each half-second tick expires the previous boost and starts a new one.
	for n := 1; n <= entity.MaxWarpCharges; n++ {
		var events []event.Event
		v, events = sim.Tick(entity.World{}, in, 0.5, v)
		require.Len(t, eventsOfType(events, event.EmergencyWarpActivated), 1, "activation %d", n)
		assert.Equal(t, entity.MaxWarpCharges-n, v.Warp.Available)
	}

	v, events := sim.Tick(entity.World{}, in, 0.5, v)
	assert.Empty(t, eventsOfType(events, event.EmergencyWarpActivated))
	assert.Equal(t, 0, v.Warp.Available)
	assert.InDelta(t, 2.5, v.Warp.RegenerationTimer, tolerance)

	v, events = sim.Tick(entity.World{}, input.State{}, 97.5, v)
	assert.Equal(t, 1, v.Warp.Available)
	assert.Len(t, eventsOfType(events, event.EmergencyWarpRecharged), 1)
	assert.InDelta(t, 0, v.Warp.RegenerationTimer, tolerance)
}

func TestWarp_RegenerationCapsAtMax(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	v.SetWarpCharges(3)

	got, events := sim.Tick(entity.World{}, input.State{}, 1000, v)

	assert.Equal(t, entity.MaxWarpCharges, got.Warp.Available)
	assert.Len(t, eventsOfType(events, event.EmergencyWarpRecharged), 2)
	assert.Equal(t, 0.0, got.Warp.RegenerationTimer)
}
