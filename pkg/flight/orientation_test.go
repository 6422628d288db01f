package flight

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/input"
	"github.com/opd-ai/go-flightsim/pkg/physics"
)

func TestOrient(t *testing.T) {
	tu := DefaultTuning()
	tests := []struct {
		name string
		in   input.State
		want entity.Orientation
	}{
		{"idle", input.State{}, entity.Orientation{}},
		{"up", input.Aggregate(input.RotateUp), entity.Orientation{Pitch: tu.RotationSpeed}},
		{"right", input.Aggregate(input.RotateRight), entity.Orientation{Yaw: tu.RotationSpeed}},
		{"left", input.Aggregate(input.RotateLeft), entity.Orientation{Yaw: -tu.RotationSpeed}},
		{"roll left", input.Aggregate(input.RollLeft), entity.Orientation{Roll: -tu.RollSpeed}},
		{"opposed", input.Aggregate(input.RotateUp, input.RotateDown), entity.Orientation{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := NewSimulator(tu, 1)
			v := entity.NewVessel(mgl64.Vec3{}, testParams())

			sim.orient(&tick{in: tt.in, frame: 1, v: &v})

			assert.InDelta(t, tt.want.Pitch, v.Orientation.Pitch, tolerance)
			assert.InDelta(t, tt.want.Yaw, v.Orientation.Yaw, tolerance)
			assert.InDelta(t, tt.want.Roll, v.Orientation.Roll, tolerance)
		})
	}
}

func TestOrient_PitchClampedAndYawWrapped(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	v.Orientation = entity.Orientation{Pitch: maxPitch - 0.001, Yaw: math.Pi - 0.001}

	sim.orient(&tick{in: input.Aggregate(input.RotateUp, input.RotateRight), frame: 1, v: &v})

	assert.Equal(t, maxPitch, v.Orientation.Pitch)
	assert.Less(t, v.Orientation.Yaw, 0.0, "yaw wraps past pi")
}

func TestOrient_HeldRollStaysWrapped(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())

	for i := 0; i < 600; i++ {
		sim.orient(&tick{in: input.Aggregate(input.RollRight), frame: 1, v: &v})
		require.LessOrEqual(t, math.Abs(v.Orientation.Roll), math.Pi+tolerance, "tick %d", i)
	}
	want := physics.WrapAngle(600 * sim.Tuning.RollSpeed * input.Aggregate(input.RollRight).RollAxis())
	assert.InDelta(t, want, v.Orientation.Roll, 1e-6)
}

func TestOrient_StampsIdleTimers(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	v.Clock = 7

	sim.orient(&tick{in: input.Aggregate(input.RollLeft, input.RollRight, input.RotateDown), frame: 1, v: &v})

	assert.Equal(t, 7.0, v.Leveling.LastRollInput)
	assert.Equal(t, 7.0, v.Leveling.LastPitchInput)
	assert.Zero(t, v.Orientation.Roll)
}

func TestAutoLevel(t *testing.T) {
	sim := newTestSimulator(nil)
	params := testParams()
	params.AutoLevel = true
	v := entity.NewVessel(mgl64.Vec3{}, params)
	v.Orientation = entity.Orientation{Pitch: 0.4, Roll: 0.6}

	// Roll is idle long enough, pitch is not.
	v.Clock = 1.8
	v.Leveling.LastPitchInput = 1.0
	sim.autoLevel(&tick{frame: 1, v: &v})
	assert.InDelta(t, 0.6*(1-sim.Tuning.LevelSpeed), v.Orientation.Roll, tolerance)
	assert.Equal(t, 0.4, v.Orientation.Pitch)

	for i := 0; i < 1000; i++ {
		v.Clock += step
		sim.autoLevel(&tick{frame: 1, v: &v})
	}
	assert.Zero(t, v.Orientation.Roll, "roll snaps to level")
	assert.Zero(t, v.Orientation.Pitch, "pitch snaps to level")
}

func TestAutoLevel_DisabledOrAutopilot(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	v.Orientation = entity.Orientation{Pitch: 0.4, Roll: 0.6}
	v.Clock = 100

	sim.autoLevel(&tick{frame: 1, v: &v})
	assert.Equal(t, entity.Orientation{Pitch: 0.4, Roll: 0.6}, v.Orientation)

	v.Leveling.Enabled = true
	v.AutoNav.Enabled = true
	sim.autoLevel(&tick{frame: 1, v: &v})
	assert.Equal(t, 0.4, v.Orientation.Pitch, "autopilot owns pitch")
	assert.Less(t, v.Orientation.Roll, 0.6)
}
