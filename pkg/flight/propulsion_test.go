package flight

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/input"
)

func TestPropel_Thrust(t *testing.T) {
	tu := DefaultTuning()
	tests := []struct {
		name     string
		in       input.State
		wantVel  mgl64.Vec3
		wantCost float64
	}{
		{"forward", input.Aggregate(input.ThrustForward), mgl64.Vec3{0, 0, 0.05}, tu.ForwardEnergyCost},
		{"back", input.Aggregate(input.ThrustBack), mgl64.Vec3{0, 0, -0.05 * tu.BackwardMultiplier}, tu.BackwardEnergyCost},
		{"strafe right", input.Aggregate(input.StrafeRight), mgl64.Vec3{0.05 * tu.StrafeMultiplier, 0, 0}, tu.StrafeEnergyCost},
		{"strafe left", input.Aggregate(input.StrafeLeft), mgl64.Vec3{-0.05 * tu.StrafeMultiplier, 0, 0}, tu.StrafeEnergyCost},
		{
			"boosted forward",
			input.Aggregate(input.ThrustForward, input.Boost),
			mgl64.Vec3{0, 0, 0.05 * tu.BoostMultiplier},
			tu.ForwardEnergyCost * tu.BoostCostMultiplier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSimulator(nil)
			v := entity.NewVessel(mgl64.Vec3{}, testParams())
			v.SetEnergy(50)
			tc := &tick{in: tt.in, frame: 1, v: &v}

			sim.propel(tc)

			for i := 0; i < 3; i++ {
				assert.InDelta(t, tt.wantVel[i], v.Velocity[i], tolerance, "component %d", i)
			}
			assert.InDelta(t, 50-tt.wantCost, v.Energy, tolerance)
			assert.True(t, tc.spent)
		})
	}
}

func TestPropel_NoThrust_SpendsNothing(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	v.SetEnergy(50)
	tc := &tick{in: input.Aggregate(input.Boost, input.RollLeft), frame: 1, v: &v}

	sim.propel(tc)

	assert.Equal(t, mgl64.Vec3{}, v.Velocity)
	assert.Equal(t, 50.0, v.Energy)
	assert.False(t, tc.spent, "boost without thrust costs nothing")
}

func TestPropel_InsufficientEnergy_Refused(t *testing.T) {
	for _, energy := range []float64{0, 0.05} {
		sim := newTestSimulator(nil)
		v := entity.NewVessel(mgl64.Vec3{}, testParams())
		v.SetEnergy(energy)
		tc := &tick{in: input.Aggregate(input.ThrustForward), frame: 1, v: &v}

		sim.propel(tc)

		assert.Equal(t, mgl64.Vec3{}, v.Velocity)
		assert.Equal(t, energy, v.Energy)
		assert.False(t, tc.spent)
	}
}

func TestPropel_WThrustMultiplier(t *testing.T) {
	sim := newTestSimulator(nil)
	params := testParams()
	params.WThrustMultiplier = 3
	v := entity.NewVessel(mgl64.Vec3{}, params)

	sim.propel(&tick{in: input.Aggregate(input.ThrustForward), frame: 1, v: &v})

	assert.InDelta(t, 0.15, v.Velocity.Z(), tolerance)
}

func TestPropel_MinimumSpeedAlongForward(t *testing.T) {
	sim := newTestSimulator(nil)
	params := testParams()
	params.MinVelocity = 0.2
	v := entity.NewVessel(mgl64.Vec3{}, params)
	v.Orientation.Yaw = 1

	sim.propel(&tick{frame: 1, v: &v})

	assert.InDelta(t, 0.2, v.Speed(), tolerance)
	assert.InDelta(t, 1, v.Velocity.Normalize().Dot(v.Forward()), tolerance)
}

func TestPropel_Brake(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	v.Velocity = mgl64.Vec3{0, 0, 0.4}

	sim.propel(&tick{in: input.Aggregate(input.Brake), frame: 2, v: &v})

	assert.InDelta(t, 0.4*0.92*0.92, v.Velocity.Z(), tolerance)
}

func TestTick_EnergyRegeneratesOnlyWhenIdle(t *testing.T) {
	sim := newTestSimulator(nil)
	v := entity.NewVessel(mgl64.Vec3{}, testParams())
	v.SetEnergy(50)

	idle, _ := sim.Tick(entity.World{}, input.State{}, step, v)
	assert.InDelta(t, 50+sim.Tuning.EnergyRegen, idle.Energy, tolerance)

	thrusting, _ := sim.Tick(entity.World{}, input.Aggregate(input.ThrustForward), step, v)
	assert.InDelta(t, 50-sim.Tuning.ForwardEnergyCost, thrusting.Energy, tolerance)

	v.SetEnergy(entity.MaxEnergy)
	full, _ := sim.Tick(entity.World{}, input.State{}, step, v)
	assert.Equal(t, entity.MaxEnergy, full.Energy)
}
