package flight

// Tuning holds the physical constants of the simulation. Quantities described
// as "per tick" are defined against ReferenceStep and are scaled by
// dt/ReferenceStep at run time; durations and delays are in seconds.
type Tuning struct {
	ReferenceStep float64 `json:"referenceStep" mapstructure:"referenceStep"`

	// Gravity
	G                  float64 `json:"g" mapstructure:"g"`
	GravityNeighbours  int     `json:"gravityNeighbours" mapstructure:"gravityNeighbours"`
	MinGravityDistance float64 `json:"minGravityDistance" mapstructure:"minGravityDistance"`
	AssistRange        float64 `json:"assistRange" mapstructure:"assistRange"`

	// Collisions
	CollisionMargin       float64 `json:"collisionMargin" mapstructure:"collisionMargin"`
	AsteroidDamage        float64 `json:"asteroidDamage" mapstructure:"asteroidDamage"`
	AsteroidHitsToDestroy int     `json:"asteroidHitsToDestroy" mapstructure:"asteroidHitsToDestroy"`

	// Attitude (radians per tick)
	RotationSpeed float64 `json:"rotationSpeed" mapstructure:"rotationSpeed"`
	RollSpeed     float64 `json:"rollSpeed" mapstructure:"rollSpeed"`

	// Propulsion
	ForwardEnergyCost   float64 `json:"forwardEnergyCost" mapstructure:"forwardEnergyCost"`
	BackwardEnergyCost  float64 `json:"backwardEnergyCost" mapstructure:"backwardEnergyCost"`
	StrafeEnergyCost    float64 `json:"strafeEnergyCost" mapstructure:"strafeEnergyCost"`
	BackwardMultiplier  float64 `json:"backwardMultiplier" mapstructure:"backwardMultiplier"`
	StrafeMultiplier    float64 `json:"strafeMultiplier" mapstructure:"strafeMultiplier"`
	BoostMultiplier     float64 `json:"boostMultiplier" mapstructure:"boostMultiplier"`
	BoostCostMultiplier float64 `json:"boostCostMultiplier" mapstructure:"boostCostMultiplier"`
	BrakeFactor         float64 `json:"brakeFactor" mapstructure:"brakeFactor"`
	EnergyRegen         float64 `json:"energyRegen" mapstructure:"energyRegen"`

	// Event horizon
	WarningDistance     float64 `json:"warningDistance" mapstructure:"warningDistance"`
	CriticalDistance    float64 `json:"criticalDistance" mapstructure:"criticalDistance"`
	SpiralForce         float64 `json:"spiralForce" mapstructure:"spiralForce"`
	SpiralRoll          float64 `json:"spiralRoll" mapstructure:"spiralRoll"`
	SpiralFrequency     float64 `json:"spiralFrequency" mapstructure:"spiralFrequency"`
	SpiralFlickerChance float64 `json:"spiralFlickerChance" mapstructure:"spiralFlickerChance"`

	// Slingshot
	SlingshotMinEnergy         float64 `json:"slingshotMinEnergy" mapstructure:"slingshotMinEnergy"`
	SlingshotEnergyCost        float64 `json:"slingshotEnergyCost" mapstructure:"slingshotEnergyCost"`
	SlingshotEnergyFloor       float64 `json:"slingshotEnergyFloor" mapstructure:"slingshotEnergyFloor"`
	SlingshotBaseSpeed         float64 `json:"slingshotBaseSpeed" mapstructure:"slingshotBaseSpeed"`
	SlingshotMassRadiusDivisor float64 `json:"slingshotMassRadiusDivisor" mapstructure:"slingshotMassRadiusDivisor"`
	GiantPlanetMass            float64 `json:"giantPlanetMass" mapstructure:"giantPlanetMass"`

	// Emergency warp
	WarpUnlockTier      float64 `json:"warpUnlockTier" mapstructure:"warpUnlockTier"`
	UnlockedMaxVelocity float64 `json:"unlockedMaxVelocity" mapstructure:"unlockedMaxVelocity"`

	// Autopilot
	AutopilotLerp           float64 `json:"autopilotLerp" mapstructure:"autopilotLerp"`
	AutopilotAngleThreshold float64 `json:"autopilotAngleThreshold" mapstructure:"autopilotAngleThreshold"`
	AutopilotThrust         float64 `json:"autopilotThrust" mapstructure:"autopilotThrust"`
	AutopilotForwardBias    float64 `json:"autopilotForwardBias" mapstructure:"autopilotForwardBias"`
	AutopilotEnergyCost     float64 `json:"autopilotEnergyCost" mapstructure:"autopilotEnergyCost"`
	AutopilotEnergyFloor    float64 `json:"autopilotEnergyFloor" mapstructure:"autopilotEnergyFloor"`
	NearFieldDistance       float64 `json:"nearFieldDistance" mapstructure:"nearFieldDistance"`
	ArrivalMargin           float64 `json:"arrivalMargin" mapstructure:"arrivalMargin"`

	// Auto-leveling
	RollIdleDelay  float64 `json:"rollIdleDelay" mapstructure:"rollIdleDelay"`
	PitchIdleDelay float64 `json:"pitchIdleDelay" mapstructure:"pitchIdleDelay"`
	LevelSpeed     float64 `json:"levelSpeed" mapstructure:"levelSpeed"`

	// Damping (per-tick multipliers)
	NormalDamping    float64 `json:"normalDamping" mapstructure:"normalDamping"`
	SlingshotDamping float64 `json:"slingshotDamping" mapstructure:"slingshotDamping"`
	WarpDamping      float64 `json:"warpDamping" mapstructure:"warpDamping"`
}

// DefaultTuning returns the stock flight model
func DefaultTuning() Tuning {
	return Tuning{
		ReferenceStep: 1.0 / 60.0,

		G:                  0.02,
		GravityNeighbours:  10,
		MinGravityDistance: 1,
		AssistRange:        60,

		CollisionMargin:       2,
		AsteroidDamage:        10,
		AsteroidHitsToDestroy: 1,

		RotationSpeed: 0.03,
		RollSpeed:     0.04,

		ForwardEnergyCost:   0.1,
		BackwardEnergyCost:  0.08,
		StrafeEnergyCost:    0.05,
		BackwardMultiplier:  0.6,
		StrafeMultiplier:    0.5,
		BoostMultiplier:     2,
		BoostCostMultiplier: 2.5,
		BrakeFactor:         0.92,
		EnergyRegen:         0.05,

		WarningDistance:     150,
		CriticalDistance:    40,
		SpiralForce:         0.004,
		SpiralRoll:          0.01,
		SpiralFrequency:     3,
		SpiralFlickerChance: 0.05,

		SlingshotMinEnergy:         20,
		SlingshotEnergyCost:        20,
		SlingshotEnergyFloor:       5,
		SlingshotBaseSpeed:         10,
		SlingshotMassRadiusDivisor: 5,
		GiantPlanetMass:            500,

		WarpUnlockTier:      1,
		UnlockedMaxVelocity: 1,

		AutopilotLerp:           0.1,
		AutopilotAngleThreshold: 0.05,
		AutopilotThrust:         1,
		AutopilotForwardBias:    0.75,
		AutopilotEnergyCost:     0.05,
		AutopilotEnergyFloor:    10,
		NearFieldDistance:       80,
		ArrivalMargin:           20,

		RollIdleDelay:  1.5,
		PitchIdleDelay: 2,
		LevelSpeed:     0.05,

		NormalDamping:    0.995,
		SlingshotDamping: 0.999,
		WarpDamping:      1,
	}
}
