// Package validation checks configuration and world snapshot values before
// they reach the simulation.
package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/flight"
)

// Limits on free-form configuration text
const (
	MaxBodyNameLen = 32
	MaxSeedLen     = 256
)

var validBodyNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.'()]+$`)

// ValidateBodyName validates and trims a body name
func ValidateBodyName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("body name cannot be empty")
	}

	if len(name) > MaxBodyNameLen {
		return "", fmt.Errorf("body name too long: %d characters (max %d)", len(name), MaxBodyNameLen)
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("body name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("body name cannot be only whitespace")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("body name contains control characters")
		}
	}

	if !validBodyNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("body name contains invalid characters (only alphanumeric, spaces, hyphens, underscores, apostrophes and parentheses allowed)")
	}

	return trimmed, nil
}

// ValidateSeed validates the session seed string. An empty seed is allowed
// and means the zero seed.
func ValidateSeed(seed string) error {
	if len(seed) > MaxSeedLen {
		return fmt.Errorf("seed too long: %d bytes (max %d)", len(seed), MaxSeedLen)
	}
	if !utf8.ValidString(seed) {
		return fmt.Errorf("seed contains invalid UTF-8 characters")
	}
	for _, r := range seed {
		if unicode.IsControl(r) {
			return fmt.Errorf("seed contains control characters")
		}
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values
func ValidateFinite(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be finite, got %v", field, value)
	}
	return nil
}

// ValidateRange checks min <= value <= max
func ValidateRange(field string, value, min, max float64) error {
	if err := ValidateFinite(field, value); err != nil {
		return err
	}
	if value < min || value > max {
		return fmt.Errorf("%s out of range: %v (must be between %v and %v)", field, value, min, max)
	}
	return nil
}

// ValidatePositive checks value > 0
func ValidatePositive(field string, value float64) error {
	if err := ValidateFinite(field, value); err != nil {
		return err
	}
	if value <= 0 {
		return fmt.Errorf("%s must be positive, got %v", field, value)
	}
	return nil
}

// ValidateNonNegative checks value >= 0
func ValidateNonNegative(field string, value float64) error {
	if err := ValidateFinite(field, value); err != nil {
		return err
	}
	if value < 0 {
		return fmt.Errorf("%s cannot be negative, got %v", field, value)
	}
	return nil
}

// ValidateFactor checks a per-tick multiplier lies in (0, 1]
func ValidateFactor(field string, value float64) error {
	if err := ValidateFinite(field, value); err != nil {
		return err
	}
	if value <= 0 || value > 1 {
		return fmt.Errorf("%s must be in (0, 1], got %v", field, value)
	}
	return nil
}

// ValidateDecay checks a per-tick decay that must make progress, i.e. lie
// strictly inside (0, 1)
func ValidateDecay(field string, value float64) error {
	if err := ValidateFinite(field, value); err != nil {
		return err
	}
	if value <= 0 || value >= 1 {
		return fmt.Errorf("%s must be in (0, 1), got %v", field, value)
	}
	return nil
}

// ValidateVector rejects vectors with non-finite components
func ValidateVector(field string, v mgl64.Vec3) error {
	for i, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%s[%d] must be finite, got %v", field, i, c)
		}
	}
	return nil
}

// ValidateCategory checks a body category name
func ValidateCategory(c entity.Category) error {
	if !c.Valid() {
		return fmt.Errorf("unknown body category %q (must be star, planet, asteroid or blackhole)", c)
	}
	return nil
}

// ValidateBody checks a single body for values the simulation cannot use
func ValidateBody(b entity.Body) error {
	prefix := fmt.Sprintf("body %d", b.ID)
	errs := []error{
		ValidateCategory(b.Category),
		ValidateVector(prefix+" position", b.Position),
		ValidateNonNegative(prefix+" mass", b.Mass),
		ValidateNonNegative(prefix+" radius", b.Radius),
		ValidateNonNegative(prefix+" warp threshold", b.WarpThreshold),
	}
	if b.ID == 0 {
		errs = append(errs, fmt.Errorf("body id 0 is reserved"))
	}
	if b.WarpThreshold > 0 && b.Category != entity.BlackHole {
		errs = append(errs, fmt.Errorf("%s: warp threshold only applies to black holes", prefix))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid body %d: %w", b.ID, err)
	}
	return nil
}

// ValidateWorld checks every body of a snapshot and rejects duplicate ids
func ValidateWorld(w entity.World) error {
	var errs []error
	seen := make(map[entity.ID]bool, len(w.Bodies))
	for _, b := range w.Bodies {
		if seen[b.ID] {
			errs = append(errs, fmt.Errorf("duplicate body id %d", b.ID))
		}
		seen[b.ID] = true
		errs = append(errs, ValidateBody(b))
	}
	return errors.Join(errs...)
}

// ValidateVesselParams checks the construction parameters of a vessel
func ValidateVesselParams(p entity.VesselParams) error {
	return errors.Join(
		ValidateNonNegative("vessel mass", p.Mass),
		ValidateNonNegative("vessel thrustPower", p.ThrustPower),
		ValidateNonNegative("vessel minVelocity", p.MinVelocity),
		ValidatePositive("vessel maxVelocity", p.MaxVelocity),
		minBelowMax(p.MinVelocity, p.MaxVelocity),
		ValidateNonNegative("vessel wThrustMultiplier", p.WThrustMultiplier),
		ValidateNonNegative("vessel hull", p.Hull),
		ValidateRange("vessel energy", p.Energy, 0, entity.MaxEnergy),
		ValidateNonNegative("vessel slingshotDuration", p.SlingshotDuration),
		ValidatePositive("vessel slingshotMaxSpeed", p.SlingshotMaxSpeed),
		ValidateDecay("vessel slingshotInertiaDecay", p.SlingshotInertiaDecay),
		ValidateNonNegative("vessel warpBoostDuration", p.WarpBoostDuration),
		ValidatePositive("vessel warpBoostSpeed", p.WarpBoostSpeed),
		ValidateNonNegative("vessel warpRegenerationInterval", p.WarpRegenerationInterval),
		ValidateNonNegative("vessel lockMaxDistance", p.LockMaxDistance),
		ValidateRange("vessel lockSmoothing", p.LockSmoothing, 0, 1),
	)
}

func minBelowMax(min, max float64) error {
	if min > max {
		return fmt.Errorf("vessel minVelocity %v exceeds maxVelocity %v", min, max)
	}
	return nil
}

// ValidateTuning checks the flight model constants
func ValidateTuning(t flight.Tuning) error {
	errs := []error{
		ValidatePositive("tuning referenceStep", t.ReferenceStep),
		ValidateNonNegative("tuning g", t.G),
		ValidatePositive("tuning minGravityDistance", t.MinGravityDistance),
		ValidateNonNegative("tuning assistRange", t.AssistRange),
		ValidateNonNegative("tuning collisionMargin", t.CollisionMargin),
		ValidateNonNegative("tuning asteroidDamage", t.AsteroidDamage),
		ValidateNonNegative("tuning rotationSpeed", t.RotationSpeed),
		ValidateNonNegative("tuning rollSpeed", t.RollSpeed),
		ValidateNonNegative("tuning forwardEnergyCost", t.ForwardEnergyCost),
		ValidateNonNegative("tuning backwardEnergyCost", t.BackwardEnergyCost),
		ValidateNonNegative("tuning strafeEnergyCost", t.StrafeEnergyCost),
		ValidateNonNegative("tuning boostMultiplier", t.BoostMultiplier),
		ValidateNonNegative("tuning boostCostMultiplier", t.BoostCostMultiplier),
		ValidateFactor("tuning brakeFactor", t.BrakeFactor),
		ValidateNonNegative("tuning energyRegen", t.EnergyRegen),
		ValidateNonNegative("tuning warningDistance", t.WarningDistance),
		ValidateNonNegative("tuning criticalDistance", t.CriticalDistance),
		ValidateRange("tuning spiralFlickerChance", t.SpiralFlickerChance, 0, 1),
		ValidateRange("tuning slingshotMinEnergy", t.SlingshotMinEnergy, 0, entity.MaxEnergy),
		ValidateRange("tuning slingshotEnergyFloor", t.SlingshotEnergyFloor, 0, entity.MaxEnergy),
		ValidatePositive("tuning slingshotMassRadiusDivisor", t.SlingshotMassRadiusDivisor),
		ValidateRange("tuning autopilotLerp", t.AutopilotLerp, 0, 1),
		ValidateRange("tuning autopilotForwardBias", t.AutopilotForwardBias, 0, 1),
		ValidatePositive("tuning autopilotAngleThreshold", t.AutopilotAngleThreshold),
		ValidateRange("tuning autopilotEnergyFloor", t.AutopilotEnergyFloor, 0, entity.MaxEnergy),
		ValidateRange("tuning levelSpeed", t.LevelSpeed, 0, 1),
		ValidateFactor("tuning normalDamping", t.NormalDamping),
		ValidateFactor("tuning slingshotDamping", t.SlingshotDamping),
		ValidateFactor("tuning warpDamping", t.WarpDamping),
	}
	if t.GravityNeighbours < 1 {
		errs = append(errs, fmt.Errorf("tuning gravityNeighbours must be at least 1, got %d", t.GravityNeighbours))
	}
	if t.AsteroidHitsToDestroy < 1 {
		errs = append(errs, fmt.Errorf("tuning asteroidHitsToDestroy must be at least 1, got %d", t.AsteroidHitsToDestroy))
	}
	if t.CriticalDistance > t.WarningDistance {
		errs = append(errs, fmt.Errorf("tuning criticalDistance %v exceeds warningDistance %v", t.CriticalDistance, t.WarningDistance))
	}
	return errors.Join(errs...)
}
