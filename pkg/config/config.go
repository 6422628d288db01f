// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"
	"github.com/zeebo/xxh3"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/flight"
	"github.com/opd-ai/go-flightsim/pkg/validation"
)

// EnvPrefix prefixes environment overrides, e.g. FLIGHTSIM_TUNING_G
const EnvPrefix = "FLIGHTSIM"

// Config contains the full configuration of a simulation run
type Config struct {
	Session SessionConfig       `json:"session" mapstructure:"session"`
	Vessel  entity.VesselParams `json:"vessel" mapstructure:"vessel"`
	Tuning  flight.Tuning       `json:"tuning" mapstructure:"tuning"`
	Bodies  []BodyConfig        `json:"bodies" mapstructure:"bodies"`
}

// SessionConfig contains run-level settings
type SessionConfig struct {
	Seed     string `json:"seed" mapstructure:"seed"`
	Ticks    int    `json:"ticks" mapstructure:"ticks"`
	LogLevel string `json:"logLevel" mapstructure:"logLevel"`
	// Step is the dt handed to every tick, in seconds.
	Step  float64    `json:"step" mapstructure:"step"`
	Start Vec3Config `json:"start" mapstructure:"start"`
}

// SeedValue hashes the seed string into the simulator's RNG seed
func (s SessionConfig) SeedValue() uint64 {
	return xxh3.HashString(s.Seed)
}

// Vec3Config is a position in configuration files
type Vec3Config struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
	Z float64 `json:"z" mapstructure:"z"`
}

// Vec3 converts to a vector
func (v Vec3Config) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// BodyConfig contains configuration for a gravitating body
type BodyConfig struct {
	ID            uint64          `json:"id,omitempty" mapstructure:"id"`
	Name          string          `json:"name" mapstructure:"name"`
	Category      entity.Category `json:"category" mapstructure:"category"`
	Position      Vec3Config      `json:"position" mapstructure:"position"`
	Mass          float64         `json:"mass" mapstructure:"mass"`
	Radius        float64         `json:"radius" mapstructure:"radius"`
	WarpThreshold float64         `json:"warpThreshold,omitempty" mapstructure:"warpThreshold"`
}

// Body converts the configuration into a world body
func (b BodyConfig) Body() entity.Body {
	return entity.Body{
		ID:            entity.ID(b.ID),
		Position:      b.Position.Vec3(),
		Mass:          b.Mass,
		Radius:        b.Radius,
		Category:      b.Category,
		WarpThreshold: b.WarpThreshold,
	}
}

// WorldBodies converts the configured bodies, numbering any without an ID
// after the highest explicit one
func (c *Config) WorldBodies() []entity.Body {
	var next uint64
	for _, b := range c.Bodies {
		next = max(next, b.ID)
	}
	bodies := make([]entity.Body, 0, len(c.Bodies))
	for _, bc := range c.Bodies {
		b := bc.Body()
		if b.ID == 0 {
			next++
			b.ID = entity.ID(next)
		}
		bodies = append(bodies, b)
	}
	return bodies
}

// Validate checks the whole configuration, reporting every problem found
func (c *Config) Validate() error {
	errs := []error{
		validation.ValidateSeed(c.Session.Seed),
		validation.ValidatePositive("session step", c.Session.Step),
		validation.ValidateVector("session start", c.Session.Start.Vec3()),
		validation.ValidateVesselParams(c.Vessel),
		validation.ValidateTuning(c.Tuning),
	}
	if c.Session.Ticks < 0 {
		errs = append(errs, fmt.Errorf("session ticks cannot be negative: %d", c.Session.Ticks))
	}
	for i, b := range c.Bodies {
		if _, err := validation.ValidateBodyName(b.Name); err != nil {
			errs = append(errs, fmt.Errorf("bodies[%d]: %w", i, err))
		}
	}
	errs = append(errs, validation.ValidateWorld(entity.NewWorld(c.WorldBodies())))
	return errors.Join(errs...)
}

// LoadConfig loads a configuration file on top of DefaultConfig. The format
// follows the file extension (json, yaml, toml). Any key can be overridden by
// an environment variable such as FLIGHTSIM_TUNING_G or FLIGHTSIM_SESSION_SEED.
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(v)
}

// LoadFromEnv builds a configuration from DefaultConfig and environment
// overrides only
func LoadFromEnv() (*Config, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, "", toMap(DefaultConfig()))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every leaf of m under its dotted key so that
// AutomaticEnv can resolve overrides for it
func setDefaults(v *viper.Viper, prefix string, m map[string]any) {
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := val.(map[string]any); ok {
			setDefaults(v, key, nested)
			continue
		}
		v.SetDefault(key, val)
	}
}

func toMap(cfg *Config) map[string]any {
	data, err := json.Marshal(cfg)
	if err != nil {
		panic(fmt.Sprintf("config: marshal defaults: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		panic(fmt.Sprintf("config: unmarshal defaults: %v", err))
	}
	return m
}

// SaveConfig saves a configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return fmt.Errorf("cannot save nil config")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock configuration: a small system with one star,
// two planets, an asteroid and a distant black hole
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			Seed:     "flightsim",
			Ticks:    3600,
			LogLevel: "info",
			Step:     1.0 / 60.0,
		},
		Vessel: entity.VesselParams{
			Mass:                     1,
			ThrustPower:              0.02,
			MinVelocity:              0.1,
			MaxVelocity:              0.5,
			WThrustMultiplier:        1.5,
			Hull:                     100,
			Energy:                   100,
			AutoLevel:                true,
			SlingshotDuration:        3,
			SlingshotMaxSpeed:        30,
			SlingshotInertiaDecay:    0.98,
			WarpBoostDuration:        2,
			WarpBoostSpeed:           1.2,
			WarpRegenerationInterval: 60,
			LockMaxDistance:          2000,
			LockSmoothing:            0.1,
		},
		Tuning: flight.DefaultTuning(),
		Bodies: defaultBodies(),
	}
}

func defaultBodies() []BodyConfig {
	return []BodyConfig{
		{ID: 1, Name: "Sol", Category: entity.Star, Position: Vec3Config{Z: 1200}, Mass: 2000, Radius: 40},
		{ID: 2, Name: "Terra", Category: entity.Planet, Position: Vec3Config{X: 300, Z: 600}, Mass: 120, Radius: 12},
		{ID: 3, Name: "Jove", Category: entity.Planet, Position: Vec3Config{X: -500, Y: 40, Z: 900}, Mass: 800, Radius: 25},
		{ID: 4, Name: "Ceres", Category: entity.Asteroid, Position: Vec3Config{X: 20, Z: 250}, Mass: 2, Radius: 3},
		{ID: 5, Name: "Abyss", Category: entity.BlackHole, Position: Vec3Config{X: 1500, Z: 2500}, Mass: 5000, Radius: 10, WarpThreshold: 60},
	}
}
