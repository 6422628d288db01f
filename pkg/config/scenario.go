package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/opd-ai/go-flightsim/pkg/entity"
)

// Scenario is a named body layout with a matching start position
type Scenario struct {
	Name        string
	Description string
	Start       Vec3Config
	Bodies      []BodyConfig
}

var scenarios = map[string]Scenario{
	"default": {
		Name:        "Default",
		Description: "Star, two planets, an asteroid and a distant black hole",
		Bodies:      defaultBodies(),
	},
	"slingshot_range": {
		Name:        "Slingshot Range",
		Description: "A giant planet inside assist range of the start position",
		Bodies: []BodyConfig{
			{ID: 1, Name: "Titan Major", Category: entity.Planet, Position: Vec3Config{Z: 45}, Mass: 600, Radius: 15},
		},
	},
	"event_horizon": {
		Name:        "Event Horizon",
		Description: "Start inside the warning radius of a black hole",
		Start:       Vec3Config{Z: -120},
		Bodies: []BodyConfig{
			{ID: 1, Name: "Maw", Category: entity.BlackHole, Mass: 4000, Radius: 8, WarpThreshold: 50},
		},
	},
	"asteroid_field": {
		Name:        "Asteroid Field",
		Description: "A line of asteroids straight ahead",
		Bodies: []BodyConfig{
			{ID: 1, Name: "Rock 1", Category: entity.Asteroid, Position: Vec3Config{Z: 30}, Mass: 1, Radius: 2},
			{ID: 2, Name: "Rock 2", Category: entity.Asteroid, Position: Vec3Config{Z: 60}, Mass: 1, Radius: 2},
			{ID: 3, Name: "Rock 3", Category: entity.Asteroid, Position: Vec3Config{Z: 90}, Mass: 1, Radius: 2},
		},
	},
}

// GetScenario returns the named scenario
func GetScenario(name string) (Scenario, bool) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, false
	}
	s.Bodies = slices.Clone(s.Bodies)
	return s, true
}

// ListScenarios returns the scenario names in sorted order
func ListScenarios() []string {
	return slices.Sorted(maps.Keys(scenarios))
}

// ApplyScenario replaces the bodies and start position of cfg
func ApplyScenario(cfg *Config, name string) error {
	s, ok := GetScenario(name)
	if !ok {
		return fmt.Errorf("unknown scenario %q", name)
	}
	cfg.Bodies = s.Bodies
	cfg.Session.Start = s.Start
	return nil
}
