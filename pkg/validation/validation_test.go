package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/flight"
)

func TestValidateBodyName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		wantErr     bool
		errContains string
	}{
		{
			name:  "valid simple name",
			input: "Sol",
			want:  "Sol",
		},
		{
			name:  "valid name with spaces and digits",
			input: "Kepler 22b",
			want:  "Kepler 22b",
		},
		{
			name:  "valid name with apostrophe",
			input: "Barnard's Star",
			want:  "Barnard's Star",
		},
		{
			name:  "leading and trailing spaces trimmed",
			input: "  Vega  ",
			want:  "Vega",
		},
		{
			name:        "empty name",
			input:       "",
			wantErr:     true,
			errContains: "cannot be empty",
		},
		{
			name:        "only whitespace",
			input:       "   ",
			wantErr:     true,
			errContains: "cannot be only whitespace",
		},
		{
			name:        "too long name",
			input:       strings.Repeat("a", MaxBodyNameLen+1),
			wantErr:     true,
			errContains: "too long",
		},
		{
			name:        "special characters",
			input:       "Sgr A*",
			wantErr:     true,
			errContains: "invalid characters",
		},
		{
			name:        "control character",
			input:       "Sol\x00b",
			wantErr:     true,
			errContains: "control characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateBodyName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBodyName() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("ValidateBodyName() error = %v, should contain %q", err, tt.errContains)
			}
			if got != tt.want {
				t.Errorf("ValidateBodyName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateSeed(t *testing.T) {
	tests := []struct {
		name    string
		seed    string
		wantErr bool
	}{
		{"empty", "", false},
		{"words", "andromeda run 7", false},
		{"unicode", "étoile", false},
		{"too long", strings.Repeat("x", MaxSeedLen+1), true},
		{"control", "seed\n", true},
		{"invalid utf8", string([]byte{0xff, 0xfe}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeed(tt.seed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSeed(%q) error = %v, wantErr %v", tt.seed, err, tt.wantErr)
			}
		})
	}
}

func TestNumericValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"finite", ValidateFinite("x", 3), false},
		{"nan", ValidateFinite("x", math.NaN()), true},
		{"inf", ValidateFinite("x", math.Inf(-1)), true},
		{"in range", ValidateRange("x", 5, 0, 10), false},
		{"range inclusive", ValidateRange("x", 10, 0, 10), false},
		{"above range", ValidateRange("x", 10.5, 0, 10), true},
		{"range nan", ValidateRange("x", math.NaN(), 0, 10), true},
		{"positive", ValidatePositive("x", 0.1), false},
		{"zero not positive", ValidatePositive("x", 0), true},
		{"zero non negative", ValidateNonNegative("x", 0), false},
		{"negative", ValidateNonNegative("x", -1), true},
		{"factor one", ValidateFactor("x", 1), false},
		{"factor zero", ValidateFactor("x", 0), true},
		{"factor above one", ValidateFactor("x", 1.01), true},
		{"decay", ValidateDecay("x", 0.98), false},
		{"decay one", ValidateDecay("x", 1), true},
		{"decay zero", ValidateDecay("x", 0), true},
		{"vector", ValidateVector("v", mgl64.Vec3{1, 2, 3}), false},
		{"vector nan", ValidateVector("v", mgl64.Vec3{1, math.NaN(), 3}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", tt.err, tt.wantErr)
			}
		})
	}
}

func TestValidateBody(t *testing.T) {
	valid := entity.Body{ID: 1, Mass: 10, Radius: 2, Category: entity.Planet}

	tests := []struct {
		name        string
		mutate      func(*entity.Body)
		wantErr     bool
		errContains string
	}{
		{"valid", func(*entity.Body) {}, false, ""},
		{"black hole threshold", func(b *entity.Body) { b.Category = entity.BlackHole; b.WarpThreshold = 30 }, false, ""},
		{"zero id", func(b *entity.Body) { b.ID = 0 }, true, "reserved"},
		{"unknown category", func(b *entity.Body) { b.Category = "comet" }, true, "unknown body category"},
		{"negative mass", func(b *entity.Body) { b.Mass = -1 }, true, "mass"},
		{"nan position", func(b *entity.Body) { b.Position = mgl64.Vec3{math.NaN(), 0, 0} }, true, "position"},
		{"threshold on planet", func(b *entity.Body) { b.WarpThreshold = 5 }, true, "only applies to black holes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			err := ValidateBody(b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateBody() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("ValidateBody() error = %v, should contain %q", err, tt.errContains)
			}
		})
	}
}

func TestValidateWorld_ReportsEveryProblem(t *testing.T) {
	w := entity.NewWorld([]entity.Body{
		{ID: 1, Mass: 1, Radius: 1, Category: entity.Star},
		{ID: 1, Mass: 1, Radius: 1, Category: entity.Planet},
		{ID: 2, Mass: -5, Radius: 1, Category: entity.Asteroid},
	})

	err := ValidateWorld(w)
	if err == nil {
		t.Fatal("ValidateWorld() expected error")
	}
	for _, want := range []string{"duplicate body id 1", "body 2 mass"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("ValidateWorld() error = %v, should contain %q", err, want)
		}
	}

	if err := ValidateWorld(entity.World{}); err != nil {
		t.Errorf("ValidateWorld(empty) error = %v", err)
	}
}

func TestValidateVesselParams(t *testing.T) {
	valid := entity.VesselParams{
		Mass: 1, ThrustPower: 0.02, MinVelocity: 0.1, MaxVelocity: 0.5, WThrustMultiplier: 1,
		Hull: 100, Energy: 100, SlingshotDuration: 3, SlingshotMaxSpeed: 30, SlingshotInertiaDecay: 0.98,
		WarpBoostDuration: 2, WarpBoostSpeed: 1.2, WarpRegenerationInterval: 60,
		LockMaxDistance: 500, LockSmoothing: 0.1,
	}
	if err := ValidateVesselParams(valid); err != nil {
		t.Fatalf("ValidateVesselParams(valid) error = %v", err)
	}

	bad := valid
	bad.MinVelocity = 2
	bad.Energy = 120
	bad.SlingshotInertiaDecay = 1
	err := ValidateVesselParams(bad)
	if err == nil {
		t.Fatal("ValidateVesselParams() expected error")
	}
	for _, want := range []string{"exceeds maxVelocity", "vessel energy out of range", "vessel slingshotInertiaDecay must be in (0, 1)"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("ValidateVesselParams() error = %v, should contain %q", err, want)
		}
	}
}

func TestValidateTuning(t *testing.T) {
	if err := ValidateTuning(flight.DefaultTuning()); err != nil {
		t.Fatalf("ValidateTuning(default) error = %v", err)
	}

	tests := []struct {
		name        string
		mutate      func(*flight.Tuning)
		errContains string
	}{
		{"zero step", func(tu *flight.Tuning) { tu.ReferenceStep = 0 }, "referenceStep"},
		{"no neighbours", func(tu *flight.Tuning) { tu.GravityNeighbours = 0 }, "gravityNeighbours"},
		{"damping above one", func(tu *flight.Tuning) { tu.NormalDamping = 1.5 }, "normalDamping"},
		{"critical beyond warning", func(tu *flight.Tuning) { tu.CriticalDistance = 500 }, "exceeds warningDistance"},
		{"chance above one", func(tu *flight.Tuning) { tu.SpiralFlickerChance = 2 }, "spiralFlickerChance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := flight.DefaultTuning()
			tt.mutate(&tu)
			err := ValidateTuning(tu)
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("ValidateTuning() error = %v, should contain %q", err, tt.errContains)
			}
		})
	}
}
