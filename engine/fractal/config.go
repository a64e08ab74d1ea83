package fractal

import (
	"fmt"
	"io"
	"os"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
)

const (
	// MinDepth is the shallowest supported tree: the root alone.
	MinDepth = 1
	// MaxDepth is the deepest supported tree.
	MaxDepth = 10
	// Branching is the number of children of every non-leaf part.
	Branching = 5
)

// Config describes the shape and randomized behaviour of a fractal.
// Angles are expressed in degrees and speeds in degrees per second; they are converted to radians when parts are created.
type Config struct {
	// Depth is the number of levels in the tree, in [MinDepth, MaxDepth].
	Depth int `toml:"depth"`

	// SagAngleMin and SagAngleMax bound the per-part maximum sag angle in degrees.
	SagAngleMin float32 `toml:"sag_angle_min"`
	SagAngleMax float32 `toml:"sag_angle_max"`

	// SpinSpeedMin and SpinSpeedMax bound the per-part spin speed magnitude in degrees per second.
	SpinSpeedMin float32 `toml:"spin_speed_min"`
	SpinSpeedMax float32 `toml:"spin_speed_max"`

	// ReverseSpinChance is the probability in [0, 1] that a part spins in the negative direction.
	ReverseSpinChance float32 `toml:"reverse_spin_chance"`

	// LevelScaleBase is the factor applied to the uniform scale when descending one level. 0.5 halves the scale per level.
	LevelScaleBase float32 `toml:"level_scale_base"`
}

// DefaultConfig returns the configuration used when none is supplied.
//
// Returns:
//   - Config: a valid default configuration
func DefaultConfig() Config {
	return Config{
		Depth:             4,
		SagAngleMin:       15,
		SagAngleMax:       25,
		SpinSpeedMin:      20,
		SpinSpeedMax:      25,
		ReverseSpinChance: 0.25,
		LevelScaleBase:    0.5,
	}
}

// Validate checks the configuration and returns an error wrapping ErrInvalidConfiguration describing the first problem found.
//
// Returns:
//   - error: nil if the configuration is usable
func (c Config) Validate() error {
	if c.Depth < MinDepth || c.Depth > MaxDepth {
		return fmt.Errorf("%w: depth %d outside [%d, %d]", ErrInvalidConfiguration, c.Depth, MinDepth, MaxDepth)
	}
	fields := []struct {
		name  string
		value float32
	}{
		{"sag_angle_min", c.SagAngleMin},
		{"sag_angle_max", c.SagAngleMax},
		{"spin_speed_min", c.SpinSpeedMin},
		{"spin_speed_max", c.SpinSpeedMax},
		{"reverse_spin_chance", c.ReverseSpinChance},
		{"level_scale_base", c.LevelScaleBase},
	}
	for _, f := range fields {
		if math32.IsNaN(f.value) || math32.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfiguration, f.name)
		}
	}
	if c.SagAngleMin > c.SagAngleMax {
		return fmt.Errorf("%w: sag angle range inverted (%g > %g)", ErrInvalidConfiguration, c.SagAngleMin, c.SagAngleMax)
	}
	if c.SpinSpeedMin > c.SpinSpeedMax {
		return fmt.Errorf("%w: spin speed range inverted (%g > %g)", ErrInvalidConfiguration, c.SpinSpeedMin, c.SpinSpeedMax)
	}
	if c.ReverseSpinChance < 0 || c.ReverseSpinChance > 1 {
		return fmt.Errorf("%w: reverse spin chance %g outside [0, 1]", ErrInvalidConfiguration, c.ReverseSpinChance)
	}
	if c.LevelScaleBase <= 0 {
		return fmt.Errorf("%w: level scale base %g must be positive", ErrInvalidConfiguration, c.LevelScaleBase)
	}
	return nil
}

// LoadConfig decodes a TOML document on top of DefaultConfig and validates the result.
// Keys missing from the document keep their default values; unknown keys are rejected.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - Config: the decoded configuration
//   - error: a decode error or an error wrapping ErrInvalidConfiguration
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode fractal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile opens path and decodes it with LoadConfig.
//
// Parameters:
//   - path: path to a TOML file
//
// Returns:
//   - Config: the decoded configuration
//   - error: an error if the file cannot be opened, decoded or validated
func LoadConfigFile(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open fractal config %s: %w", path, err)
	}
	defer file.Close()
	return LoadConfig(file)
}
