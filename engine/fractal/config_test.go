package fractal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"min depth", func(c *Config) { c.Depth = MinDepth }, true},
		{"max depth", func(c *Config) { c.Depth = MaxDepth }, true},
		{"zero depth", func(c *Config) { c.Depth = 0 }, false},
		{"depth too large", func(c *Config) { c.Depth = MaxDepth + 1 }, false},
		{"equal sag range", func(c *Config) { c.SagAngleMin, c.SagAngleMax = 20, 20 }, true},
		{"inverted sag range", func(c *Config) { c.SagAngleMin, c.SagAngleMax = 30, 10 }, false},
		{"inverted spin range", func(c *Config) { c.SpinSpeedMin, c.SpinSpeedMax = 30, 10 }, false},
		{"NaN sag", func(c *Config) { c.SagAngleMax = math32.NaN() }, false},
		{"infinite spin", func(c *Config) { c.SpinSpeedMax = math32.Inf(1) }, false},
		{"chance zero", func(c *Config) { c.ReverseSpinChance = 0 }, true},
		{"chance one", func(c *Config) { c.ReverseSpinChance = 1 }, true},
		{"negative chance", func(c *Config) { c.ReverseSpinChance = -0.1 }, false},
		{"chance above one", func(c *Config) { c.ReverseSpinChance = 1.1 }, false},
		{"zero scale base", func(c *Config) { c.LevelScaleBase = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
			}
		})
	}
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader("depth = 6\nreverse_spin_chance = 0.5\n"))
	require.NoError(t, err)

	want := DefaultConfig()
	want.Depth = 6
	want.ReverseSpinChance = 0.5
	assert.Equal(t, want, cfg)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("depth = 3\nbranches = 7\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfiguration)
}

func TestLoadConfigValidates(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("depth = 11\n"))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fractal.toml")
	require.NoError(t, os.WriteFile(path, []byte("depth = 2\nsag_angle_min = 5.0\nsag_angle_max = 10.0\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Depth)
	assert.Equal(t, float32(5), cfg.SagAngleMin)
	assert.Equal(t, float32(10), cfg.SagAngleMax)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
