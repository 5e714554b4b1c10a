package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Simulation: SimulationConfig{
			Level:     "dojo",
			TickRate:  60,
			Script:    "duelist",
			PrefabDir: "prefabs",
		},
		Display: DisplayConfig{Width: 960, Height: 540, PixelsPerUnit: 32},
	}
}

func TestValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "dojo", cfg.Simulation.Level)
	assert.Equal(t, 60, cfg.Simulation.TickRate)
	assert.InDelta(t, 1.0/60, cfg.Simulation.FixedDelta(), 1e-12)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ronin.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
simulation:
  level: ledge
  tick_rate: 120
  ticks: 600
  watch: true
display:
  width: 640
  height: 360
  pixels_per_unit: 16
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "ledge", cfg.Simulation.Level)
	assert.Equal(t, 120, cfg.Simulation.TickRate)
	assert.Equal(t, 600, cfg.Simulation.Ticks)
	assert.True(t, cfg.Simulation.Watch)
	assert.Equal(t, "duelist", cfg.Simulation.Script)
	assert.Equal(t, 16.0, cfg.Display.PixelsPerUnit)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RONIN_SIMULATION_LEVEL", "ledge")
	t.Setenv("RONIN_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ledge", cfg.Simulation.Level)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/ronin.yaml")
	assert.Error(t, err)
}

func TestValidateReportsEveryViolation(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	cfg.Simulation.TickRate = 0
	cfg.Display.PixelsPerUnit = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
	assert.Contains(t, err.Error(), "simulation.tick_rate")
	assert.Contains(t, err.Error(), "display.pixels_per_unit")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateEmptyLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.Level = ""
	assert.Error(t, cfg.Validate())
}

func TestPropertyTickRateRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rate := rapid.IntRange(-100, 2000).Draw(t, "rate")
		cfg := validConfig()
		cfg.Simulation.TickRate = rate
		err := cfg.Validate()
		if rate >= 1 && rate <= 1000 {
			if err != nil {
				t.Fatalf("rate %d rejected: %v", rate, err)
			}
		} else if err == nil {
			t.Fatalf("rate %d accepted", rate)
		}
	})
}
