// Package config provides Viper-based configuration loading for the game and
// the headless arena runner.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SimulationConfig selects what runs and how fast.
type SimulationConfig struct {
	// Level is the level prefab name under prefabs/levels.
	Level string `mapstructure:"level"`
	// TickRate is the fixed tick frequency in Hz.
	TickRate int `mapstructure:"tick_rate"`
	// Ticks bounds a headless run. Zero runs until the level resolves.
	Ticks int `mapstructure:"ticks"`
	// Script is the tengo script driving the player in headless runs.
	Script string `mapstructure:"script"`
	// PrefabDir is the on-disk prefab directory preferred over the embedded copy.
	PrefabDir string `mapstructure:"prefab_dir"`
	// Watch rebuilds the arena when a prefab changes.
	Watch bool `mapstructure:"watch"`
}

// FixedDelta is the fixed tick length in seconds.
func (s SimulationConfig) FixedDelta() float64 {
	return 1.0 / float64(s.TickRate)
}

// DisplayConfig holds window settings.
type DisplayConfig struct {
	Width         int     `mapstructure:"width"`
	Height        int     `mapstructure:"height"`
	PixelsPerUnit float64 `mapstructure:"pixels_per_unit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Display    DisplayConfig    `mapstructure:"display"`
}

// Validate checks every setting and reports all violations at once.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDisplay(c.Display); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.Level == "" {
		errs = append(errs, "simulation.level must not be empty")
	}
	if s.TickRate < 1 || s.TickRate > 1000 {
		errs = append(errs, fmt.Sprintf("simulation.tick_rate must be 1-1000, got %d", s.TickRate))
	}
	if s.Ticks < 0 {
		errs = append(errs, fmt.Sprintf("simulation.ticks must be >= 0, got %d", s.Ticks))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateDisplay(d DisplayConfig) error {
	var errs []string
	if d.Width < 1 || d.Height < 1 {
		errs = append(errs, fmt.Sprintf("display size must be positive, got %dx%d", d.Width, d.Height))
	}
	if d.PixelsPerUnit <= 0 {
		errs = append(errs, fmt.Sprintf("display.pixels_per_unit must be > 0, got %v", d.PixelsPerUnit))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from path, applies RONIN_ environment overrides
// and validates the result. An empty path loads defaults and the environment
// only.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("RONIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration Load produces with no file and a clean
// environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("simulation.level", "dojo")
	v.SetDefault("simulation.tick_rate", 60)
	v.SetDefault("simulation.ticks", 0)
	v.SetDefault("simulation.script", "duelist")
	v.SetDefault("simulation.prefab_dir", "prefabs")
	v.SetDefault("simulation.watch", false)

	v.SetDefault("display.width", 960)
	v.SetDefault("display.height", 540)
	v.SetDefault("display.pixels_per_unit", 32)
}
