// Package config provides Viper-based configuration loading for the game.
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

// ContentConfig holds the paths of the static content files.
type ContentConfig struct {
	// Enemies is the path to the enemy template YAML file.
	Enemies string `mapstructure:"enemies"`
	// Texts is the path to the narration text YAML file.
	Texts string `mapstructure:"texts"`
	// Assets is the path to the asset manifest YAML file. Empty disables asset lookup.
	Assets string `mapstructure:"assets"`
	// Items is the path to the item stat bonus YAML file. Empty means loot grants no stats.
	Items string `mapstructure:"items"`
}

// HeroConfig holds the hero's starting combat stats.
type HeroConfig struct {
	Health      int `mapstructure:"health"`
	MaxHealth   int `mapstructure:"max_health"`
	Proficiency int `mapstructure:"proficiency"`
	DamageRes   int `mapstructure:"damage_res"`
	DamageBonus int `mapstructure:"damage_bonus"`
}

// SimConfig holds encounter simulation settings.
type SimConfig struct {
	// MaxTurns bounds a single encounter. Zero means unbounded.
	MaxTurns int `mapstructure:"max_turns"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Content ContentConfig `mapstructure:"content"`
	Hero    HeroConfig    `mapstructure:"hero"`
	Sim     SimConfig     `mapstructure:"sim"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateHero(c.Hero); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Sim.MaxTurns < 0 {
		errs = append(errs, fmt.Sprintf("sim.max_turns must be >= 0, got %d", c.Sim.MaxTurns))
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

func validateContent(c ContentConfig) error {
	var errs []string
	if c.Enemies == "" {
		errs = append(errs, "content.enemies must not be empty")
	}
	if c.Texts == "" {
		errs = append(errs, "content.texts must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateHero(h HeroConfig) error {
	var errs []string
	if h.MaxHealth < 1 {
		errs = append(errs, fmt.Sprintf("hero.max_health must be >= 1, got %d", h.MaxHealth))
	}
	if h.Health < 1 {
		errs = append(errs, fmt.Sprintf("hero.health must be >= 1, got %d", h.Health))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with BAGGOBLIN_ prefix
	v.SetEnvPrefix("BAGGOBLIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("content.enemies", "content/enemies.yaml")
	v.SetDefault("content.texts", "content/texts.yaml")
	v.SetDefault("content.assets", "")
	v.SetDefault("content.items", "")

	v.SetDefault("hero.health", 20)
	v.SetDefault("hero.max_health", 20)
	v.SetDefault("hero.proficiency", 3)
	v.SetDefault("hero.damage_res", 2)
	v.SetDefault("hero.damage_bonus", 5)

	v.SetDefault("sim.max_turns", 0)
}
