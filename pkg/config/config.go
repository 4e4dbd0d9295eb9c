package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/pomodoro/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema

// Config holds the application configuration
type Config struct {
	Limits   LimitsConfig   `yaml:"limits" json:"limits" jsonschema:"description=Duration bounds in minutes"`
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults" jsonschema:"description=Durations used when settings are missing or invalid"`

	History struct {
		MaxRatings int `yaml:"max_ratings" json:"max_ratings" jsonschema:"default=10,minimum=1,description=Number of most recent ratings kept"`
	} `yaml:"history" json:"history" jsonschema:"description=Rating history configuration"`

	Adapt AdaptConfig `yaml:"adapt" json:"adapt" jsonschema:"description=Adaptive adjustment rules"`

	Timer struct {
		Tick time.Duration `yaml:"tick" json:"tick" jsonschema:"default=1s,description=Wall-clock length of one countdown second; lower it to speed sessions up"`
	} `yaml:"timer" json:"timer" jsonschema:"description=Countdown configuration"`
}

// LimitsConfig holds duration bounds
type LimitsConfig struct {
	MinWork  int `yaml:"min_work" json:"min_work" jsonschema:"default=10,minimum=1,description=Minimum work minutes"`
	MaxWork  int `yaml:"max_work" json:"max_work" jsonschema:"default=60,description=Maximum work minutes"`
	MinBreak int `yaml:"min_break" json:"min_break" jsonschema:"default=3,minimum=1,description=Minimum break minutes"`
	MaxBreak int `yaml:"max_break" json:"max_break" jsonschema:"default=20,description=Maximum break minutes"`
}

// DefaultsConfig holds default durations
type DefaultsConfig struct {
	Work  int `yaml:"work" json:"work" jsonschema:"default=25,description=Default work minutes"`
	Break int `yaml:"break" json:"break" jsonschema:"default=5,description=Default break minutes"`
}

// AdaptConfig holds thresholds and steps of the adaptive rules
type AdaptConfig struct {
	HighThreshold float64 `yaml:"high_threshold" json:"high_threshold" jsonschema:"default=4.0,minimum=1,maximum=5,description=Average at or above which work grows"`
	LowThreshold  float64 `yaml:"low_threshold" json:"low_threshold" jsonschema:"default=2.5,minimum=1,maximum=5,description=Average at or below which work shrinks"`
	WorkStep      int     `yaml:"work_step" json:"work_step" jsonschema:"default=5,minimum=1,description=Work minutes added or removed per adjustment"`
	BreakStep     int     `yaml:"break_step" json:"break_step" jsonschema:"default=1,minimum=1,description=Break minutes added or removed per adjustment"`
}

// Default returns configuration with all defaults set, used when no config file is given
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// set defaults for limits
	if cfg.Limits.MinWork == 0 {
		cfg.Limits.MinWork = domain.MinWorkMinutes
	}
	if cfg.Limits.MaxWork == 0 {
		cfg.Limits.MaxWork = domain.MaxWorkMinutes
	}
	if cfg.Limits.MinBreak == 0 {
		cfg.Limits.MinBreak = domain.MinBreakMinutes
	}
	if cfg.Limits.MaxBreak == 0 {
		cfg.Limits.MaxBreak = domain.MaxBreakMinutes
	}

	// set defaults for default durations
	if cfg.Defaults.Work == 0 {
		cfg.Defaults.Work = domain.DefaultWorkMinutes
	}
	if cfg.Defaults.Break == 0 {
		cfg.Defaults.Break = domain.DefaultBreakMinutes
	}

	if cfg.History.MaxRatings == 0 {
		cfg.History.MaxRatings = domain.MaxRatingHistory
	}

	// set defaults for adaptive rules
	if cfg.Adapt.HighThreshold == 0 {
		cfg.Adapt.HighThreshold = 4.0
	}
	if cfg.Adapt.LowThreshold == 0 {
		cfg.Adapt.LowThreshold = 2.5
	}
	if cfg.Adapt.WorkStep == 0 {
		cfg.Adapt.WorkStep = 5
	}
	if cfg.Adapt.BreakStep == 0 {
		cfg.Adapt.BreakStep = 1
	}

	if cfg.Timer.Tick == 0 {
		cfg.Timer.Tick = time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Limits.MinWork < 1 || cfg.Limits.MinWork > cfg.Limits.MaxWork {
		return fmt.Errorf("limits.min_work must be positive and not above limits.max_work")
	}
	if cfg.Limits.MinBreak < 1 || cfg.Limits.MinBreak > cfg.Limits.MaxBreak {
		return fmt.Errorf("limits.min_break must be positive and not above limits.max_break")
	}
	if cfg.Defaults.Work < cfg.Limits.MinWork || cfg.Defaults.Work > cfg.Limits.MaxWork {
		return fmt.Errorf("defaults.work must be between %d and %d", cfg.Limits.MinWork, cfg.Limits.MaxWork)
	}
	if cfg.Defaults.Break < cfg.Limits.MinBreak || cfg.Defaults.Break > cfg.Limits.MaxBreak {
		return fmt.Errorf("defaults.break must be between %d and %d", cfg.Limits.MinBreak, cfg.Limits.MaxBreak)
	}
	if cfg.History.MaxRatings < 1 {
		return fmt.Errorf("history.max_ratings must be at least 1")
	}
	if cfg.Adapt.LowThreshold >= cfg.Adapt.HighThreshold {
		return fmt.Errorf("adapt.low_threshold must be below adapt.high_threshold")
	}
	if cfg.Adapt.LowThreshold < domain.MinRating || cfg.Adapt.HighThreshold > domain.MaxRating {
		return fmt.Errorf("adapt thresholds must be between %d and %d", domain.MinRating, domain.MaxRating)
	}
	if cfg.Adapt.WorkStep < 1 || cfg.Adapt.BreakStep < 1 {
		return fmt.Errorf("adapt steps must be at least 1")
	}
	if cfg.Timer.Tick < time.Millisecond {
		return fmt.Errorf("timer.tick must be at least 1ms")
	}
	return nil
}
