// Package config handles global configuration loading using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"firestige.xyz/ctbench/internal/core"
)

// GlobalConfig is the top-level static configuration. Maps to the `ctbench:`
// root key in YAML. Positional CLI arguments always win over these values.
type GlobalConfig struct {
	Log    LogConfig    `mapstructure:"log"`
	Engine EngineConfig `mapstructure:"engine"`
	Replay ReplayConfig `mapstructure:"replay"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string           `mapstructure:"level"`  // debug / info / warn / error
	Format  string           `mapstructure:"format"` // json / text
	Outputs LogOutputsConfig `mapstructure:"outputs"`
}

// LogOutputsConfig contains structured log output destinations.
type LogOutputsConfig struct {
	File FileOutputConfig `mapstructure:"file"`
}

// FileOutputConfig configures file log output.
type FileOutputConfig struct {
	Enabled  bool                   `mapstructure:"enabled"`
	Path     string                 `mapstructure:"path"`
	Rotation map[string]interface{} `mapstructure:"rotation"`
}

// EngineConfig configures the built-in tracking engine.
type EngineConfig struct {
	Zone     uint16 `mapstructure:"zone"`      // zone passed on every submission
	MaxConns int    `mapstructure:"max_conns"` // 0 = unlimited
}

// ReplayConfig contains pcap replay defaults.
type ReplayConfig struct {
	BatchSize int    `mapstructure:"batch_size"` // read chunk size
	Filter    string `mapstructure:"filter"`     // default BPF expression, "" = none
}

// Load loads configuration from file. An empty path, or a missing file at
// the default path, yields the defaults: the CLI is fully usable with no
// config at all. Env vars use the CTBENCH_ prefix via the key replacer
// (e.g., key "ctbench.log.level" → env "CTBENCH_LOG_LEVEL").
func Load(path string) (*GlobalConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.CTBench

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configRoot is the top-level wrapper matching the YAML structure `ctbench: ...`.
type configRoot struct {
	CTBench GlobalConfig `mapstructure:"ctbench"`
}

// setDefaults sets default values for configuration. All keys use the
// "ctbench." prefix to match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ctbench.log.level", "info")
	v.SetDefault("ctbench.log.format", "text")
	v.SetDefault("ctbench.log.outputs.file.enabled", false)
	v.SetDefault("ctbench.log.outputs.file.path", "/var/log/ctbench/ctbench.log")

	v.SetDefault("ctbench.engine.zone", 0)
	v.SetDefault("ctbench.engine.max_conns", 0)

	v.SetDefault("ctbench.replay.batch_size", 1)
	v.SetDefault("ctbench.replay.filter", "")
}

// Validate checks the loaded configuration.
func (cfg *GlobalConfig) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug/info/warn/error)", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s (must be json/text)", cfg.Log.Format)
	}
	if cfg.Engine.MaxConns < 0 {
		return fmt.Errorf("engine.max_conns must not be negative, got %d", cfg.Engine.MaxConns)
	}
	if cfg.Replay.BatchSize < 1 || cfg.Replay.BatchSize > core.MaxBurst {
		return fmt.Errorf("replay.batch_size must be between 1 and %d, got %d",
			core.MaxBurst, cfg.Replay.BatchSize)
	}
	return nil
}
