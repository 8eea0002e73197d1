// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LSQR"

// Defaults.
const (
	DefaultMaxIterations = 100
	DefaultRMin          = 1e-13
	DefaultLogEvery      = 10
	DefaultNormPower     = 2.0
	DefaultTerms         = 1
	DefaultPartitions    = 1
	DefaultLogLevel      = "info"
)

// SetDefaults registers the default of every key. Keys without a default are
// invisible to environment overrides, so every field of Config has one.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("solver.max_iterations", DefaultMaxIterations)
	v.SetDefault("solver.rmin", DefaultRMin)
	v.SetDefault("solver.log_every", DefaultLogEvery)

	v.SetDefault("damping.alpha", 0.0)
	v.SetDefault("damping.norm_power", DefaultNormPower)
	v.SetDefault("damping.terms", DefaultTerms)

	v.SetDefault("parallel.partitions", DefaultPartitions)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", DefaultLogLevel)

	v.SetDefault("output.plot", "")
	v.SetDefault("output.report", "")
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	return v
}

// Load reads the TOML file at path (skipped when path is "") into v,
// decodes and validates the result. Command-line flags bound to v before
// the call take precedence over the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
