// SPDX-License-Identifier: MIT

// Package config loads the settings of the lsqr command. Values come, in
// increasing precedence, from the defaults registered by SetDefaults, an
// optional TOML file and LSQR_* environment variables (LSQR_SOLVER_RMIN
// overrides solver.rmin).
package config

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lsqr/logger"
)

// ErrInvalid is returned by Validate for an out-of-range setting.
var ErrInvalid = errors.New("config: invalid value")

// Config is the decoded configuration.
type Config struct {
	Solver   SolverConfig   `mapstructure:"solver"`
	Damping  DampingConfig  `mapstructure:"damping"`
	Parallel ParallelConfig `mapstructure:"parallel"`
	Log      LogConfig      `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
}

// SolverConfig holds the stopping criteria and progress period.
type SolverConfig struct {
	MaxIterations int     `mapstructure:"max_iterations"`
	RMin          float64 `mapstructure:"rmin"`
	LogEvery      int     `mapstructure:"log_every"` // 0 disables progress lines
}

// DampingConfig is used when the problem file carries no [damping] table.
type DampingConfig struct {
	Alpha     float64 `mapstructure:"alpha"` // 0 disables damping
	NormPower float64 `mapstructure:"norm_power"`
	Terms     int     `mapstructure:"terms"`
}

// ParallelConfig sets the number of in-process column partitions.
type ParallelConfig struct {
	Partitions int `mapstructure:"partitions"`
}

// LogConfig selects the log encoder and level.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// OutputConfig names optional output files; "" skips the output.
type OutputConfig struct {
	Plot   string `mapstructure:"plot"`
	Report string `mapstructure:"report"`
}

// Validate checks ranges. The first violation is returned wrapped around
// ErrInvalid.
func (c *Config) Validate() error {
	switch {
	case c.Solver.MaxIterations < 0:
		return invalidf("solver.max_iterations must be >= 0, got %d", c.Solver.MaxIterations)
	case c.Solver.RMin < 0:
		return invalidf("solver.rmin must be >= 0, got %g", c.Solver.RMin)
	case c.Solver.LogEvery < 0:
		return invalidf("solver.log_every must be >= 0, got %d", c.Solver.LogEvery)
	case c.Damping.Alpha < 0:
		return invalidf("damping.alpha must be >= 0, got %g", c.Damping.Alpha)
	case c.Damping.NormPower <= 0:
		return invalidf("damping.norm_power must be > 0, got %g", c.Damping.NormPower)
	case c.Damping.Terms < 1:
		return invalidf("damping.terms must be >= 1, got %d", c.Damping.Terms)
	case c.Parallel.Partitions < 1:
		return invalidf("parallel.partitions must be >= 1, got %d", c.Parallel.Partitions)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w: %w", ErrInvalid, err)
	}

	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}
