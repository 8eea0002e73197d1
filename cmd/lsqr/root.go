// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/lsqr/config"
	"github.com/katalvlaran/lsqr/logger"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	v     *viper.Viper
	cfg   *config.Config
	log   *zap.Logger
	runID string
}

// flagKeys binds command-line flags to configuration keys.
var flagKeys = map[string]string{
	"max-iterations": "solver.max_iterations",
	"rmin":           "solver.rmin",
	"partitions":     "parallel.partitions",
	"report":         "output.report",
	"plot":           "output.plot",
	"json":           "log.json",
	"log-level":      "log.level",
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "lsqr",
		Short: "LSQR sparse least-squares solver",
		Long: `lsqr solves min ||Ax - b|| for sparse A with the LSQR algorithm,
optionally with model damping and column-partitioned parallel solves.

Settings come from defaults, an optional TOML file (--config), LSQR_*
environment variables and flags, in increasing precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().String("config", "", "TOML configuration file")

	root.AddCommand(newSolveCmd(a), newVersionCmd())

	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(a.v, path)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Config{JSON: cfg.Log.JSON, Level: cfg.Log.Level, Output: cmd.ErrOrStderr()})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg, a.log, a.runID = cfg, log, uuid.NewString()

	return nil
}
