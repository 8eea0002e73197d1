// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lsqr/logger"
	"github.com/katalvlaran/lsqr/problem"
	"github.com/katalvlaran/lsqr/report"
)

func newSolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the least-squares problem in a TOML file",
		Long: `Solve loads a problem file, appends its damping rows (or those of the
[damping] configuration when the file has none), runs LSQR and prints the
solution, one value per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("problem")
			return a.solve(cmd, path)
		},
	}
	f := cmd.Flags()
	f.StringP("problem", "p", "", "problem file (TOML)")
	f.Int("max-iterations", 0, "iteration limit (default from config)")
	f.Float64("rmin", 0, "relative residual target (default from config)")
	f.IntP("partitions", "n", 1, "in-process column partitions")
	f.String("report", "", "write a TOML report to this file")
	f.String("plot", "", "write a convergence chart to this file (.png, .svg, ...)")
	f.Bool("json", false, "JSON log output")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	_ = cmd.MarkFlagRequired("problem")

	return cmd
}

func (a *app) solve(cmd *cobra.Command, path string) error {
	ctx := logger.WithRunID(cmd.Context(), a.runID)
	log := logger.FromContext(ctx, a.log)

	p, err := problem.Load(path)
	if err != nil {
		return err
	}
	if d := a.cfg.Damping; p.Damping == nil && d.Alpha > 0 {
		p.Damping = &problem.Damping{Alpha: d.Alpha, NormPower: d.NormPower, Terms: d.Terms}
	}
	log.Info("problem loaded",
		zap.String(logger.FieldFile, path),
		zap.Int(logger.FieldRows, len(p.Rows)),
		zap.Int(logger.FieldColumns, p.Columns),
		zap.Int(logger.FieldNonzeros, p.Nonzeros()),
	)

	start := time.Now()
	out, err := problem.Run(ctx, p, problem.Settings{
		MaxIterations: a.cfg.Solver.MaxIterations,
		RMin:          a.cfg.Solver.RMin,
		LogEvery:      a.cfg.Solver.LogEvery,
		Partitions:    a.cfg.Parallel.Partitions,
		History:       a.cfg.Output.Plot != "",
		Logger:        a.log,
	})
	if err != nil {
		return err
	}
	log.Info("solve finished",
		zap.Stringer(logger.FieldReason, out.Result.Reason),
		zap.Int(logger.FieldIteration, out.Result.Iterations),
		zap.Float64(logger.FieldResidual, out.Result.Residual),
		zap.Int(logger.FieldPartitions, out.Partitions),
		zap.Int64(logger.FieldDurationMS, time.Since(start).Milliseconds()),
	)

	w := cmd.OutOrStdout()
	for _, v := range out.X {
		fmt.Fprintf(w, "%.15g\n", v)
	}

	if name := a.cfg.Output.Report; name != "" {
		if err = writeReport(name, problem.NewReport(a.runID, out)); err != nil {
			return err
		}
		log.Info("report written", zap.String(logger.FieldFile, name))
	}
	if name := a.cfg.Output.Plot; name != "" {
		if len(out.Result.History) == 0 {
			log.Warn("no iterations ran, convergence chart skipped", zap.String(logger.FieldFile, name))
			return nil
		}
		if err = report.ConvergencePlot(out.Result.History, name); err != nil {
			return err
		}
		log.Info("convergence chart written", zap.String(logger.FieldFile, name))
	}

	return nil
}

func writeReport(name string, rep problem.Report) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = problem.WriteReport(f, rep); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
