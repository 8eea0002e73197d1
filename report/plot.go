// SPDX-License-Identifier: MIT

// Package report renders the residual history of a solve as a chart.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrEmptyHistory is returned when there is nothing to plot.
var ErrEmptyHistory = errors.New("report: empty residual history")

// Chart size.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// floor replaces residuals of exactly 0 so their logarithm stays finite.
const floor = 1e-300

// newPlot builds the log10(residual) vs iteration line chart.
func newPlot(history []float64) (*plot.Plot, error) {
	if len(history) == 0 {
		return nil, ErrEmptyHistory
	}
	pts := make(plotter.XYs, len(history))
	for i, r := range history {
		pts[i].X = float64(i + 1)
		pts[i].Y = math.Log10(math.Max(r, floor))
	}

	p := plot.New()
	p.Title.Text = "LSQR convergence"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "log10 relative residual"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	p.Add(plotter.NewGrid(), line)

	return p, nil
}

// ConvergencePlot writes the chart of history to path. The image format
// follows the file extension (png, svg, pdf, ...).
func ConvergencePlot(history []float64, path string) error {
	p, err := newPlot(history)
	if err != nil {
		return fmt.Errorf("report.ConvergencePlot: %w", err)
	}
	if err = p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("report.ConvergencePlot(%s): %w", filepath.Base(path), err)
	}

	return nil
}

// WriteConvergence writes the chart of history to w in format ("png",
// "svg", ...).
func WriteConvergence(w io.Writer, history []float64, format string) error {
	p, err := newPlot(history)
	if err != nil {
		return fmt.Errorf("report.WriteConvergence: %w", err)
	}
	wt, err := p.WriterTo(Width, Height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("report.WriteConvergence: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("report.WriteConvergence: %w", err)
	}

	return nil
}
