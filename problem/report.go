// SPDX-License-Identifier: MIT

package problem

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Report is the TOML document written after a solve.
type Report struct {
	RunID      string    `toml:"run_id"`
	Reason     string    `toml:"reason"`
	Iterations int       `toml:"iterations"`
	Residual   float64   `toml:"residual"`
	Rows       int       `toml:"rows"`
	Nonzeros   int       `toml:"nonzeros"`
	Partitions int       `toml:"partitions"`
	Solution   []float64 `toml:"solution"`
	History    []float64 `toml:"history,omitempty"`
}

// NewReport summarizes o under runID.
func NewReport(runID string, o *Outcome) Report {
	return Report{
		RunID:      runID,
		Reason:     o.Result.Reason.String(),
		Iterations: o.Result.Iterations,
		Residual:   o.Result.Residual,
		Rows:       o.Rows,
		Nonzeros:   o.Nonzeros,
		Partitions: o.Partitions,
		Solution:   o.X,
		History:    o.Result.History,
	}
}

// WriteReport encodes rep as TOML.
func WriteReport(w io.Writer, rep Report) error {
	if err := toml.NewEncoder(w).Encode(rep); err != nil {
		return fmt.Errorf("problem.WriteReport: %w", err)
	}

	return nil
}
