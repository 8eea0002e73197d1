// SPDX-License-Identifier: MIT

// Package problem reads least-squares problems from TOML files, builds the
// (column-partitioned) sparse system and runs damping and the solver over it.
//
// File layout:
//
//	columns = 3
//	rhs     = [1.0, 0.0]
//
//	[[rows]]
//	columns = [0, 1]
//	values  = [1.0, 1.0]
//
//	[[rows]]
//	columns = [0, 1, 2]
//	values  = [2.0, 1.0, -1.0]
//
//	[damping]          # optional
//	alpha      = 1e-6
//	norm_power = 2.0   # default 2
//	terms      = 1     # default 1
//	model      = [0.0, 0.0, 0.0]   # optional, len = columns
//	model_ref  = [0.5, 0.5, 0.5]   # optional
//	weight     = [1.0, 1.0, 1.0]   # optional
//
// Repeated column indices inside a row are kept as separate entries and add
// up in products.
package problem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrInvalid is returned by Validate and Decode for malformed problems.
	ErrInvalid = errors.New("problem: invalid problem")

	// ErrPartitions is returned by Run when there are more partitions than
	// columns.
	ErrPartitions = errors.New("problem: more partitions than columns")
)

// Problem is a decoded problem file.
type Problem struct {
	Columns int       `toml:"columns"`
	RHS     []float64 `toml:"rhs"`
	Rows    []Row     `toml:"rows"`
	Damping *Damping  `toml:"damping"`
}

// Row lists the stored entries of one matrix row.
type Row struct {
	Columns []int     `toml:"columns"`
	Values  []float64 `toml:"values"`
}

// Damping describes the damping rows appended before solving. Empty
// vectors take the damping package defaults (model 0, reference 0,
// weight 1).
type Damping struct {
	Alpha     float64   `toml:"alpha"`
	NormPower float64   `toml:"norm_power"`
	Terms     int       `toml:"terms"`
	Model     []float64 `toml:"model"`
	ModelRef  []float64 `toml:"model_ref"`
	Weight    []float64 `toml:"weight"`
}

// Nonzeros returns the number of entries listed in the rows.
func (p *Problem) Nonzeros() int {
	n := 0
	for _, r := range p.Rows {
		n += len(r.Values)
	}

	return n
}

// Decode reads a problem from r, fills damping defaults and validates it.
// Unknown keys are rejected.
func Decode(r io.Reader) (*Problem, error) {
	var p Problem
	md, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return nil, fmt.Errorf("problem.Decode: %w", err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}

		return nil, fmt.Errorf("problem.Decode: unknown keys %s: %w", strings.Join(keys, ", "), ErrInvalid)
	}
	if d := p.Damping; d != nil {
		if d.NormPower == 0 {
			d.NormPower = 2
		}
		if d.Terms == 0 {
			d.Terms = 1
		}
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Load decodes the problem file at path.
func Load(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("problem.Load: %w", err)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Validate checks shapes and index ranges.
func (p *Problem) Validate() error {
	if p.Columns <= 0 {
		return invalidf("columns must be > 0, got %d", p.Columns)
	}
	if len(p.Rows) == 0 {
		return invalidf("no rows")
	}
	if len(p.RHS) != len(p.Rows) {
		return invalidf("rhs has %d values for %d rows", len(p.RHS), len(p.Rows))
	}
	for i, r := range p.Rows {
		if len(r.Columns) != len(r.Values) {
			return invalidf("row %d: %d columns, %d values", i, len(r.Columns), len(r.Values))
		}
		for _, c := range r.Columns {
			if c < 0 || c >= p.Columns {
				return invalidf("row %d: column %d out of range [0,%d)", i, c, p.Columns)
			}
		}
	}
	if d := p.Damping; d != nil {
		switch {
		case d.Alpha < 0:
			return invalidf("damping.alpha must be >= 0, got %g", d.Alpha)
		case d.NormPower <= 0:
			return invalidf("damping.norm_power must be > 0, got %g", d.NormPower)
		case d.Terms < 1:
			return invalidf("damping.terms must be >= 1, got %d", d.Terms)
		}
		for _, v := range []struct {
			name string
			vals []float64
		}{{"model", d.Model}, {"model_ref", d.ModelRef}, {"weight", d.Weight}} {
			if len(v.vals) != 0 && len(v.vals) != p.Columns {
				return invalidf("damping.%s has %d values, want %d", v.name, len(v.vals), p.Columns)
			}
		}
	}

	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}
