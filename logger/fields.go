// SPDX-License-Identifier: MIT

package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for structured logging across lsqr.
const (
	// Identity
	FieldRunID     = "run_id"
	FieldRank      = "rank"
	FieldComponent = "component"

	// Iteration state
	FieldIteration = "iteration"
	FieldResidual  = "residual"
	FieldGradient  = "gradient"
	FieldReason    = "reason"

	// Problem shape
	FieldRows       = "rows"
	FieldColumns    = "columns"
	FieldNonzeros   = "nonzeros"
	FieldPartitions = "partitions"
	FieldOffset     = "offset"
	FieldTotal      = "elements_total"

	// Damping
	FieldAlpha     = "alpha"
	FieldNormPower = "norm_power"

	// Timing and files
	FieldDurationMS = "duration_ms"
	FieldFile       = "file"
)

type contextKey string

const runIDKey contextKey = "logger_run_id"

// WithRunID stores a run identifier in ctx.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunID returns the run identifier stored in ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)

	return id
}

// FromContext returns l with the fields carried by ctx attached.
func FromContext(ctx context.Context, l *zap.Logger) *zap.Logger {
	l = OrNop(l)
	if id := RunID(ctx); id != "" {
		return l.With(zap.String(FieldRunID, id))
	}

	return l
}
