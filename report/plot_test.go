// SPDX-License-Identifier: MIT
package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lsqr/report"
)

var history = []float64{0.5, 0.1, 1e-4, 1e-9, 0}

func TestConvergencePlot(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"conv.png", "conv.svg"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, report.ConvergencePlot(history, path))
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestWriteConvergence(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.WriteConvergence(&buf, history, "SVG"))
	assert.Contains(t, buf.String(), "<svg")

	buf.Reset()
	require.NoError(t, report.WriteConvergence(&buf, history, "png"))
	assert.Equal(t, []byte("\x89PNG"), buf.Bytes()[:4])
}

func TestErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.ErrorIs(t, report.ConvergencePlot(nil, filepath.Join(dir, "a.png")), report.ErrEmptyHistory)
	require.ErrorIs(t, report.WriteConvergence(&bytes.Buffer{}, []float64{}, "png"), report.ErrEmptyHistory)
	require.Error(t, report.ConvergencePlot(history, filepath.Join(dir, "a.unknown")))
	require.Error(t, report.WriteConvergence(&bytes.Buffer{}, history, "bmp"))
}
