package main

import (
	"bytes"
	"testing"

	"github.com/plus3/blockmap/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	report, err := run(assets.FS(), 2*phaseTicks*8, 1.0/60)
	require.NoError(t, err)

	assert.Len(t, report.UpdateTime.Samples, 2*phaseTicks*8)
	assert.Positive(t, report.HoverChanges)
	assert.Positive(t, report.TilesVisited)
	assert.Positive(t, report.Misses)
	assert.Equal(t, 3, report.Storage.TotalEntityCount)
	assert.Equal(t, int64(2*phaseTicks*8), report.Scheduler.Systems[0].ExecutionCount)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "# Blockmap Soak Report")
	assert.Contains(t, buf.String(), "| mouse_raycast_system |")
}

func TestScriptCursorLeavesWindow(t *testing.T) {
	report, err := run(assets.FS(), 30, 1.0/60)
	require.NoError(t, err)
	// the first 20 ticks are above and left of the window
	assert.GreaterOrEqual(t, report.Misses, 20)
}
