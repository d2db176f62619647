package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendatateam/ucli/internal/ui"
)

func TestProgressBar_NilIsNoop(t *testing.T) {
	var bar *ui.ProgressBar

	assert.NoError(t, bar.Add(1))
	assert.NoError(t, bar.Finish())
}

func TestProgressBar_Render(t *testing.T) {
	var buf bytes.Buffer
	bar := ui.NewProgressBarWithWriter(3, "Deleting datasets", &buf)

	require.NoError(t, bar.Add(3))
	require.NoError(t, bar.Finish())

	assert.Contains(t, buf.String(), "Deleting datasets")
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	spin := ui.NewSpinner(&buf, "Fetching datasets")

	spin.Start()
	spin.Stop(true)

	assert.Contains(t, buf.String(), "Fetching datasets...")
	assert.Contains(t, buf.String(), "✔ Fetching datasets (completed in")

	spin.Stop(false)
	assert.NotContains(t, buf.String(), "failed", "stopping twice is ignored")
}

func TestSpinner_NilIsNoop(t *testing.T) {
	var spin *ui.Spinner

	assert.NotPanics(t, func() {
		spin.Start()
		spin.Stop(false)
	})
}
