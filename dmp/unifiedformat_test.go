package dmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUnifiedDiffHighlightsChangedLine(t *testing.T) {
	out, err := FormatUnifiedDiff("one\ntwo\nthree\n", "one\nTWO\nthree\n", "before", "after", 1)
	require.NoError(t, err)
	assert.Contains(t, out, "--- before")
	assert.Contains(t, out, "+++ after")
	assert.Contains(t, out, "-two")
	assert.Contains(t, out, "+TWO")
}

func TestFormatContextDiffHighlightsChangedLine(t *testing.T) {
	out, err := FormatContextDiff("one\ntwo\nthree\n", "one\nTWO\nthree\n", "before", "after", 1)
	require.NoError(t, err)
	assert.Contains(t, out, "*** before")
	assert.Contains(t, out, "--- after")
}
