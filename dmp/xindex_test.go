package dmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXIndexAcrossEquality(t *testing.T) {
	diffs := EditScript{{Equal, "abc"}, {Insert, "1234"}, {Equal, "xyz"}}
	assert.Equal(t, 0, diffs.XIndex(0))
	assert.Equal(t, 2, diffs.XIndex(2))
	// Past the equality, text2 is offset by the insert's length.
	assert.Equal(t, 7, diffs.XIndex(3))
}

func TestXIndexInsideDeletion(t *testing.T) {
	diffs := EditScript{{Equal, "ab"}, {Delete, "cdef"}, {Equal, "gh"}}
	// Any location inside the deleted run maps to where the run starts
	// in text2, since deletions contribute nothing there.
	assert.Equal(t, 2, diffs.XIndex(3))
	assert.Equal(t, 2, diffs.XIndex(5))
}

func TestXIndexEmptyScript(t *testing.T) {
	diffs := EditScript{}
	assert.Equal(t, 0, diffs.XIndex(0))
}
