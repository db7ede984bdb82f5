package dmp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBisectFindsMinimalSplit(t *testing.T) {
	c := New()
	diffs := c.bisect([]rune("cat"), []rune("map"), time.Time{})
	assert.Equal(t, "cat", diffs.Text1())
	assert.Equal(t, "map", diffs.Text2())
}

func TestBisectDegenerateOnNoOverlap(t *testing.T) {
	c := New()
	diffs := c.bisect([]rune("abc"), []rune("xyz"), time.Time{})
	assert.Equal(t, "abc", diffs.Text1())
	assert.Equal(t, "xyz", diffs.Text2())
}

func TestBisectSplitRecombinesHalves(t *testing.T) {
	c := New()
	text1, text2 := []rune("hello world"), []rune("hello there world")
	diffs := c.bisectSplit(text1, text2, 5, 5, time.Time{})
	assert.Equal(t, string(text1), diffs.Text1())
	assert.Equal(t, string(text2), diffs.Text2())
}
