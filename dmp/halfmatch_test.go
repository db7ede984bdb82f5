package dmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHalfMatchFindsLongMiddle(t *testing.T) {
	c := New()
	hm := c.halfMatch([]rune("1234567890"), []rune("a345678z"))
	require.NotNil(t, hm)
	assert.Equal(t, "345678", string(hm.commonMiddle))
	assert.Equal(t, "12", string(hm.text1Prefix))
	assert.Equal(t, "90", string(hm.text1Suffix))
	assert.Equal(t, "a", string(hm.text2Prefix))
	assert.Equal(t, "z", string(hm.text2Suffix))
}

func TestHalfMatchNilWhenNoCandidate(t *testing.T) {
	c := New()
	assert.Nil(t, c.halfMatch([]rune("short"), []rune("nope")))
}

func TestHalfMatchDisabledWithoutTimeout(t *testing.T) {
	c := New()
	c.DiffTimeout = 0
	assert.Nil(t, c.halfMatch([]rune("1234567890"), []rune("a345678z")))
}
