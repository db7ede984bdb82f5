package dmp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchMainExact(t *testing.T) {
	c := New()
	loc, err := c.MatchMain("abcdef", "cd", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, loc)
}

func TestMatchMainEmptyPattern(t *testing.T) {
	c := New()
	loc, err := c.MatchMain("abcdef", "", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, loc)
}

func TestMatchMainFuzzy(t *testing.T) {
	c := New()
	loc, err := c.MatchMain("I am the very model of a modern major general.", " that berry ", 5)
	require.NoError(t, err)
	assert.Equal(t, 4, loc)
}

func TestMatchMainNoMatchBelowThreshold(t *testing.T) {
	c := New()
	c.MatchThreshold = 0.1
	loc, err := c.MatchMain("I am the very model of a modern major general.", " that berry ", 5)
	require.NoError(t, err)
	assert.Equal(t, -1, loc)
}

func TestMatchMainPatternTooLong(t *testing.T) {
	c := New()
	c.MatchMaxBits = 8
	_, err := c.MatchMain("short text", strings.Repeat("x", 9), 0)
	require.Error(t, err)
	var dmpErr *Error
	require.ErrorAs(t, err, &dmpErr)
	assert.Equal(t, PatternTooLong, dmpErr.Kind)
}

func TestMatchMainUnboundedWhenMaxBitsZero(t *testing.T) {
	c := New()
	c.MatchMaxBits = 0
	pattern := strings.Repeat("needle ", 20) + "found-it"
	text := strings.Repeat("haystack ", 50) + pattern + strings.Repeat("more hay ", 50)
	loc, err := c.MatchMain(text, pattern, 0)
	require.NoError(t, err)
	assert.Equal(t, strings.Index(text, pattern), loc)
}

func TestMatchAlphabet(t *testing.T) {
	alphabet := matchAlphabet([]rune("abc"))
	assert.Equal(t, uint64(0b100), alphabet['a'])
	assert.Equal(t, uint64(0b010), alphabet['b'])
	assert.Equal(t, uint64(0b001), alphabet['c'])
}
