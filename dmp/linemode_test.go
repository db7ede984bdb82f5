package dmp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLinesToCharsAndBack(t *testing.T) {
	text1 := []rune("alpha\nbeta\ngamma\n")
	text2 := []rune("alpha\ndelta\ngamma\n")

	chars1, _, lineArray := linesToChars(text1, text2)

	roundTripped := charsToLines(EditScript{{Equal, string(chars1)}}, lineArray)
	assert.Equal(t, string(text1), roundTripped.Text1())
}

func TestLinesToCharsSharesCodesForRepeatedLines(t *testing.T) {
	text1 := []rune("same\nsame\nsame\n")
	chars1, _, lineArray := linesToChars(text1, []rune(""))
	assert.Len(t, lineArray, 2) // sentinel + one distinct line
	for _, r := range chars1 {
		assert.Equal(t, chars1[0], r)
	}
}

func TestDiffLineModeMatchesCharMode(t *testing.T) {
	c := New()
	text1 := []rune("one\ntwo\nthree\nfour\n")
	text2 := []rune("one\nTWO\nthree\nfive\n")

	lineDiffs := c.diffLineMode(text1, text2, time.Time{})
	charDiffs := c.diffMainRunes(text1, text2, false, time.Time{})

	assert.Equal(t, string(text1), lineDiffs.Text1())
	assert.Equal(t, string(text2), lineDiffs.Text2())
	assert.Equal(t, charDiffs.Text1(), lineDiffs.Text1())
	assert.Equal(t, charDiffs.Text2(), lineDiffs.Text2())
}
