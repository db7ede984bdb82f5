package dmp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchMakeFromTextsThenApply(t *testing.T) {
	c := New()
	text1 := "The quick brown fox jumps over the lazy dog."
	text2 := "The quick brown fox leaps over the lazy dog."

	patches, err := c.PatchMake(&text1, &text2, nil)
	require.NoError(t, err)
	require.NotEmpty(t, patches)

	result, results := c.PatchApply(patches, text1)
	assert.Equal(t, text2, result)
	for _, applied := range results {
		assert.True(t, applied)
	}
}

func TestPatchMakeFromDiffsAlone(t *testing.T) {
	c := New()
	diffs := c.DiffMain("hello there", "hello friend", false)
	patches, err := c.PatchMake(nil, nil, diffs)
	require.NoError(t, err)
	require.NotEmpty(t, patches)

	result, _ := c.PatchApply(patches, diffs.Text1())
	assert.Equal(t, diffs.Text2(), result)
}

func TestPatchMakeInvalidCallShape(t *testing.T) {
	c := New()
	text2 := "b"
	diffs := EditScript{{Equal, "a"}}
	_, err := c.PatchMake(nil, &text2, diffs)
	require.Error(t, err)
	var dmpErr *Error
	require.ErrorAs(t, err, &dmpErr)
	assert.Equal(t, InvalidCallShape, dmpErr.Kind)
}

func TestPatchTextRoundTrip(t *testing.T) {
	c := New()
	text1 := "line one\nline two\nline three\n"
	text2 := "line one\nline TWO\nline three\n"
	patches, err := c.PatchMake(&text1, &text2, nil)
	require.NoError(t, err)

	text := PatchToText(patches)
	parsed, err := PatchFromText(text)
	require.NoError(t, err)
	require.Equal(t, len(patches), len(parsed))

	for i := range patches {
		assert.Equal(t, patches[i].Start1, parsed[i].Start1)
		assert.Equal(t, patches[i].Start2, parsed[i].Start2)
		assert.Equal(t, patches[i].Length1, parsed[i].Length1)
		assert.Equal(t, patches[i].Length2, parsed[i].Length2)
		assert.Equal(t, patches[i].Diffs.Text1(), parsed[i].Diffs.Text1())
		assert.Equal(t, patches[i].Diffs.Text2(), parsed[i].Diffs.Text2())
	}
}

// TestPatchHeaderZeroLengthAsymmetry pins the asymmetry between an
// omitted length (meaning 1) and an explicit ",0" (meaning a genuine
// zero-length run), which matters at the very start of a text.
func TestPatchHeaderZeroLengthAsymmetry(t *testing.T) {
	start, length, err := parsePatchHeaderHalf("5", "")
	require.NoError(t, err)
	assert.Equal(t, 4, start)
	assert.Equal(t, 1, length)

	start, length, err = parsePatchHeaderHalf("5", "0")
	require.NoError(t, err)
	assert.Equal(t, 5, start)
	assert.Equal(t, 0, length)
}

func TestPatchFromTextInvalidHeader(t *testing.T) {
	_, err := PatchFromText("not a header\n")
	require.Error(t, err)
	var dmpErr *Error
	require.ErrorAs(t, err, &dmpErr)
	assert.Equal(t, InvalidPatchHeader, dmpErr.Kind)
}

func TestPatchApplyToleratesDrift(t *testing.T) {
	c := New()
	text1 := "The quick brown fox jumps over the lazy dog."
	text2 := "The quick brown fox leaps over the lazy dog."
	patches, err := c.PatchMake(&text1, &text2, nil)
	require.NoError(t, err)

	// Apply against text1 with an unrelated paragraph prepended: the
	// patch should still locate its context and apply.
	drifted := "An unrelated preamble sentence.\n\n" + text1
	result, results := c.PatchApply(patches, drifted)
	assert.Contains(t, result, "leaps over the lazy dog")
	assert.True(t, results[0])
}

func TestPatchApplyRejectsUnrecognizableContext(t *testing.T) {
	c := New()
	text1 := "The quick brown fox jumps over the lazy dog."
	text2 := "The quick brown fox leaps over the lazy dog."
	patches, err := c.PatchMake(&text1, &text2, nil)
	require.NoError(t, err)

	unrelated := strings.Repeat("completely different content ", 20)
	_, results := c.PatchApply(patches, unrelated)
	assert.False(t, results[0])
}

func TestPatchSplitMaxOnLongDeletion(t *testing.T) {
	c := New()
	c.MatchMaxBits = 32
	text1 := strings.Repeat("x", 100)
	text2 := ""
	patches, err := c.PatchMake(&text1, &text2, nil)
	require.NoError(t, err)
	require.NotEmpty(t, patches)
	for _, p := range patches {
		assert.LessOrEqual(t, p.Length1, c.MatchMaxBits+2*c.PatchMargin)
	}

	result, _ := c.PatchApply(patches, text1)
	assert.Equal(t, text2, result)
}
