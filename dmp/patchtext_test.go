package dmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchStringFormatsHeaderAndBody(t *testing.T) {
	p := &Patch{
		Diffs:   EditScript{{Equal, "abc"}, {Delete, "d"}, {Insert, "D"}},
		Start1:  4,
		Start2:  4,
		Length1: 4,
		Length2: 4,
	}
	s := p.String()
	assert.Contains(t, s, "@@ -5,4 +5,4 @@")
	assert.Contains(t, s, " abc\n")
	assert.Contains(t, s, "-d\n")
	assert.Contains(t, s, "+D\n")
}

func TestPatchToTextFromTextRoundTrip(t *testing.T) {
	c := New()
	text1 := "Make this little change here and there."
	text2 := "Make this tiny change here and there."
	patches, err := c.PatchMake(&text1, &text2, nil)
	require.NoError(t, err)

	text := PatchToText(patches)
	parsed, err := PatchFromText(text)
	require.NoError(t, err)
	assert.Equal(t, text, PatchToText(parsed))
}

func TestPatchFromTextEmptyYieldsNoPatches(t *testing.T) {
	patches, err := PatchFromText("")
	require.NoError(t, err)
	assert.Empty(t, patches)
}

func TestPatchFromTextRejectsBadEscape(t *testing.T) {
	_, err := PatchFromText("@@ -1,3 +1,3 @@\n+%zz\n")
	require.Error(t, err)
	var dmpErr *Error
	require.ErrorAs(t, err, &dmpErr)
	assert.Equal(t, IllegalEscape, dmpErr.Kind)
}

func TestPatchFromTextRejectsUnknownOpPrefix(t *testing.T) {
	_, err := PatchFromText("@@ -1,3 +1,3 @@\n?abc\n")
	require.Error(t, err)
	var dmpErr *Error
	require.ErrorAs(t, err, &dmpErr)
	assert.Equal(t, InvalidOp, dmpErr.Kind)
}
