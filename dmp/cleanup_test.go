package dmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanupMergeCollapsesAdjacentSameKind(t *testing.T) {
	in := EditScript{
		{Equal, "a"}, {Delete, "b"}, {Delete, "c"},
		{Insert, "x"}, {Insert, "y"}, {Equal, "z"},
	}
	out := cleanupMerge(in)
	assert.Equal(t, EditScript{
		{Equal, "a"}, {Delete, "bc"}, {Insert, "xy"}, {Equal, "z"},
	}, out)
}

func TestCleanupMergeFactorsCommonPrefixSuffix(t *testing.T) {
	in := EditScript{{Delete, "abXYZab"}, {Insert, "abCDab"}}
	out := cleanupMerge(in)
	assert.Equal(t, "abXYZab", out.Text1())
	assert.Equal(t, "abCDab", out.Text2())
}

func TestCleanupMergeShiftsEliminateEquality(t *testing.T) {
	// A<ins>BA</ins>C -> <ins>AB</ins>AC
	in := EditScript{{Equal, "a"}, {Insert, "ba"}, {Equal, "c"}}
	out := cleanupMerge(in)
	assert.Equal(t, "ac", out.Text1())
	assert.Equal(t, "abac", out.Text2())
	for i := 1; i < len(out); i++ {
		if out[i-1].Kind == Equal {
			assert.NotEqual(t, Equal, out[i].Kind, "adjacent equalities should have merged")
		}
	}
}

func TestCleanupMergeIsConfluent(t *testing.T) {
	in := EditScript{
		{Delete, "a"}, {Insert, "b"}, {Delete, "c"}, {Insert, "d"}, {Equal, "e"},
	}
	once := cleanupMerge(in)
	twice := cleanupMerge(once)
	assert.Equal(t, once, twice)
}

func TestCleanupSemanticPreservesTexts(t *testing.T) {
	in := EditScript{
		{Delete, "ab"}, {Insert, "12"}, {Equal, "x"}, {Delete, "cd"}, {Insert, "34"},
	}
	out := cleanupSemantic(in)
	assert.Equal(t, in.Text1(), out.Text1())
	assert.Equal(t, in.Text2(), out.Text2())
}

func TestCleanupSemanticEliminatesShortEquality(t *testing.T) {
	in := EditScript{
		{Delete, "The c"}, {Insert, "The e"}, {Equal, "ow"},
		{Delete, " jumped"}, {Insert, " leaped"},
	}
	out := cleanupSemantic(in)
	for _, op := range out {
		if op.Kind == Equal {
			assert.NotEqual(t, "ow", op.Text, "a 2-rune equality flanked by larger edits should be absorbed")
		}
	}
}

func TestCleanupSemanticLosslessPreservesTexts(t *testing.T) {
	in := EditScript{
		{Equal, "The quick brown fox jumped "}, {Delete, "over the"}, {Insert, "around a"}, {Equal, " lazy dog."},
	}
	out := cleanupSemanticLossless(in)
	assert.Equal(t, in.Text1(), out.Text1())
	assert.Equal(t, in.Text2(), out.Text2())
}

func TestCleanupEfficiencyPreservesTexts(t *testing.T) {
	c := New()
	c.DiffEditCost = 4
	in := EditScript{
		{Delete, "ab"}, {Insert, "12"}, {Equal, "wxyz"}, {Delete, "cd"}, {Insert, "34"},
	}
	out := c.cleanupEfficiency(in)
	assert.Equal(t, in.Text1(), out.Text1())
	assert.Equal(t, in.Text2(), out.Text2())
}

func TestBoundaryScoreBlankLineBeatsLineBreak(t *testing.T) {
	blank := boundaryScore([]rune("one\n\n"), []rune("two"))
	lineBreak := boundaryScore([]rune("one\n"), []rune("two"))
	word := boundaryScore([]rune("one "), []rune("two"))
	nothing := boundaryScore([]rune("one"), []rune("two"))
	assert.Greater(t, blank, lineBreak)
	assert.GreaterOrEqual(t, lineBreak, word)
	assert.Greater(t, word, nothing)
}
