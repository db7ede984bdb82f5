package dmp

import "github.com/jrc03c/diff-match-patch/unified"

// FormatUnifiedDiff renders a human-readable unified diff between text1
// and text2 at line granularity, independent of Config and of this
// package's rune-level diff engine: it exists for presenting a change
// to a person, not for ToDelta/PatchMake round-tripping.
func FormatUnifiedDiff(text1, text2, fromFile, toFile string, context int) (string, error) {
	return unified.GetUnifiedDiffString(unified.UnifiedDiff{
		A:        unified.SplitLines(text1),
		B:        unified.SplitLines(text2),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  context,
	})
}

// FormatContextDiff renders a human-readable context diff between text1
// and text2, the "*** ... ****" / "--- ... ----" sibling format to
// FormatUnifiedDiff.
func FormatContextDiff(text1, text2, fromFile, toFile string, context int) (string, error) {
	return unified.GetContextDiffString(unified.ContextDiff(unified.UnifiedDiff{
		A:        unified.SplitLines(text1),
		B:        unified.SplitLines(text2),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  context,
	}))
}
