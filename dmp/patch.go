package dmp

import "strings"

// Patch is one hunk of a unified-diff-style change: a run of diffs
// (Patch.Diffs) together with the 0-based start offsets and lengths it
// applies to in the source (Start1/Length1) and resulting
// (Start2/Length2) texts. For every patch after the first that PatchMake
// emits, Start1 counts the patches before it as already applied.
type Patch struct {
	Diffs   EditScript
	Start1  int
	Start2  int
	Length1 int
	Length2 int
}

// PatchMake builds the set of patches needed to turn text1 into text2.
// It accepts the same three call shapes spec.md's JavaScript original
// dispatches over reflection:
//
//   - text1 set, text2 set, diffs nil: diffs are computed from scratch.
//   - text1 set, text2 nil, diffs set: text1 is taken as given, text2 is
//     reconstructed from diffs.
//   - text1 nil, text2 nil, diffs set: both texts are reconstructed from
//     diffs, which must already be against one another.
//
// Any other combination of nil/non-nil arguments fails with
// InvalidCallShape, the one call shape a reflection-based dispatcher
// would have had no case for either.
func (c *Config) PatchMake(text1, text2 *string, diffs EditScript) ([]*Patch, error) {
	const op = "dmp.PatchMake"

	switch {
	case text1 != nil && text2 != nil && diffs == nil:
		diffs = c.DiffMain(*text1, *text2, true)
		if len(diffs) > 2 {
			diffs = cleanupSemantic(diffs)
			diffs = c.cleanupEfficiency(diffs)
		}
	case text1 != nil && text2 == nil && diffs != nil:
		// text1 given directly, text2 implied by diffs.
	case text1 == nil && text2 == nil && diffs != nil:
		reconstructed := diffs.Text1()
		text1 = &reconstructed
	default:
		return nil, newError(InvalidCallShape, op,
			"expected (text1, text2), (text1, diffs), or (diffs) alone")
	}

	if len(diffs) == 0 {
		return nil, nil
	}

	var patches []*Patch
	charCount1, charCount2 := 0, 0
	prepatchText := *text1
	postpatchText := *text1

	patch := &Patch{}
	patchDiffLen := 0

	for i, d := range diffs {
		if patchDiffLen == 0 && d.Kind != Equal {
			patch.Start1 = charCount1
			patch.Start2 = charCount2
		}

		switch d.Kind {
		case Insert:
			patch.Diffs = append(patch.Diffs, d)
			patchDiffLen++
			patch.Length2 += runeLen(d.Text)
			postpatchText = spliceString(postpatchText, charCount2, 0, d.Text)
		case Delete:
			patch.Length1 += runeLen(d.Text)
			patch.Diffs = append(patch.Diffs, d)
			patchDiffLen++
			postpatchText = spliceString(postpatchText, charCount2, runeLen(d.Text), "")
		case Equal:
			if runeLen(d.Text) <= 2*c.PatchMargin && patchDiffLen != 0 && i != len(diffs)-1 {
				patch.Diffs = append(patch.Diffs, d)
				patchDiffLen++
				patch.Length1 += runeLen(d.Text)
				patch.Length2 += runeLen(d.Text)
			}
			if runeLen(d.Text) >= 2*c.PatchMargin && patchDiffLen != 0 {
				c.addContext(patch, prepatchText)
				patches = append(patches, patch)
				patch = &Patch{}
				patchDiffLen = 0
				prepatchText = postpatchText
				charCount1 = charCount2
			}
		}

		if d.Kind != Insert {
			charCount1 += runeLen(d.Text)
		}
		if d.Kind != Delete {
			charCount2 += runeLen(d.Text)
		}
	}

	if patchDiffLen != 0 {
		c.addContext(patch, prepatchText)
		patches = append(patches, patch)
	}

	return patches, nil
}

// addContext surrounds a patch's diffs with equal context taken from
// text. It widens the window by Config.PatchMargin runes on each side
// while the window's text occurs more than once in text and is shorter
// than Config.MatchMaxBits minus two margins, then adds one more
// PatchMargin on each side.
func (c *Config) addContext(patch *Patch, text string) {
	if len(text) == 0 {
		return
	}
	textRunes := []rune(text)

	pattern := textRunes[patch.Start2 : patch.Start2+patch.Length1]
	padding := 0

	for runeIndex(textRunes, pattern) != runeLastIndex(textRunes, pattern) && (c.MatchMaxBits <= 0 || len(pattern) < c.MatchMaxBits-2*c.PatchMargin) {
		padding += c.PatchMargin
		lo := max(0, patch.Start2-padding)
		hi := min(len(textRunes), patch.Start2+patch.Length1+padding)
		pattern = textRunes[lo:hi]
	}
	padding += c.PatchMargin

	prefix := textRunes[max(0, patch.Start2-padding):patch.Start2]
	if len(prefix) > 0 {
		patch.Diffs = append(EditScript{{Equal, string(prefix)}}, patch.Diffs...)
		patch.Start1 -= len(prefix)
		patch.Start2 -= len(prefix)
		patch.Length1 += len(prefix)
		patch.Length2 += len(prefix)
	}

	suffix := textRunes[patch.Start2+patch.Length1 : min(len(textRunes), patch.Start2+patch.Length1+padding)]
	if len(suffix) > 0 {
		patch.Diffs = append(patch.Diffs, Op{Equal, string(suffix)})
		patch.Length1 += len(suffix)
		patch.Length2 += len(suffix)
	}
}

func spliceString(s string, start, deleteCount int, insert string) string {
	r := []rune(s)
	end := min(start+deleteCount, len(r))
	var b []rune
	b = append(b, r[:start]...)
	b = append(b, []rune(insert)...)
	b = append(b, r[end:]...)
	return string(b)
}

// PatchApply applies patches against text in order. Each patch is
// located with MatchMain near its expected position, so
// Config.MatchThreshold and Config.MatchDistance decide whether it is
// found; a patch that cannot be located is skipped. A patch whose source
// text is longer than Config.MatchMaxBits is also skipped when the
// located text differs from it by more than Config.PatchDeleteThreshold
// (Levenshtein distance over length). It returns the resulting text
// together with a bool slice, one entry per patch after patchSplitMax,
// reporting which patches applied.
func (c *Config) PatchApply(patches []*Patch, text string) (string, []bool) {
	if len(patches) == 0 {
		return text, nil
	}

	patches = c.patchDeepCopy(patches)
	nullPadding := c.patchAddPadding(patches)
	text = nullPadding + text + nullPadding
	patches = c.patchSplitMax(patches)

	results := make([]bool, len(patches))
	textRunes := []rune(text)
	delta := 0

	for i, patch := range patches {
		expectedLoc := patch.Start2 + delta
		text1 := patch.Diffs.Text1()
		text1Runes := []rune(text1)
		maxBits := c.MatchMaxBitsOrUnlimited()
		endLoc := -1

		startLoc, _ := c.MatchMain(string(textRunes), string(text1Runes[:min(len(text1Runes), maxBits)]), expectedLoc)
		if startLoc == -1 {
			results[i] = false
			delta -= patch.Length2 - patch.Length1
			continue
		}
		if len(text1Runes) > maxBits {
			tailStart := len(text1Runes) - maxBits
			loc2, _ := c.MatchMain(string(textRunes), string(text1Runes[tailStart:]), expectedLoc+tailStart)
			if loc2 == -1 || loc2 <= startLoc {
				startLoc = -1
			} else {
				endLoc = loc2
			}
		}
		if startLoc == -1 {
			results[i] = false
			delta -= patch.Length2 - patch.Length1
			continue
		}

		var text2 string
		if endLoc == -1 {
			headLen := min(len(text1Runes), maxBits)
			text2 = string(sliceRunes(textRunes, startLoc, startLoc+headLen))
		} else {
			text2 = string(sliceRunes(textRunes, startLoc, min(endLoc+maxBits, len(textRunes))))
		}

		if text1 == text2 {
			textRunes = spliceRunes(textRunes, startLoc, len(text1Runes), []rune(patch.Diffs.Text2()))
			delta = startLoc + runeLen(patch.Diffs.Text2()) - expectedLoc - len(text1Runes)
			results[i] = true
			continue
		}

		diffs := c.DiffMain(text1, text2, false)
		if len(text1Runes) > maxBits && levenshteinRatio(diffs) > c.PatchDeleteThreshold {
			results[i] = false
			delta -= patch.Length2 - patch.Length1
			continue
		}
		diffs = cleanupSemanticLossless(diffs)
		delta = startLoc - expectedLoc
		textRunes = c.patchApplyBlock(textRunes, patch, diffs, startLoc)
		results[i] = true
	}

	return trimRuneAffix(string(textRunes), nullPadding), results
}

// patchDeepCopy returns patches whose Diffs slices don't alias the
// input, so PatchApply's padding/splitting can mutate them freely
// without surprising a caller holding onto the original slice.
func (c *Config) patchDeepCopy(patches []*Patch) []*Patch {
	out := make([]*Patch, len(patches))
	for i, p := range patches {
		cp := *p
		cp.Diffs = append(EditScript{}, p.Diffs...)
		out[i] = &cp
	}
	return out
}

// patchApplyBlock rewrites the matched window of text using patch.Diffs
// against the actual re-diffed text2, splicing insertions/deletions in
// at their re-indexed positions rather than assuming the original patch
// offsets still hold exactly.
func (c *Config) patchApplyBlock(textRunes []rune, patch *Patch, diffs EditScript, startLoc int) []rune {
	index1 := 0
	cursor := startLoc
	var out []rune
	out = append(out, textRunes[:startLoc]...)

	for _, d := range patch.Diffs {
		switch d.Kind {
		case Equal:
			index2 := diffs.XIndex(index1 + runeLen(d.Text))
			index1 += runeLen(d.Text)
			want := startLoc + index2
			if want > cursor {
				out = append(out, textRunes[cursor:min(want, len(textRunes))]...)
				cursor = want
			}
		case Insert:
			index2 := diffs.XIndex(index1)
			insertAt := startLoc + index2
			if insertAt != cursor {
				if insertAt > cursor && insertAt <= len(textRunes) {
					out = append(out, textRunes[cursor:insertAt]...)
					cursor = insertAt
				}
			}
			out = append(out, []rune(d.Text)...)
		case Delete:
			index2Start := diffs.XIndex(index1)
			index1 += runeLen(d.Text)
			index2End := diffs.XIndex(index1)
			from := startLoc + index2Start
			to := startLoc + index2End
			if from > cursor {
				out = append(out, textRunes[cursor:min(from, len(textRunes))]...)
			}
			cursor = max(cursor, min(to, len(textRunes)))
		}
	}
	if cursor < len(textRunes) {
		out = append(out, textRunes[cursor:]...)
	}
	return out
}

func (c *Config) MatchMaxBitsOrUnlimited() int {
	if c.MatchMaxBits <= 0 {
		return 1 << 30
	}
	return c.MatchMaxBits
}

func sliceRunes(r []rune, lo, hi int) []rune {
	lo = clampInt(lo, 0, len(r))
	hi = clampInt(hi, lo, len(r))
	return r[lo:hi]
}

func spliceRunes(r []rune, start, deleteCount int, insert []rune) []rune {
	end := min(start+deleteCount, len(r))
	var out []rune
	out = append(out, r[:start]...)
	out = append(out, insert...)
	out = append(out, r[end:]...)
	return out
}

func levenshteinRatio(diffs EditScript) float64 {
	total := runeLen(diffs.Text1())
	if total == 0 {
		return 0
	}
	return float64(diffs.Levenshtein()) / float64(total)
}

func trimRuneAffix(s, affix string) string {
	s = strings.TrimPrefix(s, affix)
	s = strings.TrimSuffix(s, affix)
	return s
}

// patchAddPadding prepends/appends a block of placeholder runes around
// the text so that patches bordering either edge still have margin
// context to match against, then widens every first/last patch's
// context by that same amount. Returns the padding string used.
func (c *Config) patchAddPadding(patches []*Patch) string {
	paddingLen := c.PatchMargin
	var padding []rune
	for i := 1; i <= paddingLen; i++ {
		padding = append(padding, rune(i))
	}
	nullPadding := string(padding)

	for _, patch := range patches {
		patch.Start1 += paddingLen
		patch.Start2 += paddingLen
	}

	first := patches[0]
	if len(first.Diffs) == 0 || first.Diffs[0].Kind != Equal {
		first.Diffs = append(EditScript{{Equal, nullPadding}}, first.Diffs...)
		first.Start1 -= paddingLen
		first.Start2 -= paddingLen
		first.Length1 += paddingLen
		first.Length2 += paddingLen
	} else if paddingLen > runeLen(first.Diffs[0].Text) {
		extra := paddingLen - runeLen(first.Diffs[0].Text)
		first.Diffs[0].Text = nullPadding[runeLen(first.Diffs[0].Text):] + first.Diffs[0].Text
		first.Start1 -= extra
		first.Start2 -= extra
		first.Length1 += extra
		first.Length2 += extra
	}

	last := patches[len(patches)-1]
	if len(last.Diffs) == 0 || last.Diffs[len(last.Diffs)-1].Kind != Equal {
		last.Diffs = append(last.Diffs, Op{Equal, nullPadding})
		last.Length1 += paddingLen
		last.Length2 += paddingLen
	} else if paddingLen > runeLen(last.Diffs[len(last.Diffs)-1].Text) {
		extra := paddingLen - runeLen(last.Diffs[len(last.Diffs)-1].Text)
		last.Diffs[len(last.Diffs)-1].Text += nullPadding[:extra]
		last.Length1 += extra
		last.Length2 += extra
	}

	return nullPadding
}

// patchSplitMax breaks up any patch whose window would exceed
// Config.MatchMaxBits runes into several smaller patches, each with its
// own margin, since Bitap can't search for a pattern longer than that.
// A deletion longer than twice MatchMaxBits that directly follows a
// fragment's leading context is kept whole, so that fragment stays
// oversize.
func (c *Config) patchSplitMax(patches []*Patch) []*Patch {
	patchSize := c.MatchMaxBitsOrUnlimited()
	if c.MatchMaxBits <= 0 {
		return patches
	}

	var out []*Patch
	for _, bigPatch := range patches {
		if bigPatch.Length1 <= patchSize {
			out = append(out, bigPatch)
			continue
		}

		start1, start2 := bigPatch.Start1, bigPatch.Start2
		precontext := ""
		diffs := bigPatch.Diffs

		for len(diffs) > 0 {
			patch := &Patch{Start1: start1 - runeLen(precontext), Start2: start2 - runeLen(precontext)}
			empty := true
			if precontext != "" {
				patch.Length1, patch.Length2 = runeLen(precontext), runeLen(precontext)
				patch.Diffs = append(patch.Diffs, Op{Equal, precontext})
			}

			for len(diffs) > 0 && patch.Length1 < patchSize-c.PatchMargin {
				d := diffs[0]
				if d.Kind == Insert {
					patch.Length2 += runeLen(d.Text)
					start2 += runeLen(d.Text)
					patch.Diffs = append(patch.Diffs, d)
					diffs = diffs[1:]
					empty = false
				} else if d.Kind == Delete && len(patch.Diffs) == 1 && patch.Diffs[0].Kind == Equal && runeLen(d.Text) > 2*patchSize {
					patchDiffLen := runeLen(d.Text)
					patch.Length1 += patchDiffLen
					start1 += patchDiffLen
					empty = false
					patch.Diffs = append(patch.Diffs, d)
					diffs = diffs[1:]
				} else {
					text := d.Text
					runes := []rune(text)
					room := patchSize - patch.Length1 - c.PatchMargin
					if d.Kind == Delete || room < len(runes) {
						if room < len(runes) {
							text = string(runes[:room])
						}
					}
					runes = []rune(text)
					patch.Length1 += len(runes)
					start1 += len(runes)
					if d.Kind != Delete {
						patch.Length2 += len(runes)
						start2 += len(runes)
					}
					patch.Diffs = append(patch.Diffs, Op{d.Kind, text})
					if text == d.Text {
						diffs = diffs[1:]
					} else {
						diffs[0] = Op{d.Kind, string([]rune(d.Text)[len(runes):])}
					}
					if d.Kind == Delete {
						empty = false
					}
				}
			}

			precontext = tailRunes(patch.Diffs.Text2(), c.PatchMargin)
			postcontextLen := min(c.PatchMargin, runeLen(diffs.Text1()))
			postcontext := string(sliceRunes([]rune(diffs.Text1()), 0, postcontextLen))
			if postcontext != "" {
				patch.Length1 += runeLen(postcontext)
				patch.Length2 += runeLen(postcontext)
				if len(patch.Diffs) > 0 && patch.Diffs[len(patch.Diffs)-1].Kind == Equal {
					patch.Diffs[len(patch.Diffs)-1].Text += postcontext
				} else {
					patch.Diffs = append(patch.Diffs, Op{Equal, postcontext})
				}
			}
			if !empty {
				out = append(out, patch)
			}
		}
	}
	return out
}

func tailRunes(s string, n int) string {
	r := []rune(s)
	if n >= len(r) {
		return s
	}
	return string(r[len(r)-n:])
}

