package dmp

import (
	"regexp"
	"strings"
)

// cleanupMerge reorders and merges adjacent equal/insert/delete runs,
// producing the smallest edit script that still reconstructs text2 from
// text1 given the same set of operations.
//
// sergi's port expresses the post-merge "shift isolated edits sideways"
// step as a self-recursive call back into the whole function. This is
// restructured as an explicit loop: the grouping and prefix/suffix
// factoring pass and the shift pass run in turn until a shift pass
// changes nothing.
func cleanupMerge(diffs EditScript) EditScript {
	for {
		diffs = cleanupMergeCollapse(diffs)
		var changed bool
		diffs, changed = cleanupMergeShift(diffs)
		if !changed {
			return diffs
		}
	}
}

func cleanupMergeCollapse(diffs EditScript) EditScript {
	diffs = append(EditScript{}, diffs...)
	diffs = append(diffs, Op{Equal, ""}) // Sentinel flushes a trailing run.

	pointer := 0
	countDelete, countInsert := 0, 0
	var textDelete, textInsert []rune

	for pointer < len(diffs) {
		if pointer < len(diffs)-1 && diffs[pointer].Text == "" {
			diffs = append(diffs[:pointer], diffs[pointer+1:]...)
			continue
		}
		switch diffs[pointer].Kind {
		case Insert:
			countInsert++
			textInsert = append(textInsert, []rune(diffs[pointer].Text)...)
			pointer++
		case Delete:
			countDelete++
			textDelete = append(textDelete, []rune(diffs[pointer].Text)...)
			pointer++
		case Equal:
			if countDelete+countInsert > 1 {
				if countDelete != 0 && countInsert != 0 {
					if commonLen := commonPrefixLen(textInsert, textDelete); commonLen != 0 {
						x := pointer - countDelete - countInsert
						if x > 0 && diffs[x-1].Kind == Equal {
							diffs[x-1].Text += string(textInsert[:commonLen])
						} else {
							diffs = append(EditScript{{Equal, string(textInsert[:commonLen])}}, diffs...)
							pointer++
						}
						textInsert = textInsert[commonLen:]
						textDelete = textDelete[commonLen:]
					}
					if commonLen := commonSuffixLen(textInsert, textDelete); commonLen != 0 {
						insertIdx := len(textInsert) - commonLen
						deleteIdx := len(textDelete) - commonLen
						diffs[pointer].Text = string(textInsert[insertIdx:]) + diffs[pointer].Text
						textInsert = textInsert[:insertIdx]
						textDelete = textDelete[:deleteIdx]
					}
				}

				var replacement EditScript
				if len(textDelete) > 0 {
					replacement = append(replacement, Op{Delete, string(textDelete)})
				}
				if len(textInsert) > 0 {
					replacement = append(replacement, Op{Insert, string(textInsert)})
				}
				start := pointer - countDelete - countInsert
				tail := append(EditScript{}, diffs[pointer:]...)
				diffs = append(append(diffs[:start], replacement...), tail...)
				pointer = start + len(replacement) + 1
			} else if pointer != 0 && diffs[pointer-1].Kind == Equal {
				diffs[pointer-1].Text += diffs[pointer].Text
				diffs = append(diffs[:pointer], diffs[pointer+1:]...)
			} else {
				pointer++
			}
			countDelete, countInsert = 0, 0
			textDelete, textInsert = nil, nil
		}
	}

	if n := len(diffs); n > 0 && diffs[n-1].Text == "" {
		diffs = diffs[:n-1]
	}
	return diffs
}

// cleanupMergeShift looks for a single edit sandwiched between two
// equalities where the edit's text shares a boundary with one of the
// equalities, and shifts it across so the equality can absorb it. For
// example A<ins>BA</ins>C becomes <ins>AB</ins>AC. Doing this can expose
// a new pair for the next cleanupMergeCollapse pass to merge, or a new
// shift opportunity, so the caller loops until it reports no change.
func cleanupMergeShift(diffs EditScript) (EditScript, bool) {
	diffs = append(EditScript{}, diffs...)
	changed := false

	pointer := 1
	for pointer < len(diffs)-1 {
		if diffs[pointer-1].Kind == Equal && diffs[pointer+1].Kind == Equal {
			edit, prev, next := diffs[pointer], diffs[pointer-1], diffs[pointer+1]
			switch {
			case strings.HasSuffix(edit.Text, prev.Text):
				diffs[pointer].Text = prev.Text + edit.Text[:len(edit.Text)-len(prev.Text)]
				diffs[pointer+1].Text = prev.Text + next.Text
				diffs = append(diffs[:pointer-1], diffs[pointer:]...)
				changed = true
				continue
			case strings.HasPrefix(edit.Text, next.Text):
				diffs[pointer-1].Text = prev.Text + next.Text
				diffs[pointer].Text = edit.Text[len(next.Text):] + next.Text
				diffs = append(diffs[:pointer+1], diffs[pointer+2:]...)
				changed = true
				continue
			}
		}
		pointer++
	}
	return diffs, changed
}

// cleanupSemantic reduces the number of edits by sacrificing some
// minimality in favour of human-legible groupings: it turns each equality
// no longer than the edits on both sides of it into a delete plus an
// insert, merges the result, slides the remaining edits onto natural
// boundaries (cleanupSemanticLossless), and splits large overlaps between
// an adjacent delete and insert out as equalities
// (cleanupSemanticOverlap).
func cleanupSemantic(diffs EditScript) EditScript {
	if len(diffs) == 0 {
		return diffs
	}
	diffs = append(EditScript{}, diffs...)

	var equalityIndices []int
	lastEquality := ""
	changed := false
	pointer := 0
	insBefore, delBefore := 0, 0
	insAfter, delAfter := 0, 0

	for pointer < len(diffs) {
		if diffs[pointer].Kind == Equal {
			equalityIndices = append(equalityIndices, pointer)
			insBefore, insAfter = insAfter, 0
			delBefore, delAfter = delAfter, 0
			lastEquality = diffs[pointer].Text
		} else {
			if diffs[pointer].Kind == Insert {
				insAfter += runeLen(diffs[pointer].Text)
			} else {
				delAfter += runeLen(diffs[pointer].Text)
			}
			if lastEquality != "" &&
				runeLen(lastEquality) <= max(insBefore, delBefore) &&
				runeLen(lastEquality) <= max(insAfter, delAfter) {
				insertAt := equalityIndices[len(equalityIndices)-1]
				diffs = spliceOps(diffs, insertAt, 1, EditScript{
					{Delete, lastEquality},
					{Insert, lastEquality},
				})
				equalityIndices = equalityIndices[:len(equalityIndices)-1]
				if len(equalityIndices) > 0 {
					equalityIndices = equalityIndices[:len(equalityIndices)-1]
				}
				changed = true
				if len(equalityIndices) > 0 {
					pointer = equalityIndices[len(equalityIndices)-1]
				} else {
					pointer = -1
				}
				insBefore, delBefore, insAfter, delAfter = 0, 0, 0, 0
				lastEquality = ""
			}
		}
		pointer++
	}

	if changed {
		diffs = cleanupMerge(diffs)
	}
	diffs = cleanupSemanticLossless(diffs)
	diffs = cleanupSemanticOverlap(diffs)
	return diffs
}

// cleanupSemanticOverlap removes gratuitously overlapping edits: a
// delete immediately followed by an insert where the tail of the
// deletion equals the head of the insertion is rewritten as delete,
// equal, insert; where the tail of the insertion equals the head of the
// deletion it becomes insert, equal, delete. The overlap is split out
// only when it is at least half as long as the deletion or the insertion.
func cleanupSemanticOverlap(diffs EditScript) EditScript {
	diffs = append(EditScript{}, diffs...)
	pointer := 1
	for pointer < len(diffs) {
		if diffs[pointer-1].Kind == Delete && diffs[pointer].Kind == Insert {
			deleteText := []rune(diffs[pointer-1].Text)
			insertText := []rune(diffs[pointer].Text)
			overlapLen1 := commonOverlapLen(deleteText, insertText)
			overlapLen2 := commonOverlapLen(insertText, deleteText)
			switch {
			case overlapLen1 >= overlapLen2:
				if float64(overlapLen1) >= float64(len(deleteText))/2 || float64(overlapLen1) >= float64(len(insertText))/2 {
					mid := string(insertText[:overlapLen1])
					replacement := EditScript{
						{Delete, string(deleteText[:len(deleteText)-overlapLen1])},
						{Equal, mid},
						{Insert, string(insertText[overlapLen1:])},
					}
					diffs = spliceOps(diffs, pointer-1, 2, replacement)
					pointer += len(replacement) - 1
				}
			default:
				if float64(overlapLen2) >= float64(len(deleteText))/2 || float64(overlapLen2) >= float64(len(insertText))/2 {
					mid := string(deleteText[:overlapLen2])
					replacement := EditScript{
						{Insert, string(insertText[:len(insertText)-overlapLen2])},
						{Equal, mid},
						{Delete, string(deleteText[overlapLen2:])},
					}
					diffs = spliceOps(diffs, pointer-1, 2, replacement)
					pointer += len(replacement) - 1
				}
			}
		}
		pointer++
	}
	return diffs
}

func spliceOps(diffs EditScript, start, count int, replacement EditScript) EditScript {
	tail := append(EditScript{}, diffs[start+count:]...)
	out := append(EditScript{}, diffs[:start]...)
	out = append(out, replacement...)
	out = append(out, tail...)
	return out
}

var (
	nonAlphaNumeric   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	whitespace        = regexp.MustCompile(`\s`)
	linebreak         = regexp.MustCompile(`[\r\n]`)
	blankLineEnd      = regexp.MustCompile(`\n\r?\n$`)
	blankLineStart    = regexp.MustCompile(`^\r?\n\r?\n`)
)

// cleanupSemanticLossless slides equal/edit boundaries across runs of
// identical characters to land on the most semantically clean split
// point available, scoring each candidate boundary by how much of a
// structural break it lands on (blank line > line break > word boundary
// > nothing).
func cleanupSemanticLossless(diffs EditScript) EditScript {
	diffs = append(EditScript{}, diffs...)
	pointer := 1
	for pointer < len(diffs)-1 {
		if diffs[pointer-1].Kind == Equal && diffs[pointer+1].Kind == Equal {
			equality1 := []rune(diffs[pointer-1].Text)
			edit := []rune(diffs[pointer].Text)
			equality2 := []rune(diffs[pointer+1].Text)

			if commonLen := commonSuffixLen(equality1, edit); commonLen != 0 {
				shift := edit[len(edit)-commonLen:]
				equality1 = equality1[:len(equality1)-commonLen]
				edit = append(append([]rune{}, shift...), edit[:len(edit)-commonLen]...)
				equality2 = append(append([]rune{}, shift...), equality2...)
			}

			bestEquality1 := equality1
			bestEdit := edit
			bestEquality2 := equality2
			bestScore := boundaryScore(equality1, edit) + boundaryScore(edit, equality2)

			for len(edit) != 0 && len(equality2) != 0 && edit[0] == equality2[0] {
				equality1 = append(equality1, edit[0])
				edit = append(edit[1:], equality2[0])
				equality2 = equality2[1:]
				score := boundaryScore(equality1, edit) + boundaryScore(edit, equality2)
				if score >= bestScore {
					bestScore = score
					bestEquality1 = append([]rune{}, equality1...)
					bestEdit = append([]rune{}, edit...)
					bestEquality2 = append([]rune{}, equality2...)
				}
			}

			if !runesEqual([]rune(diffs[pointer-1].Text), bestEquality1) {
				if len(bestEquality1) > 0 {
					diffs[pointer-1].Text = string(bestEquality1)
				} else {
					diffs = append(diffs[:pointer-1], diffs[pointer:]...)
					pointer--
				}
				diffs[pointer].Text = string(bestEdit)
				if len(bestEquality2) > 0 {
					diffs[pointer+1].Text = string(bestEquality2)
				} else {
					diffs = append(diffs[:pointer+1], diffs[pointer+2:]...)
				}
			}
		}
		pointer++
	}
	return diffs
}

// boundaryScore rates how good a boundary is between one and two, where
// larger is a more natural place to split. 5 = blank line, 4 = line
// break, 3 = non-alphanumeric+whitespace transition, 2 = whitespace,
// 1 = non-alphanumeric, 0 = nothing notable.
func boundaryScore(one, two []rune) int {
	if len(one) == 0 || len(two) == 0 {
		return 6
	}

	lastOne := one[len(one)-1]
	firstTwo := two[0]
	nonAlphaOne := nonAlphaNumeric.MatchString(string(lastOne))
	nonAlphaTwo := nonAlphaNumeric.MatchString(string(firstTwo))
	whitespaceOne := whitespace.MatchString(string(lastOne))
	whitespaceTwo := whitespace.MatchString(string(firstTwo))
	lineBreakOne := linebreak.MatchString(string(lastOne))
	lineBreakTwo := linebreak.MatchString(string(firstTwo))
	blankLineOne := blankLineEnd.MatchString(string(one))
	blankLineTwo := blankLineStart.MatchString(string(two))

	switch {
	case blankLineOne || blankLineTwo:
		return 5
	case lineBreakOne || lineBreakTwo:
		return 4
	case nonAlphaOne && !whitespaceOne && whitespaceTwo:
		return 3
	case whitespaceOne || whitespaceTwo:
		return 2
	case nonAlphaOne || nonAlphaTwo:
		return 1
	}
	return 0
}

// cleanupEfficiency reduces the number of edits at some cost to
// minimality, by eliminating short equalities whose removal would save
// more than c.DiffEditCost characters' worth of operation overhead.
func (c *Config) cleanupEfficiency(diffs EditScript) EditScript {
	if len(diffs) == 0 {
		return diffs
	}
	diffs = append(EditScript{}, diffs...)

	var equalities []int // stack of indices where a candidate equality sits
	lastEquality := ""
	changed := false
	pointer := 0
	preIns, preDel, postIns, postDel := false, false, false, false

	for pointer < len(diffs) {
		if diffs[pointer].Kind == Equal {
			if runeLen(diffs[pointer].Text) < c.DiffEditCost && (postIns || postDel) {
				equalities = append(equalities, pointer)
				preIns, preDel = postIns, postDel
				lastEquality = diffs[pointer].Text
			} else {
				equalities = nil
				lastEquality = ""
			}
			postIns, postDel = false, false
		} else {
			if diffs[pointer].Kind == Delete {
				postDel = true
			} else {
				postIns = true
			}

			// Five shapes get split here:
			// <ins>A</ins><del>B</del>XY<ins>C</ins><del>D</del>
			// <ins>A</ins>X<ins>C</ins><del>D</del>
			// <ins>A</ins><del>B</del>X<ins>C</ins>
			// <del>A</del>X<ins>C</ins><del>D</del>
			// <ins>A</ins><del>B</del>X<del>C</del>
			flagCount := btoi(preIns) + btoi(preDel) + btoi(postIns) + btoi(postDel)
			if lastEquality != "" &&
				((preIns && preDel && postIns && postDel) ||
					(runeLen(lastEquality) < c.DiffEditCost/2 && flagCount == 3)) {
				insPoint := equalities[len(equalities)-1]
				diffs = spliceOps(diffs, insPoint, 1, EditScript{
					{Delete, lastEquality},
					{Insert, lastEquality},
				})

				equalities = equalities[:len(equalities)-1] // Discard the equality just split.

				if preIns && preDel {
					postIns, postDel = true, true
					equalities = nil
				} else {
					if len(equalities) > 0 {
						equalities = equalities[:len(equalities)-1]
					}
					if len(equalities) > 0 {
						pointer = equalities[len(equalities)-1]
					} else {
						pointer = -1
					}
					postIns, postDel = false, false
				}
				lastEquality = ""
				changed = true
			}
		}
		pointer++
	}

	if changed {
		diffs = cleanupMerge(diffs)
	}
	return diffs
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func runeLen(s string) int { return len([]rune(s)) }
