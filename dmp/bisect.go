package dmp

import "time"

// bisect finds the middle snake of the edit graph for text1/text2 using
// Myers's O(ND) algorithm and recursively diffs the two halves it
// splits the problem into. If deadline elapses before an overlap is
// found it returns the degenerate [Delete text1, Insert text2] script;
// this always reconstructs both texts even though it isn't minimal.
func (c *Config) bisect(text1, text2 []rune, deadline time.Time) EditScript {
	text1Len, text2Len := len(text1), len(text2)
	maxD := (text1Len + text2Len + 1) / 2
	vOffset := maxD
	vLen := 2 * maxD
	v1 := make([]int, vLen)
	v2 := make([]int, vLen)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := text1Len - text2Len
	// If the total number of characters is odd, the front path collides
	// with the reverse path on an odd diagonal.
	front := delta%2 != 0

	k1start, k1end := 0, 0
	k2start, k2end := 0, 0

	for d := 0; d < maxD; d++ {
		if deadlineExceeded(deadline) {
			break
		}

		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < text1Len && y1 < text2Len && text1[x1] == text2[y1] {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			switch {
			case x1 > text1Len:
				k1end += 2
			case y1 > text2Len:
				k1start += 2
			case front:
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLen && v2[k2Offset] != -1 {
					x2 := text1Len - v2[k2Offset]
					if x1 >= x2 {
						return c.bisectSplit(text1, text2, x1, y1, deadline)
					}
				}
			}
		}

		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < text1Len && y2 < text2Len &&
				text1[text1Len-x2-1] == text2[text2Len-y2-1] {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			switch {
			case x2 > text1Len:
				k2end += 2
			case y2 > text2Len:
				k2start += 2
			case !front:
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLen && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					mirroredX2 := text1Len - x2
					if x1 >= mirroredX2 {
						return c.bisectSplit(text1, text2, x1, y1, deadline)
					}
				}
			}
		}
	}

	return EditScript{{Delete, string(text1)}, {Insert, string(text2)}}
}

// bisectSplit splits the edit graph at (x, y) and diffs the two
// resulting sub-problems serially.
func (c *Config) bisectSplit(text1, text2 []rune, x, y int, deadline time.Time) EditScript {
	diffsA := c.diffMainRunes(text1[:x], text2[:y], false, deadline)
	diffsB := c.diffMainRunes(text1[x:], text2[y:], false, deadline)
	out := make(EditScript, 0, len(diffsA)+len(diffsB))
	out = append(out, diffsA...)
	out = append(out, diffsB...)
	return out
}
