package dmp

import "math"

// MatchMain locates the best fuzzy occurrence of pattern in text at or
// near loc. It returns 0 when text equals pattern, and loc when pattern
// is empty or occurs exactly at loc. Otherwise, if pattern occurs exactly
// anywhere in text, it returns the nearer to loc of the first and last
// such occurrences, however far away that is. Only when there is no exact
// occurrence does it run Bitap, which returns -1 if no candidate scores
// at or below Config.MatchThreshold (lower scores are better). It fails
// with PatternTooLong when Bitap would be needed for a pattern longer
// than Config.MatchMaxBits runes and MatchMaxBits is nonzero.
func (c *Config) MatchMain(text, pattern string, loc int) (int, error) {
	const op = "dmp.MatchMain"
	textRunes := []rune(text)
	patternRunes := []rune(pattern)
	loc = clampInt(loc, 0, len(textRunes))

	if runesEqual(textRunes, patternRunes) {
		return 0, nil
	}
	if len(patternRunes) == 0 {
		return loc, nil
	}

	if loc+len(patternRunes) <= len(textRunes) &&
		runesEqual(textRunes[loc:loc+len(patternRunes)], patternRunes) {
		return loc, nil
	}

	if i := runeIndex(textRunes, patternRunes); i != -1 {
		best := i
		if j := runeLastIndex(textRunes, patternRunes); j != -1 {
			if absInt(j-loc) < absInt(best-loc) {
				best = j
			}
		}
		return best, nil
	}

	if c.MatchMaxBits > 0 && len(patternRunes) > c.MatchMaxBits {
		return -1, newError(PatternTooLong, op,
			"pattern is longer than MatchMaxBits runes")
	}

	return c.bitap(textRunes, patternRunes, loc), nil
}

// matchAlphabet builds, for each distinct rune in pattern, a bitmask
// with a 1 in every position that rune occurs.
func matchAlphabet(pattern []rune) map[rune]uint64 {
	alphabet := make(map[rune]uint64, len(pattern))
	for i, r := range pattern {
		alphabet[r] |= uint64(1) << uint(len(pattern)-i-1)
	}
	return alphabet
}

// bitap implements the Baeza-Yates/Gonnet bitwise fuzzy search (a.k.a.
// Bitap, or Shift-Or): it tracks, per error count, a bitmask of partial
// pattern matches ending at the current text position and widens the
// error budget only as far as needed to beat the current best score.
func (c *Config) bitap(text, pattern []rune, loc int) int {
	if c.MatchMaxBits > 0 && len(pattern) > c.MatchMaxBits {
		panic("bitap: pattern too long; caller must check MatchMaxBits first")
	}

	alphabet := matchAlphabet(pattern)

	scoreThreshold := c.MatchThreshold
	if bestLoc := runeIndexFrom(text, pattern, loc); bestLoc != -1 {
		scoreThreshold = math.Min(c.bitapScore(0, bestLoc, loc, pattern), scoreThreshold)
		if bestLoc = runeLastIndex(text[:min(loc+len(pattern), len(text))], pattern); bestLoc != -1 {
			scoreThreshold = math.Min(c.bitapScore(0, bestLoc, loc, pattern), scoreThreshold)
		}
	}

	matchMaxBits := c.MatchMaxBits
	if matchMaxBits <= 0 || matchMaxBits > 63 {
		matchMaxBits = 63
	}

	matchMask := uint64(1) << uint(len(pattern)-1)
	bestLoc := -1

	var lastRd []uint64
	binMax := len(pattern) + len(text)
	for d := 0; d < len(pattern); d++ {
		binMin := 0
		binMid := binMax
		for binMin < binMid {
			if c.bitapScore(d, loc+binMid, loc, pattern) <= scoreThreshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		binMax = binMid

		start := max(1, loc-binMid+1)
		finish := min(loc+binMid, len(text)) + len(pattern)

		rd := make([]uint64, finish+2)
		rd[finish+1] = (uint64(1) << uint(d)) - 1
		for j := finish; j >= start; j-- {
			var charMatch uint64
			if j-1 < len(text) {
				charMatch = alphabet[text[j-1]]
			}
			if d == 0 {
				rd[j] = ((rd[j+1] << 1) | 1) & charMatch
			} else {
				rd[j] = (((rd[j+1] << 1) | 1) & charMatch) |
					(((lastRd[j+1] | lastRd[j]) << 1) | 1) | lastRd[j+1]
			}
			if rd[j]&matchMask != 0 {
				score := c.bitapScore(d, j-1, loc, pattern)
				if score <= scoreThreshold {
					scoreThreshold = score
					bestLoc = j - 1
					if bestLoc > loc {
						start = max(1, 2*loc-bestLoc)
					} else {
						break
					}
				}
			}
		}
		if c.bitapScore(d+1, loc, loc, pattern) > scoreThreshold {
			break
		}
		lastRd = rd
	}
	return bestLoc
}

// bitapScore scores a candidate match at loc given e errors, combining
// the error ratio with a distance-from-expected-location penalty.
func (c *Config) bitapScore(e, x, loc int, pattern []rune) float64 {
	accuracy := float64(e) / float64(len(pattern))
	proximity := absInt(loc - x)
	if c.MatchDistance == 0 {
		if proximity == 0 {
			return accuracy
		}
		return 1.0
	}
	return accuracy + float64(proximity)/float64(c.MatchDistance)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
