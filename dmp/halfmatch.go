package dmp

// halfMatchResult is the 5-tuple described by spec.md §4.2, oriented so
// that the first two fields always correspond to text1.
type halfMatchResult struct {
	text1Prefix, text1Suffix []rune
	text2Prefix, text2Suffix []rune
	commonMiddle             []rune
}

// halfMatch reports whether the longer of text1/text2 contains a
// substring at least half its length that also occurs in the shorter
// text. It is disabled (returns nil) when DiffTimeout <= 0: it is a
// speedup that can produce a non-minimal diff, which unlimited-time
// callers shouldn't have to pay for.
func (c *Config) halfMatch(text1, text2 []rune) *halfMatchResult {
	if c.DiffTimeout <= 0 {
		return nil
	}

	var long, short []rune
	text1Longer := len(text1) > len(text2)
	if text1Longer {
		long, short = text1, text2
	} else {
		long, short = text2, text1
	}

	if len(long) < 4 || len(short)*2 < len(long) {
		return nil // Pointless: no candidate can be long enough.
	}

	hm1 := halfMatchSeed(long, short, (len(long)+3)/4)
	hm2 := halfMatchSeed(long, short, (len(long)+1)/2)

	var hm *halfMatchResult
	switch {
	case hm1 == nil:
		hm = hm2
	case hm2 == nil:
		hm = hm1
	case len(hm1.commonMiddle) > len(hm2.commonMiddle):
		hm = hm1
	default:
		hm = hm2
	}
	if hm == nil {
		return nil
	}

	if text1Longer {
		return hm
	}
	return &halfMatchResult{
		text1Prefix:  hm.text2Prefix,
		text1Suffix:  hm.text2Suffix,
		text2Prefix:  hm.text1Prefix,
		text2Suffix:  hm.text1Suffix,
		commonMiddle: hm.commonMiddle,
	}
}

// halfMatchSeed looks for a substring of short that both occurs at or
// around long[i:i+len(long)/4] and is at least half the length of long.
func halfMatchSeed(long, short []rune, i int) *halfMatchResult {
	seed := long[i : i+len(long)/4]

	var best halfMatchResult
	bestLen := 0

	for j := runeIndex(short, seed); j != -1; j = runeIndexFrom(short, seed, j+1) {
		prefixLen := commonPrefixLen(long[i:], short[j:])
		suffixLen := commonSuffixLen(long[:i], short[:j])
		if bestLen < suffixLen+prefixLen {
			bestLen = suffixLen + prefixLen
			best = halfMatchResult{
				text1Prefix:  long[:i-suffixLen],
				text1Suffix:  long[i+prefixLen:],
				text2Prefix:  short[:j-suffixLen],
				text2Suffix:  short[j+prefixLen:],
				commonMiddle: short[j-suffixLen : j+prefixLen],
			}
		}
	}

	if bestLen*2 < len(long) {
		return nil
	}
	return &best
}
