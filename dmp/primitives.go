package dmp

// commonPrefixLen returns the length, in runes, of the longest shared
// prefix of a and b.
func commonPrefixLen(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// commonSuffixLen returns the length, in runes, of the longest shared
// suffix of a and b.
func commonSuffixLen(a, b []rune) int {
	n := min(len(a), len(b))
	la, lb := len(a), len(b)
	for i := 1; i <= n; i++ {
		if a[la-i] != b[lb-i] {
			return i - 1
		}
	}
	return n
}

// commonOverlapLen returns the largest k such that the last k runes of a
// equal the first k runes of b. It never treats distinct code points as
// equal, even when they would form a ligature in some rendering.
func commonOverlapLen(a, b []rune) int {
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}
	if la > lb {
		a = a[la-lb:]
	} else if la < lb {
		b = b[:la]
	}
	textLen := min(len(a), len(b))
	if runesEqual(a, b) {
		return textLen
	}

	// Start with a single-rune match and grow until none is found.
	best := 0
	length := 1
	for {
		pattern := a[textLen-length:]
		found := runeIndex(b, pattern)
		if found == -1 {
			return best
		}
		length += found
		if found == 0 || runesEqual(a[textLen-length:], b[:length]) {
			best = length
			length++
		}
		if textLen-length < 0 {
			return best
		}
	}
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// runeIndex returns the index of the first occurrence of pattern in s,
// or -1 if pattern is not present.
func runeIndex(s, pattern []rune) int {
	n, m := len(s), len(pattern)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if runesEqual(s[i:i+m], pattern) {
			return i
		}
	}
	return -1
}

// runeLastIndex returns the index of the last occurrence of pattern in
// s, or -1 if pattern is not present.
func runeLastIndex(s, pattern []rune) int {
	n, m := len(s), len(pattern)
	if m == 0 {
		return n
	}
	for i := n - m; i >= 0; i-- {
		if runesEqual(s[i:i+m], pattern) {
			return i
		}
	}
	return -1
}

// runeIndexFrom finds the first occurrence of pattern in s at or after
// index from, or -1 if absent.
func runeIndexFrom(s, pattern []rune, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(s) {
		return -1
	}
	i := runeIndex(s[from:], pattern)
	if i == -1 {
		return -1
	}
	return i + from
}
