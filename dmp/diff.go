package dmp

import "time"

// DiffMain computes a minimal sequence of edit operations transforming
// text1 into text2. checkLines enables the line-mode speedup for large
// inputs.
//
// spec.md lists NullInput as a failure mode of this entry point for
// ports where "string" can be a null reference; a Go string argument is
// never nil, so that failure mode is structurally unreachable here and
// DiffMain cannot fail.
func (c *Config) DiffMain(text1, text2 string, checkLines bool) EditScript {
	deadline := c.deadline()
	return c.diffMainRunes([]rune(text1), []rune(text2), checkLines, deadline)
}

func (c *Config) deadline() time.Time {
	if c.DiffTimeout <= 0 {
		return time.Time{} // zero value: treated as +Inf, see hasDeadline.
	}
	return time.Now().Add(c.DiffTimeout)
}

func hasDeadline(deadline time.Time) bool { return !deadline.IsZero() }

func deadlineExceeded(deadline time.Time) bool {
	return hasDeadline(deadline) && time.Now().After(deadline)
}

func (c *Config) diffMainRunes(text1, text2 []rune, checkLines bool, deadline time.Time) EditScript {
	if runesEqual(text1, text2) {
		if len(text1) == 0 {
			return EditScript{}
		}
		return EditScript{{Equal, string(text1)}}
	}

	prefixLen := commonPrefixLen(text1, text2)
	prefix := text1[:prefixLen]
	text1 = text1[prefixLen:]
	text2 = text2[prefixLen:]

	suffixLen := commonSuffixLen(text1, text2)
	suffix := text1[len(text1)-suffixLen:]
	text1 = text1[:len(text1)-suffixLen]
	text2 = text2[:len(text2)-suffixLen]

	diffs := c.diffCompute(text1, text2, checkLines, deadline)

	if len(prefix) > 0 {
		diffs = append(EditScript{{Equal, string(prefix)}}, diffs...)
	}
	if len(suffix) > 0 {
		diffs = append(diffs, Op{Equal, string(suffix)})
	}

	return cleanupMerge(diffs)
}

func (c *Config) diffCompute(text1, text2 []rune, checkLines bool, deadline time.Time) EditScript {
	if len(text1) == 0 {
		return EditScript{{Insert, string(text2)}}
	}
	if len(text2) == 0 {
		return EditScript{{Delete, string(text1)}}
	}

	var longText, shortText []rune
	text1Longer := len(text1) > len(text2)
	if text1Longer {
		longText, shortText = text1, text2
	} else {
		longText, shortText = text2, text1
	}

	if i := runeIndex(longText, shortText); i != -1 {
		op := Insert
		if text1Longer {
			op = Delete
		}
		diffs := EditScript{}
		if i > 0 {
			diffs = append(diffs, Op{op, string(longText[:i])})
		}
		diffs = append(diffs, Op{Equal, string(shortText)})
		if tail := longText[i+len(shortText):]; len(tail) > 0 {
			diffs = append(diffs, Op{op, string(tail)})
		}
		return diffs
	}

	if len(shortText) == 1 {
		return EditScript{{Delete, string(text1)}, {Insert, string(text2)}}
	}

	if hm := c.halfMatch(text1, text2); hm != nil {
		diffsA := c.diffMainRunes(hm.text1Prefix, hm.text2Prefix, checkLines, deadline)
		diffsB := c.diffMainRunes(hm.text1Suffix, hm.text2Suffix, checkLines, deadline)
		out := make(EditScript, 0, len(diffsA)+1+len(diffsB))
		out = append(out, diffsA...)
		out = append(out, Op{Equal, string(hm.commonMiddle)})
		out = append(out, diffsB...)
		return out
	}

	if checkLines && len(text1) > 100 && len(text2) > 100 {
		return c.diffLineMode(text1, text2, deadline)
	}

	return c.bisect(text1, text2, deadline)
}
