package dmp

import "time"

const (
	text1LineCap = 40000
	text2LineCap = 65535
)

// diffLineMode does a quick line-level diff on both texts, then re-diffs
// the replaced blocks character-by-character for accuracy. This speedup
// can produce a non-minimal diff.
func (c *Config) diffLineMode(text1, text2 []rune, deadline time.Time) EditScript {
	chars1, chars2, lineArray := linesToChars(text1, text2)

	diffs := c.diffMainRunes(chars1, chars2, false, deadline)
	diffs = charsToLines(diffs, lineArray)
	diffs = cleanupSemantic(diffs)

	// Add a sentinel equality so the final run gets flushed by the loop
	// below.
	diffs = append(diffs, Op{Equal, ""})

	out := make(EditScript, 0, len(diffs))
	textDelete, textInsert := "", ""
	for _, op := range diffs {
		switch op.Kind {
		case Insert:
			textInsert += op.Text
		case Delete:
			textDelete += op.Text
		case Equal:
			if textDelete != "" && textInsert != "" {
				rediffed := c.diffMainRunes([]rune(textDelete), []rune(textInsert), false, deadline)
				out = append(out, rediffed...)
			} else if textDelete != "" {
				out = append(out, Op{Delete, textDelete})
			} else if textInsert != "" {
				out = append(out, Op{Insert, textInsert})
			}
			textDelete, textInsert = "", ""
			if op.Text != "" {
				out = append(out, op)
			}
		}
	}
	return out
}

// linesToChars assigns each distinct line in text1/text2 a unique code
// point, encoding both as compact strings of those code points. Index 0
// of lineArray is a sentinel empty string so no real line maps to the
// null character. text1 is capped at 40,000 distinct lines: once the cap
// is hit the remainder of text1 is folded into a single line. text2 is
// then encoded against the same table with the cap raised to 65,535.
func linesToChars(text1, text2 []rune) (chars1, chars2 []rune, lineArray []string) {
	lineArray = []string{""}
	lineHash := map[string]int{}

	chars1 = linesToCharsMunge(text1, &lineArray, lineHash, text1LineCap)
	chars2 = linesToCharsMunge(text2, &lineArray, lineHash, text2LineCap)
	return chars1, chars2, lineArray
}

func linesToCharsMunge(text []rune, lineArray *[]string, lineHash map[string]int, maxLines int) []rune {
	var codes []rune
	lineStart := 0
	for lineStart < len(text) {
		lineEnd := runeIndexFrom(text, []rune{'\n'}, lineStart)
		var line []rune
		if lineEnd == -1 {
			line = text[lineStart:]
			lineStart = len(text)
		} else {
			line = text[lineStart : lineEnd+1]
			lineStart = lineEnd + 1
		}

		if len(*lineArray) >= maxLines {
			// Bail out: fold the remainder of this text into one line.
			rest := text[lineStart-len(line):]
			line = rest
			lineStart = len(text)
		}

		key := string(line)
		if idx, ok := lineHash[key]; ok {
			codes = append(codes, rune(idx))
		} else {
			*lineArray = append(*lineArray, key)
			idx := len(*lineArray) - 1
			lineHash[key] = idx
			codes = append(codes, rune(idx))
		}
	}
	return codes
}

// charsToLines expands each Op's encoded text back into real lines via
// lineArray.
func charsToLines(diffs EditScript, lineArray []string) EditScript {
	out := make(EditScript, len(diffs))
	for i, op := range diffs {
		var b []byte
		for _, r := range op.Text {
			b = append(b, lineArray[r]...)
		}
		out[i] = Op{op.Kind, string(b)}
	}
	return out
}
