package dmp

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var patchHeaderRe = regexp.MustCompile(`^@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@$`)

// String renders a single patch in the unified-diff-like text form
// PatchToText/PatchFromText use: a "@@ -start1,len1 +start2,len2 @@"
// header followed by one line per diff, prefixed with ' ' (Equal),
// '-' (Delete), or '+' (Insert).
func (p *Patch) String() string {
	var b strings.Builder
	b.WriteString("@@ ")
	b.WriteString(patchHeader(p.Start1, p.Length1))
	b.WriteString(" ")
	b.WriteString(patchHeaderHalf(p.Start2, p.Length2))
	b.WriteString(" @@\n")

	for _, d := range p.Diffs {
		var prefix string
		switch d.Kind {
		case Insert:
			prefix = "+"
		case Delete:
			prefix = "-"
		case Equal:
			prefix = " "
		}
		b.WriteString(prefix)
		b.WriteString(deltaEscape(d.Text))
		b.WriteString("\n")
	}
	return b.String()
}

// patchHeader renders one side of a patch header, omitting the length
// when it's exactly 1 (matching the convention of the original: a
// single-character run is written as a bare start) and writing ",0"
// rather than omitting it when the length is genuinely zero. These two
// render differently because PatchFromText treats an omitted length as
// 1 and an explicit ",0" as 0 -- collapsing the distinction on write
// would silently shift every following offset by one rune on read.
func patchHeader(start, length int) string {
	switch length {
	case 0:
		return fmt.Sprintf("-%d,0", start)
	case 1:
		return fmt.Sprintf("-%d", start+1)
	default:
		return fmt.Sprintf("-%d,%d", start+1, length)
	}
}

func patchHeaderHalf(start, length int) string {
	h := patchHeader(start, length)
	return "+" + h[1:]
}

// PatchToText renders patches in the text form PatchFromText parses.
func PatchToText(patches []*Patch) string {
	var b strings.Builder
	for _, p := range patches {
		b.WriteString(p.String())
	}
	return b.String()
}

// PatchFromText parses the text form produced by PatchToText /
// Patch.String. It fails with InvalidPatchHeader if a header line
// doesn't match "@@ -A[,B] +C[,D] @@", with InvalidOp if a body line's
// leading character isn't ' ', '-', or '+', and with IllegalEscape if a
// line's percent-encoding can't be decoded.
func PatchFromText(text string) ([]*Patch, error) {
	const op = "dmp.PatchFromText"
	if text == "" {
		return nil, nil
	}

	var patches []*Patch
	lines := strings.Split(text, "\n")
	i := 0
	for i < len(lines) {
		if lines[i] == "" {
			i++
			continue
		}
		m := patchHeaderRe.FindStringSubmatch(lines[i])
		if m == nil {
			return nil, newError(InvalidPatchHeader, op, "malformed patch header: "+lines[i])
		}
		patch := &Patch{}
		var err error
		patch.Start1, patch.Length1, err = parsePatchHeaderHalf(m[1], m[2])
		if err != nil {
			return nil, wrapError(InvalidPatchHeader, op, "malformed start1/length1 in header: "+lines[i], err)
		}
		patch.Start2, patch.Length2, err = parsePatchHeaderHalf(m[3], m[4])
		if err != nil {
			return nil, wrapError(InvalidPatchHeader, op, "malformed start2/length2 in header: "+lines[i], err)
		}
		i++

		for i < len(lines) {
			line := lines[i]
			if line == "" {
				i++
				continue
			}
			sign := line[0]
			if sign != ' ' && sign != '-' && sign != '+' {
				if sign == '@' {
					break
				}
				return nil, newError(InvalidOp, op, "unrecognized patch line prefix: "+line)
			}
			unescaped, uerr := deltaUnescape(line[1:])
			if uerr != nil {
				return nil, wrapError(IllegalEscape, op, "invalid percent-encoding in patch line: "+line, uerr)
			}
			switch sign {
			case '+':
				patch.Diffs = append(patch.Diffs, Op{Insert, unescaped})
			case '-':
				patch.Diffs = append(patch.Diffs, Op{Delete, unescaped})
			case ' ':
				patch.Diffs = append(patch.Diffs, Op{Equal, unescaped})
			}
			i++
		}

		patches = append(patches, patch)
	}
	return patches, nil
}

// parsePatchHeaderHalf decodes one "A[,B]" header component into a
// 0-based start and a length. An omitted (or empty) length means 1 and
// the 1-based start is decremented; an explicit "0" length means a
// genuine zero-length run, e.g. a patch that begins right at the start
// of the text, and the start is returned unchanged.
func parsePatchHeaderHalf(startStr, lengthStr string) (start, length int, err error) {
	start, err = strconv.Atoi(startStr)
	if err != nil {
		return 0, 0, err
	}
	if lengthStr == "" {
		return start - 1, 1, nil
	}
	length, err = strconv.Atoi(lengthStr)
	if err != nil {
		return 0, 0, err
	}
	if length == 0 {
		return start, 0, nil
	}
	return start - 1, length, nil
}

// deltaUnescape reverses deltaEscape: patch body lines and delta insert
// tokens share the same percent-encoding scheme.
func deltaUnescape(s string) (string, error) {
	return url.QueryUnescape(strings.ReplaceAll(s, "+", "%2B"))
}
