package dmp

import (
	"net/url"
	"strconv"
	"strings"
)

// deltaUnescaped is the set of characters the reference escaping scheme
// leaves unescaped even though url.QueryEscape would otherwise encode
// them. They're kept literal so deltas stay reasonably compact and
// readable.
const deltaUnescaped = "!~*'();/?:@&=+$,#"

// ToDelta renders diffs as a compact, URL-safe text form: insert runs
// are percent-escaped text prefixed with '+', delete/equal runs are
// their rune counts prefixed with '-'/'=', and tokens are separated by
// tabs. Equal and delete runs carry only a length because ToDelta is
// always paired with the original text1 by FromDelta.
func (diffs EditScript) ToDelta() string {
	var parts []string
	for _, op := range diffs {
		switch op.Kind {
		case Insert:
			parts = append(parts, "+"+deltaEscape(op.Text))
		case Delete:
			parts = append(parts, "-"+strconv.Itoa(runeLen(op.Text)))
		case Equal:
			parts = append(parts, "="+strconv.Itoa(runeLen(op.Text)))
		}
	}
	return strings.Join(parts, "\t")
}

func deltaEscape(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	var b strings.Builder
	for i := 0; i < len(escaped); i++ {
		if escaped[i] == '%' && i+2 < len(escaped) {
			hex := escaped[i+1 : i+3]
			if n, err := strconv.ParseUint(hex, 16, 8); err == nil && strings.IndexByte(deltaUnescaped, byte(n)) != -1 {
				b.WriteByte(byte(n))
				i += 2
				continue
			}
		}
		b.WriteByte(escaped[i])
	}
	return b.String()
}

// FromDelta reconstructs an EditScript from text1 and a delta produced
// by ToDelta. It fails with DeltaLengthMismatch if the equal/delete
// run lengths don't consume exactly len(text1) runes, with
// IllegalEscape if a '+' token contains invalid percent-encoding, and
// with InvalidOp if a token's leading character isn't +, -, or =.
func FromDelta(text1, delta string) (EditScript, error) {
	const op = "dmp.FromDelta"
	text1Runes := []rune(text1)
	pointer := 0
	var diffs EditScript

	if delta == "" {
		if len(text1Runes) != 0 {
			return nil, newError(DeltaLengthMismatch, op,
				"delta is empty but text1 is not")
		}
		return EditScript{}, nil
	}

	for _, token := range strings.Split(delta, "\t") {
		if token == "" {
			continue
		}
		param := token[1:]
		switch token[0] {
		case '+':
			unescaped, err := url.QueryUnescape(strings.ReplaceAll(param, "+", "%2B"))
			if err != nil {
				return nil, wrapError(IllegalEscape, op, "invalid percent-encoding in insert token: "+param, err)
			}
			diffs = append(diffs, Op{Insert, unescaped})
		case '-', '=':
			n, err := strconv.Atoi(param)
			if err != nil || n < 0 {
				return nil, wrapError(InvalidOp, op, "invalid run length in token: "+token, err)
			}
			if pointer+n > len(text1Runes) {
				return nil, newError(DeltaLengthMismatch, op,
					"delta run extends past the end of text1")
			}
			text := string(text1Runes[pointer : pointer+n])
			pointer += n
			if token[0] == '=' {
				diffs = append(diffs, Op{Equal, text})
			} else {
				diffs = append(diffs, Op{Delete, text})
			}
		default:
			return nil, newError(InvalidOp, op, "unrecognized delta token: "+token)
		}
	}

	if pointer != len(text1Runes) {
		return nil, newError(DeltaLengthMismatch, op,
			"delta consumed fewer runes than text1 contains")
	}
	return diffs, nil
}
