// Package unified renders diffs as human-readable unified or context
// diff text. Its matcher runs the same Myers O(ND) bisection the root
// package's diff engine uses at rune granularity, generalized here to
// whole lines, so a line-level match is whatever the edit graph's
// shortest path picks out rather than a greedy longest-common-run.
package unified

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

func calculateRatio(matches, length int) float64 {
	if length > 0 {
		return 2.0 * float64(matches) / float64(length)
	}
	return 1.0
}

// Match is one contiguous run of identical lines: a[A:A+Size] ==
// b[B:B+Size].
type Match struct {
	A    int
	B    int
	Size int
}

// OpCode is one step of turning a into b: Tag is 'r' (replace), 'd'
// (delete), 'i' (insert), or 'e' (equal), over a[I1:I2] and b[J1:J2].
type OpCode struct {
	Tag byte
	I1  int
	I2  int
	J1  int
	J2  int
}

// SequenceMatcher finds the edit script turning one line sequence into
// another, via lineDiff's Myers bisection, and derives matching blocks
// and opcodes from it.
type SequenceMatcher struct {
	a          []string
	b          []string
	fullBCount map[string]int
	opCodes    []OpCode
}

// NewMatcher builds a SequenceMatcher over a and b.
func NewMatcher(a, b []string) *SequenceMatcher {
	m := &SequenceMatcher{}
	m.SetSeqs(a, b)
	return m
}

// SetSeqs sets both sequences to compare.
func (m *SequenceMatcher) SetSeqs(a, b []string) {
	m.SetSeq1(a)
	m.SetSeq2(b)
}

// SetSeq1 sets the first sequence.
func (m *SequenceMatcher) SetSeq1(a []string) {
	m.a = a
	m.opCodes = nil
}

// SetSeq2 sets the second sequence.
func (m *SequenceMatcher) SetSeq2(b []string) {
	m.b = b
	m.opCodes = nil
	m.fullBCount = nil
}

// GetMatchingBlocks returns the matching runs between a and b, in
// increasing order of both A and B, with no two adjacent blocks
// describing adjacent equal ranges. The final element is always the
// zero-size sentinel {len(a), len(b), 0}.
func (m *SequenceMatcher) GetMatchingBlocks() []Match {
	var blocks []Match
	for _, c := range m.GetOpCodes() {
		if c.Tag == 'e' {
			blocks = append(blocks, Match{c.I1, c.J1, c.I2 - c.I1})
		}
	}
	return append(blocks, Match{len(m.a), len(m.b), 0})
}

// GetOpCodes returns the sequence of OpCodes turning a into b. The
// first has I1 == J1 == 0; each later one picks up where the previous
// left off.
func (m *SequenceMatcher) GetOpCodes() []OpCode {
	if m.opCodes == nil {
		m.opCodes = lineDiff(m.a, m.b)
	}
	return m.opCodes
}

// GetGroupedOpCodes groups the OpCodes into clusters of changes, each
// padded with up to n lines of unchanged context on either side, and
// drops the stretches of unchanged lines between clusters entirely.
func (m *SequenceMatcher) GetGroupedOpCodes(n int) [][]OpCode {
	if n < 0 {
		n = 3
	}
	codes := m.GetOpCodes()
	if len(codes) == 0 {
		codes = []OpCode{{'e', 0, 1, 0, 1}}
	}
	if codes[0].Tag == 'e' {
		c := codes[0]
		i1, i2, j1, j2 := c.I1, c.I2, c.J1, c.J2
		codes[0] = OpCode{c.Tag, max(i1, i2-n), i2, max(j1, j2-n), j2}
	}
	if codes[len(codes)-1].Tag == 'e' {
		c := codes[len(codes)-1]
		i1, i2, j1, j2 := c.I1, c.I2, c.J1, c.J2
		codes[len(codes)-1] = OpCode{c.Tag, i1, min(i2, i1+n), j1, min(j2, j1+n)}
	}
	nn := n + n
	var groups [][]OpCode
	var group []OpCode
	for _, c := range codes {
		i1, i2, j1, j2 := c.I1, c.I2, c.J1, c.J2
		if c.Tag == 'e' && i2-i1 > nn {
			group = append(group, OpCode{c.Tag, i1, min(i2, i1+n), j1, min(j2, j1+n)})
			groups = append(groups, group)
			group = nil
			i1, j1 = max(i1, i2-n), max(j1, j2-n)
		}
		group = append(group, OpCode{c.Tag, i1, i2, j1, j2})
	}
	if len(group) > 0 && !(len(group) == 1 && group[0].Tag == 'e') {
		groups = append(groups, group)
	}
	return groups
}

// Ratio returns 2*M/T where M is the total size of the matching blocks
// and T is len(a)+len(b): 1 for identical sequences, 0 for sequences
// sharing nothing.
func (m *SequenceMatcher) Ratio() float64 {
	matches := 0
	for _, blk := range m.GetMatchingBlocks() {
		matches += blk.Size
	}
	return calculateRatio(matches, len(m.a)+len(m.b))
}

// QuickRatio is a faster, multiset-based upper bound on Ratio.
func (m *SequenceMatcher) QuickRatio() float64 {
	if m.fullBCount == nil {
		m.fullBCount = map[string]int{}
		for _, s := range m.b {
			m.fullBCount[s]++
		}
	}

	avail := map[string]int{}
	matches := 0
	for _, s := range m.a {
		n, ok := avail[s]
		if !ok {
			n = m.fullBCount[s]
		}
		avail[s] = n - 1
		if n > 0 {
			matches++
		}
	}
	return calculateRatio(matches, len(m.a)+len(m.b))
}

// RealQuickRatio is an even faster, length-only upper bound on Ratio.
func (m *SequenceMatcher) RealQuickRatio() float64 {
	la, lb := len(m.a), len(m.b)
	return calculateRatio(min(la, lb), la+lb)
}

func formatRangeUnified(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}

// UnifiedDiff holds the inputs to WriteUnifiedDiff.
type UnifiedDiff struct {
	A        []string
	FromFile string
	FromDate string
	B        []string
	ToFile   string
	ToDate   string
	Eol      string
	Context  int
}

// WriteUnifiedDiff writes a unified diff of diff.A against diff.B, with
// diff.Context lines of surrounding context (3 if negative).
func WriteUnifiedDiff(writer io.Writer, diff UnifiedDiff) error {
	buf := bufio.NewWriter(writer)
	defer buf.Flush()
	wf := func(format string, args ...interface{}) error {
		_, err := buf.WriteString(fmt.Sprintf(format, args...))
		return err
	}
	ws := func(s string) error {
		_, err := buf.WriteString(s)
		return err
	}

	if len(diff.Eol) == 0 {
		diff.Eol = "\n"
	}

	started := false
	m := NewMatcher(diff.A, diff.B)
	for _, g := range m.GetGroupedOpCodes(diff.Context) {
		if !started {
			started = true
			fromDate, toDate := "", ""
			if len(diff.FromDate) > 0 {
				fromDate = "\t" + diff.FromDate
			}
			if len(diff.ToDate) > 0 {
				toDate = "\t" + diff.ToDate
			}
			if diff.FromFile != "" || diff.ToFile != "" {
				if err := wf("--- %s%s%s", diff.FromFile, fromDate, diff.Eol); err != nil {
					return err
				}
				if err := wf("+++ %s%s%s", diff.ToFile, toDate, diff.Eol); err != nil {
					return err
				}
			}
		}
		first, last := g[0], g[len(g)-1]
		range1 := formatRangeUnified(first.I1, last.I2)
		range2 := formatRangeUnified(first.J1, last.J2)
		if err := wf("@@ -%s +%s @@%s", range1, range2, diff.Eol); err != nil {
			return err
		}
		for _, c := range g {
			i1, i2, j1, j2 := c.I1, c.I2, c.J1, c.J2
			if c.Tag == 'e' {
				for _, line := range diff.A[i1:i2] {
					if err := ws(" " + line); err != nil {
						return err
					}
				}
				continue
			}
			if c.Tag == 'r' || c.Tag == 'd' {
				for _, line := range diff.A[i1:i2] {
					if err := ws("-" + line); err != nil {
						return err
					}
				}
			}
			if c.Tag == 'r' || c.Tag == 'i' {
				for _, line := range diff.B[j1:j2] {
					if err := ws("+" + line); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// GetUnifiedDiffString is WriteUnifiedDiff returning the result as a string.
func GetUnifiedDiffString(diff UnifiedDiff) (string, error) {
	w := &bytes.Buffer{}
	err := WriteUnifiedDiff(w, diff)
	return w.String(), err
}

func formatRangeContext(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 0 {
		beginning--
	}
	if length <= 1 {
		return fmt.Sprintf("%d", beginning)
	}
	return fmt.Sprintf("%d,%d", beginning, beginning+length-1)
}

// ContextDiff holds the inputs to WriteContextDiff; same shape as UnifiedDiff.
type ContextDiff UnifiedDiff

// WriteContextDiff writes a context diff of diff.A against diff.B, with
// diff.Context lines of surrounding context (3 if negative).
func WriteContextDiff(writer io.Writer, diff ContextDiff) error {
	buf := bufio.NewWriter(writer)
	defer buf.Flush()
	var diffErr error
	wf := func(format string, args ...interface{}) {
		_, err := buf.WriteString(fmt.Sprintf(format, args...))
		if diffErr == nil && err != nil {
			diffErr = err
		}
	}
	ws := func(s string) {
		_, err := buf.WriteString(s)
		if diffErr == nil && err != nil {
			diffErr = err
		}
	}

	if len(diff.Eol) == 0 {
		diff.Eol = "\n"
	}

	prefix := map[byte]string{'i': "+ ", 'd': "- ", 'r': "! ", 'e': "  "}

	started := false
	m := NewMatcher(diff.A, diff.B)
	for _, g := range m.GetGroupedOpCodes(diff.Context) {
		if !started {
			started = true
			fromDate, toDate := "", ""
			if len(diff.FromDate) > 0 {
				fromDate = "\t" + diff.FromDate
			}
			if len(diff.ToDate) > 0 {
				toDate = "\t" + diff.ToDate
			}
			if diff.FromFile != "" || diff.ToFile != "" {
				wf("*** %s%s%s", diff.FromFile, fromDate, diff.Eol)
				wf("--- %s%s%s", diff.ToFile, toDate, diff.Eol)
			}
		}

		first, last := g[0], g[len(g)-1]
		ws("***************" + diff.Eol)

		range1 := formatRangeContext(first.I1, last.I2)
		wf("*** %s ****%s", range1, diff.Eol)
		for _, c := range g {
			if c.Tag == 'r' || c.Tag == 'd' {
				for _, cc := range g {
					if cc.Tag == 'i' {
						continue
					}
					for _, line := range diff.A[cc.I1:cc.I2] {
						ws(prefix[cc.Tag] + line)
					}
				}
				break
			}
		}

		range2 := formatRangeContext(first.J1, last.J2)
		wf("--- %s ----%s", range2, diff.Eol)
		for _, c := range g {
			if c.Tag == 'r' || c.Tag == 'i' {
				for _, cc := range g {
					if cc.Tag == 'd' {
						continue
					}
					for _, line := range diff.B[cc.J1:cc.J2] {
						ws(prefix[cc.Tag] + line)
					}
				}
				break
			}
		}
	}
	return diffErr
}

// GetContextDiffString is WriteContextDiff returning the result as a string.
func GetContextDiffString(diff ContextDiff) (string, error) {
	w := &bytes.Buffer{}
	err := WriteContextDiff(w, diff)
	return w.String(), err
}

// SplitLines splits s on "\n", keeping each line's trailing newline,
// and ensures the final element ends with one too. The result is
// suitable as UnifiedDiff/ContextDiff input.
func SplitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}

// IsLineJunk reports whether a line is ignorable for matching purposes:
// blank, or containing only a single '#', ignoring surrounding
// whitespace and a trailing newline.
func IsLineJunk(line string) bool {
	line = strings.TrimSuffix(line, "\n")
	t := strings.TrimSpace(line)
	return t == "" || t == "#"
}

// IsCharacterJunk reports whether r is ignorable for matching purposes:
// a space or a tab.
func IsCharacterJunk(r rune) bool { return r == ' ' || r == '\t' }
