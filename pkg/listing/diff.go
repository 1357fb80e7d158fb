package listing

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bassosimone/rv32asm/pkg/asm"
)

// Words formats words one per line, newline-terminated.
func Words(words []uint32) string {
	var b strings.Builder
	for _, word := range words {
		b.WriteString(asm.FormatWord(word))
		b.WriteByte('\n')
	}
	return b.String()
}

// Diff compares the expected and the produced words line by line. It
// returns an empty string when they match, otherwise a diff where
// missing lines start with "-" and unexpected lines start with "+".
func Diff(expected, got []uint32) string {
	want, have := Words(expected), Words(got)
	if want == have {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, have)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var out strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String()
}
