package dashboard

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ansiClear = "\x1b[2J\x1b[H"
	colGap    = 2
)

// sideBySide glues two rendered blocks into one, line by line. The left
// block is padded to its widest line so the right column stays aligned;
// padding is escape-sequence aware since schedule rows carry colors.
func sideBySide(left, right string) string {
	leftLines := strings.Split(strings.TrimRight(left, "\n"), "\n")
	rightLines := strings.Split(strings.TrimRight(right, "\n"), "\n")

	width := 0
	for _, line := range leftLines {
		if w := text.RuneWidthWithoutEscSequences(line); w > width {
			width = w
		}
	}

	rows := len(leftLines)
	if len(rightLines) > rows {
		rows = len(rightLines)
	}

	var b strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		b.WriteString(text.Pad(l, width+colGap, ' '))
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}

// rawNewlines rewrites "\n" to "\r\n" so output stays aligned while the
// terminal is in raw mode.
func rawNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}
