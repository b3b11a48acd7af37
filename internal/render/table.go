package render

import (
	"strings"
	"unicode/utf8"
)

// writeTable emits a GitHub-flavored markdown table. rows[0] is the header;
// every cell is padded so columns line up, and the separator row spans the
// padded width.
func writeTable(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for col, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[col] {
				widths[col] = w
			}
		}
	}

	writeRow(b, rows[0], widths)
	writeSeparator(b, widths)
	for _, row := range rows[1:] {
		writeRow(b, row, widths)
	}
}

func writeRow(b *strings.Builder, row []string, widths []int) {
	b.WriteString("|")
	for col, cell := range row {
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", widths[col]-utf8.RuneCountInString(cell)))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func writeSeparator(b *strings.Builder, widths []int) {
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	b.WriteString("\n")
}
