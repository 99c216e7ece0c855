// Package autosize sizes a textarea to fit its content, clamped to
// configured minimums. Sizing is computed once from the value at setup time;
// it is not re-triggered by later edits.
package autosize

import (
	"strings"
	"unicode/utf8"

	"github.com/zphixon/formwidgets/pkg/dom"
)

// Size pairs visible row and column counts.
type Size struct {
	Rows    int
	Columns int
}

// Measure computes the visible dimensions for content: rows is the line
// count, columns the length in characters of the longest line, each clamped
// to the provided minimum. Empty content still counts as a single line.
func Measure(content string, min Size) Size {
	lines := strings.Split(content, "\n")

	longest := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > longest {
			longest = n
		}
	}

	size := Size{Rows: len(lines), Columns: longest}
	if size.Rows < min.Rows {
		size.Rows = min.Rows
	}
	if size.Columns < min.Columns {
		size.Columns = min.Columns
	}
	return size
}

// Apply measures the textarea's current value and mutates its rows/cols
// attributes, returning the applied size.
func Apply(area *dom.TextArea, min Size) Size {
	size := Measure(area.Value(), min)
	area.SetRows(size.Rows)
	area.SetCols(size.Columns)
	return size
}
