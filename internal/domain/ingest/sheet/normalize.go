package sheet

import (
	"strings"
	"time"
)

// Options configures normalization.
type Options struct {
	// Expected is the header vocabulary used to locate the header row.
	// Empty means the header is row 0.
	Expected []string
	// ScanLimit caps how many top rows are header candidates (0 = default).
	ScanLimit int
	// PadRows right-pads or truncates every data row to the header width.
	// Required when consumers index positionally rather than by name.
	PadRows bool
}

// Normalized is a clean rectangular view of an uploaded grid.
type Normalized struct {
	Headers        []string
	Rows           [][]string
	HeaderRowIndex int
	// RowCount counts retained, non-blank data rows only.
	RowCount int
}

// Normalize locates the header row, discards everything above it, collapses
// every cell to its canonical string form (dates as YYYY-MM-DD) and drops
// fully blank data rows.
func Normalize(grid Grid, opts Options) Normalized {
	headerIdx := FindHeaderRow(grid, opts.Expected, opts.ScanLimit)

	out := Normalized{HeaderRowIndex: headerIdx}
	if headerIdx >= len(grid) {
		return out
	}

	for _, cell := range grid[headerIdx] {
		out.Headers = append(out.Headers, strings.TrimSpace(cell.String()))
	}
	width := len(out.Headers)

	for _, row := range grid[headerIdx+1:] {
		if rowIsBlank(row) {
			continue
		}
		values := make([]string, 0, width)
		for _, cell := range row {
			values = append(values, CanonicalValue(cell))
		}
		if opts.PadRows {
			for len(values) < width {
				values = append(values, "")
			}
			values = values[:width]
		}
		out.Rows = append(out.Rows, values)
	}
	out.RowCount = len(out.Rows)
	return out
}

// CanonicalValue renders a cell as a string, converting date cells and
// recognizable date-formatted text to YYYY-MM-DD. Unparsable date-like text
// passes through unchanged; validity is the validators' concern.
func CanonicalValue(c Cell) string {
	if c.Kind == KindDate {
		return c.Date.Format("2006-01-02")
	}
	s := c.String()
	return CanonicalDateString(s)
}

// dateLayouts are the text date shapes accepted on top of the canonical
// YYYY-MM-DD form.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02.01.2006",
	"02-01-2006",
}

// CanonicalDateString converts common day-first date patterns to YYYY-MM-DD.
// Anything that does not parse is returned as-is.
func CanonicalDateString(s string) string {
	v := strings.TrimSpace(s)
	if !looksDateLike(v) {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// looksDateLike is a cheap pre-filter: exactly ten characters with separators
// in the positions the accepted layouts use.
func looksDateLike(s string) bool {
	if len(s) != 10 {
		return false
	}
	sep := func(b byte) bool { return b == '-' || b == '/' || b == '.' }
	return (sep(s[4]) && sep(s[7])) || (sep(s[2]) && sep(s[5]))
}

func rowIsBlank(row []Cell) bool {
	for _, c := range row {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}
