// Package sheet turns raw, ragged spreadsheet grids into clean rectangular
// data: it locates the header row, canonicalizes date cells and assembles
// header-keyed records. Everything here is a pure transformation; decoding the
// file format itself lives in the codec package.
package sheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// CellKind tags the value a decoder extracted from a spreadsheet cell.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
	KindDate
)

// Cell is a single untyped spreadsheet cell as produced by a decoder.
// Exactly one of Text, Number or Date is meaningful, selected by Kind.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// Grid is a raw 2-D array of cells. Rows may be ragged.
type Grid [][]Cell

// Empty returns an empty cell.
func Empty() Cell { return Cell{Kind: KindEmpty} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: KindText, Text: s} }

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{Kind: KindNumber, Number: v} }

// Date returns a date cell.
func Date(t time.Time) Cell { return Cell{Kind: KindDate, Date: t} }

// String renders the cell as its canonical string form. Dates come out as
// YYYY-MM-DD, numbers in their shortest decimal representation.
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// IsBlank reports whether the cell is empty or whitespace-only text.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case KindEmpty:
		return true
	case KindText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

// SerialDate converts an Excel numeric date serial to a time. Decoders call
// this when a numeric cell carries a date number format.
func SerialDate(serial float64) (time.Time, error) {
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("date serial %v: %w", serial, err)
	}
	return t, nil
}
