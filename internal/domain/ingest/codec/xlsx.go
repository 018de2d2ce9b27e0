package codec

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arvodia/arvodia/internal/domain/ingest/sheet"
)

// XLSX decodes and encodes Excel workbooks via excelize. Decoding reads the
// first sheet; numeric cells carrying a date number format come out as typed
// date cells so the normalizer can canonicalize them.
type XLSX struct{}

// Decode reads the first sheet of an XLSX workbook into a raw grid.
func (XLSX) Decode(r io.Reader) (sheet.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	grid := make(sheet.Grid, 0, len(rows))
	for ri, row := range rows {
		cells := make([]sheet.Cell, 0, len(row))
		for ci, raw := range row {
			cells = append(cells, typedCell(f, sheetName, ci+1, ri+1, raw))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// Encode writes headers plus data rows into a single-sheet workbook.
func (XLSX) Encode(headers []string, rows [][]string, sheetName string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Blad1"
	}
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// typedCell classifies one raw cell value. Bare numbers stay numbers; only a
// date number format on the cell promotes a numeric serial to a date. Guessing
// dates from magnitude alone would mangle pay rates.
func typedCell(f *excelize.File, sheetName string, col, row int, raw string) sheet.Cell {
	if strings.TrimSpace(raw) == "" {
		return sheet.Empty()
	}
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return sheet.Text(raw)
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err == nil && hasDateFormat(f, sheetName, axis) {
		if t, err := sheet.SerialDate(num); err == nil {
			return sheet.Date(t)
		}
	}
	return sheet.Number(num)
}

// hasDateFormat reports whether the cell's style uses one of the built-in
// date/time number formats or a custom format with date tokens.
func hasDateFormat(f *excelize.File, sheetName, axis string) bool {
	styleID, err := f.GetCellStyle(sheetName, axis)
	if err != nil {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	switch {
	case style.NumFmt >= 14 && style.NumFmt <= 22:
		return true
	case style.NumFmt >= 27 && style.NumFmt <= 36:
		return true
	case style.NumFmt >= 45 && style.NumFmt <= 47:
		return true
	case style.NumFmt >= 50 && style.NumFmt <= 58:
		return true
	}
	if style.CustomNumFmt != nil {
		return strings.ContainsAny(strings.ToLower(*style.CustomNumFmt), "ymd")
	}
	return false
}
