package codec

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/arvodia/arvodia/internal/domain/ingest/sheet"
)

func TestXLSXRoundTrip(t *testing.T) {
	data, err := XLSX{}.Encode(
		[]string{"Personnummer", "Förnamn"},
		[][]string{
			{"19900101-1234", "Anna"},
			{"19850315-5678", "Björn"},
		},
		"Personal",
	)
	require.NoError(t, err)

	grid, err := XLSX{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, "Personnummer", grid[0][0].String())
	assert.Equal(t, "Anna", grid[1][1].String())
	assert.Equal(t, "Björn", grid[2][1].String())
}

func TestXLSXDecodeCellKinds(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Antal", "Arvode", "Utbetalningsdatum"}))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 2))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 1200.50))
	// excelize applies a date number format for time values.
	require.NoError(t, f.SetCellValue("Sheet1", "C2", time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	grid, err := XLSX{}.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, grid, 2)

	assert.Equal(t, sheet.KindText, grid[0][0].Kind)

	assert.Equal(t, sheet.KindNumber, grid[1][0].Kind)
	assert.Equal(t, 2.0, grid[1][0].Number)

	assert.Equal(t, sheet.KindNumber, grid[1][1].Kind)
	assert.Equal(t, 1200.50, grid[1][1].Number)

	// The date-styled serial comes through as a typed date cell.
	require.Equal(t, sheet.KindDate, grid[1][2].Kind)
	assert.Equal(t, "2024-03-07", grid[1][2].Date.Format("2006-01-02"))
}

func TestXLSXDecodeEmptyWorkbookErrors(t *testing.T) {
	_, err := XLSX{}.Decode(bytes.NewReader([]byte("not an xlsx file")))
	assert.Error(t, err)
}
