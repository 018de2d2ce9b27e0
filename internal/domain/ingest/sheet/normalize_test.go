package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	expected := []string{"Personnummer", "Förnamn"}

	t.Run("discards rows above the header and blank rows", func(t *testing.T) {
		grid := Grid{
			row("Lönelista"),
			row("Personnummer", "Förnamn"),
			row("8001011234", "Anna"),
			row("", ""),
			row("9102023456", "Björn"),
		}
		n := Normalize(grid, Options{Expected: expected})

		assert.Equal(t, 1, n.HeaderRowIndex)
		assert.Equal(t, []string{"Personnummer", "Förnamn"}, n.Headers)
		assert.Equal(t, 2, n.RowCount)
		assert.Len(t, n.Rows, 2)
	})

	t.Run("pads and truncates rows to header width", func(t *testing.T) {
		grid := Grid{
			row("Personnummer", "Förnamn"),
			row("8001011234"),
			row("9102023456", "Björn", "extra"),
		}
		n := Normalize(grid, Options{Expected: expected, PadRows: true})

		require.Len(t, n.Rows, 2)
		assert.Equal(t, []string{"8001011234", ""}, n.Rows[0])
		assert.Equal(t, []string{"9102023456", "Björn"}, n.Rows[1])
	})

	t.Run("converts date cells to canonical strings", func(t *testing.T) {
		grid := Grid{
			row("Personnummer", "Förnamn"),
			{Text("8001011234"), Date(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC))},
		}
		n := Normalize(grid, Options{Expected: expected})

		require.Len(t, n.Rows, 1)
		assert.Equal(t, "2024-03-07", n.Rows[0][1])
	})

	t.Run("keeps header cells trimmed including empties", func(t *testing.T) {
		grid := Grid{
			{Text(" Personnummer "), Empty(), Text("Förnamn")},
			row("8001011234", "ignored", "Anna"),
		}
		n := Normalize(grid, Options{Expected: expected})
		assert.Equal(t, []string{"Personnummer", "", "Förnamn"}, n.Headers)
	})

	t.Run("empty grid", func(t *testing.T) {
		n := Normalize(nil, Options{Expected: expected})
		assert.Zero(t, n.RowCount)
		assert.Empty(t, n.Headers)
	})
}

func TestCanonicalDateString(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2024-03-07", "2024-03-07"},
		{"07/03/2024", "2024-03-07"},
		{"07.03.2024", "2024-03-07"},
		{"07-03-2024", "2024-03-07"},
		{"99/99/2024", "99/99/2024"}, // unparsable passes through
		{"8001011234", "8001011234"},
		{"not a date", "not a date"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanonicalDateString(tc.in), "input %q", tc.in)
	}
}

func TestSerialDate(t *testing.T) {
	// Serial 45000 is 2023-03-15 in the 1900 date system.
	got, err := SerialDate(45000)
	require.NoError(t, err)
	assert.Equal(t, "2023-03-15", got.Format("2006-01-02"))
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", Empty().String())
	assert.Equal(t, "hej", Text("hej").String())
	assert.Equal(t, "3.5", Number(3.5).String())
	assert.Equal(t, "1200", Number(1200).String())
}
