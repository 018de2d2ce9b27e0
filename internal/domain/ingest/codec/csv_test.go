package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvodia/arvodia/internal/domain/ingest/sheet"
	"github.com/arvodia/arvodia/internal/domain/records"
)

func TestCSVDecode(t *testing.T) {
	t.Run("text cells with empties", func(t *testing.T) {
		in := "Förnamn,Efternamn\nAnna,Svensson\nBjörn,\n"
		grid, err := CSV{}.Decode(strings.NewReader(in))

		require.NoError(t, err)
		require.Len(t, grid, 3)
		assert.Equal(t, sheet.KindText, grid[1][0].Kind)
		assert.Equal(t, "Anna", grid[1][0].Text)
		assert.Equal(t, sheet.KindEmpty, grid[2][1].Kind)
	})

	t.Run("semicolon delimiter", func(t *testing.T) {
		in := "Förnamn;Efternamn\nAnna;Svensson\n"
		grid, err := CSV{Delimiter: ';'}.Decode(strings.NewReader(in))

		require.NoError(t, err)
		require.Len(t, grid, 2)
		assert.Equal(t, "Svensson", grid[1][1].Text)
	})

	t.Run("ragged rows survive", func(t *testing.T) {
		in := "a,b,c\n1\n1,2,3,4\n"
		grid, err := CSV{}.Decode(strings.NewReader(in))

		require.NoError(t, err)
		assert.Len(t, grid[1], 1)
		assert.Len(t, grid[2], 4)
	})
}

func TestCSVEncode(t *testing.T) {
	data, err := CSV{}.Encode(
		[]string{"Förnamn", "Efternamn"},
		[][]string{{"Anna", "Svensson"}},
		"",
	)
	require.NoError(t, err)

	grid, err := CSV{}.Decode(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, "Förnamn", grid[0][0].Text)
	assert.Equal(t, "Svensson", grid[1][1].Text)
}

func TestDecodePersonnelCSV(t *testing.T) {
	t.Run("maps variant headers onto canonical fields", func(t *testing.T) {
		in := "persnr,förnamn,efternamn,mail,clearingnr,kontonr\n" +
			"19900101-1234,Anna,Svensson,anna@example.se,1234,1234567\n"
		rows, err := DecodePersonnelCSV(strings.NewReader(in), 0)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "19900101-1234", rows[0][records.FieldPersonnummer])
		assert.Equal(t, "Anna", rows[0][records.FieldFornamn])
		assert.Equal(t, "anna@example.se", rows[0][records.FieldEpost])
		assert.Equal(t, "1234", rows[0][records.FieldClearingnummer])
	})

	t.Run("drops blank rows", func(t *testing.T) {
		in := "personnummer,förnamn\n19900101-1234,Anna\n,\n"
		rows, err := DecodePersonnelCSV(strings.NewReader(in), 0)

		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("semicolon delimiter", func(t *testing.T) {
		in := "personnummer;förnamn\n19900101-1234;Anna\n"
		rows, err := DecodePersonnelCSV(strings.NewReader(in), ';')

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Anna", rows[0][records.FieldFornamn])
	})
}

func TestTryDecodePersonnelCSV(t *testing.T) {
	t.Run("engages on a mixed-case header line", func(t *testing.T) {
		in := "Personnummer,Förnamn,Efternamn\n19900101-1234,Anna,Svensson\n"
		rows, ok := TryDecodePersonnelCSV([]byte(in), 0)

		require.True(t, ok)
		require.Len(t, rows, 1)
		assert.Equal(t, "Anna", rows[0][records.FieldFornamn])
	})

	t.Run("declines when a header is unrecognized", func(t *testing.T) {
		in := "Personnummer,Smeknamn\n19900101-1234,Anna\n"
		_, ok := TryDecodePersonnelCSV([]byte(in), 0)
		assert.False(t, ok)
	})

	t.Run("declines without a personnummer column", func(t *testing.T) {
		in := "Förnamn,Efternamn\nAnna,Svensson\n"
		_, ok := TryDecodePersonnelCSV([]byte(in), 0)
		assert.False(t, ok)
	})

	t.Run("declines on a title line", func(t *testing.T) {
		in := "Medlemslista\nPersonnummer,Förnamn\n19900101-1234,Anna\n"
		_, ok := TryDecodePersonnelCSV([]byte(in), 0)
		assert.False(t, ok)
	})

	t.Run("semicolon delimiter", func(t *testing.T) {
		in := "Persnr;Mail\n19900101-1234;anna@example.se\n"
		rows, ok := TryDecodePersonnelCSV([]byte(in), ';')

		require.True(t, ok)
		require.Len(t, rows, 1)
		assert.Equal(t, "anna@example.se", rows[0][records.FieldEpost])
	})
}

func TestForFilename(t *testing.T) {
	assert.IsType(t, CSV{}, ForFilename("upload.csv"))
	assert.IsType(t, CSV{}, ForFilename("upload.TXT"))
	assert.IsType(t, XLSX{}, ForFilename("upload.xlsx"))
	assert.IsType(t, XLSX{}, ForFilename("upload"))
}
