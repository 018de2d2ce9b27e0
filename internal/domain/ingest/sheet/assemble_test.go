package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	t.Run("pairs headers with values in row order", func(t *testing.T) {
		headers := []string{"Förnamn", "Efternamn"}
		rows := [][]string{
			{"Anna", "Svensson"},
			{"Björn", "Lund"},
		}
		got := Assemble(headers, rows)

		require.Len(t, got, 2)
		assert.Equal(t, Row{"Förnamn": "Anna", "Efternamn": "Svensson"}, got[0])
		assert.Equal(t, Row{"Förnamn": "Björn", "Efternamn": "Lund"}, got[1])
	})

	t.Run("skips columns with empty header names", func(t *testing.T) {
		headers := []string{"Förnamn", "", "E-post"}
		rows := [][]string{{"Anna", "ignored", "anna@example.se"}}
		got := Assemble(headers, rows)

		require.Len(t, got, 1)
		assert.Equal(t, Row{"Förnamn": "Anna", "E-post": "anna@example.se"}, got[0])
	})

	t.Run("drops records whose values are all blank", func(t *testing.T) {
		headers := []string{"Förnamn", "Efternamn"}
		rows := [][]string{
			{"Anna", "Svensson"},
			{"  ", ""},
			{"Björn", ""},
		}
		got := Assemble(headers, rows)

		require.Len(t, got, 2)
		assert.Equal(t, "Björn", got[1]["Förnamn"])
	})

	t.Run("short rows leave trailing fields absent", func(t *testing.T) {
		headers := []string{"Förnamn", "Efternamn"}
		got := Assemble(headers, [][]string{{"Anna"}})

		require.Len(t, got, 1)
		_, ok := got[0]["Efternamn"]
		assert.False(t, ok)
	})
}
