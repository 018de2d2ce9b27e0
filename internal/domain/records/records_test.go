package records

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPersonnelFromRow(t *testing.T) {
	rec := PersonnelFromRow(map[string]string{
		FieldPersonnummer:    " 19900101-1234 ",
		FieldFornamn:         "Anna",
		FieldEfternamn:       "Svensson",
		FieldSkattesats:      "31,5",
		FieldSocialaAvgifter: "Ja",
		FieldManadslon:       "36000",
		FieldTimlon:          "225,50",
	})

	assert.Equal(t, "19900101-1234", rec.Personnummer)
	assert.Equal(t, "Anna", rec.Fornamn)
	assert.Equal(t, 31.5, rec.Skattesats)
	assert.True(t, rec.SocialaAvgifter)
	assert.True(t, rec.Manadslon.Equal(decimal.NewFromInt(36000)))
	assert.True(t, rec.Timlon.Equal(decimal.RequireFromString("225.50")))

	// Missing cells come through as zero values, never absent.
	assert.Equal(t, "", rec.Epost)
	assert.True(t, rec.Heldagsarvode.IsZero())
	assert.Zero(t, rec.Skattesats-31.5)
}

func TestCompensationFromRow(t *testing.T) {
	rec := CompensationFromRow(map[string]string{
		FieldPeriod: "2024-03",
		FieldPerson: "19900101-1234",
		FieldAntal:  "2",
		FieldArvode: "1200",
		FieldSumma:  "999999",
	})

	assert.Equal(t, "2024-03", rec.Period)
	assert.True(t, rec.Antal.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "pending", rec.Status)
	// The supplied total is never read into the record.
	assert.True(t, rec.Summa.IsZero())
}

func TestParsingLeniency(t *testing.T) {
	rec := PersonnelFromRow(map[string]string{
		FieldSkattesats: "trettio",
		FieldManadslon:  "mycket",
	})
	assert.Zero(t, rec.Skattesats)
	assert.True(t, rec.Manadslon.IsZero())
}
