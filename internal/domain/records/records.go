// Package records defines the two domain record shapes the engine produces,
// personnel and compensation entries, together with the fixed field
// vocabulary spreadsheet columns are matched against.
package records

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Field keys. These double as the expected spreadsheet column headers and as
// the keys of assembled rows, so they carry the user-facing Swedish names.
const (
	FieldPersonnummer    = "Personnummer"
	FieldFornamn         = "Förnamn"
	FieldEfternamn       = "Efternamn"
	FieldEpost           = "E-post"
	FieldClearingnummer  = "Clearingnummer"
	FieldKontonummer     = "Kontonummer"
	FieldAdress          = "Adress"
	FieldPostnummer      = "Postnummer"
	FieldOrt             = "Ort"
	FieldKostnadsstalle  = "Kostnadsställe"
	FieldKommentar       = "Kommentar"
	FieldSkattesats      = "Skattesats"
	FieldSocialaAvgifter = "Sociala avgifter"
	FieldManadslon       = "Månadslön"
	FieldTimlon          = "Timlön"
	FieldHeldagsarvode   = "Heldagsarvode"
	FieldAnstallningsnr  = "Anställningsnummer"

	FieldSkapadAv          = "Skapad av"
	FieldPeriod            = "Period"
	FieldPerson            = "Person"
	FieldAktivitetstyp     = "Aktivitetstyp"
	FieldAntal             = "Antal"
	FieldArvode            = "Arvode"
	FieldSumma             = "Summa"
	FieldUtbetalningsdatum = "Utbetalningsdatum"
	FieldStatus            = "Status"
)

// PersonnelFields is the fixed key set of a personnel record, in column order.
var PersonnelFields = []string{
	FieldPersonnummer,
	FieldFornamn,
	FieldEfternamn,
	FieldEpost,
	FieldClearingnummer,
	FieldKontonummer,
	FieldAdress,
	FieldPostnummer,
	FieldOrt,
	FieldKostnadsstalle,
	FieldKommentar,
	FieldSkattesats,
	FieldSocialaAvgifter,
	FieldManadslon,
	FieldTimlon,
	FieldHeldagsarvode,
	FieldAnstallningsnr,
}

// CompensationFields is the fixed key set of a compensation record, in column order.
var CompensationFields = []string{
	FieldSkapadAv,
	FieldPeriod,
	FieldPerson,
	FieldKostnadsstalle,
	FieldAktivitetstyp,
	FieldAntal,
	FieldArvode,
	FieldSumma,
	FieldUtbetalningsdatum,
	FieldKommentar,
	FieldStatus,
}

// Personnel is a typed personnel entry. Missing cells come through as zero
// values, never as absent fields.
type Personnel struct {
	Personnummer    string
	Fornamn         string
	Efternamn       string
	Epost           string
	Clearingnummer  string
	Kontonummer     string
	Adress          string
	Postnummer      string
	Ort             string
	Kostnadsstalle  string
	Kommentar       string
	Skattesats      float64
	SocialaAvgifter bool
	Manadslon       decimal.Decimal
	Timlon          decimal.Decimal
	Heldagsarvode   decimal.Decimal
	Anstallningsnr  string
}

// Compensation is a typed compensation (arvode) entry. Summa is always
// derived from Antal × Arvode, never trusted from input.
type Compensation struct {
	SkapadAv          string
	Period            string // YYYY-MM
	Person            string
	Kostnadsstalle    string
	Aktivitetstyp     string
	Antal             decimal.Decimal
	Arvode            decimal.Decimal
	Summa             decimal.Decimal
	Utbetalningsdatum string // YYYY-MM-DD, optional
	Kommentar         string
	Status            string
}

// PersonnelFromRow builds a typed personnel record from an assembled row.
// Unparsable numbers become zero; the validators flag them separately.
func PersonnelFromRow(row map[string]string) Personnel {
	get := func(key string) string { return strings.TrimSpace(row[key]) }
	return Personnel{
		Personnummer:    get(FieldPersonnummer),
		Fornamn:         get(FieldFornamn),
		Efternamn:       get(FieldEfternamn),
		Epost:           get(FieldEpost),
		Clearingnummer:  get(FieldClearingnummer),
		Kontonummer:     get(FieldKontonummer),
		Adress:          get(FieldAdress),
		Postnummer:      get(FieldPostnummer),
		Ort:             get(FieldOrt),
		Kostnadsstalle:  get(FieldKostnadsstalle),
		Kommentar:       get(FieldKommentar),
		Skattesats:      parseFloat(get(FieldSkattesats)),
		SocialaAvgifter: parseBool(get(FieldSocialaAvgifter)),
		Manadslon:       parseDecimal(get(FieldManadslon)),
		Timlon:          parseDecimal(get(FieldTimlon)),
		Heldagsarvode:   parseDecimal(get(FieldHeldagsarvode)),
		Anstallningsnr:  get(FieldAnstallningsnr),
	}
}

// CompensationFromRow builds a typed compensation record from an assembled
// row. The status always starts at pending and any supplied total is ignored;
// compensation.DeriveTotal recomputes it.
func CompensationFromRow(row map[string]string) Compensation {
	get := func(key string) string { return strings.TrimSpace(row[key]) }
	return Compensation{
		SkapadAv:          get(FieldSkapadAv),
		Period:            get(FieldPeriod),
		Person:            get(FieldPerson),
		Kostnadsstalle:    get(FieldKostnadsstalle),
		Aktivitetstyp:     get(FieldAktivitetstyp),
		Antal:             parseDecimal(get(FieldAntal)),
		Arvode:            parseDecimal(get(FieldArvode)),
		Utbetalningsdatum: get(FieldUtbetalningsdatum),
		Kommentar:         get(FieldKommentar),
		Status:            "pending",
	}
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "ja", "yes", "true", "1", "x":
		return true
	}
	return false
}
