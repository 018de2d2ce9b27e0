package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/arvodia/arvodia/internal/domain/ingest/sheet"
	"github.com/arvodia/arvodia/internal/domain/records"
)

// CSV decodes delimiter-separated uploads into a raw grid. Every cell comes
// through as text; the normalizer handles date canonicalization.
type CSV struct {
	// Delimiter overrides the comma default (e.g. ';' for Swedish exports).
	Delimiter rune
}

// Decode reads the whole input into a grid of text cells.
func (c CSV) Decode(r io.Reader) (sheet.Grid, error) {
	cr := csv.NewReader(r)
	if c.Delimiter != 0 {
		cr.Comma = c.Delimiter
	}
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var grid sheet.Grid
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		row := make([]sheet.Cell, 0, len(record))
		for _, v := range record {
			if strings.TrimSpace(v) == "" {
				row = append(row, sheet.Empty())
			} else {
				row = append(row, sheet.Text(v))
			}
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// Encode writes headers plus rows as plain CSV.
func (c CSV) Encode(headers []string, rows [][]string, _ string) ([]byte, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if c.Delimiter != 0 {
		w.Comma = c.Delimiter
	}
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// personnelRow is the struct-tagged fast path for well-formed personnel CSV
// exports. The tags cover the common header variants (gocsv matches by
// header name).
type personnelRow struct {
	Personnummer  string `csv:"personnummer"`
	Persnr        string `csv:"persnr"`
	Fornamn       string `csv:"förnamn"`
	Fornamn2      string `csv:"fornamn"`
	Efternamn     string `csv:"efternamn"`
	Epost         string `csv:"e-post"`
	Epost2        string `csv:"epost"`
	Mail          string `csv:"mail"`
	Clearingnr    string `csv:"clearingnummer"`
	Clearingnr2   string `csv:"clearingnr"`
	Kontonr       string `csv:"kontonummer"`
	Kontonr2      string `csv:"kontonr"`
	Adress        string `csv:"adress"`
	Postnummer    string `csv:"postnummer"`
	Ort           string `csv:"ort"`
	Kostnadsstlle string `csv:"kostnadsställe"`
	Kommentar     string `csv:"kommentar"`
	Skattesats    string `csv:"skattesats"`
	SocAvgifter   string `csv:"sociala avgifter"`
	Manadslon     string `csv:"månadslön"`
	Timlon        string `csv:"timlön"`
	Heldag        string `csv:"heldagsarvode"`
	Anstnr        string `csv:"anställningsnummer"`
}

// personnelHeaderNames is the set of headers the fast path recognizes,
// mirroring the personnelRow tags.
var personnelHeaderNames = map[string]bool{
	"personnummer": true, "persnr": true,
	"förnamn": true, "fornamn": true,
	"efternamn": true,
	"e-post":    true, "epost": true, "mail": true,
	"clearingnummer": true, "clearingnr": true,
	"kontonummer": true, "kontonr": true,
	"adress": true, "postnummer": true, "ort": true,
	"kostnadsställe": true, "kommentar": true,
	"skattesats": true, "sociala avgifter": true,
	"månadslön": true, "timlön": true, "heldagsarvode": true,
	"anställningsnummer": true,
}

// TryDecodePersonnelCSV attempts the struct-tagged fast path on an upload
// whose first line is already a personnel header (case-insensitively).
// Returns ok=false when the shape does not fit; callers then fall back to
// full grid normalization.
func TryDecodePersonnelCSV(data []byte, delimiter rune) ([]sheet.Row, bool) {
	line, rest, found := bytes.Cut(data, []byte("\n"))
	if !found {
		return nil, false
	}
	header := strings.ToLower(strings.TrimRight(string(line), "\r"))
	sep := ","
	if delimiter != 0 {
		sep = string(delimiter)
	}
	sawPersonnummer := false
	for _, name := range strings.Split(header, sep) {
		name = strings.TrimSpace(name)
		if !personnelHeaderNames[name] {
			return nil, false
		}
		if name == "personnummer" || name == "persnr" {
			sawPersonnummer = true
		}
	}
	if !sawPersonnummer {
		return nil, false
	}

	// Lowercase the header line so gocsv's tag matching is exact.
	buf := append([]byte(header+"\n"), rest...)
	rows, err := DecodePersonnelCSV(bytes.NewReader(buf), delimiter)
	if err != nil {
		return nil, false
	}
	return rows, true
}

// DecodePersonnelCSV is a fast path for CSV files whose headers already match
// the personnel vocabulary: rows come back keyed by the canonical field names,
// ready for validation, skipping grid normalization entirely.
func DecodePersonnelCSV(r io.Reader, delimiter rune) ([]sheet.Row, error) {
	if delimiter != 0 {
		gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
			cr := csv.NewReader(in)
			cr.Comma = delimiter
			cr.LazyQuotes = true
			cr.TrimLeadingSpace = true
			return cr
		})
		defer gocsv.SetCSVReader(gocsv.DefaultCSVReader)
	}

	var raw []personnelRow
	if err := gocsv.Unmarshal(r, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	out := make([]sheet.Row, 0, len(raw))
	for _, row := range raw {
		rec := sheet.Row{
			records.FieldPersonnummer:    coalesce(row.Personnummer, row.Persnr),
			records.FieldFornamn:         coalesce(row.Fornamn, row.Fornamn2),
			records.FieldEfternamn:       row.Efternamn,
			records.FieldEpost:           coalesce(row.Epost, row.Epost2, row.Mail),
			records.FieldClearingnummer:  coalesce(row.Clearingnr, row.Clearingnr2),
			records.FieldKontonummer:     coalesce(row.Kontonr, row.Kontonr2),
			records.FieldAdress:          row.Adress,
			records.FieldPostnummer:      row.Postnummer,
			records.FieldOrt:             row.Ort,
			records.FieldKostnadsstalle:  row.Kostnadsstlle,
			records.FieldKommentar:       row.Kommentar,
			records.FieldSkattesats:      row.Skattesats,
			records.FieldSocialaAvgifter: row.SocAvgifter,
			records.FieldManadslon:       row.Manadslon,
			records.FieldTimlon:          row.Timlon,
			records.FieldHeldagsarvode:   row.Heldag,
			records.FieldAnstallningsnr:  row.Anstnr,
		}
		if rowBlank(rec) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func rowBlank(r sheet.Row) bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
