package sheet

import "strings"

// Row is an associative record: header name → raw cell value.
type Row map[string]string

// Assemble zips the header mapping with data rows into associative records.
// Columns with an empty header name are skipped entirely. Rows whose every
// value trims to empty are dropped. Emission order matches row order.
func Assemble(headers []string, rows [][]string) []Row {
	out := make([]Row, 0, len(rows))
	for _, values := range rows {
		record := make(Row, len(headers))
		blank := true
		for i, name := range headers {
			if name == "" || i >= len(values) {
				continue
			}
			record[name] = values[i]
			if strings.TrimSpace(values[i]) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		out = append(out, record)
	}
	return out
}
