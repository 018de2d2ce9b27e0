package validate

import (
	"fmt"
	"strings"

	"github.com/arvodia/arvodia/internal/domain/records"
)

// Kind selects which rule table and required-field list apply.
type Kind int

const (
	KindPersonnel Kind = iota
	KindCompensation
)

// Table is a field-name → validator dispatch table.
type Table map[string]Func

// Rules builds the full dispatch table for a record kind. The cost-center
// resolver is injected since valid references live outside the engine.
func Rules(kind Kind, resolver CostCenterResolver) Table {
	switch kind {
	case KindPersonnel:
		return Table{
			records.FieldPersonnummer:   Personnummer,
			records.FieldEpost:          Epost,
			records.FieldClearingnummer: Clearingnummer,
			records.FieldKontonummer:    Kontonummer,
			records.FieldKostnadsstalle: Kostnadsstalle(resolver),
			records.FieldSkattesats:     Skattesats,
		}
	case KindCompensation:
		return Table{
			records.FieldPeriod:            Period,
			records.FieldKostnadsstalle:    Kostnadsstalle(resolver),
			records.FieldAntal:             Antal,
			records.FieldArvode:            Arvode,
			records.FieldUtbetalningsdatum: DateField(records.FieldUtbetalningsdatum),
		}
	}
	return nil
}

// requiredFields lists the fields whose absence is always an error,
// independent of the per-field validators' leniency toward empty input.
func requiredFields(kind Kind) []string {
	switch kind {
	case KindPersonnel:
		return []string{records.FieldPersonnummer, records.FieldFornamn, records.FieldEfternamn}
	case KindCompensation:
		return []string{records.FieldPeriod, records.FieldPerson, records.FieldAntal, records.FieldArvode}
	}
	return nil
}

// Field runs the single-field validator for one field of a record kind, for
// on-blur style checks. Unknown fields produce no warnings.
func Field(kind Kind, resolver CostCenterResolver, field, value string) []Warning {
	fn, ok := Rules(kind, resolver)[field]
	if !ok {
		return nil
	}
	return fn(value)
}

// Record runs every applicable field validator over an assembled row and
// enforces the kind's required-field list. Field order of the warnings
// follows the record kind's column order so output is stable.
func Record(kind Kind, resolver CostCenterResolver, row map[string]string) []Warning {
	rules := Rules(kind, resolver)

	var fields []string
	switch kind {
	case KindPersonnel:
		fields = records.PersonnelFields
	case KindCompensation:
		fields = records.CompensationFields
	}

	required := make(map[string]bool)
	for _, f := range requiredFields(kind) {
		required[f] = true
	}

	var out []Warning
	for _, field := range fields {
		value := row[field]
		if required[field] && strings.TrimSpace(value) == "" {
			out = append(out, Warning{
				Field:    field,
				Message:  fmt.Sprintf("%s är obligatoriskt", field),
				Severity: SeverityError,
			})
			continue
		}
		if fn, ok := rules[field]; ok {
			out = append(out, fn(value)...)
		}
	}
	return out
}

// HasErrors reports whether any warning carries error severity. A record is
// acceptable for persistence iff this is false; plain warnings never block.
func HasErrors(warnings []Warning) bool {
	for _, w := range warnings {
		if w.Severity == SeverityError {
			return true
		}
	}
	return false
}
