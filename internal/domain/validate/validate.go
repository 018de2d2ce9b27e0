// Package validate holds the per-field validation rules for personnel and
// compensation records. Validators never fail hard: every problem comes back
// as a Warning value so whole batches can be processed and rendered inline.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/arvodia/arvodia/internal/domain/personnummer"
	"github.com/arvodia/arvodia/internal/domain/records"
)

// Severity classifies a warning. Errors block save and export, warnings are
// informational only.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Warning is a single field-level validation finding. Warnings are always
// recomputed from current values, never persisted.
type Warning struct {
	Field    string
	Message  string
	Severity Severity
}

// Func validates a single field value. Empty or whitespace-only input is
// always valid; required-ness is enforced separately by Record.
type Func func(value string) []Warning

// CostCenterResolver is the externally supplied lookup for valid cost-center
// references.
type CostCenterResolver interface {
	IsValidCostCenter(text string) bool
	ResolveDisplayText(code string) string
}

var (
	emailRe  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	periodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// Personnummer validates an identity number: all digits after separator
// stripping, length 10 or 12. A 10-digit number is accepted with an
// informational warning since it will be normalized to 12 digits.
func Personnummer(value string) []Warning {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	d := personnummer.Digits(v)
	for _, r := range d {
		if r < '0' || r > '9' {
			return errs(records.FieldPersonnummer, "personnumret får bara innehålla siffror")
		}
	}
	switch len(d) {
	case 12:
		return nil
	case 10:
		return []Warning{{
			Field:    records.FieldPersonnummer,
			Message:  "10-siffrigt personnummer normaliseras till 12 siffror",
			Severity: SeverityWarning,
		}}
	default:
		return errs(records.FieldPersonnummer, "personnumret måste vara 10 eller 12 siffror")
	}
}

// PersonnummerTyping is the live-input variant: it stays silent while the
// cleaned digit count is below 10 so a half-typed number is not flagged.
func PersonnummerTyping(value string) []Warning {
	d := personnummer.Digits(strings.TrimSpace(value))
	if len(d) < 10 {
		return nil
	}
	return Personnummer(value)
}

// Clearingnummer validates a bank clearing number: digits, length 4-5.
func Clearingnummer(value string) []Warning {
	return digitSpan(records.FieldClearingnummer, value, 4, 5, "clearingnumret ska vara 4-5 siffror")
}

// Kontonummer validates a bank account number: digits, length 7-11.
func Kontonummer(value string) []Warning {
	return digitSpan(records.FieldKontonummer, value, 7, 11, "kontonumret ska vara 7-11 siffror")
}

func digitSpan(field, value string, min, max int, msg string) []Warning {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	d := personnummer.Digits(v)
	for _, r := range d {
		if r < '0' || r > '9' {
			return []Warning{{Field: field, Message: msg, Severity: SeverityWarning}}
		}
	}
	if len(d) < min || len(d) > max {
		return []Warning{{Field: field, Message: msg, Severity: SeverityWarning}}
	}
	return nil
}

// Epost validates a contact email address shape.
func Epost(value string) []Warning {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	if !emailRe.MatchString(v) {
		return errs(records.FieldEpost, "ogiltig e-postadress")
	}
	return nil
}

// DateField returns a validator requiring YYYY-MM-DD resolving to a real
// calendar date.
func DateField(field string) Func {
	return func(value string) []Warning {
		v := strings.TrimSpace(value)
		if v == "" {
			return nil
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return errs(field, "datum anges som ÅÅÅÅ-MM-DD")
		}
		return nil
	}
}

// Period validates the compensation period, YYYY-MM.
func Period(value string) []Warning {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	if !periodRe.MatchString(v) {
		return errs(records.FieldPeriod, "period anges som ÅÅÅÅ-MM")
	}
	return nil
}

// Kostnadsstalle returns a validator resolving cost-center references against
// the injected resolver. An unresolved non-empty value is an error.
func Kostnadsstalle(resolver CostCenterResolver) Func {
	return func(value string) []Warning {
		v := strings.TrimSpace(value)
		if v == "" {
			return nil
		}
		if resolver == nil || !resolver.IsValidCostCenter(v) {
			return errs(records.FieldKostnadsstalle, fmt.Sprintf("okänt kostnadsställe: %s", v))
		}
		return nil
	}
}

// Skattesats validates the tax rate: numeric, 0-100 inclusive.
func Skattesats(value string) []Warning {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	n, err := parseNumber(v)
	if err != nil || n < 0 || n > 100 {
		return errs(records.FieldSkattesats, "skattesats anges i procent 0-100")
	}
	return nil
}

// Antal validates the compensation quantity: a positive number.
func Antal(value string) []Warning {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	n, err := parseNumber(v)
	if err != nil || n <= 0 {
		return errs(records.FieldAntal, "antal måste vara ett positivt tal")
	}
	return nil
}

// Arvode validates the unit rate: a number ≥ 0.
func Arvode(value string) []Warning {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	n, err := parseNumber(v)
	if err != nil || n < 0 {
		return errs(records.FieldArvode, "arvode måste vara ett tal ≥ 0")
	}
	return nil
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func errs(field, msg string) []Warning {
	return []Warning{{Field: field, Message: msg, Severity: SeverityError}}
}
