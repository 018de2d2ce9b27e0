// Package personnummer canonicalizes Swedish personal identity numbers
// between their 10- and 12-digit forms and derives ages from them.
//
// Century inference for 10-digit numbers uses a rolling cutoff: a two-digit
// year up to (current year mod 100)+10 is taken as the current century,
// anything above as the previous one. Numbers within roughly ten years of the
// rollover are inherently ambiguous and cannot be fully disambiguated without
// an authoritative registry; the reference time is therefore always an
// explicit parameter so callers stay deterministic and testable.
package personnummer

import (
	"strings"
	"time"
)

// Digits strips common separators (space, hyphen, plus) and returns the bare
// content. The result is not guaranteed to be numeric.
func Digits(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "+", "").Replace(s)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Normalize canonicalizes an identity number to the 12-digit hyphenated form
// YYYYMMDD-NNNN. A 10-digit input has its century inferred against now.
// Anything that is not 10 or 12 digits is returned unchanged; normalization
// is best-effort and validity is a separate concern.
func Normalize(s string, now time.Time) string {
	d := Digits(s)
	if !allDigits(d) {
		return s
	}
	switch len(d) {
	case 10:
		yy := int(d[0]-'0')*10 + int(d[1]-'0')
		currentYear := now.Year()
		currentCentury := currentYear / 100 * 100
		cutoff := currentYear - currentCentury + 10
		century := currentCentury
		if yy > cutoff {
			century -= 100
		}
		year := century + yy
		return itoa4(year) + d[2:6] + "-" + d[6:10]
	case 12:
		return d[:8] + "-" + d[8:12]
	default:
		return s
	}
}

// DeriveAge computes whole years elapsed between the identity number's birth
// date and ref, decrementing when the anniversary has not yet occurred. The
// second return is false when no plausible birth date can be parsed.
func DeriveAge(s string, ref time.Time) (int, bool) {
	d := Digits(Normalize(s, ref))
	if !allDigits(d) || len(d) != 12 {
		return 0, false
	}
	year := atoi(d[:4])
	month := atoi(d[4:6])
	day := atoi(d[6:8])

	if year < 1900 || year > ref.Year()+1 {
		return 0, false
	}
	if month < 1 || month > 12 {
		return 0, false
	}
	if day < 1 || day > 31 {
		return 0, false
	}
	// Reject dates like Feb 30 that time.Date would silently roll over.
	birth := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if birth.Year() != year || int(birth.Month()) != month || birth.Day() != day {
		return 0, false
	}

	age := ref.Year() - year
	if int(ref.Month()) < month || (int(ref.Month()) == month && ref.Day() < day) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

func itoa4(n int) string {
	return string([]byte{
		byte('0' + n/1000%10),
		byte('0' + n/100%10),
		byte('0' + n/10%10),
		byte('0' + n%10),
	})
}
