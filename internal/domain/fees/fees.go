// Package fees resolves statutory employer fee rates from a table of age
// ranges. Tables are validated for overlaps and gaps, but resolution is a
// pure lookup that behaves identically over invalid tables so that
// misconfiguration stays visible instead of being masked.
package fees

import (
	"fmt"
	"sort"
	"time"

	"github.com/arvodia/arvodia/internal/domain/personnummer"
)

// Rule maps an inclusive age range to an employer fee rate in percent.
// A nil UpperBound means the range is open-ended.
type Rule struct {
	LowerBound  int     `json:"lowerBound"`
	UpperBound  *int    `json:"upperBound"`
	Rate        float64 `json:"feeRate"`
	Description string  `json:"description"`
}

// Table is an ordered collection of age rules.
type Table []Rule

// Result is the outcome of validating a fee table. Warnings never affect
// validity; only errors do.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// maxPlausibleAge triggers a sanity warning on upper bounds above it.
const maxPlausibleAge = 120

// Validate checks a fee table for structural problems: negative or inverted
// bounds, rates outside 0-100, overlapping ranges (errors) and coverage gaps
// (warnings, since ages outside every rule simply resolve to no rate).
func Validate(t Table) Result {
	var res Result

	for i, r := range t {
		if r.LowerBound < 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("regel %d: nedre gräns får inte vara negativ", i+1))
		}
		if r.UpperBound != nil {
			if *r.UpperBound <= r.LowerBound {
				res.Errors = append(res.Errors, fmt.Sprintf("regel %d: övre gräns måste vara större än nedre", i+1))
			}
			if *r.UpperBound > maxPlausibleAge {
				res.Warnings = append(res.Warnings, fmt.Sprintf("regel %d: övre gräns %d ser orimlig ut", i+1, *r.UpperBound))
			}
		}
		if r.Rate < 0 || r.Rate > 100 {
			res.Errors = append(res.Errors, fmt.Sprintf("regel %d: avgiften anges i procent 0-100", i+1))
		}
	}

	sorted := make(Table, len(t))
	copy(sorted, t)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LowerBound < sorted[j].LowerBound
	})

	for i := 0; i < len(sorted)-1; i++ {
		cur, next := sorted[i], sorted[i+1]
		if cur.UpperBound == nil {
			// Open-ended range swallows everything after it.
			res.Errors = append(res.Errors, fmt.Sprintf(
				"åldersintervallen %d- och %d- överlappar", cur.LowerBound, next.LowerBound))
			continue
		}
		if *cur.UpperBound >= next.LowerBound {
			res.Errors = append(res.Errors, fmt.Sprintf(
				"åldersintervallen %d-%d och %d- överlappar", cur.LowerBound, *cur.UpperBound, next.LowerBound))
		} else if *cur.UpperBound+1 < next.LowerBound {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"åldrarna %d-%d täcks inte av någon regel", *cur.UpperBound+1, next.LowerBound-1))
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// Resolve returns the rate of the first rule in table order covering age.
// It is a pure lookup and does not require the table to have passed Validate.
func Resolve(age int, t Table) (float64, bool) {
	for _, r := range t {
		if age < r.LowerBound {
			continue
		}
		if r.UpperBound == nil || age <= *r.UpperBound {
			return r.Rate, true
		}
	}
	return 0, false
}

// ResolveFromPersonnummer derives the person's age at ref from an identity
// number and resolves the rate. Returns false when no age can be derived or
// no rule covers it.
func ResolveFromPersonnummer(id string, t Table, ref time.Time) (float64, bool) {
	age, ok := personnummer.DeriveAge(id, ref)
	if !ok {
		return 0, false
	}
	return Resolve(age, t)
}
