// Package money provides currency-safe arithmetic for derived compensation
// totals using integer öre and ISO-4217 SEK, wrapping go-money for safe
// arithmetic and shopspring/decimal for precise conversion.
package money

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// SEK is the only currency this engine deals in.
const SEK = "SEK"

// Money is a monetary value in SEK, stored as öre.
type Money struct {
	m *money.Money
}

// New creates a Money value from öre (minor units).
func New(ore int64) Money {
	return Money{m: money.New(ore, SEK)}
}

// FromDecimal converts a decimal SEK amount to Money, rounding to whole öre.
func FromDecimal(amount decimal.Decimal) Money {
	currency := money.GetCurrency(SEK)
	multiplier := decimal.New(1, int32(currency.Fraction))
	ore := amount.Mul(multiplier).Round(0).IntPart()
	return New(ore)
}

// FromString parses a user-entered amount such as "1 234,56" or "1234.56".
func FromString(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return FromDecimal(d), nil
}

// Ore returns the amount in minor units.
func (m Money) Ore() int64 {
	if m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Decimal returns the amount as whole SEK with öre as decimals.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Ore(), -int32(money.GetCurrency(SEK).Fraction))
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	if m.m == nil {
		return other
	}
	sum, err := m.m.Add(other.m)
	if err != nil {
		return m
	}
	return Money{m: sum}
}

// Display formats the amount with the SEK currency formatting rules.
func (m Money) Display() string {
	if m.m == nil {
		return money.New(0, SEK).Display()
	}
	return m.m.Display()
}
