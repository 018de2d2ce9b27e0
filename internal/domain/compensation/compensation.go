// Package compensation computes derived totals for arvode entries and owns
// the small export status lifecycle pending → sent | error.
package compensation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/arvodia/arvodia/internal/domain/records"
	"github.com/arvodia/arvodia/pkg/money"
)

// Status is the export state of a compensation record.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusError   Status = "error"
)

// CanTransition reports whether moving from s to next is a legal lifecycle
// step. New records start at pending; sent is terminal; error may be retried.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusSent || next == StatusError
	case StatusError:
		return next == StatusSent || next == StatusError
	default:
		return false
	}
}

// DeriveTotal computes quantity × rate. The total is always recomputed from
// its operands; externally supplied totals must be overwritten with this
// result before persisting or displaying.
func DeriveTotal(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate)
}

// Finalize recomputes the record's total and stamps a fresh record as
// pending. Any total carried in from the spreadsheet is discarded.
func Finalize(c *records.Compensation) {
	c.Summa = DeriveTotal(c.Antal, c.Arvode)
	if c.Status == "" {
		c.Status = string(StatusPending)
	}
}

// DisplayTotal renders the derived total as a formatted SEK amount.
func DisplayTotal(c records.Compensation) string {
	return money.FromDecimal(DeriveTotal(c.Antal, c.Arvode)).Display()
}

// Exporter is the external payroll export collaborator. A nil error means
// the record was accepted downstream.
type Exporter interface {
	Export(ctx context.Context, c records.Compensation) error
}

// ExportOutcome reports one record's export attempt.
type ExportOutcome struct {
	Index  int
	Status Status
	Err    error
}

// Dispatch exports every pending or retryable record in the batch and applies
// the resulting status transitions. Failures are collected per record; the
// batch never aborts early. Records already sent are left untouched.
func Dispatch(ctx context.Context, exporter Exporter, batch []records.Compensation) []ExportOutcome {
	outcomes := make([]ExportOutcome, 0, len(batch))
	for i := range batch {
		current := Status(batch[i].Status)
		if !current.CanTransition(StatusSent) {
			continue
		}
		err := exporter.Export(ctx, batch[i])
		next := StatusSent
		if err != nil {
			next = StatusError
			err = fmt.Errorf("export rad %d: %w", i+1, err)
		}
		batch[i].Status = string(next)
		outcomes = append(outcomes, ExportOutcome{Index: i, Status: next, Err: err})
	}
	return outcomes
}
