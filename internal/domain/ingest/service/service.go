// Package service orchestrates bulk spreadsheet imports: decode, normalize,
// assemble, validate, and collect per-row outcomes without ever aborting the
// batch.
package service

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/arvodia/arvodia/internal/domain/compensation"
	"github.com/arvodia/arvodia/internal/domain/ingest/codec"
	"github.com/arvodia/arvodia/internal/domain/ingest/sheet"
	"github.com/arvodia/arvodia/internal/domain/records"
	"github.com/arvodia/arvodia/internal/domain/validate"
)

// RowIssues pairs a rejected data row (1-based, counted over retained rows)
// with the warnings that rejected it.
type RowIssues struct {
	Row      int
	Warnings []validate.Warning
}

// ColumnSuggestion maps an unrecognized spreadsheet column to the closest
// known field name, for "did you mean" feedback in the upload UI.
type ColumnSuggestion struct {
	Header     string
	Suggestion string
}

// PersonnelResult is the outcome of a personnel bulk import.
type PersonnelResult struct {
	JobID          uuid.UUID
	HeaderRowIndex int
	RowsTotal      int
	RowsAccepted   int
	RowsRejected   int
	Accepted       []records.Personnel
	Rejected       []RowIssues
	UnknownColumns []ColumnSuggestion
}

// CompensationResult is the outcome of a compensation bulk import. Accepted
// records carry their derived totals and start at status pending.
type CompensationResult struct {
	JobID          uuid.UUID
	HeaderRowIndex int
	RowsTotal      int
	RowsAccepted   int
	RowsRejected   int
	Accepted       []records.Compensation
	Rejected       []RowIssues
	UnknownColumns []ColumnSuggestion
}

// Service runs bulk imports. All heavy lifting is delegated to the pure
// sheet/validate packages; the service only wires them together and logs.
type Service struct {
	resolver validate.CostCenterResolver
	logger   *slog.Logger

	// CSVDelimiter overrides the comma default for CSV uploads.
	CSVDelimiter rune
	// ScanLimit caps header detection depth (0 = sheet.DefaultScanLimit).
	ScanLimit int
}

// New creates an import service. The cost-center resolver is the external
// collaborator used by field validation; logger must not be nil.
func New(resolver validate.CostCenterResolver, logger *slog.Logger) *Service {
	return &Service{resolver: resolver, logger: logger}
}

// ImportPersonnel decodes the upload, locates the header row against the
// personnel vocabulary and validates every assembled record. Records with
// error-severity warnings are rejected; plain warnings do not block. CSV
// uploads whose first line is already a personnel header skip grid
// normalization via the struct-tagged fast path.
func (s *Service) ImportPersonnel(r io.Reader, filename string) (*PersonnelResult, error) {
	rows, norm, err := s.personnelRows(r, filename)
	if err != nil {
		return nil, err
	}

	result := &PersonnelResult{
		JobID:          uuid.New(),
		HeaderRowIndex: norm.HeaderRowIndex,
		RowsTotal:      len(rows),
		UnknownColumns: suggestColumns(norm.Headers, records.PersonnelFields),
	}

	for i, row := range rows {
		warnings := validate.Record(validate.KindPersonnel, s.resolver, row)
		if validate.HasErrors(warnings) {
			result.Rejected = append(result.Rejected, RowIssues{Row: i + 1, Warnings: warnings})
			continue
		}
		result.Accepted = append(result.Accepted, records.PersonnelFromRow(row))
	}
	result.RowsAccepted = len(result.Accepted)
	result.RowsRejected = len(result.Rejected)

	s.logger.Info("personnel import finished",
		slog.String("job_id", result.JobID.String()),
		slog.String("file", filename),
		slog.Int("header_row", result.HeaderRowIndex),
		slog.Int("rows_total", result.RowsTotal),
		slog.Int("rows_accepted", result.RowsAccepted),
		slog.Int("rows_rejected", result.RowsRejected))
	return result, nil
}

// ImportCompensation is the compensation counterpart of ImportPersonnel.
// Every accepted record has its total recomputed from quantity × rate;
// totals present in the upload are discarded.
func (s *Service) ImportCompensation(r io.Reader, filename string) (*CompensationResult, error) {
	rows, norm, err := s.assemble(r, filename, records.CompensationFields)
	if err != nil {
		return nil, err
	}

	result := &CompensationResult{
		JobID:          uuid.New(),
		HeaderRowIndex: norm.HeaderRowIndex,
		RowsTotal:      len(rows),
		UnknownColumns: suggestColumns(norm.Headers, records.CompensationFields),
	}

	for i, row := range rows {
		warnings := validate.Record(validate.KindCompensation, s.resolver, row)
		if validate.HasErrors(warnings) {
			result.Rejected = append(result.Rejected, RowIssues{Row: i + 1, Warnings: warnings})
			continue
		}
		rec := records.CompensationFromRow(row)
		compensation.Finalize(&rec)
		result.Accepted = append(result.Accepted, rec)
	}
	result.RowsAccepted = len(result.Accepted)
	result.RowsRejected = len(result.Rejected)

	s.logger.Info("compensation import finished",
		slog.String("job_id", result.JobID.String()),
		slog.String("file", filename),
		slog.Int("rows_total", result.RowsTotal),
		slog.Int("rows_accepted", result.RowsAccepted),
		slog.Int("rows_rejected", result.RowsRejected))
	return result, nil
}

// EncodeForDownload re-encodes a normalized grid as a single-sheet workbook,
// for returning a cleaned-up file to the user.
func (s *Service) EncodeForDownload(n sheet.Normalized, sheetName string) ([]byte, error) {
	return codec.XLSX{}.Encode(n.Headers, n.Rows, sheetName)
}

// personnelRows tries codec.TryDecodePersonnelCSV first and falls back to the
// generic decode-normalize-assemble pipeline. On the fast path the header row
// is line zero and every column is known by construction.
func (s *Service) personnelRows(r io.Reader, filename string) ([]sheet.Row, sheet.Normalized, error) {
	if _, isCSV := codec.ForFilename(filename).(codec.CSV); isCSV {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, sheet.Normalized{}, fmt.Errorf("read %s: %w", filename, err)
		}
		if rows, ok := codec.TryDecodePersonnelCSV(data, s.CSVDelimiter); ok {
			return rows, sheet.Normalized{RowCount: len(rows)}, nil
		}
		r = bytes.NewReader(data)
	}
	return s.assemble(r, filename, records.PersonnelFields)
}

func (s *Service) assemble(r io.Reader, filename string, expected []string) ([]sheet.Row, sheet.Normalized, error) {
	dec := codec.ForFilename(filename)
	if c, ok := dec.(codec.CSV); ok && s.CSVDelimiter != 0 {
		c.Delimiter = s.CSVDelimiter
		dec = c
	}
	grid, err := dec.Decode(r)
	if err != nil {
		return nil, sheet.Normalized{}, fmt.Errorf("decode %s: %w", filename, err)
	}
	norm := sheet.Normalize(grid, sheet.Options{
		Expected:  expected,
		ScanLimit: s.ScanLimit,
		PadRows:   true,
	})
	return sheet.Assemble(norm.Headers, norm.Rows), norm, nil
}

// suggestColumns fuzzily matches headers that are not part of the expected
// vocabulary against it. Headers with no plausible match are reported without
// a suggestion.
func suggestColumns(headers, expected []string) []ColumnSuggestion {
	known := make(map[string]bool, len(expected))
	for _, h := range expected {
		known[strings.ToLower(h)] = true
	}

	var out []ColumnSuggestion
	for _, header := range headers {
		h := strings.TrimSpace(header)
		if h == "" || known[strings.ToLower(h)] {
			continue
		}
		sugg := ColumnSuggestion{Header: h}
		ranks := fuzzy.RankFindNormalizedFold(h, expected)
		if len(ranks) > 0 {
			sort.Sort(ranks)
			sugg.Suggestion = ranks[0].Target
		}
		out = append(out, sugg)
	}
	return out
}
