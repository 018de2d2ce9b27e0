package sheet

import "strings"

// DefaultScanLimit bounds how many top rows are considered as header
// candidates. Uploaded sheets tend to carry at most a title row or two above
// the real header.
const DefaultScanLimit = 5

// FindHeaderRow scores the first scanLimit rows against the expected header
// vocabulary and returns the index of the best-scoring row. A cell counts as a
// match when, after trimming and lowercasing, it equals, contains or is
// contained by any expected header. Ties resolve to the earliest row. With an
// empty vocabulary the header is assumed to be row 0.
//
// There is no error path: a grid where nothing matches still yields the
// best-scoring (possibly zero-scoring) index, and downstream assembly of such
// a grid simply produces no usable records.
func FindHeaderRow(grid Grid, expected []string, scanLimit int) int {
	if len(expected) == 0 || len(grid) == 0 {
		return 0
	}
	if scanLimit <= 0 {
		scanLimit = DefaultScanLimit
	}
	if scanLimit > len(grid) {
		scanLimit = len(grid)
	}

	vocab := make([]string, 0, len(expected))
	for _, h := range expected {
		if v := normalizeHeader(h); v != "" {
			vocab = append(vocab, v)
		}
	}

	bestRow, bestScore := 0, -1
	for i := 0; i < scanLimit; i++ {
		score := 0
		for _, cell := range grid[i] {
			v := normalizeHeader(cell.String())
			if v == "" {
				continue
			}
			if matchesAny(v, vocab) {
				score++
			}
		}
		if score > bestScore {
			bestRow, bestScore = i, score
		}
	}
	return bestRow
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matchesAny(cell string, vocab []string) bool {
	for _, want := range vocab {
		if cell == want || strings.Contains(cell, want) || strings.Contains(want, cell) {
			return true
		}
	}
	return false
}
