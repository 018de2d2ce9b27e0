// Package codec adapts concrete file formats to the engine's grid model.
// The engine itself never inspects file-format internals; it consumes the
// Decoder and Encoder collaborators defined here.
package codec

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/arvodia/arvodia/internal/domain/ingest/sheet"
)

// Decoder turns an uploaded file into a raw cell grid.
type Decoder interface {
	Decode(r io.Reader) (sheet.Grid, error)
}

// Encoder re-encodes a normalized grid into a downloadable file.
type Encoder interface {
	Encode(headers []string, rows [][]string, sheetName string) ([]byte, error)
}

// ForFilename picks a decoder from the file extension. Unknown extensions
// fall back to the XLSX decoder, the dominant upload format.
func ForFilename(name string) Decoder {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return CSV{}
	default:
		return XLSX{}
	}
}
