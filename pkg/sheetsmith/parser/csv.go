package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// parseCSV reads delimited text as a single sheet named after the file.
// UTF-8 and UTF-16 byte order marks are honoured. Tab-separated input is
// detected from the first line.
func parseCSV(filename string, data []byte) ([]models.Sheet, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(decoded) || bytes.IndexByte(decoded, 0) >= 0 {
		return nil, ErrUnrecognizedFormat
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.Comma = sniffDelimiter(decoded)

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, err)
		}
		records = append(records, rec)
	}

	// Records are kept whole; the grid is as wide as the longest one.
	width := 0
	for _, rec := range records {
		width = max(width, len(rec))
	}
	grid := make([][]models.Cell, 0, len(records))
	for _, rec := range records {
		cells := make([]models.Cell, width)
		for colIdx, field := range rec {
			cells[colIdx] = ParseValue(field)
		}
		grid = append(grid, cells)
	}

	return []models.Sheet{sheetFromGrid(csvSheetName(filename), grid)}, nil
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{'\t'}) > bytes.Count(line, []byte{','}) {
		return '\t'
	}
	return ','
}

func csvSheetName(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "Sheet1"
	}
	return name
}
