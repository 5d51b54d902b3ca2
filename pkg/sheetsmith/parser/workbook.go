// Package parser converts spreadsheet files into sheetsmith workbooks.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
	"github.com/xuri/excelize/v2"
)

// ErrUnrecognizedFormat is wrapped in the parse error returned for byte streams
// that are neither an OOXML workbook nor delimited text.
var ErrUnrecognizedFormat = errors.New("unrecognized spreadsheet format")

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Parse decodes data into a Workbook. filename is only used for the workbook
// name and, for delimited text, the sheet name.
func Parse(filename string, data []byte) (*models.Workbook, error) {
	var (
		sheets []models.Sheet
		err    error
	)
	switch {
	case len(bytes.TrimSpace(data)) == 0:
		err = fmt.Errorf("empty file: %w", ErrUnrecognizedFormat)
	case bytes.HasPrefix(data, zipMagic):
		sheets, err = parseXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		err = fmt.Errorf("legacy binary or encrypted workbooks are not supported: %w", ErrUnrecognizedFormat)
	default:
		sheets, err = parseCSV(filename, data)
	}
	if err != nil {
		return nil, models.NewError(models.KindParse, "parse "+filepath.Base(filename), err)
	}

	return &models.Workbook{
		Filename:          filepath.Base(filename),
		Sheets:            sheets,
		CurrentSheetIndex: 0,
	}, nil
}

// ParseFile reads and parses the spreadsheet at path.
func ParseFile(path string) (*models.Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

func parseXLSX(data []byte) ([]models.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets: %w", ErrUnrecognizedFormat)
	}

	sheets := make([]models.Sheet, 0, len(sheetList))
	for _, sheetName := range sheetList {
		grid, err := extractGrid(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		sheets = append(sheets, sheetFromGrid(sheetName, grid))
	}
	return sheets, nil
}

// sheetFromGrid splits the first row off as headers.
func sheetFromGrid(name string, grid [][]models.Cell) models.Sheet {
	sheet := models.Sheet{Name: name, Headers: []string{}, Rows: [][]models.Cell{}}
	if len(grid) == 0 {
		return sheet
	}

	for _, cell := range grid[0] {
		sheet.Headers = append(sheet.Headers, cell.String())
	}
	for _, row := range grid[1:] {
		sheet.Rows = append(sheet.Rows, padRow(row, len(sheet.Headers)))
	}
	return sheet
}

// padRow extends row with empty (null) cells up to width.
func padRow(row []models.Cell, width int) []models.Cell {
	if len(row) >= width {
		return row[:width]
	}
	out := make([]models.Cell, width)
	copy(out, row)
	return out
}
