package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
	"github.com/xuri/excelize/v2"
)

// extractGrid reads the raw cell grid of a sheet and types each value.
// Only values that look numeric and are not stored as strings become numbers;
// boolean cells read as "TRUE" or "FALSE".
func extractGrid(f *excelize.File, sheetName string) ([][]models.Cell, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	dimension, err := f.GetSheetDimension(sheetName)
	if err != nil {
		return nil, err
	}

	r0, r1, c0, c1 := sheetBounds(rows, dimension)
	if r0 < 0 {
		return nil, nil
	}

	grid := make([][]models.Cell, 0, r1-r0+1)
	for rowIdx := r0; rowIdx <= r1; rowIdx++ {
		cells := make([]models.Cell, c1-c0+1)
		if rowIdx >= len(rows) {
			grid = append(grid, cells)
			continue
		}
		row := rows[rowIdx]
		for colIdx := c0; colIdx <= c1 && colIdx < len(row); colIdx++ {
			cellValue := row[colIdx]
			if cellValue == "" {
				continue
			}
			cell := ParseValue(cellValue)
			if cell.Kind() == models.CellNumber {
				switch cellType(f, sheetName, colIdx+1, rowIdx+1) {
				case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
					cell = models.String(cellValue)
				case excelize.CellTypeBool:
					cell = models.String(boolText(cellValue))
				}
			}
			cells[colIdx-c0] = cell
		}
		grid = append(grid, cells)
	}

	return grid, nil
}

// cellType returns the stored type of the cell at 1-based (col, row).
func cellType(f *excelize.File, sheetName string, col, row int) excelize.CellType {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return excelize.CellTypeUnset
	}
	typ, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return excelize.CellTypeUnset
	}
	return typ
}

func boolText(raw string) string {
	if raw == "0" {
		return "FALSE"
	}
	return "TRUE"
}

// ParseValue attempts to parse a string value as a number.
// Returns a numeric cell for integers and decimals, an empty cell for "",
// or a string cell otherwise.
func ParseValue(s string) models.Cell {
	if s == "" {
		return models.Empty()
	}
	if strings.Trim(s, "0123456789+-.eE") != "" {
		return models.String(s)
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.Number(float64(i))
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.Number(f)
	}
	// Return as string
	return models.String(s)
}
