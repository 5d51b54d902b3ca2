package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// UsedRange returns the A1-style range (e.g. "A1:D10") covering every non-empty
// cell of rows, or "" when rows holds no data.
func UsedRange(rows [][]string) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return ""
	}

	// Convert to Excel range notation
	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// findDataBounds finds the bounding box of non-empty cells.
// All bounds are -1 when there are none.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// sheetBounds returns the 0-based box a sheet is read from. The declared
// dimension (e.g. "A1:C4") wins when it contains every non-empty cell, so
// blank trailing rows and empty columns inside it survive. A stale or missing
// dimension falls back to the data bounding box.
func sheetBounds(rows [][]string, dimension string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow, minCol, maxCol = findDataBounds(rows)

	r0, r1, c0, c1, ok := parseDimension(dimension)
	if !ok {
		return
	}
	if minRow < 0 {
		// A lone "A1" is what a blank worksheet declares.
		if r0 == r1 && c0 == c1 {
			return
		}
		return r0, r1, c0, c1
	}
	if r0 <= minRow && c0 <= minCol && r1 >= maxRow && c1 >= maxCol {
		return r0, r1, c0, c1
	}
	return
}

func parseDimension(ref string) (r0, r1, c0, c1 int, ok bool) {
	if ref == "" {
		return 0, 0, 0, 0, false
	}
	start, end, found := strings.Cut(ref, ":")
	if !found {
		end = start
	}
	col0, row0, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	col1, row1, err := excelize.CellNameToCoordinates(end)
	if err != nil || col1 < col0 || row1 < row0 {
		return 0, 0, 0, 0, false
	}
	return row0 - 1, row1 - 1, col0 - 1, col1 - 1, true
}
