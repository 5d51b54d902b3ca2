// Package edit implements the pure grid mutations applied to a sheet.
//
// Every operation leaves its input untouched and returns a new Sheet whose rows all
// have exactly len(Headers) cells. Out-of-range indices fail with a models.KindIndex error.
package edit

import (
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

// AddColumn appends a column named name, filling every row with def.
func AddColumn(sheet models.Sheet, name string, def models.Cell) models.Sheet {
	out := sheet.Normalized()
	out.Headers = append(out.Headers, name)
	for i := range out.Rows {
		out.Rows[i] = append(out.Rows[i], def)
	}
	return out
}

// RemoveColumn drops the header and the cell at index from every row.
func RemoveColumn(sheet models.Sheet, index int) (models.Sheet, error) {
	if index < 0 || index >= len(sheet.Headers) {
		return sheet, models.NewIndexError("remove column", "column", index, len(sheet.Headers))
	}
	out := sheet.Normalized()
	out.Headers = removeAt(out.Headers, index)
	for i, row := range out.Rows {
		out.Rows[i] = removeAt(row, index)
	}
	return out, nil
}

// RenameColumn replaces the header at index.
func RenameColumn(sheet models.Sheet, index int, name string) (models.Sheet, error) {
	if index < 0 || index >= len(sheet.Headers) {
		return sheet, models.NewIndexError("rename column", "column", index, len(sheet.Headers))
	}
	out := sheet.Normalized()
	out.Headers[index] = name
	return out, nil
}

// UpdateCell replaces the cell at (rowIndex, colIndex).
func UpdateCell(sheet models.Sheet, rowIndex, colIndex int, value models.Cell) (models.Sheet, error) {
	if rowIndex < 0 || rowIndex >= len(sheet.Rows) {
		return sheet, models.NewIndexError("update cell", "row", rowIndex, len(sheet.Rows))
	}
	if colIndex < 0 || colIndex >= len(sheet.Headers) {
		return sheet, models.NewIndexError("update cell", "column", colIndex, len(sheet.Headers))
	}
	out := sheet.Normalized()
	out.Rows[rowIndex][colIndex] = value
	return out, nil
}

// InsertRow inserts a row at rowIndex, which may equal len(rows) to append.
// With no values the row is filled with empty strings; otherwise values are
// padded or truncated to the header count.
func InsertRow(sheet models.Sheet, rowIndex int, values ...models.Cell) (models.Sheet, error) {
	if rowIndex < 0 || rowIndex > len(sheet.Rows) {
		return sheet, models.NewIndexError("insert row", "row", rowIndex, len(sheet.Rows)+1)
	}
	row := models.BlankRow(len(sheet.Headers))
	if len(values) > 0 {
		row = models.FitRow(values, len(sheet.Headers))
	}
	out := sheet.Normalized()
	rows := make([][]models.Cell, 0, len(out.Rows)+1)
	rows = append(rows, out.Rows[:rowIndex]...)
	rows = append(rows, row)
	rows = append(rows, out.Rows[rowIndex:]...)
	out.Rows = rows
	return out, nil
}

// DeleteRow removes the row at rowIndex.
func DeleteRow(sheet models.Sheet, rowIndex int) (models.Sheet, error) {
	if rowIndex < 0 || rowIndex >= len(sheet.Rows) {
		return sheet, models.NewIndexError("delete row", "row", rowIndex, len(sheet.Rows))
	}
	out := sheet.Normalized()
	out.Rows = removeAt(out.Rows, rowIndex)
	return out, nil
}

func removeAt[T any](s []T, index int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:index]...)
	return append(out, s[index+1:]...)
}
