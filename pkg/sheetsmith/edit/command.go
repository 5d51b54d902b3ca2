package edit

import (
	"fmt"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

// Command is a typed edit that can be applied to a sheet.
type Command interface {
	// Name is a short label used in logs.
	Name() string
	Apply(sheet models.Sheet) (models.Sheet, error)
}

// AddColumnCmd appends a column.
type AddColumnCmd struct {
	Header  string
	Default models.Cell
}

func (c AddColumnCmd) Name() string { return "add_column" }

func (c AddColumnCmd) Apply(sheet models.Sheet) (models.Sheet, error) {
	return AddColumn(sheet, c.Header, c.Default), nil
}

// RemoveColumnCmd drops the column at Index.
type RemoveColumnCmd struct {
	Index int
}

func (c RemoveColumnCmd) Name() string { return "remove_column" }

func (c RemoveColumnCmd) Apply(sheet models.Sheet) (models.Sheet, error) {
	return RemoveColumn(sheet, c.Index)
}

// RenameColumnCmd replaces the header at Index.
type RenameColumnCmd struct {
	Index  int
	Header string
}

func (c RenameColumnCmd) Name() string { return "rename_column" }

func (c RenameColumnCmd) Apply(sheet models.Sheet) (models.Sheet, error) {
	return RenameColumn(sheet, c.Index, c.Header)
}

// UpdateCellCmd sets a single cell.
type UpdateCellCmd struct {
	Row   int
	Col   int
	Value models.Cell
}

func (c UpdateCellCmd) Name() string { return "update_cell" }

func (c UpdateCellCmd) Apply(sheet models.Sheet) (models.Sheet, error) {
	return UpdateCell(sheet, c.Row, c.Col, c.Value)
}

// InsertRowCmd inserts a row. A negative Index appends.
type InsertRowCmd struct {
	Index  int
	Values []models.Cell
}

func (c InsertRowCmd) Name() string { return "insert_row" }

func (c InsertRowCmd) Apply(sheet models.Sheet) (models.Sheet, error) {
	index := c.Index
	if index < 0 {
		index = len(sheet.Rows)
	}
	return InsertRow(sheet, index, c.Values...)
}

// DeleteRowCmd removes the row at Index.
type DeleteRowCmd struct {
	Index int
}

func (c DeleteRowCmd) Name() string { return "delete_row" }

func (c DeleteRowCmd) Apply(sheet models.Sheet) (models.Sheet, error) {
	return DeleteRow(sheet, c.Index)
}

// ReplaceSheetCmd swaps the whole sheet for Sheet, keeping the original name
// when Sheet.Name is empty. Used to merge transformation results.
type ReplaceSheetCmd struct {
	Sheet models.Sheet
}

func (c ReplaceSheetCmd) Name() string { return "replace_sheet" }

func (c ReplaceSheetCmd) Apply(sheet models.Sheet) (models.Sheet, error) {
	if !c.Sheet.IsRectangular() {
		return sheet, models.NewError(models.KindValidation, "replace sheet",
			fmt.Errorf("replacement rows do not match %d headers", len(c.Sheet.Headers)))
	}
	out := c.Sheet.Clone()
	if out.Name == "" {
		out.Name = sheet.Name
	}
	return out, nil
}

// ApplyAll runs cmds in order against sheet. On the first failure the
// original sheet is returned together with the error.
func ApplyAll(sheet models.Sheet, cmds ...Command) (models.Sheet, error) {
	cur := sheet
	for _, cmd := range cmds {
		next, err := cmd.Apply(cur)
		if err != nil {
			return sheet, fmt.Errorf("%s: %w", cmd.Name(), err)
		}
		cur = next
	}
	return cur, nil
}

// ApplyToWorkbook applies cmds to the active sheet of wb as one replacement.
// wb is returned unchanged when any command fails.
func ApplyToWorkbook(wb models.Workbook, cmds ...Command) (models.Workbook, error) {
	sheet, err := wb.Current()
	if err != nil {
		return wb, err
	}
	next, err := ApplyAll(sheet, cmds...)
	if err != nil {
		return wb, err
	}
	return wb.ReplaceCurrent(next)
}
