package models

import (
	"errors"
	"strings"
)

// GenerationRequest describes a new sheet to generate.
type GenerationRequest struct {
	ColumnCount     int      `json:"columnCount"`
	RowCount        int      `json:"rowCount"`
	ColumnNames     []string `json:"columnNames"`
	TaskDescription string   `json:"taskDescription"`
	// AutoFill forces heuristic synthesis even when RowData is present.
	AutoFill bool `json:"autoFill"`
	// RowData is used verbatim when AutoFill is false.
	RowData [][]Cell `json:"rowData,omitempty"`
}

// GenerationStatus tags a GenerationResult.
type GenerationStatus string

const (
	StatusSuccess GenerationStatus = "success"
	StatusError   GenerationStatus = "error"
)

// GenerationResult is either a populated dataset or a rejection message.
type GenerationResult struct {
	Status     GenerationStatus `json:"status"`
	ExcelName  string           `json:"excel_name"`
	SheetTitle string           `json:"sheet_title"`
	Columns    []string         `json:"columns"`
	Rows       [][]Cell         `json:"rows"`
	// Error is the joined human-readable reason when Status is StatusError.
	Error string `json:"error,omitempty"`

	err error
}

// Success builds a successful result.
func Success(excelName, sheetTitle string, columns []string, rows [][]Cell) GenerationResult {
	return GenerationResult{
		Status:     StatusSuccess,
		ExcelName:  excelName,
		SheetTitle: sheetTitle,
		Columns:    columns,
		Rows:       rows,
	}
}

// Failure builds an error result from err.
func Failure(err error) GenerationResult {
	return GenerationResult{
		Status:  StatusError,
		Columns: []string{},
		Rows:    [][]Cell{},
		Error:   failureMessage(err),
		err:     err,
	}
}

func failureMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && len(e.Messages) > 0 {
		return strings.Join(e.Messages, "; ")
	}
	return err.Error()
}

// OK reports whether the result is a success.
func (r GenerationResult) OK() bool { return r.Status == StatusSuccess }

// Err returns the failure cause, or nil on success.
func (r GenerationResult) Err() error {
	if r.OK() {
		return nil
	}
	if r.err != nil {
		return r.err
	}
	return NewValidationError("generate", []string{r.Error})
}
