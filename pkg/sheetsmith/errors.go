package sheetsmith

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrBusy is returned when an LLM request is already in flight for the session.
var ErrBusy = errors.New("an AI request is already in progress")

// ErrNoCompleter is returned by AI operations on a session without an LLM collaborator.
var ErrNoCompleter = errors.New("no LLM collaborator configured")

// ErrNoWorkbook is returned by operations that need a loaded workbook.
var ErrNoWorkbook = errors.New("no workbook loaded")

// ErrNoResult is returned when there is no successful generation result to export.
var ErrNoResult = errors.New("no generated dataset")

// ErrWorkbookChanged is returned when a transform finishes after the workbook
// was loaded, edited or switched to another sheet. The transform output is discarded.
var ErrWorkbookChanged = errors.New("workbook changed while the request was in flight")

// FileError represents an error reading or writing a spreadsheet file.
type FileError struct {
	Path string
	Op   string // "open", "save", "export_csv"
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(path, op string, err error) *FileError {
	return &FileError{
		Path: path,
		Op:   op,
		Err:  err,
	}
}
