package sheetsmith

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/output"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/parser"
)

// OpenFile parses the spreadsheet at path.
func OpenFile(path string) (*models.Workbook, error) {
	wb, err := parser.ParseFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewFileError(path, "open", ErrFileNotFound)
		}
		var perr *fs.PathError
		if errors.As(err, &perr) {
			return nil, NewFileError(path, "open", err)
		}
		return nil, err
	}
	return wb, nil
}

// SaveFile writes wb as an xlsx workbook to path.
func SaveFile(wb *models.Workbook, path string) error {
	if err := output.ExportFile(wb, path); err != nil {
		var perr *fs.PathError
		if errors.As(err, &perr) {
			return NewFileError(path, "save", err)
		}
		return err
	}
	return nil
}

// SaveCSV writes a generation result as CSV text to path.
func SaveCSV(result models.GenerationResult, path string) error {
	if err := result.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(output.ExportCSV(result)), 0644); err != nil {
		return NewFileError(path, "export_csv", err)
	}
	return nil
}
