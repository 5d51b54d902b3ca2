// Package output serializes sheetsmith workbooks and generation results.
package output

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
	"github.com/xuri/excelize/v2"
)

const maxSheetNameLen = 31

// Export writes wb as an xlsx workbook: one tab per sheet in order, headers in row 1.
func Export(wb *models.Workbook) ([]byte, error) {
	if err := wb.Validate(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	names := uniqueSheetNames(wb.Sheets)
	for i, sheet := range wb.Sheets {
		name := names[i]
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("add sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, sheet); err != nil {
			return nil, fmt.Errorf("write sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(wb.CurrentSheetIndex)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFile writes wb to path.
func ExportFile(wb *models.Workbook, path string) error {
	data, err := Export(wb)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func writeSheet(f *excelize.File, name string, sheet models.Sheet) error {
	header := make([]interface{}, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for rowIdx, row := range sheet.Rows {
		values := make([]interface{}, len(row))
		for i, cell := range row {
			values[i] = cell.Value()
		}
		cellName, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cellName, &values); err != nil {
			return err
		}
	}
	return setDimension(f, name, sheet)
}

// setDimension declares the full header-plus-rows box as the used range, so
// blank rows and empty columns are read back.
func setDimension(f *excelize.File, name string, sheet models.Sheet) error {
	if len(sheet.Headers) == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(sheet.Headers), len(sheet.Rows)+1)
	if err != nil {
		return err
	}
	return f.SetSheetDimension(name, "A1:"+end)
}

// sanitizeSheetName strips characters excelize rejects and enforces the length limit.
func sanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return -1
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	if utf8.RuneCountInString(name) > maxSheetNameLen {
		name = strings.TrimRight(string([]rune(name)[:maxSheetNameLen]), "'")
	}
	if strings.TrimSpace(name) == "" {
		name = "Sheet"
	}
	return name
}

// uniqueSheetNames sanitizes names and disambiguates case-insensitive duplicates.
func uniqueSheetNames(sheets []models.Sheet) []string {
	seen := make(map[string]bool, len(sheets))
	names := make([]string, len(sheets))
	for i, sheet := range sheets {
		base := sanitizeSheetName(sheet.Name)
		name := base
		for n := 2; seen[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			trimmed := []rune(base)
			if len(trimmed)+len(suffix) > maxSheetNameLen {
				trimmed = trimmed[:maxSheetNameLen-len(suffix)]
			}
			name = string(trimmed) + suffix
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}
