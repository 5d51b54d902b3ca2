package output

import (
	"strings"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

// ExportCSV renders a generation result as CSV text.
//
// The header line is the columns joined by commas. Each row follows on its own
// line; a cell containing a comma, double quote or newline is wrapped in double
// quotes with inner quotes doubled. Lines are joined with "\n" and there is no
// trailing newline.
func ExportCSV(result models.GenerationResult) string {
	lines := make([]string, 0, len(result.Rows)+1)
	lines = append(lines, strings.Join(result.Columns, ","))
	for _, row := range result.Rows {
		fields := make([]string, len(row))
		for i, cell := range row {
			fields[i] = quoteField(cell.String())
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// SheetCSV renders a sheet with the same rules as ExportCSV.
func SheetCSV(sheet models.Sheet) string {
	return ExportCSV(models.GenerationResult{Columns: sheet.Headers, Rows: sheet.Rows})
}

func quoteField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// CSVFilename derives the CSV download name from a generated workbook name.
func CSVFilename(excelName string) string {
	return strings.Replace(excelName, ".xlsx", ".csv", 1)
}

// ResultToWorkbook wraps a successful generation result as a one-sheet workbook.
func ResultToWorkbook(result models.GenerationResult) (*models.Workbook, error) {
	if err := result.Err(); err != nil {
		return nil, err
	}
	sheet := models.Sheet{
		Name:    result.SheetTitle,
		Headers: append([]string(nil), result.Columns...),
		Rows:    make([][]models.Cell, len(result.Rows)),
	}
	for i, row := range result.Rows {
		sheet.Rows[i] = append([]models.Cell(nil), row...)
	}
	return &models.Workbook{
		Filename: result.ExcelName,
		Sheets:   []models.Sheet{sheet.Normalized()},
	}, nil
}
