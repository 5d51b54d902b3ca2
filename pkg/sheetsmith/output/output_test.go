package output

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/parser"
)

func TestExportCSVQuoting(t *testing.T) {
	result := models.Success("x.xlsx", "x", []string{"A", "B"}, [][]models.Cell{
		models.Strings("x,y", "z"),
	})
	assert.Equal(t, "A,B\n\"x,y\",z", ExportCSV(result))
}

func TestExportCSVEscapesQuotesAndNewlines(t *testing.T) {
	result := models.Success("x.xlsx", "x", []string{"Quote", "Lines", "Num"}, [][]models.Cell{
		{models.String(`say "hi"`), models.String("a\nb"), models.Int(30000)},
		{models.String("plain"), models.Empty(), models.Number(2.5)},
	})
	want := "Quote,Lines,Num\n\"say \"\"hi\"\"\",\"a\nb\",30000\nplain,,2.5"
	assert.Equal(t, want, ExportCSV(result))
}

func TestCSVFilename(t *testing.T) {
	assert.Equal(t, "user_data_sheet.csv", CSVFilename("user_data_sheet.xlsx"))
	assert.Equal(t, "noext", CSVFilename("noext"))
}

func TestExportImportRoundTrip(t *testing.T) {
	wb := &models.Workbook{
		Filename: "round.xlsx",
		Sheets: []models.Sheet{{
			Name:    "Sheet1",
			Headers: []string{"H1", "H2"},
			Rows:    [][]models.Cell{models.Strings("a", "b"), models.Strings("c", "d")},
		}},
	}

	data, err := Export(wb)
	require.NoError(t, err)

	back, err := parser.Parse("round.xlsx", data)
	require.NoError(t, err)
	require.Len(t, back.Sheets, 1)
	assert.Equal(t, wb.Sheets[0].Headers, back.Sheets[0].Headers)
	assert.Equal(t, wb.Sheets[0].Rows, back.Sheets[0].Rows)
}

func TestExportImportKeepsBlankRowsAndColumns(t *testing.T) {
	wb := &models.Workbook{
		Sheets: []models.Sheet{{
			Name:    "Sheet1",
			Headers: []string{"", "B", ""},
			Rows: [][]models.Cell{
				{models.Int(1), models.String("x"), models.Empty()},
				{models.Empty(), models.Empty(), models.Empty()},
			},
		}},
	}

	data, err := Export(wb)
	require.NoError(t, err)

	back, err := parser.Parse("blank.xlsx", data)
	require.NoError(t, err)
	sheet := back.Sheets[0]
	assert.Equal(t, []string{"", "B", ""}, sheet.Headers)
	assert.Equal(t, wb.Sheets[0].Rows, sheet.Rows)
}

func TestExportPreservesSheetOrderAndNumbers(t *testing.T) {
	wb := &models.Workbook{
		Sheets: []models.Sheet{
			{Name: "Zeta", Headers: []string{"N"}, Rows: [][]models.Cell{{models.Int(7)}}},
			{Name: "Alpha", Headers: []string{"S"}, Rows: [][]models.Cell{models.Strings("s")}},
			{Name: "alpha", Headers: []string{"T"}},
		},
		CurrentSheetIndex: 1,
	}

	path := filepath.Join(t.TempDir(), "order.xlsx")
	require.NoError(t, ExportFile(wb, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Zeta", "Alpha", "alpha (2)"}, f.GetSheetList())

	typ, err := f.GetCellType("Zeta", "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
	v, err := f.GetCellValue("Zeta", "A2")
	require.NoError(t, err)
	assert.Equal(t, "7", v)
}

func TestExportRejectsInvalidWorkbook(t *testing.T) {
	_, err := Export(&models.Workbook{})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Sales: Q1/Q2", "Sales Q1Q2"},
		{"", "Sheet"},
		{"[*]", "Sheet"},
		{"'quoted'", "quoted"},
		{"abcdefghijklmnopqrstuvwxyz0123456789", "abcdefghijklmnopqrstuvwxyz01234"},
		{"abcdefghijklmnopqrstuvwxyz0123'456", "abcdefghijklmnopqrstuvwxyz0123"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeSheetName(tt.in), "input %q", tt.in)
	}
}

func TestResultToWorkbook(t *testing.T) {
	result := models.Success("people.xlsx", "People", []string{"Name"}, [][]models.Cell{models.Strings("Aarav")})
	wb, err := ResultToWorkbook(result)
	require.NoError(t, err)
	assert.Equal(t, "people.xlsx", wb.Filename)
	assert.Equal(t, "People", wb.Sheets[0].Name)

	_, err = ResultToWorkbook(models.Failure(models.NewValidationError("generate", []string{"bad"})))
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestToJSON(t *testing.T) {
	sheet := models.Sheet{Name: "S", Headers: []string{"A", "B"}, Rows: [][]models.Cell{{models.Int(1), models.Empty()}}}
	data, err := ToJSON(sheet, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"S","headers":["A","B"],"rows":[[1,null]]}`, string(data))

	pretty, err := ToJSON(sheet, true)
	require.NoError(t, err)
	var decoded models.Sheet
	require.NoError(t, json.Unmarshal(pretty, &decoded))
	assert.True(t, decoded.Equal(sheet))
}
