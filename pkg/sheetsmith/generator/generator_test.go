package generator

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

var fixedNow = func() time.Time { return time.Date(2026, 1, 30, 15, 0, 0, 0, time.UTC) }

func TestGenerateAutoFill(t *testing.T) {
	e := &Engine{Now: fixedNow}
	result := e.Generate(models.GenerationRequest{
		ColumnCount:     10,
		RowCount:        3,
		ColumnNames:     []string{"Name", "Age", "City", "Email", "Mobile", "Price", "Join Date", "Status", "ID", "Notes"},
		TaskDescription: "User Data Sheet",
		AutoFill:        true,
	})
	require.True(t, result.OK(), result.Error)

	assert.Equal(t, "user_data_sheet.xlsx", result.ExcelName)
	assert.Equal(t, "User Data Sheet", result.SheetTitle)
	require.Len(t, result.Rows, 3)

	assert.Equal(t, []models.Cell{
		models.String("Aarav"), models.Int(20), models.String("Mumbai"), models.String("user1@example.com"),
		models.String("+91 9000000000"), models.Int(30000), models.String("2026-01-30"),
		models.String("Active"), models.Int(1), models.String("Data 1"),
	}, result.Rows[0])
	assert.Equal(t, []models.Cell{
		models.String("Rahul"), models.Int(22), models.String("Bangalore"), models.String("user3@example.com"),
		models.String("+91 9000000002"), models.Int(40000), models.String("2026-02-01"),
		models.String("Pending"), models.Int(3), models.String("Data 3"),
	}, result.Rows[2])
}

func TestGenerateIsDeterministic(t *testing.T) {
	e := &Engine{Now: fixedNow}
	req := models.GenerationRequest{ColumnCount: 2, RowCount: 12, ColumnNames: []string{"Username", "Count"}, AutoFill: true}
	a, b := e.Generate(req), e.Generate(req)
	assert.Equal(t, a.Rows, b.Rows)
	assert.Equal(t, models.String("Aarav"), a.Rows[10][0], "name pool wraps after 10")
}

func TestKeywordPriority(t *testing.T) {
	tests := []struct {
		column string
		want   models.Cell
	}{
		{"Phone Number", models.String("+91 9000000000")},
		{"Product Name", models.String("Aarav")},
		{"Status Date", models.String("2026-01-30")},
		{"Order Count", models.Int(1)},
		{"Misc", models.String("Data 1")},
	}
	for _, tt := range tests {
		rows := SampleRows([]string{tt.column}, 1, fixedNow())
		assert.Equal(t, tt.want, rows[0][0], "column %q", tt.column)
	}
}

func TestGenerateUsesRowDataVerbatim(t *testing.T) {
	e := &Engine{Now: fixedNow}
	data := [][]models.Cell{
		models.Strings("x", "y"),
		{models.Int(1), models.Int(2)},
		models.Strings("p", "q"),
	}

	truncated := e.Generate(models.GenerationRequest{
		ColumnCount: 2, RowCount: 2, ColumnNames: []string{"Name", "Age"}, RowData: data,
	})
	require.True(t, truncated.OK())
	assert.Equal(t, data[:2], truncated.Rows)

	padded := e.Generate(models.GenerationRequest{
		ColumnCount: 2, RowCount: 5, ColumnNames: []string{"Name", "Age"}, RowData: data,
	})
	require.True(t, padded.OK())
	require.Len(t, padded.Rows, 5)
	assert.Equal(t, data, padded.Rows[:3])
	assert.Equal(t, models.BlankRow(2), padded.Rows[4])
}

func TestGenerateAutoFillOverridesRowData(t *testing.T) {
	e := &Engine{Now: fixedNow}
	result := e.Generate(models.GenerationRequest{
		ColumnCount: 1, RowCount: 1, ColumnNames: []string{"Name"},
		RowData: [][]models.Cell{models.Strings("kept?")}, AutoFill: true,
	})
	require.True(t, result.OK())
	assert.Equal(t, models.String("Aarav"), result.Rows[0][0])
}

func TestGenerateRejectsColumnMismatch(t *testing.T) {
	e := &Engine{}
	result := e.Generate(models.GenerationRequest{ColumnCount: 3, RowCount: 1, ColumnNames: []string{"A", "B"}})
	assert.False(t, result.OK())
	assert.Empty(t, result.Rows)
	assert.Contains(t, result.Error, "Column names count (2) doesn't match column count (3)")
	assert.ErrorIs(t, result.Err(), models.ErrValidation)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	errs := Validate(models.GenerationRequest{
		ColumnCount: 0,
		RowCount:    0,
		ColumnNames: []string{" "},
		RowData:     [][]models.Cell{models.Strings("a", "b")},
	})
	assert.Equal(t, []string{
		"Column count must be greater than 0",
		"Row count must be greater than 0",
		"Column names count (1) doesn't match column count (0)",
		"All column names must be non-empty",
		"Some rows have mismatched column count. Expected 0 columns",
	}, errs)

	result := (&Engine{}).Generate(models.GenerationRequest{ColumnCount: 0, RowCount: 0})
	assert.Equal(t, "Column count must be greater than 0; Row count must be greater than 0", result.Error)
}

func TestExcelName(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9_]{1,25}\.xlsx$`)

	tests := []struct {
		in, want string
	}{
		{"User database!! for login @@ system", "user_database_for_login.xlsx"},
		{"User Data Sheet", "user_data_sheet.xlsx"},
		{"", "generated_excel.xlsx"},
		{"!!! ???", "generated_excel.xlsx"},
		{"Quarterly revenue projections spreadsheet 2026", "quarterly_revenue_project.xlsx"},
		{"a  b", "a_b.xlsx"},
	}
	for _, tt := range tests {
		got := ExcelName(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Regexp(t, valid, got)
	}
}

func TestSheetTitle(t *testing.T) {
	assert.Equal(t, "Sales Q1Q2", SheetTitle("Sales: Q1/Q2"))
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz0123", SheetTitle("abcdefghijklmnopqrstuvwxyz0123456789"))
	assert.Equal(t, "ab", SheetTitle("[a*b]"))
}
