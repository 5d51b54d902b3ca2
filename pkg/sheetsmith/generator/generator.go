// Package generator turns column names and a row count into a populated dataset.
package generator

import (
	"time"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

// Engine runs generation requests. The zero value is ready to use.
type Engine struct {
	// Now supplies the date used for date columns. Defaults to time.Now.
	Now    func() time.Time
	Logger *zap.Logger
}

// New returns an Engine that logs to logger.
func New(logger *zap.Logger) *Engine {
	return &Engine{Logger: logger}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}

// Generate validates req and produces a success or error result.
//
// When AutoFill is set or no RowData is given the rows are synthesized from
// the column names. Otherwise RowData is used as is, truncated or padded with
// blank rows to RowCount.
func (e *Engine) Generate(req models.GenerationRequest) models.GenerationResult {
	if errs := Validate(req); len(errs) > 0 {
		e.logger().Debug("generation request rejected", zap.Strings("errors", errs))
		return models.Failure(models.NewValidationError("generate", errs))
	}

	var rows [][]models.Cell
	if req.AutoFill || len(req.RowData) == 0 {
		rows = SampleRows(req.ColumnNames, req.RowCount, e.now())
	} else {
		rows = FitRows(req.RowData, req.RowCount, req.ColumnCount)
	}

	result := models.Success(
		ExcelName(req.TaskDescription),
		SheetTitle(req.TaskDescription),
		append([]string(nil), req.ColumnNames...),
		rows,
	)
	e.logger().Debug("generated dataset",
		zap.String("excel_name", result.ExcelName),
		zap.Int("columns", len(result.Columns)),
		zap.Int("rows", len(result.Rows)),
		zap.Bool("auto_fill", req.AutoFill || len(req.RowData) == 0))
	return result
}

// FitRows copies rows, truncating to rowCount or appending blank rows of width.
func FitRows(rows [][]models.Cell, rowCount, width int) [][]models.Cell {
	out := make([][]models.Cell, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		if i < len(rows) {
			out = append(out, append([]models.Cell(nil), rows[i]...))
			continue
		}
		out = append(out, models.BlankRow(width))
	}
	return out
}
