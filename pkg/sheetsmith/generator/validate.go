package generator

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
)

// Validate returns every rule req breaks, in a fixed order. An empty slice means valid.
func Validate(req models.GenerationRequest) []string {
	var errs []string

	if req.ColumnCount <= 0 {
		errs = append(errs, "Column count must be greater than 0")
	}

	if req.RowCount <= 0 {
		errs = append(errs, "Row count must be greater than 0")
	}

	if len(req.ColumnNames) != req.ColumnCount {
		errs = append(errs, fmt.Sprintf("Column names count (%d) doesn't match column count (%d)",
			len(req.ColumnNames), req.ColumnCount))
	}

	for _, name := range req.ColumnNames {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, "All column names must be non-empty")
			break
		}
	}

	for _, row := range req.RowData {
		if len(row) != req.ColumnCount {
			errs = append(errs, fmt.Sprintf("Some rows have mismatched column count. Expected %d columns", req.ColumnCount))
			break
		}
	}

	return errs
}
