package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/output"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/parser"
)

var (
	inspectPretty bool
	inspectSheet  int
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx|input.csv]",
		Short: "Print a spreadsheet as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	cmd.Flags().BoolVar(&inspectPretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().IntVar(&inspectSheet, "sheet", -1, "Only print the sheet at this index")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context(), false)
	if err != nil {
		return err
	}
	if err := s.Open(args[0]); err != nil {
		return err
	}

	var v interface{}
	if inspectSheet >= 0 {
		if err := s.SelectSheet(inspectSheet); err != nil {
			return err
		}
		sheet, err := s.CurrentSheet()
		if err != nil {
			return err
		}
		v = sheet
	} else {
		wb, err := s.Workbook()
		if err != nil {
			return err
		}
		v = wb
		for _, sheet := range wb.Sheets {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d columns, %d rows, used range %s\n",
				sheet.Name, sheet.Width(), len(sheet.Rows), usedRange(sheet))
		}
	}

	jsonData, err := output.ToJSON(v, inspectPretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd, "", jsonData)
}

func usedRange(sheet models.Sheet) string {
	grid := make([][]string, 0, len(sheet.Rows)+1)
	grid = append(grid, sheet.Headers)
	for _, row := range sheet.Rows {
		line := make([]string, len(row))
		for i, cell := range row {
			line[i] = cell.String()
		}
		grid = append(grid, line)
	}
	if r := parser.UsedRange(grid); r != "" {
		return r
	}
	return "(empty)"
}
