package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/output"
)

var (
	genColumns []string
	genRows    int
	genTask    string
	genAI      bool
	genRowData string
	genOutput  string
	genCSV     string
	genJSON    bool
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new spreadsheet from column names and a description",
		Example: `  sheetsmith generate --columns Name,Age,City --rows 10 --task "User Data Sheet" -o users.xlsx
  sheetsmith generate --columns Item,Price --rows 5 --task "Cafe menu" --ai --csv menu.csv`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().StringSliceVar(&genColumns, "columns", nil, "Comma-separated column names")
	cmd.Flags().IntVar(&genRows, "rows", 10, "Number of rows")
	cmd.Flags().StringVar(&genTask, "task", "", "Task description (also names the file and sheet)")
	cmd.Flags().BoolVar(&genAI, "ai", false, "Ask the configured LLM for the rows")
	cmd.Flags().StringVar(&genRowData, "row-data", "", "JSON file with rows to use verbatim")
	cmd.Flags().StringVarP(&genOutput, "output", "o", "", "Write an xlsx workbook (\"-\" uses the generated name)")
	cmd.Flags().StringVar(&genCSV, "csv", "", "Write CSV (\"-\" uses the generated name)")
	cmd.Flags().BoolVar(&genJSON, "json", false, "Print the generation result as JSON")
	cmd.MarkFlagsMutuallyExclusive("ai", "row-data")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req := models.GenerationRequest{
		ColumnCount:     len(genColumns),
		RowCount:        genRows,
		ColumnNames:     genColumns,
		TaskDescription: genTask,
		AutoFill:        genRowData == "",
	}
	if genRowData != "" {
		rows, err := readRowData(genRowData)
		if err != nil {
			return err
		}
		req.RowData = rows
	}

	s, err := newSession(cmd.Context(), genAI)
	if err != nil {
		return err
	}

	var result models.GenerationResult
	if genAI {
		var message string
		result, message, err = s.GenerateWithAI(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}
		if message != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), message)
		}
	} else {
		result = s.Generate(req)
		if err := result.Err(); err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}
	}

	wrote := false
	if genOutput != "" {
		name, data, err := s.ExportResult()
		if err != nil {
			return err
		}
		if genOutput != "-" {
			name = genOutput
		}
		if err := writeOutput(cmd, name, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", name)
		wrote = true
	}
	if genCSV != "" {
		name, data, err := s.ExportCSV()
		if err != nil {
			return err
		}
		if genCSV != "-" {
			name = genCSV
		}
		if err := writeOutput(cmd, name, []byte(data)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", name)
		wrote = true
	}

	switch {
	case genJSON:
		data, err := output.ToJSON(result, true)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		return writeOutput(cmd, "", data)
	case !wrote:
		return writeOutput(cmd, "", []byte(output.ExportCSV(result)))
	}
	return nil
}

func readRowData(path string) ([][]models.Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sheetsmith.NewFileError(path, "open", sheetsmith.ErrFileNotFound)
		}
		return nil, err
	}
	var rows [][]models.Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("invalid row data in %s: %w", path, err)
	}
	return rows, nil
}
