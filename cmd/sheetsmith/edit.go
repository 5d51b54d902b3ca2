package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/edit"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/models"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/parser"
)

var (
	editOutput string
	editSheet  int
	editOps    commandList
)

func newEditCmd() *cobra.Command {
	editOps = commandList{}
	cmd := &cobra.Command{
		Use:   "edit [input.xlsx|input.csv]",
		Short: "Apply grid edits to a sheet and save the workbook",
		Long: `Edits are applied to the selected sheet in the order the flags are given.
If any edit fails nothing is written.

Columns are referenced by 0-based index or header name, rows by 0-based index.`,
		Example: `  sheetsmith edit people.xlsx -o out.xlsx --add-column Country=India --set-cell 0,Country=Nepal
  sheetsmith edit people.csv -o out.xlsx --rename-column 1=Years --insert-row end=Meera,30 --delete-row 0`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().StringVarP(&editOutput, "output", "o", "", "Output xlsx path")
	cmd.Flags().IntVar(&editSheet, "sheet", -1, "Index of the sheet to edit (default: first)")
	cmd.Flags().Var(editOps.flag(parseAddColumn), "add-column", "Append a column: NAME or NAME=DEFAULT")
	cmd.Flags().Var(editOps.flag(parseRemoveColumn), "remove-column", "Remove a column: COLUMN")
	cmd.Flags().Var(editOps.flag(parseRenameColumn), "rename-column", "Rename a column: COLUMN=NAME")
	cmd.Flags().Var(editOps.flag(parseSetCell), "set-cell", "Set a cell: ROW,COLUMN=VALUE")
	cmd.Flags().Var(editOps.flag(parseInsertRow), "insert-row", "Insert a row: INDEX[=V1,V2,...] (INDEX may be \"end\")")
	cmd.Flags().Var(editOps.flag(parseDeleteRow), "delete-row", "Delete a row: INDEX")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	if len(editOps.cmds) == 0 {
		return fmt.Errorf("no edits given")
	}

	s, err := newSession(cmd.Context(), false)
	if err != nil {
		return err
	}
	if err := s.Open(args[0]); err != nil {
		return err
	}
	if err := selectSheet(s, editSheet); err != nil {
		return err
	}
	if err := s.Apply(editOps.cmds...); err != nil {
		return fmt.Errorf("edit failed: %w", err)
	}

	wb, err := s.Workbook()
	if err != nil {
		return err
	}
	if err := sheetsmith.SaveFile(&wb, editOutput); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "applied %d edits, wrote %s\n", len(editOps.cmds), editOutput)
	return nil
}

// commandList collects edit commands from several flags in command-line order.
type commandList struct {
	cmds []edit.Command
}

func (l *commandList) flag(parse func(string) (edit.Command, error)) *opFlag {
	return &opFlag{list: l, parse: parse}
}

// opFlag is a repeatable flag whose values are parsed into edit commands.
type opFlag struct {
	list   *commandList
	parse  func(string) (edit.Command, error)
	values []string
}

func (f *opFlag) String() string { return strings.Join(f.values, " ") }

func (f *opFlag) Type() string { return "string" }

func (f *opFlag) Set(v string) error {
	c, err := f.parse(v)
	if err != nil {
		return err
	}
	f.values = append(f.values, v)
	f.list.cmds = append(f.list.cmds, c)
	return nil
}

func parseAddColumn(v string) (edit.Command, error) {
	name, def, hasDefault := strings.Cut(v, "=")
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("column name must be non-empty")
	}
	value := models.String("")
	if hasDefault {
		value = cellValue(def)
	}
	return edit.AddColumnCmd{Header: name, Default: value}, nil
}

func parseRemoveColumn(v string) (edit.Command, error) {
	return columnCmd{ref: v, build: func(i int) edit.Command {
		return edit.RemoveColumnCmd{Index: i}
	}}, nil
}

func parseRenameColumn(v string) (edit.Command, error) {
	ref, name, ok := strings.Cut(v, "=")
	if !ok {
		return nil, fmt.Errorf("expected COLUMN=NAME, got %q", v)
	}
	return columnCmd{ref: ref, build: func(i int) edit.Command {
		return edit.RenameColumnCmd{Index: i, Header: name}
	}}, nil
}

func parseSetCell(v string) (edit.Command, error) {
	pos, value, ok := strings.Cut(v, "=")
	if !ok {
		return nil, fmt.Errorf("expected ROW,COLUMN=VALUE, got %q", v)
	}
	rowStr, colRef, ok := strings.Cut(pos, ",")
	if !ok {
		return nil, fmt.Errorf("expected ROW,COLUMN=VALUE, got %q", v)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return nil, fmt.Errorf("invalid row %q: %w", rowStr, err)
	}
	return columnCmd{ref: colRef, build: func(i int) edit.Command {
		return edit.UpdateCellCmd{Row: row, Col: i, Value: cellValue(value)}
	}}, nil
}

func parseInsertRow(v string) (edit.Command, error) {
	idxStr, valuesStr, hasValues := strings.Cut(v, "=")
	index := -1
	if s := strings.TrimSpace(idxStr); s != "end" {
		i, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid row index %q: %w", idxStr, err)
		}
		if i < 0 {
			return nil, models.NewIndexError("insert row", "row", i, 0)
		}
		index = i
	}
	var values []models.Cell
	if hasValues {
		for _, part := range strings.Split(valuesStr, ",") {
			values = append(values, cellValue(part))
		}
	}
	return edit.InsertRowCmd{Index: index, Values: values}, nil
}

func parseDeleteRow(v string) (edit.Command, error) {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, fmt.Errorf("invalid row index %q: %w", v, err)
	}
	return edit.DeleteRowCmd{Index: i}, nil
}

// cellValue types a command-line value the same way imported cells are typed,
// except that an empty value becomes an empty string.
func cellValue(s string) models.Cell {
	if s == "" {
		return models.String("")
	}
	return parser.ParseValue(s)
}

// columnCmd resolves a column reference against the sheet it is applied to.
type columnCmd struct {
	ref   string
	build func(index int) edit.Command
}

func (c columnCmd) Name() string { return c.build(0).Name() }

func (c columnCmd) Apply(sheet models.Sheet) (models.Sheet, error) {
	index, err := resolveColumn(sheet, c.ref)
	if err != nil {
		return sheet, err
	}
	return c.build(index).Apply(sheet)
}

func resolveColumn(sheet models.Sheet, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if i, err := strconv.Atoi(ref); err == nil {
		return i, nil
	}
	for i, h := range sheet.Headers {
		if h == ref {
			return i, nil
		}
	}
	for i, h := range sheet.Headers {
		if strings.EqualFold(h, ref) {
			return i, nil
		}
	}
	return 0, models.NewError(models.KindIndex, "resolve column", fmt.Errorf("no column named %q", ref))
}
