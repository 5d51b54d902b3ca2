// Package models defines the workbook, sheet and request types shared by every sheetsmith package.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CellKind identifies which variant a Cell holds.
type CellKind uint8

const (
	// CellEmpty is an absent value (JSON null).
	CellEmpty CellKind = iota
	// CellString holds text.
	CellString
	// CellNumber holds a float64.
	CellNumber
)

// Cell is a single grid value: empty, a string, or a number.
type Cell struct {
	kind CellKind
	str  string
	num  float64
}

// Empty returns the empty cell.
func Empty() Cell { return Cell{} }

// String returns a text cell.
func String(s string) Cell { return Cell{kind: CellString, str: s} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{kind: CellNumber, num: f} }

// Int returns a numeric cell from an int.
func Int(i int) Cell { return Number(float64(i)) }

// Kind reports the variant held by c.
func (c Cell) Kind() CellKind { return c.kind }

// IsEmpty reports whether c is the empty cell.
func (c Cell) IsEmpty() bool { return c.kind == CellEmpty }

// Float returns the numeric value and whether c is a number.
func (c Cell) Float() (float64, bool) { return c.num, c.kind == CellNumber }

// String renders the cell as display text. Empty cells render as "".
func (c Cell) String() string {
	switch c.kind {
	case CellString:
		return c.str
	case CellNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Value returns the cell as a plain Go value (nil, string or float64).
func (c Cell) Value() interface{} {
	switch c.kind {
	case CellString:
		return c.str
	case CellNumber:
		return c.num
	default:
		return nil
	}
}

// MarshalJSON encodes empty cells as null, numbers as numbers and strings as strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case CellString:
		return json.Marshal(c.str)
	case CellNumber:
		return json.Marshal(c.num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a string or a number. Booleans, arrays and objects are rejected.
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Empty()
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = String(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid numeric cell %s: %w", data, err)
		}
		*c = Number(f)
		return nil
	default:
		return fmt.Errorf("unsupported cell value %s: want string, number or null", data)
	}
}

// Strings builds a row of text cells.
func Strings(values ...string) []Cell {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = String(v)
	}
	return row
}

// BlankRow returns a row of width empty-string cells.
func BlankRow(width int) []Cell {
	row := make([]Cell, width)
	for i := range row {
		row[i] = String("")
	}
	return row
}
