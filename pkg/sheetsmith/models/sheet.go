package models

// Sheet is one named grid of headers and rows inside a Workbook.
type Sheet struct {
	// Name is the tab name.
	Name string `json:"name"`
	// Headers are the column titles, taken from the first row on import.
	Headers []string `json:"headers"`
	// Rows holds the data rows. Each row has len(Headers) cells once normalized.
	Rows [][]Cell `json:"rows"`
}

// Width returns the number of columns.
func (s Sheet) Width() int { return len(s.Headers) }

// Clone returns a deep copy of s.
func (s Sheet) Clone() Sheet {
	out := Sheet{
		Name:    s.Name,
		Headers: append([]string(nil), s.Headers...),
		Rows:    make([][]Cell, len(s.Rows)),
	}
	for i, row := range s.Rows {
		out.Rows[i] = append([]Cell(nil), row...)
	}
	return out
}

// Normalized returns a copy of s in which every row has exactly len(Headers) cells.
// Missing cells become empty strings and surplus cells are dropped.
func (s Sheet) Normalized() Sheet {
	out := s.Clone()
	for i, row := range out.Rows {
		out.Rows[i] = fitRow(row, len(out.Headers))
	}
	return out
}

// IsRectangular reports whether every row matches the header count.
func (s Sheet) IsRectangular() bool {
	for _, row := range s.Rows {
		if len(row) != len(s.Headers) {
			return false
		}
	}
	return true
}

// Equal reports whether two sheets have the same name, headers and cells.
func (s Sheet) Equal(o Sheet) bool {
	if s.Name != o.Name || len(s.Headers) != len(o.Headers) || len(s.Rows) != len(o.Rows) {
		return false
	}
	for i := range s.Headers {
		if s.Headers[i] != o.Headers[i] {
			return false
		}
	}
	for i := range s.Rows {
		if len(s.Rows[i]) != len(o.Rows[i]) {
			return false
		}
		for j := range s.Rows[i] {
			if s.Rows[i][j] != o.Rows[i][j] {
				return false
			}
		}
	}
	return true
}

func fitRow(row []Cell, width int) []Cell {
	if len(row) >= width {
		return row[:width:width]
	}
	out := make([]Cell, width)
	copy(out, row)
	for i := len(row); i < width; i++ {
		out[i] = String("")
	}
	return out
}

// FitRow returns a copy of row padded with empty strings or truncated to width.
func FitRow(row []Cell, width int) []Cell {
	return fitRow(append([]Cell(nil), row...), width)
}
