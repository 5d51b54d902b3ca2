package models

import "fmt"

// Workbook is an ordered collection of sheets plus the index of the active one.
type Workbook struct {
	// Filename is the workbook file name (no path).
	Filename string `json:"filename"`
	// Sheets holds the tabs in file order. Never empty for a valid workbook.
	Sheets []Sheet `json:"sheets"`
	// CurrentSheetIndex selects the sheet being edited.
	CurrentSheetIndex int `json:"current_sheet_index"`
}

// Validate checks the structural invariants of the workbook.
func (w Workbook) Validate() error {
	if len(w.Sheets) == 0 {
		return NewError(KindValidation, "workbook", fmt.Errorf("workbook has no sheets"))
	}
	if w.CurrentSheetIndex < 0 || w.CurrentSheetIndex >= len(w.Sheets) {
		return NewIndexError("workbook", "sheet", w.CurrentSheetIndex, len(w.Sheets))
	}
	return nil
}

// Current returns the active sheet.
func (w Workbook) Current() (Sheet, error) {
	if err := w.Validate(); err != nil {
		return Sheet{}, err
	}
	return w.Sheets[w.CurrentSheetIndex], nil
}

// WithCurrent returns a copy of w whose active sheet is index.
func (w Workbook) WithCurrent(index int) (Workbook, error) {
	if index < 0 || index >= len(w.Sheets) {
		return w, NewIndexError("select sheet", "sheet", index, len(w.Sheets))
	}
	out := w.Clone()
	out.CurrentSheetIndex = index
	return out, nil
}

// ReplaceCurrent returns a copy of w with the active sheet replaced by sheet.
func (w Workbook) ReplaceCurrent(sheet Sheet) (Workbook, error) {
	if err := w.Validate(); err != nil {
		return w, err
	}
	out := w.Clone()
	out.Sheets[out.CurrentSheetIndex] = sheet.Clone()
	return out, nil
}

// Clone returns a deep copy of w.
func (w Workbook) Clone() Workbook {
	out := Workbook{
		Filename:          w.Filename,
		CurrentSheetIndex: w.CurrentSheetIndex,
		Sheets:            make([]Sheet, len(w.Sheets)),
	}
	for i, s := range w.Sheets {
		out.Sheets[i] = s.Clone()
	}
	return out
}
