// Package spreadsheet wraps excelize with the row-streaming access the
// import pipeline needs: named-sheet lookup, a header row, and per-row
// iteration that never materializes a whole sheet.
package spreadsheet

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when a named sheet is absent from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is an open spreadsheet file.
type Workbook struct {
	file *excelize.File
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: f}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Sheet returns the named sheet, or ErrSheetNotFound.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	idx, err := w.file.GetSheetIndex(name)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return &Sheet{file: w.file, name: name}, nil
}

// Sheet is one named sheet of an open workbook.
type Sheet struct {
	file *excelize.File
	name string
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// HeaderRow returns the first row's cells. Cell values are raw (unformatted),
// so date cells carry their numeric serial.
func (s *Sheet) HeaderRow() ([]string, error) {
	rows, err := s.file.Rows(s.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Error()
	}
	return rows.Columns(excelize.Options{RawCellValue: true})
}

// ForEachRow streams every data row (the header row is skipped) through fn.
// Iteration stops on the first error fn returns.
func (s *Sheet) ForEachRow(fn func(cells []string) error) error {
	rows, err := s.file.Rows(s.name)
	if err != nil {
		return err
	}
	defer rows.Close()

	first := true
	for rows.Next() {
		if first {
			first = false
			continue
		}
		cells, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return err
		}
		if err := fn(cells); err != nil {
			return err
		}
	}
	return rows.Error()
}

// Cell returns the cell at idx, or "" when the row is shorter than idx+1.
// Trailing empty cells are routinely dropped by the streaming reader.
func Cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
