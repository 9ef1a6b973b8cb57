package spreadsheet

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Liste")

	f.SetCellValue("Liste", "A1", "Ceza No")
	f.SetCellValue("Liste", "B1", "Tarih")
	f.SetCellValue("Liste", "A2", 1001)
	f.SetCellValue("Liste", "B2", 45301)
	f.SetCellValue("Liste", "A3", 1002)

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSheetNotFound(t *testing.T) {
	wb, err := Open(writeTestWorkbook(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer wb.Close()

	if _, err := wb.Sheet("Günlük"); !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("want ErrSheetNotFound, got %v", err)
	}
}

func TestHeaderRowAndStreaming(t *testing.T) {
	wb, err := Open(writeTestWorkbook(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer wb.Close()

	sheet, err := wb.Sheet("Liste")
	if err != nil {
		t.Fatalf("sheet: %v", err)
	}

	headers, err := sheet.HeaderRow()
	if err != nil {
		t.Fatalf("header row: %v", err)
	}
	if len(headers) != 2 || headers[0] != "Ceza No" || headers[1] != "Tarih" {
		t.Fatalf("unexpected headers: %v", headers)
	}

	var rows [][]string
	err = sheet.ForEachRow(func(cells []string) error {
		rows = append(rows, cells)
		return nil
	})
	if err != nil {
		t.Fatalf("for each row: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("want 2 data rows, got %d", len(rows))
	}
	// Raw values: the date cell stays a serial.
	if Cell(rows[0], 0) != "1001" || Cell(rows[0], 1) != "45301" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	// Short rows read as empty cells past their end.
	if Cell(rows[1], 1) != "" {
		t.Fatalf("expected empty trailing cell, got %q", Cell(rows[1], 1))
	}
}

func TestCellOutOfRange(t *testing.T) {
	cells := []string{"a"}
	if Cell(cells, -1) != "" || Cell(cells, 5) != "" {
		t.Fatal("out-of-range access must return empty string")
	}
	if Cell(cells, 0) != "a" {
		t.Fatal("in-range access broken")
	}
}
