package extract

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestFromSpreadsheet(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "Name"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "B1", "Score"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	// Row 2 left blank on purpose; blank rows must be dropped.
	if err := f.SetCellValue("Sheet1", "A3", "Ada"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "B3", 92); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if _, err := f.NewSheet("Extra"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.SetCellValue("Extra", "A1", "second sheet"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	got, err := fromSpreadsheet(buf.Bytes())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(got, "=== Sheet: Sheet1 ===") || !strings.Contains(got, "=== Sheet: Extra ===") {
		t.Fatalf("sheet markers missing: %q", got)
	}
	if !strings.Contains(got, "Name\tScore") {
		t.Fatalf("tab-joined header row missing: %q", got)
	}
	if !strings.Contains(got, "Ada\t92") {
		t.Fatalf("data row missing: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank row leaked: %q", got)
	}
}
