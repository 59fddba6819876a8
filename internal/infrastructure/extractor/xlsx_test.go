package extractor

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractXLSXScansCells(t *testing.T) {
	workbook := excelize.NewFile()
	defer workbook.Close()
	for cell, value := range map[string]any{
		"A1": "Invoice",
		"B1": "2024-117",
		"A2": "Payment due",
		"B2": 1200,
	} {
		if err := workbook.SetCellValue("Sheet1", cell, value); err != nil {
			t.Fatalf("SetCellValue(%s) error = %v", cell, err)
		}
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	got, err := extractXLSX(buf.Bytes())
	if err != nil {
		t.Fatalf("extractXLSX() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d: %q", len(lines), got)
	}
	if lines[0] != "Invoice 2024-117" {
		t.Fatalf("first row = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Payment due") {
		t.Fatalf("second row = %q", lines[1])
	}
}

func TestExtractXLSXRejectsCorruptFile(t *testing.T) {
	if _, err := extractXLSX([]byte("definitely not a workbook")); err == nil {
		t.Fatalf("expected error for corrupt workbook")
	}
}
