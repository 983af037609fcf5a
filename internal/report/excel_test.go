package report

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"contract-analyzer/internal/parse"
	"contract-analyzer/internal/scan"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateWritesHeaderRow(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "reports"), testLogger())

	path, err := w.Create("summary.xlsx")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); got != sheetName {
		t.Fatalf("sheet name = %q, want %q", got, sheetName)
	}
	for i, want := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		got, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("header %s = %q, want %q", cell, got, want)
		}
	}
}

func TestAppendRowMapsFieldsToColumns(t *testing.T) {
	w := NewWriter(t.TempDir(), testLogger())
	path, err := w.Create("summary.xlsx")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec := parse.Defaults("Acme Corp")
	rec["contract_name"] = "Master Services Agreement"
	rec["effective_date"] = "2021-03-15"
	rec["action_required"] = "Notification Required"

	if err := w.AppendRow(path, rec, 2); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	for i, field := range parse.Fields {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		got, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != rec[field] {
			t.Fatalf("cell %s = %q, want %q", cell, got, rec[field])
		}
	}
}

func TestAppendMultipleRows(t *testing.T) {
	w := NewWriter(t.TempDir(), testLogger())
	path, err := w.Create("summary.xlsx")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	companies := []string{"Alpha", "Beta", "Gamma"}
	for i, name := range companies {
		if err := w.AppendRow(path, parse.Defaults(name), i+2); err != nil {
			t.Fatalf("AppendRow %s: %v", name, err)
		}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	for i, name := range companies {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		got, _ := f.GetCellValue(sheetName, cell)
		if got != name {
			t.Fatalf("cell %s = %q, want %q", cell, got, name)
		}
	}
}

func TestCreateWritesErrorSheet(t *testing.T) {
	w := NewWriter(t.TempDir(), testLogger())
	path, err := w.Create("summary.xlsx")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(errorSheetName); err != nil || idx < 0 {
		t.Fatalf("errors sheet missing: idx=%d err=%v", idx, err)
	}
	for i, want := range errorHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		got, err := f.GetCellValue(errorSheetName, cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("error header %s = %q, want %q", cell, got, want)
		}
	}
}

func TestAppendFailureRecordsErrorRow(t *testing.T) {
	w := NewWriter(t.TempDir(), testLogger())
	path, err := w.Create("summary.xlsx")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	fail := Failure{
		Company:    "Acme Corp",
		Step:       "document extraction",
		Err:        "no readable documents in /data/acme",
		FailedDocs: []string{"scan1.pdf", "old.doc"},
		Stats:      scan.Stats{Total: 2, Successful: 0, Failed: 2},
	}
	if err := w.AppendFailure(path, fail, 2); err != nil {
		t.Fatalf("AppendFailure: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	checks := map[string]string{
		"A2": "Acme Corp",
		"B2": "document extraction",
		"C2": "no readable documents in /data/acme",
		"E2": "0 of 2",
	}
	for cell, want := range checks {
		got, _ := f.GetCellValue(errorSheetName, cell)
		if got != want {
			t.Fatalf("cell %s = %q, want %q", cell, got, want)
		}
	}
	docs, _ := f.GetCellValue(errorSheetName, "D2")
	if !strings.Contains(docs, "scan1.pdf") || !strings.Contains(docs, "old.doc") {
		t.Fatalf("failed documents cell = %q", docs)
	}
}

func TestAppendedRowsShareOneBodyStyle(t *testing.T) {
	w := NewWriter(t.TempDir(), testLogger())
	path, err := w.Create("summary.xlsx")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := w.AppendRow(path, parse.Defaults("C"), i+2); err != nil {
			t.Fatalf("AppendRow: %v", err)
		}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	first, err := f.GetCellStyle(sheetName, "A2")
	if err != nil {
		t.Fatalf("GetCellStyle: %v", err)
	}
	if first == 0 {
		t.Fatal("body cells left on the default style")
	}
	for _, cell := range []string{"A3", "A4", "I2", "I4"} {
		got, err := f.GetCellStyle(sheetName, cell)
		if err != nil {
			t.Fatalf("GetCellStyle %s: %v", cell, err)
		}
		if got != first {
			t.Fatalf("cell %s style id = %d, want shared id %d", cell, got, first)
		}
	}
}

func TestHeadersAlignWithSchema(t *testing.T) {
	if len(headers) != len(parse.Fields) {
		t.Fatalf("headers (%d) and schema fields (%d) out of sync", len(headers), len(parse.Fields))
	}
	if len(columnWidths) != len(headers) {
		t.Fatalf("columnWidths (%d) and headers (%d) out of sync", len(columnWidths), len(headers))
	}
	if len(errorColumnWidths) != len(errorHeaders) {
		t.Fatalf("errorColumnWidths (%d) and errorHeaders (%d) out of sync", len(errorColumnWidths), len(errorHeaders))
	}
}
