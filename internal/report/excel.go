// Package report writes analysis records into an Excel workbook, one row
// per company, in a fixed column order matching the parse schema. Companies
// whose analysis failed additionally get a row on a dedicated errors sheet
// so a run always leaves a durable account of what went wrong.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"contract-analyzer/internal/parse"
	"contract-analyzer/internal/scan"
)

const (
	sheetName      = "Contract Analysis"
	errorSheetName = "Processing Errors"
)

// headers are the report columns, index-aligned with parse.Fields.
var headers = []string{
	"Company",
	"Contract Name",
	"Effective Date",
	"Renewal/Termination Date",
	"Assignment Clause Reference",
	"Notices Clause Present?",
	"Action Required Prior to Name Change or Corporate Restructure",
	"Recommended Action",
	"Contact Listed",
}

var columnWidths = []float64{20, 30, 15, 20, 35, 25, 40, 30, 25}

var errorHeaders = []string{
	"Company",
	"Failed Step",
	"Error",
	"Failed Documents",
	"Documents Extracted",
}

var errorColumnWidths = []float64{20, 22, 50, 40, 20}

// Failure describes one company whose analysis could not complete.
type Failure struct {
	Company    string
	Step       string
	Err        string
	FailedDocs []string
	Stats      scan.Stats
}

// Writer creates and appends to analysis workbooks under an output directory.
type Writer struct {
	dir string
	log *slog.Logger

	bodyStyle int
}

func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, log: logger}
}

// Create writes a blank workbook with styled header rows on the analysis and
// errors sheets and returns its full path. The output directory is created
// if needed.
func (w *Writer) Create(filename string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), sheetName)
	if _, err := f.NewSheet(errorSheetName); err != nil {
		return "", fmt.Errorf("create errors sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return "", fmt.Errorf("create header style: %w", err)
	}

	// One shared body style, registered up front so every appended row can
	// reuse its id instead of growing the style table per row.
	w.bodyStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return "", fmt.Errorf("create body style: %w", err)
	}

	if err := writeHeaderRow(f, sheetName, headers, columnWidths, headerStyle); err != nil {
		return "", err
	}
	if err := writeHeaderRow(f, errorSheetName, errorHeaders, errorColumnWidths, headerStyle); err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook %s: %w", path, err)
	}
	w.log.Info("created report workbook", "path", path)
	return path, nil
}

func writeHeaderRow(f *excelize.File, sheet string, titles []string, widths []float64, style int) error {
	for i, title := range titles {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("set header %q: %w", title, err)
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	lastCell, _ := excelize.CoordinatesToCellName(len(titles), 1)
	if err := f.SetCellStyle(sheet, "A1", lastCell, style); err != nil {
		return fmt.Errorf("style header row on %s: %w", sheet, err)
	}
	return nil
}

// AppendRow writes one record at the given 1-based row, mapping schema
// fields to columns in declared order. Records always carry every field, so
// no cell is ever left unset.
func (w *Writer) AppendRow(path string, rec parse.Record, row int) error {
	values := make([]any, len(parse.Fields))
	for i, field := range parse.Fields {
		values[i] = rec[field]
	}
	if err := w.appendCells(path, sheetName, row, values); err != nil {
		return err
	}
	w.log.Info("added report row", "row", row, "company", rec[parse.FieldCompany])
	return nil
}

// AppendFailure records one failed company on the errors sheet: the step
// that failed, the error, and the extraction accounting at that point.
func (w *Writer) AppendFailure(path string, fail Failure, row int) error {
	values := []any{
		fail.Company,
		fail.Step,
		fail.Err,
		strings.Join(fail.FailedDocs, "\n"),
		fmt.Sprintf("%d of %d", fail.Stats.Successful, fail.Stats.Total),
	}
	if err := w.appendCells(path, errorSheetName, row, values); err != nil {
		return err
	}
	w.log.Info("added error summary row", "row", row, "company", fail.Company, "step", fail.Step)
	return nil
}

func (w *Writer) appendCells(path, sheet string, row int, values []any) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, w.bodyStyle); err != nil {
			return fmt.Errorf("style cell %s: %w", cell, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
