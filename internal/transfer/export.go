package transfer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// Export writes columns and rows to path in format. Callers drop internal
// columns such as keys before calling.
func Export(path string, format Format, title string, columns []string, rows [][]any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export: %w", cerr)
		}
	}()
	return Write(f, format, title, columns, rows)
}

func Write(w io.Writer, format Format, title string, columns []string, rows [][]any) error {
	switch format {
	case CSV:
		return writeCSV(w, columns, rows)
	case XLSX:
		return writeXLSX(w, columns, rows)
	case PDF:
		return writePDF(w, title, columns, rows)
	}
	return fmt.Errorf("export: unsupported format %q", format)
}

func writeCSV(w io.Writer, columns []string, rows [][]any) error {
	cw := csv.NewWriter(w)
	if len(columns) > 0 {
		if err := cw.Write(columns); err != nil {
			return err
		}
	}
	record := make([]string, 0, len(columns))
	for _, row := range rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, text(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, columns []string, rows [][]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	next := 1
	if len(columns) > 0 {
		header := make([]any, len(columns))
		for i, c := range columns {
			header[i] = c
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
		next++
	}
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = xlsxValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, next)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("xlsx row %d: %w", next, err)
		}
		next++
	}
	return f.Write(w)
}

// xlsxValue keeps numbers numeric and renders everything else as text.
func xlsxValue(v any) any {
	switch v.(type) {
	case int, int32, int64, float64, string, bool:
		return v
	}
	return text(v)
}

func writePDF(w io.Writer, title string, columns []string, rows [][]any) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	}

	n := len(columns)
	if n == 0 && len(rows) > 0 {
		n = len(rows[0])
	}
	if n == 0 {
		return pdf.Output(w)
	}
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(n)

	if len(columns) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range columns {
			pdf.CellFormat(colW, 7, tr(c), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i := range n {
			var v any
			if i < len(row) {
				v = row[i]
			}
			pdf.CellFormat(colW, 6, tr(text(v)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}
