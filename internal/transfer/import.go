package transfer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/domain"
)

// Record is one imported line. Header is set when the file had one.
type Record struct {
	Line   int
	Header []string
	Values []string
}

// Fields keys the values by header name, or by position against columns
// when the file had no header. Missing trailing cells are left out.
func (r Record) Fields(columns []string) domain.Fields {
	keys := columns
	if r.Header != nil {
		keys = r.Header
	}
	f := make(domain.Fields, len(keys))
	for i, key := range keys {
		if i >= len(r.Values) {
			break
		}
		f[key] = r.Values[i]
	}
	return f
}

// Blank reports whether every cell is empty.
func (r Record) Blank() bool {
	for _, v := range r.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Read lazily yields the records of the file at path. Iteration stops at the
// first error, which is yielded with an empty record.
func Read(path string, format Format, hasHeader bool) iter.Seq2[Record, error] {
	switch format {
	case CSV:
		return readCSV(path, hasHeader)
	case XLSX:
		return readXLSX(path, hasHeader)
	case PDF:
		return fail(domain.Invalid("file", "importing from pdf is not supported"))
	}
	return fail(domain.Invalid("file", "unsupported file type %q", format))
}

func fail(err error) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) { yield(Record{}, err) }
}

func headerKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

func readCSV(path string, hasHeader bool) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(Record{}, fmt.Errorf("import: %w", err))
			return
		}
		defer func() { _ = f.Close() }()

		cr := csv.NewReader(f)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true

		var header []string
		for line := 1; ; line++ {
			values, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Record{}, fmt.Errorf("import: line %d: %w", line, err))
				return
			}
			if hasHeader && header == nil {
				header = make([]string, len(values))
				for i, v := range values {
					header[i] = headerKey(v)
				}
				continue
			}
			rec := Record{Line: line, Header: header, Values: values}
			if rec.Blank() {
				continue
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func readXLSX(path string, hasHeader bool) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		f, err := excelize.OpenFile(path)
		if err != nil {
			yield(Record{}, fmt.Errorf("import: %w", err))
			return
		}
		defer func() { _ = f.Close() }()

		rows, err := f.Rows(f.GetSheetName(f.GetActiveSheetIndex()))
		if err != nil {
			yield(Record{}, fmt.Errorf("import: %w", err))
			return
		}
		defer func() { _ = rows.Close() }()

		var header []string
		for line := 1; rows.Next(); line++ {
			values, err := rows.Columns()
			if err != nil {
				yield(Record{}, fmt.Errorf("import: row %d: %w", line, err))
				return
			}
			if hasHeader && header == nil {
				header = make([]string, len(values))
				for i, v := range values {
					header[i] = headerKey(v)
				}
				continue
			}
			rec := Record{Line: line, Header: header, Values: values}
			if rec.Blank() {
				continue
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := rows.Error(); err != nil {
			yield(Record{}, fmt.Errorf("import: %w", err))
		}
	}
}
